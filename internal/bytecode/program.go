package bytecode

import "github.com/thegreatercurve/glyn-sub000/internal/runtime"

// DeclarationKind tags an identifier-pool entry as Var/Let/Const, or as
// RefIdentifier for a bare identifier reference that declares nothing
// (ECMA-262 GlobalDeclarationInstantiation only processes the former
// three; RefIdentifier entries exist purely so the VM's ResolveBinding
// opcode can recover the referenced name from the identifier pool).
type DeclarationKind byte

const (
	DeclVar DeclarationKind = iota
	DeclLet
	DeclConst
	RefIdentifier
)

// Identifier is one entry of the identifier pool: a declaration kind
// plus the bound name.
type Identifier struct {
	Kind DeclarationKind
	Name string
}

// ExecutableProgram is the bytecode artifact the parser/codegen produces
// and the VM consumes (docs/architecture/bytecode-vm-design.md): an
// instruction byte sequence, a constant pool, and an identifier pool.
type ExecutableProgram struct {
	Instructions []byte
	Constants    []runtime.Value
	Identifiers  []Identifier
}

// NewExecutableProgram returns an empty program ready for a Builder to
// populate.
func NewExecutableProgram() *ExecutableProgram {
	return &ExecutableProgram{}
}

// Builder accumulates instructions and pool entries during codegen.
type Builder struct {
	program *ExecutableProgram
}

func NewBuilder() *Builder {
	return &Builder{program: NewExecutableProgram()}
}

// Program surrenders the built ExecutableProgram.
func (b *Builder) Program() *ExecutableProgram {
	return b.program
}

// Emit appends a zero-operand opcode and returns its address.
func (b *Builder) Emit(op OpCode) int {
	addr := len(b.program.Instructions)
	b.program.Instructions = append(b.program.Instructions, byte(op))
	return addr
}

// EmitByte appends a 1-byte-operand opcode; if operand doesn't fit in a
// byte, a Wide prefix widens it to 2 bytes.
func (b *Builder) EmitByte(op OpCode, operand int) int {
	if operand > 0xFF {
		b.Emit(Wide)
		addr := b.Emit(op)
		b.program.Instructions = append(b.program.Instructions, byte(operand>>8), byte(operand))
		return addr
	}
	addr := b.Emit(op)
	b.program.Instructions = append(b.program.Instructions, byte(operand))
	return addr
}

// EmitJump appends a jump opcode with a placeholder 2-byte relative
// offset, returning the address of the offset's high byte for later
// patching via PatchJump.
func (b *Builder) EmitJump(op OpCode) int {
	b.Emit(op)
	addr := len(b.program.Instructions)
	b.program.Instructions = append(b.program.Instructions, 0, 0)
	return addr
}

// PatchJump backpatches the 2-byte relative offset at offsetAddr so the
// jump lands at the current end of the instruction stream (resolved
// Open Question: relative to the byte following the operand).
func (b *Builder) PatchJump(offsetAddr int) {
	target := len(b.program.Instructions)
	rel := target - (offsetAddr + 2)
	b.program.Instructions[offsetAddr] = byte(int16(rel) >> 8)
	b.program.Instructions[offsetAddr+1] = byte(int16(rel))
}

// Here returns the address of the next instruction to be emitted.
func (b *Builder) Here() int {
	return len(b.program.Instructions)
}

// AddConstant appends v to the constant pool and returns its index.
func (b *Builder) AddConstant(v runtime.Value) int {
	b.program.Constants = append(b.program.Constants, v)
	return len(b.program.Constants) - 1
}

// AddIdentifier appends id to the identifier pool and returns its index.
func (b *Builder) AddIdentifier(id Identifier) int {
	b.program.Identifiers = append(b.program.Identifiers, id)
	return len(b.program.Identifiers) - 1
}
