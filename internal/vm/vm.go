// Package vm implements the stack-based bytecode interpreter
// (docs/architecture/bytecode-vm-design.md): a dispatch loop over
// internal/bytecode's opcodes, an operand
// stack that carries either resolved values or unresolved Reference
// Records (so Reference-consuming operators like delete/++/-- still
// see the binding they operate on), and calls into internal/operations
// for every abstract operation along the way.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/thegreatercurve/glyn-sub000/internal/bytecode"
	"github.com/thegreatercurve/glyn-sub000/internal/operations"
	"github.com/thegreatercurve/glyn-sub000/internal/runtime"
)

// Output is where the Print opcode writes (the non-standard
// `print(expr)` debug statement); callers (pkg/glyn, the CLI's REPL) may redirect it
// before invoking a script, mirroring the teacher VM's injectable
// io.Writer (internal/bytecode/vm.go's NewVMWithOutput).
var Output io.Writer = os.Stdout

func init() {
	// Installs this package's Run as operations.ScriptEvaluation's VM
	// entry point. operations cannot import vm directly: vm imports
	// operations for the arithmetic/comparison/conversion helpers its
	// dispatch loop needs, so the wiring runs through a function
	// variable set here, the same pattern runtime.ToObjectHook uses.
	operations.RunProgramHook = Run
}

// slot is one operand-stack entry: either a plain Value, or an
// unresolved Reference produced by ResolveBinding. Most opcodes
// dereference on pop (GetValue); delete/++/-- need the Reference
// itself.
type slot struct {
	isRef bool
	ref   runtime.Reference
	val   runtime.Value
}

// VM holds one script evaluation's interpreter state: it is single-use,
// constructed fresh per ScriptEvaluation call — a throw unwinds the
// whole VM rather than rebalancing the operand stack, so there is
// nothing to reuse across runs.
type VM struct {
	a       *runtime.Agent
	ctx     *runtime.ExecutionContext
	program *bytecode.ExecutableProgram
	stack   []slot
	locals  []runtime.Value
	ip      int
}

// Run implements operations.RunProgramHook: execute program's
// instructions to Halt (or until a throw completion escapes), returning
// the script's completion value if the stack holds one.
func Run(a *runtime.Agent, program *bytecode.ExecutableProgram, ctx *runtime.ExecutionContext) (runtime.Value, bool, *runtime.ThrowCompletion) {
	v := &VM{a: a, ctx: ctx, program: program}
	return v.run()
}

func (v *VM) run() (runtime.Value, bool, *runtime.ThrowCompletion) {
	code := v.program.Instructions
	for v.ip < len(code) {
		width := 1
		op := bytecode.OpCode(code[v.ip])
		v.ip++
		if op == bytecode.Wide {
			op = bytecode.OpCode(code[v.ip])
			v.ip++
			width = 2
		}

		switch op {
		case bytecode.Halt:
			return v.completionValue()
		case bytecode.Return:
			return v.completionValue()
		case bytecode.Throw:
			val, tc := v.popValue()
			if tc != nil {
				return runtime.Undefined, false, tc
			}
			return runtime.Undefined, false, runtime.Throw(val)
		default:
			if tc := v.execute(op, width); tc != nil {
				return runtime.Undefined, false, tc
			}
		}
	}
	return v.completionValue()
}

// completionValue implements this design's approximation of script
// completion-value propagation: whatever the last (un-popped)
// expression statement left on the stack, per the parser's
// last-statement convention (internal/parser's parseExpressionStatement).
func (v *VM) completionValue() (runtime.Value, bool, *runtime.ThrowCompletion) {
	if len(v.stack) == 0 {
		return runtime.Undefined, false, nil
	}
	val, tc := v.popValue()
	if tc != nil {
		return runtime.Undefined, false, tc
	}
	return val, true, nil
}

func (v *VM) readOperand(width int) int {
	code := v.program.Instructions
	n := 1
	if width == 2 {
		n = 2
	}
	value := 0
	for i := 0; i < n; i++ {
		value = value<<8 | int(code[v.ip])
		v.ip++
	}
	return value
}

func (v *VM) readJumpOffset(width int) int {
	raw := v.readOperand(width)
	if width == 1 {
		return int(int8(raw))
	}
	return int(int16(raw))
}

func (v *VM) pushValue(val runtime.Value) {
	v.stack = append(v.stack, slot{val: val})
}

func (v *VM) pushRef(ref runtime.Reference) {
	v.stack = append(v.stack, slot{isRef: true, ref: ref})
}

func (v *VM) pop() slot {
	s := v.stack[len(v.stack)-1]
	v.stack = v.stack[:len(v.stack)-1]
	return s
}

// popValue pops the top of stack, dereferencing a Reference via
// GetValue (ECMA-262 §6.2.4.8); this is what every value-consuming
// opcode (arithmetic, comparison, Print, Throw, Call...) uses.
func (v *VM) popValue() (runtime.Value, *runtime.ThrowCompletion) {
	s := v.pop()
	if !s.isRef {
		return s.val, nil
	}
	return runtime.GetValue(v.a, s.ref)
}

// popTypeofOperand pops like popValue, except an unresolvable reference
// yields "undefined" instead of throwing — `typeof x` on an undeclared
// `x` is valid ECMAScript (ECMA-262 §13.5.3).
func (v *VM) popTypeofOperand() (runtime.Value, *runtime.ThrowCompletion) {
	s := v.pop()
	if !s.isRef {
		return s.val, nil
	}
	if s.ref.IsUnresolvableReference() {
		return runtime.Undefined, nil
	}
	return runtime.GetValue(v.a, s.ref)
}

// popReference pops the top of stack and requires it to be a Reference
// (delete/++/-- operate on the binding, not its value); a non-reference
// operand is a SyntaxError per ECMA-262 §13.4.1/§13.5.1.1 ("invalid
// assignment target").
func (v *VM) popReference() (runtime.Reference, bool) {
	s := v.pop()
	if !s.isRef {
		return runtime.Reference{}, false
	}
	return s.ref, true
}

func (v *VM) lexicalEnv() runtime.EnvAddr {
	return v.ctx.LexicalEnvironment
}

// print implements the Print opcode: ToString the operand and write it
// followed by a newline (the non-standard `print(expr)` debug statement).
func (v *VM) print(val runtime.Value) *runtime.ThrowCompletion {
	s, tc := operations.ToString(v.a, val)
	if tc != nil {
		return tc
	}
	fmt.Fprintln(Output, s)
	return nil
}
