package bytecode

import (
	"testing"

	"github.com/thegreatercurve/glyn-sub000/internal/runtime"
)

func TestBuilderEmitAndConstants(t *testing.T) {
	b := NewBuilder()
	idx := b.AddConstant(runtime.Number(42))
	b.EmitByte(Const, idx)
	b.Emit(Halt)

	p := b.Program()
	if len(p.Instructions) != 3 {
		t.Fatalf("expected 3 bytes (op+operand, op), got %d", len(p.Instructions))
	}
	if OpCode(p.Instructions[0]) != Const || p.Instructions[1] != byte(idx) {
		t.Fatalf("unexpected Const encoding: %v", p.Instructions)
	}
	if OpCode(p.Instructions[2]) != Halt {
		t.Fatalf("expected trailing Halt")
	}
	if len(p.Constants) != 1 || p.Constants[0].AsNumber() != 42 {
		t.Fatalf("expected one constant 42, got %v", p.Constants)
	}
}

func TestEmitByteWidensOperandsOver255(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < 300; i++ {
		b.AddConstant(runtime.Number(float64(i)))
	}
	addr := b.EmitByte(Const, 299)

	p := b.Program()
	if OpCode(p.Instructions[addr]) != Wide {
		t.Fatalf("expected a Wide prefix before the widened operand")
	}
	if OpCode(p.Instructions[addr+1]) != Const {
		t.Fatalf("expected Const to follow the Wide prefix")
	}
	hi, lo := p.Instructions[addr+2], p.Instructions[addr+3]
	if int(hi)<<8|int(lo) != 299 {
		t.Fatalf("expected a 2-byte big-endian operand encoding 299, got %d/%d", hi, lo)
	}
}

func TestPatchJumpIsRelativeToOperandEnd(t *testing.T) {
	b := NewBuilder()
	jumpAddr := b.EmitJump(Jump)
	b.Emit(Pop)
	b.Emit(Pop)
	b.PatchJump(jumpAddr)

	p := b.Program()
	hi, lo := p.Instructions[jumpAddr], p.Instructions[jumpAddr+1]
	rel := int(int16(uint16(hi)<<8 | uint16(lo)))
	if rel != 2 {
		t.Fatalf("expected relative offset 2 (two Pop bytes), got %d", rel)
	}
}

func TestAddIdentifierIndices(t *testing.T) {
	b := NewBuilder()
	i0 := b.AddIdentifier(Identifier{Kind: DeclLet, Name: "x"})
	i1 := b.AddIdentifier(Identifier{Kind: DeclConst, Name: "y"})
	if i0 != 0 || i1 != 1 {
		t.Fatalf("expected sequential indices 0,1, got %d,%d", i0, i1)
	}
	p := b.Program()
	if p.Identifiers[0].Name != "x" || p.Identifiers[1].Kind != DeclConst {
		t.Fatalf("unexpected identifier pool contents: %+v", p.Identifiers)
	}
}
