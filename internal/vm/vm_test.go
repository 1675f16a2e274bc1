package vm

import (
	"testing"

	"github.com/thegreatercurve/glyn-sub000/internal/bytecode"
	"github.com/thegreatercurve/glyn-sub000/internal/runtime"
)

func TestReadJumpOffsetSignExtends(t *testing.T) {
	// Jump* operands are always 2 bytes (Builder.EmitJump reserves exactly
	// 2 bytes and never routes through the Wide-widening path), so this
	// is the only width readJumpOffset is ever actually called with.
	v := &VM{program: &bytecode.ExecutableProgram{Instructions: []byte{0xFF, 0xFE}}} // -2 as int16
	if got := v.readJumpOffset(2); got != -2 {
		t.Fatalf("readJumpOffset(2) = %d, want -2", got)
	}
}

func TestJumpIfFalseReadsTwoByteOffsetAtNormalWidth(t *testing.T) {
	// Regression test: execute's Jump/JumpIfTrue/JumpIfFalse cases must
	// read a fixed 2-byte offset regardless of the dispatch loop's Wide
	// width, matching how Builder.EmitJump/PatchJump actually encode it.
	b := bytecode.NewBuilder()
	b.Emit(bytecode.False)
	jumpAddr := b.EmitJump(bytecode.JumpIfFalse)
	skippedIdx := b.AddConstant(runtime.Number(1))
	b.EmitByte(bytecode.Const, skippedIdx)
	b.Emit(bytecode.Pop)
	b.PatchJump(jumpAddr)
	keptIdx := b.AddConstant(runtime.Number(2))
	b.EmitByte(bytecode.Const, keptIdx)
	b.Emit(bytecode.Halt)

	a := runtime.NewAgent()
	value, hasValue, tc := Run(a, b.Program(), &runtime.ExecutionContext{})
	if tc != nil {
		t.Fatalf("unexpected throw completion: %v", tc)
	}
	if !hasValue || !value.IsNumber() || value.AsNumber() != 2 {
		t.Fatalf("got %v (hasValue=%v), want Number 2 (jump must have skipped the Const 1/Pop pair)", value, hasValue)
	}
}

func TestPopValueDereferencesReference(t *testing.T) {
	v := &VM{}
	v.pushValue(runtime.Number(42))
	val, tc := v.popValue()
	if tc != nil {
		t.Fatalf("unexpected throw completion: %v", tc)
	}
	if !val.IsNumber() || val.AsNumber() != 42 {
		t.Fatalf("got %v, want Number 42", val)
	}
}

func TestPopReferenceRejectsPlainValue(t *testing.T) {
	v := &VM{}
	v.pushValue(runtime.Number(1))
	_, isRef := v.popReference()
	if isRef {
		t.Fatal("expected popReference to report false for a plain value slot")
	}
}

func TestTypeOfQuirkNullIsObject(t *testing.T) {
	a := runtime.NewAgent()
	if got := typeOf(a, runtime.Null); got != "object" {
		t.Fatalf("typeOf(null) = %q, want %q (ECMAScript historical quirk)", got, "object")
	}
}

func TestTypeOfPrimitives(t *testing.T) {
	a := runtime.NewAgent()
	tests := []struct {
		val  runtime.Value
		want string
	}{
		{runtime.Undefined, "undefined"},
		{runtime.True, "boolean"},
		{runtime.Number(1), "number"},
		{runtime.String("s"), "string"},
	}
	for _, tt := range tests {
		if got := typeOf(a, tt.val); got != tt.want {
			t.Errorf("typeOf(%v) = %q, want %q", tt.val, got, tt.want)
		}
	}
}
