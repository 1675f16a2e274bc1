package bytecode

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/thegreatercurve/glyn-sub000/internal/runtime"
)

func TestDisassembleConstAndHalt(t *testing.T) {
	b := NewBuilder()
	idx := b.AddConstant(runtime.Number(15))
	b.EmitByte(Const, idx)
	b.Emit(Halt)

	snaps.MatchSnapshot(t, "const_and_halt", Disassemble(b.Program()))
}

func TestDisassembleJumpShowsResolvedTarget(t *testing.T) {
	b := NewBuilder()
	addr := b.EmitJump(JumpIfFalse)
	b.Emit(Pop)
	b.PatchJump(addr)
	b.Emit(Halt)

	snaps.MatchSnapshot(t, "jump_if_false", Disassemble(b.Program()))
}
