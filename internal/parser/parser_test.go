package parser

import (
	"testing"

	"github.com/thegreatercurve/glyn-sub000/internal/bytecode"
)

func instructionOps(instrs []byte) []bytecode.OpCode {
	var ops []bytecode.OpCode
	ip := 0
	for ip < len(instrs) {
		op := bytecode.OpCode(instrs[ip])
		ip++
		width := 1
		if op == bytecode.Wide {
			op = bytecode.OpCode(instrs[ip])
			ip++
			width = 2
		}
		ops = append(ops, op)
		ip += bytecode.OperandBytes(op) * width
	}
	return ops
}

func TestParsePrecedenceMultiplyBeforeAdd(t *testing.T) {
	p := New("1 + 2 * 3;")
	program := p.ParseScript()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}

	ops := instructionOps(program.Instructions)
	want := []bytecode.OpCode{
		// a lone final expression statement keeps its value (no Pop) as
		// the script's completion value.
		bytecode.Const, bytecode.Const, bytecode.Const, bytecode.Multiply, bytecode.Add,
		bytecode.Halt,
	}
	if len(ops) != len(want) {
		t.Fatalf("got opcodes %v, want %v", ops, want)
	}
	for i, op := range ops {
		if op != want[i] {
			t.Fatalf("op[%d] = %s, want %s", i, op, want[i])
		}
	}
}

func TestParseExponentIsRightAssociative(t *testing.T) {
	// 2 ** 3 ** 2 must parse as 2 ** (3 ** 2): all three constants are
	// pushed before either Exponent, so the inner (3 ** 2) runs first.
	p := New("2 ** 3 ** 2;")
	program := p.ParseScript()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}

	ops := instructionOps(program.Instructions)
	count := 0
	for _, op := range ops {
		if op == bytecode.Exponent {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected two Exponent opcodes, got %d in %v", count, ops)
	}
	want := []bytecode.OpCode{
		bytecode.Const, bytecode.Const, bytecode.Const, bytecode.Exponent, bytecode.Exponent,
		bytecode.Halt,
	}
	if len(ops) != len(want) {
		t.Fatalf("got opcodes %v, want %v", ops, want)
	}
	for i, op := range ops {
		if op != want[i] {
			t.Fatalf("op[%d] = %s, want %s", i, op, want[i])
		}
	}
}

func TestParseLexicalDeclarationEmitsInitializeBinding(t *testing.T) {
	p := New("let x = 1;")
	program := p.ParseScript()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	if len(program.Identifiers) != 1 || program.Identifiers[0].Name != "x" {
		t.Fatalf("expected one identifier 'x', got %+v", program.Identifiers)
	}
	if program.Identifiers[0].Kind != bytecode.DeclLet {
		t.Fatalf("expected DeclLet, got %v", program.Identifiers[0].Kind)
	}

	ops := instructionOps(program.Instructions)
	want := []bytecode.OpCode{bytecode.Const, bytecode.InitializeReferencedBinding, bytecode.Halt}
	if len(ops) != len(want) {
		t.Fatalf("got opcodes %v, want %v", ops, want)
	}
}

func TestParseLastExpressionStatementKeepsCompletionValue(t *testing.T) {
	// spec.md §8: "let x = 10; x + 5;" leaves the final expression's
	// value on the stack rather than popping it.
	p := New("let x = 10; x + 5;")
	program := p.ParseScript()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}

	ops := instructionOps(program.Instructions)
	if ops[len(ops)-1] != bytecode.Halt {
		t.Fatalf("expected program to end in Halt, got %v", ops)
	}
	if ops[len(ops)-2] == bytecode.Pop {
		t.Fatalf("final expression statement must not be popped: %v", ops)
	}
}

func TestParseNonFinalExpressionStatementIsPopped(t *testing.T) {
	p := New("1 + 2; 3;")
	program := p.ParseScript()
	ops := instructionOps(program.Instructions)

	popCount := 0
	for _, op := range ops {
		if op == bytecode.Pop {
			popCount++
		}
	}
	if popCount != 1 {
		t.Fatalf("expected exactly one Pop (for the non-final statement), got %d in %v", popCount, ops)
	}
}

func TestParseUnaryOperators(t *testing.T) {
	tests := []struct {
		src  string
		want bytecode.OpCode
	}{
		{"typeof x;", bytecode.TypeOf},
		{"void 0;", bytecode.Void},
		{"delete x;", bytecode.Delete},
		{"!true;", bytecode.Not},
		{"++x;", bytecode.Increment},
		{"--x;", bytecode.Decrement},
	}
	for _, tt := range tests {
		p := New(tt.src)
		program := p.ParseScript()
		if len(p.Errors()) != 0 {
			t.Fatalf("%s: unexpected errors: %v", tt.src, p.Errors())
		}
		found := false
		for _, op := range instructionOps(program.Instructions) {
			if op == tt.want {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s: expected opcode %s in output", tt.src, tt.want)
		}
	}
}

func TestParseUnexpectedTokenRecordsError(t *testing.T) {
	p := New("let = 1;")
	p.ParseScript()
	if len(p.Errors()) == 0 {
		t.Fatal("expected a syntax error for a missing binding identifier")
	}
}

func TestParseThrowStatement(t *testing.T) {
	p := New("throw 1;")
	program := p.ParseScript()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	ops := instructionOps(program.Instructions)
	want := []bytecode.OpCode{bytecode.Const, bytecode.Throw, bytecode.Halt}
	if len(ops) != len(want) {
		t.Fatalf("got opcodes %v, want %v", ops, want)
	}
}
