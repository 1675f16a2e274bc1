package token

import "testing"

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  Type
	}{
		{"let", LET},
		{"const", CONST},
		{"typeof", TYPEOF},
		{"print", PRINT},
		{"notAKeyword", IDENT},
		{"", IDENT},
	}
	for _, tt := range tests {
		if got := LookupIdent(tt.ident); got != tt.want {
			t.Errorf("LookupIdent(%q) = %d, want %d", tt.ident, got, tt.want)
		}
	}
}

func TestIsKeyword(t *testing.T) {
	if !IsKeyword(LET) {
		t.Error("LET should be a keyword")
	}
	if IsKeyword(IDENT) {
		t.Error("IDENT should not be a keyword")
	}
	if IsKeyword(LPAREN) {
		t.Error("LPAREN should not be a keyword")
	}
}

func TestIsIDStartAndContinue(t *testing.T) {
	if !IsIDStart('_') || !IsIDStart('$') || !IsIDStart('a') {
		t.Error("'_', '$', and letters must start an identifier")
	}
	if IsIDStart('1') {
		t.Error("digits must not start an identifier")
	}
	if !IsIDContinue('1') {
		t.Error("digits may continue an identifier")
	}
}

func TestIsWhitespaceAndLineTerminator(t *testing.T) {
	if !IsWhitespace(' ') || !IsWhitespace('\t') || !IsWhitespace(0xFEFF) {
		t.Error("expected space/tab/BOM to be whitespace")
	}
	if IsWhitespace('\n') {
		t.Error("newline is a line terminator, not whitespace")
	}
	if !IsLineTerminator('\n') || !IsLineTerminator('\r') {
		t.Error("expected LF/CR to be line terminators")
	}
}

func TestTokenPos(t *testing.T) {
	tok := Token{Type: IDENT, Literal: "x", Line: 3, Column: 7}
	pos := tok.Pos()
	if pos.Line != 3 || pos.Column != 7 {
		t.Errorf("Pos() = %+v, want {3 7}", pos)
	}
}
