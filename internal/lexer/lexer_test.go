package lexer

import (
	"testing"

	"github.com/thegreatercurve/glyn-sub000/internal/token"
)

func TestNextBasicTokens(t *testing.T) {
	input := `let x = 1 + 2; print(x);`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.LET, "let"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.NUMBER_INT, "1"},
		{token.PLUS, "+"},
		{token.NUMBER_INT, "2"},
		{token.SEMICOLON, ";"},
		{token.PRINT, "print"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.Next()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - wrong type. expected=%d, got=%d (literal=%q)", i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - wrong literal. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextStringsKeepDelimiters(t *testing.T) {
	l := New(`"hi" 'lo'`)

	tok := l.Next()
	if tok.Type != token.STRING || tok.Literal != `"hi"` {
		t.Fatalf("expected raw double-quoted lexeme, got %q", tok.Literal)
	}

	tok = l.Next()
	if tok.Type != token.STRING || tok.Literal != `'lo'` {
		t.Fatalf("expected raw single-quoted lexeme, got %q", tok.Literal)
	}
}

func TestNextTracksLineAndColumn(t *testing.T) {
	l := New("a\nbb")

	tok := l.Next()
	if tok.Line != 1 || tok.Column != 1 {
		t.Fatalf("expected 1:1, got %d:%d", tok.Line, tok.Column)
	}

	tok = l.Next()
	if tok.Line != 2 || tok.Column != 1 {
		t.Fatalf("expected 2:1, got %d:%d", tok.Line, tok.Column)
	}
}

func TestNextMultiCharPunctuators(t *testing.T) {
	tests := []struct {
		input string
		want  token.Type
	}{
		{"===", token.STRICT_EQ},
		{"!==", token.STRICT_NEQ},
		{">>>", token.USHR},
		{"**", token.STAR_STAR},
		{"??", token.NULLISH},
		{"?.", token.OPTIONAL_CHAIN},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.Next()
		if tok.Type != tt.want {
			t.Fatalf("input %q: expected type %d, got %d", tt.input, tt.want, tok.Type)
		}
	}
}

func TestNextIllegalToken(t *testing.T) {
	l := New("@")
	tok := l.Next()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %d", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected one lexer error, got %d", len(l.Errors()))
	}
}

func TestNewStripsBOM(t *testing.T) {
	l := New("\xEF\xBB\xBFlet")
	tok := l.Next()
	if tok.Type != token.LET {
		t.Fatalf("expected BOM to be stripped before the first token, got type %d", tok.Type)
	}
}
