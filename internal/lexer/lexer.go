// Package lexer turns ECMAScript source text into a lazy sequence of
// tokens (ECMA-262 §12 Lexical Grammar). It handles UTF-8 source correctly; "column"
// counts Unicode code points (runes), not bytes or display width,
// mirroring the teacher lexer's (internal/lexer/lexer.go) convention.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/thegreatercurve/glyn-sub000/internal/token"
)

// Error describes an illegal-input condition found while scanning.
type Error struct {
	Message string
	Pos     token.Position
}

// Lexer scans source text into Tokens on demand via Next.
type Lexer struct {
	input        string
	errors       []Error
	position     int // byte offset of ch
	readPosition int // byte offset after ch
	line         int
	column       int
	ch           rune
}

// New creates a Lexer over input, stripping a leading UTF-8 BOM if present
// (matching common host behavior for source files).
func New(input string) *Lexer {
	if len(input) >= 3 && input[0] == 0xEF && input[1] == 0xBB && input[2] == 0xBF {
		input = input[3:]
	}
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Errors returns accumulated illegal-input diagnostics.
func (l *Lexer) Errors() []Error {
	return l.errors
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) peekCharN(n int) rune {
	pos := l.readPosition
	for i := 0; i < n-1 && pos < len(l.input); i++ {
		_, size := utf8.DecodeRuneInString(l.input[pos:])
		pos += size
	}
	if pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos:])
	return r
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.column}
}

func (l *Lexer) addError(msg string) {
	l.errors = append(l.errors, Error{Message: msg, Pos: l.currentPos()})
}

// Next scans and returns the next Token, advancing the lexer. At end of
// input it returns a Token of type token.EOF repeatedly.
func (l *Lexer) Next() token.Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()

	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, Line: pos.Line, Column: pos.Column}
	case l.ch == '"' || l.ch == '\'':
		return l.readString(pos)
	case l.ch == '`':
		return l.readTemplate(pos)
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		return l.readNumber(pos)
	case token.IsIDStart(l.ch):
		return l.readIdentifierOrKeyword(pos)
	default:
		return l.readPunctuatorOrIllegal(pos)
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		if token.IsWhitespace(l.ch) || token.IsLineTerminator(l.ch) {
			l.readChar()
			continue
		}
		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != 0 && !token.IsLineTerminator(l.ch) {
				l.readChar()
			}
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			l.readChar()
			l.readChar()
			for l.ch != 0 && !(l.ch == '*' && l.peekChar() == '/') {
				l.readChar()
			}
			if l.ch != 0 {
				l.readChar()
				l.readChar()
			}
			continue
		}
		break
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (l *Lexer) readIdentifierOrKeyword(pos token.Position) token.Token {
	start := l.position
	for token.IsIDContinue(l.ch) {
		l.readChar()
	}
	lit := l.input[start:l.position]
	return token.Token{Type: token.LookupIdent(lit), Literal: lit, Line: pos.Line, Column: pos.Column}
}

// readNumber accepts an integer part and an optional '.'+fractional part
// of ECMA-262 §12.9.3's NumericLiteral grammar; hex/oct/bin/exponent/
// BigInt suffixes are left as extension points (not recognized here).
func (l *Lexer) readNumber(pos token.Position) token.Token {
	start := l.position
	isFloat := false
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	lit := l.input[start:l.position]
	t := token.NUMBER_INT
	if isFloat {
		t = token.NUMBER_FLOAT
	}
	return token.Token{Type: t, Literal: lit, Line: pos.Line, Column: pos.Column}
}

// readString consumes quote-to-matching-quote; escape processing is
// deferred to the parser/codegen, so the raw lexeme (including the
// delimiting quotes) is carried verbatim.
func (l *Lexer) readString(pos token.Position) token.Token {
	quote := l.ch
	start := l.position
	l.readChar()
	for l.ch != quote && l.ch != 0 {
		if l.ch == '\\' && l.peekChar() != 0 {
			l.readChar()
		}
		l.readChar()
	}
	if l.ch == quote {
		l.readChar()
	} else {
		l.addError("unterminated string literal")
	}
	lit := l.input[start:l.position]
	return token.Token{Type: token.STRING, Literal: lit, Line: pos.Line, Column: pos.Column}
}

// readTemplate consumes a template literal part as a single opaque
// lexeme; `${expr}` placeholder interpolation (ECMA-262 §12.9.6) is a
// future extension, not recognized here.
func (l *Lexer) readTemplate(pos token.Position) token.Token {
	start := l.position
	l.readChar()
	for l.ch != '`' && l.ch != 0 {
		if l.ch == '\\' && l.peekChar() != 0 {
			l.readChar()
		}
		l.readChar()
	}
	if l.ch == '`' {
		l.readChar()
	} else {
		l.addError("unterminated template literal")
	}
	lit := l.input[start:l.position]
	return token.Token{Type: token.TEMPLATE, Literal: lit, Line: pos.Line, Column: pos.Column}
}

// punctuators lists lead characters the lexer recognizes, longest match
// first, implementing maximal munch (ECMA-262 §12's tokenization goal).
type punctRule struct {
	lexeme string
	typ    token.Type
}

var punctRules = buildPunctRules()

func buildPunctRules() []punctRule {
	rules := []punctRule{
		{">>>=", token.USHR_ASSIGN},
		{"...", token.ELLIPSIS},
		{">>>", token.USHR},
		{"===", token.STRICT_EQ},
		{"!==", token.STRICT_NEQ},
		{"**=", token.STAR_STAR_ASSIGN},
		{"<<=", token.SHL_ASSIGN},
		{">>=", token.SHR_ASSIGN},
		{"&&=", token.LOGICAL_AND_ASSIGN},
		{"||=", token.LOGICAL_OR_ASSIGN},
		{"??=", token.NULLISH_ASSIGN},
		{"=>", token.ARROW},
		{"==", token.EQ},
		{"!=", token.NEQ},
		{"<=", token.LTE},
		{">=", token.GTE},
		{"&&", token.LOGICAL_AND},
		{"||", token.LOGICAL_OR},
		{"??", token.NULLISH},
		{"?.", token.OPTIONAL_CHAIN},
		{"++", token.INC},
		{"--", token.DEC},
		{"**", token.STAR_STAR},
		{"<<", token.SHL},
		{">>", token.SHR},
		{"+=", token.PLUS_ASSIGN},
		{"-=", token.MINUS_ASSIGN},
		{"*=", token.STAR_ASSIGN},
		{"/=", token.SLASH_ASSIGN},
		{"%=", token.PERCENT_ASSIGN},
		{"&=", token.AND_ASSIGN},
		{"|=", token.OR_ASSIGN},
		{"^=", token.XOR_ASSIGN},
		{"(", token.LPAREN}, {")", token.RPAREN},
		{"{", token.LBRACE}, {"}", token.RBRACE},
		{"[", token.LBRACKET}, {"]", token.RBRACKET},
		{";", token.SEMICOLON}, {",", token.COMMA},
		{".", token.DOT}, {":", token.COLON}, {"?", token.QUESTION},
		{"=", token.ASSIGN},
		{"+", token.PLUS}, {"-", token.MINUS}, {"*", token.STAR},
		{"/", token.SLASH}, {"%", token.PERCENT},
		{"<", token.LT}, {">", token.GT},
		{"&", token.AND}, {"|", token.OR}, {"^", token.XOR}, {"~", token.NOT},
		{"!", token.LOGICAL_NOT},
	}
	return rules
}

func (l *Lexer) readPunctuatorOrIllegal(pos token.Position) token.Token {
	// Maximal munch: try longest lexemes first (punctRules is sorted by
	// construction) with up to 4-char lookahead (covers >>>=).
	window := []rune{l.ch, l.peekChar(), l.peekCharN(2), l.peekCharN(3)}
	for _, rule := range punctRules {
		n := len(rule.lexeme)
		if n > len(window) {
			continue
		}
		if matchesWindow(window[:n], rule.lexeme) {
			for i := 0; i < n; i++ {
				l.readChar()
			}
			return token.Token{Type: rule.typ, Literal: rule.lexeme, Line: pos.Line, Column: pos.Column}
		}
	}
	illegal := string(l.ch)
	l.addError("unrecognized character " + illegal)
	l.readChar()
	return token.Token{Type: token.ILLEGAL, Literal: illegal, Line: pos.Line, Column: pos.Column}
}

func matchesWindow(window []rune, lexeme string) bool {
	var sb strings.Builder
	for _, r := range window {
		sb.WriteRune(r)
	}
	return sb.String() == lexeme
}
