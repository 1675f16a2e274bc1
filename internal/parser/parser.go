// Package parser implements the single-pass recursive-descent parser
// and bytecode emitter (docs/architecture/bytecode-vm-design.md): given a lexer it consumes tokens
// to EOF, emitting instructions and populating the constant/identifier
// pools directly — there is no intermediate AST.
package parser

import (
	"fmt"

	"github.com/thegreatercurve/glyn-sub000/internal/bytecode"
	"github.com/thegreatercurve/glyn-sub000/internal/lexer"
	"github.com/thegreatercurve/glyn-sub000/internal/token"
)

// precedence mirrors ECMA-262's operator-precedence table (lowest to
// highest); only the levels this parser actually climbs over are named;
// Comma, Spread, Yield, Assignment, and Conditional sit below
// precLowest and are not wired (the grammar slot is reserved, as with
// Unary's originally-unwired operators).
type precedence int

const (
	precLowest precedence = iota
	precCoalesce
	precLogicalOr
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precExponent
)

var precedences = map[token.Type]precedence{
	token.NULLISH:     precCoalesce,
	token.LOGICAL_OR:  precLogicalOr,
	token.LOGICAL_AND: precLogicalAnd,
	token.OR:          precBitOr,
	token.XOR:         precBitXor,
	token.AND:         precBitAnd,
	token.EQ:          precEquality,
	token.NEQ:         precEquality,
	token.STRICT_EQ:   precEquality,
	token.STRICT_NEQ:  precEquality,
	token.LT:          precRelational,
	token.GT:          precRelational,
	token.LTE:         precRelational,
	token.GTE:         precRelational,
	token.SHL:         precShift,
	token.SHR:         precShift,
	token.USHR:        precShift,
	token.PLUS:        precAdditive,
	token.MINUS:       precAdditive,
	token.STAR:        precMultiplicative,
	token.SLASH:       precMultiplicative,
	token.PERCENT:     precMultiplicative,
	token.STAR_STAR:   precExponent,
}

func isRightAssociative(p precedence) bool {
	return p == precExponent
}

// Parser holds one-token lookahead (current) plus a second-token peek,
// a bytecode builder, and accumulated syntax errors.
type Parser struct {
	l *lexer.Lexer

	current token.Token
	peek    token.Token

	builder *bytecode.Builder
	errors  []string
}

// New creates a Parser over source, priming current/peek.
func New(source string) *Parser {
	p := &Parser{l: lexer.New(source), builder: bytecode.NewBuilder()}
	p.advance()
	p.advance()
	return p
}

// Errors returns the syntax errors accumulated while parsing.
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) advance() {
	p.current = p.peek
	p.peek = p.l.Next()
}

func (p *Parser) isEOF() bool {
	return p.current.Type == token.EOF
}

// optional consumes current if it matches t; otherwise it is a no-op.
func (p *Parser) optional(t token.Type) {
	if p.current.Type == t {
		p.advance()
	}
}

// expect consumes current if it matches t, else records UnexpectedToken
// and leaves current in place — no panic-mode recovery; the parse
// aborts on the first syntax error.
func (p *Parser) expect(t token.Type) bool {
	if p.current.Type != t {
		p.errorf("unexpected token %q, expected %q", p.current.Literal, t)
		return false
	}
	p.advance()
	return true
}

func (p *Parser) errorf(format string, args ...any) {
	pos := p.current.Pos()
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, fmt.Sprintf("%d:%d: %s", pos.Line, pos.Column, msg))
}
