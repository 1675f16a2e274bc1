package parser

import (
	"strconv"
	"strings"

	"github.com/thegreatercurve/glyn-sub000/internal/bytecode"
	"github.com/thegreatercurve/glyn-sub000/internal/runtime"
	"github.com/thegreatercurve/glyn-sub000/internal/token"
)

// parseExpression is the expression-statement entry point; ECMA-262's
// Comma, Spread, Yield, Assignment and Conditional productions (§13.16,
// §13.2.5, §13.3.6, §13.15, §13.14) are reserved grammar slots, so this
// parses straight into the binary hierarchy.
func (p *Parser) parseExpression() {
	p.parseBinary(precLowest)
}

// parseBinary implements a precedence-climbing loop over ECMA-262's
// binary-operator grammar (§13.6-§13.13):
// parse one unary operand, then keep folding in binary operators whose
// precedence clears minPrec, recursing for each operator's right-hand
// side.
func (p *Parser) parseBinary(minPrec precedence) {
	p.parseUnary()

	for {
		opPrec, ok := precedences[p.current.Type]
		if !ok {
			return
		}
		stop := opPrec < minPrec
		if !isRightAssociative(opPrec) {
			stop = opPrec <= minPrec
		}
		if stop {
			return
		}

		op := p.current.Type
		p.advance()
		p.parseBinary(opPrec)
		p.emitBinary(op)
	}
}

func (p *Parser) emitBinary(op token.Type) {
	switch op {
	case token.PLUS:
		p.builder.Emit(bytecode.Add)
	case token.MINUS:
		p.builder.Emit(bytecode.Subtract)
	case token.STAR:
		p.builder.Emit(bytecode.Multiply)
	case token.SLASH:
		p.builder.Emit(bytecode.Divide)
	case token.PERCENT:
		p.builder.Emit(bytecode.Modulo)
	case token.STAR_STAR:
		p.builder.Emit(bytecode.Exponent)
	case token.EQ:
		p.builder.Emit(bytecode.Equal)
	case token.NEQ:
		p.builder.Emit(bytecode.NotEqual)
	case token.STRICT_EQ:
		p.builder.Emit(bytecode.StrictEqual)
	case token.STRICT_NEQ:
		p.builder.Emit(bytecode.StrictNotEqual)
	case token.LT:
		p.builder.Emit(bytecode.Less)
	case token.GT:
		p.builder.Emit(bytecode.Greater)
	case token.LTE:
		p.builder.Emit(bytecode.LessOrEqual)
	case token.GTE:
		p.builder.Emit(bytecode.GreaterOrEqual)
	case token.AND:
		p.builder.Emit(bytecode.BitAnd)
	case token.OR:
		p.builder.Emit(bytecode.BitOr)
	case token.XOR:
		p.builder.Emit(bytecode.BitXor)
	case token.SHL:
		p.builder.Emit(bytecode.BitShiftLeft)
	case token.SHR:
		p.builder.Emit(bytecode.BitShiftRight)
	case token.USHR:
		p.builder.Emit(bytecode.BitShiftRightUnsigned)
	case token.LOGICAL_AND:
		p.builder.Emit(bytecode.LogicalAnd)
	case token.LOGICAL_OR, token.NULLISH:
		// Nullish-coalescing (ECMA-262 §13.13.1) has no dedicated opcode
		// (the ISA is a closed table); it shares LogicalOr's eager instruction,
		// which is an approximation — true ?? semantics test for
		// null/undefined specifically, not general falsiness.
		p.builder.Emit(bytecode.LogicalOr)
	default:
		p.errorf("unexpected binary operator %q", op)
	}
}

// parseUnary implements ECMA-262 §13.5's UnaryExpression production,
// wiring typeof/void/delete/prefix-incr-decr alongside +, -, !.
func (p *Parser) parseUnary() {
	switch p.current.Type {
	case token.PLUS:
		p.advance()
		p.parseUnary()
		p.builder.Emit(bytecode.Plus)
	case token.MINUS:
		p.advance()
		p.parseUnary()
		p.builder.Emit(bytecode.Minus)
	case token.LOGICAL_NOT:
		p.advance()
		p.parseUnary()
		p.builder.Emit(bytecode.Not)
	case token.TYPEOF:
		p.advance()
		p.parseUnary()
		p.builder.Emit(bytecode.TypeOf)
	case token.VOID:
		p.advance()
		p.parseUnary()
		p.builder.Emit(bytecode.Void)
	case token.DELETE:
		p.advance()
		p.parseUnary()
		p.builder.Emit(bytecode.Delete)
	case token.INC:
		p.advance()
		p.parseUnary()
		p.builder.Emit(bytecode.Increment)
	case token.DEC:
		p.advance()
		p.parseUnary()
		p.builder.Emit(bytecode.Decrement)
	default:
		p.parsePrimary()
	}
}

// parsePrimary implements ECMA-262 §13.2's PrimaryExpression production:
// identifier-reference (-> ResolveBinding) or literal.
func (p *Parser) parsePrimary() {
	switch p.current.Type {
	case token.IDENT:
		idx := p.builder.AddIdentifier(bytecode.Identifier{Kind: bytecode.RefIdentifier, Name: p.current.Literal})
		p.builder.EmitByte(bytecode.ResolveBinding, idx)
		p.advance()
	case token.TRUE:
		p.builder.Emit(bytecode.True)
		p.advance()
	case token.FALSE:
		p.builder.Emit(bytecode.False)
		p.advance()
	case token.NULL:
		p.builder.Emit(bytecode.Null)
		p.advance()
	case token.UNDEFINED:
		p.builder.Emit(bytecode.Undefined)
		p.advance()
	case token.NUMBER_INT, token.NUMBER_FLOAT:
		p.parseNumberLiteral()
	case token.STRING:
		p.parseStringLiteral()
	case token.LPAREN:
		p.advance()
		p.parseExpression()
		p.expect(token.RPAREN)
	default:
		p.errorf("unexpected token %q", p.current.Literal)
		p.advance()
	}
}

func (p *Parser) parseNumberLiteral() {
	lit := p.current.Literal
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		p.errorf("invalid numeric literal %q", lit)
		f = 0
	}
	idx := p.builder.AddConstant(runtime.Number(f))
	p.builder.EmitByte(bytecode.Const, idx)
	p.advance()
}

func (p *Parser) parseStringLiteral() {
	s := unquoteStringLiteral(p.current.Literal)
	idx := p.builder.AddConstant(runtime.String(s))
	p.builder.EmitByte(bytecode.Const, idx)
	p.advance()
}

// unquoteStringLiteral strips the delimiting quotes the lexer carries
// verbatim (quote stripping happens here rather than in the lexer) and
// resolves the common single-character escape sequences; unrecognized
// escapes pass the following character through unchanged.
func unquoteStringLiteral(raw string) string {
	if len(raw) < 2 {
		return ""
	}
	inner := raw[1 : len(raw)-1]

	var sb strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c != '\\' || i == len(inner)-1 {
			sb.WriteByte(c)
			continue
		}
		i++
		switch inner[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			sb.WriteByte(0)
		default:
			sb.WriteByte(inner[i])
		}
	}
	return sb.String()
}
