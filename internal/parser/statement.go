package parser

import (
	"github.com/thegreatercurve/glyn-sub000/internal/bytecode"
	"github.com/thegreatercurve/glyn-sub000/internal/token"
)

// ParseScript implements ECMA-262 §16.1.6's ParseScript: consume every
// statement to EOF, stopping at the first syntax error, then surrender
// the built ExecutableProgram.
func (p *Parser) ParseScript() *bytecode.ExecutableProgram {
	for !p.isEOF() && len(p.errors) == 0 {
		p.parseStatement()
	}
	p.builder.Emit(bytecode.Halt)
	return p.builder.Program()
}

// parseStatement implements ECMA-262 §14's Statement dispatch: a
// let/const (or, as a supplement, var) binding-pattern-start starts a
// LexicalDeclaration; `print(expr)` and `throw expr` are recognized as
// their own statement forms (the former a non-standard debug
// extension, the latter an unwind-only ThrowStatement per ECMA-262
// §14.14); everything else is an expression statement. Every statement
// form ends with an optional semicolon.
func (p *Parser) parseStatement() {
	switch {
	case p.current.Type == token.LET && p.peek.Type == token.IDENT:
		p.parseLexicalDeclaration(token.LET)
	case p.current.Type == token.CONST && p.peek.Type == token.IDENT:
		p.parseLexicalDeclaration(token.CONST)
	case p.current.Type == token.VAR && p.peek.Type == token.IDENT:
		p.parseLexicalDeclaration(token.VAR)
	case p.current.Type == token.PRINT:
		p.parsePrintStatement()
	case p.current.Type == token.THROW:
		p.parseThrowStatement()
	default:
		p.parseExpressionStatement()
		return
	}
	p.optional(token.SEMICOLON)
}

// parseLexicalDeclaration implements ECMA-262 §14.3.1's
// LexicalDeclaration: `let|const` BindingList, one BindingIdentifier
// per binding (object
// and array binding patterns are grammar placeholders, not parsed).
// Each binding pushes an identifier-pool entry; an initializer
// evaluates then emits InitializeReferencedBinding, otherwise Undefined
// is pushed first so every binding is initialized on declaration.
func (p *Parser) parseLexicalDeclaration(kw token.Type) {
	kind := bytecode.DeclLet
	switch kw {
	case token.CONST:
		kind = bytecode.DeclConst
	case token.VAR:
		kind = bytecode.DeclVar
	}
	p.advance() // eat let/const/var

	for {
		p.parseLexicalBinding(kind)
		if p.current.Type != token.COMMA {
			break
		}
		p.advance()
	}
}

func (p *Parser) parseLexicalBinding(kind bytecode.DeclarationKind) {
	if p.current.Type != token.IDENT {
		p.errorf("unexpected token %q, expected binding identifier", p.current.Literal)
		return
	}
	name := p.current.Literal
	p.advance()

	idx := p.builder.AddIdentifier(bytecode.Identifier{Kind: kind, Name: name})

	if p.current.Type == token.ASSIGN {
		p.advance()
		p.parseExpression()
	} else {
		p.builder.Emit(bytecode.Undefined)
	}
	p.builder.EmitByte(bytecode.InitializeReferencedBinding, idx)
}

// parsePrintStatement implements the non-standard `print(expr)` debug
// statement: evaluate expr, emit Print to pop and report it.
func (p *Parser) parsePrintStatement() {
	p.advance() // eat 'print'
	p.expect(token.LPAREN)
	p.parseExpression()
	p.expect(token.RPAREN)
	p.builder.Emit(bytecode.Print)
}

// parseThrowStatement implements ECMA-262 §14.14's ThrowStatement:
// `throw` AssignmentExpression, emitting the expression followed by the
// unwind-only Throw opcode (there is no catch-clause opcode yet).
func (p *Parser) parseThrowStatement() {
	p.advance() // eat 'throw'
	p.parseExpression()
	p.builder.Emit(bytecode.Throw)
}

// parseExpressionStatement evaluates the expression, then discards the
// result with Pop — unless this is the script's final statement, in
// which case the value is left on the stack as the script's completion
// value (ECMA-262 §16.1.6 ScriptEvaluation returns the completion of
// the last ExpressionStatement; here that's simply "nothing follows
// before EOF", decidable with one token of lookahead since this parser
// is single-pass).
func (p *Parser) parseExpressionStatement() {
	p.parseExpression()
	p.optional(token.SEMICOLON)
	if !p.isEOF() {
		p.builder.Emit(bytecode.Pop)
	}
}
