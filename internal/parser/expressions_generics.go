package parser

import (
	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/diagnostics"
	"github.com/tarn-lang/tarn/internal/token"
)

// parsePathOrGeneric handles the '::' infix. The two-token sequence
// '::' '<' is the only marker that opens a generic-argument list in
// expression position; a plain '::' is scoped member access. Outside
// the marker, '<' and '>' stay ordinary comparison operators; no
// lookahead into identifier kinds happens anywhere.
func (p *Parser) parsePathOrGeneric(left ast.Expression) ast.Expression {
	tok := p.curToken // '::'

	if p.peekTokenIs(token.LT) {
		p.nextToken() // cur = '<'
		args, ok := p.parseGenericArguments()
		if !ok {
			return nil
		}
		return &ast.GenericExpression{Token: tok, Base: left, Arguments: args}
	}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	return &ast.PathExpression{
		Token:  tok,
		Left:   left,
		Member: &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme},
	}
}

// parseGenericArguments parses a generic-argument list. curToken is the
// opening '<' on entry and the matching '>' on exit. A '>>' closes two
// open lists at once: it is split into two logical '>' tokens, the
// second re-injected for the enclosing list.
func (p *Parser) parseGenericArguments() ([]ast.GenericArgument, bool) {
	open := p.curToken
	p.genericDepth++
	defer func() { p.genericDepth-- }()

	var args []ast.GenericArgument
	for {
		p.nextToken()
		arg, ok := p.parseGenericArgument()
		if !ok {
			return nil, false
		}
		args = append(args, arg)

		switch p.peekToken.Type {
		case token.COMMA:
			p.nextToken()
		case token.GT:
			p.nextToken() // cur = '>'
			return args, true
		case token.SHR:
			if p.genericDepth < 2 {
				// The second half of '>>' would close a list that was
				// never opened.
				p.errorf(diagnostics.ErrP001, p.peekToken, "'>>' closes two argument lists but only one is open")
				return nil, false
			}
			second := p.peekToken
			second.Type = token.GT
			second.Lexeme = ">"
			second.Literal = ">"
			second.Column++
			p.peekToken.Type = token.GT
			p.peekToken.Lexeme = ">"
			p.peekToken.Literal = ">"
			p.injected = append([]token.Token{second}, p.injected...)
			p.nextToken() // cur = first '>', closing this list
			return args, true
		case token.LT, token.SHL, token.LT_EQ, token.GT_EQ:
			p.errorf(diagnostics.ErrP002, p.peekToken)
			return nil, false
		case token.EOF, token.NEWLINE:
			p.errorf(diagnostics.ErrP001, open, "generic argument list is never closed")
			return nil, false
		default:
			p.errorf(diagnostics.ErrP003, p.peekToken, p.peekToken.Lexeme, "',' or '>'")
			return nil, false
		}
	}
}

// parseGenericArgument parses one argument slot: a type-expression, or
// a constant-expression. Const arguments containing a top-level
// comparison or shift must be parenthesized; the caller rejects the
// bare operators it finds after an unparenthesized argument.
func (p *Parser) parseGenericArgument() (ast.GenericArgument, bool) {
	switch p.curToken.Type {
	case token.LPAREN:
		// Parenthesized const expression: comparisons and shifts are
		// unrestricted inside.
		outerNoStruct := p.noStructLit
		p.noStructLit = false
		p.nextToken()
		expr := p.parseExpression(LOWEST)
		p.noStructLit = outerNoStruct
		if expr == nil {
			return ast.GenericArgument{}, false
		}
		if !p.expectPeek(token.RPAREN) {
			return ast.GenericArgument{}, false
		}
		return ast.GenericArgument{Const: expr}, true

	case token.INT, token.FLOAT, token.CHAR, token.STRING, token.TRUE, token.FALSE, token.MINUS:
		// Unparenthesized const expression: parsed above shift
		// precedence, so a top-level '<'/'>'/'<<'/'>>' is left for the
		// caller, which reports it as ambiguous.
		expr := p.parseExpression(SHIFT)
		if expr == nil {
			return ast.GenericArgument{}, false
		}
		return ast.GenericArgument{Const: expr}, true

	default:
		typ := p.parseType()
		if typ == nil {
			return ast.GenericArgument{}, false
		}
		return ast.GenericArgument{Type: typ}, true
	}
}
