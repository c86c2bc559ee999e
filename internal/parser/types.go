package parser

import (
	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/diagnostics"
	"github.com/tarn-lang/tarn/internal/token"
)

// parseType parses a type-expression with curToken at its first token,
// leaving curToken at its last. In type position a '<' directly after a
// name opens a generic-argument list; the '::<' marker is only needed
// in expression position.
func (p *Parser) parseType() ast.Type {
	switch p.curToken.Type {
	case token.STAR:
		tok := p.curToken
		p.nextToken()
		elem := p.parseType()
		if elem == nil {
			return nil
		}
		return &ast.PointerType{Token: tok, Elem: elem}

	case token.LBRACKET:
		tok := p.curToken
		if p.peekTokenIs(token.RBRACKET) {
			p.nextToken() // cur = ']'
			p.nextToken()
			elem := p.parseType()
			if elem == nil {
				return nil
			}
			return &ast.SliceType{Token: tok, Elem: elem}
		}
		p.nextToken()
		length := p.parseExpression(LOWEST)
		if length == nil {
			return nil
		}
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		p.nextToken()
		elem := p.parseType()
		if elem == nil {
			return nil
		}
		return &ast.ArrayType{Token: tok, Length: length, Elem: elem}

	case token.LPAREN:
		tok := p.curToken
		var elems []ast.Type
		if p.peekTokenIs(token.RPAREN) {
			p.nextToken()
			return &ast.TupleType{Token: tok}
		}
		for {
			p.nextToken()
			elem := p.parseType()
			if elem == nil {
				return nil
			}
			elems = append(elems, elem)
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return &ast.TupleType{Token: tok, Elements: elems}

	case token.IDENT:
		nameTok := p.curToken
		if p.peekTokenIs(token.LT) {
			p.nextToken() // cur = '<'
			args, ok := p.parseGenericArguments()
			if !ok {
				return nil
			}
			return &ast.GenericType{Token: nameTok, Base: nameTok.Lexeme, Arguments: args}
		}
		return &ast.NamedType{Token: nameTok, Name: nameTok.Lexeme}

	default:
		p.errorf(diagnostics.ErrP003, p.curToken, p.curToken.Lexeme, "a type")
		return nil
	}
}
