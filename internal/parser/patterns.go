package parser

import (
	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/diagnostics"
	"github.com/tarn-lang/tarn/internal/token"
)

// parsePattern parses a pattern with curToken at its first token,
// leaving curToken at its last. Whether a bare identifier is a binding
// or a payload-less variant case is settled during elaboration, once
// constructor names are known.
func (p *Parser) parsePattern() ast.Pattern {
	switch p.curToken.Type {
	case token.UNDERSCORE:
		return &ast.WildcardPattern{Token: p.curToken}

	case token.MUT:
		tok := p.curToken
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		pat := &ast.BindingPattern{Token: tok, Name: p.curToken.Lexeme, Mutable: true}
		return p.parseBindingAnnotation(pat)

	case token.INT, token.FLOAT, token.CHAR, token.STRING, token.TRUE, token.FALSE, token.MINUS:
		return p.parseLiteralOrRangePattern()

	case token.LPAREN:
		return p.parseTuplePattern()

	case token.IDENT:
		return p.parseNamePattern()

	default:
		p.errorf(diagnostics.ErrP003, p.curToken, p.curToken.Lexeme, "a pattern")
		return nil
	}
}

func (p *Parser) parseBindingAnnotation(pat *ast.BindingPattern) ast.Pattern {
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		pat.Annotation = p.parseType()
		if pat.Annotation == nil {
			return nil
		}
	}
	return pat
}

func (p *Parser) parseLiteralOrRangePattern() ast.Pattern {
	tok := p.curToken
	low := p.parseExpression(RANGE)
	if low == nil {
		return nil
	}
	if p.peekTokenIs(token.DOTDOT) {
		p.nextToken() // cur = '..'
		rangeTok := p.curToken
		p.nextToken()
		high := p.parseExpression(RANGE)
		if high == nil {
			return nil
		}
		return &ast.RangePattern{Token: rangeTok, Low: low, High: high}
	}
	return &ast.LiteralPattern{Token: tok, Value: low}
}

func (p *Parser) parseTuplePattern() ast.Pattern {
	tok := p.curToken
	var elements []ast.Pattern

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.TuplePattern{Token: tok}
	}

	sawComma := false
	for {
		p.nextToken()
		elem := p.parsePattern()
		if elem == nil {
			return nil
		}
		elements = append(elements, elem)
		if p.peekTokenIs(token.COMMA) {
			sawComma = true
			p.nextToken()
			if p.peekTokenIs(token.RPAREN) { // trailing comma
				break
			}
			continue
		}
		break
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	// A parenthesized single pattern is just grouping.
	if len(elements) == 1 && !sawComma {
		return elements[0]
	}
	return &ast.TuplePattern{Token: tok, Elements: elements}
}

func (p *Parser) parseNamePattern() ast.Pattern {
	nameTok := p.curToken

	switch p.peekToken.Type {
	case token.COLONCOLON:
		// Qualified variant: Opt::Some(x), Color::Red
		typeName := &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme}
		p.nextToken()
		vpTok := p.curToken
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		vp := &ast.VariantPattern{
			Token:    vpTok,
			TypeName: typeName,
			Case:     &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme},
		}
		return p.parseVariantPayload(vp)

	case token.LPAREN:
		// Unqualified variant with payload: Some(x)
		vp := &ast.VariantPattern{
			Token: nameTok,
			Case:  &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme},
		}
		return p.parseVariantPayload(vp)

	case token.LBRACE:
		return p.parseStructPattern(nameTok)

	default:
		pat := &ast.BindingPattern{Token: nameTok, Name: nameTok.Lexeme}
		return p.parseBindingAnnotation(pat)
	}
}

func (p *Parser) parseVariantPayload(vp *ast.VariantPattern) ast.Pattern {
	if !p.peekTokenIs(token.LPAREN) {
		return vp
	}
	p.nextToken() // cur = '('
	p.nextToken()
	vp.Payload = p.parsePattern()
	if vp.Payload == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return vp
}

func (p *Parser) parseStructPattern(nameTok token.Token) ast.Pattern {
	sp := &ast.StructPattern{
		Token: nameTok,
		Name:  &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme},
	}
	p.nextToken() // cur = '{'

	for !p.peekTokenIs(token.RBRACE) {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		field := ast.StructPatternField{
			Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme},
		}
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			field.Pattern = p.parsePattern()
			if field.Pattern == nil {
				return nil
			}
		}
		sp.Fields = append(sp.Fields, field)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return sp
}
