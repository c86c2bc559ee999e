package parser

import (
	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/diagnostics"
)

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, ok := p.curToken.Literal.(int64)
	if !ok {
		p.errorf(diagnostics.ErrP005, p.curToken, p.curToken.Lexeme)
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	value, ok := p.curToken.Literal.(float64)
	if !ok {
		p.errorf(diagnostics.ErrP005, p.curToken, p.curToken.Lexeme)
		return nil
	}
	return &ast.FloatLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) parseCharLiteral() ast.Expression {
	value, ok := p.curToken.Literal.(rune)
	if !ok {
		p.errorf(diagnostics.ErrP005, p.curToken, p.curToken.Lexeme)
		return nil
	}
	return &ast.CharLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	value, _ := p.curToken.Literal.(bool)
	return &ast.BooleanLiteral{Token: p.curToken, Value: value}
}
