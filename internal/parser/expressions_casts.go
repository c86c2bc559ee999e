package parser

import (
	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/token"
)

// parseCastExpression handles the five cast operators as postfix-like
// infixes: value OP [Type]. The destination type may be omitted when
// the surrounding context can supply it; the analyzer decides whether
// inference succeeds.
func (p *Parser) parseCastExpression(left ast.Expression) ast.Expression {
	expr := &ast.CastExpression{
		Token:    p.curToken,
		Operator: p.curToken.Type,
		Value:    left,
	}
	if p.peekStartsType() {
		p.nextToken()
		expr.Target = p.parseType()
		if expr.Target == nil {
			return nil
		}
	}
	return expr
}

func (p *Parser) peekStartsType() bool {
	switch p.peekToken.Type {
	case token.IDENT, token.STAR, token.LBRACKET, token.LPAREN:
		return true
	}
	return false
}
