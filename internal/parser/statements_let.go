package parser

import (
	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/diagnostics"
	"github.com/tarn-lang/tarn/internal/token"
)

// parseLetStatement parses let, let-else and chained let-else forms.
// Chained clauses are attempted left to right at run time; a chain of
// two or more clauses must end in a divergent else block.
func (p *Parser) parseLetStatement() ast.Statement {
	stmt := &ast.LetStatement{Token: p.curToken}

	p.nextToken()
	clause, ok := p.parseLetClause(LOWEST)
	if !ok {
		return nil
	}
	stmt.Clauses = append(stmt.Clauses, clause)

	for p.peekTokenIs(token.ELSE) {
		p.nextToken() // cur = 'else'
		if p.peekTokenIs(token.LBRACE) {
			p.nextToken()
			stmt.ElseBlock = p.parseBlockStatement()
			return stmt
		}
		p.nextToken()
		clause, ok := p.parseLetClause(LOWEST)
		if !ok {
			return nil
		}
		stmt.Clauses = append(stmt.Clauses, clause)
	}

	if len(stmt.Clauses) > 1 {
		p.errorf(diagnostics.ErrP003, p.peekToken, p.peekToken.Lexeme,
			"a terminal '{' block after a let-else chain")
		return nil
	}
	return stmt
}

// parseLetClause parses "pattern = expression" with curToken at the
// pattern's first token.
func (p *Parser) parseLetClause(precedence int) (ast.LetClause, bool) {
	clause := ast.LetClause{Token: p.curToken}
	clause.Pattern = p.parsePattern()
	if clause.Pattern == nil {
		return clause, false
	}
	if !p.expectPeek(token.ASSIGN) {
		return clause, false
	}
	p.nextToken()
	clause.Value = p.parseExpression(precedence)
	if clause.Value == nil {
		return clause, false
	}
	return clause, true
}

// parseIfLetStatement parses the conjunctive and value-fallback if-let
// forms. Clause sources are parsed just above '&&' so conjuncts stay
// separate; a top-level '||' has no single binding type and is rejected
// outright.
func (p *Parser) parseIfLetStatement(ifTok token.Token) ast.Statement {
	stmt := &ast.IfLetStatement{Token: ifTok}

	outerNoStruct := p.noStructLit
	p.noStructLit = true
	defer func() { p.noStructLit = outerNoStruct }()

	p.nextToken() // cur = 'let'
	p.nextToken()
	clause, ok := p.parseCondLetClause()
	if !ok {
		return nil
	}
	stmt.Clauses = append(stmt.Clauses, clause)

	for {
		if p.peekTokenIs(token.OR) {
			p.errorf(diagnostics.ErrT002, p.peekToken)
			// Consume the disjunct to keep reporting later problems.
			p.nextToken()
			p.nextToken()
			if p.curTokenIs(token.LET) {
				p.nextToken()
				if _, ok := p.parseCondLetClause(); !ok {
					return nil
				}
			} else if p.parseExpression(AND) == nil {
				return nil
			}
			continue
		}
		if p.peekTokenIs(token.AND) {
			p.nextToken() // cur = '&&'
			andTok := p.curToken
			p.nextToken()
			if p.curTokenIs(token.LET) {
				p.nextToken()
				clause, ok := p.parseCondLetClause()
				if !ok {
					return nil
				}
				stmt.Clauses = append(stmt.Clauses, clause)
			} else {
				cond := p.parseExpression(AND)
				if cond == nil {
					return nil
				}
				stmt.Clauses = append(stmt.Clauses, ast.CondClause{Token: andTok, Value: cond})
			}
			continue
		}
		break
	}

	// Value fallbacks: "else EXPR" entries before the body retry the
	// first clause's pattern against alternate sources.
	for p.peekTokenIs(token.ELSE) && p.peekAhead(1).Type != token.LBRACE {
		if len(stmt.Clauses) > 1 {
			p.errorf(diagnostics.ErrP003, p.peekToken, p.peekToken.Lexeme,
				"a body (value fallbacks combine only with a single binding clause)")
			return nil
		}
		p.nextToken() // cur = 'else'
		p.nextToken()
		fb := p.parseExpression(LOWEST)
		if fb == nil {
			return nil
		}
		stmt.Fallbacks = append(stmt.Fallbacks, fb)
	}

	for _, clause := range stmt.Clauses {
		p.rejectDisjunction(clause.Value)
	}
	for _, fb := range stmt.Fallbacks {
		p.rejectDisjunction(fb)
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	stmt.Alternative = p.parseElseBranch()
	return stmt
}

// rejectDisjunction reports every '||' nested anywhere inside an
// if-let condition expression. Grouping does not lift the restriction:
// a binding produced under only one disjunct has no single type in the
// body, so the operator is banned from the whole condition.
func (p *Parser) rejectDisjunction(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.InfixExpression:
		if e.Token.Type == token.OR {
			p.errorf(diagnostics.ErrT002, e.Token)
		}
		p.rejectDisjunction(e.Left)
		p.rejectDisjunction(e.Right)
	case *ast.PrefixExpression:
		p.rejectDisjunction(e.Right)
	case *ast.CallExpression:
		p.rejectDisjunction(e.Function)
		for _, arg := range e.Arguments {
			p.rejectDisjunction(arg)
		}
	case *ast.TupleLiteral:
		for _, elem := range e.Elements {
			p.rejectDisjunction(elem)
		}
	case *ast.IndexExpression:
		p.rejectDisjunction(e.Left)
		p.rejectDisjunction(e.Index)
	case *ast.MemberExpression:
		p.rejectDisjunction(e.Object)
	case *ast.PathExpression:
		p.rejectDisjunction(e.Left)
	case *ast.RangeExpression:
		p.rejectDisjunction(e.Low)
		p.rejectDisjunction(e.High)
	case *ast.CastExpression:
		p.rejectDisjunction(e.Value)
	case *ast.GenericExpression:
		p.rejectDisjunction(e.Base)
		for _, arg := range e.Arguments {
			if arg.Const != nil {
				p.rejectDisjunction(arg.Const)
			}
		}
	case *ast.StructLiteral:
		for _, name := range e.Order {
			p.rejectDisjunction(e.Fields[name])
		}
	}
}

// parseCondLetClause parses one "pattern = source" conjunct of an
// if-let condition with curToken at the pattern's first token.
func (p *Parser) parseCondLetClause() (ast.CondClause, bool) {
	letClause, ok := p.parseLetClause(AND)
	if !ok {
		return ast.CondClause{}, false
	}
	return ast.CondClause{
		Token:   letClause.Token,
		Pattern: letClause.Pattern,
		Value:   letClause.Value,
	}, true
}
