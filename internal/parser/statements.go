package parser

import (
	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.NEWTYPE:
		return p.parseNewtypeDeclaration()
	case token.SUBTYPE:
		return p.parseSubtypeDeclaration()
	case token.STRUCT:
		return p.parseStructDeclaration()
	case token.ENUM:
		return p.parseEnumDeclaration()
	case token.UNION:
		return p.parseUnionDeclaration()
	case token.CHOICE:
		return p.parseChoiceDeclaration()
	case token.FN:
		return p.parseFunctionDeclaration()
	case token.LET:
		return p.parseLetStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.LOOP:
		return p.parseLoopStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		return &ast.BreakStatement{Token: p.curToken}
	case token.CONTINUE:
		return &ast.ContinueStatement{Token: p.curToken}
	default:
		return p.parseExpressionOrAssignStatement()
	}
}

func (p *Parser) parseExpressionOrAssignStatement() ast.Statement {
	tok := p.curToken
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		p.skipToStatementBoundary()
		return nil
	}
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		assignTok := p.curToken
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		return &ast.AssignStatement{Token: assignTok, Target: expr, Value: value}
	}
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken} // cur = '{'
	p.nextToken()

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		p.skipNewlines()
		if p.curTokenIs(token.RBRACE) || p.curTokenIs(token.EOF) {
			break
		}
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseNewtypeDeclaration() ast.Statement {
	decl := &ast.NewtypeDeclaration{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	decl.Underlying = p.parseType()
	if decl.Underlying == nil {
		return nil
	}
	return decl
}

func (p *Parser) parseSubtypeDeclaration() ast.Statement {
	decl := &ast.SubtypeDeclaration{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	decl.Parent = p.parseType()
	if decl.Parent == nil {
		return nil
	}
	return decl
}

func (p *Parser) parseStructDeclaration() ast.Statement {
	decl := &ast.StructDeclaration{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if p.peekTokenIs(token.LPAREN) {
		// Tuple struct: struct Pair(i32, i32)
		decl.IsTuple = true
		p.nextToken()
		for !p.peekTokenIs(token.RPAREN) {
			p.nextToken()
			elem := p.parseType()
			if elem == nil {
				return nil
			}
			decl.TupleElems = append(decl.TupleElems, elem)
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
			}
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return decl
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	fields, ok := p.parseFieldList()
	if !ok {
		return nil
	}
	decl.Fields = fields
	return decl
}

// parseFieldList parses "name: Type" entries separated by commas or
// newlines; curToken is '{' on entry and '}' on exit.
func (p *Parser) parseFieldList() ([]ast.StructField, bool) {
	var fields []ast.StructField
	for {
		for p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
		if p.peekTokenIs(token.RBRACE) {
			p.nextToken()
			return fields, true
		}
		if !p.expectPeek(token.IDENT) {
			return nil, false
		}
		field := ast.StructField{Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}}
		if !p.expectPeek(token.COLON) {
			return nil, false
		}
		p.nextToken()
		field.Type = p.parseType()
		if field.Type == nil {
			return nil, false
		}
		fields = append(fields, field)
	}
}

func (p *Parser) parseEnumDeclaration() ast.Statement {
	decl := &ast.EnumDeclaration{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	for {
		for p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
		if p.peekTokenIs(token.RBRACE) {
			p.nextToken()
			return decl
		}
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		variant := ast.EnumVariant{Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			variant.Value = p.parseExpression(LOWEST)
			if variant.Value == nil {
				return nil
			}
		}
		decl.Variants = append(decl.Variants, variant)
	}
}

func (p *Parser) parseUnionDeclaration() ast.Statement {
	decl := &ast.UnionDeclaration{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	fields, ok := p.parseFieldList()
	if !ok {
		return nil
	}
	decl.Fields = fields
	return decl
}

func (p *Parser) parseChoiceDeclaration() ast.Statement {
	decl := &ast.ChoiceDeclaration{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	for {
		for p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
		if p.peekTokenIs(token.RBRACE) {
			p.nextToken()
			return decl
		}
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		variant := ast.ChoiceVariant{Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}}
		if p.peekTokenIs(token.LPAREN) {
			p.nextToken()
			p.nextToken()
			variant.Payload = p.parseType()
			if variant.Payload == nil {
				return nil
			}
			if !p.expectPeek(token.RPAREN) {
				return nil
			}
		}
		decl.Variants = append(decl.Variants, variant)
	}
}

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	decl := &ast.FunctionDeclaration{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	for !p.peekTokenIs(token.RPAREN) {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		param := ast.Parameter{Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}}
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		param.Type = p.parseType()
		if param.Type == nil {
			return nil
		}
		decl.Parameters = append(decl.Parameters, param)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		decl.ReturnType = p.parseType()
		if decl.ReturnType == nil {
			return nil
		}
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	decl.Body = p.parseBlockStatement()
	return decl
}

func (p *Parser) parseLoopStatement() ast.Statement {
	stmt := &ast.LoopStatement{Token: p.curToken}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	if p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.SEMICOLON) ||
		p.peekTokenIs(token.RBRACE) || p.peekTokenIs(token.EOF) {
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	return stmt
}

func (p *Parser) parseIfStatement() ast.Statement {
	ifTok := p.curToken

	if p.peekTokenIs(token.LET) {
		return p.parseIfLetStatement(ifTok)
	}

	stmt := &ast.IfStatement{Token: ifTok}
	p.nextToken()
	outerNoStruct := p.noStructLit
	p.noStructLit = true
	stmt.Condition = p.parseExpression(LOWEST)
	p.noStructLit = outerNoStruct
	if stmt.Condition == nil {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	stmt.Alternative = p.parseElseBranch()
	return stmt
}

// parseElseBranch parses an optional trailing else / else-if branch.
func (p *Parser) parseElseBranch() ast.Statement {
	if !p.peekTokenIs(token.ELSE) {
		return nil
	}
	p.nextToken() // cur = 'else'
	if p.peekTokenIs(token.IF) {
		p.nextToken()
		return p.parseIfStatement()
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	return p.parseBlockStatement()
}
