package parser

import (
	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/diagnostics"
	"github.com/tarn-lang/tarn/internal/pipeline"
	"github.com/tarn-lang/tarn/internal/token"
)

// MaxRecursionDepth bounds expression nesting to keep pathological
// inputs from blowing the stack.
const MaxRecursionDepth = 500

// Operator precedence levels, lowest binds loosest.
const (
	_ int = iota
	LOWEST
	OR         // ||
	AND        // &&
	EQUALITY   // == !=
	COMPARISON // < > <= >=
	SHIFT      // << >>
	RANGE      // ..
	SUM        // + -
	PRODUCT    // * / %
	CASTING    // # $ #? #~ #!
	PREFIX     // -x !x *x &x
	CALL       // foo(x) a.b a[i] a::b
)

var precedences = map[token.TokenType]int{
	token.OR:         OR,
	token.AND:        AND,
	token.EQ:         EQUALITY,
	token.NOT_EQ:     EQUALITY,
	token.LT:         COMPARISON,
	token.GT:         COMPARISON,
	token.LT_EQ:      COMPARISON,
	token.GT_EQ:      COMPARISON,
	token.SHL:        SHIFT,
	token.SHR:        SHIFT,
	token.DOTDOT:     RANGE,
	token.PLUS:       SUM,
	token.MINUS:      SUM,
	token.STAR:       PRODUCT,
	token.SLASH:      PRODUCT,
	token.PERCENT:    PRODUCT,
	token.CAST:       CASTING,
	token.CASTINT:    CASTING,
	token.CASTQ:      CASTING,
	token.CASTU:      CASTING,
	token.CASTBIT:    CASTING,
	token.LPAREN:     CALL,
	token.LBRACKET:   CALL,
	token.DOT:        CALL,
	token.COLONCOLON: CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	stream *token.Stream
	ctx    *pipeline.PipelineContext

	curToken  token.Token
	peekToken token.Token
	injected  []token.Token // synthetic tokens from '>>' splits, served before the stream

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn

	depth        int
	genericDepth int  // currently open generic-argument lists
	noStructLit  bool // true while parsing a condition or fallback source
}

func New(stream *token.Stream, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{stream: stream, ctx: ctx}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.CHAR, p.parseCharLiteral)
	p.registerPrefix(token.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(token.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.BANG, p.parsePrefixExpression)
	p.registerPrefix(token.STAR, p.parsePrefixExpression)
	p.registerPrefix(token.AMP, p.parsePrefixExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedOrTuple)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for _, t := range []token.TokenType{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.EQ, token.NOT_EQ, token.LT, token.GT, token.LT_EQ, token.GT_EQ,
		token.SHL, token.SHR, token.AND, token.OR,
	} {
		p.registerInfix(t, p.parseInfixExpression)
	}
	p.registerInfix(token.DOTDOT, p.parseRangeExpression)
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.LBRACKET, p.parseIndexExpression)
	p.registerInfix(token.DOT, p.parseMemberExpression)
	p.registerInfix(token.COLONCOLON, p.parsePathOrGeneric)
	for _, t := range []token.TokenType{
		token.CAST, token.CASTINT, token.CASTQ, token.CASTU, token.CASTBIT,
	} {
		p.registerInfix(t, p.parseCastExpression)
	}

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(t token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[t] = fn
}

func (p *Parser) registerInfix(t token.TokenType, fn infixParseFn) {
	p.infixParseFns[t] = fn
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if len(p.injected) > 0 {
		p.peekToken = p.injected[0]
		p.injected = p.injected[1:]
	} else {
		p.peekToken = p.stream.Next()
	}
}

// peekAhead returns the nth token after peekToken (n >= 1) without
// advancing.
func (p *Parser) peekAhead(n int) token.Token {
	if n <= len(p.injected) {
		return p.injected[n-1]
	}
	rest := p.stream.Peek(n - len(p.injected))
	return rest[len(rest)-1]
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorf(diagnostics.ErrP003, p.peekToken, p.peekToken.Lexeme, string(t))
	return false
}

func (p *Parser) errorf(code diagnostics.ErrorCode, tok token.Token, args ...interface{}) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(code, tok, args...))
}

func (p *Parser) noPrefixParseFnError(t token.TokenType) {
	p.errorf(diagnostics.ErrP004, p.curToken, string(t))
}

func (p *Parser) skipNewlines() {
	for p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
}

// skipToStatementBoundary advances past the rest of the current
// statement after an unrecoverable parse error.
func (p *Parser) skipToStatementBoundary() {
	for !p.curTokenIs(token.NEWLINE) &&
		!p.curTokenIs(token.SEMICOLON) &&
		!p.curTokenIs(token.RBRACE) &&
		!p.curTokenIs(token.EOF) {
		p.nextToken()
	}
}

// ParseProgram parses the whole unit into a Program node. Errors are
// accumulated on the pipeline context; parsing continues past them so
// diagnostics batch.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		p.skipNewlines()
		if p.curTokenIs(token.EOF) {
			break
		}
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program
}
