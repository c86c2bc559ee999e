package ast

import (
	"github.com/tarn-lang/tarn/internal/token"
)

// LetClause is one (pattern, source) attempt of a let or let-else chain.
type LetClause struct {
	Token   token.Token // The pattern's first token
	Pattern Pattern
	Value   Expression
}

// LetStatement covers three surface forms:
//
//	let P = E                          single irrefutable clause, no ElseBlock
//	let P = E else { ... }             one clause plus divergent block
//	let P1 = E1 else P2 = E2 else { }  chained fallback attempts
//
// Clauses are attempted left to right; ElseBlock runs only when every
// clause reports no match and must not fall through normally.
type LetStatement struct {
	Token     token.Token // The 'let' token
	Clauses   []LetClause
	ElseBlock *BlockStatement // nil when the single clause must be irrefutable
}

func (ls *LetStatement) statementNode()        {}
func (ls *LetStatement) TokenLiteral() string  { return ls.Token.Lexeme }
func (ls *LetStatement) GetToken() token.Token { return ls.Token }

// CondClause is one conjunct of an if-let condition. Pattern is nil for
// plain boolean conjuncts.
type CondClause struct {
	Token   token.Token
	Pattern Pattern    // nil for a boolean clause
	Value   Expression // match source, or the boolean expression itself
}

// IfLetStatement covers the conjunctive and value-fallback if-let forms:
//
//	if let P = E && cond && let P2 = E2 { body }
//	if let P = E else F1 else F2 { body }
//
// Fallbacks are alternate sources retried against the first clause's
// pattern; they never require divergence. The two forms do not combine:
// the parser rejects fallbacks on multi-clause conditions.
type IfLetStatement struct {
	Token       token.Token // The 'if' token
	Clauses     []CondClause
	Fallbacks   []Expression
	Body        *BlockStatement
	Alternative Statement // may be nil
}

func (ils *IfLetStatement) statementNode()        {}
func (ils *IfLetStatement) TokenLiteral() string  { return ils.Token.Lexeme }
func (ils *IfLetStatement) GetToken() token.Token { return ils.Token }
