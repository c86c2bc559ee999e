package ast

import (
	"github.com/tarn-lang/tarn/internal/token"
)

type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()       {}
func (fl *FloatLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token { return fl.Token }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

type CharLiteral struct {
	Token token.Token
	Value rune
}

func (cl *CharLiteral) expressionNode()       {}
func (cl *CharLiteral) TokenLiteral() string  { return cl.Token.Lexeme }
func (cl *CharLiteral) GetToken() token.Token { return cl.Token }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }

type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()       {}
func (pe *PrefixExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }

type InfixExpression struct {
	Token    token.Token
	Operator string
	Left     Expression
	Right    Expression
}

func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }

type RangeExpression struct {
	Token token.Token // The '..' token
	Low   Expression
	High  Expression
}

func (re *RangeExpression) expressionNode()       {}
func (re *RangeExpression) TokenLiteral() string  { return re.Token.Lexeme }
func (re *RangeExpression) GetToken() token.Token { return re.Token }

type CallExpression struct {
	Token     token.Token // The '(' token
	Function  Expression
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

type MemberExpression struct {
	Token  token.Token // The '.' token
	Object Expression
	Member *Identifier
}

func (me *MemberExpression) expressionNode()       {}
func (me *MemberExpression) TokenLiteral() string  { return me.Token.Lexeme }
func (me *MemberExpression) GetToken() token.Token { return me.Token }

type IndexExpression struct {
	Token token.Token // The '[' token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) expressionNode()       {}
func (ie *IndexExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IndexExpression) GetToken() token.Token { return ie.Token }

// PathExpression is scoped access to a type member: Color::Red.
type PathExpression struct {
	Token  token.Token // The '::' token
	Left   Expression
	Member *Identifier
}

func (pe *PathExpression) expressionNode()       {}
func (pe *PathExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PathExpression) GetToken() token.Token { return pe.Token }

// GenericArgument is one slot of a generic-argument list: exactly one
// of Type or Const is set. Const arguments with top-level comparison or
// shift operators must arrive parenthesized; the parser enforces this.
type GenericArgument struct {
	Type  Type
	Const Expression
}

// GenericExpression is a generic instantiation in expression position,
// introduced by the '::<' marker: foo::<i32, (N > 2)>.
type GenericExpression struct {
	Token     token.Token // The '::' token of the marker
	Base      Expression
	Arguments []GenericArgument
}

func (ge *GenericExpression) expressionNode()       {}
func (ge *GenericExpression) TokenLiteral() string  { return ge.Token.Lexeme }
func (ge *GenericExpression) GetToken() token.Token { return ge.Token }

// CastExpression applies one of the five cast operators. Target may be
// nil when the destination is inferable from context; the analyzer
// resolves classification and destination into its cast map.
type CastExpression struct {
	Token    token.Token // The operator token
	Operator token.TokenType
	Value    Expression
	Target   Type // may be nil
}

func (ce *CastExpression) expressionNode()       {}
func (ce *CastExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CastExpression) GetToken() token.Token { return ce.Token }

// StructLiteral constructs a named struct value: Point { x: 1, y: 2 }.
type StructLiteral struct {
	Token  token.Token
	Name   *Identifier
	Fields map[string]Expression
	Order  []string
}

func (sl *StructLiteral) expressionNode()       {}
func (sl *StructLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StructLiteral) GetToken() token.Token { return sl.Token }

// TupleLiteral: (1, true). A single-element parenthesized expression is
// not a tuple; the parser unwraps it.
type TupleLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (tl *TupleLiteral) expressionNode()       {}
func (tl *TupleLiteral) TokenLiteral() string  { return tl.Token.Lexeme }
func (tl *TupleLiteral) GetToken() token.Token { return tl.Token }
