package ast

import (
	"github.com/tarn-lang/tarn/internal/token"
)

// Pattern is a Node that can appear on the binding side of let, let-else
// and if-let forms. Match failure is data, not control flow: the
// resolver reports it as an outcome the surface constructs route.
type Pattern interface {
	Node
	patternNode()
	GetToken() token.Token
}

type WildcardPattern struct {
	Token token.Token // The '_' token
}

func (wp *WildcardPattern) patternNode()          {}
func (wp *WildcardPattern) TokenLiteral() string  { return wp.Token.Lexeme }
func (wp *WildcardPattern) GetToken() token.Token { return wp.Token }

// LiteralPattern matches a single literal value.
type LiteralPattern struct {
	Token token.Token
	Value Expression // IntegerLiteral, FloatLiteral, CharLiteral, StringLiteral or BooleanLiteral
}

func (lp *LiteralPattern) patternNode()          {}
func (lp *LiteralPattern) TokenLiteral() string  { return lp.Token.Lexeme }
func (lp *LiteralPattern) GetToken() token.Token { return lp.Token }

// BindingPattern introduces a name. An optional annotation is unified
// against the type structural decomposition infers for this position.
type BindingPattern struct {
	Token      token.Token
	Name       string
	Mutable    bool
	Annotation Type // may be nil
}

func (bp *BindingPattern) patternNode()          {}
func (bp *BindingPattern) TokenLiteral() string  { return bp.Token.Lexeme }
func (bp *BindingPattern) GetToken() token.Token { return bp.Token }

type TuplePattern struct {
	Token    token.Token // The '(' token
	Elements []Pattern
}

func (tp *TuplePattern) patternNode()          {}
func (tp *TuplePattern) TokenLiteral() string  { return tp.Token.Lexeme }
func (tp *TuplePattern) GetToken() token.Token { return tp.Token }

type StructPatternField struct {
	Name    *Identifier
	Pattern Pattern // nil shorthand binds the field name
}

// StructPattern destructures a named struct: Point { x, y: py }.
type StructPattern struct {
	Token  token.Token
	Name   *Identifier
	Fields []StructPatternField
}

func (sp *StructPattern) patternNode()          {}
func (sp *StructPattern) TokenLiteral() string  { return sp.Token.Lexeme }
func (sp *StructPattern) GetToken() token.Token { return sp.Token }

// VariantPattern matches one case of a choice or enum type:
// Some(x), Opt::Some(x), Color::Red.
type VariantPattern struct {
	Token    token.Token
	TypeName *Identifier // nil when the variant is unqualified
	Case     *Identifier
	Payload  Pattern // nil for payload-less variants
}

func (vp *VariantPattern) patternNode()          {}
func (vp *VariantPattern) TokenLiteral() string  { return vp.Token.Lexeme }
func (vp *VariantPattern) GetToken() token.Token { return vp.Token }

// RangePattern matches integers in [Low, High).
type RangePattern struct {
	Token token.Token // The '..' token
	Low   Expression
	High  Expression
}

func (rp *RangePattern) patternNode()          {}
func (rp *RangePattern) TokenLiteral() string  { return rp.Token.Lexeme }
func (rp *RangePattern) GetToken() token.Token { return rp.Token }
