package ast

import (
	"github.com/tarn-lang/tarn/internal/token"
)

// NewtypeDeclaration inserts Name into the underlying type's set.
// newtype Meters = f64
type NewtypeDeclaration struct {
	Token      token.Token // The 'newtype' token
	Name       *Identifier
	Underlying Type
}

func (nd *NewtypeDeclaration) statementNode()        {}
func (nd *NewtypeDeclaration) TokenLiteral() string  { return nd.Token.Lexeme }
func (nd *NewtypeDeclaration) GetToken() token.Token { return nd.Token }

// SubtypeDeclaration starts a fresh set derived from the parent's.
// subtype Celsius : Temperature
type SubtypeDeclaration struct {
	Token  token.Token // The 'subtype' token
	Name   *Identifier
	Parent Type
}

func (sd *SubtypeDeclaration) statementNode()        {}
func (sd *SubtypeDeclaration) TokenLiteral() string  { return sd.Token.Lexeme }
func (sd *SubtypeDeclaration) GetToken() token.Token { return sd.Token }

type StructField struct {
	Name *Identifier
	Type Type
}

// StructDeclaration declares a named record or tuple struct.
// struct Point { x: i32, y: i32 }   struct Pair(i32, i32)
type StructDeclaration struct {
	Token      token.Token
	Name       *Identifier
	Fields     []StructField // record form
	TupleElems []Type        // tuple form; mutually exclusive with Fields
	IsTuple    bool
}

func (sd *StructDeclaration) statementNode()        {}
func (sd *StructDeclaration) TokenLiteral() string  { return sd.Token.Lexeme }
func (sd *StructDeclaration) GetToken() token.Token { return sd.Token }

type EnumVariant struct {
	Name  *Identifier
	Value Expression // explicit discriminant; nil means previous+1
}

// EnumDeclaration declares integral named variants.
type EnumDeclaration struct {
	Token    token.Token
	Name     *Identifier
	Variants []EnumVariant
}

func (ed *EnumDeclaration) statementNode()        {}
func (ed *EnumDeclaration) TokenLiteral() string  { return ed.Token.Lexeme }
func (ed *EnumDeclaration) GetToken() token.Token { return ed.Token }

// UnionDeclaration declares overlapping named fields.
type UnionDeclaration struct {
	Token  token.Token
	Name   *Identifier
	Fields []StructField
}

func (ud *UnionDeclaration) statementNode()        {}
func (ud *UnionDeclaration) TokenLiteral() string  { return ud.Token.Lexeme }
func (ud *UnionDeclaration) GetToken() token.Token { return ud.Token }

type ChoiceVariant struct {
	Name    *Identifier
	Payload Type // nil for payload-less variants
}

// ChoiceDeclaration declares a sum type.
// choice Opt { Some(i32), None }
type ChoiceDeclaration struct {
	Token    token.Token
	Name     *Identifier
	Variants []ChoiceVariant
}

func (cd *ChoiceDeclaration) statementNode()        {}
func (cd *ChoiceDeclaration) TokenLiteral() string  { return cd.Token.Lexeme }
func (cd *ChoiceDeclaration) GetToken() token.Token { return cd.Token }

type Parameter struct {
	Name *Identifier
	Type Type
}

// FunctionDeclaration. fn area(s: Shape) -> f64 { ... }
type FunctionDeclaration struct {
	Token      token.Token
	Name       *Identifier
	Parameters []Parameter
	ReturnType Type // nil for unit
	Body       *BlockStatement
}

func (fd *FunctionDeclaration) statementNode()        {}
func (fd *FunctionDeclaration) TokenLiteral() string  { return fd.Token.Lexeme }
func (fd *FunctionDeclaration) GetToken() token.Token { return fd.Token }
