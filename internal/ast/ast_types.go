package ast

import (
	"github.com/tarn-lang/tarn/internal/token"
)

// Type is a syntactic type expression. Resolution to a semantic type
// happens in the analyzer against the sealed relation forest.
type Type interface {
	Node
	typeNode()
	GetToken() token.Token
}

// NamedType references a builtin or declared type by name.
type NamedType struct {
	Token token.Token
	Name  string
}

func (nt *NamedType) typeNode()             {}
func (nt *NamedType) TokenLiteral() string  { return nt.Token.Lexeme }
func (nt *NamedType) GetToken() token.Token { return nt.Token }

// PointerType: *T
type PointerType struct {
	Token token.Token // The '*' token
	Elem  Type
}

func (pt *PointerType) typeNode()             {}
func (pt *PointerType) TokenLiteral() string  { return pt.Token.Lexeme }
func (pt *PointerType) GetToken() token.Token { return pt.Token }

// ArrayType: [N]T
type ArrayType struct {
	Token  token.Token // The '[' token
	Length Expression
	Elem   Type
}

func (at *ArrayType) typeNode()             {}
func (at *ArrayType) TokenLiteral() string  { return at.Token.Lexeme }
func (at *ArrayType) GetToken() token.Token { return at.Token }

// SliceType: []T
type SliceType struct {
	Token token.Token // The '[' token
	Elem  Type
}

func (st *SliceType) typeNode()             {}
func (st *SliceType) TokenLiteral() string  { return st.Token.Lexeme }
func (st *SliceType) GetToken() token.Token { return st.Token }

// TupleType: (T1, T2)
type TupleType struct {
	Token    token.Token // The '(' token
	Elements []Type
}

func (tt *TupleType) typeNode()             {}
func (tt *TupleType) TokenLiteral() string  { return tt.Token.Lexeme }
func (tt *TupleType) GetToken() token.Token { return tt.Token }

// GenericType is a generic instantiation in type position: List<i32>.
// No marker is needed here; '<' after a type name always opens an
// argument list.
type GenericType struct {
	Token     token.Token // The base name token
	Base      string
	Arguments []GenericArgument
}

func (gt *GenericType) typeNode()             {}
func (gt *GenericType) TokenLiteral() string  { return gt.Token.Lexeme }
func (gt *GenericType) GetToken() token.Token { return gt.Token }
