package typesystem

import (
	"fmt"
	"strings"
)

// Type is the interface for all types in our system.
type Type interface {
	String() string
	typ()
}

// TInt is a primitive integer type.
type TInt struct {
	Width  int // bits
	Signed bool
}

func (t TInt) typ() {}
func (t TInt) String() string {
	if t.Signed {
		return fmt.Sprintf("i%d", t.Width)
	}
	return fmt.Sprintf("u%d", t.Width)
}

// TFloat is a primitive floating point type.
type TFloat struct {
	Width int // bits
}

func (t TFloat) typ()           {}
func (t TFloat) String() string { return fmt.Sprintf("f%d", t.Width) }

type TBool struct{}

func (t TBool) typ()           {}
func (t TBool) String() string { return "bool" }

// TChar is a Unicode scalar value, 32 bits wide.
type TChar struct{}

func (t TChar) typ()           {}
func (t TChar) String() string { return "char" }

// TRawPtr is the opaque pointer type: every pointer reliably casts to
// it, and only the unsafe operator casts back out.
type TRawPtr struct{}

func (t TRawPtr) typ()           {}
func (t TRawPtr) String() string { return "rawptr" }

type TPointer struct {
	Elem Type
}

func (t TPointer) typ()           {}
func (t TPointer) String() string { return "*" + t.Elem.String() }

type TArray struct {
	Elem   Type
	Length int64
}

func (t TArray) typ()           {}
func (t TArray) String() string { return fmt.Sprintf("[%d]%s", t.Length, t.Elem.String()) }

type TSlice struct {
	Elem Type
}

func (t TSlice) typ()           {}
func (t TSlice) String() string { return "[]" + t.Elem.String() }

type TField struct {
	Name string
	Type Type
}

// TStruct is an inline record type with ordered named fields.
type TStruct struct {
	Fields []TField
}

func (t TStruct) typ() {}
func (t TStruct) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = f.Name + ": " + f.Type.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// TTuple is an inline type with ordered unnamed fields. The empty tuple
// doubles as the unit type.
type TTuple struct {
	Elements []Type
}

func (t TTuple) typ() {}
func (t TTuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Unit is the canonical empty tuple.
var Unit = TTuple{}

type TEnumVariant struct {
	Name  string
	Value int64
}

// TEnum has ordered named integral variants backed by a 32-bit tag.
type TEnum struct {
	Variants []TEnumVariant
}

func (t TEnum) typ() {}
func (t TEnum) String() string {
	parts := make([]string, len(t.Variants))
	for i, v := range t.Variants {
		parts[i] = v.Name
	}
	return "enum{" + strings.Join(parts, ", ") + "}"
}

type TChoiceVariant struct {
	Name    string
	Payload Type // nil for payload-less variants
}

// TChoice is a sum type: named variants with optional payloads.
type TChoice struct {
	Variants []TChoiceVariant
}

func (t TChoice) typ() {}
func (t TChoice) String() string {
	parts := make([]string, len(t.Variants))
	for i, v := range t.Variants {
		if v.Payload != nil {
			parts[i] = v.Name + "(" + v.Payload.String() + ")"
		} else {
			parts[i] = v.Name
		}
	}
	return "choice{" + strings.Join(parts, ", ") + "}"
}

// VariantNamed returns the variant with the given name.
func (t TChoice) VariantNamed(name string) (TChoiceVariant, bool) {
	for _, v := range t.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return TChoiceVariant{}, false
}

// TUnion has overlapping named fields.
type TUnion struct {
	Fields []TField
}

func (t TUnion) typ() {}
func (t TUnion) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = f.Name + ": " + f.Type.String()
	}
	return "union{" + strings.Join(parts, ", ") + "}"
}

// TNamed is a declared name inside a TypeSet. Underlying is the
// structural type of the set's tree root, resolved at declaration time;
// all members of one tree share it.
type TNamed struct {
	Name       string
	Set        SetID
	Underlying Type
}

func (t TNamed) typ()           {}
func (t TNamed) String() string { return t.Name }

// TApp is a generic instantiation: List<i32>. Instantiations share the
// base name's TypeSet (see DESIGN.md).
type TApp struct {
	Base string
	Set  SetID
	Args []Type
}

func (t TApp) typ() {}
func (t TApp) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.Base + "<" + strings.Join(parts, ", ") + ">"
}

// TConst is a constant expression in a generic argument slot.
type TConst struct {
	Text string
}

func (t TConst) typ()           {}
func (t TConst) String() string { return t.Text }

// TFunc types a declared function.
type TFunc struct {
	Params []Type
	Return Type
}

func (t TFunc) typ() {}
func (t TFunc) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return "fn(" + strings.Join(parts, ", ") + ") -> " + t.Return.String()
}
