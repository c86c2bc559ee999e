package typesystem_test

import (
	"testing"

	"github.com/tarn-lang/tarn/internal/typesystem"
)

func TestBitWidth(t *testing.T) {
	i32 := typesystem.TInt{Width: 32, Signed: true}
	u8 := typesystem.TInt{Width: 8}

	tests := []struct {
		name  string
		t     typesystem.Type
		width int
		ok    bool
	}{
		{"i32", i32, 32, true},
		{"f64", typesystem.TFloat{Width: 64}, 64, true},
		{"bool", typesystem.TBool{}, 8, true},
		{"char", typesystem.TChar{}, 32, true},
		{"pointer", typesystem.TPointer{Elem: i32}, 64, true},
		{"rawptr", typesystem.TRawPtr{}, 64, true},
		{"slice header", typesystem.TSlice{Elem: u8}, 128, true},
		{"array", typesystem.TArray{Elem: u8, Length: 16}, 128, true},
		{"tuple", typesystem.TTuple{Elements: []typesystem.Type{i32, u8}}, 40, true},
		{"struct packed", typesystem.TStruct{Fields: []typesystem.TField{
			{Name: "a", Type: i32}, {Name: "b", Type: i32},
		}}, 64, true},
		{"union is widest member", typesystem.TUnion{Fields: []typesystem.TField{
			{Name: "a", Type: i32}, {Name: "b", Type: typesystem.TFloat{Width: 64}},
		}}, 64, true},
		{"enum is tag only", typesystem.TEnum{Variants: []typesystem.TEnumVariant{{Name: "A"}}}, 32, true},
		{"choice is tag plus widest payload", typesystem.TChoice{Variants: []typesystem.TChoiceVariant{
			{Name: "None"}, {Name: "Some", Payload: typesystem.TFloat{Width: 64}},
		}}, 96, true},
		{"named follows underlying", typesystem.TNamed{Name: "Id", Underlying: i32}, 32, true},
		{"unresolved named has no width", typesystem.TNamed{Name: "Later"}, 0, false},
		{"instantiation has no width", typesystem.TApp{Base: "List"}, 0, false},
		{"function has no width", typesystem.TFunc{Return: typesystem.Unit}, 0, false},
	}

	for _, tt := range tests {
		w, ok := typesystem.BitWidth(tt.t)
		if ok != tt.ok || w != tt.width {
			t.Errorf("%s: got (%d, %v), want (%d, %v)", tt.name, w, ok, tt.width, tt.ok)
		}
	}
}
