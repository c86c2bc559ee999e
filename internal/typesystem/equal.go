package typesystem

// Equal reports structural equality. Named types compare by name, so
// two parallel members of one set are NOT Equal; use Forest.AreParallel
// for set-level identity.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch at := a.(type) {
	case TInt:
		bt, ok := b.(TInt)
		return ok && at.Width == bt.Width && at.Signed == bt.Signed
	case TFloat:
		bt, ok := b.(TFloat)
		return ok && at.Width == bt.Width
	case TBool:
		_, ok := b.(TBool)
		return ok
	case TChar:
		_, ok := b.(TChar)
		return ok
	case TRawPtr:
		_, ok := b.(TRawPtr)
		return ok
	case TPointer:
		bt, ok := b.(TPointer)
		return ok && Equal(at.Elem, bt.Elem)
	case TArray:
		bt, ok := b.(TArray)
		return ok && at.Length == bt.Length && Equal(at.Elem, bt.Elem)
	case TSlice:
		bt, ok := b.(TSlice)
		return ok && Equal(at.Elem, bt.Elem)
	case TTuple:
		bt, ok := b.(TTuple)
		if !ok || len(at.Elements) != len(bt.Elements) {
			return false
		}
		for i := range at.Elements {
			if !Equal(at.Elements[i], bt.Elements[i]) {
				return false
			}
		}
		return true
	case TStruct:
		bt, ok := b.(TStruct)
		return ok && fieldsEqual(at.Fields, bt.Fields)
	case TUnion:
		bt, ok := b.(TUnion)
		return ok && fieldsEqual(at.Fields, bt.Fields)
	case TEnum:
		bt, ok := b.(TEnum)
		if !ok || len(at.Variants) != len(bt.Variants) {
			return false
		}
		for i := range at.Variants {
			if at.Variants[i] != bt.Variants[i] {
				return false
			}
		}
		return true
	case TChoice:
		bt, ok := b.(TChoice)
		if !ok || len(at.Variants) != len(bt.Variants) {
			return false
		}
		for i := range at.Variants {
			if at.Variants[i].Name != bt.Variants[i].Name ||
				!Equal(at.Variants[i].Payload, bt.Variants[i].Payload) {
				return false
			}
		}
		return true
	case TNamed:
		bt, ok := b.(TNamed)
		return ok && at.Name == bt.Name
	case TApp:
		bt, ok := b.(TApp)
		if !ok || at.Base != bt.Base || len(at.Args) != len(bt.Args) {
			return false
		}
		for i := range at.Args {
			if !Equal(at.Args[i], bt.Args[i]) {
				return false
			}
		}
		return true
	case TConst:
		bt, ok := b.(TConst)
		return ok && at.Text == bt.Text
	case TFunc:
		bt, ok := b.(TFunc)
		if !ok || len(at.Params) != len(bt.Params) || !Equal(at.Return, bt.Return) {
			return false
		}
		for i := range at.Params {
			if !Equal(at.Params[i], bt.Params[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func fieldsEqual(a, b []TField) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !Equal(a[i].Type, b[i].Type) {
			return false
		}
	}
	return true
}

// Underlying strips a named wrapper down to the structural type of its
// tree root. Non-named types are themselves.
func Underlying(t Type) Type {
	if n, ok := t.(TNamed); ok && n.Underlying != nil {
		return n.Underlying
	}
	return t
}
