package typesystem

// SetOfType maps a resolved type to its TypeSet. Builtin primitives are
// looked up by their canonical name; inline structural types belong to
// no set (their roots are only reachable through declared members).
func (f *Forest) SetOfType(t Type) (SetID, bool) {
	switch tt := t.(type) {
	case TNamed:
		if tt.Set == NoSet {
			return NoSet, false
		}
		return tt.Set, true
	case TApp:
		if tt.Set == NoSet {
			return NoSet, false
		}
		return tt.Set, true
	case TInt, TFloat, TBool, TChar, TRawPtr:
		return f.SetOf(t.String())
	}
	return NoSet, false
}
