package analyzer

import (
	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/diagnostics"
	"github.com/tarn-lang/tarn/internal/token"
	"github.com/tarn-lang/tarn/internal/typesystem"
)

// CastClass is the resolved classification of a cast expression.
type CastClass int

const (
	CastReliable CastClass = iota
	CastInteger
	CastUnreliable // runtime-checked; failure is a data outcome, not UB
	CastUnsafe     // unchecked; invalid values are undefined behavior
	CastBit        // width-checked reinterpretation, no conversion
)

func (c CastClass) String() string {
	switch c {
	case CastReliable:
		return "reliable"
	case CastInteger:
		return "integer"
	case CastUnreliable:
		return "unreliable"
	case CastUnsafe:
		return "unsafe"
	case CastBit:
		return "bit"
	}
	return "unknown"
}

// CastNode is the resolution the code generator consumes for one cast
// expression.
type CastNode struct {
	Source      typesystem.Type
	Destination typesystem.Type
	Operator    token.TokenType
	Class       CastClass
}

// resolveCast classifies a cast expression. The destination comes from
// the explicit target when present, otherwise from the context
// (annotation, assignment target, parameter); without either the cast
// does not resolve. At most one diagnostic is emitted per expression.
func (a *Analyzer) resolveCast(expr *ast.CastExpression, expected typesystem.Type) typesystem.Type {
	source := a.inferExpression(expr.Value, nil)
	if source == nil {
		return nil
	}

	var dest typesystem.Type
	if expr.Target != nil {
		dest = a.resolveType(expr.Target, true)
	} else {
		dest = expected
	}
	if dest == nil {
		a.errorf(diagnostics.ErrC002, expr.Token)
		return nil
	}

	var class CastClass
	switch expr.Operator {
	case token.CAST:
		if !a.reliableOK(source, dest) {
			a.errorf(diagnostics.ErrC001, expr.Token, source, dest, a.castHint(source, dest))
			return nil
		}
		class = CastReliable

	case token.CASTINT:
		if !integerFamilyOK(source, dest) {
			a.errorf(diagnostics.ErrC004, expr.Token, "$", source)
			return nil
		}
		class = CastInteger

	case token.CASTQ:
		if !unreliableOK(source, dest) {
			a.errorf(diagnostics.ErrC004, expr.Token, "#?", source)
			return nil
		}
		class = CastUnreliable

	case token.CASTU:
		if !a.unsafeOK(source, dest) {
			a.errorf(diagnostics.ErrC004, expr.Token, "#~", source)
			return nil
		}
		class = CastUnsafe

	case token.CASTBIT:
		sw, sok := typesystem.BitWidth(source)
		dw, dok := typesystem.BitWidth(dest)
		if !sok || !dok {
			a.errorf(diagnostics.ErrC004, expr.Token, "#!", source)
			return nil
		}
		if sw != dw {
			a.errorf(diagnostics.ErrC003, expr.Token, source, sw, dest, dw)
			return nil
		}
		class = CastBit

	default:
		a.errorf(diagnostics.ErrC004, expr.Token, string(expr.Operator), source)
		return nil
	}

	a.castMap[expr] = CastNode{
		Source:      source,
		Destination: dest,
		Operator:    expr.Operator,
		Class:       class,
	}
	return dest
}

// reliableOK implements the '#' legality tiers: integer widening with
// unchanged signedness, float widening, pointer → rawptr, parallel
// types, and upstream movement toward the tree root. An equal-width
// signedness change is deliberately not reliable.
func (a *Analyzer) reliableOK(source, dest typesystem.Type) bool {
	su, du := typesystem.Underlying(source), typesystem.Underlying(dest)

	if si, ok := su.(typesystem.TInt); ok {
		if di, ok := du.(typesystem.TInt); ok &&
			si.Signed == di.Signed && di.Width > si.Width {
			return true
		}
	}
	if sf, ok := su.(typesystem.TFloat); ok {
		if df, ok := du.(typesystem.TFloat); ok && df.Width > sf.Width {
			return true
		}
	}
	if _, ok := du.(typesystem.TRawPtr); ok {
		switch su.(type) {
		case typesystem.TPointer, typesystem.TRawPtr:
			return true
		}
	}

	sset, sok := a.env.Forest.SetOfType(source)
	dset, dok := a.env.Forest.SetOfType(dest)
	if sok && dok {
		if a.env.Forest.AreParallel(sset, dset) {
			return true
		}
		if a.env.Forest.IsUpstreamOf(dset, sset) {
			return true
		}
	}
	return false
}

// integerFamilyOK: '$' converts between any two integer types, whatever
// the width or signedness; it never fails, there is no runtime check.
func integerFamilyOK(source, dest typesystem.Type) bool {
	_, sok := typesystem.Underlying(source).(typesystem.TInt)
	_, dok := typesystem.Underlying(dest).(typesystem.TInt)
	return sok && dok
}

// unreliableOK: '#?' covers integer narrowing (including equal-width
// signedness changes) and 32-bit integer → char. The check itself runs
// at run time; success is a data outcome.
func unreliableOK(source, dest typesystem.Type) bool {
	su, du := typesystem.Underlying(source), typesystem.Underlying(dest)

	si, sok := su.(typesystem.TInt)
	if !sok {
		return false
	}
	if di, ok := du.(typesystem.TInt); ok {
		// Anything '#' does not already guarantee.
		return di.Width < si.Width || di.Signed != si.Signed
	}
	if _, ok := du.(typesystem.TChar); ok {
		return si.Width == 32
	}
	return false
}

// unsafeOK: '#~' covers rawptr → concrete pointer, downstream movement
// away from the tree root, and everything '#?' covers with the validity
// check skipped.
func (a *Analyzer) unsafeOK(source, dest typesystem.Type) bool {
	su, du := typesystem.Underlying(source), typesystem.Underlying(dest)

	if _, ok := su.(typesystem.TRawPtr); ok {
		if _, ok := du.(typesystem.TPointer); ok {
			return true
		}
	}

	sset, sok := a.env.Forest.SetOfType(source)
	dset, dok := a.env.Forest.SetOfType(dest)
	if sok && dok && a.env.Forest.IsDownstreamOf(dset, sset) {
		return true
	}

	return unreliableOK(source, dest)
}

// castHint names the weaker operator that would accept a cast '#'
// rejected, if one exists.
func (a *Analyzer) castHint(source, dest typesystem.Type) string {
	if integerFamilyOK(source, dest) {
		return "; '$' converts freely between integer types"
	}
	if unreliableOK(source, dest) {
		return "; '#?' performs this cast with a runtime check"
	}
	if a.unsafeOK(source, dest) {
		return "; '#~' performs this cast without checks"
	}
	return ""
}
