package analyzer

import (
	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/diagnostics"
	"github.com/tarn-lang/tarn/internal/prettyprinter"
	"github.com/tarn-lang/tarn/internal/symbols"
	"github.com/tarn-lang/tarn/internal/typesystem"
)

// resolveType resolves a syntactic type-expression against the current
// scope. With strict set, unknown names are diagnosed; otherwise they
// become set-less placeholders, which lets aggregate fields reference
// types declared later in the unit.
func (a *Analyzer) resolveType(t ast.Type, strict bool) typesystem.Type {
	switch tt := t.(type) {
	case *ast.NamedType:
		if sym, ok := a.scope.Resolve(tt.Name); ok && sym.Kind == symbols.TypeSymbol {
			return sym.Type
		}
		if strict {
			a.errorf(diagnostics.ErrT006, tt.Token, tt.Name)
			return nil
		}
		return typesystem.TNamed{Name: tt.Name, Set: typesystem.NoSet}

	case *ast.PointerType:
		elem := a.resolveType(tt.Elem, strict)
		if elem == nil {
			return nil
		}
		return typesystem.TPointer{Elem: elem}

	case *ast.ArrayType:
		elem := a.resolveType(tt.Elem, strict)
		if elem == nil {
			return nil
		}
		length := int64(0)
		if lit, ok := tt.Length.(*ast.IntegerLiteral); ok {
			length = lit.Value
		}
		return typesystem.TArray{Elem: elem, Length: length}

	case *ast.SliceType:
		elem := a.resolveType(tt.Elem, strict)
		if elem == nil {
			return nil
		}
		return typesystem.TSlice{Elem: elem}

	case *ast.TupleType:
		elems := make([]typesystem.Type, 0, len(tt.Elements))
		for _, e := range tt.Elements {
			re := a.resolveType(e, strict)
			if re == nil {
				return nil
			}
			elems = append(elems, re)
		}
		return typesystem.TTuple{Elements: elems}

	case *ast.GenericType:
		// An instantiation shares its base name's set, so List<i32> and
		// List<i64> are parallel to List and to each other.
		set := typesystem.NoSet
		if sym, ok := a.scope.Resolve(tt.Base); ok && sym.Kind == symbols.TypeSymbol {
			if s, ok := a.env.Forest.SetOfType(sym.Type); ok {
				set = s
			}
		} else if strict {
			a.errorf(diagnostics.ErrT006, tt.Token, tt.Base)
			return nil
		}
		args := make([]typesystem.Type, 0, len(tt.Arguments))
		for _, arg := range tt.Arguments {
			if arg.Type != nil {
				ra := a.resolveType(arg.Type, strict)
				if ra == nil {
					return nil
				}
				args = append(args, ra)
				continue
			}
			args = append(args, typesystem.TConst{Text: prettyprinter.Expr(arg.Const)})
		}
		return typesystem.TApp{Base: tt.Base, Set: set, Args: args}
	}
	return nil
}
