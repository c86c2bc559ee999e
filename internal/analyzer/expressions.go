package analyzer

import (
	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/diagnostics"
	"github.com/tarn-lang/tarn/internal/symbols"
	"github.com/tarn-lang/tarn/internal/token"
	"github.com/tarn-lang/tarn/internal/typesystem"
)

// inferExpression types an expression. expected carries the contextual
// type flowing in from an annotation, assignment target or parameter
// slot; only literals and target-less casts consume it. A nil return
// means a diagnostic was already attached and inference should not
// cascade.
func (a *Analyzer) inferExpression(expr ast.Expression, expected typesystem.Type) typesystem.Type {
	t := a.inferExpressionInner(expr, expected)
	if t != nil {
		a.typeMap[expr] = t
	}
	return t
}

func (a *Analyzer) inferExpressionInner(expr ast.Expression, expected typesystem.Type) typesystem.Type {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		if expected != nil {
			if _, ok := typesystem.Underlying(expected).(typesystem.TInt); ok {
				return expected
			}
		}
		return typesystem.TInt{Width: 32, Signed: true}

	case *ast.FloatLiteral:
		if expected != nil {
			if _, ok := typesystem.Underlying(expected).(typesystem.TFloat); ok {
				return expected
			}
		}
		return typesystem.TFloat{Width: 64}

	case *ast.StringLiteral:
		return typesystem.TSlice{Elem: typesystem.TInt{Width: 8}}

	case *ast.CharLiteral:
		return typesystem.TChar{}

	case *ast.BooleanLiteral:
		return typesystem.TBool{}

	case *ast.Identifier:
		sym, ok := a.scope.Resolve(e.Value)
		if !ok {
			a.errorf(diagnostics.ErrT006, e.Token, e.Value)
			return nil
		}
		return sym.Type

	case *ast.PrefixExpression:
		return a.inferPrefix(e, expected)

	case *ast.InfixExpression:
		return a.inferInfix(e)

	case *ast.RangeExpression:
		low := a.inferExpression(e.Low, expected)
		if e.High != nil {
			a.inferExpression(e.High, low)
		}
		return low

	case *ast.CallExpression:
		return a.inferCall(e)

	case *ast.MemberExpression:
		return a.inferMember(e)

	case *ast.IndexExpression:
		return a.inferIndex(e)

	case *ast.PathExpression:
		return a.inferPath(e)

	case *ast.GenericExpression:
		return a.inferGeneric(e)

	case *ast.CastExpression:
		return a.resolveCast(e, expected)

	case *ast.StructLiteral:
		return a.inferStructLiteral(e)

	case *ast.TupleLiteral:
		elems := make([]typesystem.Type, 0, len(e.Elements))
		var want []typesystem.Type
		if expected != nil {
			if tup, ok := typesystem.Underlying(expected).(typesystem.TTuple); ok && len(tup.Elements) == len(e.Elements) {
				want = tup.Elements
			}
		}
		for i, el := range e.Elements {
			var slot typesystem.Type
			if want != nil {
				slot = want[i]
			}
			et := a.inferExpression(el, slot)
			if et == nil {
				return nil
			}
			elems = append(elems, et)
		}
		return typesystem.TTuple{Elements: elems}
	}
	return nil
}

func (a *Analyzer) inferPrefix(e *ast.PrefixExpression, expected typesystem.Type) typesystem.Type {
	switch e.Operator {
	case "-":
		return a.inferExpression(e.Right, expected)
	case "!":
		a.inferExpression(e.Right, typesystem.TBool{})
		return typesystem.TBool{}
	case "&":
		inner := a.inferExpression(e.Right, nil)
		if inner == nil {
			return nil
		}
		return typesystem.TPointer{Elem: inner}
	case "*":
		inner := a.inferExpression(e.Right, nil)
		if inner == nil {
			return nil
		}
		if ptr, ok := typesystem.Underlying(inner).(typesystem.TPointer); ok {
			return ptr.Elem
		}
		a.errorf(diagnostics.ErrT006, e.Token, e.Operator)
		return nil
	}
	return a.inferExpression(e.Right, expected)
}

func (a *Analyzer) inferInfix(e *ast.InfixExpression) typesystem.Type {
	left := a.inferExpression(e.Left, nil)
	if left == nil {
		return nil
	}
	right := a.inferExpression(e.Right, left)
	if right == nil {
		return nil
	}
	switch e.Operator {
	case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
		return typesystem.TBool{}
	}
	return left
}

func (a *Analyzer) inferCall(e *ast.CallExpression) typesystem.Type {
	// Tuple-struct constructors are named like the type; resolve the
	// callee's constructor symbol before falling back to expression
	// inference.
	if id, ok := e.Function.(*ast.Identifier); ok {
		if sym, found := a.scope.Resolve(id.Value + "()"); found && sym.Kind == symbols.ConstructorSymbol {
			return a.checkInvocation(sym.Type, e)
		}
	}
	callee := a.inferExpression(e.Function, nil)
	if callee == nil {
		return nil
	}
	return a.checkInvocation(callee, e)
}

func (a *Analyzer) checkInvocation(callee typesystem.Type, e *ast.CallExpression) typesystem.Type {
	fn, ok := callee.(typesystem.TFunc)
	if !ok {
		a.errorf(diagnostics.ErrT006, e.Token, e.Function.TokenLiteral())
		return nil
	}
	for i, arg := range e.Arguments {
		var slot typesystem.Type
		if i < len(fn.Params) {
			slot = fn.Params[i]
		}
		a.inferExpression(arg, slot)
	}
	return fn.Return
}

func (a *Analyzer) inferMember(e *ast.MemberExpression) typesystem.Type {
	base := a.inferExpression(e.Object, nil)
	if base == nil {
		return nil
	}
	// One level of auto-deref, matching field access through pointers.
	under := typesystem.Underlying(base)
	if ptr, ok := under.(typesystem.TPointer); ok {
		under = typesystem.Underlying(ptr.Elem)
	}
	switch bt := under.(type) {
	case typesystem.TStruct:
		for _, f := range bt.Fields {
			if f.Name == e.Member.Value {
				return f.Type
			}
		}
	case typesystem.TUnion:
		for _, f := range bt.Fields {
			if f.Name == e.Member.Value {
				return f.Type
			}
		}
	case typesystem.TTuple:
		if idx, ok := tupleIndex(e.Member.Value); ok && idx < len(bt.Elements) {
			return bt.Elements[idx]
		}
	}
	a.errorf(diagnostics.ErrT006, e.Member.Token, e.Member.Value)
	return nil
}

func tupleIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func (a *Analyzer) inferIndex(e *ast.IndexExpression) typesystem.Type {
	base := a.inferExpression(e.Left, nil)
	if base == nil {
		return nil
	}
	a.inferExpression(e.Index, typesystem.TInt{Width: 64, Signed: false})
	switch bt := typesystem.Underlying(base).(type) {
	case typesystem.TArray:
		return bt.Elem
	case typesystem.TSlice:
		return bt.Elem
	}
	a.errorf(diagnostics.ErrT006, e.Token, e.Left.TokenLiteral())
	return nil
}

// inferPath types Type::Case access. The left side must name an enum or
// choice type; the member is one of its variants.
func (a *Analyzer) inferPath(e *ast.PathExpression) typesystem.Type {
	id, ok := e.Left.(*ast.Identifier)
	if !ok {
		a.errorf(diagnostics.ErrT006, e.Token, e.Left.TokenLiteral())
		return nil
	}
	sym, found := a.scope.Resolve(id.Value)
	if !found || sym.Kind != symbols.TypeSymbol {
		a.errorf(diagnostics.ErrT006, id.Token, id.Value)
		return nil
	}
	switch under := typesystem.Underlying(sym.Type).(type) {
	case typesystem.TEnum:
		for _, v := range under.Variants {
			if v.Name == e.Member.Value {
				return sym.Type
			}
		}
	case typesystem.TChoice:
		if variant, ok := under.VariantNamed(e.Member.Value); ok {
			if variant.Payload != nil {
				return typesystem.TFunc{Params: []typesystem.Type{variant.Payload}, Return: sym.Type}
			}
			return sym.Type
		}
	}
	a.errorf(diagnostics.ErrT006, e.Member.Token, e.Member.Value)
	return nil
}

func (a *Analyzer) inferGeneric(e *ast.GenericExpression) typesystem.Type {
	id, ok := e.Base.(*ast.Identifier)
	if !ok {
		a.errorf(diagnostics.ErrT006, e.Token, e.Base.TokenLiteral())
		return nil
	}
	sym, found := a.scope.Resolve(id.Value)
	if !found {
		a.errorf(diagnostics.ErrT006, id.Token, id.Value)
		return nil
	}
	// Const arguments are surface expressions; only their spelled form
	// participates in type identity, so they are checked for
	// well-formedness but not evaluated.
	gt := &ast.GenericType{Token: token.Token{Type: token.IDENT, Lexeme: id.Value, Line: id.Token.Line, Column: id.Token.Column}, Base: id.Value, Arguments: e.Arguments}
	app := a.resolveType(gt, true)
	if app == nil {
		return nil
	}
	if fn, ok := sym.Type.(typesystem.TFunc); ok && sym.Kind == symbols.FunctionSymbol {
		// Instantiating a generic function keeps its signature; the
		// arguments select the instance, not the shape.
		return fn
	}
	return app
}

func (a *Analyzer) inferStructLiteral(e *ast.StructLiteral) typesystem.Type {
	sym, found := a.scope.Resolve(e.Name.Value)
	if !found || sym.Kind != symbols.TypeSymbol {
		a.errorf(diagnostics.ErrT006, e.Name.Token, e.Name.Value)
		return nil
	}
	st, ok := typesystem.Underlying(sym.Type).(typesystem.TStruct)
	if !ok {
		a.errorf(diagnostics.ErrT006, e.Name.Token, e.Name.Value)
		return nil
	}
	for _, name := range e.Order {
		var slot typesystem.Type
		for _, f := range st.Fields {
			if f.Name == name {
				slot = f.Type
				break
			}
		}
		if slot == nil {
			a.errorf(diagnostics.ErrT006, e.Token, name)
			continue
		}
		a.inferExpression(e.Fields[name], slot)
	}
	return sym.Type
}
