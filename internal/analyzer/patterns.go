package analyzer

import (
	"fmt"

	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/diagnostics"
	"github.com/tarn-lang/tarn/internal/symbols"
	"github.com/tarn-lang/tarn/internal/typesystem"
)

// MatchOutcome is the result of elaborating a pattern against a source
// type. Unmatched is ordinary data routed by let-else, if-let and
// value fallbacks; it is never a diagnostic by itself.
type MatchOutcome struct {
	Matched  bool
	Bindings *symbols.SymbolTable // ScopeBinding; nil when Unmatched
}

func Bound(bindings *symbols.SymbolTable) MatchOutcome {
	return MatchOutcome{Matched: true, Bindings: bindings}
}

func Unmatched() MatchOutcome {
	return MatchOutcome{}
}

// ElaborateMatch elaborates one match attempt. The binding scope it
// returns lives only as long as the construct that requested the match;
// on Unmatched it is discarded here and never observed by callers.
func (a *Analyzer) ElaborateMatch(pat ast.Pattern, source typesystem.Type) MatchOutcome {
	bindings := symbols.NewEnclosedSymbolTable(a.scope, symbols.ScopeBinding)
	seen := make(map[string]bool)
	if !a.matchPattern(pat, source, bindings, seen) {
		return Unmatched()
	}
	return Bound(bindings)
}

// matchPattern reports whether pat can describe values of source's
// type, defining bindings as it descends. Type-level incompatibility is
// a false return; annotation and duplicate-name problems are
// diagnostics on top of whatever outcome the structure produces.
func (a *Analyzer) matchPattern(pat ast.Pattern, source typesystem.Type, bindings *symbols.SymbolTable, seen map[string]bool) bool {
	switch pt := pat.(type) {
	case *ast.WildcardPattern:
		return true

	case *ast.LiteralPattern:
		return literalCompatible(pt.Value, source)

	case *ast.BindingPattern:
		// A bare name that resolves to a constructor is a payload-less
		// variant match, not a fresh binding.
		if sym, ok := a.scope.Resolve(pt.Name); ok && sym.Kind == symbols.ConstructorSymbol && pt.Annotation == nil {
			vp := &ast.VariantPattern{
				Token: pt.Token,
				Case:  &ast.Identifier{Token: pt.Token, Value: pt.Name},
			}
			return a.matchPattern(vp, source, bindings, seen)
		}
		return a.bindName(pt, source, bindings, seen)

	case *ast.TuplePattern:
		tup, ok := typesystem.Underlying(source).(typesystem.TTuple)
		if !ok || len(tup.Elements) != len(pt.Elements) {
			return false
		}
		for i, sub := range pt.Elements {
			if !a.matchPattern(sub, tup.Elements[i], bindings, seen) {
				return false
			}
		}
		return true

	case *ast.StructPattern:
		return a.matchStructPattern(pt, source, bindings, seen)

	case *ast.VariantPattern:
		return a.matchVariantPattern(pt, source, bindings, seen)

	case *ast.RangePattern:
		switch typesystem.Underlying(source).(type) {
		case typesystem.TInt, typesystem.TChar:
			return true
		}
		return false
	}
	return false
}

// bindName defines one binding, unifying any annotation against the
// structurally inferred type. Parallel names annotate freely; anything
// else must be structurally identical.
func (a *Analyzer) bindName(pt *ast.BindingPattern, inferred typesystem.Type, bindings *symbols.SymbolTable, seen map[string]bool) bool {
	if seen[pt.Name] {
		a.errorf(diagnostics.ErrT005, pt.Token, pt.Name)
		return true
	}
	seen[pt.Name] = true

	bound := inferred
	if pt.Annotation != nil {
		declared := a.resolveType(pt.Annotation, true)
		if declared == nil {
			return true
		}
		if !a.annotationCompatible(declared, inferred) {
			a.errorf(diagnostics.ErrT001, pt.Token, declared, inferred)
			return true
		}
		bound = declared
	}
	bindings.Define(symbols.Symbol{
		Name:    pt.Name,
		Type:    bound,
		Kind:    symbols.VariableSymbol,
		Mutable: pt.Mutable,
	})
	return true
}

func (a *Analyzer) annotationCompatible(declared, inferred typesystem.Type) bool {
	if typesystem.Equal(declared, inferred) {
		return true
	}
	dset, dok := a.env.Forest.SetOfType(declared)
	iset, iok := a.env.Forest.SetOfType(inferred)
	if dok && iok && a.env.Forest.AreParallel(dset, iset) {
		return true
	}
	// A named source decomposes structurally, so annotating with the
	// structural type of the same tree is also fine.
	return typesystem.Equal(typesystem.Underlying(declared), typesystem.Underlying(inferred))
}

func (a *Analyzer) matchStructPattern(pt *ast.StructPattern, source typesystem.Type, bindings *symbols.SymbolTable, seen map[string]bool) bool {
	sym, ok := a.scope.Resolve(pt.Name.Value)
	if !ok || sym.Kind != symbols.TypeSymbol {
		a.errorf(diagnostics.ErrT006, pt.Name.Token, pt.Name.Value)
		return false
	}
	if !a.annotationCompatible(sym.Type, source) {
		return false
	}
	st, ok := typesystem.Underlying(sym.Type).(typesystem.TStruct)
	if !ok {
		return false
	}

	fieldType := func(name string) (typesystem.Type, bool) {
		for _, f := range st.Fields {
			if f.Name == name {
				return f.Type, true
			}
		}
		return nil, false
	}

	for _, field := range pt.Fields {
		ft, ok := fieldType(field.Name.Value)
		if !ok {
			a.errorf(diagnostics.ErrT006, field.Name.Token, field.Name.Value)
			continue
		}
		if field.Pattern == nil {
			// Shorthand: the field name itself binds.
			shorthand := &ast.BindingPattern{Token: field.Name.Token, Name: field.Name.Value}
			if !a.bindName(shorthand, ft, bindings, seen) {
				return false
			}
			continue
		}
		if !a.matchPattern(field.Pattern, ft, bindings, seen) {
			return false
		}
	}
	return true
}

func (a *Analyzer) matchVariantPattern(pt *ast.VariantPattern, source typesystem.Type, bindings *symbols.SymbolTable, seen map[string]bool) bool {
	if pt.TypeName != nil {
		sym, ok := a.scope.Resolve(pt.TypeName.Value)
		if !ok || sym.Kind != symbols.TypeSymbol {
			a.errorf(diagnostics.ErrT006, pt.TypeName.Token, pt.TypeName.Value)
			return false
		}
		if !a.annotationCompatible(sym.Type, source) {
			return false
		}
	}

	switch under := typesystem.Underlying(source).(type) {
	case typesystem.TChoice:
		variant, ok := under.VariantNamed(pt.Case.Value)
		if !ok {
			return false
		}
		if pt.Payload == nil {
			return variant.Payload == nil
		}
		if variant.Payload == nil {
			return false
		}
		return a.matchPattern(pt.Payload, variant.Payload, bindings, seen)

	case typesystem.TEnum:
		if pt.Payload != nil {
			return false
		}
		for _, v := range under.Variants {
			if v.Name == pt.Case.Value {
				return true
			}
		}
		return false
	}
	return false
}

func literalCompatible(lit ast.Expression, source typesystem.Type) bool {
	switch lit.(type) {
	case *ast.IntegerLiteral:
		_, ok := typesystem.Underlying(source).(typesystem.TInt)
		return ok
	case *ast.FloatLiteral:
		_, ok := typesystem.Underlying(source).(typesystem.TFloat)
		return ok
	case *ast.CharLiteral:
		_, ok := typesystem.Underlying(source).(typesystem.TChar)
		return ok
	case *ast.BooleanLiteral:
		_, ok := typesystem.Underlying(source).(typesystem.TBool)
		return ok
	case *ast.StringLiteral:
		s, ok := typesystem.Underlying(source).(typesystem.TSlice)
		if !ok {
			return false
		}
		elem, ok := s.Elem.(typesystem.TInt)
		return ok && elem.Width == 8 && !elem.Signed
	case *ast.PrefixExpression:
		_, ok := typesystem.Underlying(source).(typesystem.TInt)
		return ok
	}
	return false
}

// irrefutable reports whether pat matches every value of its source
// type, which is what lets a plain let omit the else clause.
func (a *Analyzer) irrefutable(pat ast.Pattern) bool {
	switch pt := pat.(type) {
	case *ast.WildcardPattern:
		return true
	case *ast.BindingPattern:
		if sym, ok := a.scope.Resolve(pt.Name); ok && sym.Kind == symbols.ConstructorSymbol && pt.Annotation == nil {
			return false // actually a variant case
		}
		return true
	case *ast.TuplePattern:
		for _, sub := range pt.Elements {
			if !a.irrefutable(sub) {
				return false
			}
		}
		return true
	case *ast.StructPattern:
		for _, f := range pt.Fields {
			if f.Pattern != nil && !a.irrefutable(f.Pattern) {
				return false
			}
		}
		return true
	}
	return false
}

// blockDiverges reports whether every path through the block ends in a
// non-local exit. On false, reason describes the path that can fall
// through, for the diagnostic the let-else rule demands.
func blockDiverges(block *ast.BlockStatement) (diverges bool, reason string) {
	if block == nil || len(block.Statements) == 0 {
		return false, "the empty block"
	}
	for _, stmt := range block.Statements {
		if stmtDiverges(stmt) {
			return true, ""
		}
	}
	last := block.Statements[len(block.Statements)-1]
	tok := last.GetToken()
	return false, fmt.Sprintf("the path ending at %d:%d", tok.Line, tok.Column)
}

func stmtDiverges(stmt ast.Statement) bool {
	switch st := stmt.(type) {
	case *ast.ReturnStatement, *ast.BreakStatement, *ast.ContinueStatement:
		return true
	case *ast.BlockStatement:
		d, _ := blockDiverges(st)
		return d
	case *ast.IfStatement:
		if st.Alternative == nil {
			return false
		}
		bodyD, _ := blockDiverges(st.Body)
		return bodyD && stmtDiverges(st.Alternative)
	case *ast.LoopStatement:
		// A loop with no break never completes normally.
		return !containsBreak(st.Body)
	}
	return false
}

// containsBreak scans for a break belonging to this loop, not to one
// nested inside it.
func containsBreak(block *ast.BlockStatement) bool {
	if block == nil {
		return false
	}
	for _, stmt := range block.Statements {
		switch st := stmt.(type) {
		case *ast.BreakStatement:
			return true
		case *ast.BlockStatement:
			if containsBreak(st) {
				return true
			}
		case *ast.IfStatement:
			if containsBreak(st.Body) {
				return true
			}
			if alt, ok := st.Alternative.(*ast.BlockStatement); ok && containsBreak(alt) {
				return true
			}
		case *ast.IfLetStatement:
			if containsBreak(st.Body) {
				return true
			}
		case *ast.LetStatement:
			if containsBreak(st.ElseBlock) {
				return true
			}
		}
	}
	return false
}
