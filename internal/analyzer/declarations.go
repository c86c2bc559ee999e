package analyzer

import (
	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/diagnostics"
	"github.com/tarn-lang/tarn/internal/symbols"
	"github.com/tarn-lang/tarn/internal/token"
	"github.com/tarn-lang/tarn/internal/typesystem"
)

// Collect runs all collection phases for one unit. Multi-unit drivers
// call the phases separately, each phase across every unit, so a
// signature in one file can name an aggregate from another regardless
// of file order. Collection is single-threaded and finishes before the
// forest is sealed.
func (a *Analyzer) Collect(prog *ast.Program) {
	a.CollectAggregates(prog)
	a.CollectAliases(prog)
	a.CollectSignatures(prog)
}

// CollectAggregates declares struct, enum, union and choice types with
// lenient field resolution, so fields may refer to aggregates declared
// later.
func (a *Analyzer) CollectAggregates(prog *ast.Program) {
	for _, stmt := range prog.Statements {
		switch d := stmt.(type) {
		case *ast.StructDeclaration:
			a.collectStruct(d)
		case *ast.EnumDeclaration:
			a.collectEnum(d)
		case *ast.UnionDeclaration:
			a.collectUnion(d)
		case *ast.ChoiceDeclaration:
			a.collectChoice(d)
		}
	}
}

// CollectAliases declares newtypes and subtypes strictly in source
// order: their underlying sets must already exist when they appear.
func (a *Analyzer) CollectAliases(prog *ast.Program) {
	for _, stmt := range prog.Statements {
		switch d := stmt.(type) {
		case *ast.NewtypeDeclaration:
			a.collectNewtype(d)
		case *ast.SubtypeDeclaration:
			a.collectSubtype(d)
		}
	}
}

// CollectSignatures declares function symbols. Runs after every type
// in the project is known.
func (a *Analyzer) CollectSignatures(prog *ast.Program) {
	for _, stmt := range prog.Statements {
		if d, ok := stmt.(*ast.FunctionDeclaration); ok {
			a.collectFunction(d)
		}
	}
}

// declareAggregate desugars a named aggregate: a fresh root set wraps
// the inline structural type, and the name joins that set as its first
// member.
func (a *Analyzer) declareAggregate(name string, tok token.Token, structural typesystem.Type) (typesystem.TNamed, bool) {
	set := a.env.Forest.NewRoot(structural)
	if err := a.env.Forest.DeclareNewtype(name, set); err != nil {
		a.errorf(diagnostics.ErrT007, tok, name)
		return typesystem.TNamed{}, false
	}
	named := typesystem.TNamed{Name: name, Set: set, Underlying: structural}
	a.env.Symbols.Define(symbols.Symbol{Name: name, Type: named, Kind: symbols.TypeSymbol})
	return named, true
}

func (a *Analyzer) collectStruct(d *ast.StructDeclaration) {
	if d.IsTuple {
		elems := make([]typesystem.Type, 0, len(d.TupleElems))
		for _, e := range d.TupleElems {
			re := a.resolveType(e, false)
			if re == nil {
				return
			}
			elems = append(elems, re)
		}
		structural := typesystem.TTuple{Elements: elems}
		named, ok := a.declareAggregate(d.Name.Value, d.Name.Token, structural)
		if !ok {
			return
		}
		a.env.Symbols.Define(symbols.Symbol{
			Name:  d.Name.Value + "()",
			Type:  typesystem.TFunc{Params: elems, Return: named},
			Kind:  symbols.ConstructorSymbol,
			Owner: d.Name.Value,
		})
		return
	}

	fields := make([]typesystem.TField, 0, len(d.Fields))
	for _, f := range d.Fields {
		ft := a.resolveType(f.Type, false)
		if ft == nil {
			return
		}
		fields = append(fields, typesystem.TField{Name: f.Name.Value, Type: ft})
	}
	a.declareAggregate(d.Name.Value, d.Name.Token, typesystem.TStruct{Fields: fields})
}

func (a *Analyzer) collectEnum(d *ast.EnumDeclaration) {
	variants := make([]typesystem.TEnumVariant, 0, len(d.Variants))
	next := int64(0)
	for _, v := range d.Variants {
		if lit, ok := v.Value.(*ast.IntegerLiteral); ok {
			next = lit.Value
		}
		variants = append(variants, typesystem.TEnumVariant{Name: v.Name.Value, Value: next})
		next++
	}
	named, ok := a.declareAggregate(d.Name.Value, d.Name.Token, typesystem.TEnum{Variants: variants})
	if !ok {
		return
	}
	for _, v := range d.Variants {
		a.env.Symbols.Define(symbols.Symbol{
			Name:  v.Name.Value,
			Type:  named,
			Kind:  symbols.ConstructorSymbol,
			Owner: d.Name.Value,
		})
	}
}

func (a *Analyzer) collectUnion(d *ast.UnionDeclaration) {
	fields := make([]typesystem.TField, 0, len(d.Fields))
	for _, f := range d.Fields {
		ft := a.resolveType(f.Type, false)
		if ft == nil {
			return
		}
		fields = append(fields, typesystem.TField{Name: f.Name.Value, Type: ft})
	}
	a.declareAggregate(d.Name.Value, d.Name.Token, typesystem.TUnion{Fields: fields})
}

func (a *Analyzer) collectChoice(d *ast.ChoiceDeclaration) {
	variants := make([]typesystem.TChoiceVariant, 0, len(d.Variants))
	for _, v := range d.Variants {
		variant := typesystem.TChoiceVariant{Name: v.Name.Value}
		if v.Payload != nil {
			variant.Payload = a.resolveType(v.Payload, false)
			if variant.Payload == nil {
				return
			}
		}
		variants = append(variants, variant)
	}
	named, ok := a.declareAggregate(d.Name.Value, d.Name.Token, typesystem.TChoice{Variants: variants})
	if !ok {
		return
	}
	for _, v := range variants {
		sym := symbols.Symbol{
			Name:  v.Name,
			Kind:  symbols.ConstructorSymbol,
			Owner: d.Name.Value,
			Type:  named,
		}
		if v.Payload != nil {
			sym.Type = typesystem.TFunc{Params: []typesystem.Type{v.Payload}, Return: named}
		}
		a.env.Symbols.Define(sym)
	}
}

func (a *Analyzer) collectNewtype(d *ast.NewtypeDeclaration) {
	under := a.resolveType(d.Underlying, true)
	if under == nil {
		return
	}
	set, ok := a.env.Forest.SetOfType(under)
	if !ok {
		// Inline structural underlying: it starts its own tree, exactly
		// like the aggregate sugar.
		set = a.env.Forest.NewRoot(under)
	}
	if err := a.env.Forest.DeclareNewtype(d.Name.Value, set); err != nil {
		a.errorf(diagnostics.ErrT007, d.Name.Token, d.Name.Value)
		return
	}
	named := typesystem.TNamed{Name: d.Name.Value, Set: set, Underlying: a.env.Forest.RootType(set)}
	a.env.Symbols.Define(symbols.Symbol{Name: d.Name.Value, Type: named, Kind: symbols.TypeSymbol})
}

func (a *Analyzer) collectSubtype(d *ast.SubtypeDeclaration) {
	parent := a.resolveType(d.Parent, true)
	if parent == nil {
		return
	}
	pset, ok := a.env.Forest.SetOfType(parent)
	if !ok {
		pset = a.env.Forest.NewRoot(parent)
	}
	child, err := a.env.Forest.DeclareSubtype(d.Name.Value, pset)
	if err != nil {
		a.errorf(diagnostics.ErrT007, d.Name.Token, d.Name.Value)
		return
	}
	named := typesystem.TNamed{Name: d.Name.Value, Set: child, Underlying: a.env.Forest.RootType(child)}
	a.env.Symbols.Define(symbols.Symbol{Name: d.Name.Value, Type: named, Kind: symbols.TypeSymbol})
}

func (a *Analyzer) collectFunction(d *ast.FunctionDeclaration) {
	params := make([]typesystem.Type, 0, len(d.Parameters))
	for _, p := range d.Parameters {
		pt := a.resolveType(p.Type, true)
		if pt == nil {
			return
		}
		params = append(params, pt)
	}
	var ret typesystem.Type = typesystem.Unit
	if d.ReturnType != nil {
		ret = a.resolveType(d.ReturnType, true)
		if ret == nil {
			return
		}
	}
	a.env.Symbols.Define(symbols.Symbol{
		Name: d.Name.Value,
		Type: typesystem.TFunc{Params: params, Return: ret},
		Kind: symbols.FunctionSymbol,
	})
}
