package analyzer

import (
	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/diagnostics"
	"github.com/tarn-lang/tarn/internal/symbols"
	"github.com/tarn-lang/tarn/internal/typesystem"
)

// Analyze elaborates one unit's statements. Collect must have run for
// every unit and the forest must be sealed before this is called.
func (a *Analyzer) Analyze(prog *ast.Program) {
	for _, stmt := range prog.Statements {
		a.analyzeStatement(stmt)
	}
}

func (a *Analyzer) analyzeStatement(stmt ast.Statement) {
	switch st := stmt.(type) {
	case *ast.LetStatement:
		a.analyzeLet(st)
	case *ast.IfLetStatement:
		a.analyzeIfLet(st)
	case *ast.IfStatement:
		a.inferExpression(st.Condition, typesystem.TBool{})
		a.analyzeBlock(st.Body)
		if st.Alternative != nil {
			a.analyzeStatement(st.Alternative)
		}
	case *ast.LoopStatement:
		wasInLoop := a.inLoop
		a.inLoop = true
		a.analyzeBlock(st.Body)
		a.inLoop = wasInLoop
	case *ast.ReturnStatement:
		if st.Value != nil {
			a.inferExpression(st.Value, a.returns)
		}
	case *ast.AssignStatement:
		target := a.inferExpression(st.Target, nil)
		a.inferExpression(st.Value, target)
	case *ast.ExpressionStatement:
		a.inferExpression(st.Expression, nil)
	case *ast.BlockStatement:
		a.analyzeBlock(st)
	case *ast.FunctionDeclaration:
		a.analyzeFunction(st)
	case *ast.BreakStatement, *ast.ContinueStatement:
		// Loop placement was validated during parsing.
	}
}

func (a *Analyzer) analyzeBlock(block *ast.BlockStatement) {
	if block == nil {
		return
	}
	outer := a.scope
	a.pushScope(symbols.ScopeBlock)
	for _, stmt := range block.Statements {
		a.analyzeStatement(stmt)
	}
	a.scope = outer
}

func (a *Analyzer) analyzeFunction(fd *ast.FunctionDeclaration) {
	outer := a.scope
	savedReturns := a.returns
	a.pushScope(symbols.ScopeFunction)

	for _, p := range fd.Parameters {
		pt := a.resolveType(p.Type, true)
		if pt == nil {
			continue
		}
		a.scope.Define(symbols.Symbol{Name: p.Name.Value, Type: pt, Kind: symbols.VariableSymbol})
	}
	a.returns = typesystem.Unit
	if fd.ReturnType != nil {
		if rt := a.resolveType(fd.ReturnType, true); rt != nil {
			a.returns = rt
		}
	}
	a.analyzeBlock(fd.Body)

	a.returns = savedReturns
	a.scope = outer
}

// analyzeLet elaborates a let, let-else or let-else chain. Clauses are
// attempted left to right; the first clause's bindings become visible
// to the statements after the let, and every later clause must be able
// to bind in its place, so their scopes are elaborated and discarded.
func (a *Analyzer) analyzeLet(st *ast.LetStatement) {
	var adopted *symbols.SymbolTable
	for i, clause := range st.Clauses {
		expected := a.annotatedType(clause.Pattern)
		source := a.inferExpression(clause.Value, expected)
		if source == nil {
			continue
		}
		outcome := a.ElaborateMatch(clause.Pattern, source)
		if i == 0 {
			if st.ElseBlock == nil && !a.irrefutable(clause.Pattern) {
				a.errorf(diagnostics.ErrT004, clause.Pattern.GetToken(), clause.Pattern.TokenLiteral())
			}
			if outcome.Matched {
				adopted = outcome.Bindings
			}
		}
	}

	if st.ElseBlock != nil {
		a.analyzeBlock(st.ElseBlock)
		if diverges, reason := blockDiverges(st.ElseBlock); !diverges {
			a.errorf(diagnostics.ErrT003, st.Token, reason)
		}
	}

	if adopted != nil {
		a.scope = adopted
	}
}

// analyzeIfLet elaborates a conjunctive or value-fallback if-let.
// Clause bindings accumulate left to right, so a later conjunct can
// match on a name bound by an earlier one. The whole accumulation is
// scoped to the body; the alternative never sees it.
func (a *Analyzer) analyzeIfLet(st *ast.IfLetStatement) {
	outer := a.scope
	var firstSource typesystem.Type
	var firstPattern ast.Pattern

	for i, clause := range st.Clauses {
		if clause.Pattern == nil {
			a.inferExpression(clause.Value, typesystem.TBool{})
			continue
		}
		expected := a.annotatedType(clause.Pattern)
		source := a.inferExpression(clause.Value, expected)
		if source == nil {
			continue
		}
		if i == 0 {
			firstSource = source
			firstPattern = clause.Pattern
		}
		if outcome := a.ElaborateMatch(clause.Pattern, source); outcome.Matched {
			a.scope = outcome.Bindings
		}
	}

	// A fallback is an alternate source retried against the same
	// pattern, so it must carry the same type as the primary source.
	for _, fb := range st.Fallbacks {
		fbType := a.inferExpression(fb, firstSource)
		if fbType == nil || firstPattern == nil {
			continue
		}
		if firstSource != nil && !a.annotationCompatible(firstSource, fbType) {
			a.errorf(diagnostics.ErrT001, fb.GetToken(), firstSource, fbType)
		}
	}

	a.analyzeBlock(st.Body)
	a.scope = outer

	if st.Alternative != nil {
		a.analyzeStatement(st.Alternative)
	}
}

// annotatedType extracts a top-level binding annotation so the match
// source is inferred against it, letting integer literals take the
// annotated width.
func (a *Analyzer) annotatedType(pat ast.Pattern) typesystem.Type {
	bp, ok := pat.(*ast.BindingPattern)
	if !ok || bp.Annotation == nil {
		return nil
	}
	return a.resolveType(bp.Annotation, false)
}
