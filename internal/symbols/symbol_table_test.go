package symbols_test

import (
	"testing"

	"github.com/tarn-lang/tarn/internal/symbols"
	"github.com/tarn-lang/tarn/internal/typesystem"
)

func TestResolveWalksOuterScopes(t *testing.T) {
	global := symbols.NewSymbolTable()
	global.Define(symbols.Symbol{Name: "x", Type: typesystem.TBool{}, Kind: symbols.VariableSymbol})

	inner := symbols.NewEnclosedSymbolTable(global, symbols.ScopeBlock)
	sym, ok := inner.Resolve("x")
	if !ok || sym.Kind != symbols.VariableSymbol {
		t.Fatal("inner scope should see outer definitions")
	}
}

func TestShadowingIsScoped(t *testing.T) {
	global := symbols.NewSymbolTable()
	global.Define(symbols.Symbol{Name: "x", Type: typesystem.TBool{}})

	inner := symbols.NewEnclosedSymbolTable(global, symbols.ScopeBinding)
	inner.Define(symbols.Symbol{Name: "x", Type: typesystem.TChar{}})

	sym, _ := inner.Resolve("x")
	if _, ok := sym.Type.(typesystem.TChar); !ok {
		t.Error("inner definition should shadow the outer one")
	}
	sym, _ = global.Resolve("x")
	if _, ok := sym.Type.(typesystem.TBool); !ok {
		t.Error("outer scope must be untouched by shadowing")
	}
}

func TestDefinedHereIgnoresOuter(t *testing.T) {
	global := symbols.NewSymbolTable()
	global.Define(symbols.Symbol{Name: "x", Type: typesystem.TBool{}})

	inner := symbols.NewEnclosedSymbolTable(global, symbols.ScopeBlock)
	if inner.DefinedHere("x") {
		t.Error("DefinedHere should not consult outer scopes")
	}
	inner.Define(symbols.Symbol{Name: "y", Type: typesystem.TBool{}})
	if !inner.DefinedHere("y") {
		t.Error("DefinedHere should see local definitions")
	}
}

func TestOuterDiscardsBindingScope(t *testing.T) {
	global := symbols.NewSymbolTable()
	attempt := symbols.NewEnclosedSymbolTable(global, symbols.ScopeBinding)
	attempt.Define(symbols.Symbol{Name: "tmp", Type: typesystem.TBool{}})

	if attempt.Outer() != global {
		t.Fatal("Outer should return the enclosing scope")
	}
	if _, ok := global.Resolve("tmp"); ok {
		t.Error("a discarded binding scope must leave no trace")
	}
}
