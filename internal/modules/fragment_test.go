package modules_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tarn-lang/tarn/internal/analyzer"
	"github.com/tarn-lang/tarn/internal/config"
	"github.com/tarn-lang/tarn/internal/diagnostics"
	"github.com/tarn-lang/tarn/internal/lexer"
	"github.com/tarn-lang/tarn/internal/modules"
	"github.com/tarn-lang/tarn/internal/symbols"
	"github.com/tarn-lang/tarn/internal/token"
	"github.com/tarn-lang/tarn/internal/typesystem"
)

func sealedEnv(t *testing.T) *analyzer.TypeEnv {
	t.Helper()
	env := analyzer.NewTypeEnv()
	env.Forest.Seal()
	return env
}

func TestParseFragment(t *testing.T) {
	toks := lexer.Tokenize("let x = 1 + 2\n")
	callSite := token.Token{Type: token.IDENT, Lexeme: "emit", Line: 7, Column: 3}

	prog, errs := modules.ParseFragment(toks, sealedEnv(t), nil, "emit", callSite)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
}

func TestParseFragmentAttributesBothSites(t *testing.T) {
	// An unclosed generic list inside the expansion.
	toks := lexer.Tokenize("foo::<i32")
	callSite := token.Token{Type: token.IDENT, Lexeme: "gen", Line: 12, Column: 5}

	_, errs := modules.ParseFragment(toks, sealedEnv(t), nil, "gen", callSite)
	if len(errs) == 0 {
		t.Fatal("expected a diagnostic")
	}
	var fe *diagnostics.FragmentError
	if !errors.As(errs[0], &fe) {
		t.Fatalf("expected FragmentError, got %T", errs[0])
	}
	if fe.MacroName != "gen" {
		t.Errorf("expected macro name gen, got %q", fe.MacroName)
	}
	msg := fe.Error()
	if !strings.Contains(msg, "12:5") || !strings.Contains(msg, "gen") {
		t.Errorf("message should name the call site and the macro: %q", msg)
	}
	if fe.Diagnostic.Code != diagnostics.ErrP001 {
		t.Errorf("expected %s inside the expansion, got %s", diagnostics.ErrP001, fe.Diagnostic.Code)
	}
	if fe.Diagnostic.Unit == uuid.Nil {
		t.Error("fragment diagnostic should carry its expansion's unit id")
	}
	if fe.Diagnostic.File != "gen"+config.MacroFileExt {
		t.Errorf("fragment diagnostic should be attributed to the expansion unit, got %q", fe.Diagnostic.File)
	}
}

func TestParseFragmentElaborates(t *testing.T) {
	toks := lexer.Tokenize("let x = missing + 1\n")
	callSite := token.Token{Type: token.IDENT, Lexeme: "emit", Line: 3, Column: 9}

	_, errs := modules.ParseFragment(toks, sealedEnv(t), nil, "emit", callSite)
	if len(errs) == 0 {
		t.Fatal("expected a type diagnostic from the expansion")
	}
	var fe *diagnostics.FragmentError
	if !errors.As(errs[0], &fe) {
		t.Fatalf("expected FragmentError, got %T", errs[0])
	}
	if fe.Diagnostic.Code != diagnostics.ErrT006 {
		t.Errorf("expected %s, got %s", diagnostics.ErrT006, fe.Diagnostic.Code)
	}
}

func TestParseFragmentUsesCallSiteScope(t *testing.T) {
	env := sealedEnv(t)
	scope := symbols.NewEnclosedSymbolTable(env.Symbols, symbols.ScopeFunction)
	scope.Define(symbols.Symbol{
		Name: "count",
		Type: typesystem.TInt{Width: 32, Signed: true},
		Kind: symbols.VariableSymbol,
	})

	toks := lexer.Tokenize("let x = count + 1\n")
	callSite := token.Token{Type: token.IDENT, Lexeme: "emit", Line: 4, Column: 1}

	if _, errs := modules.ParseFragment(toks, env, scope, "emit", callSite); len(errs) != 0 {
		t.Fatalf("count is in the call-site scope, expected no errors: %v", errs)
	}
	if _, errs := modules.ParseFragment(toks, env, nil, "emit", callSite); len(errs) == 0 {
		t.Fatal("count is not in the global scope, expected a diagnostic")
	}
}
