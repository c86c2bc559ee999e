package modules

import (
	"github.com/google/uuid"

	"github.com/tarn-lang/tarn/internal/analyzer"
	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/config"
	"github.com/tarn-lang/tarn/internal/diagnostics"
	"github.com/tarn-lang/tarn/internal/parser"
	"github.com/tarn-lang/tarn/internal/pipeline"
	"github.com/tarn-lang/tarn/internal/symbols"
	"github.com/tarn-lang/tarn/internal/token"
)

// ParseFragment parses and elaborates a token fragment handed over by
// the macro expander. The fragment is parsed with the full grammar and
// type-checked against env's sealed forest, with name lookups starting
// at scope (the lexical scope of the call site; nil means the global
// scope). Every diagnostic is wrapped so it attributes the definition
// site inside the expansion, the invocation site in the caller's
// source, and the expansion's unit.
func ParseFragment(tokens []token.Token, env *analyzer.TypeEnv, scope *symbols.SymbolTable, macroName string, callSite token.Token) (*ast.Program, []error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		tokens = append(tokens, token.Token{Type: token.EOF, Line: callSite.Line, Column: callSite.Column})
	}

	ctx := pipeline.NewContext(macroName+config.MacroFileExt, "")
	p := parser.New(token.NewStream(tokens), ctx)
	prog := p.ParseProgram()

	// A fragment that failed to parse is not elaborated; the parse
	// diagnostics alone go back to the expander.
	if env != nil && !ctx.HasErrors() {
		a := analyzer.NewScoped(env, scope)
		a.Analyze(prog)
		a.Merge()
		ctx.Errors = append(ctx.Errors, a.Errors()...)
	}

	var errs []error
	for _, err := range ctx.Errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
		if err.Unit == uuid.Nil {
			err.Unit = ctx.UnitID
		}
		errs = append(errs, &diagnostics.FragmentError{
			Diagnostic: err,
			MacroName:  macroName,
			CallSite:   callSite,
		})
	}
	return prog, errs
}
