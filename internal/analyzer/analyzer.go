package analyzer

import (
	"sync"

	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/config"
	"github.com/tarn-lang/tarn/internal/diagnostics"
	"github.com/tarn-lang/tarn/internal/symbols"
	"github.com/tarn-lang/tarn/internal/token"
	"github.com/tarn-lang/tarn/internal/typesystem"
)

// TypeEnv is the analysis state shared by the collection and
// elaboration stages of one compile. The forest is append-only during
// collection, sealed before elaboration, and read-only afterwards, so
// independent units may elaborate against it concurrently. Elaborators
// record types and cast resolutions into per-unit maps and merge them
// here under the mutex when the unit finishes.
type TypeEnv struct {
	Forest  *typesystem.Forest
	Symbols *symbols.SymbolTable
	TypeMap map[ast.Node]typesystem.Type
	CastMap map[*ast.CastExpression]CastNode

	mu sync.Mutex
}

func NewTypeEnv() *TypeEnv {
	env := &TypeEnv{
		Forest:  typesystem.NewForest(),
		Symbols: symbols.NewSymbolTable(),
		TypeMap: make(map[ast.Node]typesystem.Type),
		CastMap: make(map[*ast.CastExpression]CastNode),
	}
	env.bootstrap()
	return env
}

// bootstrap registers the builtin primitives, each as the sole member
// of its own root set.
func (env *TypeEnv) bootstrap() {
	define := func(name string, t typesystem.Type) {
		set := env.Forest.NewRoot(t)
		if err := env.Forest.DeclareNewtype(name, set); err != nil {
			panic(err) // duplicate builtin registration
		}
		env.Symbols.Define(symbols.Symbol{Name: name, Type: t, Kind: symbols.TypeSymbol})
	}

	for _, name := range config.IntTypeNames {
		signed := name[0] == 'i'
		width := 0
		switch name[1:] {
		case "8":
			width = 8
		case "16":
			width = 16
		case "32":
			width = 32
		case "64":
			width = 64
		}
		define(name, typesystem.TInt{Width: width, Signed: signed})
	}
	for _, name := range config.FloatTypeNames {
		width := 32
		if name == "f64" {
			width = 64
		}
		define(name, typesystem.TFloat{Width: width})
	}
	define(config.BoolTypeName, typesystem.TBool{})
	define(config.CharTypeName, typesystem.TChar{})
	define(config.RawPtrTypeName, typesystem.TRawPtr{})
}

// Analyzer elaborates one unit's AST against a shared TypeEnv.
type Analyzer struct {
	env     *TypeEnv
	scope   *symbols.SymbolTable
	inLoop  bool
	returns typesystem.Type // enclosing function's return type
	errors  []*diagnostics.DiagnosticError

	// Per-unit result maps, merged into the env when the unit is done.
	typeMap map[ast.Node]typesystem.Type
	castMap map[*ast.CastExpression]CastNode
}

func New(env *TypeEnv) *Analyzer {
	return &Analyzer{
		env:     env,
		scope:   env.Symbols,
		typeMap: make(map[ast.Node]typesystem.Type),
		castMap: make(map[*ast.CastExpression]CastNode),
	}
}

// NewScoped returns an analyzer whose name lookups start at scope
// instead of the global table. Macro-expanded fragments elaborate in
// the lexical scope of their call site.
func NewScoped(env *TypeEnv, scope *symbols.SymbolTable) *Analyzer {
	a := New(env)
	if scope != nil {
		a.scope = scope
	}
	return a
}

// Merge folds this unit's type and cast maps into the shared env.
func (a *Analyzer) Merge() {
	a.env.mu.Lock()
	defer a.env.mu.Unlock()
	for node, t := range a.typeMap {
		a.env.TypeMap[node] = t
	}
	for expr, node := range a.castMap {
		a.env.CastMap[expr] = node
	}
}

func (a *Analyzer) Errors() []*diagnostics.DiagnosticError { return a.errors }

func (a *Analyzer) errorf(code diagnostics.ErrorCode, tok token.Token, args ...interface{}) {
	a.errors = append(a.errors, diagnostics.NewError(code, tok, args...))
}

// pushScope/popScope manage the lexical scope stack.
func (a *Analyzer) pushScope(kind symbols.ScopeType) {
	a.scope = symbols.NewEnclosedSymbolTable(a.scope, kind)
}

func (a *Analyzer) popScope() {
	if outer := a.scope.Outer(); outer != nil {
		a.scope = outer
	}
}
