package symbols

import (
	"github.com/tarn-lang/tarn/internal/typesystem"
)

type SymbolKind int

const (
	VariableSymbol SymbolKind = iota
	TypeSymbol
	ConstructorSymbol
	FunctionSymbol
)

type ScopeType int

const (
	ScopePrelude ScopeType = iota // Built-in types
	ScopeGlobal                   // User code top-level
	ScopeFunction
	ScopeBlock
	ScopeBinding // one pattern-match attempt; discarded on Unmatched
)

type Symbol struct {
	Name    string
	Type    typesystem.Type
	Kind    SymbolKind
	Mutable bool
	Owner   string // declaring type name, for constructor symbols
}

// SymbolTable is a lexically nested name → symbol mapping. Binding
// scopes live exactly as long as one match attempt: the resolver makes
// one per attempt and keeps it only on a Bound outcome.
type SymbolTable struct {
	outer     *SymbolTable
	scopeType ScopeType
	store     map[string]Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{scopeType: ScopeGlobal, store: make(map[string]Symbol)}
}

func NewEnclosedSymbolTable(outer *SymbolTable, scope ScopeType) *SymbolTable {
	return &SymbolTable{outer: outer, scopeType: scope, store: make(map[string]Symbol)}
}

func (st *SymbolTable) ScopeType() ScopeType { return st.scopeType }

// Outer returns the enclosing scope, or nil at the top level.
func (st *SymbolTable) Outer() *SymbolTable { return st.outer }

func (st *SymbolTable) Define(sym Symbol) Symbol {
	st.store[sym.Name] = sym
	return sym
}

// Resolve walks outward through enclosing scopes.
func (st *SymbolTable) Resolve(name string) (Symbol, bool) {
	if sym, ok := st.store[name]; ok {
		return sym, true
	}
	if st.outer != nil {
		return st.outer.Resolve(name)
	}
	return Symbol{}, false
}

// DefinedHere reports whether name is bound in this scope, ignoring
// enclosing scopes.
func (st *SymbolTable) DefinedHere(name string) bool {
	_, ok := st.store[name]
	return ok
}

// Names returns the names bound in this scope only.
func (st *SymbolTable) Names() []string {
	out := make([]string, 0, len(st.store))
	for name := range st.store {
		out = append(out, name)
	}
	return out
}
