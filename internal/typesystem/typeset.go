package typesystem

import "fmt"

// SetID addresses one TypeSet inside a Forest arena.
type SetID int

// NoSet is the absent parent of a tree root.
const NoSet SetID = -1

// TypeSet is one equivalence class of parallel types. Root sets wrap
// exactly one inline structural type; derived sets reach it through
// their parent chain.
type TypeSet struct {
	ID      SetID
	Parent  SetID
	Root    Type // inline structural type; set on roots only
	Members []string

	depth     int
	ancestors []SetID // ancestors[d] is the ancestor at depth d; filled by Seal
}

// Forest is the arena of TypeSets. It is append-only during declaration
// collection and read-only after Seal; sealed queries are safe for
// concurrent readers without locking.
type Forest struct {
	sets   []*TypeSet
	byName map[string]SetID
	sealed bool
}

func NewForest() *Forest {
	return &Forest{byName: make(map[string]SetID)}
}

// NewRoot allocates a fresh tree whose root set wraps the given inline
// structural type. The set starts with no members; names join it via
// DeclareNewtype.
func (f *Forest) NewRoot(root Type) SetID {
	f.mustBeOpen()
	id := SetID(len(f.sets))
	f.sets = append(f.sets, &TypeSet{ID: id, Parent: NoSet, Root: root})
	return id
}

// DeclareNewtype inserts name into an existing set, making it parallel
// to every current member.
func (f *Forest) DeclareNewtype(name string, set SetID) error {
	f.mustBeOpen()
	if !f.valid(set) {
		return fmt.Errorf("newtype %s: no such type set %d", name, set)
	}
	if _, exists := f.byName[name]; exists {
		return fmt.Errorf("type %s is already declared", name)
	}
	ts := f.sets[set]
	ts.Members = append(ts.Members, name)
	f.byName[name] = set
	return nil
}

// DeclareSubtype allocates a brand-new set holding only name, with a
// parent edge to the given set. Every call creates a distinct child, so
// siblings declared from the same parent are never parallel.
func (f *Forest) DeclareSubtype(name string, parent SetID) (SetID, error) {
	f.mustBeOpen()
	if !f.valid(parent) {
		return NoSet, fmt.Errorf("subtype %s: no such type set %d", name, parent)
	}
	if _, exists := f.byName[name]; exists {
		return NoSet, fmt.Errorf("type %s is already declared", name)
	}
	id := SetID(len(f.sets))
	f.sets = append(f.sets, &TypeSet{ID: id, Parent: parent, Members: []string{name}})
	f.byName[name] = id
	return id, nil
}

// SetOf resolves a declared type name to its set.
func (f *Forest) SetOf(name string) (SetID, bool) {
	id, ok := f.byName[name]
	return id, ok
}

// Members returns the member names of a set.
func (f *Forest) Members(set SetID) []string {
	if !f.valid(set) {
		return nil
	}
	return f.sets[set].Members
}

// RootType climbs to the tree root and returns its inline structural
// type.
func (f *Forest) RootType(set SetID) Type {
	if !f.valid(set) {
		return nil
	}
	ts := f.sets[set]
	for ts.Parent != NoSet {
		ts = f.sets[ts.Parent]
	}
	return ts.Root
}

// Seal freezes the forest and precomputes depth and ancestor tables so
// the relation queries are O(1). Any later mutation panics.
func (f *Forest) Seal() {
	if f.sealed {
		return
	}
	// Parent ids always precede child ids, so one forward pass suffices.
	for _, ts := range f.sets {
		if ts.Parent == NoSet {
			ts.depth = 0
			ts.ancestors = nil
			continue
		}
		p := f.sets[ts.Parent]
		ts.depth = p.depth + 1
		ts.ancestors = make([]SetID, ts.depth)
		copy(ts.ancestors, p.ancestors)
		ts.ancestors[p.depth] = p.ID
	}
	f.sealed = true
}

func (f *Forest) Sealed() bool { return f.sealed }

// AreParallel reports whether two sets are the same equivalence class.
// Reflexive, symmetric and transitive by construction.
func (f *Forest) AreParallel(a, b SetID) bool {
	f.mustBeSealed()
	return f.valid(a) && a == b
}

// IsUpstreamOf reports whether a is a strict ancestor of b within one
// derivation tree.
func (f *Forest) IsUpstreamOf(a, b SetID) bool {
	f.mustBeSealed()
	if !f.valid(a) || !f.valid(b) || a == b {
		return false
	}
	ta, tb := f.sets[a], f.sets[b]
	if ta.depth >= tb.depth {
		return false
	}
	return tb.ancestors[ta.depth] == a
}

// IsDownstreamOf is the inverse of IsUpstreamOf.
func (f *Forest) IsDownstreamOf(a, b SetID) bool {
	return f.IsUpstreamOf(b, a)
}

func (f *Forest) valid(id SetID) bool {
	return id >= 0 && int(id) < len(f.sets)
}

func (f *Forest) mustBeOpen() {
	if f.sealed {
		panic("typesystem: forest mutated after sealing")
	}
}

func (f *Forest) mustBeSealed() {
	if !f.sealed {
		panic("typesystem: relation query before sealing")
	}
}
