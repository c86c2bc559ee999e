package typesystem_test

import (
	"testing"

	"github.com/tarn-lang/tarn/internal/typesystem"
)

// buildForest declares one small tree:
//
//	i64root ← {Meters, Feet}        (parallel newtypes over i64)
//	i64root ← Celsius ← BodyTemp    (subtype chain)
//	i64root ← Fahrenheit            (sibling of Celsius)
func buildForest(t *testing.T) (*typesystem.Forest, map[string]typesystem.SetID) {
	t.Helper()
	f := typesystem.NewForest()
	ids := make(map[string]typesystem.SetID)

	root := f.NewRoot(typesystem.TInt{Width: 64, Signed: true})
	ids["root"] = root
	for _, name := range []string{"Meters", "Feet"} {
		if err := f.DeclareNewtype(name, root); err != nil {
			t.Fatal(err)
		}
	}

	celsius, err := f.DeclareSubtype("Celsius", root)
	if err != nil {
		t.Fatal(err)
	}
	ids["Celsius"] = celsius

	body, err := f.DeclareSubtype("BodyTemp", celsius)
	if err != nil {
		t.Fatal(err)
	}
	ids["BodyTemp"] = body

	fahrenheit, err := f.DeclareSubtype("Fahrenheit", root)
	if err != nil {
		t.Fatal(err)
	}
	ids["Fahrenheit"] = fahrenheit

	f.Seal()
	return f, ids
}

func TestParallelWithinOneSet(t *testing.T) {
	f, ids := buildForest(t)

	meters, _ := f.SetOf("Meters")
	feet, _ := f.SetOf("Feet")
	if meters != ids["root"] || feet != ids["root"] {
		t.Fatal("newtype members should share the root set")
	}
	if !f.AreParallel(meters, feet) {
		t.Error("Meters and Feet should be parallel")
	}
	if !f.AreParallel(meters, meters) {
		t.Error("parallel must be reflexive")
	}
	if f.AreParallel(feet, meters) != f.AreParallel(meters, feet) {
		t.Error("parallel must be symmetric")
	}
}

func TestSiblingSubtypesNotParallel(t *testing.T) {
	f, ids := buildForest(t)
	if f.AreParallel(ids["Celsius"], ids["Fahrenheit"]) {
		t.Error("sibling subtypes must not be parallel")
	}
	if f.AreParallel(ids["Celsius"], ids["root"]) {
		t.Error("a subtype is not parallel to its parent")
	}
}

func TestUpstreamDownstream(t *testing.T) {
	f, ids := buildForest(t)

	if !f.IsUpstreamOf(ids["root"], ids["BodyTemp"]) {
		t.Error("root should be upstream of BodyTemp")
	}
	if !f.IsUpstreamOf(ids["Celsius"], ids["BodyTemp"]) {
		t.Error("Celsius should be upstream of BodyTemp")
	}
	if !f.IsDownstreamOf(ids["BodyTemp"], ids["root"]) {
		t.Error("BodyTemp should be downstream of root")
	}

	// Strictness and asymmetry.
	if f.IsUpstreamOf(ids["Celsius"], ids["Celsius"]) {
		t.Error("upstream is strict")
	}
	if f.IsUpstreamOf(ids["BodyTemp"], ids["Celsius"]) {
		t.Error("upstream must not hold in reverse")
	}

	// Different branches relate in neither direction.
	if f.IsUpstreamOf(ids["Fahrenheit"], ids["BodyTemp"]) {
		t.Error("Fahrenheit is not upstream of BodyTemp")
	}
	if f.IsDownstreamOf(ids["Fahrenheit"], ids["Celsius"]) {
		t.Error("Fahrenheit is not downstream of Celsius")
	}
}

func TestRootTypeClimbsParentChain(t *testing.T) {
	f, ids := buildForest(t)
	root := f.RootType(ids["BodyTemp"])
	if !typesystem.Equal(root, typesystem.TInt{Width: 64, Signed: true}) {
		t.Fatalf("expected i64 root, got %v", root)
	}
}

func TestDuplicateDeclarationRejected(t *testing.T) {
	f := typesystem.NewForest()
	root := f.NewRoot(typesystem.TInt{Width: 32, Signed: true})
	if err := f.DeclareNewtype("Id", root); err != nil {
		t.Fatal(err)
	}
	if err := f.DeclareNewtype("Id", root); err == nil {
		t.Error("duplicate newtype should fail")
	}
	if _, err := f.DeclareSubtype("Id", root); err == nil {
		t.Error("duplicate subtype name should fail")
	}
}

func TestSealGuards(t *testing.T) {
	f := typesystem.NewForest()
	root := f.NewRoot(typesystem.TBool{})
	f.Seal()

	mustPanic(t, "mutation after seal", func() { f.NewRoot(typesystem.TBool{}) })

	unsealed := typesystem.NewForest()
	other := unsealed.NewRoot(typesystem.TBool{})
	mustPanic(t, "query before seal", func() { unsealed.AreParallel(other, other) })

	if !f.AreParallel(root, root) {
		t.Error("sealed query should work")
	}
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}
