package modules_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/tools/txtar"

	"github.com/tarn-lang/tarn/internal/config"
	"github.com/tarn-lang/tarn/internal/diagnostics"
	"github.com/tarn-lang/tarn/internal/modules"
)

// extract writes a txtar archive into a temp dir and returns its root.
func extract(t *testing.T, archive string) string {
	t.Helper()
	dir := t.TempDir()
	ar := txtar.Parse([]byte(archive))
	for _, f := range ar.Files {
		path := filepath.Join(dir, f.Name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func compileDir(t *testing.T, root string) *modules.Compilation {
	t.Helper()
	manifest, err := config.LoadManifest(root)
	if err != nil {
		t.Fatal(err)
	}
	c := modules.NewCompilation(manifest)
	paths, err := c.DiscoverSources(root)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Compile(context.Background(), paths); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestCompileProjectAcrossUnits(t *testing.T) {
	// Declarations in one unit are visible to bodies in another.
	root := extract(t, `-- types.tarn --
newtype UserId = i64
choice Lookup {
    Found(UserId)
    Missing
}
-- main.tarn --
fn resolve(l: Lookup) -> UserId {
    let Found(id) = l else {
        return 0 # UserId
    }
    return id
}
`)
	c := compileDir(t, root)
	if errs := c.Errors(); len(errs) != 0 {
		t.Fatalf("expected clean compile, got %v", errs)
	}
	if !c.Env.Forest.Sealed() {
		t.Error("forest should be sealed after Compile")
	}
	if _, ok := c.Env.Forest.SetOf("UserId"); !ok {
		t.Error("UserId should be collected")
	}
}

func TestUnitErrorsDoNotStopSiblings(t *testing.T) {
	root := extract(t, `-- bad.tarn --
fn broken() -> i64 {
    return missing
}
-- good.tarn --
fn fine(x: i8) -> i16 {
    return x # i16
}
`)
	c := compileDir(t, root)

	var bad, good int
	for _, unit := range c.Units {
		n := len(unit.Ctx.Errors)
		switch filepath.Base(unit.Path) {
		case "bad.tarn":
			bad = n
		case "good.tarn":
			good = n
		}
	}
	if bad == 0 {
		t.Error("bad.tarn should carry a diagnostic")
	}
	if good != 0 {
		t.Error("good.tarn should compile clean despite its sibling")
	}
}

func TestDiagnosticsCarryFilePosition(t *testing.T) {
	root := extract(t, `-- only.tarn --
fn f() -> i64 {
    return missing
}
`)
	c := compileDir(t, root)
	errs := c.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", errs)
	}
	e := errs[0]
	if e.Code != diagnostics.ErrT006 {
		t.Errorf("expected %s, got %s", diagnostics.ErrT006, e.Code)
	}
	if filepath.Base(e.File) != "only.tarn" || e.Line != 2 {
		t.Errorf("expected only.tarn:2, got %s:%d", e.File, e.Line)
	}
}

func TestDiagnosticsCarryUnitIdentity(t *testing.T) {
	root := extract(t, `-- one.tarn --
fn f() -> i64 {
    return missing
}
-- two.tarn --
fn g() {
    use(gone)
}
`)
	c := compileDir(t, root)

	seen := make(map[uuid.UUID]string)
	for _, unit := range c.Units {
		for _, e := range unit.Ctx.Errors {
			if e.Unit != unit.Ctx.UnitID {
				t.Errorf("%s: diagnostic attributed to unit %s, want %s", unit.Path, e.Unit, unit.Ctx.UnitID)
			}
			seen[e.Unit] = unit.Path
		}
	}
	if len(seen) != 2 {
		t.Errorf("expected diagnostics from 2 distinct units, got %d", len(seen))
	}
	if _, ok := seen[uuid.Nil]; ok {
		t.Error("no diagnostic should carry the nil unit id")
	}
}

func TestDiscoverSourcesHonorsManifest(t *testing.T) {
	root := extract(t, `-- tarn.yml --
name: demo
sources:
    - src
-- src/a.tarn --
fn a() {}
-- src/b.tn --
fn b() {}
-- elsewhere/c.tarn --
fn c() {}
`)
	manifest, err := config.LoadManifest(root)
	if err != nil {
		t.Fatal(err)
	}
	c := modules.NewCompilation(manifest)
	paths, err := c.DiscoverSources(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 sources under src/, got %v", paths)
	}
	for _, p := range paths {
		if filepath.Base(filepath.Dir(p)) != "src" {
			t.Errorf("unexpected source outside src/: %s", p)
		}
	}
}

func TestCancelledContext(t *testing.T) {
	root := extract(t, `-- a.tarn --
fn a() {}
`)
	manifest, err := config.LoadManifest(root)
	if err != nil {
		t.Fatal(err)
	}
	c := modules.NewCompilation(manifest)
	paths, err := c.DiscoverSources(root)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Compile(ctx, paths); err == nil {
		t.Error("expected an error from a cancelled context")
	}
}
