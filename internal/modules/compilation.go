package modules

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tarn-lang/tarn/internal/analyzer"
	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/config"
	"github.com/tarn-lang/tarn/internal/diagnostics"
	"github.com/tarn-lang/tarn/internal/lexer"
	"github.com/tarn-lang/tarn/internal/parser"
	"github.com/tarn-lang/tarn/internal/pipeline"
)

// Unit is one source file moving through the compile.
type Unit struct {
	Path string
	Ctx  *pipeline.PipelineContext
}

// Compilation drives a whole project through the three phases: parallel
// lex and parse per unit, single-threaded declaration collection across
// all units, then parallel elaboration against the sealed forest. A
// unit's diagnostics are fatal to that unit only; sibling units always
// run to completion.
type Compilation struct {
	Manifest *config.Manifest
	Env      *analyzer.TypeEnv
	Units    []*Unit
}

func NewCompilation(manifest *config.Manifest) *Compilation {
	return &Compilation{
		Manifest: manifest,
		Env:      analyzer.NewTypeEnv(),
	}
}

// DiscoverSources walks the manifest's source directories and returns
// every source file, sorted so collection order is reproducible.
func (c *Compilation) DiscoverSources(root string) ([]string, error) {
	var paths []string
	for _, dir := range c.Manifest.SourceDirs {
		base := filepath.Join(root, dir)
		err := filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			for _, ext := range config.SourceFileExtensions {
				if strings.HasSuffix(path, ext) {
					paths = append(paths, path)
					return nil
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Compile runs all phases over the given source files. Cancelling ctx
// stops scheduling new units; units already running finish. The
// returned error is infrastructural (unreadable file, cancelled
// context); language diagnostics are on the units.
func (c *Compilation) Compile(ctx context.Context, paths []string) error {
	c.Units = make([]*Unit, len(paths))
	for i, path := range paths {
		c.Units[i] = &Unit{Path: path}
	}

	if err := c.parseAll(ctx); err != nil {
		return err
	}

	// Collection is single-threaded and phased across all units:
	// aggregates first, then newtype/subtype aliases, then function
	// signatures, so a signature in one file can name a type from
	// another regardless of file order.
	phases := []func(*analyzer.Analyzer, *ast.Program){
		(*analyzer.Analyzer).CollectAggregates,
		(*analyzer.Analyzer).CollectAliases,
		(*analyzer.Analyzer).CollectSignatures,
	}
	for _, phase := range phases {
		for _, unit := range c.Units {
			if unit.Ctx == nil {
				continue
			}
			prog, ok := unit.Ctx.AstRoot.(*ast.Program)
			if !ok {
				continue
			}
			a := analyzer.New(c.Env)
			phase(a, prog)
			for _, e := range a.Errors() {
				if e.File == "" {
					e.File = unit.Path
				}
				if e.Unit == uuid.Nil {
					e.Unit = unit.Ctx.UnitID
				}
				unit.Ctx.Errors = append(unit.Ctx.Errors, e)
			}
		}
	}
	c.Env.Forest.Seal()

	return c.elaborateAll(ctx)
}

func (c *Compilation) parseAll(ctx context.Context) error {
	front := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{})

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, unit := range c.Units {
		unit := unit
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			source, err := os.ReadFile(unit.Path)
			if err != nil {
				return err
			}
			unit.Ctx = front.Run(pipeline.NewContext(unit.Path, string(source)))
			return nil
		})
	}
	return g.Wait()
}

func (c *Compilation) elaborateAll(ctx context.Context) error {
	elaborator := &analyzer.ElaboratorProcessor{Env: c.Env}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, unit := range c.Units {
		unit := unit
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if unit.Ctx == nil || unit.Ctx.HasErrors() {
				// A unit that failed to parse elaborates nothing, but
				// its siblings still do.
				return nil
			}
			elaborator.Process(unit.Ctx)
			return nil
		})
	}
	return g.Wait()
}

// Errors gathers every unit's diagnostics in unit order.
func (c *Compilation) Errors() []*diagnostics.DiagnosticError {
	var all []*diagnostics.DiagnosticError
	for _, unit := range c.Units {
		if unit.Ctx == nil {
			continue
		}
		all = append(all, unit.Ctx.Errors...)
	}
	return all
}
