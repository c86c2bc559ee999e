package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/config"
	"github.com/tarn-lang/tarn/internal/modules"
	"github.com/tarn-lang/tarn/internal/prettyprinter"
)

const usage = `usage: tarn <command> [arguments]

commands:
    check [path]    type-check a project or a single file
    fmt <file>      print the canonical form of a source file
    version         print the compiler version
`

// Version is stamped at build time with -ldflags "-X ...cli.Version=".
var Version = "dev"

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Entry is the command dispatcher behind cmd/tarn.
func Entry(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	switch args[0] {
	case "check":
		path := "."
		if len(args) > 1 {
			path = args[1]
		}
		return runCheck(path, stdout, stderr)
	case "fmt":
		if len(args) < 2 {
			fmt.Fprint(stderr, usage)
			return 2
		}
		return runFmt(args[1], stdout, stderr)
	case "version":
		fmt.Fprintln(stdout, "tarn "+Version)
		return 0
	default:
		fmt.Fprint(stderr, usage)
		return 2
	}
}

func runCheck(path string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := path
	var paths []string
	if isSourceFile(path) {
		root = filepath.Dir(path)
		paths = []string{path}
	}

	manifest, err := config.LoadManifest(root)
	if err != nil {
		fmt.Fprintln(stderr, "tarn:", err)
		return 1
	}

	compilation := modules.NewCompilation(manifest)
	if paths == nil {
		paths, err = compilation.DiscoverSources(root)
		if err != nil {
			fmt.Fprintln(stderr, "tarn:", err)
			return 1
		}
	}
	if len(paths) == 0 {
		fmt.Fprintln(stderr, "tarn: no source files under", root)
		return 1
	}

	if err := compilation.Compile(ctx, paths); err != nil {
		fmt.Fprintln(stderr, "tarn:", err)
		return 1
	}

	errs := compilation.Errors()
	for _, e := range errs {
		fmt.Fprintln(stderr, colorize(stderr, e.Error()))
	}
	if len(errs) > 0 {
		fmt.Fprintf(stderr, "%d error(s)\n", len(errs))
		return 1
	}
	fmt.Fprintf(stdout, "ok, %d file(s)\n", len(paths))
	return 0
}

func runFmt(path string, stdout, stderr io.Writer) int {
	manifest := &config.Manifest{Name: "fmt", SourceDirs: []string{"."}}
	compilation := modules.NewCompilation(manifest)
	if err := compilation.Compile(context.Background(), []string{path}); err != nil {
		fmt.Fprintln(stderr, "tarn:", err)
		return 1
	}
	for _, e := range compilation.Errors() {
		fmt.Fprintln(stderr, colorize(stderr, e.Error()))
	}
	if len(compilation.Errors()) > 0 {
		return 1
	}
	prog, ok := compilation.Units[0].Ctx.AstRoot.(*ast.Program)
	if !ok {
		return 1
	}
	fmt.Fprint(stdout, prettyprinter.Print(prog))
	return 0
}

// colorize wraps diagnostics in red when the destination is a terminal.
func colorize(w io.Writer, s string) string {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return s
	}
	return "\x1b[31m" + s + "\x1b[0m"
}
