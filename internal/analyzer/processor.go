package analyzer

import (
	"github.com/google/uuid"

	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/pipeline"
)

// CollectorProcessor runs declaration collection for one unit against a
// shared TypeEnv. The driver runs collectors single-threaded across all
// units and seals the forest before any elaborator starts.
type CollectorProcessor struct {
	Env *TypeEnv
}

func (cp *CollectorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	prog, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		return ctx
	}
	ctx.TypeEnv = cp.Env

	a := New(cp.Env)
	a.Collect(prog)
	for _, err := range a.Errors() {
		if err.File == "" {
			err.File = ctx.FilePath
		}
		if err.Unit == uuid.Nil {
			err.Unit = ctx.UnitID
		}
		ctx.Errors = append(ctx.Errors, err)
	}
	return ctx
}

// ElaboratorProcessor type-checks one unit's bodies. It only reads the
// sealed forest and the global symbol table, so units may run through
// it concurrently.
type ElaboratorProcessor struct {
	Env *TypeEnv
}

func (ep *ElaboratorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	prog, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		return ctx
	}

	a := New(ep.Env)
	a.Analyze(prog)
	a.Merge()
	for _, err := range a.Errors() {
		if err.File == "" {
			err.File = ctx.FilePath
		}
		if err.Unit == uuid.Nil {
			err.Unit = ctx.UnitID
		}
		ctx.Errors = append(ctx.Errors, err)
	}
	return ctx
}
