package pipeline

import (
	"github.com/google/uuid"

	"github.com/tarn-lang/tarn/internal/diagnostics"
	"github.com/tarn-lang/tarn/internal/token"
)

// Processor is one compilation stage. Stages run even when earlier
// stages recorded errors so diagnostics from a unit can be batched.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries one compilation unit through the stages.
// AstRoot is *ast.Program once the parser ran; it is declared as
// interface{} here to keep this package at the bottom of the import
// graph. TypeEnv is the analyzer-owned state (relation forest, symbol
// table, type map) shared between the collection and elaboration
// stages.
type PipelineContext struct {
	UnitID      uuid.UUID
	FilePath    string
	Source      string
	TokenStream *token.Stream
	AstRoot     interface{}
	TypeEnv     interface{}
	Errors      []*diagnostics.DiagnosticError
}

func NewContext(filePath, source string) *PipelineContext {
	return &PipelineContext{
		UnitID:   uuid.New(),
		FilePath: filePath,
		Source:   source,
	}
}

// HasErrors reports whether any stage recorded a diagnostic.
func (ctx *PipelineContext) HasErrors() bool {
	return len(ctx.Errors) > 0
}
