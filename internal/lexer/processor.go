package lexer

import (
	"github.com/tarn-lang/tarn/internal/pipeline"
	"github.com/tarn-lang/tarn/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.TokenStream = token.NewStream(Tokenize(ctx.Source))
	return ctx
}
