package prettyprinter_test

import (
	"testing"

	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/lexer"
	"github.com/tarn-lang/tarn/internal/parser"
	"github.com/tarn-lang/tarn/internal/pipeline"
	"github.com/tarn-lang/tarn/internal/prettyprinter"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	ctx := pipeline.NewContext("test.tarn", input)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if ctx.HasErrors() {
		for _, e := range ctx.Errors {
			t.Errorf("parse error: %s", e)
		}
		t.FailNow()
	}
	return ctx.AstRoot.(*ast.Program)
}

// TestPrintIsStable checks that printing reaches a fixed point: the
// canonical form reparses to the same canonical form.
func TestPrintIsStable(t *testing.T) {
	inputs := []string{
		"let mut x: i64 = 1 + 2 * 3\n",
		"newtype Meters = i64\n",
		"fn area(w: f64, h: f64) -> f64 {\n    return w * h\n}\n",
		"struct Point {\n    x: f64\n    y: f64\n}\n",
		"choice Opt {\n    Some(i64)\n    None\n}\n",
		"if let Some(x) = find() {\n    use(x)\n}\n",
		"let Some(x) = a() else {\n    return\n}\n",
	}
	for _, input := range inputs {
		first := prettyprinter.Print(parse(t, input))
		second := prettyprinter.Print(parse(t, first))
		if first != second {
			t.Errorf("print not stable for %q:\nfirst:\n%s\nsecond:\n%s", input, first, second)
		}
	}
}

func TestExprRendersConstArguments(t *testing.T) {
	prog := parse(t, "foo::<(N > 2), i32>(x)")
	call := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	gen := call.Function.(*ast.GenericExpression)

	got := prettyprinter.Expr(gen.Arguments[0].Const)
	if got != "(N > 2)" {
		t.Errorf("expected const argument to render as %q, got %q", "(N > 2)", got)
	}
	if prettyprinter.Type(gen.Arguments[1].Type) != "i32" {
		t.Errorf("type argument rendered wrong: %q", prettyprinter.Type(gen.Arguments[1].Type))
	}
}

func TestExprParenthesizesInfix(t *testing.T) {
	prog := parse(t, "a + b * c")
	expr := prog.Statements[0].(*ast.ExpressionStatement).Expression
	if got := prettyprinter.Expr(expr); got != "(a + (b * c))" {
		t.Errorf("expected fully parenthesized form, got %q", got)
	}
}

func TestCastRendering(t *testing.T) {
	prog := parse(t, "x #? u8")
	expr := prog.Statements[0].(*ast.ExpressionStatement).Expression
	if got := prettyprinter.Expr(expr); got != "x #? u8" {
		t.Errorf("cast rendered wrong: %q", got)
	}
}
