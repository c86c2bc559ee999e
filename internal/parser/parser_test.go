package parser_test

import (
	"testing"

	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/diagnostics"
	"github.com/tarn-lang/tarn/internal/lexer"
	"github.com/tarn-lang/tarn/internal/parser"
	"github.com/tarn-lang/tarn/internal/pipeline"
)

// parse is a test helper: lexes+parses input and fails on errors.
func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	ctx := parseCtx(input)
	if len(ctx.Errors) > 0 {
		for _, e := range ctx.Errors {
			t.Errorf("parse error: %s", e)
		}
		t.FailNow()
	}
	return ctx.AstRoot.(*ast.Program)
}

func parseCtx(input string) *pipeline.PipelineContext {
	ctx := pipeline.NewContext("test.tarn", input)
	lp := &lexer.LexerProcessor{}
	ctx = lp.Process(ctx)
	pp := &parser.ParserProcessor{}
	return pp.Process(ctx)
}

// expectParseError asserts that input fails with the given code.
func expectParseError(t *testing.T, input string, code diagnostics.ErrorCode) {
	t.Helper()
	ctx := parseCtx(input)
	for _, e := range ctx.Errors {
		if e.Code == code {
			return
		}
	}
	t.Fatalf("expected error %s, got %v", code, ctx.Errors)
}

// stmtExpr extracts the expression from the nth ExpressionStatement.
func stmtExpr(t *testing.T, prog *ast.Program, idx int) ast.Expression {
	t.Helper()
	if idx >= len(prog.Statements) {
		t.Fatalf("expected at least %d statements, got %d", idx+1, len(prog.Statements))
	}
	es, ok := prog.Statements[idx].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("statement %d: expected ExpressionStatement, got %T", idx, prog.Statements[idx])
	}
	return es.Expression
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		op    string
	}{
		{"1 + 2 * 3", "+"},
		{"a < b", "<"},
		{"a >> b", ">>"},
		{"a << 2 == b", "=="},
		{"x == y && a != b", "&&"},
	}
	for _, tt := range tests {
		prog := parse(t, tt.input)
		infix, ok := stmtExpr(t, prog, 0).(*ast.InfixExpression)
		if !ok {
			t.Fatalf("%q: expected InfixExpression, got %T", tt.input, stmtExpr(t, prog, 0))
		}
		if infix.Operator != tt.op {
			t.Errorf("%q: expected top-level %q, got %q", tt.input, tt.op, infix.Operator)
		}
	}
}

func TestCastExpressionWithTarget(t *testing.T) {
	prog := parse(t, "x # i64")
	cast, ok := stmtExpr(t, prog, 0).(*ast.CastExpression)
	if !ok {
		t.Fatalf("expected CastExpression, got %T", stmtExpr(t, prog, 0))
	}
	nt, ok := cast.Target.(*ast.NamedType)
	if !ok || nt.Name != "i64" {
		t.Fatalf("expected target i64, got %#v", cast.Target)
	}
}

func TestCastExpressionWithoutTarget(t *testing.T) {
	// The destination comes from context; a trailing operator leaves
	// Target nil.
	prog := parse(t, "let y: i64 = x #\n")
	let := prog.Statements[0].(*ast.LetStatement)
	cast, ok := let.Clauses[0].Value.(*ast.CastExpression)
	if !ok {
		t.Fatalf("expected CastExpression, got %T", let.Clauses[0].Value)
	}
	if cast.Target != nil {
		t.Fatalf("expected nil target, got %#v", cast.Target)
	}
}

func TestCastOperatorFamily(t *testing.T) {
	inputs := []string{"x # u8", "x $ u8", "x #? u8", "x #~ u8", "x #! u8"}
	for _, input := range inputs {
		prog := parse(t, input)
		if _, ok := stmtExpr(t, prog, 0).(*ast.CastExpression); !ok {
			t.Errorf("%q: expected CastExpression, got %T", input, stmtExpr(t, prog, 0))
		}
	}
}

func TestStructLiteralBlockedInCondition(t *testing.T) {
	// "x" then block, not a struct literal "x { }".
	prog := parse(t, "if x {\n    y\n}\n")
	ifStmt, ok := prog.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected IfStatement, got %T", prog.Statements[0])
	}
	if _, ok := ifStmt.Condition.(*ast.Identifier); !ok {
		t.Fatalf("expected identifier condition, got %T", ifStmt.Condition)
	}
}

func TestDeclarations(t *testing.T) {
	prog := parse(t, `newtype UserId = i64
subtype AdminId = UserId
struct Point {
    x: f64
    y: f64
}
enum Color {
    Red
    Green = 5
}
choice Shape {
    Circle(f64)
    Empty
}
fn area(s: f64) -> f64 {
    return s
}
`)
	if len(prog.Statements) != 6 {
		t.Fatalf("expected 6 statements, got %d", len(prog.Statements))
	}
	if _, ok := prog.Statements[0].(*ast.NewtypeDeclaration); !ok {
		t.Errorf("statement 0: got %T", prog.Statements[0])
	}
	if _, ok := prog.Statements[1].(*ast.SubtypeDeclaration); !ok {
		t.Errorf("statement 1: got %T", prog.Statements[1])
	}
	choice := prog.Statements[4].(*ast.ChoiceDeclaration)
	if len(choice.Variants) != 2 || choice.Variants[0].Payload == nil || choice.Variants[1].Payload != nil {
		t.Errorf("choice variants parsed wrong: %#v", choice.Variants)
	}
}
