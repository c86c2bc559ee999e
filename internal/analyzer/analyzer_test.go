package analyzer_test

import (
	"testing"

	"github.com/tarn-lang/tarn/internal/analyzer"
	"github.com/tarn-lang/tarn/internal/diagnostics"
	"github.com/tarn-lang/tarn/internal/lexer"
	"github.com/tarn-lang/tarn/internal/parser"
	"github.com/tarn-lang/tarn/internal/pipeline"
)

// check runs one source string through the full front end: lex, parse,
// collect, seal, elaborate. Parse failures abort the test; language
// diagnostics come back for the caller to assert on.
func check(t *testing.T, src string) (*analyzer.TypeEnv, []*diagnostics.DiagnosticError) {
	t.Helper()
	ctx := pipeline.NewContext("test.tarn", src)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if ctx.HasErrors() {
		for _, e := range ctx.Errors {
			t.Errorf("parse error: %s", e)
		}
		t.FailNow()
	}

	env := analyzer.NewTypeEnv()
	ctx = (&analyzer.CollectorProcessor{Env: env}).Process(ctx)
	env.Forest.Seal()
	ctx = (&analyzer.ElaboratorProcessor{Env: env}).Process(ctx)
	return env, ctx.Errors
}

func checkOK(t *testing.T, src string) *analyzer.TypeEnv {
	t.Helper()
	env, errs := check(t, src)
	for _, e := range errs {
		t.Errorf("unexpected diagnostic: %s", e)
	}
	return env
}

func checkFails(t *testing.T, src string, code diagnostics.ErrorCode) {
	t.Helper()
	_, errs := check(t, src)
	for _, e := range errs {
		if e.Code == code {
			return
		}
	}
	t.Fatalf("expected diagnostic %s, got %v", code, errs)
}

func TestNewtypeCollection(t *testing.T) {
	env := checkOK(t, `newtype Meters = i64
newtype Feet = i64
`)
	meters, ok := env.Forest.SetOf("Meters")
	if !ok {
		t.Fatal("Meters not declared")
	}
	feet, _ := env.Forest.SetOf("Feet")
	i64set, _ := env.Forest.SetOf("i64")
	if meters != i64set || feet != i64set {
		t.Error("newtypes over i64 should join i64's set")
	}
	if !env.Forest.AreParallel(meters, feet) {
		t.Error("Meters and Feet should be parallel")
	}
}

func TestSubtypeCollection(t *testing.T) {
	env := checkOK(t, `newtype Temp = i64
subtype Celsius = Temp
subtype BodyTemp = Celsius
`)
	temp, _ := env.Forest.SetOf("Temp")
	celsius, _ := env.Forest.SetOf("Celsius")
	body, _ := env.Forest.SetOf("BodyTemp")
	if !env.Forest.IsUpstreamOf(temp, body) {
		t.Error("Temp should be upstream of BodyTemp")
	}
	if !env.Forest.IsUpstreamOf(celsius, body) {
		t.Error("Celsius should be upstream of BodyTemp")
	}
	if env.Forest.AreParallel(temp, celsius) {
		t.Error("a subtype is not parallel to its parent")
	}
}

func TestDuplicateTypeDeclaration(t *testing.T) {
	checkFails(t, "newtype Id = i64\nnewtype Id = i32\n", diagnostics.ErrT007)
}

func TestUnknownUnderlyingType(t *testing.T) {
	checkFails(t, "newtype Id = Missing\n", diagnostics.ErrT006)
}

func TestStructDeclarationAndLiteral(t *testing.T) {
	checkOK(t, `struct Point {
    x: f64
    y: f64
}
fn origin() -> Point {
    return Point { x: 0.0, y: 0.0 }
}
`)
}

func TestLetBindingVisibleAfterStatement(t *testing.T) {
	checkOK(t, `fn f(n: i64) -> i64 {
    let doubled = n + n
    return doubled
}
`)
}

func TestLetAnnotationMismatch(t *testing.T) {
	checkFails(t, `fn f(n: i64) {
    let flag: bool = n
}
`, diagnostics.ErrT001)
}

func TestParallelAnnotationAccepted(t *testing.T) {
	checkOK(t, `newtype Meters = i64
fn f(n: i64) -> Meters {
    let m: Meters = n
    return m
}
`)
}

func TestDuplicateBindingInPattern(t *testing.T) {
	checkFails(t, `fn f(p: (i64, i64)) {
    let (a, a) = p
}
`, diagnostics.ErrT005)
}

func TestRefutablePatternNeedsElse(t *testing.T) {
	checkFails(t, `choice Opt {
    Some(i64)
    None
}
fn f(o: Opt) {
    let Some(x) = o
}
`, diagnostics.ErrT004)
}

func TestLetElseMustDiverge(t *testing.T) {
	checkFails(t, `choice Opt {
    Some(i64)
    None
}
fn f(o: Opt) -> i64 {
    let Some(x) = o else {
        f(o)
    }
    return x
}
`, diagnostics.ErrT003)
}

func TestLetElseWithReturnAccepted(t *testing.T) {
	checkOK(t, `choice Opt {
    Some(i64)
    None
}
fn f(o: Opt) -> i64 {
    let Some(x) = o else {
        return 0
    }
    return x
}
`)
}

func TestLetElseWithEndlessLoopAccepted(t *testing.T) {
	checkOK(t, `choice Opt {
    Some(i64)
    None
}
fn f(o: Opt) -> i64 {
    let Some(x) = o else {
        loop {
            f(o)
        }
    }
    return x
}
`)
}

func TestIfLetConjunctionBindingsFlowLeftToRight(t *testing.T) {
	checkOK(t, `choice Opt {
    Some(i64)
    None
}
fn g(o: Opt, p: Opt) -> i64 {
    if let Some(x) = o && x > 0 && let Some(y) = p {
        return x + y
    }
    return 0
}
`)
}

func TestIfLetValueFallbacksShareType(t *testing.T) {
	checkOK(t, `choice Opt {
    Some(i64)
    None
}
fn pick(a: Opt, b: Opt) -> i64 {
    if let Some(x) = a else b {
        return x
    }
    return 0
}
`)
}

func TestEnumVariantPattern(t *testing.T) {
	checkOK(t, `enum Color {
    Red
    Green
}
fn isRed(c: Color) -> bool {
    if let Red = c {
        return true
    }
    return false
}
`)
}

func TestQualifiedVariantPattern(t *testing.T) {
	checkOK(t, `choice Opt {
    Some(i64)
    None
}
fn f(o: Opt) -> i64 {
    if let Opt::Some(x) = o {
        return x
    }
    return 0
}
`)
}

func TestUnknownNameInBody(t *testing.T) {
	checkFails(t, "fn f() -> i64 {\n    return missing\n}\n", diagnostics.ErrT006)
}
