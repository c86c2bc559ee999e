package parser_test

import (
	"testing"

	"github.com/tarn-lang/tarn/internal/ast"
	"github.com/tarn-lang/tarn/internal/diagnostics"
)

func TestGenericMarkerOpensArgumentList(t *testing.T) {
	prog := parse(t, "foo::<i32, u8>(x)")
	call, ok := stmtExpr(t, prog, 0).(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected CallExpression, got %T", stmtExpr(t, prog, 0))
	}
	gen, ok := call.Function.(*ast.GenericExpression)
	if !ok {
		t.Fatalf("expected GenericExpression callee, got %T", call.Function)
	}
	if len(gen.Arguments) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(gen.Arguments))
	}
	for i, arg := range gen.Arguments {
		if arg.Type == nil {
			t.Errorf("argument %d: expected a type argument", i)
		}
	}
}

func TestBareLessThanStaysComparison(t *testing.T) {
	prog := parse(t, "foo < bar")
	infix, ok := stmtExpr(t, prog, 0).(*ast.InfixExpression)
	if !ok || infix.Operator != "<" {
		t.Fatalf("expected '<' comparison, got %#v", stmtExpr(t, prog, 0))
	}
}

func TestParenthesizedConstArguments(t *testing.T) {
	// Two const arguments, each free to use comparisons inside parens,
	// followed by an ordinary call.
	prog := parse(t, "foo::<(A > (B)), (C < D)>(E)")
	call, ok := stmtExpr(t, prog, 0).(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected CallExpression, got %T", stmtExpr(t, prog, 0))
	}
	if len(call.Arguments) != 1 {
		t.Fatalf("expected 1 call argument, got %d", len(call.Arguments))
	}
	gen := call.Function.(*ast.GenericExpression)
	if len(gen.Arguments) != 2 {
		t.Fatalf("expected 2 generic arguments, got %d", len(gen.Arguments))
	}
	first, ok := gen.Arguments[0].Const.(*ast.InfixExpression)
	if !ok || first.Operator != ">" {
		t.Fatalf("first const argument: expected '>' comparison, got %#v", gen.Arguments[0].Const)
	}
	second, ok := gen.Arguments[1].Const.(*ast.InfixExpression)
	if !ok || second.Operator != "<" {
		t.Fatalf("second const argument: expected '<' comparison, got %#v", gen.Arguments[1].Const)
	}
}

func TestShiftRightClosesNestedLists(t *testing.T) {
	prog := parse(t, "pair::<Map<i32, List<u8>>, bool>(m)")
	call := stmtExpr(t, prog, 0).(*ast.CallExpression)
	gen := call.Function.(*ast.GenericExpression)
	if len(gen.Arguments) != 2 {
		t.Fatalf("expected 2 generic arguments, got %d", len(gen.Arguments))
	}
	outer, ok := gen.Arguments[0].Type.(*ast.GenericType)
	if !ok || outer.Base != "Map" {
		t.Fatalf("expected Map<...> argument, got %#v", gen.Arguments[0].Type)
	}
	inner, ok := outer.Arguments[1].Type.(*ast.GenericType)
	if !ok || inner.Base != "List" {
		t.Fatalf("expected List<...> inside Map, got %#v", outer.Arguments[1].Type)
	}
}

func TestShiftRightOutsideGenericsStaysShift(t *testing.T) {
	prog := parse(t, "a >> 2")
	infix, ok := stmtExpr(t, prog, 0).(*ast.InfixExpression)
	if !ok || infix.Operator != ">>" {
		t.Fatalf("expected '>>' shift, got %#v", stmtExpr(t, prog, 0))
	}
}

func TestUnbalancedDoubleClose(t *testing.T) {
	// '>>' would close two lists but only one is open.
	expectParseError(t, "foo::<i32>>(x)", diagnostics.ErrP001)
}

func TestUnclosedArgumentList(t *testing.T) {
	expectParseError(t, "foo::<i32", diagnostics.ErrP001)
	expectParseError(t, "foo::<i32\nbar", diagnostics.ErrP001)
}

func TestAmbiguousConstComparison(t *testing.T) {
	expectParseError(t, "foo::<2 < 3>(x)", diagnostics.ErrP002)
	expectParseError(t, "foo::<1 << 2>(x)", diagnostics.ErrP002)
}

func TestConstLiteralArguments(t *testing.T) {
	prog := parse(t, "buf::<16, true>(x)")
	gen := stmtExpr(t, prog, 0).(*ast.CallExpression).Function.(*ast.GenericExpression)
	if len(gen.Arguments) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(gen.Arguments))
	}
	if _, ok := gen.Arguments[0].Const.(*ast.IntegerLiteral); !ok {
		t.Errorf("first argument: expected integer const, got %#v", gen.Arguments[0])
	}
	if _, ok := gen.Arguments[1].Const.(*ast.BooleanLiteral); !ok {
		t.Errorf("second argument: expected boolean const, got %#v", gen.Arguments[1])
	}
}

func TestPlainPathAccess(t *testing.T) {
	prog := parse(t, "Color::Red")
	path, ok := stmtExpr(t, prog, 0).(*ast.PathExpression)
	if !ok || path.Member.Value != "Red" {
		t.Fatalf("expected path access, got %#v", stmtExpr(t, prog, 0))
	}
}

func TestArithmeticConstArgumentAllowed(t *testing.T) {
	// '+' sits above shift precedence, so it needs no parentheses.
	prog := parse(t, "buf::<2 + 2>(x)")
	gen := stmtExpr(t, prog, 0).(*ast.CallExpression).Function.(*ast.GenericExpression)
	sum, ok := gen.Arguments[0].Const.(*ast.InfixExpression)
	if !ok || sum.Operator != "+" {
		t.Fatalf("expected '+' const argument, got %#v", gen.Arguments[0].Const)
	}
}
