package prettyprinter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/tarn-lang/tarn/internal/ast"
)

// CodePrinter renders an AST back to canonical source text. The output
// is stable for a given tree, which is what lets const generic
// arguments use their printed form as an identity key and what the
// snapshot tests compare against.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders a whole program.
func Print(prog *ast.Program) string {
	p := NewCodePrinter()
	for i, stmt := range prog.Statements {
		if i > 0 {
			p.buf.WriteByte('\n')
		}
		p.printStatement(stmt)
	}
	return p.buf.String()
}

// Expr renders a single expression. Used for const generic argument
// identity and for diagnostics that quote source fragments.
func Expr(expr ast.Expression) string {
	p := NewCodePrinter()
	p.printExpr(expr)
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *CodePrinter) writeln() {
	p.buf.WriteByte('\n')
}

func (p *CodePrinter) printStatement(stmt ast.Statement) {
	p.writeIndent()
	switch st := stmt.(type) {
	case *ast.ExpressionStatement:
		p.printExpr(st.Expression)
	case *ast.AssignStatement:
		p.printExpr(st.Target)
		p.write(" = ")
		p.printExpr(st.Value)
	case *ast.LetStatement:
		p.printLet(st)
	case *ast.IfLetStatement:
		p.printIfLet(st)
	case *ast.IfStatement:
		p.printIf(st)
	case *ast.LoopStatement:
		p.write("loop ")
		p.printBlockInline(st.Body)
	case *ast.ReturnStatement:
		p.write("return")
		if st.Value != nil {
			p.write(" ")
			p.printExpr(st.Value)
		}
	case *ast.BreakStatement:
		p.write("break")
	case *ast.ContinueStatement:
		p.write("continue")
	case *ast.BlockStatement:
		p.printBlock(st)
		return
	case *ast.NewtypeDeclaration:
		p.write("newtype " + st.Name.Value + " = " + Type(st.Underlying))
	case *ast.SubtypeDeclaration:
		p.write("subtype " + st.Name.Value + " = " + Type(st.Parent))
	case *ast.StructDeclaration:
		p.printStruct(st)
	case *ast.EnumDeclaration:
		p.printEnum(st)
	case *ast.UnionDeclaration:
		p.printUnion(st)
	case *ast.ChoiceDeclaration:
		p.printChoice(st)
	case *ast.FunctionDeclaration:
		p.printFunction(st)
	default:
		p.write(fmt.Sprintf("/* ? %T */", stmt))
	}
	p.writeln()
}

func (p *CodePrinter) printBlock(block *ast.BlockStatement) {
	if block == nil || len(block.Statements) == 0 {
		p.write("{}")
		p.writeln()
		return
	}
	p.write("{")
	p.writeln()
	p.indent++
	for _, stmt := range block.Statements {
		p.printStatement(stmt)
	}
	p.indent--
	p.writeIndent()
	p.write("}")
	p.writeln()
}

// printBlockInline renders a block without the trailing newline, for
// positions followed by more clause text.
func (p *CodePrinter) printBlockInline(block *ast.BlockStatement) {
	out := p.buf.Len()
	p.printBlock(block)
	b := p.buf.Bytes()
	if len(b) > out && b[len(b)-1] == '\n' {
		p.buf.Truncate(len(b) - 1)
	}
}

func (p *CodePrinter) printLet(st *ast.LetStatement) {
	p.write("let ")
	for i, clause := range st.Clauses {
		if i > 0 {
			p.write(" else ")
		}
		p.write(Pattern(clause.Pattern))
		p.write(" = ")
		p.printExpr(clause.Value)
	}
	if st.ElseBlock != nil {
		p.write(" else ")
		p.printBlockInline(st.ElseBlock)
	}
}

func (p *CodePrinter) printIfLet(st *ast.IfLetStatement) {
	p.write("if ")
	for i, clause := range st.Clauses {
		if i > 0 {
			p.write(" && ")
		}
		if clause.Pattern != nil {
			p.write("let ")
			p.write(Pattern(clause.Pattern))
			p.write(" = ")
		}
		p.printExpr(clause.Value)
	}
	for _, fb := range st.Fallbacks {
		p.write(" else ")
		p.printExpr(fb)
	}
	p.write(" ")
	p.printBlockInline(st.Body)
	if st.Alternative != nil {
		p.write(" else ")
		p.printAlternative(st.Alternative)
	}
}

func (p *CodePrinter) printIf(st *ast.IfStatement) {
	p.write("if ")
	p.printExpr(st.Condition)
	p.write(" ")
	p.printBlockInline(st.Body)
	if st.Alternative != nil {
		p.write(" else ")
		p.printAlternative(st.Alternative)
	}
}

func (p *CodePrinter) printAlternative(alt ast.Statement) {
	switch a := alt.(type) {
	case *ast.BlockStatement:
		p.printBlockInline(a)
	case *ast.IfStatement:
		p.printIf(a)
	case *ast.IfLetStatement:
		p.printIfLet(a)
	}
}

func (p *CodePrinter) printStruct(st *ast.StructDeclaration) {
	if st.IsTuple {
		parts := make([]string, 0, len(st.TupleElems))
		for _, e := range st.TupleElems {
			parts = append(parts, Type(e))
		}
		p.write("struct " + st.Name.Value + "(" + strings.Join(parts, ", ") + ")")
		return
	}
	p.write("struct " + st.Name.Value + " {")
	p.writeln()
	p.indent++
	for _, f := range st.Fields {
		p.writeIndent()
		p.write(f.Name.Value + ": " + Type(f.Type))
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) printEnum(st *ast.EnumDeclaration) {
	p.write("enum " + st.Name.Value + " {")
	p.writeln()
	p.indent++
	for _, v := range st.Variants {
		p.writeIndent()
		p.write(v.Name.Value)
		if v.Value != nil {
			p.write(" = ")
			p.printExpr(v.Value)
		}
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) printUnion(st *ast.UnionDeclaration) {
	p.write("union " + st.Name.Value + " {")
	p.writeln()
	p.indent++
	for _, f := range st.Fields {
		p.writeIndent()
		p.write(f.Name.Value + ": " + Type(f.Type))
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) printChoice(st *ast.ChoiceDeclaration) {
	p.write("choice " + st.Name.Value + " {")
	p.writeln()
	p.indent++
	for _, v := range st.Variants {
		p.writeIndent()
		p.write(v.Name.Value)
		if v.Payload != nil {
			p.write("(" + Type(v.Payload) + ")")
		}
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) printFunction(st *ast.FunctionDeclaration) {
	params := make([]string, 0, len(st.Parameters))
	for _, param := range st.Parameters {
		params = append(params, param.Name.Value+": "+Type(param.Type))
	}
	p.write("fn " + st.Name.Value + "(" + strings.Join(params, ", ") + ")")
	if st.ReturnType != nil {
		p.write(" -> " + Type(st.ReturnType))
	}
	p.write(" ")
	p.printBlockInline(st.Body)
}

func (p *CodePrinter) printExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Identifier:
		p.write(e.Value)
	case *ast.IntegerLiteral:
		p.write(strconv.FormatInt(e.Value, 10))
	case *ast.FloatLiteral:
		p.write(strconv.FormatFloat(e.Value, 'g', -1, 64))
	case *ast.StringLiteral:
		p.write(strconv.Quote(e.Value))
	case *ast.CharLiteral:
		p.write(strconv.QuoteRune(e.Value))
	case *ast.BooleanLiteral:
		p.write(strconv.FormatBool(e.Value))
	case *ast.PrefixExpression:
		p.write(e.Operator)
		p.printExpr(e.Right)
	case *ast.InfixExpression:
		p.write("(")
		p.printExpr(e.Left)
		p.write(" " + e.Operator + " ")
		p.printExpr(e.Right)
		p.write(")")
	case *ast.RangeExpression:
		p.printExpr(e.Low)
		p.write("..")
		if e.High != nil {
			p.printExpr(e.High)
		}
	case *ast.CallExpression:
		p.printExpr(e.Function)
		p.write("(")
		for i, arg := range e.Arguments {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(arg)
		}
		p.write(")")
	case *ast.MemberExpression:
		p.printExpr(e.Object)
		p.write("." + e.Member.Value)
	case *ast.IndexExpression:
		p.printExpr(e.Left)
		p.write("[")
		p.printExpr(e.Index)
		p.write("]")
	case *ast.PathExpression:
		p.printExpr(e.Left)
		p.write("::" + e.Member.Value)
	case *ast.GenericExpression:
		p.printExpr(e.Base)
		p.write("::<")
		p.printGenericArguments(e.Arguments)
		p.write(">")
	case *ast.CastExpression:
		p.printExpr(e.Value)
		p.write(" " + string(e.Operator))
		if e.Target != nil {
			p.write(" " + Type(e.Target))
		}
	case *ast.StructLiteral:
		p.write(e.Name.Value + " { ")
		for i, name := range e.Order {
			if i > 0 {
				p.write(", ")
			}
			p.write(name + ": ")
			p.printExpr(e.Fields[name])
		}
		p.write(" }")
	case *ast.TupleLiteral:
		p.write("(")
		for i, el := range e.Elements {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(el)
		}
		p.write(")")
	default:
		p.write(fmt.Sprintf("/* ? %T */", expr))
	}
}

func (p *CodePrinter) printGenericArguments(args []ast.GenericArgument) {
	for i, arg := range args {
		if i > 0 {
			p.write(", ")
		}
		if arg.Type != nil {
			p.write(Type(arg.Type))
			continue
		}
		// Const arguments always render parenthesized so the printed
		// form reparses without the marker-position ambiguity.
		p.write("(")
		p.printExpr(arg.Const)
		p.write(")")
	}
}

// Type renders a syntactic type-expression.
func Type(t ast.Type) string {
	switch tt := t.(type) {
	case *ast.NamedType:
		return tt.Name
	case *ast.PointerType:
		return "*" + Type(tt.Elem)
	case *ast.ArrayType:
		return "[" + Expr(tt.Length) + "]" + Type(tt.Elem)
	case *ast.SliceType:
		return "[]" + Type(tt.Elem)
	case *ast.TupleType:
		parts := make([]string, 0, len(tt.Elements))
		for _, e := range tt.Elements {
			parts = append(parts, Type(e))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *ast.GenericType:
		p := NewCodePrinter()
		p.printGenericArguments(tt.Arguments)
		return tt.Base + "<" + p.buf.String() + ">"
	}
	return fmt.Sprintf("?%T", t)
}

// Pattern renders a pattern.
func Pattern(pat ast.Pattern) string {
	switch pt := pat.(type) {
	case *ast.WildcardPattern:
		return "_"
	case *ast.LiteralPattern:
		return Expr(pt.Value)
	case *ast.BindingPattern:
		out := pt.Name
		if pt.Mutable {
			out = "mut " + out
		}
		if pt.Annotation != nil {
			out += ": " + Type(pt.Annotation)
		}
		return out
	case *ast.TuplePattern:
		parts := make([]string, 0, len(pt.Elements))
		for _, sub := range pt.Elements {
			parts = append(parts, Pattern(sub))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *ast.StructPattern:
		fields := make([]string, 0, len(pt.Fields))
		for _, f := range pt.Fields {
			if f.Pattern == nil {
				fields = append(fields, f.Name.Value)
				continue
			}
			fields = append(fields, f.Name.Value+": "+Pattern(f.Pattern))
		}
		return pt.Name.Value + " { " + strings.Join(fields, ", ") + " }"
	case *ast.VariantPattern:
		out := pt.Case.Value
		if pt.TypeName != nil {
			out = pt.TypeName.Value + "::" + out
		}
		if pt.Payload != nil {
			out += "(" + Pattern(pt.Payload) + ")"
		}
		return out
	case *ast.RangePattern:
		out := Expr(pt.Low)
		out += ".."
		if pt.High != nil {
			out += Expr(pt.High)
		}
		return out
	}
	return fmt.Sprintf("?%T", pat)
}
