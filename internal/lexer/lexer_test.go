package lexer_test

import (
	"testing"

	"github.com/tarn-lang/tarn/internal/lexer"
	"github.com/tarn-lang/tarn/internal/token"
)

func TestOperators(t *testing.T) {
	input := "# $ #? #~ #! :: .. -> << >> <= >= == != && ||"
	expected := []token.TokenType{
		token.CAST, token.CASTINT, token.CASTQ, token.CASTU, token.CASTBIT,
		token.COLONCOLON, token.DOTDOT, token.ARROW,
		token.SHL, token.SHR, token.LT_EQ, token.GT_EQ,
		token.EQ, token.NOT_EQ, token.AND, token.OR,
		token.EOF,
	}
	toks := lexer.Tokenize(input)
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(toks), toks)
	}
	for i, want := range expected {
		if toks[i].Type != want {
			t.Errorf("token %d: expected %s, got %s (%q)", i, want, toks[i].Type, toks[i].Lexeme)
		}
	}
}

func TestShiftIsSingleToken(t *testing.T) {
	toks := lexer.Tokenize("a >> b")
	if toks[1].Type != token.SHR {
		t.Fatalf("expected '>>' as one token, got %s", toks[1].Type)
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "let mut if else loop newtype subtype choice union foo _"
	expected := []token.TokenType{
		token.LET, token.MUT, token.IF, token.ELSE, token.LOOP,
		token.NEWTYPE, token.SUBTYPE, token.CHOICE, token.UNION,
		token.IDENT, token.UNDERSCORE, token.EOF,
	}
	toks := lexer.Tokenize(input)
	for i, want := range expected {
		if toks[i].Type != want {
			t.Errorf("token %d: expected %s, got %s", i, want, toks[i].Type)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	toks := lexer.Tokenize("1_000 3.14 42")
	if toks[0].Type != token.INT || toks[0].Literal.(int64) != 1000 {
		t.Errorf("expected int 1000, got %v", toks[0])
	}
	if toks[1].Type != token.FLOAT || toks[1].Literal.(float64) != 3.14 {
		t.Errorf("expected float 3.14, got %v", toks[1])
	}
	if toks[2].Type != token.INT || toks[2].Literal.(int64) != 42 {
		t.Errorf("expected int 42, got %v", toks[2])
	}
}

func TestStringAndCharLiterals(t *testing.T) {
	toks := lexer.Tokenize(`"hi\n" 'x'`)
	if toks[0].Type != token.STRING || toks[0].Literal.(string) != "hi\n" {
		t.Errorf("expected string \"hi\\n\", got %v", toks[0])
	}
	if toks[1].Type != token.CHAR || toks[1].Literal.(rune) != 'x' {
		t.Errorf("expected char 'x', got %v", toks[1])
	}
}

func TestPositionsAndNewlines(t *testing.T) {
	toks := lexer.Tokenize("a\nbb")
	if toks[0].Line != 1 || toks[0].Column != 1 {
		t.Errorf("token a: expected 1:1, got %d:%d", toks[0].Line, toks[0].Column)
	}
	if toks[1].Type != token.NEWLINE {
		t.Fatalf("expected NEWLINE, got %s", toks[1].Type)
	}
	if toks[2].Line != 2 || toks[2].Column != 1 {
		t.Errorf("token bb: expected 2:1, got %d:%d", toks[2].Line, toks[2].Column)
	}
}

func TestLineComments(t *testing.T) {
	toks := lexer.Tokenize("x // trailing comment\ny")
	types := []token.TokenType{token.IDENT, token.NEWLINE, token.IDENT, token.EOF}
	for i, want := range types {
		if toks[i].Type != want {
			t.Errorf("token %d: expected %s, got %s", i, want, toks[i].Type)
		}
	}
}
