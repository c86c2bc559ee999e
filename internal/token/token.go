package token

import "fmt"

type TokenType string

// Token is a single lexical unit with its source position.
// Literal holds the decoded value for literal tokens (int64, float64,
// rune, string, bool) and the lexeme string for everything else.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

func (t Token) Pos() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"
	NEWLINE TokenType = "NEWLINE"

	IDENT  TokenType = "IDENT"
	INT    TokenType = "INT"
	FLOAT  TokenType = "FLOAT"
	STRING TokenType = "STRING"
	CHAR   TokenType = "CHAR"

	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	STAR     TokenType = "*"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"
	BANG     TokenType = "!"
	AMP      TokenType = "&"
	PIPE     TokenType = "|"
	AND      TokenType = "&&"
	OR       TokenType = "||"
	EQ       TokenType = "=="
	NOT_EQ   TokenType = "!="
	LT       TokenType = "<"
	GT       TokenType = ">"
	LT_EQ    TokenType = "<="
	GT_EQ    TokenType = ">="
	SHL      TokenType = "<<"
	SHR      TokenType = ">>"
	DOTDOT   TokenType = ".."
	ARROW    TokenType = "->"
	COLONCOLON TokenType = "::"

	// Cast operators, in decreasing order of compile-time guarantee.
	CAST     TokenType = "#"  // reliable
	CASTINT  TokenType = "$"  // integer-family
	CASTQ    TokenType = "#?" // unreliable (runtime-checked)
	CASTU    TokenType = "#~" // unsafe
	CASTBIT  TokenType = "#!" // bit reinterpretation

	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	DOT       TokenType = "."
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"
	UNDERSCORE TokenType = "_"

	FN       TokenType = "FN"
	LET      TokenType = "LET"
	MUT      TokenType = "MUT"
	IF       TokenType = "IF"
	ELSE     TokenType = "ELSE"
	LOOP     TokenType = "LOOP"
	BREAK    TokenType = "BREAK"
	CONTINUE TokenType = "CONTINUE"
	RETURN   TokenType = "RETURN"
	TRUE     TokenType = "TRUE"
	FALSE    TokenType = "FALSE"
	STRUCT   TokenType = "STRUCT"
	ENUM     TokenType = "ENUM"
	UNION    TokenType = "UNION"
	CHOICE   TokenType = "CHOICE"
	NEWTYPE  TokenType = "NEWTYPE"
	SUBTYPE  TokenType = "SUBTYPE"
)

var keywords = map[string]TokenType{
	"fn":       FN,
	"let":      LET,
	"mut":      MUT,
	"if":       IF,
	"else":     ELSE,
	"loop":     LOOP,
	"break":    BREAK,
	"continue": CONTINUE,
	"return":   RETURN,
	"true":     TRUE,
	"false":    FALSE,
	"struct":   STRUCT,
	"enum":     ENUM,
	"union":    UNION,
	"choice":   CHOICE,
	"newtype":  NEWTYPE,
	"subtype":  SUBTYPE,
}

// LookupIdent maps an identifier lexeme to its keyword token type, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	if ident == "_" {
		return UNDERSCORE
	}
	return IDENT
}

// IsCastOperator reports whether t is one of the five cast operators.
func IsCastOperator(t TokenType) bool {
	switch t {
	case CAST, CASTINT, CASTQ, CASTU, CASTBIT:
		return true
	}
	return false
}
