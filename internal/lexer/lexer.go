package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/tarn-lang/tarn/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += w
		l.column++
		return
	}

	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// Tokenize drains the lexer into a slice terminated by one EOF token.
func Tokenize(input string) []token.Token {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	switch l.ch {
	case '\n':
		tok = newToken(token.NEWLINE, l.ch, l.line, l.column)
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.twoCharToken(token.EQ, "==")
		} else {
			tok = newToken(token.ASSIGN, l.ch, l.line, l.column)
		}
	case '+':
		tok = newToken(token.PLUS, l.ch, l.line, l.column)
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			tok = l.twoCharToken(token.ARROW, "->")
		} else {
			tok = newToken(token.MINUS, l.ch, l.line, l.column)
		}
	case '*':
		tok = newToken(token.STAR, l.ch, l.line, l.column)
	case '/':
		if l.peekChar() == '/' {
			l.skipLineComment()
			return l.NextToken()
		}
		tok = newToken(token.SLASH, l.ch, l.line, l.column)
	case '%':
		tok = newToken(token.PERCENT, l.ch, l.line, l.column)
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.twoCharToken(token.NOT_EQ, "!=")
		} else {
			tok = newToken(token.BANG, l.ch, l.line, l.column)
		}
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = l.twoCharToken(token.LT_EQ, "<=")
		case '<':
			l.readChar()
			tok = l.twoCharToken(token.SHL, "<<")
		default:
			tok = newToken(token.LT, l.ch, l.line, l.column)
		}
	case '>':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = l.twoCharToken(token.GT_EQ, ">=")
		case '>':
			l.readChar()
			tok = l.twoCharToken(token.SHR, ">>")
		default:
			tok = newToken(token.GT, l.ch, l.line, l.column)
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok = l.twoCharToken(token.AND, "&&")
		} else {
			tok = newToken(token.AMP, l.ch, l.line, l.column)
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = l.twoCharToken(token.OR, "||")
		} else {
			tok = newToken(token.PIPE, l.ch, l.line, l.column)
		}
	case '#':
		// #, #?, #~, #!
		switch l.peekChar() {
		case '?':
			l.readChar()
			tok = l.twoCharToken(token.CASTQ, "#?")
		case '~':
			l.readChar()
			tok = l.twoCharToken(token.CASTU, "#~")
		case '!':
			l.readChar()
			tok = l.twoCharToken(token.CASTBIT, "#!")
		default:
			tok = newToken(token.CAST, l.ch, l.line, l.column)
		}
	case '$':
		tok = newToken(token.CASTINT, l.ch, l.line, l.column)
	case ':':
		if l.peekChar() == ':' {
			l.readChar()
			tok = l.twoCharToken(token.COLONCOLON, "::")
		} else {
			tok = newToken(token.COLON, l.ch, l.line, l.column)
		}
	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			tok = l.twoCharToken(token.DOTDOT, "..")
		} else {
			tok = newToken(token.DOT, l.ch, l.line, l.column)
		}
	case ',':
		tok = newToken(token.COMMA, l.ch, l.line, l.column)
	case ';':
		tok = newToken(token.SEMICOLON, l.ch, l.line, l.column)
	case '(':
		tok = newToken(token.LPAREN, l.ch, l.line, l.column)
	case ')':
		tok = newToken(token.RPAREN, l.ch, l.line, l.column)
	case '{':
		tok = newToken(token.LBRACE, l.ch, l.line, l.column)
	case '}':
		tok = newToken(token.RBRACE, l.ch, l.line, l.column)
	case '[':
		tok = newToken(token.LBRACKET, l.ch, l.line, l.column)
	case ']':
		tok = newToken(token.RBRACKET, l.ch, l.line, l.column)
	case '"':
		return l.readString()
	case '\'':
		return l.readCharLiteral()
	case 0:
		tok = token.Token{Type: token.EOF, Lexeme: "", Line: l.line, Column: l.column}
	default:
		if isLetter(l.ch) {
			return l.readIdentifier()
		}
		if unicode.IsDigit(l.ch) {
			return l.readNumber()
		}
		tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
	}

	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() token.Token {
	line, column := l.line, l.column
	start := l.position
	for isLetter(l.ch) || unicode.IsDigit(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	typ := token.LookupIdent(lexeme)

	tok := token.Token{Type: typ, Lexeme: lexeme, Literal: lexeme, Line: line, Column: column}
	switch typ {
	case token.TRUE:
		tok.Literal = true
	case token.FALSE:
		tok.Literal = false
	}
	return tok
}

func (l *Lexer) readNumber() token.Token {
	line, column := l.line, l.column
	start := l.position
	isFloat := false

	for unicode.IsDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	// A '.' begins a fraction only when followed by a digit; otherwise it
	// belongs to a range operator (0..10) or member access.
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for unicode.IsDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}

	lexeme := l.input[start:l.position]
	clean := removeUnderscores(lexeme)
	if isFloat {
		val, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: lexeme, Line: line, Column: column}
		}
		return token.Token{Type: token.FLOAT, Lexeme: lexeme, Literal: val, Line: line, Column: column}
	}
	val, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: lexeme, Line: line, Column: column}
	}
	return token.Token{Type: token.INT, Lexeme: lexeme, Literal: val, Line: line, Column: column}
}

func (l *Lexer) readString() token.Token {
	line, column := l.line, l.column
	l.readChar() // consume opening quote

	var out []rune
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '\\':
				out = append(out, '\\')
			case '"':
				out = append(out, '"')
			default:
				out = append(out, l.ch)
			}
		} else {
			out = append(out, l.ch)
		}
		l.readChar()
	}
	if l.ch == 0 {
		return token.Token{Type: token.ILLEGAL, Lexeme: string(out), Literal: "unterminated string", Line: line, Column: column}
	}
	l.readChar() // consume closing quote
	s := string(out)
	return token.Token{Type: token.STRING, Lexeme: s, Literal: s, Line: line, Column: column}
}

func (l *Lexer) readCharLiteral() token.Token {
	line, column := l.line, l.column
	l.readChar() // consume opening quote

	var r rune
	if l.ch == '\\' {
		l.readChar()
		switch l.ch {
		case 'n':
			r = '\n'
		case 't':
			r = '\t'
		case '\'':
			r = '\''
		case '\\':
			r = '\\'
		case '0':
			r = 0
		default:
			r = l.ch
		}
	} else {
		r = l.ch
	}
	l.readChar()
	if l.ch != '\'' {
		return token.Token{Type: token.ILLEGAL, Lexeme: string(r), Literal: "unterminated char literal", Line: line, Column: column}
	}
	l.readChar() // consume closing quote
	return token.Token{Type: token.CHAR, Lexeme: string(r), Literal: r, Line: line, Column: column}
}

func (l *Lexer) twoCharToken(typ token.TokenType, lexeme string) token.Token {
	return token.Token{Type: typ, Lexeme: lexeme, Literal: lexeme, Line: l.line, Column: l.column - 1}
}

func newToken(typ token.TokenType, ch rune, line, column int) token.Token {
	return token.Token{Type: typ, Lexeme: string(ch), Literal: string(ch), Line: line, Column: column}
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func removeUnderscores(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
