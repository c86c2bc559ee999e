package token

// Stream is a read-only cursor over a lexed token slice. The parser
// owns exactly one; Peek never moves the cursor.
type Stream struct {
	tokens []Token
	pos    int
}

func NewStream(tokens []Token) *Stream {
	return &Stream{tokens: tokens}
}

// Next returns the token under the cursor and advances. Past the end it
// keeps returning EOF.
func (s *Stream) Next() Token {
	tok := s.at(s.pos)
	if s.pos < len(s.tokens) {
		s.pos++
	}
	return tok
}

// Peek returns up to n upcoming tokens without advancing.
func (s *Stream) Peek(n int) []Token {
	out := make([]Token, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, s.at(s.pos+i))
	}
	return out
}

func (s *Stream) at(i int) Token {
	if i >= len(s.tokens) {
		return Token{Type: EOF}
	}
	return s.tokens[i]
}
