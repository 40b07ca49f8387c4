package lib

// tokenBuffer hands out the tokens of one file in order with a single token
// of lookahead. Once drained it keeps reporting done.
type tokenBuffer struct {
	tokens []Token
	pos    int
}

func newTokenBuffer(tokens []Token) *tokenBuffer {
	return &tokenBuffer{
		tokens: tokens,
		pos:    0,
	}
}

func (tb *tokenBuffer) Next() (tok Token, done bool) {
	tok, done = tb.Peek()
	if !done {
		tb.pos++
	}
	return tok, done
}

func (tb *tokenBuffer) Peek() (Token, bool) {
	if tb.pos >= len(tb.tokens) {
		return Token{}, true
	}
	return tb.tokens[tb.pos], false
}

