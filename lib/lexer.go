package lib

import (
	"fmt"
	"strconv"
	"unicode"
)

// Tokenize splits the lines of one source file into tokens. Lexical errors
// are returned as diagnostics and never stop the scan.
func Tokenize(fileID string, lines []string) ([]Token, []Diagnostic) {
	tokens := []Token{}
	sink := &diagnosticSink{file: fileID}
	lex(lines, func(tok Token) {
		tokens = append(tokens, tok)
	}, sink)
	return tokens, sink.diagnostics
}

func lex(lines []string, emit func(Token), sink *diagnosticSink) {
	for i, line := range lines {
		l := newLexer(i, line, emit, sink)
		l.scan()
	}
}

// lexer scans a single line. Tokens never span lines.
type lexer struct {
	text             []rune
	length           int
	lineIndex        int
	currentCharIndex int
	tokenStartIndex  int
	emitCallback     func(Token)
	sink             *diagnosticSink
}

func newLexer(lineIndex int, line string, emit func(Token), sink *diagnosticSink) *lexer {
	text := []rune(line)
	return &lexer{
		text:             text,
		length:           len(text),
		lineIndex:        lineIndex,
		currentCharIndex: 0,
		tokenStartIndex:  0,
		emitCallback:     emit,
		sink:             sink,
	}
}

func (l *lexer) emit(tok Token) {
	tok.Location = l.tokenLocation()
	l.emitCallback(tok)
}

func (l *lexer) peek(offset int) (rune, bool) {
	i := l.currentCharIndex + offset
	if i >= l.length {
		return 0, false
	}
	return l.text[i], true
}

func (l *lexer) advance() (rune, bool) {
	ch, ok := l.peek(0)
	if ok {
		l.currentCharIndex++
	}
	return ch, ok
}

func (l *lexer) scan() {
	for l.currentCharIndex < l.length {
		l.next()
	}
}

func (l *lexer) next() {
	l.resetToken()
	ch, _ := l.peek(0)

	if l.skipTrivia(ch) {
		return
	}

	if ch == '"' {
		l.wrapped('"')
		return
	}

	if isDigit(ch) {
		l.scanNumber()
		return
	}

	if kind, size, ok := l.matchOperator(); ok {
		l.currentCharIndex += size
		l.emit(Token{Kind: kind})
		return
	}

	if isIdentStart(ch) {
		l.scanWord()
		return
	}

	_, _ = l.advance()
	l.errorf(l.tokenLocation(), "unrecognized character '%c'", ch)
}

// skipTrivia eats whitespace and // comments.
func (l *lexer) skipTrivia(ch rune) bool {
	if unicode.IsSpace(ch) {
		_, _ = l.advance()
		return true
	}
	if ahead, ok := l.peek(1); ch == '/' && ok && ahead == '/' {
		l.currentCharIndex = l.length
		return true
	}
	return false
}

func (l *lexer) matchOperator() (TokenKind, int, bool) {
	for _, op := range operatorKinds {
		if l.hasPrefix(op.text) {
			return op.kind, len(op.text), true
		}
	}
	return TokenUnknown, 0, false
}

func (l *lexer) hasPrefix(text []rune) bool {
	if l.currentCharIndex+len(text) > l.length {
		return false
	}
	for i, ch := range text {
		if l.text[l.currentCharIndex+i] != ch {
			return false
		}
	}
	return true
}

func (l *lexer) scanWord() {
	l.eatWhile(isIdentChar)
	word := l.tokenText()

	if kind := KindForText(word); kind != TokenUnknown {
		l.emit(Token{Kind: kind})
		return
	}
	l.emit(Token{Kind: TokenIdentifier, Text: word})
}

func (l *lexer) scanNumber() {
	l.eatWhile(isDigit)

	// Something like 12abc is neither a number nor an identifier.
	if ch, ok := l.peek(0); ok && isIdentChar(ch) {
		l.eatWhile(isIdentChar)
		l.errorf(l.tokenLocation(), "malformed numeric literal '%s'", l.tokenText())
		return
	}

	digits := l.tokenText()
	value, err := strconv.ParseInt(digits, 10, 32)
	if err != nil {
		l.errorf(l.tokenLocation(), "integer literal %s is out of range", digits)
		return
	}
	l.emit(Token{Kind: TokenIntegerLiteral, Int: int32(value)})
}

func (l *lexer) eatWhile(match func(rune) bool) {
	for {
		ch, ok := l.peek(0)
		if !ok || !match(ch) {
			return
		}
		_, _ = l.advance()
	}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func (l *lexer) resetToken() {
	l.tokenStartIndex = l.currentCharIndex
}

func (l *lexer) tokenText() string {
	return string(l.text[l.tokenStartIndex:l.currentCharIndex])
}

func (l *lexer) tokenLocation() Location {
	return Location{Line: l.lineIndex, Column: l.tokenStartIndex}
}

// wrapped scans a quoted literal. Without a closing quote the rest of the line
// is consumed and a single error is reported at the opening quote.
func (l *lexer) wrapped(terminator rune) {
	start := l.tokenLocation()
	_, _ = l.advance()

	value := []rune{}
	for {
		current, ok := l.advance()
		if !ok {
			l.errorf(start, "unterminated string literal")
			return
		}

		if current == terminator {
			break
		}

		if current == '\\' {
			escapeLoc := Location{Line: l.lineIndex, Column: l.currentCharIndex - 1}
			next, ok := l.advance()
			if !ok {
				l.errorf(start, "unterminated string literal")
				return
			}
			unescaped, known := unescape(next)
			if !known {
				l.errorf(escapeLoc, "unknown escape sequence '\\%c'", next)
			}
			value = append(value, unescaped)
			continue
		}

		value = append(value, current)
	}

	l.emit(Token{Kind: TokenStringLiteral, Text: string(value)})
}

func unescape(ch rune) (rune, bool) {
	switch ch {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	default:
		return ch, false
	}
}

func (l *lexer) errorf(loc Location, msg string, args ...interface{}) {
	l.sink.errorf(LexicalError, loc, "%s", fmt.Sprintf(msg, args...))
}
