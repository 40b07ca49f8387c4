package lib

import (
	"fmt"
	"sort"
	"unicode"
)

type TokenKind int

const (
	TokenUnknown TokenKind = iota
	TokenDeclareType
	TokenAssign
	TokenInferAssign
	TokenEqual
	TokenNotEqual
	TokenOpenBrace
	TokenCloseBrace
	TokenOpenParen
	TokenCloseParen
	TokenPlus
	TokenMinus
	TokenAsterisk
	TokenSlash
	TokenTypeInt
	TokenTypeString
	TokenIf
	TokenElse
	TokenPrint
	TokenStringLiteral
	TokenIntegerLiteral
	TokenIdentifier
)

type kindInfo struct {
	name string
	// Fixed surface text. Empty for kinds that carry a value and can only be
	// recognized by a lexical rule.
	text string
}

// kindTable is indexed by TokenKind.
var kindTable = [...]kindInfo{
	TokenUnknown:        {name: "UNKNOWN"},
	TokenDeclareType:    {name: "DECLARE_TYPE", text: ":"},
	TokenAssign:         {name: "ASSIGN", text: "="},
	TokenInferAssign:    {name: "INFER_ASSIGN", text: ":="},
	TokenEqual:          {name: "EQUAL", text: "=="},
	TokenNotEqual:       {name: "NOT_EQUAL", text: "!="},
	TokenOpenBrace:      {name: "OPEN_BRACE", text: "{"},
	TokenCloseBrace:     {name: "CLOSE_BRACE", text: "}"},
	TokenOpenParen:      {name: "OPEN_PAREN", text: "("},
	TokenCloseParen:     {name: "CLOSE_PAREN", text: ")"},
	TokenPlus:           {name: "PLUS", text: "+"},
	TokenMinus:          {name: "MINUS", text: "-"},
	TokenAsterisk:       {name: "ASTERISK", text: "*"},
	TokenSlash:          {name: "SLASH", text: "/"},
	TokenTypeInt:        {name: "TYPE_INT", text: "int"},
	TokenTypeString:     {name: "TYPE_STRING", text: "string"},
	TokenIf:             {name: "IF", text: "if"},
	TokenElse:           {name: "ELSE", text: "else"},
	TokenPrint:          {name: "PRINT", text: "print"},
	TokenStringLiteral:  {name: "STRING_LITERAL"},
	TokenIntegerLiteral: {name: "INTEGER_LITERAL"},
	TokenIdentifier:     {name: "IDENTIFIER"},
}

type operatorEntry struct {
	text []rune
	kind TokenKind
}

var keywordKinds, operatorKinds = classifyKinds()

// classifyKinds splits the fixed-text kinds into words, which are matched by
// exact comparison, and operators, which are matched by longest prefix. The
// operator list is ordered longest first.
func classifyKinds() (map[string]TokenKind, []operatorEntry) {
	keywords := map[string]TokenKind{}
	operators := []operatorEntry{}

	for i, info := range kindTable {
		kind := TokenKind(i)
		switch {
		case info.text == "" || kind == TokenUnknown:
			continue
		case isWord(info.text):
			keywords[info.text] = kind
		default:
			operators = append(operators, operatorEntry{text: []rune(info.text), kind: kind})
		}
	}

	sort.SliceStable(operators, func(i, j int) bool {
		return len(operators[i].text) > len(operators[j].text)
	})

	return keywords, operators
}

func isWord(s string) bool {
	for _, ch := range s {
		if !isIdentChar(ch) {
			return false
		}
	}
	return s != ""
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentChar(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}

// KindForText returns the keyword kind spelled exactly s, or TokenUnknown.
func KindForText(s string) TokenKind {
	kind, ok := keywordKinds[s]
	if !ok {
		return TokenUnknown
	}
	return kind
}

// Keywords returns the surface text of every keyword kind.
func Keywords() []string {
	words := make([]string, 0, len(keywordKinds))
	for word := range keywordKinds {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

func (k TokenKind) String() string {
	if int(k) >= 0 && int(k) < len(kindTable) {
		return kindTable[k].name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Text is the fixed surface text of k, or "" for value-carrying kinds.
func (k TokenKind) Text() string {
	if int(k) >= 0 && int(k) < len(kindTable) {
		return kindTable[k].text
	}
	return ""
}

type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line+1, l.Column+1)
}

// Before orders locations by line, then column.
func (l Location) Before(other Location) bool {
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column < other.Column
}

// Token is one lexical unit. Kind decides which payload is meaningful: Text
// for identifiers and string literals, Int for integer literals.
type Token struct {
	Kind     TokenKind
	Location Location
	Text     string
	Int      int32
}

func (t Token) DebugString() string {
	switch t.Kind {
	case TokenStringLiteral, TokenIdentifier:
		return fmt.Sprintf("%s: %s", t.Kind, t.Text)
	case TokenIntegerLiteral:
		return fmt.Sprintf("%s: %d", t.Kind, t.Int)
	default:
		return t.Kind.String()
	}
}

// describe renders a token the way it is quoted in diagnostics.
func (t Token) describe() string {
	switch t.Kind {
	case TokenStringLiteral:
		return fmt.Sprintf("string \"%s\"", t.Text)
	case TokenIdentifier:
		return fmt.Sprintf("identifier '%s'", t.Text)
	case TokenIntegerLiteral:
		return fmt.Sprintf("integer %d", t.Int)
	default:
		if text := t.Kind.Text(); text != "" {
			return fmt.Sprintf("'%s'", text)
		}
		return t.Kind.String()
	}
}
