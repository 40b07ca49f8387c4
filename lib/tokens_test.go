package lib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindForTextKeywords(t *testing.T) {
	expected := map[string]TokenKind{
		"int":    TokenTypeInt,
		"string": TokenTypeString,
		"if":     TokenIf,
		"else":   TokenElse,
		"print":  TokenPrint,
	}
	for text, kind := range expected {
		require.Equal(t, kind, KindForText(text), text)
	}
	require.Len(t, Keywords(), len(expected))
}

func TestKindForTextEveryKeywordRoundTrips(t *testing.T) {
	for _, word := range Keywords() {
		kind := KindForText(word)
		require.NotEqual(t, TokenUnknown, kind, word)
		require.Equal(t, word, kind.Text())
	}
}

func TestKindForTextUnknown(t *testing.T) {
	for _, text := range []string{"", "Int", "INT", "strin", "strings", " int", ":=", "==", "{", "#IDENTIFIER", "x"} {
		require.Equal(t, TokenUnknown, KindForText(text), "%q", text)
	}
}

func TestOperatorTableLongestFirst(t *testing.T) {
	require.NotEmpty(t, operatorKinds)
	for i := 1; i < len(operatorKinds); i++ {
		require.GreaterOrEqual(t, len(operatorKinds[i-1].text), len(operatorKinds[i].text))
	}
	for _, op := range operatorKinds {
		_, isKeyword := keywordKinds[string(op.text)]
		require.False(t, isKeyword, string(op.text))
	}
}

func TestValueKindsAreNotMatchable(t *testing.T) {
	for _, kind := range []TokenKind{TokenUnknown, TokenStringLiteral, TokenIntegerLiteral, TokenIdentifier} {
		require.Equal(t, "", kind.Text())
		for _, op := range operatorKinds {
			require.NotEqual(t, kind, op.kind)
		}
		for _, k := range keywordKinds {
			require.NotEqual(t, kind, k)
		}
	}
}

func TestTokenDebugString(t *testing.T) {
	require.Equal(t, "IDENTIFIER: x", Token{Kind: TokenIdentifier, Text: "x"}.DebugString())
	require.Equal(t, "INTEGER_LITERAL: 42", Token{Kind: TokenIntegerLiteral, Int: 42}.DebugString())
	require.Equal(t, "STRING_LITERAL: hi", Token{Kind: TokenStringLiteral, Text: "hi"}.DebugString())
	require.Equal(t, "INFER_ASSIGN", Token{Kind: TokenInferAssign}.DebugString())
	require.Equal(t, "TokenKind(99)", TokenKind(99).String())
}

func TestLocationBefore(t *testing.T) {
	require.True(t, Location{Line: 0, Column: 9}.Before(Location{Line: 1, Column: 0}))
	require.True(t, Location{Line: 1, Column: 2}.Before(Location{Line: 1, Column: 3}))
	require.False(t, Location{Line: 1, Column: 3}.Before(Location{Line: 1, Column: 3}))
	require.False(t, Location{Line: 2, Column: 0}.Before(Location{Line: 1, Column: 5}))
}
