package lib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	buf := newTokenBuffer([]Token{{Kind: TokenIdentifier, Text: "hello"}})

	tok, done := buf.Next()
	require.False(t, done)
	require.Equal(t, TokenIdentifier, tok.Kind)
	require.Equal(t, "hello", tok.Text)
}

func TestNextDoneMulti(t *testing.T) {
	buf := newTokenBuffer([]Token{{Kind: TokenIdentifier, Text: "hello"}})

	_, done := buf.Next()
	require.False(t, done)

	for i := 0; i < 3; i++ {
		_, done = buf.Next()
		require.True(t, done)
	}
}

func TestNextEmpty(t *testing.T) {
	buf := newTokenBuffer(nil)
	_, done := buf.Next()
	require.True(t, done)
}

func TestPeek(t *testing.T) {
	buf := newTokenBuffer([]Token{
		{Kind: TokenIdentifier, Text: "hello"},
		{Kind: TokenInferAssign},
	})

	tok, done := buf.Peek()
	require.False(t, done)
	require.Equal(t, "hello", tok.Text)

	tok, done = buf.Peek()
	require.False(t, done)
	require.Equal(t, "hello", tok.Text)

	tok, done = buf.Next()
	require.False(t, done)
	require.Equal(t, "hello", tok.Text)

	tok, done = buf.Next()
	require.False(t, done)
	require.Equal(t, TokenInferAssign, tok.Kind)

	_, done = buf.Peek()
	require.True(t, done)
}
