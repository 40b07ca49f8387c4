package lib

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorLogConcurrent(t *testing.T) {
	log := NewErrorLog()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			log.ReportError(Diagnostic{File: fmt.Sprintf("%d.lai", i), Kind: SyntaxError})
		}(i)
	}
	wg.Wait()

	require.Equal(t, 50, log.Count())
	require.Len(t, log.Diagnostics(), 50)
}

func TestErrorLogDiagnosticsIsCopy(t *testing.T) {
	log := NewErrorLog()
	log.ReportError(Diagnostic{Message: "first"})

	diags := log.Diagnostics()
	diags[0].Message = "changed"
	require.Equal(t, "first", log.Diagnostics()[0].Message)
}

func TestDiagnosticError(t *testing.T) {
	d := Diagnostic{
		File:     "a.lai",
		Location: Location{Line: 0, Column: 2},
		Kind:     SemanticTypeError,
		Message:  "Undeclared variable 'x'",
	}
	require.Equal(t, "a.lai:1:3: type error: Undeclared variable 'x'", d.Error())
}

func TestGateErrorUnwraps(t *testing.T) {
	var err error = &GateError{Stage: "tokenizing", Count: 2}
	require.True(t, errors.Is(err, ErrCompilationFailed))

	wrapped := fmt.Errorf("build: %w", err)
	var gate *GateError
	require.True(t, errors.As(wrapped, &gate))
	require.Equal(t, 2, gate.Count)
	require.Equal(t, "compilation failed: tokenizing with 2 errors", err.Error())
}

func TestErrorKindString(t *testing.T) {
	require.Equal(t, "lexical error", LexicalError.String())
	require.Equal(t, "syntax error", SyntaxError.String())
	require.Equal(t, "type error", SemanticTypeError.String())
	require.Equal(t, "ErrorKind(9)", ErrorKind(9).String())
}
