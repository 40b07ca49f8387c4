package lib

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type spyBackend struct {
	calls int
	files []*File
}

func (s *spyBackend) Compile(files []*File) (string, error) {
	s.calls++
	s.files = files
	return "spy output", nil
}

type failingBackend struct{}

func (failingBackend) Compile(files []*File) (string, error) {
	return "", errors.New("boom")
}

func sources(files ...SourceFile) []SourceFile {
	return files
}

func src(name string, lines ...string) SourceFile {
	return SourceFile{Name: name, Lines: lines}
}

func TestBuildStopsAtAssemblyGate(t *testing.T) {
	spy := &spyBackend{}
	res, err := Build(context.Background(), sources(
		src("a.lai", "x := 1"),
		src("b.lai", `y := "s"`),
		src("c.lai", `z := 1 - "a"`, "print(z)"),
	), Options{Backend: spy})

	require.Error(t, err)
	require.True(t, errors.Is(err, ErrCompilationFailed))

	var gate *GateError
	require.True(t, errors.As(err, &gate))
	require.Equal(t, "assembling", gate.Stage)
	require.Equal(t, 1, gate.Count)

	require.Equal(t, 0, spy.calls)
	require.Equal(t, 1, res.Errors.Count())
	diags := res.Errors.Diagnostics()
	require.Equal(t, "c.lai", diags[0].File)
	require.Equal(t, SemanticTypeError, diags[0].Kind)

	// Every file still assembles so tools can inspect the trees.
	require.Len(t, res.Files, 3)
	require.Empty(t, res.Code)
}

func TestBuildStopsAtTokenizeGate(t *testing.T) {
	spy := &spyBackend{}
	res, err := Build(context.Background(), sources(
		src("a.lai", `x := "abc`),
		src("b.lai", `y := 1 - "a"`),
	), Options{Backend: spy})

	var gate *GateError
	require.True(t, errors.As(err, &gate))
	require.Equal(t, "tokenizing", gate.Stage)
	require.Equal(t, 1, res.Errors.Count())
	require.Equal(t, LexicalError, res.Errors.Diagnostics()[0].Kind)

	// Assembly never ran, so the type error in b.lai is not reported.
	require.Nil(t, res.Files)
	require.Len(t, res.Tokens, 2)
	require.Equal(t, 0, spy.calls)
}

func TestBuildSuccess(t *testing.T) {
	spy := &spyBackend{}
	res, err := Build(context.Background(), sources(
		src("a.lai", "x := 1"),
		src("b.lai", "print(2)"),
	), Options{Backend: spy})

	require.NoError(t, err)
	require.Equal(t, 1, spy.calls)
	require.Len(t, spy.files, 2)
	require.Equal(t, "spy output", res.Code)
	require.Equal(t, 0, res.Errors.Count())
}

func TestBuildDefaultsToC(t *testing.T) {
	res, err := Build(context.Background(), sources(src("a.lai", "x := 1")), Options{})
	require.NoError(t, err)
	require.Contains(t, res.Code, "int lai_v_x = 1;")
}

func TestBuildBackendError(t *testing.T) {
	_, err := Build(context.Background(), sources(src("a.lai", "x := 1")), Options{Backend: failingBackend{}})
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrCompilationFailed))
	require.Contains(t, err.Error(), "code generation: boom")
}

func TestBuildLogsStages(t *testing.T) {
	messages := []string{}
	_, err := Build(context.Background(), sources(src("a.lai", "x := 1")), Options{
		Backend: &spyBackend{},
		Logf: func(format string, args ...interface{}) {
			messages = append(messages, fmt.Sprintf(format, args...))
		},
	})
	require.NoError(t, err)
	require.Equal(t, []string{
		"Tokenizing 1 files...",
		"Assembling AST...",
		"Generating code...",
	}, messages)
}

func TestTokenizeAllParallelMatchesSequential(t *testing.T) {
	files := []SourceFile{}
	for i := 0; i < 20; i++ {
		lines := []string{fmt.Sprintf("x%d := %d", i, i)}
		if i%3 == 0 {
			lines = append(lines, "y := @")
		}
		files = append(files, src(fmt.Sprintf("f%02d.lai", i), lines...))
	}

	seqLog := NewErrorLog()
	seqTokens, err := TokenizeAll(context.Background(), files, 1, seqLog)
	require.NoError(t, err)

	parLog := NewErrorLog()
	parTokens, err := TokenizeAll(context.Background(), files, 4, parLog)
	require.NoError(t, err)

	require.Equal(t, seqTokens, parTokens)
	require.Equal(t, seqLog.Diagnostics(), parLog.Diagnostics())
	require.Equal(t, 7, parLog.Count())

	// Diagnostics come out in file order.
	diags := parLog.Diagnostics()
	for i := 1; i < len(diags); i++ {
		require.Less(t, diags[i-1].File, diags[i].File)
	}
}

func TestTokenizeAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := sources(src("a.lai", "x := 1"), src("b.lai", "y := 2"))
	for _, workers := range []int{1, 4} {
		_, err := TokenizeAll(ctx, files, workers, NewErrorLog())
		require.True(t, errors.Is(err, context.Canceled), "workers=%d", workers)
	}
}
