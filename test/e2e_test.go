package test

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/graeme-hill/laic-go/lib"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) Fixture {
	fixture, err := LoadFixture(filepath.Join("fixtures", name))
	require.NoError(t, err)
	require.NotEmpty(t, fixture.Sources)
	return fixture
}

func requireCompiles(t *testing.T, name string) (Fixture, string) {
	fixture := loadFixture(t, name)
	res, err := fixture.Compile(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, res.Code)
	return fixture, res.Code
}

func requireRuns(t *testing.T, name string) {
	fixture, code := requireCompiles(t, name)

	cc, err := exec.LookPath("cc")
	if err != nil {
		t.Skip("no C compiler on PATH")
	}
	out, err := RunC(context.Background(), cc, t.TempDir(), code)
	require.NoError(t, err)
	require.Equal(t, fixture.ExpectedOutput, out)
}

func requireErrors(t *testing.T, name string) {
	fixture := loadFixture(t, name)
	res, err := fixture.Compile(context.Background())
	require.True(t, errors.Is(err, lib.ErrCompilationFailed))
	require.Empty(t, res.Code)

	actual := []string{}
	for _, d := range res.Errors.Diagnostics() {
		actual = append(actual, ErrorSummary(d))
	}
	require.Equal(t, fixture.ExpectedErrors, actual)
}

func TestHello(t *testing.T) {
	requireRuns(t, "hello")
}

func TestScopes(t *testing.T) {
	_, code := requireCompiles(t, "scopes")
	require.Contains(t, code, "/* fixtures/scopes/a.lai */")
	require.Contains(t, code, "/* fixtures/scopes/b.lai */")
	requireRuns(t, "scopes")
}

func TestNames(t *testing.T) {
	_, code := requireCompiles(t, "names")
	require.Contains(t, code, "int lai_v_x_2 = (lai_v_x + 1);")
	require.Contains(t, code, "lai_rt_concat(lai_v_concat, \"at\")")
	requireRuns(t, "names")
}

func TestTypeErrors(t *testing.T) {
	requireErrors(t, "typeerrors")
}

func TestLexicalErrors(t *testing.T) {
	requireErrors(t, "lexerrors")
}
