package lib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func requireOneTypeError(t *testing.T, diags []Diagnostic, line int, col int) {
	require.Len(t, diags, 1, "diagnostics: %v", diags)
	require.Equal(t, SemanticTypeError, diags[0].Kind)
	require.Equal(t, Location{Line: line, Column: col}, diags[0].Location)
}

func TestCheckMismatchReportedOnce(t *testing.T) {
	_, diags := assemble(t,
		`x := 1 - "a"`,
		"print(x)",
		"y := x + 1",
	)
	requireOneTypeError(t, diags, 0, 7)
	require.Contains(t, diags[0].Message, "int - string")
}

func TestCheckNestedMismatchReportedAtRoot(t *testing.T) {
	_, diags := assemble(t, `x := (1 + "a") * 2`)
	requireOneTypeError(t, diags, 0, 8)
}

func TestCheckStringOperators(t *testing.T) {
	_, diags := assemble(t, `x := "a" - "b"`)
	requireOneTypeError(t, diags, 0, 9)
	require.Contains(t, diags[0].Message, "-")

	requireAssembles(t, `x := "a" + "b" + "c"`)
}

func TestCheckUndeclaredOperands(t *testing.T) {
	_, diags := assemble(t, "x := a + b")
	require.Len(t, diags, 2)
	require.Equal(t, Location{Line: 0, Column: 5}, diags[0].Location)
	require.Equal(t, Location{Line: 0, Column: 9}, diags[1].Location)
	for _, d := range diags {
		require.Contains(t, d.Message, "Undeclared")
	}
}

func TestCheckDeclaredTypeMismatch(t *testing.T) {
	_, diags := assemble(t, `x : int = "a"`)
	requireOneTypeError(t, diags, 0, 10)
}

func TestCheckAssignmentMismatch(t *testing.T) {
	_, diags := assemble(t, "x : int", `x = "a"`)
	requireOneTypeError(t, diags, 1, 4)
}

func TestCheckAssignmentToUndeclared(t *testing.T) {
	_, diags := assemble(t, "y = 1")
	requireOneTypeError(t, diags, 0, 0)
	require.Contains(t, diags[0].Message, "'y'")
}

func TestCheckAssignmentToBrokenVariable(t *testing.T) {
	// x is already reported at its declaration.
	_, diags := assemble(t, `x := 1 + "a"`, "x = 2")
	requireOneTypeError(t, diags, 0, 7)
}

func TestCheckConditionMismatch(t *testing.T) {
	_, diags := assemble(t, `if (1 == "a") {`, "}")
	requireOneTypeError(t, diags, 0, 6)
}

func TestCheckConditionUndeclared(t *testing.T) {
	_, diags := assemble(t, "if (z == 1) {", "}")
	requireOneTypeError(t, diags, 0, 4)
}

func TestCheckInsideBranches(t *testing.T) {
	_, diags := assemble(t,
		"if (1 == 1) {",
		"} else {",
		`  print(2 * "x")`,
		"}",
	)
	requireOneTypeError(t, diags, 2, 10)
}

func TestCheckValidProgram(t *testing.T) {
	requireAssembles(t,
		"a : int",
		"b : string = \"b\"",
		"a = a * 2 / 1",
		"c := b + \"!\"",
		"if (c != b) {",
		"  print(c)",
		"}",
	)
}
