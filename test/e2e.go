package test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/graeme-hill/laic-go/lib"
)

// Fixture is a directory of .lai files plus the expected result of compiling
// them together: either the program's stdout or the list of diagnostics.
type Fixture struct {
	Dir            string
	Sources        []lib.SourceFile
	ExpectedOutput string
	ExpectedErrors []string
}

func LoadFixture(dir string) (Fixture, error) {
	sources, err := lib.ReadSourceDir(dir)
	if err != nil {
		return Fixture{}, err
	}
	fixture := Fixture{Dir: dir, Sources: sources}

	output, err := os.ReadFile(filepath.Join(dir, "expected_output.txt"))
	if err == nil {
		fixture.ExpectedOutput = string(output)
	} else if !os.IsNotExist(err) {
		return Fixture{}, err
	}

	errs, err := os.ReadFile(filepath.Join(dir, "expected_errors.txt"))
	if err == nil {
		fixture.ExpectedErrors = strings.Split(strings.TrimSpace(string(errs)), "\n")
	} else if !os.IsNotExist(err) {
		return Fixture{}, err
	}

	return fixture, nil
}

// ErrorSummary reduces a diagnostic to "file:line:col: kind" with the file's
// base name, which is what expected_errors.txt lists.
func ErrorSummary(d lib.Diagnostic) string {
	return fmt.Sprintf("%s:%s: %s", filepath.Base(d.File), d.Location, d.Kind)
}

func (f Fixture) Compile(ctx context.Context) (lib.Result, error) {
	return lib.Build(ctx, f.Sources, lib.Options{Workers: 2})
}

// RunC compiles code with the native compiler cc inside dir and returns what
// the program printed.
func RunC(ctx context.Context, cc string, dir string, code string) (string, error) {
	cFile := filepath.Join(dir, "main.c")
	exe := filepath.Join(dir, "main")
	if err := os.WriteFile(cFile, []byte(code), 0644); err != nil {
		return "", err
	}

	build := exec.CommandContext(ctx, cc, "-o", exe, cFile)
	if out, err := build.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%s: %w\n%s", cc, err, out)
	}

	var stdout strings.Builder
	run := exec.CommandContext(ctx, exe)
	run.Stdout = &stdout
	if err := run.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.String(), fmt.Errorf("program exited with %d", exitErr.ExitCode())
		}
		return "", err
	}
	return stdout.String(), nil
}
