package main

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

func runNativeCompiler(ctx context.Context, compiler string, cFile string, stdout io.Writer, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, compiler, "-o", executablePath(cFile), cFile)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", compiler, cFile, err)
	}
	return nil
}
