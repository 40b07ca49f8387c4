package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/graeme-hill/laic-go/lib"
)

var (
	errorColor = lipgloss.Color("#EF4444")
	caretColor = lipgloss.Color("#F59E0B")
	mutedColor = lipgloss.Color("#6B7280")

	headerStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	caretStyle = lipgloss.NewStyle().
			Foreground(caretColor).
			Bold(true)

	kindStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

func renderDiagnostics(w io.Writer, sources []lib.SourceFile, diags []lib.Diagnostic) {
	byName := map[string]lib.SourceFile{}
	for _, src := range sources {
		byName[src.Name] = src
	}
	for _, d := range diags {
		src, ok := byName[d.File]
		if !ok {
			fmt.Fprintf(w, "Error in unloaded file: %s(line=%d, char=%d):\n%s\n\n",
				d.File, d.Location.Line+1, d.Location.Column, d.Message)
			continue
		}
		renderDiagnostic(w, src, d)
	}
}

// renderDiagnostic prints the offending line with a caret under the column.
// Tabs are shown as single spaces so the caret lines up.
func renderDiagnostic(w io.Writer, src lib.SourceFile, d lib.Diagnostic) {
	line := strings.ReplaceAll(src.Line(d.Location.Line), "\t", " ")

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Error in file '%s(%d)':", d.File, d.Location.Line+1)))
	fmt.Fprintf(w, "\t%s\n", line)
	fmt.Fprintf(w, "\t%s%s\n", strings.Repeat(" ", d.Location.Column), caretStyle.Render("^"))
	fmt.Fprintf(w, "%s %s\n\n", kindStyle.Render(d.Kind.String()+":"), d.Message)
}

func renderFailure(w io.Writer, count int) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Compilation failed with %d errors.", count)))
}
