package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/graeme-hill/laic-go/lib"
)

// writeTokenDump prints one row per source line, indented by brace depth.
func writeTokenDump(w io.Writer, sources []lib.SourceFile, tokens [][]lib.Token) {
	fmt.Fprintln(w, "Tokens:")
	for i, src := range sources {
		fmt.Fprintf(w, "\n%s:\n", src.Name)

		byLine := map[int][]lib.Token{}
		for _, tok := range tokens[i] {
			byLine[tok.Location.Line] = append(byLine[tok.Location.Line], tok)
		}

		depth := 0
		for lineNum := range src.Lines {
			row := ""
			next := depth
			for _, tok := range byLine[lineNum] {
				row += "[" + tok.DebugString() + "]"
				switch tok.Kind {
				case lib.TokenOpenBrace:
					next++
				case lib.TokenCloseBrace:
					depth--
					next--
				}
			}
			fmt.Fprintf(w, "%d:%s%s\n", lineNum+1, indent(depth), row)
			depth = next
		}
	}
	fmt.Fprintln(w)
}

func writeASTDump(w io.Writer, files []*lib.File) {
	fmt.Fprintln(w, "AST:")
	for _, file := range files {
		fmt.Fprintf(w, "\n<File %s>\n", file.Name)
		for _, stmt := range file.Statements {
			writeStatement(w, stmt, 1)
		}
	}
	fmt.Fprintln(w)
}

func writeStatement(w io.Writer, stmt lib.Statement, depth int) {
	pad := indent(depth)
	switch s := stmt.(type) {
	case lib.VariableDeclaration:
		switch {
		case s.Inferred:
			fmt.Fprintf(w, "%s<Declare %s := %s> : %s\n", pad, s.Name, s.Value, s.Type)
		case s.Value != nil:
			fmt.Fprintf(w, "%s<Declare %s : %s = %s>\n", pad, s.Name, s.Type, s.Value)
		default:
			fmt.Fprintf(w, "%s<Declare %s : %s>\n", pad, s.Name, s.Type)
		}
	case lib.Assignment:
		fmt.Fprintf(w, "%s<Assign %s = %s> : %s\n", pad, s.Name, s.Value, s.Value.ReturnType())
	case lib.PrintStatement:
		fmt.Fprintf(w, "%s<Print %s> : %s\n", pad, s.Value, s.Value.ReturnType())
	case lib.IfStatement:
		fmt.Fprintf(w, "%s<If %s>\n", pad, s.Cond)
		writeStatement(w, s.Then, depth+1)
		if s.Else != nil {
			fmt.Fprintf(w, "%s<Else>\n", pad)
			writeStatement(w, s.Else, depth+1)
		}
	case lib.Block:
		fmt.Fprintf(w, "%s<Block>\n", pad)
		for _, inner := range s.Statements {
			writeStatement(w, inner, depth+1)
		}
	default:
		fmt.Fprintf(w, "%s<%T>\n", pad, stmt)
	}
}

func indent(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("\t", n)
}
