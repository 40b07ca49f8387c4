package lib

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

type Options struct {
	// Workers above 1 tokenizes that many files at once.
	Workers int
	// Backend defaults to CBackend.
	Backend Backend
	// Logf receives stage progress messages. Nil means silent.
	Logf func(format string, args ...interface{})
}

func (o Options) logf(format string, args ...interface{}) {
	if o.Logf != nil {
		o.Logf(format, args...)
	}
}

func (o Options) backend() Backend {
	if o.Backend == nil {
		return CBackend{}
	}
	return o.Backend
}

// Result holds whatever each stage produced, even when a gate stopped the
// build.
type Result struct {
	Tokens [][]Token
	Files  []*File
	Code   string
	Errors *ErrorLog
}

// Build runs the whole pipeline. After tokenizing and again after assembly it
// checks the error count and stops with a *GateError if anything was
// reported, so the backend only ever sees valid trees.
func Build(ctx context.Context, sources []SourceFile, opts Options) (Result, error) {
	res := Result{Errors: NewErrorLog()}

	opts.logf("Tokenizing %d files...", len(sources))
	tokens, err := TokenizeAll(ctx, sources, opts.Workers, res.Errors)
	if err != nil {
		return res, err
	}
	res.Tokens = tokens
	if n := res.Errors.Count(); n > 0 {
		return res, &GateError{Stage: "tokenizing", Count: n}
	}

	opts.logf("Assembling AST...")
	res.Files = AssembleAll(sources, tokens, res.Errors)
	if n := res.Errors.Count(); n > 0 {
		return res, &GateError{Stage: "assembling", Count: n}
	}

	opts.logf("Generating code...")
	code, err := opts.backend().Compile(res.Files)
	if err != nil {
		return res, fmt.Errorf("code generation: %w", err)
	}
	res.Code = code
	return res, nil
}

// TokenizeAll tokenizes every source. Results and diagnostics are kept in
// input order whatever order the workers finish in.
func TokenizeAll(ctx context.Context, sources []SourceFile, workers int, reporter Reporter) ([][]Token, error) {
	tokens := make([][]Token, len(sources))
	diags := make([][]Diagnostic, len(sources))

	if workers <= 1 {
		for i, src := range sources {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			tokens[i], diags[i] = Tokenize(src.Name, src.Lines)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i, src := range sources {
			i, src := i, src
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				tokens[i], diags[i] = Tokenize(src.Name, src.Lines)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	for _, fileDiags := range diags {
		for _, d := range fileDiags {
			reporter.ReportError(d)
		}
	}
	return tokens, nil
}

// AssembleAll assembles and checks each file in order.
func AssembleAll(sources []SourceFile, tokens [][]Token, reporter Reporter) []*File {
	files := make([]*File, 0, len(sources))
	for i, src := range sources {
		file, diags := AssembleFile(src.Name, tokens[i])
		for _, d := range diags {
			reporter.ReportError(d)
		}
		files = append(files, file)
	}
	return files
}
