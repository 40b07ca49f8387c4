package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/graeme-hill/laic-go/lib"
)

const historyEnv = "LAIC_HISTORY_DSN"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := runCLI(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if err == nil {
		return
	}
	// Compile errors were already rendered.
	if !errors.Is(err, lib.ErrCompilationFailed) {
		fmt.Fprintln(os.Stderr, err)
	}
	stop()
	os.Exit(1)
}

type config struct {
	output     string
	dumpTokens bool
	dumpAST    bool
	workers    int
	cc         string
	historyDSN string
	verbose    bool
	files      []string
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	cfg := config{}
	fs := flag.NewFlagSet("laic", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr, fs) }
	fs.StringVar(&cfg.output, "o", "output.c", "path of the generated C file")
	fs.BoolVar(&cfg.dumpTokens, "tokens", false, "print the tokens of every file")
	fs.BoolVar(&cfg.dumpAST, "ast", false, "print the assembled tree of every file")
	fs.IntVar(&cfg.workers, "workers", 1, "number of files to tokenize in parallel")
	fs.StringVar(&cfg.cc, "cc", "", "C compiler to run on the generated file (e.g. gcc)")
	fs.StringVar(&cfg.historyDSN, "history", "", "PostgreSQL connection string for build history (default $"+historyEnv+")")
	fs.BoolVar(&cfg.verbose, "v", false, "log each compiler stage")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	cfg.files = fs.Args()
	if len(cfg.files) == 0 {
		printUsage(stderr, fs)
		return config{}, errors.New("laic: at least one source file is required")
	}
	if cfg.historyDSN == "" {
		cfg.historyDSN = os.Getenv(historyEnv)
	}
	return cfg, nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "Usage: laic [flags] <file.lai>...\n")
	fmt.Fprintln(w, "Flags:")
	fs.PrintDefaults()
}

func runCLI(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.verbose {
		logger = log.New(stderr, "laic: ", 0)
	}

	for _, f := range cfg.files {
		logger.Printf("Loading file: %s...", f)
	}
	sources, err := lib.ReadSourceFiles(cfg.files)
	if err != nil {
		return fmt.Errorf("load sources: %w", err)
	}

	startedAt := time.Now()
	res, buildErr := lib.Build(ctx, sources, lib.Options{
		Workers: cfg.workers,
		Logf:    logger.Printf,
	})
	duration := time.Since(startedAt)

	if cfg.dumpTokens && res.Tokens != nil {
		writeTokenDump(stdout, sources, res.Tokens)
	}
	if cfg.dumpAST && res.Files != nil {
		writeASTDump(stdout, res.Files)
	}

	if cfg.historyDSN != "" {
		rec := lib.NewBuildRecord(sources, res, startedAt, duration)
		if err := lib.RecordBuild(ctx, cfg.historyDSN, rec); err != nil {
			fmt.Fprintf(stderr, "warning: could not record build history: %v\n", err)
		}
	}

	if buildErr != nil {
		var gate *lib.GateError
		if errors.As(buildErr, &gate) {
			renderDiagnostics(stderr, sources, res.Errors.Diagnostics())
			renderFailure(stderr, gate.Count)
		}
		return buildErr
	}

	if err := os.WriteFile(cfg.output, []byte(res.Code), 0644); err != nil {
		return fmt.Errorf("write %s: %w", cfg.output, err)
	}
	fmt.Fprintf(stdout, "compiled %d file(s) -> %s\n", len(sources), cfg.output)

	if cfg.cc != "" {
		logger.Printf("Running %s...", cfg.cc)
		return runNativeCompiler(ctx, cfg.cc, cfg.output, stdout, stderr)
	}
	return nil
}

// executablePath is where the native compiler writes its binary.
func executablePath(cFile string) string {
	exe := cFile[:len(cFile)-len(filepath.Ext(cFile))]
	if exe == "" || exe == cFile {
		return cFile + ".out"
	}
	return exe
}
