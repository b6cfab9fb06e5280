// Command pikt compiles pixel-art programs into source text.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"nickandperla.net/pikt/pkg/pikt"
)

// Exit codes.
const (
	exitOK          = 0
	exitError       = 1
	exitDiagnostics = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pikt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		colors       = fs.String("colors", "", "Color scheme .properties file")
		createColors = fs.String("createcolors", "", "Write the default color scheme to <name>.properties and exit")
		dbPath       = fs.String("db", "", "SQLite cache path (empty disables caching)")
		watch        = fs.Bool("watch", false, "Recompile images when they change")
		jobs         = fs.Int("j", runtime.NumCPU(), "Number of images compiled in parallel")
		history      = fs.Int("history", 0, "Print the last N compilations of each image instead of compiling (requires -db)")
		verbose      = fs.Bool("v", false, "Enable debug logging")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: pikt [flags] <image>...\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	if *createColors != "" {
		path := *createColors + ".properties"
		if err := pikt.CreateScheme(path); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		fmt.Fprintf(stdout, "Color scheme written to %s\n", path)
		return exitOK
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return exitError
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}

	// Build options
	opts := []pikt.Option{
		pikt.WithLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))),
	}
	if *colors != "" {
		opts = append(opts, pikt.WithSchemeFile(*colors))
	}
	if *dbPath != "" {
		opts = append(opts, pikt.WithSQLiteStore(*dbPath))
	}

	compiler, err := pikt.New(opts...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer compiler.Close()

	p := &printer{out: stdout, err: stderr, color: isTerminal(stderr), multi: fs.NArg() > 1}

	if *history > 0 {
		return printHistory(compiler, p, fs.Args(), *history)
	}

	code := compileAll(ctx, compiler, p, fs.Args(), *jobs)
	if !*watch || code == exitError {
		return code
	}
	if err := watchFiles(ctx, compiler, p, fs.Args()); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

// compileAll compiles paths concurrently and prints the results in
// argument order.
func compileAll(ctx context.Context, compiler *pikt.Compiler, p *printer, paths []string, jobs int) int {
	results := make([]*pikt.Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range paths {
		g.Go(func() error {
			res, err := compiler.CompileFile(ctx, path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(p.err, "Error: %v\n", err)
		return exitError
	}

	code := exitOK
	for i, res := range results {
		if p.print(paths[i], res) {
			code = exitDiagnostics
		}
	}
	return code
}

func printHistory(compiler *pikt.Compiler, p *printer, paths []string, limit int) int {
	for _, path := range paths {
		entries, err := compiler.FileHistory(path, limit)
		if err != nil {
			fmt.Fprintf(p.err, "Error: %v\n", err)
			return exitError
		}
		for _, e := range entries {
			fmt.Fprintf(p.out, "%s\tv%d\t%s\t%s\n", path, e.Version, e.Ts, e.Key)
		}
	}
	return exitOK
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
