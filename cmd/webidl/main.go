// Package main provides the webidl CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/dennwc/webidl/v2/ast"
	"github.com/dennwc/webidl/v2/grammar"
	"github.com/dennwc/webidl/v2/internal/config"
	"github.com/dennwc/webidl/v2/internal/diag"
	"github.com/dennwc/webidl/v2/internal/watch"
	"github.com/dennwc/webidl/v2/parser"
)

const version = "2.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "parse":
		cmdParse(args)
	case "check":
		cmdCheck(args)
	case "watch":
		cmdWatch(args)
	case "grammar":
		cmdGrammar(args)
	case "repl":
		os.Exit(cmdRepl(args))
	case "version", "--version", "-v":
		fmt.Printf("webidl version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`webidl - WebIDL parser

Usage: webidl <command> [arguments]

Commands:
  parse     Print the syntax tree of WebIDL files
  check     Report syntax errors in WebIDL files
  watch     Re-check WebIDL files in a directory when they change
  grammar   Print the accepted grammar as EBNF
  repl      Parse WebIDL interactively
  version   Print version information
  help      Show this help message

Examples:
  webidl parse dom.webidl
  webidl parse -format json dom.webidl
  webidl check
  webidl watch ./idl
  webidl grammar -canonical

Settings are read from webidl.toml in the working directory.`)
}

// loadConfig loads webidl.toml from the working directory and builds the
// logger it configures.
func loadConfig() (*config.Config, *slog.Logger) {
	cfg, err := config.Load(".")
	if err != nil {
		fatal("%v", err)
	}
	level, err := cfg.LogLevel()
	if err != nil {
		fatal("%v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return cfg, logger
}

func cmdParse(args []string) {
	cfg, logger := loadConfig()

	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	format := fs.String("format", cfg.Parse.Format, "output format: sexp, json or go")
	fs.Parse(args)

	if !cfg.ValidFormat(*format) {
		fatal("unknown format %q", *format)
	}
	files, err := findFiles(cfg, fs.Args())
	if err != nil {
		fatal("%v", err)
	}
	if len(files) == 0 {
		fatal("no WebIDL files found")
	}
	for _, file := range files {
		f, err := parseFile(file, logger)
		if err != nil {
			fatal("%v", err)
		}
		if err := writeTree(os.Stdout, f, *format); err != nil {
			fatal("failed to write %s: %v", file, err)
		}
	}
}

func cmdCheck(args []string) {
	cfg, logger := loadConfig()

	files, err := findFiles(cfg, args)
	if err != nil {
		fatal("%v", err)
	}
	if len(files) == 0 {
		fatal("no WebIDL files found")
	}

	diags, err := checkFiles(files, logger)
	if err != nil {
		fatal("%v", err)
	}
	printDiagnostics(os.Stderr, diags)

	if diags.HasErrors() {
		os.Exit(1)
	}

	fmt.Println("All checks passed.")
}

func cmdWatch(args []string) {
	cfg, logger := loadConfig()

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	debounce, err := cfg.DebounceDuration()
	if err != nil {
		fatal("%v", err)
	}

	recheck := func(paths []string) error {
		diags, err := checkFiles(paths, logger)
		if err != nil {
			return err
		}
		printDiagnostics(os.Stderr, diags)
		if !diags.HasErrors() {
			fmt.Printf("%d file(s) OK\n", len(paths))
		}
		return nil
	}

	// Check everything once before waiting for changes.
	files, err := findFiles(cfg, []string{dir})
	if err != nil {
		fatal("%v", err)
	}
	if len(files) != 0 {
		if err := recheck(files); err != nil {
			fatal("%v", err)
		}
	}

	w := watch.New(dir, cfg.IsSource, debounce, recheck, logger)
	if err := w.Start(); err != nil {
		fatal("failed to watch %s: %v", dir, err)
	}
	defer w.Stop()

	fmt.Printf("Watching %s (Ctrl+C to stop)\n", dir)
	waitForInterrupt()
}

func waitForInterrupt() {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigc)
	<-sigc
	fmt.Println()
}

func cmdGrammar(args []string) {
	fs := flag.NewFlagSet("grammar", flag.ExitOnError)
	canonical := fs.Bool("canonical", false, "print productions sorted, without comments")
	fs.Parse(args)

	if !*canonical {
		fmt.Print(grammar.Source())
		return
	}
	g, err := grammar.Load()
	if err != nil {
		fatal("%v", err)
	}
	if err := grammar.Fprint(os.Stdout, g); err != nil {
		fatal("%v", err)
	}
}

// findFiles expands args into WebIDL files. Directories contribute the
// files directly inside them; with no args the working directory is used.
func findFiles(cfg *config.Config, args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", arg, err)
		}
		var found []string
		for _, entry := range entries {
			if !entry.IsDir() && cfg.IsSource(entry.Name()) {
				found = append(found, filepath.Join(arg, entry.Name()))
			}
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}

func parseFile(file string, logger *slog.Logger) (*ast.File, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return parser.ParseOptions(string(content), parser.Options{
		Logger: logger.With("file", file),
	}), nil
}

// checkFiles parses files and collects their diagnostics.
func checkFiles(files []string, logger *slog.Logger) (*diag.Diagnostics, error) {
	all := diag.New()
	for _, file := range files {
		f, err := parseFile(file, logger)
		if err != nil {
			return nil, err
		}
		all.Merge(diag.FromFile(file, f))
	}
	return all, nil
}

// writeTree writes n in the given output format.
func writeTree(w io.Writer, n ast.Node, format string) error {
	switch format {
	case "sexp":
		return ast.Fprint(w, n)
	case "json":
		data, err := ast.MarshalJSON(n)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case "go":
		if err := parser.Dump(w, n); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}

func printDiagnostics(w io.Writer, diags *diag.Diagnostics) {
	for _, d := range diags.All() {
		fmt.Fprintln(w, d.String())
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
