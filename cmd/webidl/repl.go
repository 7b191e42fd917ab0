package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/dennwc/webidl/v2/ast"
	"github.com/dennwc/webidl/v2/internal/diag"
	"github.com/dennwc/webidl/v2/parser"
)

const (
	historyFile = ".webidl_history"
	promptMain  = "webidl> "
	promptCont  = "   ...> "
	replSource  = "<repl>"
)

const replHelp = `Enter WebIDL definitions; input continues until it parses.
Commands:
  :type <type>      parse a type
  :attrs <[...]>    parse an extended attribute list
  :format <name>    switch output to sexp, json or go
  :help             show this message
  :quit             exit`

func cmdRepl(_ []string) (ret int) {
	cfg, logger := loadConfig()
	format := cfg.Parse.Format

	fmt.Printf("webidl %s. Type :help for commands.\n", version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		src, ok := readDefinitions(ln)
		if !ok {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(src)
		if line == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(line, ":") {
			cmd, arg, _ := strings.Cut(line, " ")
			arg = strings.TrimSpace(arg)
			switch strings.ToLower(cmd) {
			case ":quit", ":q":
				return 0
			case ":help":
				fmt.Println(replHelp)
			case ":format":
				if !cfg.ValidFormat(arg) {
					fmt.Fprintf(os.Stderr, "unknown format %q\n", arg)
					continue
				}
				format = arg
			case ":type":
				t, errs := parser.ParseType(arg)
				printErrorNodes(os.Stderr, errs)
				if t != nil {
					printTree(t, format)
				}
			case ":attrs":
				list, errs := parser.ParseExtendedAttributeList(arg)
				printErrorNodes(os.Stderr, errs)
				if list != nil {
					printTree(list, format)
				}
			default:
				fmt.Println("unknown command. Type :help for commands.")
			}
			continue
		}

		f := parser.ParseOptions(src, parser.Options{Logger: logger})
		printDiagnostics(os.Stderr, diag.FromFile(replSource, f))
		printTree(f, format)
	}
	return 0
}

// prompter reads one line of input; *liner.State implements it.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// readDefinitions reads lines until they form input that does not stop
// short at end of file. It returns false when input ends or cannot be read.
func readDefinitions(ln prompter) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(promptMain)
		} else {
			line, err = ln.Prompt(promptCont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl+C drops the pending input.
			b.Reset()
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if !incomplete(src, parser.Parse(src)) {
			return src, true
		}
	}
}

// incomplete reports whether f ran out of input: a structural error sits
// at the end of src.
func incomplete(src string, f *ast.File) bool {
	if strings.TrimSpace(src) == "" {
		return false
	}
	for _, e := range ast.Errors(f) {
		if e.ErrKind == ast.StructuralError && e.Start == len(src) {
			return true
		}
	}
	return false
}

func printTree(n ast.Node, format string) {
	if err := writeTree(os.Stdout, n, format); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func printErrorNodes(w io.Writer, errs []*ast.ErrorNode) {
	for _, e := range errs {
		fmt.Fprintf(w, "%d:%d: %s\n", e.Start, e.End, e.Message)
	}
}
