// Package cli wires the tokenizer, grammar, compiler, and evaluator
// into the single end-to-end pass the command-line driver needs: read a
// source file, compile it to one command tree, evaluate it, and print
// each statement's result next to the source line that produced it.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-marini/qucomp-go/internal/config"
	"github.com/m-marini/qucomp-go/internal/lexer"
	"github.com/m-marini/qucomp-go/internal/qc/compiler"
	"github.com/m-marini/qucomp-go/internal/qc/eval"
	"github.com/m-marini/qucomp-go/internal/qc/format"
	"github.com/m-marini/qucomp-go/internal/qc/syntax"
	"github.com/m-marini/qucomp-go/internal/qc/value"
)

// Run executes cfg against stdout/stderr, returning the process exit
// code. It never calls os.Exit itself so callers (and tests) can
// observe the code and the written output.
func Run(cfg config.Config, stdout, stderr io.Writer, logger *slog.Logger) int {
	src, err := readSource(cfg.File)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	rm, err := syntax.Build()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	l, err := lexer.New(strings.NewReader(src), logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	program, err := compiler.Compile(rm, l)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	p := eval.New()
	result, err := program.Eval(p)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	printResults(stdout, result)
	return 0
}

func readSource(path string) (string, error) {
	if path == "" {
		path = config.DefaultFile
	}
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading standard input: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(b), nil
}

// printResults writes each top-level statement result on its own
// `<lineno>:<source line>` / `:------^ value: <rendering>` block.
func printResults(w io.Writer, result value.Value) {
	lv, ok := result.(value.ListValue)
	if !ok {
		fmt.Fprintln(w, result.Source().Render("value: "+format.Value(result)))
		return
	}
	for _, v := range lv.Values {
		fmt.Fprintln(w, v.Source().Render("value: "+format.Value(v)))
	}
}
