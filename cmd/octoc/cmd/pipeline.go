package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/octo-lang/octoc/internal/ast"
	"github.com/octo-lang/octoc/internal/config"
	"github.com/octo-lang/octoc/internal/errors"
	"github.com/octo-lang/octoc/internal/lexer"
	"github.com/octo-lang/octoc/internal/parser"
	"github.com/octo-lang/octoc/internal/semantic"
	"github.com/octo-lang/octoc/internal/source"
)

// loadInput resolves the command's input: an inline expression via -e, or
// a file path argument.
func loadInput(args []string, inline string) (*source.Map, error) {
	if inline != "" {
		return source.FromBytes("<eval>", []byte(inline)), nil
	}
	if len(args) == 1 {
		return source.Load(args[0])
	}
	return nil, fmt.Errorf("either provide a file path or use -e flag for inline code")
}

// newReporter builds the diagnostic sink for src writing to stderr, with
// color resolved from config and the --color flag.
func newReporter(src *source.Map) *errors.Reporter {
	cfg := config.Load()
	if colorMode != "" {
		cfg.Color = colorMode
	}
	return errors.NewReporter(os.Stderr, src, cfg.ColorEnabled(color.NoColor))
}

// frontEnd runs lex, parse, and semantic analysis, stopping at the first
// fatal stage. The returned error is a summary; the diagnostics themselves
// were already rendered by the reporter.
func frontEnd(src *source.Map) (*ast.Compound, *semantic.Context, error) {
	rep := newReporter(src)

	tokens, ok := lexer.Tokenize(src, rep)
	if !ok {
		return nil, nil, fmt.Errorf("%s: %d lexical error(s)", src.Path, rep.Count())
	}
	program, ok := parser.Parse(tokens, rep)
	if !ok {
		return nil, nil, fmt.Errorf("%s: %d parse error(s)", src.Path, rep.Count())
	}
	ctx, ok := semantic.Analyze(program, rep)
	if !ok {
		return nil, nil, fmt.Errorf("%s: %d semantic error(s)", src.Path, rep.Count())
	}
	return program, ctx, nil
}
