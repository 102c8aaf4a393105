package cmd

import (
	"fmt"

	"github.com/octo-lang/octoc/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	evalExpr   string
	showPos    bool
	showType   bool
	onlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an Octo file or expression",
	Long: `Tokenize (lex) an Octo program and print the resulting tokens.

This command is useful for debugging the lexer and understanding how
Octo source code is tokenized.

Examples:
  # Tokenize a source file
  octoc lex program.oc

  # Tokenize an inline expression
  octoc lex -e "let x: i32 = 42;"

  # Show token kinds and positions
  octoc lex --show-type --show-pos program.oc

  # Show only errors (illegal tokens)
  octoc lex --only-errors program.oc`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexSource,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token kind names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal tokens")
}

func lexSource(cmd *cobra.Command, args []string) error {
	src, err := loadInput(args, evalExpr)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Printf("Tokenizing: %s\n", src.Path)
		fmt.Printf("Input length: %d bytes\n", src.Len())
		fmt.Println("---")
	}

	rep := newReporter(src)
	tokens, ok := lexer.Tokenize(src, rep)

	tokenCount := 0
	errorCount := 0
	for _, tok := range tokens {
		if tok.Kind == lexer.EOF {
			break
		}
		if tok.Kind == lexer.ILLEGAL {
			errorCount++
		} else if onlyErrors {
			continue
		}
		tokenCount++
		printToken(tok)
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", tokenCount)
		if errorCount > 0 {
			fmt.Printf("Errors: %d\n", errorCount)
		}
	}

	if !ok {
		return fmt.Errorf("found %d illegal token(s)", errorCount)
	}
	return nil
}

func printToken(tok lexer.Token) {
	var output string
	if showType {
		output = fmt.Sprintf("[%-12s]", tok.Kind)
	}

	if tok.Kind == lexer.ILLEGAL {
		output += fmt.Sprintf(" ILLEGAL: %q", tok.Literal)
	} else {
		output += fmt.Sprintf(" %q", tok.Literal)
	}

	if showPos {
		output += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}

	fmt.Println(output)
}
