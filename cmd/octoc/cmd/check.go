package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Run the full front end without emitting C",
	Long: `Lex, parse, and semantically analyze an Octo program, reporting
every diagnostic, without writing any output file.

Examples:
  octoc check program.oc
  octoc check -e "let x: i32 = 5;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "check inline code instead of reading from file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	src, err := loadInput(args, evalExpr)
	if err != nil {
		return err
	}
	if _, _, err := frontEnd(src); err != nil {
		return err
	}
	if verbose {
		fmt.Printf("%s: ok\n", src.Path)
	}
	return nil
}
