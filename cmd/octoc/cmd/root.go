package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose   bool
	colorMode string
)

var rootCmd = &cobra.Command{
	Use:   "octoc",
	Short: "Octo compiler",
	Long: `octoc compiles the Octo programming language to C.

Octo is a small statically typed language with structs, unions, arrays,
pointers, and variadic extern functions. The compiler runs a classic
front end (lex, parse, semantic analysis) and emits a single C
translation unit for a downstream C compiler.`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "", "colorize diagnostics: auto, always, never")
}
