package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/octo-lang/octoc/internal/config"
	"github.com/octo-lang/octoc/internal/emit"
	"github.com/octo-lang/octoc/internal/source"
	"github.com/spf13/cobra"
)

var outputFile string

var buildCmd = &cobra.Command{
	Use:   "build [files or globs...]",
	Short: "Compile Octo programs to C",
	Long: `Compile one or more Octo programs to C translation units.

Each input produces one .c file next to it (or at -o for a single
input). Arguments may be doublestar globs:

  octoc build program.oc
  octoc build -o out.c program.oc
  octoc build 'src/**/*.oc'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (single input only)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	paths, err := expandInputs(args)
	if err != nil {
		return err
	}
	if outputFile == "" {
		outputFile = config.Load().Out
	}
	if outputFile != "" && len(paths) > 1 {
		return fmt.Errorf("-o is only valid with a single input, got %d", len(paths))
	}

	for _, path := range paths {
		if err := buildOne(path); err != nil {
			return err
		}
	}
	return nil
}

// expandInputs resolves each argument as a doublestar glob when it
// contains meta characters, and as a literal path otherwise.
func expandInputs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return paths, nil
}

func buildOne(path string) error {
	src, err := source.Load(path)
	if err != nil {
		return err
	}
	program, _, err := frontEnd(src)
	if err != nil {
		return err
	}

	out := outputFile
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".c"
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer f.Close()

	if err := emit.Emit(program, f); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	if verbose {
		fmt.Printf("%s -> %s\n", path, out)
	}
	return nil
}
