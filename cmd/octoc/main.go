package main

import (
	"os"

	"github.com/octo-lang/octoc/cmd/octoc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
