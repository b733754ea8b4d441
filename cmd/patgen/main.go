// Command patgen generates and inspects digital test patterns.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/cwbudde/algo-patgen/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		cli.PrintError(os.Stderr, err, !color.NoColor)
		os.Exit(cli.GetExitCode(err))
	}
}
