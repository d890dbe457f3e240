// Command typua is the CLI and language-server entry point for the
// static type analyzer (spec.md §6.2). Grounded on
// dingo/cmd/dingo/main.go's cobra wiring (root command +
// per-subcommand builder functions, a package-level version string,
// RunE returning errors instead of calling os.Exit directly; `check`
// still exits with status 1 itself when it reports an Error-severity
// diagnostic) — funxy
// itself predates cobra and hand-rolls flag parsing in
// cmd/funxy/main.go, so the sibling pack repo is the better fit here.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:          "typua",
		Short:        "Static type analyzer for annotated Lua",
		Version:      version,
		SilenceUsage: true,
	}

	root.AddCommand(checkCmd())
	root.AddCommand(lspCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
