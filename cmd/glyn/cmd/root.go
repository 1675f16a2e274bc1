package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thegreatercurve/glyn-sub000/internal/config"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "glyn",
	Short: "glyn is a small ECMAScript engine",
	Long: `glyn is a Go implementation of a small ECMAScript (JavaScript) engine:
a lexer, a single-pass parser/bytecode compiler, and a stack-based VM
built directly over the ECMA-262 value/object/environment substrate
(property descriptors, environment records, realms, execution
contexts, completion records).`,
	Version: Version,
	// No subcommand/argument: drop into the interactive REPL (docs/cli.md).
	RunE: func(_ *cobra.Command, _ []string) error {
		return runREPL(os.Stdin, os.Stdout)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	defaultVerbose := false
	if cwd, err := os.Getwd(); err == nil {
		if cfg, err := config.Load(cwd); err == nil {
			defaultVerbose = cfg.Verbose
		}
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", defaultVerbose, "verbose output (default from .glyn.yaml if present)")
}
