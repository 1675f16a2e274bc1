package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thegreatercurve/glyn-sub000/pkg/glyn"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a glyn script file or inline expression",
	Long: `Execute an ECMAScript program from a file or inline expression and print
its completion value.

Examples:
  # Run a script file
  glyn run script.js

  # Evaluate an inline expression
  glyn run -e "1 + 2"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	source, filename, err := resolveInput(evalExpr, args)
	if err != nil {
		return err
	}

	m, err := glyn.NewMachine()
	if err != nil {
		return err
	}

	value, err := m.Run(source, filename)
	if err != nil {
		return err
	}

	s, err := glyn.FormatValue(m.Agent(), value)
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}

// resolveInput implements the CLI's input precedence (docs/cli.md): -e/--eval
// wins over a positional file argument; neither supplied is an error.
func resolveInput(eval string, args []string) (source, filename string, err error) {
	if eval != "" {
		return eval, "<eval>", nil
	}
	if len(args) == 1 {
		filename = args[0]
		content, readErr := os.ReadFile(filename)
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", filename, readErr)
		}
		return string(content), filename, nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}
