package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thegreatercurve/glyn-sub000/internal/bytecode"
	"github.com/thegreatercurve/glyn-sub000/internal/operations"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Compile a script and print its disassembled bytecode",
	Long: `Parse a glyn program into bytecode and print a disassembly of the
resulting instructions, constant pool, and identifier pool; a
debugging aid for the parser/codegen stage.

Examples:
  glyn parse script.js
  glyn parse -e "1 + 2 * 3"`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "compile inline code instead of reading from file")
}

func parseScript(_ *cobra.Command, args []string) error {
	source, filename, err := resolveInput(parseEvalExpr, args)
	if err != nil {
		return err
	}

	program, errs := operations.ParseText(source)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("parsing %s failed with %d error(s)", filename, len(errs))
	}

	fmt.Print(bytecode.Disassemble(program))
	return nil
}
