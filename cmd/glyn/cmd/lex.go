package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thegreatercurve/glyn-sub000/internal/lexer"
	"github.com/thegreatercurve/glyn-sub000/internal/token"
)

var lexEvalExpr string

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a script file or expression",
	Long: `Tokenize a glyn program and print the resulting token stream; a
debugging aid for the lexer, not part of the language surface.

Examples:
  glyn lex script.js
  glyn lex -e "let x = 1"`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
}

func lexScript(_ *cobra.Command, args []string) error {
	source, _, err := resolveInput(lexEvalExpr, args)
	if err != nil {
		return err
	}

	l := lexer.New(source)
	for {
		tok := l.Next()
		fmt.Printf("[%3d] %q @%d:%d\n", tok.Type, tok.Literal, tok.Line, tok.Column)
		if tok.Type == token.EOF {
			break
		}
	}
	return nil
}
