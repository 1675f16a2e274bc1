package cmd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/thegreatercurve/glyn-sub000/pkg/glyn"
)

// runREPL implements the bare-invocation surface (docs/cli.md): print a
// banner, then read-eval-print one line at a time against a single
// shared Machine (so bindings persist across lines), printing the
// result or error and continuing — unlike `glyn run`, a script error
// here does not end the session. No history/line-editing library is
// used (none of the example repos this project was grounded on
// pulls one in); bufio.Scanner's single-line reads are enough for
// this debug-grade REPL.
func runREPL(in io.Reader, out io.Writer) error {
	m, err := glyn.NewMachine()
	if err != nil {
		return err
	}
	glyn.SetOutput(out)

	fmt.Fprintln(out, "glyn — a small ECMAScript engine. Ctrl-D to exit.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		value, err := m.Run(line, "<repl>")
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		s, err := glyn.FormatValue(m.Agent(), value)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		fmt.Fprintln(out, s)
	}
}
