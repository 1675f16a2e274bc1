// Command glyn is the ECMAScript engine's CLI entrypoint, mirroring
// the teacher's cmd/dwscript layout (a thin main delegating to a cobra
// command tree in cmd/glyn/cmd).
package main

import (
	"fmt"
	"os"

	"github.com/thegreatercurve/glyn-sub000/cmd/glyn/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
