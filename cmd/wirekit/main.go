// Command wirekit checks, compiles and converts wiring specifications.
package main

import (
	"os"
)

func main() {
	if err := newCLI(os.Stdout).Exec(); err != nil {
		os.Exit(1)
	}
}
