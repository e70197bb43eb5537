// Command lalrgen compiles a grammar-surface file (package gramfile)
// into a frozen, language-neutral parser-table export, writing it as
// XML to stdout or a file.
//
// main stays a thin os.Exit wrapper; every actual argument-handling
// decision lives in the cli package.
package main

import (
	"os"

	"github.com/shadowCow/lalrgen/cli"
)

func main() {
	os.Exit(cli.Run(cli.Config{
		Args:   os.Args,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}))
}
