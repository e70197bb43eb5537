// Package cli provides the command-line interface adapter for
// lalrgen. This package handles flag parsing and delegates to the
// runner for execution, keeping argument handling separate from the
// pipeline it drives.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/shadowCow/lalrgen/lexergen"
	"github.com/shadowCow/lalrgen/runner"
)

// Config holds everything the CLI needs to parse flags and report
// results.
type Config struct {
	Args   []string // os.Args, program name included
	Stdout io.Writer
	Stderr io.Writer
}

// Run parses config.Args and executes the requested generation,
// returning the process exit code: 0 success, 1 user-facing grammar
// error, 2 internal invariant violation.
func Run(config Config) int {
	flags := pflag.NewFlagSet("lalrgen", pflag.ContinueOnError)
	flags.SetOutput(config.Stderr)

	outPath := flags.StringP("out", "o", "", "output file for the exported parser tables (default: stdout)")
	scannerless := flags.Bool("scannerless", false, "assemble a per-state lexer restricted to each state's viable terminal set, instead of one shared lexer")
	maxConflicts := flags.Int("max-conflicts", 0, "abort if unresolved conflicts exceed this count (0 = unbounded)")
	codePointMax := flags.Int64("code-point-max", 0, "maximum code point the generated lexer accepts (0 = Unicode max)")
	actionOpen := flags.String("action-open", "{{", "opening delimiter for inline semantic action blocks")
	actionClose := flags.String("action-close", "}}", "closing delimiter for inline semantic action blocks")
	debug := flags.BoolP("debug", "d", false, "print the grammar, automaton, and table summary before exporting")

	if err := flags.Parse(config.Args[1:]); err != nil {
		return runner.ExitUserError
	}

	args := flags.Args()
	if len(args) != 1 {
		fmt.Fprintf(config.Stderr, "usage: lalrgen [flags] <grammar-file>\n")
		flags.PrintDefaults()
		return runner.ExitUserError
	}

	mode := lexergen.ModeSingle
	if *scannerless {
		mode = lexergen.ModeScannerless
	}

	cfg := runner.Config{
		GrammarPath:  args[0],
		OutputPath:   *outPath,
		Stdout:       config.Stdout,
		Mode:         mode,
		CodePointMax: rune(*codePointMax),
		MaxConflicts: *maxConflicts,
		ActionOpen:   *actionOpen,
		ActionClose:  *actionClose,
		Debug:        *debug,
		DebugWriter:  config.Stderr,
	}

	code, diags, err := runner.Run(cfg)
	for _, d := range diags {
		fmt.Fprintln(config.Stderr, d.String())
	}
	if err != nil {
		fmt.Fprintln(config.Stderr, err)
	}
	return code
}
