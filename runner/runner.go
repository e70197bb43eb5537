// Package runner provides a simple API to run the full lalrgen
// pipeline against a grammar-surface file: scan/parse, expand,
// integrity-check, build LALR(1) tables, assemble lexer DFAs, and
// export: a single Run function the CLI layer can call without
// knowing any of the phase internals.
package runner

import (
	"fmt"
	"io"
	"os"

	"github.com/shadowCow/lalrgen/ccl"
	"github.com/shadowCow/lalrgen/check"
	"github.com/shadowCow/lalrgen/diag"
	"github.com/shadowCow/lalrgen/export"
	"github.com/shadowCow/lalrgen/firstfollow"
	"github.com/shadowCow/lalrgen/grammar"
	"github.com/shadowCow/lalrgen/gramfile"
	"github.com/shadowCow/lalrgen/lalr"
	"github.com/shadowCow/lalrgen/lexergen"
	"github.com/shadowCow/lalrgen/rewrite"
)

// ExitUserError and ExitInternalError are the two non-zero exit
// codes of a generation run: a grammar the user must fix, versus an
// invariant this generator itself violated.
const (
	ExitOK            = 0
	ExitUserError     = 1
	ExitInternalError = 2
)

// Config is everything one generation run needs.
type Config struct {
	GrammarPath  string
	OutputPath   string    // "" writes to Stdout instead
	Stdout       io.Writer // used when OutputPath == ""; defaults to os.Stdout if nil
	Mode         lexergen.Mode
	CodePointMax rune // 0 means ccl.MaxCodePoint
	MaxConflicts int  // 0 = unbounded
	ActionOpen   string
	ActionClose  string
	Debug        bool
	DebugWriter  io.Writer
}

// Run executes one full generation and returns the process exit
// code, plus any diagnostics accumulated along the way (always
// non-nil once parsing succeeds, even on success; warnings still get
// printed).
func Run(cfg Config) (exitCode int, diags []diag.Diagnostic, err error) {
	defer func() {
		if r := recover(); r != nil {
			if iv, ok := r.(*diag.InvariantViolation); ok {
				exitCode = ExitInternalError
				err = iv
				return
			}
			panic(r) // not ours to handle
		}
	}()

	codePointMax := cfg.CodePointMax
	if codePointMax == 0 {
		codePointMax = ccl.MaxCodePoint
	}
	openDelim, closeDelim := cfg.ActionOpen, cfg.ActionClose
	if openDelim == "" {
		openDelim, closeDelim = "{{", "}}"
	}

	src, readErr := os.ReadFile(cfg.GrammarPath)
	if readErr != nil {
		return ExitUserError, nil, fmt.Errorf("runner: reading %q: %w", cfg.GrammarPath, readErr)
	}

	surface, parseErr := gramfile.Parse(string(src), openDelim, closeDelim)
	if parseErr != nil {
		return ExitUserError, nil, fmt.Errorf("runner: %w", parseErr)
	}
	if surface.CodePointMax != 0 {
		codePointMax = surface.CodePointMax
	}

	sink := diag.NewSink(cfg.MaxConflicts)
	g, expandErr := rewrite.Expand(surface, sink)
	if expandErr != nil {
		return ExitUserError, sink.Diagnostics(), fmt.Errorf("runner: %w", expandErr)
	}

	check.Run(g, codePointMax, sink)

	augProd := g.ProductionsOf(g.Goal)[0].ID
	automaton := lalr.BuildLR0(g, augProd)
	first := firstfollow.Compute(g)
	lookaheads := lalr.ComputeLookaheads(automaton, first)
	table := lalr.Build(automaton, lookaheads, sink)

	check.EnforceConflictThreshold(sink)

	if sink.HasErrors() {
		return ExitUserError, sink.Diagnostics(), fmt.Errorf("runner: grammar %q has %d error(s)", cfg.GrammarPath, countErrors(sink.Diagnostics()))
	}

	if cfg.Debug && cfg.DebugWriter != nil {
		printDebug(cfg.DebugWriter, g, automaton, table)
	}

	asm := lexergen.Assemble(g, table, cfg.Mode, codePointMax, sink)
	if sink.HasErrors() {
		return ExitUserError, sink.Diagnostics(), fmt.Errorf("runner: lexer assembly for %q reported errors", cfg.GrammarPath)
	}

	doc := export.Build(g, table, asm)

	if cfg.OutputPath != "" {
		f, createErr := os.Create(cfg.OutputPath)
		if createErr != nil {
			return ExitUserError, sink.Diagnostics(), fmt.Errorf("runner: creating %q: %w", cfg.OutputPath, createErr)
		}
		defer f.Close()
		if writeErr := doc.Write(f); writeErr != nil {
			return ExitUserError, sink.Diagnostics(), fmt.Errorf("runner: writing %q: %w", cfg.OutputPath, writeErr)
		}
		return ExitOK, sink.Diagnostics(), nil
	}

	out := cfg.Stdout
	if out == nil {
		out = os.Stdout
	}
	if writeErr := doc.Write(out); writeErr != nil {
		return ExitUserError, sink.Diagnostics(), fmt.Errorf("runner: writing output: %w", writeErr)
	}
	return ExitOK, sink.Diagnostics(), nil
}

func countErrors(diags []diag.Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}

// printDebug dumps the grammar, automaton and table summary for the
// --debug flag.
func printDebug(w io.Writer, g *grammar.Grammar, a *lalr.Automaton, t *lalr.Table) {
	fmt.Fprintf(w, "grammar: %d symbols, %d productions\n", len(g.Symbols), len(g.Productions))
	for _, p := range g.Productions {
		fmt.Fprintf(w, "  %s\n", p.String(g))
	}
	fmt.Fprintf(w, "automaton: %d states\n", len(a.States))
	for _, s := range a.States {
		fmt.Fprintf(w, "  state %d: %d actions, %d gotos, default=%d\n",
			s.ID, len(t.Action[s.ID]), len(t.Goto[s.ID]), t.Default[s.ID])
	}
}
