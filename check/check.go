// Package check implements the grammar integrity checks: warnings
// that don't block generation (unused symbols, stupid productions,
// regexes that match the empty string), and errors that do (undefined
// symbol, empty language, and an unsolvable-conflict count past
// threshold).
package check

import (
	"github.com/shadowCow/lalrgen/automata"
	"github.com/shadowCow/lalrgen/ccl"
	"github.com/shadowCow/lalrgen/diag"
	"github.com/shadowCow/lalrgen/grammar"
	"github.com/shadowCow/lalrgen/regexfe"
)

// Run executes every integrity check over g, reporting diagnostics
// into sink. It does not stop early: every check runs regardless of
// what earlier ones found.
func Run(g *grammar.Grammar, codePointMax rune, sink *diag.Sink) {
	checkUnusedSymbols(g, sink)
	checkStupidProductions(g, sink)
	checkEmptyMatchingRegexes(g, codePointMax, sink)
	checkUndefinedSymbols(g, sink)
	checkEmptyLanguage(g, sink)
}

func checkUnusedSymbols(g *grammar.Grammar, sink *diag.Sink) {
	for _, s := range g.Symbols {
		if s.ID == g.Goal || s.ID == g.EOF || s.ID == g.Err {
			continue
		}
		if s.Used {
			continue
		}
		if s.IsTerminal() {
			sink.Warnf(diag.Grammar, "terminal %q is declared but never used in any production", s.Name)
		} else {
			sink.Warnf(diag.Grammar, "nonterminal %q is declared but never used in any production", s.Name)
		}
	}
}

// checkStupidProductions flags a production whose RHS is exactly its
// own LHS.
func checkStupidProductions(g *grammar.Grammar, sink *diag.Sink) {
	for _, p := range g.Productions {
		if len(p.RHS) == 1 && p.RHS[0].Symbol == p.LHS {
			sink.Warnf(diag.Grammar, "production %s is stupid: its RHS unifies with its own LHS", p.String(g))
		}
	}
}

// checkEmptyMatchingRegexes flags any regex-pattern terminal whose
// compiled NFA accepts the empty string: such a terminal could match
// zero characters and loop the scan forever.
func checkEmptyMatchingRegexes(g *grammar.Grammar, codePointMax rune, sink *diag.Sink) {
	for _, s := range g.Symbols {
		rs, ok := s.Pattern.(grammar.RegexSource)
		if !ok {
			continue
		}
		fold := ccl.FoldNone
		if rs.CaseInsensitive {
			fold = ccl.FoldASCII
		}
		nfa, err := regexfe.CompilePattern(rs.Pattern, diag.Position{}, fold, codePointMax, diag.NewSink(0))
		if err != nil {
			continue // already reported by the compiling phase itself
		}
		if automata.MatchesEmpty(nfa) {
			sink.Warnf(diag.Regex, "terminal %q's pattern /%s/ matches the empty string", s.Name, rs.Pattern)
		}
	}
}

// checkUndefinedSymbols reports every nonterminal that exists as a
// symbol but has no rule (Defined is false), such as one gramfile
// created on its first reference. rewrite.Expand only reports
// references to names that have no symbol at all.
func checkUndefinedSymbols(g *grammar.Grammar, sink *diag.Sink) {
	for _, s := range g.Symbols {
		if s.Kind == grammar.KindNonterminal && !s.Defined {
			sink.Errorf(diag.Grammar, "nonterminal %q is referenced but never defined", s.Name)
		}
	}
}

// checkEmptyLanguage errors when the goal, or any nonterminal reachable
// from it, cannot derive some terminal string. Nonterminals that are
// unreachable from the goal are not reported here.
func checkEmptyLanguage(g *grammar.Grammar, sink *diag.Sink) {
	productive := make(map[grammar.ID]bool)
	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions {
			if productive[p.LHS] {
				continue
			}
			ok := true
			for _, it := range p.RHS {
				sym := g.Symbol(it.Symbol)
				if sym.IsTerminal() {
					continue
				}
				if !productive[it.Symbol] {
					ok = false
					break
				}
			}
			if ok {
				productive[p.LHS] = true
				changed = true
			}
		}
	}

	reachable := map[grammar.ID]bool{g.Goal: true}
	queue := []grammar.ID{g.Goal}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, p := range g.ProductionsOf(cur) {
			for _, it := range p.RHS {
				if !g.Symbol(it.Symbol).IsTerminal() && !reachable[it.Symbol] {
					reachable[it.Symbol] = true
					queue = append(queue, it.Symbol)
				}
			}
		}
	}

	if !productive[g.Goal] {
		sink.Errorf(diag.Grammar, "empty language: goal symbol %q is unproductive (cannot derive any terminal string)", g.Symbol(g.Goal).Name)
	}
	for nt := range reachable {
		if nt == g.Goal {
			continue
		}
		if !productive[nt] {
			sink.Errorf(diag.Grammar, "empty language: nonterminal %q is reachable from the goal but unproductive", g.Symbol(nt).Name)
		}
	}
}

// EnforceConflictThreshold turns an over-threshold unresolved
// conflict count into a hard error, to be called after lalr.Build has
// reported every shift/reduce and reduce/reduce conflict into
// sink.
func EnforceConflictThreshold(sink *diag.Sink) {
	if sink.ExceedsThreshold() {
		sink.Errorf(diag.Conflict, "unresolved conflict count (%d) exceeds configured threshold", sink.ConflictErrorCount())
	}
}
