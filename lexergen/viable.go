package lexergen

import (
	"github.com/shadowCow/lalrgen/automata"
	"github.com/shadowCow/lalrgen/diag"
	"github.com/shadowCow/lalrgen/grammar"
	"github.com/shadowCow/lalrgen/lalr"
)

// Mode selects the lexer-assembly strategy.
type Mode int

const (
	// ModeSingle builds one DFA covering every terminal, used by every
	// LALR state uniformly.
	ModeSingle Mode = iota
	// ModeScannerless builds, per LALR state, a DFA restricted to that
	// state's viable terminal set.
	ModeScannerless
)

// Assembly is the lexer half of the export model: the deduplicated
// DFA table plus the per-state selector into it.
type Assembly struct {
	DFAs      []*automata.DFA
	DFASelect []int // by LALR state id; -1 = no expected terminals

	// TerminalOfAccept maps an NFA accept state id (== a DFA state's
	// AcceptID) back to the terminal symbol id it belongs to, shared
	// across every DFA in DFAs since they were all built by
	// restricting the same combined NFA. Export needs this to label
	// each DFA's accept rows with a terminal id.
	TerminalOfAccept map[int]grammar.ID
}

// viableSet computes a conservative over-approximation of the shift
// frontier: every terminal that appears anywhere in the state's
// ACTION table, whether as a shift key or a reduce lookahead, since a
// reduce lookahead always either leads to a further reduce (whose own
// lookahead terminal is itself examined the same way by a different
// call) or a shift; the state never needs to scan a terminal that
// has no ACTION entry at all. Whitespace terminals are
// unconditionally added; on match they are discarded and the scan
// restarts.
func viableSet(g *grammar.Grammar, tbl *lalr.Table, stateID int) map[grammar.ID]bool {
	set := make(map[grammar.ID]bool)
	for term := range tbl.Action[stateID] {
		if term == g.EOF {
			continue // EOF is synthetic, never scanned from source text
		}
		set[term] = true
	}
	for _, sym := range g.Symbols {
		if sym.Whitespace {
			set[sym.ID] = true
		}
	}
	return set
}

// Assemble builds the lexer tables for every LALR state in tbl.
func Assemble(g *grammar.Grammar, tbl *lalr.Table, mode Mode, codePointMax rune, sink *diag.Sink) *Assembly {
	combined := Combine(g, codePointMax, sink)

	a := &Assembly{DFASelect: make([]int, len(tbl.Action)), TerminalOfAccept: combined.TerminalOfAccept}
	byHash := make(map[string]int)

	intern := func(dfa *automata.DFA) int {
		hash := automata.CanonicalHash(dfa)
		if id, ok := byHash[hash]; ok {
			return id
		}
		id := len(a.DFAs)
		byHash[hash] = id
		a.DFAs = append(a.DFAs, dfa)
		return id
	}

	if mode == ModeSingle {
		dfa := automata.Minimize(automata.Build(combined.NFA, combined.AcceptAny))
		id := intern(dfa)
		for sid := range tbl.Action {
			if len(viableSet(g, tbl, sid)) == 0 {
				a.DFASelect[sid] = -1
			} else {
				a.DFASelect[sid] = id
			}
		}
		return a
	}

	for sid := range tbl.Action {
		viable := viableSet(g, tbl, sid)
		if len(viable) == 0 {
			a.DFASelect[sid] = -1
			continue
		}
		dfa := automata.Minimize(automata.Build(combined.NFA, combined.AcceptRestrictedTo(viable)))
		a.DFASelect[sid] = intern(dfa)
	}
	return a
}
