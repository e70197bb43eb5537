package lexergen

import (
	"sort"

	"github.com/shadowCow/lalrgen/automata"
	"github.com/shadowCow/lalrgen/diag"
	"github.com/shadowCow/lalrgen/grammar"
)

// Combined is every lexable terminal's NFA merged behind one synthetic
// start state, plus the map from each fragment's accept state back to
// the terminal it belongs to.
type Combined struct {
	NFA            *automata.NFA
	TerminalOfAccept map[int]grammar.ID // nfa accept state id -> terminal symbol id
}

// Combine compiles and merges every `Lexem`-marked terminal of g:
// a fresh start state gets an epsilon edge to each fragment's start,
// and every fragment keeps its own accept state so multiple terminals
// can match at once before the DFA state's AcceptID tie-break picks a
// winner.
//
// Fragments are merged in ascending terminal-id order, which is also
// declaration order once rewrite's reordering step runs: since
// automata.Build's AcceptID is literally the lowest accepting NFA
// state id among a DFA state's members, and merging appends states in
// call order, earliest-declared-terminal-wins-ties falls out of
// automata's existing priority rule instead of needing a second one
// here.
func Combine(g *grammar.Grammar, codePointMax rune, sink *diag.Sink) *Combined {
	combined := automata.NewNFA()
	combined.States = combined.States[:0]
	superStart := combined.AddState()
	combined.Start = superStart

	terminalOfAccept := make(map[int]grammar.ID)

	var terminals []*grammar.Symbol
	for _, s := range g.Symbols {
		if s.IsTerminal() && s.Lexem && s.Pattern != nil {
			terminals = append(terminals, s)
		}
	}
	sort.Slice(terminals, func(i, j int) bool { return terminals[i].ID < terminals[j].ID })

	for _, sym := range terminals {
		frag := CompilePattern(sym, codePointMax, sink)
		start, accept := mergeInto(combined, frag)
		combined.AddEpsilon(superStart, start)
		terminalOfAccept[accept] = sym.ID
		sym.AcceptID = accept
	}

	// combined has no designated overall accept state: acceptance is
	// entirely determined by terminalOfAccept membership, via the
	// accept predicate callers build with AcceptOf/AcceptRestrictedTo.
	return &Combined{NFA: combined, TerminalOfAccept: terminalOfAccept}
}

// mergeInto renumbers frag's states by dst's current state count and
// appends them through the public AddState/AddEdge/AddEpsilon
// surface, returning frag's relocated start and accept ids.
func mergeInto(dst *automata.NFA, frag *automata.NFA) (start, accept int) {
	offset := len(dst.States)
	for range frag.States {
		dst.AddState()
	}
	for id := 0; id < len(frag.States); id++ {
		fs := frag.State(id)
		for _, e := range fs.Edges {
			dst.AddEdge(id+offset, e.Class, e.To+offset)
		}
		for _, eps := range fs.Epsilon {
			dst.AddEpsilon(id+offset, eps+offset)
		}
	}
	return frag.Start + offset, frag.Accept + offset
}

// AcceptAny reports whether nfaState is any terminal's accept state,
// used to build the single-lexer-mode DFA covering every terminal.
func (c *Combined) AcceptAny(nfaState int) bool {
	_, ok := c.TerminalOfAccept[nfaState]
	return ok
}

// AcceptRestrictedTo reports whether nfaState accepts one of the
// terminals in viable, used to build the scannerless-mode per-state
// DFA restricted to a LALR state's viable terminal set.
func (c *Combined) AcceptRestrictedTo(viable map[grammar.ID]bool) func(int) bool {
	return func(nfaState int) bool {
		term, ok := c.TerminalOfAccept[nfaState]
		return ok && viable[term]
	}
}
