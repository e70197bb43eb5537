package automata

import "github.com/shadowCow/lalrgen/ccl"

// DFAState is one state of a deterministic automaton: Edges carry
// pairwise-disjoint classes, so at most one edge matches any given
// rune.
type DFAState struct {
	ID    int
	Edges []Edge

	// AcceptID is the minimum NFA accept-state id among this DFA
	// state's members, or -1 if none of them accept. The minimum is
	// the tie-breaking priority rule when several patterns could
	// match at once.
	AcceptID int

	// NFAStates is the canonical (sorted, deduplicated) subset of NFA
	// state ids this DFA state represents, used both to dedup DFA
	// states during construction and, by lexergen, to resolve which
	// token(s)/pattern(s) this state accepts.
	NFAStates []int
}

// Accepting reports whether any NFA state folded into this DFA state
// was an accept state of the source NFA.
func (s *DFAState) Accepting() bool {
	return s.AcceptID >= 0
}

// Match returns the id of the state reached from s on r, or -1 if no
// edge covers r (a dead transition).
func (s *DFAState) Match(r rune) int {
	for _, e := range s.Edges {
		if e.Class.Contains(r) {
			return e.To
		}
	}
	return -1
}

// DFA is the deterministic automaton produced by subset construction
// and, optionally, minimization.
type DFA struct {
	Start  int
	States []*DFAState
}

// Step runs the DFA from state id over r, returning the next state id
// or -1 on a dead transition.
func (d *DFA) Step(id int, r rune) int {
	return d.States[id].Match(r)
}

// alphabetOf returns the disjoint partition of every CCL labeling any
// edge in the DFA, the generalized "alphabet" minimization refines
// blocks against.
func (d *DFA) alphabetOf() []ccl.CCL {
	var classes []ccl.CCL
	for _, s := range d.States {
		for _, e := range s.Edges {
			classes = append(classes, e.Class)
		}
	}
	return ccl.Partition(classes)
}
