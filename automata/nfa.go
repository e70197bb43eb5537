// Package automata implements the NFA and DFA machinery behind the
// generated lexers: Thompson-construction NFA fragments produced by
// regexfe, subset construction into a DFA, and minimization.
//
// Edges are labeled with CCL ranges rather than single runes, so a
// `.` or a large Unicode class doesn't require one transition per
// code point.
package automata

import "github.com/shadowCow/lalrgen/ccl"

// StateFlags records the anchor/greediness bits an accepting state
// carries forward from the regex source.
type StateFlags struct {
	AnchorStart bool
	AnchorEnd   bool
	NonGreedy   bool
}

// Edge is a single labeled transition out of an NFA state: any
// character in Class moves to To.
type Edge struct {
	Class ccl.CCL
	To    int
}

// NFAState is one state in an NFA fragment.
type NFAState struct {
	ID      int
	Edges   []Edge
	Epsilon []int
}

// NFA is a Thompson-construction fragment: exactly one start and one
// accept state, with Accept carrying no outgoing edges. Accept ids
// become meaningful only after fragments are combined into a full
// machine by lexergen.
type NFA struct {
	Start  int
	Accept int
	States []*NFAState

	// Flags, keyed by state id, records anchor/greediness carried by
	// the accept state of this fragment.
	Flags map[int]StateFlags
}

// NewNFA creates a two-state fragment (start, accept) with no edges.
func NewNFA() *NFA {
	nfa := &NFA{Flags: make(map[int]StateFlags)}
	nfa.Start = nfa.addState()
	nfa.Accept = nfa.addState()
	return nfa
}

func (n *NFA) addState() int {
	id := len(n.States)
	n.States = append(n.States, &NFAState{ID: id})
	return id
}

// AddState adds a bare state and returns its id.
func (n *NFA) AddState() int { return n.addState() }

// State returns the state for id.
func (n *NFA) State(id int) *NFAState { return n.States[id] }

// AddEdge adds a transition on class from -> to.
func (n *NFA) AddEdge(from int, class ccl.CCL, to int) {
	n.States[from].Edges = append(n.States[from].Edges, Edge{Class: class, To: to})
}

// AddEpsilon adds an epsilon transition from -> to.
func (n *NFA) AddEpsilon(from, to int) {
	n.States[from].Epsilon = append(n.States[from].Epsilon, to)
}

// FromCCL builds the one-edge fragment matching any character in c.
func FromCCL(c ccl.CCL) *NFA {
	n := NewNFA()
	n.AddEdge(n.Start, c, n.Accept)
	return n
}

// FromEpsilon builds the fragment matching the empty string.
func FromEpsilon() *NFA {
	n := NewNFA()
	n.AddEpsilon(n.Start, n.Accept)
	return n
}

// merge appends other's states (renumbered by the current state count)
// into n, returning other's new start/accept ids.
func (n *NFA) merge(other *NFA) (start, accept int) {
	offset := len(n.States)
	for _, s := range other.States {
		ns := &NFAState{ID: s.ID + offset}
		for _, e := range s.Edges {
			ns.Edges = append(ns.Edges, Edge{Class: e.Class, To: e.To + offset})
		}
		for _, eps := range s.Epsilon {
			ns.Epsilon = append(ns.Epsilon, eps+offset)
		}
		n.States = append(n.States, ns)
	}
	for id, fl := range other.Flags {
		n.Flags[id+offset] = fl
	}
	return other.Start + offset, other.Accept + offset
}

// Concat builds the sequence fragment a·b.
func Concat(frags ...*NFA) *NFA {
	if len(frags) == 0 {
		return FromEpsilon()
	}
	result := NewNFA()
	result.States = result.States[:0] // discard the placeholder start/accept; first fragment supplies them
	var prevAccept int
	for i, f := range frags {
		start, accept := result.merge(f)
		if i == 0 {
			result.Start = start
		} else {
			result.AddEpsilon(prevAccept, start)
		}
		prevAccept = accept
	}
	result.Accept = prevAccept
	return result
}

// Alternate builds the A|B|... fragment.
func Alternate(frags ...*NFA) *NFA {
	if len(frags) == 0 {
		return FromEpsilon()
	}
	if len(frags) == 1 {
		return frags[0]
	}
	result := NewNFA()
	for _, f := range frags {
		start, accept := result.merge(f)
		result.AddEpsilon(result.Start, start)
		result.AddEpsilon(accept, result.Accept)
	}
	return result
}

// Optional builds A?.
func Optional(a *NFA) *NFA {
	result := NewNFA()
	start, accept := result.merge(a)
	result.AddEpsilon(result.Start, start)
	result.AddEpsilon(accept, result.Accept)
	result.AddEpsilon(result.Start, result.Accept)
	return result
}

// Star builds A*.
func Star(a *NFA) *NFA {
	result := NewNFA()
	start, accept := result.merge(a)
	result.AddEpsilon(result.Start, start)
	result.AddEpsilon(accept, result.Accept)
	result.AddEpsilon(result.Start, result.Accept)
	result.AddEpsilon(accept, start)
	return result
}

// Plus builds A+: like Star, but without the bypass epsilon, so at
// least one iteration is required.
func Plus(a *NFA) *NFA {
	result := NewNFA()
	start, accept := result.merge(a)
	result.AddEpsilon(result.Start, start)
	result.AddEpsilon(accept, result.Accept)
	result.AddEpsilon(accept, start)
	return result
}

// Repeat builds a fragment matching [min, max] repetitions, where
// max == -1 means unbounded. Counted repetition desugars to
// Concat/Optional/Star rather than adding a new primitive.
func Repeat(build func() *NFA, min, max int) *NFA {
	var frags []*NFA
	for i := 0; i < min; i++ {
		frags = append(frags, build())
	}
	if max < 0 {
		frags = append(frags, Star(build()))
	} else {
		for i := min; i < max; i++ {
			frags = append(frags, Optional(build()))
		}
	}
	if len(frags) == 0 {
		return FromEpsilon()
	}
	return Concat(frags...)
}
