package automata

import (
	"fmt"
	"strings"
)

// CanonicalHash returns a structural fingerprint of d, independent of
// its states' numeric ids, by renumbering states in BFS visitation
// order from Start and hashing the resulting edge list. Two DFAs
// built from unrelated state numberings but identical shape hash
// identically; lexergen uses this to share one table index among
// parser states that end up needing the same viable-terminal-set
// automaton.
func CanonicalHash(d *DFA) string {
	if len(d.States) == 0 {
		return "empty"
	}

	canon := make(map[int]int)
	order := []int{d.Start}
	canon[d.Start] = 0
	queue := []int{d.Start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range d.States[cur].Edges {
			if _, ok := canon[e.To]; !ok {
				canon[e.To] = len(order)
				order = append(order, e.To)
				queue = append(queue, e.To)
			}
		}
	}

	var b strings.Builder
	for _, orig := range order {
		s := d.States[orig]
		fmt.Fprintf(&b, "[%d:%d]", canon[orig], s.AcceptID)
		for _, e := range s.Edges {
			fmt.Fprintf(&b, "(%v->%d)", e.Class.Ranges(), canon[e.To])
		}
	}
	return b.String()
}

// Equal reports whether a and b are structurally identical up to state
// renumbering: same edge classes, same targets and the same AcceptID
// per state. Two DFAs for the same language but with different state
// graphs (e.g. one not minimized) compare unequal.
func Equal(a, b *DFA) bool {
	return CanonicalHash(a) == CanonicalHash(b)
}
