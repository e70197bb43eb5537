package automata

import "github.com/shadowCow/lalrgen/ccl"

// Minimize reduces a DFA to its minimal equivalent by Hopcroft-style
// partition refinement: states are grouped into blocks that
// are iteratively refined until every pair of states in a block is
// indistinguishable under the transition function and acceptance.
//
// The missing (dead) transition is totalized onto a synthetic sink
// state before refinement, otherwise two states that both "reject" a
// character via different means (an explicit dead edge vs. simply
// lacking one) could be merged incorrectly; the sink is dropped again
// from the result.
func Minimize(d *DFA) *DFA {
	alphabet := d.alphabetOf()
	n := len(d.States)
	deadID := n // synthetic sink, appended only for the refinement pass

	target := func(state int, rep rune) int {
		if state == deadID {
			return deadID
		}
		for _, e := range d.States[state].Edges {
			if e.Class.Contains(rep) {
				return e.To
			}
		}
		return deadID
	}

	// Initial partition: one group per distinct accept id, plus a
	// group for non-accepting/dead states: states accepting
	// *different* patterns must never merge even if their future
	// behavior looks identical.
	groupIDOf := make(map[int]int)
	nextGroupID := func(acceptID int) int {
		if g, ok := groupIDOf[acceptID]; ok {
			return g
		}
		g := len(groupIDOf)
		groupIDOf[acceptID] = g
		return g
	}
	_ = nextGroupID(-1) // ensure the non-accepting/dead group exists, even if unused
	groupOf := make([]int, n+1)
	for s := 0; s < n; s++ {
		groupOf[s] = nextGroupID(d.States[s].AcceptID)
	}
	groupOf[deadID] = groupIDOf[-1]

	for {
		type sig struct {
			group int
			trans string
		}
		sigOf := make([]sig, n+1)
		for s := 0; s <= n; s++ {
			trans := make([]byte, 0, len(alphabet)*2)
			for _, block := range alphabet {
				rep := block.Ranges()[0].Lo
				t := target(s, rep)
				trans = append(trans, encodeInt(groupOf[t])...)
			}
			sigOf[s] = sig{group: groupOf[s], trans: string(trans)}
		}

		seen := make(map[sig]int)
		next := make([]int, n+1)
		nextID := 0
		for s := 0; s <= n; s++ {
			id, ok := seen[sigOf[s]]
			if !ok {
				id = nextID
				nextID++
				seen[sigOf[s]] = id
			}
			next[s] = id
		}

		changed := false
		if nextID != maxInt(groupOf)+1 {
			changed = true
		} else {
			for s := 0; s <= n; s++ {
				if next[s] != groupOf[s] {
					changed = true
					break
				}
			}
		}
		groupOf = next
		if !changed {
			break
		}
	}

	numGroups := maxInt(groupOf) + 1
	deadGroup := groupOf[deadID]

	// Build output states, one per surviving group, skipping the dead
	// group and remapping group ids to a dense [0, numGroups) range
	// that excludes it.
	remap := make([]int, numGroups)
	out := 0
	for g := 0; g < numGroups; g++ {
		if g == deadGroup {
			remap[g] = -1
			continue
		}
		remap[g] = out
		out++
	}

	min := &DFA{Start: remap[groupOf[d.Start]]}
	min.States = make([]*DFAState, out)
	representative := make([]int, out) // one original state id per surviving group
	for s := 0; s < n; s++ {
		g := remap[groupOf[s]]
		if g == -1 {
			continue
		}
		if min.States[g] == nil {
			min.States[g] = &DFAState{ID: g, AcceptID: d.States[s].AcceptID, NFAStates: d.States[s].NFAStates}
			representative[g] = s
		}
	}

	for g := 0; g < out; g++ {
		s := representative[g]
		seenBlock := make(map[int]ccl.CCL)
		order := []int{}
		for _, block := range alphabet {
			rep := block.Ranges()[0].Lo
			t := target(s, rep)
			if t == deadID {
				continue
			}
			toGroup := remap[groupOf[t]]
			if toGroup == -1 {
				continue
			}
			if existing, ok := seenBlock[toGroup]; ok {
				seenBlock[toGroup] = existing.Union(block)
			} else {
				seenBlock[toGroup] = block
				order = append(order, toGroup)
			}
		}
		for _, toGroup := range order {
			min.States[g].Edges = append(min.States[g].Edges, Edge{Class: seenBlock[toGroup], To: toGroup})
		}
	}

	return min
}

func encodeInt(v int) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func maxInt(xs []int) int {
	m := 0
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}
