package automata

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shadowCow/lalrgen/ccl"
)

// Build converts an NFA into a DFA by subset construction. At each
// subset, outgoing edge classes are disjointly partitioned
// (ccl.Partition) so every resulting DFA edge is a single unambiguous
// range block. accept reports whether an NFA state id is one of the
// machine's accept states (a caller-supplied predicate because accept
// states are meaningful only once multiple Thompson fragments have
// been combined; see lexergen). Each resulting DFA state's AcceptID
// is the minimum accepting NFA state id among its members, which is
// what makes earlier-declared terminals win priority ties.
func Build(nfa *NFA, accept func(nfaState int) bool) *DFA {
	startClosure := epsilonClosure(nfa, []int{nfa.Start})
	dfa := &DFA{}

	type pending struct {
		set []int
		key string
	}
	seen := make(map[string]int) // canonical subset key -> dfa state id
	var queue []pending

	intern := func(set []int) int {
		key := setKey(set)
		if id, ok := seen[key]; ok {
			return id
		}
		id := len(dfa.States)
		seen[key] = id
		dfa.States = append(dfa.States, &DFAState{ID: id, NFAStates: set, AcceptID: minAccept(set, accept)})
		queue = append(queue, pending{set: set, key: key})
		return id
	}

	dfa.Start = intern(startClosure)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		id := seen[cur.key]

		var classes []ccl.CCL
		for _, nid := range cur.set {
			for _, e := range nfa.States[nid].Edges {
				classes = append(classes, e.Class)
			}
		}
		blocks := ccl.Partition(classes)

		for _, block := range blocks {
			rep := block.Ranges()[0].Lo
			var targets []int
			for _, nid := range cur.set {
				for _, e := range nfa.States[nid].Edges {
					if e.Class.Contains(rep) {
						targets = append(targets, e.To)
					}
				}
			}
			closure := epsilonClosure(nfa, targets)
			if len(closure) == 0 {
				continue
			}
			toID := intern(closure)
			dfa.States[id].Edges = append(dfa.States[id].Edges, Edge{Class: block, To: toID})
		}
	}

	return dfa
}

// MatchesEmpty reports whether nfa's own accept state is reachable
// from its start purely by epsilon transitions, i.e. whether the
// pattern it encodes can match the empty string. check uses this to
// warn about patterns that would wedge a scanner.
func MatchesEmpty(nfa *NFA) bool {
	for _, s := range epsilonClosure(nfa, []int{nfa.Start}) {
		if s == nfa.Accept {
			return true
		}
	}
	return false
}

func minAccept(set []int, accept func(int) bool) int {
	best := -1
	for _, id := range set {
		if accept(id) && (best == -1 || id < best) {
			best = id
		}
	}
	return best
}

// epsilonClosure returns the canonical (sorted, deduplicated) set of
// states reachable from states by zero or more epsilon transitions.
func epsilonClosure(nfa *NFA, states []int) []int {
	seen := make(map[int]bool, len(states))
	var stack []int
	for _, s := range states {
		if !seen[s] {
			seen[s] = true
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range nfa.States[cur].Epsilon {
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	out := make([]int, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

func setKey(set []int) string {
	parts := make([]string, len(set))
	for i, s := range set {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}
