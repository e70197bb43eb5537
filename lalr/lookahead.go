package lalr

import (
	"github.com/shadowCow/lalrgen/firstfollow"
	"github.com/shadowCow/lalrgen/grammar"
)

// stateItem identifies one item within one state, the unit the
// DeRemer/Pennello propagation graph operates over.
type stateItem struct {
	State int
	It    Item
}

// edge is a propagation edge: lookaheads added to From must also be
// added to To.
type edge struct {
	From, To stateItem
}

// Lookaheads holds the final LALR(1) lookahead set of every kernel
// item, and of every closure-derived item whose dot is at the end (an
// empty production), keyed by (state, item). Closure items with a
// symbol after the dot get no entry of their own.
type Lookaheads struct {
	sets map[stateItem]map[int]bool // lookahead terminal ids, by grammar.ID underlying int
}

// Of returns the lookahead terminal ids for item it in state sid.
func (l *Lookaheads) Of(sid int, it Item) map[int]bool {
	return l.sets[stateItem{sid, it}]
}

// ComputeLookaheads runs the DeRemer/Pennello algorithm: for every
// kernel item of every state, compute its per-item LR(1) closure
// seeded with the dummy lookahead, use it to discover which
// (state,item) pairs spontaneously gain a concrete lookahead and
// which must merely propagate whatever lookahead the seed item itself
// eventually accumulates, then iterate the propagation graph to a
// fixpoint.
func ComputeLookaheads(a *Automaton, first *firstfollow.Sets) *Lookaheads {
	g := a.Grammar
	spontaneous := make(map[stateItem]map[int]bool)
	var edges []edge

	addSpontaneous := func(si stateItem, la int) {
		if spontaneous[si] == nil {
			spontaneous[si] = make(map[int]bool)
		}
		spontaneous[si][la] = true
	}

	for _, s := range a.States {
		for _, k := range s.Kernel {
			seed := map[Item]map[grammar.ID]bool{k: {dummy: true}}
			j := lr1Closure(seed, g, first)
			for it2, las := range j {
				var targetState int
				var targetItem Item
				if sym, ok := it2.SymbolAtDot(g); ok {
					targetState = s.Transitions[sym]
					targetItem = it2.Advance()
				} else {
					targetState = s.ID
					targetItem = it2
				}
				target := stateItem{targetState, targetItem}
				for la := range las {
					if la == dummy {
						edges = append(edges, edge{From: stateItem{s.ID, k}, To: target})
					} else {
						addSpontaneous(target, int(la))
					}
				}
			}
		}
	}

	sets := make(map[stateItem]map[int]bool)
	for si, las := range spontaneous {
		cp := make(map[int]bool, len(las))
		for la := range las {
			cp[la] = true
		}
		sets[si] = cp
	}

	changed := true
	for changed {
		changed = false
		for _, e := range edges {
			from := sets[e.From]
			if len(from) == 0 {
				continue
			}
			if sets[e.To] == nil {
				sets[e.To] = make(map[int]bool)
			}
			for la := range from {
				if !sets[e.To][la] {
					sets[e.To][la] = true
					changed = true
				}
			}
		}
	}

	return &Lookaheads{sets: sets}
}
