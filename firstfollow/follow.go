package firstfollow

import "github.com/shadowCow/lalrgen/grammar"

// Follow holds the FOLLOW sets for every nonterminal, keyed by
// symbol id.
type Follow struct {
	sets []Bitset
	n    int
}

// FollowOf returns the FOLLOW set for nonterminal id.
func (f *Follow) FollowOf(id grammar.ID) Bitset {
	return f.sets[id]
}

// ComputeFollow runs the FOLLOW-set fixpoint: FOLLOW(goal) is seeded
// with EOF and extended across productions until stable.
func ComputeFollow(g *grammar.Grammar, first *Sets) *Follow {
	n := len(g.Symbols)
	f := &Follow{sets: make([]Bitset, n), n: n}
	for _, sym := range g.Symbols {
		f.sets[sym.ID] = NewBitset(n)
	}
	f.sets[g.Goal].Set(int(g.EOF))

	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions {
			for i, it := range p.RHS {
				if g.Symbol(it.Symbol).IsTerminal() {
					continue
				}
				rest := p.RHS[i+1:]
				firstOfRest, nullableRest := first.firstOfSequence(rest)
				if f.sets[it.Symbol].Union(firstOfRest) {
					changed = true
				}
				if nullableRest && f.sets[it.Symbol].Union(f.sets[p.LHS]) {
					changed = true
				}
			}
		}
	}
	return f
}
