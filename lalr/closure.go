package lalr

import (
	"github.com/shadowCow/lalrgen/firstfollow"
	"github.com/shadowCow/lalrgen/grammar"
)

// closure0 computes the plain LR(0) closure of a kernel item set: for
// every item A -> α·Bβ in the set, add B -> ·γ for every production of
// B, to a fixpoint. Lookahead plays no part; the LR(0) closure alone
// defines the LALR states and their GOTO transitions.
func closure0(kernel []Item, g *grammar.Grammar) map[Item]bool {
	set := make(map[Item]bool, len(kernel)*2)
	queue := make([]Item, 0, len(kernel)*2)
	for _, it := range kernel {
		if !set[it] {
			set[it] = true
			queue = append(queue, it)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		sym, ok := cur.SymbolAtDot(g)
		if !ok || g.Symbol(sym).IsTerminal() {
			continue
		}
		for _, p := range g.ProductionsOf(sym) {
			ni := Item{Prod: p.ID, Dot: 0}
			if !set[ni] {
				set[ni] = true
				queue = append(queue, ni)
			}
		}
	}
	return set
}

// firstOfSeqPlus computes FIRST(items · trailing): the FIRST set of a
// symbol sequence followed by a single trailing lookahead (which may
// be the dummy sentinel), per the standard LR(1) closure rule.
func firstOfSeqPlus(items []grammar.Item, trailing grammar.ID, first *firstfollow.Sets) map[grammar.ID]bool {
	result := make(map[grammar.ID]bool)
	allNullable := true
	for _, it := range items {
		for _, m := range first.FirstOf(it.Symbol).Members() {
			result[grammar.ID(m)] = true
		}
		if !first.IsNullable(it.Symbol) {
			allNullable = false
			break
		}
	}
	if allNullable {
		result[trailing] = true
	}
	return result
}

// lr1Closure computes the LR(1) closure of a seed set of (item,
// lookahead) pairs, where lookahead may be the dummy sentinel. It is
// used once per kernel item (seeded with {item: dummy}) to discover
// the DeRemer/Pennello propagation/spontaneous-generation relation,
// not to build the automaton's states directly.
func lr1Closure(seed map[Item]map[grammar.ID]bool, g *grammar.Grammar, first *firstfollow.Sets) map[Item]map[grammar.ID]bool {
	type pair struct {
		it Item
		la grammar.ID
	}
	result := make(map[Item]map[grammar.ID]bool)
	seen := make(map[pair]bool)
	var queue []pair

	add := func(it Item, la grammar.ID) {
		if result[it] == nil {
			result[it] = make(map[grammar.ID]bool)
		}
		if result[it][la] {
			return
		}
		result[it][la] = true
		p := pair{it, la}
		if !seen[p] {
			seen[p] = true
			queue = append(queue, p)
		}
	}

	for it, las := range seed {
		for la := range las {
			add(it, la)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		rhs := g.Production(cur.it.Prod).RHS
		if cur.it.Dot >= len(rhs) {
			continue
		}
		sym := rhs[cur.it.Dot].Symbol
		if g.Symbol(sym).IsTerminal() {
			continue
		}
		rest := rhs[cur.it.Dot+1:]
		las := firstOfSeqPlus(rest, cur.la, first)
		for _, p2 := range g.ProductionsOf(sym) {
			newIt := Item{Prod: p2.ID, Dot: 0}
			for la := range las {
				add(newIt, la)
			}
		}
	}
	return result
}

// gotoItems advances every item in items whose symbol-at-dot is sym,
// used to compute the kernel of GOTO(state, sym).
func gotoItems(items map[Item]bool, sym grammar.ID, g *grammar.Grammar) []Item {
	var out []Item
	for it := range items {
		if s, ok := it.SymbolAtDot(g); ok && s == sym {
			out = append(out, it.Advance())
		}
	}
	return out
}
