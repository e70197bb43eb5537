package rewrite

import "github.com/shadowCow/lalrgen/grammar"

// reorder assigns stable final ids: goal first, other nonterminals
// next (in first-declaration order), then terminals with EOF last (a
// reserved slot easy for back ends to special case), and rewrites
// every production/symbol cross-reference to the new ids.
func reorder(g *grammar.Grammar) {
	old := g.Symbols
	n := len(old)
	newIndexOf := make([]grammar.ID, n)

	var order []grammar.ID
	order = append(order, g.Goal)
	for _, s := range old {
		if s.ID != g.Goal && !s.IsTerminal() {
			order = append(order, s.ID)
		}
	}
	for _, s := range old {
		if s.IsTerminal() && s.ID != g.EOF {
			order = append(order, s.ID)
		}
	}
	order = append(order, g.EOF)

	newSymbols := make([]*grammar.Symbol, n)
	for newID, oldID := range order {
		newIndexOf[oldID] = grammar.ID(newID)
		sym := old[oldID]
		sym.ID = grammar.ID(newID)
		newSymbols[newID] = sym
	}

	for _, p := range g.Productions {
		p.LHS = newIndexOf[p.LHS]
		for i, it := range p.RHS {
			p.RHS[i].Symbol = newIndexOf[it.Symbol]
		}
	}

	g.Symbols = newSymbols
	g.Goal = newIndexOf[g.Goal]
	g.EOF = newIndexOf[g.EOF]
	g.Err = newIndexOf[g.Err]

	rebuildByName(g)
}

// rebuildByName restores Grammar's name->id lookup table after
// reorder has shuffled every id.
func rebuildByName(g *grammar.Grammar) {
	g.ResetNameIndex()
	for _, s := range g.Symbols {
		g.IndexName(s.Name, s.ID)
	}
}
