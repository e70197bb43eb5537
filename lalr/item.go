// Package lalr builds the LALR(1) characteristic automaton and
// parser tables: LR(0) kernels via closure/GOTO, lookahead computed
// by the DeRemer/Pennello channel-propagation method, then
// shift/reduce and reduce/reduce conflict resolution and
// default-production compression.
package lalr

import "github.com/shadowCow/lalrgen/grammar"

// Item is an LR(0) core: a production and a dot position within its
// RHS, with no lookahead attached.
type Item struct {
	Prod grammar.ID
	Dot  int
}

// AtEnd reports whether the dot has reached the end of the
// production's RHS (a reduce item).
func (it Item) AtEnd(g *grammar.Grammar) bool {
	return it.Dot >= len(g.Production(it.Prod).RHS)
}

// SymbolAtDot returns the symbol immediately after the dot, and
// whether one exists.
func (it Item) SymbolAtDot(g *grammar.Grammar) (grammar.ID, bool) {
	rhs := g.Production(it.Prod).RHS
	if it.Dot >= len(rhs) {
		return 0, false
	}
	return rhs[it.Dot].Symbol, true
}

// Advance returns the item with the dot moved one position right.
func (it Item) Advance() Item {
	return Item{Prod: it.Prod, Dot: it.Dot + 1}
}

// dummy is the sentinel "propagate, don't generate" lookahead used by
// the DeRemer/Pennello algorithm (conventionally written `#`); it is
// never a real grammar.ID since those are always >= 0.
const dummy grammar.ID = -1
