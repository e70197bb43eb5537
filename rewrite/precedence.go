package rewrite

import "github.com/shadowCow/lalrgen/grammar"

// applyPrecedenceDeclarations assigns Precedence/Assoc to terminals
// named by the grammar's precedence declaration list, in source
// order; later lines bind tighter.
func applyPrecedenceDeclarations(g *grammar.Grammar, levels []grammar.PrecedenceLevel) {
	for level, decl := range levels {
		for _, name := range decl.Terminals {
			id, ok := g.Lookup(name)
			if !ok {
				continue
			}
			sym := g.Symbol(id)
			sym.Precedence = level + 1 // declared levels are numbered from 1
			sym.Assoc = decl.Assoc
		}
	}
}

// inheritPrecedence gives a production without explicit precedence
// the precedence of its rightmost precedence-carrying terminal.
func inheritPrecedence(g *grammar.Grammar) {
	for _, p := range g.Productions {
		if p.Precedence != grammar.NoPrecedence {
			continue
		}
		for i := len(p.RHS) - 1; i >= 0; i-- {
			sym := g.Symbol(p.RHS[i].Symbol)
			if sym.IsTerminal() && sym.Precedence != grammar.NoPrecedence {
				p.Precedence = sym.Precedence
				p.Assoc = sym.Assoc
				break
			}
		}
	}
}
