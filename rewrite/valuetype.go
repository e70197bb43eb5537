package rewrite

import "github.com/shadowCow/lalrgen/grammar"

// inheritValueTypes gives a nonterminal with no explicit value type
// the unique value type of all its productions' results, if that
// unique type exists. A production's
// "result" type is the value type of the single symbol it reduces to
// when its RHS is exactly one symbol (the common `A : B | C ;` case);
// productions with any other shape don't constrain the inherited type.
func inheritValueTypes(g *grammar.Grammar) {
	for _, s := range g.Symbols {
		if s.IsTerminal() || s.ValueType != "" {
			continue
		}
		candidate := ""
		unique := true
		any := false
		for _, p := range g.ProductionsOf(s.ID) {
			if len(p.RHS) != 1 {
				continue
			}
			vt := g.Symbol(p.RHS[0].Symbol).ValueType
			if vt == "" {
				continue
			}
			any = true
			if candidate == "" {
				candidate = vt
			} else if candidate != vt {
				unique = false
			}
		}
		if any && unique {
			s.ValueType = candidate
		}
	}
}
