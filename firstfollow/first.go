package firstfollow

import "github.com/shadowCow/lalrgen/grammar"

// Sets holds the FIRST sets and nullability for every symbol in a
// grammar, keyed by symbol id.
type Sets struct {
	First    []Bitset
	Nullable []bool
	n        int // universe size = len(g.Symbols), shared by every bitset
}

// FirstOf returns the FIRST set for symbol id.
func (s *Sets) FirstOf(id grammar.ID) Bitset {
	return s.First[id]
}

// IsNullable reports whether symbol id can derive the empty string.
func (s *Sets) IsNullable(id grammar.ID) bool {
	return s.Nullable[id]
}

// Compute runs the FIRST-set and nullability fixpoint over g.
func Compute(g *grammar.Grammar) *Sets {
	n := len(g.Symbols)
	s := &Sets{First: make([]Bitset, n), Nullable: make([]bool, n), n: n}
	for _, sym := range g.Symbols {
		s.First[sym.ID] = NewBitset(n)
		if sym.IsTerminal() {
			s.First[sym.ID].Set(int(sym.ID))
		}
	}

	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions {
			firstOfRHS, nullable := s.firstOfSequence(p.RHS)
			if s.First[p.LHS].Union(firstOfRHS) {
				changed = true
			}
			if nullable && !s.Nullable[p.LHS] {
				s.Nullable[p.LHS] = true
				changed = true
			}
		}
	}
	return s
}

// firstOfSequence computes FIRST(X1 X2 ... Xk) and whether the whole
// sequence is nullable, using the Sets' *current* (possibly partial,
// mid-fixpoint) First/Nullable values. That is safe because the
// fixpoint only ever grows these, so reading a stale value just
// delays convergence by one more pass, never produces a wrong final
// answer.
func (s *Sets) firstOfSequence(items []grammar.Item) (Bitset, bool) {
	result := NewBitset(s.n)
	for _, it := range items {
		result.Union(s.First[it.Symbol])
		if !s.Nullable[it.Symbol] {
			return result, false
		}
	}
	return result, true
}
