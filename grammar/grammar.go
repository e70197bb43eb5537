package grammar

import "fmt"

// Item is one element of a Production's right-hand side.
type Item struct {
	Symbol  ID
	Binding string // "" if the RHS occurrence is unbound
}

// Production is the flat form produced by rewrite.Expand: an ordered
// RHS over symbol ids, with precedence either explicit or inherited,
// and an opaque semantic action.
type Production struct {
	ID   ID
	LHS  ID
	RHS  []Item
	Precedence int
	Assoc      Assoc
	EmitTag        string
	SemanticAction string

	// Source marks why this production exists: "" for user-declared,
	// otherwise the closure kind ("opt", "star", "plus") or "group"
	// (an inline parenthesized sub-expression) that generated it, used
	// only for diagnostics and export readability.
	Source string
}

// Length returns the number of RHS items.
func (p *Production) Length() int {
	return len(p.RHS)
}

// Grammar is the frozen, arena-indexed model consumed by firstfollow,
// lalr and lexergen. Symbols and Productions are dense arrays; all
// cross-references are indices into them.
type Grammar struct {
	Symbols     []*Symbol
	Productions []*Production

	byName map[string]ID

	Goal ID // augmented goal symbol S'
	EOF  ID
	Err  ID
}

// NewGrammar creates an empty, growable grammar arena.
func NewGrammar() *Grammar {
	return &Grammar{byName: make(map[string]ID)}
}

// Symbol returns the symbol for id.
func (g *Grammar) Symbol(id ID) *Symbol {
	return g.Symbols[id]
}

// Production returns the production for id.
func (g *Grammar) Production(id ID) *Production {
	return g.Productions[id]
}

// Lookup returns the id of a previously declared symbol by name.
func (g *Grammar) Lookup(name string) (ID, bool) {
	id, ok := g.byName[name]
	return id, ok
}

// ResetNameIndex clears the name->id index. Used by rewrite.reorder
// after every symbol has been assigned a new final id, so the index
// can be rebuilt from scratch with IndexName.
func (g *Grammar) ResetNameIndex() {
	g.byName = make(map[string]ID)
}

// IndexName records name -> id in the lookup table.
func (g *Grammar) IndexName(name string, id ID) {
	g.byName[name] = id
}

// AddSymbol appends a new symbol and returns its id. The caller must
// not have already declared a symbol with the same name.
func (g *Grammar) AddSymbol(s *Symbol) ID {
	id := ID(len(g.Symbols))
	s.ID = id
	g.Symbols = append(g.Symbols, s)
	g.byName[s.Name] = id
	return id
}

// AddProduction appends a new production and returns its id.
func (g *Grammar) AddProduction(p *Production) ID {
	id := ID(len(g.Productions))
	p.ID = id
	g.Productions = append(g.Productions, p)
	return id
}

// ProductionsOf returns, in declaration order, every production whose
// LHS is nt.
func (g *Grammar) ProductionsOf(nt ID) []*Production {
	var out []*Production
	for _, p := range g.Productions {
		if p.LHS == nt {
			out = append(out, p)
		}
	}
	return out
}

// NumTerminals and NumNonterminals assume rewrite's final reordering
// has already happened: nonterminals occupy a contiguous low range,
// terminals the remaining high range.
func (g *Grammar) NumTerminals() int {
	n := 0
	for _, s := range g.Symbols {
		if s.IsTerminal() {
			n++
		}
	}
	return n
}

func (g *Grammar) NumNonterminals() int {
	return len(g.Symbols) - g.NumTerminals()
}

// String renders a production as "LHS : a b c" for diagnostics.
func (p *Production) String(g *Grammar) string {
	s := g.Symbol(p.LHS).Name + " :"
	if len(p.RHS) == 0 {
		return s + " <empty>"
	}
	for _, it := range p.RHS {
		s += " " + g.Symbol(it.Symbol).Name
	}
	return s
}

// Validate checks the dense-id invariant: every symbol/production's
// ID must equal its array position.
func (g *Grammar) Validate() error {
	for i, s := range g.Symbols {
		if int(s.ID) != i {
			return fmt.Errorf("grammar: symbol %q has id %d at position %d", s.Name, s.ID, i)
		}
	}
	for i, p := range g.Productions {
		if int(p.ID) != i {
			return fmt.Errorf("grammar: production %d has id %d at position %d", i, p.ID, i)
		}
	}
	return nil
}
