// Package rewrite implements the grammar rewriter: it consumes the
// surface-level, ADT-based grammar.SourceGrammar and
// produces a flat, arena-indexed grammar.Grammar, performing, in
// strict order: augmentation, virtual-closure expansion, terminal
// unification, precedence inheritance, value-type inheritance (emit
// tags are not inherited), and the final symbol reordering.
package rewrite

import (
	"fmt"

	"github.com/shadowCow/lalrgen/diag"
	"github.com/shadowCow/lalrgen/grammar"
)

// Expand runs the full rewrite pipeline over src and returns the
// flattened grammar. Diagnostics collected along the way (e.g. a
// grammar error for an undeclared symbol referenced by a rule) are
// appended to sink; Expand keeps going as long as it safely can.
func Expand(src *grammar.SourceGrammar, sink *diag.Sink) (*grammar.Grammar, error) {
	r := &rewriter{
		src:           src,
		g:             grammar.NewGrammar(),
		sink:          sink,
		closureCache:  make(map[closureKey]grammar.ID),
		groupCache:    make(map[string]grammar.ID),
	}
	return r.run()
}

type rewriter struct {
	src  *grammar.SourceGrammar
	g    *grammar.Grammar
	sink *diag.Sink

	closureCache map[closureKey]grammar.ID
	groupCache   map[string]grammar.ID
	groupCounter int
}

func (r *rewriter) run() (*grammar.Grammar, error) {
	if err := r.declareSymbols(); err != nil {
		return nil, err
	}

	goalID, ok := r.g.Lookup(r.src.GoalSymbol)
	if !ok {
		return nil, fmt.Errorf("rewrite: goal symbol %q is not declared", r.src.GoalSymbol)
	}

	eofID := r.ensureSpecialTerminal("EOF", grammar.KindEOF)
	errID := r.ensureSpecialTerminal("ERROR", grammar.KindError)

	// Step 1: augmented goal S' -> S EOF.
	augName := r.src.GoalSymbol + "'"
	augID := r.g.AddSymbol(&grammar.Symbol{Name: augName, Kind: grammar.KindNonterminal, Defined: true, Used: true})
	r.g.AddProduction(&grammar.Production{
		LHS:        augID,
		RHS:        []grammar.Item{{Symbol: goalID}, {Symbol: eofID}},
		Precedence: grammar.NoPrecedence,
	})
	r.markUsed(goalID)
	r.markUsed(eofID)

	// Step 2: expand every declared rule, including virtual closures.
	for _, rule := range r.src.Rules {
		if err := r.expandRule(rule); err != nil {
			r.sink.Errorf(diag.Grammar, "%v", err)
		}
	}

	r.g.Goal = augID
	r.g.EOF = eofID
	r.g.Err = errID

	// Step 3: terminal unification.
	unifyTerminals(r.g)

	// Step 4: precedence inheritance.
	applyPrecedenceDeclarations(r.g, r.src.Precedence)
	inheritPrecedence(r.g)

	// Step 5: value-type inheritance.
	inheritValueTypes(r.g)

	// Step 6: final symbol reordering.
	reorder(r.g)

	if err := r.g.Validate(); err != nil {
		return nil, err
	}
	return r.g, nil
}

// declareSymbols copies every surface-declared symbol into the arena
// verbatim (order doesn't matter yet; reorder() fixes it at the end).
func (r *rewriter) declareSymbols() error {
	for _, s := range r.src.Symbols {
		cp := *s
		cp.ID = 0
		if _, exists := r.g.Lookup(cp.Name); exists {
			return fmt.Errorf("rewrite: duplicate symbol declaration %q", cp.Name)
		}
		r.g.AddSymbol(&cp)
	}
	return nil
}

func (r *rewriter) ensureSpecialTerminal(name string, kind grammar.SymbolKind) grammar.ID {
	if id, ok := r.g.Lookup(name); ok {
		return id
	}
	return r.g.AddSymbol(&grammar.Symbol{
		Name: name, Kind: kind, Lexem: kind != grammar.KindError,
		Defined: true, Precedence: grammar.NoPrecedence,
	})
}

func (r *rewriter) markUsed(id grammar.ID) {
	r.g.Symbol(id).Used = true
}

func (r *rewriter) resolve(name string) (grammar.ID, bool) {
	return r.g.Lookup(name)
}
