package lalr

import (
	"sort"

	"github.com/shadowCow/lalrgen/diag"
	"github.com/shadowCow/lalrgen/grammar"
)

// ActionKind discriminates an ACTION table entry.
type ActionKind int

const (
	Shift ActionKind = iota
	Reduce
	Accept
)

// Action is one ACTION table entry: Shift targets a state id, Reduce
// names a production id, Accept carries no payload.
type Action struct {
	Kind  ActionKind
	Value int // target state for Shift, production id for Reduce
}

// Table is the full LALR(1) parse table: per-state, per-terminal
// ACTION, per-state, per-nonterminal GOTO, and the default-production
// compression.
type Table struct {
	Automaton *Automaton
	Action    []map[grammar.ID]Action // by state id, terminal id
	Goto      []map[grammar.ID]int    // by state id, nonterminal id
	Default   []int                   // by state id; -1 if none
}

// Build runs conflict resolution and default-production compression
// over the automaton's computed lookaheads, reporting every shift/
// reduce and reduce/reduce conflict to sink.
func Build(a *Automaton, la *Lookaheads, sink *diag.Sink) *Table {
	g := a.Grammar
	t := &Table{
		Automaton: a,
		Action:    make([]map[grammar.ID]Action, len(a.States)),
		Goto:      make([]map[grammar.ID]int, len(a.States)),
		Default:   make([]int, len(a.States)),
	}

	augProd := findAugmentedProduction(g)

	for _, s := range a.States {
		actions := make(map[grammar.ID]Action)
		t.Goto[s.ID] = make(map[grammar.ID]int)

		for sym, target := range s.Transitions {
			if g.Symbol(sym).IsTerminal() {
				actions[sym] = Action{Kind: Shift, Value: target}
			} else {
				t.Goto[s.ID][sym] = target
			}
		}

		// Iterate closure items in canonical (prod, dot) order so
		// conflict resolution and its diagnostics are deterministic
		// across runs.
		items := sortedItems(s.Closure)

		// Accept: the item S' -> S . EOF with EOF in lookahead (here,
		// EOF is an explicit RHS symbol of the augmented production,
		// so it already produced a Shift entry above for EOF; that
		// shift target is the halt state, and is rewritten to Accept).
		for _, it := range items {
			if it.Prod == augProd && it.Dot == 1 {
				actions[g.EOF] = Action{Kind: Accept}
			}
		}

		for _, it := range items {
			if !it.AtEnd(g) || it.Prod == augProd {
				continue
			}
			p := g.Production(it.Prod)
			lookaheads := make([]int, 0, len(la.Of(s.ID, it)))
			for lookahead := range la.Of(s.ID, it) {
				lookaheads = append(lookaheads, lookahead)
			}
			sort.Ints(lookaheads)
			for _, lookahead := range lookaheads {
				term := grammar.ID(lookahead)
				resolveInto(actions, term, p, s.ID, g, sink)
			}
		}

		t.Action[s.ID] = actions
		t.Default[s.ID] = computeDefault(actions, g)
	}

	return t
}

func findAugmentedProduction(g *grammar.Grammar) grammar.ID {
	for _, p := range g.ProductionsOf(g.Goal) {
		return p.ID
	}
	diag.InternalError("lalr.Build", "augmented goal %s has no production", g.Symbol(g.Goal).Name)
	return 0
}

// resolveInto adds a Reduce(prod) action for terminal term into
// actions, resolving a conflict against whatever is already there.
func resolveInto(actions map[grammar.ID]Action, term grammar.ID, prod *grammar.Production, stateID int, g *grammar.Grammar, sink *diag.Sink) {
	existing, has := actions[term]
	if !has {
		actions[term] = Action{Kind: Reduce, Value: int(prod.ID)}
		return
	}

	switch existing.Kind {
	case Shift:
		resolveShiftReduce(actions, term, prod, existing, stateID, g, sink)
	case Accept:
		// EOF already resolved to Accept; nothing reduces over it.
	case Reduce:
		resolveReduceReduce(actions, term, prod, existing, stateID, g, sink)
	}
}

func resolveShiftReduce(actions map[grammar.ID]Action, term grammar.ID, prod *grammar.Production, shift Action, stateID int, g *grammar.Grammar, sink *diag.Sink) {
	termSym := g.Symbol(term)
	termPrec, prodPrec := termSym.Precedence, prod.Precedence

	if termPrec == grammar.NoPrecedence || prodPrec == grammar.NoPrecedence {
		sink.Warnf(diag.Conflict,
			"shift/reduce conflict in state %d on %q between shifting and reducing %s: no precedence declared, defaulting to shift",
			stateID, termSym.Name, prod.String(g))
		return // keep existing shift
	}

	switch {
	case termPrec > prodPrec:
		// keep shift
	case termPrec < prodPrec:
		actions[term] = Action{Kind: Reduce, Value: int(prod.ID)}
	default:
		switch termSym.Assoc {
		case grammar.AssocLeft:
			actions[term] = Action{Kind: Reduce, Value: int(prod.ID)}
		case grammar.AssocRight:
			// keep shift
		default: // AssocNone
			sink.Errorf(diag.Conflict,
				"shift/reduce conflict in state %d on %q between shifting and reducing %s at equal precedence with no associativity: defaulting to shift",
				stateID, termSym.Name, prod.String(g))
		}
	}
}

func resolveReduceReduce(actions map[grammar.ID]Action, term grammar.ID, prod *grammar.Production, existing Action, stateID int, g *grammar.Grammar, sink *diag.Sink) {
	sink.Errorf(diag.Conflict,
		"reduce/reduce conflict in state %d on %q between productions %d and %d: smallest id wins",
		stateID, g.Symbol(term).Name, existing.Value, prod.ID)
	if int(prod.ID) < existing.Value {
		actions[term] = Action{Kind: Reduce, Value: int(prod.ID)}
	}
}

// computeDefault decides default-production compression: if every
// action in the state is a Reduce of the same production, that
// production becomes the state's default and its per-terminal entries
// can be elided. A state with any Shift or Accept is never
// compressed, so a shift that would win a precedence fight can never
// be hidden behind a default reduce.
func computeDefault(actions map[grammar.ID]Action, g *grammar.Grammar) int {
	if len(actions) == 0 {
		return -1
	}
	var prod int = -1
	for _, a := range actions {
		if a.Kind != Reduce {
			return -1
		}
		if prod == -1 {
			prod = a.Value
		} else if prod != a.Value {
			return -1
		}
	}
	return prod
}

// SortedActionTerminals returns the terminal ids of state sid's action
// entries in ascending order, for deterministic export.
func (t *Table) SortedActionTerminals(sid int) []grammar.ID {
	out := make([]grammar.ID, 0, len(t.Action[sid]))
	for sym := range t.Action[sid] {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SortedGotoNonterminals returns the nonterminal ids of state sid's
// GOTO entries in ascending order.
func (t *Table) SortedGotoNonterminals(sid int) []grammar.ID {
	out := make([]grammar.ID, 0, len(t.Goto[sid]))
	for sym := range t.Goto[sid] {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
