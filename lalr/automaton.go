package lalr

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/shadowCow/lalrgen/grammar"
)

// State is one node of the LALR(1) characteristic finite-state
// machine: a set of LR(0) items (kernel + derived closure) plus the
// GOTO transition table out of it.
type State struct {
	ID          int
	Kernel      []Item // sorted, defines the state's identity
	Closure     map[Item]bool
	Transitions map[grammar.ID]int // symbol -> target state id
}

// Automaton is the full LALR(1) characteristic automaton: states
// discovered by BFS from the augmented start state.
type Automaton struct {
	Grammar *grammar.Grammar
	States  []*State // States[0] is the start state
}

func sortedItems(items map[Item]bool) []Item {
	out := make([]Item, 0, len(items))
	for it := range items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Prod != out[j].Prod {
			return out[i].Prod < out[j].Prod
		}
		return out[i].Dot < out[j].Dot
	})
	return out
}

func kernelKey(kernel []Item) string {
	s := ""
	for _, it := range kernel {
		s += fmt.Sprintf("%d.%d|", it.Prod, it.Dot)
	}
	return s
}

// BuildLR0 constructs the LR(0) automaton: states and GOTO/shift
// transitions, deferring LALR(1) lookahead to ComputeLookaheads.
// States are discovered off a BFS worklist, so state ids follow the
// traversal order from the start kernel.
func BuildLR0(g *grammar.Grammar, augProd grammar.ID) *Automaton {
	a := &Automaton{Grammar: g}
	byKey := make(map[string]int)

	startKernel := []Item{{Prod: augProd, Dot: 0}}
	startClosure := closure0(startKernel, g)
	start := &State{ID: 0, Kernel: startKernel, Closure: startClosure, Transitions: make(map[grammar.ID]int)}
	a.States = append(a.States, start)
	byKey[kernelKey(startKernel)] = 0

	pending := arraylist.New()
	pending.Add(0)

	for !pending.Empty() {
		v, _ := pending.Get(0)
		pending.Remove(0)
		sid := v.(int)
		s := a.States[sid]

		outSymbols := make(map[grammar.ID]bool)
		for it := range s.Closure {
			if sym, ok := it.SymbolAtDot(g); ok {
				outSymbols[sym] = true
			}
		}

		syms := make([]grammar.ID, 0, len(outSymbols))
		for sym := range outSymbols {
			syms = append(syms, sym)
		}
		sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })

		for _, sym := range syms {
			kernel := sortedItems(boolSet(gotoItems(s.Closure, sym, g)))
			key := kernelKey(kernel)
			if tid, ok := byKey[key]; ok {
				s.Transitions[sym] = tid
				continue
			}
			cl := closure0(kernel, g)
			ns := &State{ID: len(a.States), Kernel: kernel, Closure: cl, Transitions: make(map[grammar.ID]int)}
			a.States = append(a.States, ns)
			byKey[key] = ns.ID
			s.Transitions[sym] = ns.ID
			pending.Add(ns.ID)
		}
	}
	return a
}

func boolSet(items []Item) map[Item]bool {
	out := make(map[Item]bool, len(items))
	for _, it := range items {
		out[it] = true
	}
	return out
}
