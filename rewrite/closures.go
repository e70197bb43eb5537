package rewrite

import (
	"fmt"
	"sort"

	"github.com/shadowCow/lalrgen/diag"
	"github.com/shadowCow/lalrgen/grammar"
)

// closureKind names which virtual closure a generated nonterminal
// implements.
type closureKind int

const (
	closureOpt closureKind = iota
	closureStar
	closurePlus
)

type closureKey struct {
	base grammar.ID
	kind closureKind
}

// expandRule turns one surface RuleDecl into one or more flat
// Productions sharing the declared LHS, recursing through top-level
// alternation.
func (r *rewriter) expandRule(rule grammar.RuleDecl) error {
	lhs, ok := r.resolve(rule.LHS)
	if !ok {
		return fmt.Errorf("undefined nonterminal %q", rule.LHS)
	}
	r.g.Symbol(lhs).Defined = true

	return r.expandAlt(lhs, rule.RHS, rule)
}

// expandAlt recursively splits top-level alternation into distinct
// productions, then flattens each resulting sequence into items.
func (r *rewriter) expandAlt(lhs grammar.ID, rhs RHSRuleOrNil, rule grammar.RuleDecl) error {
	switch p := rhs.(type) {
	case nil:
		// `lhs : ;`, the empty production.
		r.addProduction(lhs, nil, rule)
		return nil
	case grammar.RHSAlternative:
		for _, alt := range p {
			if err := r.expandAlt(lhs, alt, rule); err != nil {
				return err
			}
		}
		return nil
	default:
		items, err := r.flattenSequence(p)
		if err != nil {
			return err
		}
		r.addProduction(lhs, items, rule)
		return nil
	}
}

// RHSRuleOrNil documents that a nil grammar.RHSRule means "the empty
// alternative" (`lhs : 'a' | ;`).
type RHSRuleOrNil = grammar.RHSRule

func (r *rewriter) addProduction(lhs grammar.ID, items []grammar.Item, rule grammar.RuleDecl) {
	r.g.AddProduction(&grammar.Production{
		LHS:            lhs,
		RHS:            items,
		EmitTag:        rule.EmitTag,
		SemanticAction: rule.SemanticAction,
		Precedence:     r.explicitPrecedence(rule.Precedence),
		Assoc:          grammar.AssocNone,
	})
}

func (r *rewriter) explicitPrecedence(name string) int {
	if name == "" {
		return grammar.NoPrecedence
	}
	if id, ok := r.resolve(name); ok {
		return r.g.Symbol(id).Precedence
	}
	return grammar.NoPrecedence
}

// flattenSequence walks a (possibly nested) RHSRule that is not a
// top-level alternative, producing the flat Item list for a single
// production. Every element becomes exactly one Item: a bare symbol
// reference stays a reference; a closure or nested group is replaced
// by a reference to a synthetic nonterminal.
func (r *rewriter) flattenSequence(rule grammar.RHSRule) ([]grammar.Item, error) {
	switch p := rule.(type) {
	case grammar.RHSSequence:
		var items []grammar.Item
		for _, elem := range p {
			it, err := r.flattenElement(elem)
			if err != nil {
				return nil, err
			}
			items = append(items, it)
		}
		return items, nil
	default:
		it, err := r.flattenElement(rule)
		if err != nil {
			return nil, err
		}
		return []grammar.Item{it}, nil
	}
}

// flattenElement reduces a single RHS element to one Item, introducing
// synthetic group/closure nonterminals as needed.
func (r *rewriter) flattenElement(elem grammar.RHSRule) (grammar.Item, error) {
	switch e := elem.(type) {
	case grammar.RHSSymbol:
		id, ok := r.resolve(e.Name)
		if !ok {
			return grammar.Item{}, fmt.Errorf("undefined symbol %q", e.Name)
		}
		r.markUsed(id)
		return grammar.Item{Symbol: id, Binding: e.Binding}, nil

	case grammar.RHSOptional:
		base, err := r.symbolFor(e.Inner)
		if err != nil {
			return grammar.Item{}, err
		}
		return grammar.Item{Symbol: r.closureFor(base, closureOpt)}, nil

	case grammar.RHSZeroOrMore:
		base, err := r.symbolFor(e.Inner)
		if err != nil {
			return grammar.Item{}, err
		}
		return grammar.Item{Symbol: r.closureFor(base, closureStar)}, nil

	case grammar.RHSOneOrMore:
		base, err := r.symbolFor(e.Inner)
		if err != nil {
			return grammar.Item{}, err
		}
		return grammar.Item{Symbol: r.closureFor(base, closurePlus)}, nil

	case grammar.RHSAlternative:
		return grammar.Item{Symbol: r.groupFor(e)}, nil

	case grammar.RHSSequence:
		return grammar.Item{Symbol: r.groupFor(e)}, nil

	default:
		return grammar.Item{}, fmt.Errorf("unhandled RHS node %T", elem)
	}
}

// symbolFor reduces any RHSRule to a single symbol id, synthesizing an
// anonymous "group" nonterminal when the rule is not already a bare
// RHSSymbol; closures always close over exactly one symbol.
func (r *rewriter) symbolFor(rule grammar.RHSRule) (grammar.ID, error) {
	if sym, ok := rule.(grammar.RHSSymbol); ok {
		id, ok := r.resolve(sym.Name)
		if !ok {
			return 0, fmt.Errorf("undefined symbol %q", sym.Name)
		}
		r.markUsed(id)
		return id, nil
	}
	return r.groupFor(rule), nil
}

// groupFor returns the nonterminal standing in for an inline
// sub-expression (a parenthesized alternative or sequence), creating
// it on first use and reusing it for structurally identical groups.
func (r *rewriter) groupFor(rule grammar.RHSRule) grammar.ID {
	sig := signature(rule)
	if id, ok := r.groupCache[sig]; ok {
		return id
	}

	r.groupCounter++
	name := fmt.Sprintf("$group%d", r.groupCounter)
	id := r.g.AddSymbol(&grammar.Symbol{Name: name, Kind: grammar.KindNonterminal, Defined: true, Used: true, Precedence: grammar.NoPrecedence})
	r.groupCache[sig] = id

	switch p := rule.(type) {
	case grammar.RHSAlternative:
		for _, alt := range p {
			items, err := r.flattenSequence(alt)
			if err != nil {
				r.sink.Errorf(diag.Grammar, "group %s: %v", name, err)
				continue
			}
			r.g.AddProduction(&grammar.Production{LHS: id, RHS: items, Precedence: grammar.NoPrecedence, Source: "group"})
		}
	default:
		items, err := r.flattenSequence(rule)
		if err != nil {
			r.sink.Errorf(diag.Grammar, "group %s: %v", name, err)
		} else {
			r.g.AddProduction(&grammar.Production{LHS: id, RHS: items, Precedence: grammar.NoPrecedence, Source: "group"})
		}
	}
	return id
}

// closureFor returns the nonterminal implementing opt/star/plus over
// base, creating it on first use; a closure of the same base symbol
// and kind is reused.
func (r *rewriter) closureFor(base grammar.ID, kind closureKind) grammar.ID {
	key := closureKey{base, kind}
	if id, ok := r.closureCache[key]; ok {
		return id
	}

	baseName := r.g.Symbol(base).Name
	suffix := map[closureKind]string{closureOpt: "?", closureStar: "*", closurePlus: "+"}[kind]
	name := baseName + suffix

	id := r.g.AddSymbol(&grammar.Symbol{
		Name: name, Kind: grammar.KindNonterminal, Defined: true, Used: true,
		Precedence: grammar.NoPrecedence,
	})
	r.closureCache[key] = id

	switch kind {
	case closureOpt:
		// opt -> ε | X
		r.g.AddProduction(&grammar.Production{LHS: id, RHS: nil, Precedence: grammar.NoPrecedence, Source: "opt"})
		r.g.AddProduction(&grammar.Production{LHS: id, RHS: []grammar.Item{{Symbol: base}}, Precedence: grammar.NoPrecedence, Source: "opt"})
	case closureStar:
		// star -> ε | star X   (left-recursive: bounded parser stack)
		r.g.AddProduction(&grammar.Production{LHS: id, RHS: nil, Precedence: grammar.NoPrecedence, Source: "star"})
		r.g.AddProduction(&grammar.Production{LHS: id, RHS: []grammar.Item{{Symbol: id}, {Symbol: base}}, Precedence: grammar.NoPrecedence, Source: "star"})
	case closurePlus:
		// plus -> X | plus X
		r.g.AddProduction(&grammar.Production{LHS: id, RHS: []grammar.Item{{Symbol: base}}, Precedence: grammar.NoPrecedence, Source: "plus"})
		r.g.AddProduction(&grammar.Production{LHS: id, RHS: []grammar.Item{{Symbol: id}, {Symbol: base}}, Precedence: grammar.NoPrecedence, Source: "plus"})
	}
	r.markUsed(base)
	return id
}

// signature builds a structural key for group deduplication so two
// identical inline sub-expressions share one nonterminal.
func signature(rule grammar.RHSRule) string {
	switch p := rule.(type) {
	case grammar.RHSSymbol:
		return "sym:" + p.Name
	case grammar.RHSSequence:
		parts := make([]string, len(p))
		for i, e := range p {
			parts[i] = signature(e)
		}
		return "(" + joinComma(parts) + ")"
	case grammar.RHSAlternative:
		parts := make([]string, len(p))
		for i, e := range p {
			parts[i] = signature(e)
		}
		sort.Strings(parts)
		return "[" + joinComma(parts) + "]"
	case grammar.RHSOptional:
		return signature(p.Inner) + "?"
	case grammar.RHSZeroOrMore:
		return signature(p.Inner) + "*"
	case grammar.RHSOneOrMore:
		return signature(p.Inner) + "+"
	default:
		return "?"
	}
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out
}
