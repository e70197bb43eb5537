// Package lexergen assembles the lexer machinery: compiling every
// terminal's pattern into an NFA fragment, combining them into one
// machine, and building (per LALR(1) state or once for the whole
// grammar) the restricted DFA that machine projects onto.
package lexergen

import (
	"github.com/shadowCow/lalrgen/automata"
	"github.com/shadowCow/lalrgen/ccl"
	"github.com/shadowCow/lalrgen/diag"
	"github.com/shadowCow/lalrgen/grammar"
	"github.com/shadowCow/lalrgen/regexfe"
)

// CompilePattern turns one terminal symbol's declared pattern into a
// Thompson-construction NFA fragment.
func CompilePattern(sym *grammar.Symbol, codePointMax rune, sink *diag.Sink) *automata.NFA {
	fold := ccl.FoldNone
	if sym.Kind == grammar.KindRegexTerminal {
		if rs, ok := sym.Pattern.(grammar.RegexSource); ok && rs.CaseInsensitive {
			fold = ccl.FoldASCII
		}
	}

	switch p := sym.Pattern.(type) {
	case grammar.CharClassSource:
		return automata.FromCCL(rangesToCCL(p.Ranges).CaseFold(fold))
	case grammar.StringSource:
		return literalNFA(p.Literal, fold)
	case grammar.RegexSource:
		nfa, err := regexfe.CompilePattern(p.Pattern, diag.Position{}, fold, codePointMax, sink)
		if err != nil {
			sink.Errorf(diag.Regex, "terminal %q: %v", sym.Name, err)
			return automata.FromEpsilon()
		}
		return nfa
	default:
		diag.InternalError("lexergen.CompilePattern", "terminal %q has no pattern", sym.Name)
		return nil
	}
}

func rangesToCCL(ranges []grammar.Range) ccl.CCL {
	c := ccl.Empty()
	for _, r := range ranges {
		c = c.AddRange(r.Lo, r.Hi)
	}
	return c
}

// literalNFA builds the fragment matching literal exactly, one
// concatenated single-rune class per character.
func literalNFA(literal string, fold ccl.FoldMode) *automata.NFA {
	if literal == "" {
		return automata.FromEpsilon()
	}
	frags := make([]*automata.NFA, 0, len(literal))
	for _, r := range literal {
		frags = append(frags, automata.FromCCL(ccl.FromRune(r).CaseFold(fold)))
	}
	return automata.Concat(frags...)
}
