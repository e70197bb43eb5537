package regexfe

import (
	"github.com/shadowCow/lalrgen/automata"
	"github.com/shadowCow/lalrgen/ccl"
	"github.com/shadowCow/lalrgen/diag"
)

// Compile turns a regex AST into a Thompson-construction NFA
// fragment with a single start and a single accept state, delegating
// each node kind to automata's fragment combinators.
//
// fold expands every literal/class CCL per the case-insensitive flag;
// codePointMax bounds the universe `.` and negated classes complement
// against (0 selects ccl.MaxCodePoint, the default Unicode range).
func Compile(n Node, fold ccl.FoldMode, codePointMax rune) *automata.NFA {
	if codePointMax == 0 {
		codePointMax = ccl.MaxCodePoint
	}
	switch v := n.(type) {
	case Literal:
		return automata.FromCCL(ccl.FromRune(v.R).CaseFold(fold))
	case Class:
		return automata.FromCCL(v.C.CaseFold(fold).Intersection(ccl.FromRange(0, codePointMax)))
	case AnyChar:
		universe := ccl.FromRange(0, codePointMax).Difference(ccl.FromRune('\n'))
		return automata.FromCCL(universe)
	case Concat:
		if len(v) == 0 {
			return automata.FromEpsilon()
		}
		frags := make([]*automata.NFA, len(v))
		for i, c := range v {
			frags[i] = Compile(c, fold, codePointMax)
		}
		return automata.Concat(frags...)
	case Alternate:
		frags := make([]*automata.NFA, len(v))
		for i, c := range v {
			frags[i] = Compile(c, fold, codePointMax)
		}
		return automata.Alternate(frags...)
	case Star:
		return automata.Star(Compile(v.Inner, fold, codePointMax))
	case Plus:
		return automata.Plus(Compile(v.Inner, fold, codePointMax))
	case Optional:
		return automata.Optional(Compile(v.Inner, fold, codePointMax))
	default:
		panic("regexfe: unhandled AST node")
	}
}

// CompilePattern is the convenience entry point lexergen and check use: parse
// then compile in one step, or return the parse error (already
// reported into sink by Parse).
func CompilePattern(pattern string, pos diag.Position, fold ccl.FoldMode, codePointMax rune, sink *diag.Sink) (*automata.NFA, error) {
	node, err := Parse(pattern, pos, sink)
	if err != nil {
		return nil, err
	}
	return Compile(node, fold, codePointMax), nil
}
