package firstfollow

import (
	"testing"

	"github.com/shadowCow/lalrgen/diag"
	"github.com/shadowCow/lalrgen/grammar"
	"github.com/shadowCow/lalrgen/rewrite"
)

// buildExprGrammar constructs the classic
//
//	E : E '+' T | T ;
//	T : T '*' F | F ;
//	F : '(' E ')' | id ;
//
// grammar directly against the flat model via rewrite.Expand, the same
// helper shape rewrite_test.go uses.
func buildExprGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	symbols := []*grammar.Symbol{
		{Name: "E", Kind: grammar.KindNonterminal},
		{Name: "T", Kind: grammar.KindNonterminal},
		{Name: "F", Kind: grammar.KindNonterminal},
		{Name: "PLUS", Kind: grammar.KindStringTerminal, Pattern: grammar.StringSource{Literal: "+"}, Lexem: true},
		{Name: "STAR", Kind: grammar.KindStringTerminal, Pattern: grammar.StringSource{Literal: "*"}, Lexem: true},
		{Name: "LPAREN", Kind: grammar.KindStringTerminal, Pattern: grammar.StringSource{Literal: "("}, Lexem: true},
		{Name: "RPAREN", Kind: grammar.KindStringTerminal, Pattern: grammar.StringSource{Literal: ")"}, Lexem: true},
		{Name: "id", Kind: grammar.KindRegexTerminal, Pattern: grammar.RegexSource{Pattern: "[a-z]+"}, Lexem: true},
	}
	for _, s := range symbols {
		s.Precedence = grammar.NoPrecedence
	}
	rules := []grammar.RuleDecl{
		{LHS: "E", RHS: grammar.RHSAlternative{
			grammar.RHSSequence{grammar.RHSSymbol{Name: "E"}, grammar.RHSSymbol{Name: "PLUS"}, grammar.RHSSymbol{Name: "T"}},
			grammar.RHSSymbol{Name: "T"},
		}},
		{LHS: "T", RHS: grammar.RHSAlternative{
			grammar.RHSSequence{grammar.RHSSymbol{Name: "T"}, grammar.RHSSymbol{Name: "STAR"}, grammar.RHSSymbol{Name: "F"}},
			grammar.RHSSymbol{Name: "F"},
		}},
		{LHS: "F", RHS: grammar.RHSAlternative{
			grammar.RHSSequence{grammar.RHSSymbol{Name: "LPAREN"}, grammar.RHSSymbol{Name: "E"}, grammar.RHSSymbol{Name: "RPAREN"}},
			grammar.RHSSymbol{Name: "id"},
		}},
	}
	src := &grammar.SourceGrammar{Symbols: symbols, Rules: rules, GoalSymbol: "E"}
	g, err := rewrite.Expand(src, diag.NewSink(0))
	if err != nil {
		t.Fatalf("rewrite.Expand: %v", err)
	}
	return g
}

func membersOf(t *testing.T, g *grammar.Grammar, b Bitset) []string {
	t.Helper()
	var names []string
	for _, id := range b.Members() {
		names = append(names, g.Symbol(grammar.ID(id)).Name)
	}
	return names
}

func contains(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}

func TestFirstOfExprGrammar(t *testing.T) {
	g := buildExprGrammar(t)
	sets := Compute(g)

	for _, nt := range []string{"E", "T", "F"} {
		id, ok := g.Lookup(nt)
		if !ok {
			t.Fatalf("missing symbol %q", nt)
		}
		first := membersOf(t, g, sets.FirstOf(id))
		if !contains(first, "LPAREN") || !contains(first, "id") {
			t.Errorf("FIRST(%s) = %v, want it to contain LPAREN and id", nt, first)
		}
		if sets.IsNullable(id) {
			t.Errorf("%s should not be nullable", nt)
		}
	}
}

func TestFollowOfExprGrammar(t *testing.T) {
	g := buildExprGrammar(t)
	first := Compute(g)
	follow := ComputeFollow(g, first)

	eID, _ := g.Lookup("E")
	tID, _ := g.Lookup("T")
	fID, _ := g.Lookup("F")

	followE := membersOf(t, g, follow.FollowOf(eID))
	if !contains(followE, "EOF") || !contains(followE, "RPAREN") || !contains(followE, "PLUS") {
		t.Errorf("FOLLOW(E) = %v, want it to contain EOF, RPAREN, PLUS", followE)
	}

	followT := membersOf(t, g, follow.FollowOf(tID))
	if !contains(followT, "PLUS") || !contains(followT, "STAR") || !contains(followT, "EOF") || !contains(followT, "RPAREN") {
		t.Errorf("FOLLOW(T) = %v, want it to contain PLUS, STAR, EOF, RPAREN", followT)
	}

	followF := membersOf(t, g, follow.FollowOf(fID))
	if !contains(followF, "STAR") || !contains(followF, "PLUS") || !contains(followF, "EOF") || !contains(followF, "RPAREN") {
		t.Errorf("FOLLOW(F) = %v, want it to contain STAR, PLUS, EOF, RPAREN", followF)
	}
}

func TestEmptyAlternativeIsNullable(t *testing.T) {
	symbols := []*grammar.Symbol{
		{Name: "S", Kind: grammar.KindNonterminal},
		{Name: "a", Kind: grammar.KindStringTerminal, Pattern: grammar.StringSource{Literal: "a"}, Lexem: true},
	}
	rules := []grammar.RuleDecl{
		{LHS: "S", RHS: grammar.RHSAlternative{grammar.RHSSymbol{Name: "a"}, nil}},
	}
	src := &grammar.SourceGrammar{Symbols: symbols, Rules: rules, GoalSymbol: "S"}
	g, err := rewrite.Expand(src, diag.NewSink(0))
	if err != nil {
		t.Fatalf("rewrite.Expand: %v", err)
	}
	sets := Compute(g)
	sID, _ := g.Lookup("S")
	if !sets.IsNullable(sID) {
		t.Fatalf("S should be nullable (it has an empty alternative)")
	}
}
