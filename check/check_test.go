package check

import (
	"testing"

	"github.com/shadowCow/lalrgen/ccl"
	"github.com/shadowCow/lalrgen/diag"
	"github.com/shadowCow/lalrgen/grammar"
	"github.com/shadowCow/lalrgen/rewrite"
)

func buildGrammar(t *testing.T, symbols []*grammar.Symbol, rules []grammar.RuleDecl, goal string) (*grammar.Grammar, *diag.Sink) {
	t.Helper()
	for _, s := range symbols {
		if s.Precedence == 0 {
			s.Precedence = grammar.NoPrecedence
		}
	}
	src := &grammar.SourceGrammar{Symbols: symbols, Rules: rules, GoalSymbol: goal}
	sink := diag.NewSink(0)
	g, err := rewrite.Expand(src, sink)
	if err != nil {
		t.Fatalf("rewrite.Expand: %v", err)
	}
	return g, sink
}

func hasWarningContaining(sink *diag.Sink, substr string) bool {
	for _, d := range sink.Diagnostics() {
		if d.Severity == diag.SevWarning && contains(d.Message, substr) {
			return true
		}
	}
	return false
}

func hasErrorContaining(sink *diag.Sink, substr string) bool {
	for _, d := range sink.Diagnostics() {
		if d.Severity == diag.SevError && contains(d.Message, substr) {
			return true
		}
	}
	return false
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

func TestUnusedTerminalWarns(t *testing.T) {
	symbols := []*grammar.Symbol{
		{Name: "S", Kind: grammar.KindNonterminal},
		{Name: "a", Kind: grammar.KindStringTerminal, Pattern: grammar.StringSource{Literal: "a"}, Lexem: true},
		{Name: "unused", Kind: grammar.KindStringTerminal, Pattern: grammar.StringSource{Literal: "z"}, Lexem: true},
	}
	rules := []grammar.RuleDecl{{LHS: "S", RHS: grammar.RHSSymbol{Name: "a"}}}
	g, sink := buildGrammar(t, symbols, rules, "S")

	Run(g, ccl.MaxCodePoint, sink)
	if !hasWarningContaining(sink, `"unused" is declared but never used`) {
		t.Errorf("expected unused-terminal warning, got: %v", sink.Diagnostics())
	}
}

func TestStupidProductionWarns(t *testing.T) {
	symbols := []*grammar.Symbol{
		{Name: "S", Kind: grammar.KindNonterminal},
		{Name: "T", Kind: grammar.KindNonterminal},
		{Name: "a", Kind: grammar.KindStringTerminal, Pattern: grammar.StringSource{Literal: "a"}, Lexem: true},
	}
	rules := []grammar.RuleDecl{
		{LHS: "S", RHS: grammar.RHSSymbol{Name: "T"}},
		{LHS: "T", RHS: grammar.RHSAlternative{grammar.RHSSymbol{Name: "T"}, grammar.RHSSymbol{Name: "a"}}},
	}
	g, sink := buildGrammar(t, symbols, rules, "S")

	Run(g, ccl.MaxCodePoint, sink)
	if !hasWarningContaining(sink, "is stupid") {
		t.Errorf("expected stupid-production warning, got: %v", sink.Diagnostics())
	}
}

func TestRegexMatchingEmptyWarns(t *testing.T) {
	symbols := []*grammar.Symbol{
		{Name: "S", Kind: grammar.KindNonterminal},
		{Name: "Digits", Kind: grammar.KindRegexTerminal, Pattern: grammar.RegexSource{Pattern: "[0-9]*"}, Lexem: true},
	}
	rules := []grammar.RuleDecl{{LHS: "S", RHS: grammar.RHSSymbol{Name: "Digits"}}}
	g, sink := buildGrammar(t, symbols, rules, "S")

	Run(g, ccl.MaxCodePoint, sink)
	if !hasWarningContaining(sink, "matches the empty string") {
		t.Errorf("expected empty-match warning, got: %v", sink.Diagnostics())
	}
}

func TestEmptyLanguageErrors(t *testing.T) {
	symbols := []*grammar.Symbol{
		{Name: "S", Kind: grammar.KindNonterminal},
		{Name: "Dead", Kind: grammar.KindNonterminal},
		{Name: "a", Kind: grammar.KindStringTerminal, Pattern: grammar.StringSource{Literal: "a"}, Lexem: true},
	}
	rules := []grammar.RuleDecl{
		{LHS: "S", RHS: grammar.RHSSymbol{Name: "Dead"}},
		{LHS: "Dead", RHS: grammar.RHSSequence{grammar.RHSSymbol{Name: "Dead"}, grammar.RHSSymbol{Name: "a"}}},
	}
	g, sink := buildGrammar(t, symbols, rules, "S")

	Run(g, ccl.MaxCodePoint, sink)
	if !hasErrorContaining(sink, "empty language") {
		t.Errorf("expected empty-language error, got: %v", sink.Diagnostics())
	}
}

func TestWellFormedGrammarHasNoErrors(t *testing.T) {
	symbols := []*grammar.Symbol{
		{Name: "S", Kind: grammar.KindNonterminal},
		{Name: "a", Kind: grammar.KindStringTerminal, Pattern: grammar.StringSource{Literal: "a"}, Lexem: true},
	}
	rules := []grammar.RuleDecl{{LHS: "S", RHS: grammar.RHSSymbol{Name: "a"}}}
	g, sink := buildGrammar(t, symbols, rules, "S")

	Run(g, ccl.MaxCodePoint, sink)
	if sink.HasErrors() {
		t.Errorf("expected no errors for a well-formed grammar, got: %v", sink.Diagnostics())
	}
}
