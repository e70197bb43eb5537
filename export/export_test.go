package export

import (
	"strings"
	"testing"

	"github.com/shadowCow/lalrgen/ccl"
	"github.com/shadowCow/lalrgen/diag"
	"github.com/shadowCow/lalrgen/firstfollow"
	"github.com/shadowCow/lalrgen/grammar"
	"github.com/shadowCow/lalrgen/lalr"
	"github.com/shadowCow/lalrgen/lexergen"
	"github.com/shadowCow/lalrgen/rewrite"
)

func buildPipeline(t *testing.T) (*grammar.Grammar, *lalr.Table, *lexergen.Assembly) {
	t.Helper()
	symbols := []*grammar.Symbol{
		{Name: "S", Kind: grammar.KindNonterminal},
		{Name: "a", Kind: grammar.KindStringTerminal, Pattern: grammar.StringSource{Literal: "a"}, Lexem: true},
	}
	for _, s := range symbols {
		s.Precedence = grammar.NoPrecedence
	}
	rules := []grammar.RuleDecl{
		{LHS: "S", RHS: grammar.RHSAlternative{grammar.RHSSymbol{Name: "a"}, nil}},
	}
	src := &grammar.SourceGrammar{Symbols: symbols, Rules: rules, GoalSymbol: "S"}
	sink := diag.NewSink(0)
	g, err := rewrite.Expand(src, sink)
	if err != nil {
		t.Fatalf("rewrite.Expand: %v", err)
	}

	a := lalr.BuildLR0(g, g.ProductionsOf(g.Goal)[0].ID)
	first := firstfollow.Compute(g)
	la := lalr.ComputeLookaheads(a, first)
	tbl := lalr.Build(a, la, sink)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}

	asm := lexergen.Assemble(g, tbl, lexergen.ModeSingle, ccl.MaxCodePoint, sink)
	return g, tbl, asm
}

func TestBuildProducesSymbolsAndProductions(t *testing.T) {
	g, tbl, asm := buildPipeline(t)
	doc := Build(g, tbl, asm)

	if len(doc.Symbols) != len(g.Symbols) {
		t.Errorf("expected %d symbols, got %d", len(g.Symbols), len(doc.Symbols))
	}
	if len(doc.Productions) != len(g.Productions) {
		t.Errorf("expected %d productions, got %d", len(g.Productions), len(doc.Productions))
	}
	if len(doc.States) != len(tbl.Action) {
		t.Errorf("expected %d states, got %d", len(tbl.Action), len(doc.States))
	}
}

func TestWriteProducesWellFormedXML(t *testing.T) {
	g, tbl, asm := buildPipeline(t)
	doc := Build(g, tbl, asm)

	var b strings.Builder
	if err := doc.Write(&b); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "<parser") {
		t.Errorf("expected a <parser> root element, got: %s", out)
	}
	if !strings.Contains(out, "<symbol ") {
		t.Errorf("expected <symbol> elements, got: %s", out)
	}
}
