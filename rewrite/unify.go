package rewrite

import (
	"fmt"
	"sort"

	"github.com/shadowCow/lalrgen/grammar"
)

// unifyTerminals collapses identical character classes to one
// terminal, and identical string literals to one terminal.
// Productions referencing a duplicate are rewritten to reference the
// surviving (first-declared) symbol; the duplicate symbols are left
// in place but marked unused so check.Run can report them.
func unifyTerminals(g *grammar.Grammar) {
	canonical := make(map[string]grammar.ID) // pattern signature -> surviving id
	redirect := make(map[grammar.ID]grammar.ID)

	for _, s := range g.Symbols {
		if !s.IsTerminal() || s.Pattern == nil {
			continue
		}
		sig := patternSignature(s.Pattern)
		if sig == "" {
			continue
		}
		if survivor, ok := canonical[sig]; ok {
			redirect[s.ID] = survivor
			s.Used = false
		} else {
			canonical[sig] = s.ID
		}
	}

	if len(redirect) == 0 {
		return
	}
	for _, p := range g.Productions {
		for i, it := range p.RHS {
			if to, ok := redirect[it.Symbol]; ok {
				p.RHS[i].Symbol = to
				g.Symbol(to).Used = true
			}
		}
	}
}

func patternSignature(p grammar.TerminalPattern) string {
	switch t := p.(type) {
	case grammar.CharClassSource:
		rs := append([]grammar.Range(nil), t.Ranges...)
		sort.Slice(rs, func(i, j int) bool { return rs[i].Lo < rs[j].Lo })
		s := "ccl:"
		for _, r := range rs {
			s += fmt.Sprintf("%d-%d,", r.Lo, r.Hi)
		}
		return s
	case grammar.StringSource:
		return "str:" + t.Literal
	case grammar.RegexSource:
		// Regex terminals are never unified with each other: two
		// textually identical patterns may still diverge once flags
		// differ.
		return ""
	default:
		return ""
	}
}
