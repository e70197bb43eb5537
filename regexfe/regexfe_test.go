package regexfe

import (
	"testing"

	"github.com/shadowCow/lalrgen/automata"
	"github.com/shadowCow/lalrgen/ccl"
	"github.com/shadowCow/lalrgen/diag"
)

func compileAndMatch(t *testing.T, pattern, input string, fold ccl.FoldMode) bool {
	t.Helper()
	sink := diag.NewSink(0)
	frag, err := CompilePattern(pattern, diag.Position{}, fold, 0, sink)
	if err != nil {
		t.Fatalf("CompilePattern(%q): %v", pattern, err)
	}
	accept := map[int]bool{frag.Accept: true}
	dfa := automata.Build(frag, func(s int) bool { return accept[s] })

	state := dfa.Start
	for _, r := range input {
		next := dfa.Step(state, r)
		if next == -1 {
			return false
		}
		state = next
	}
	return dfa.States[state].Accepting()
}

func TestBasicLiterals(t *testing.T) {
	if !compileAndMatch(t, "abc", "abc", ccl.FoldNone) {
		t.Error("abc should match abc")
	}
	if compileAndMatch(t, "abc", "abd", ccl.FoldNone) {
		t.Error("abc should not match abd")
	}
}

func TestAlternationAndQuantifiers(t *testing.T) {
	cases := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"a|b", "a", true},
		{"a|b", "b", true},
		{"a|b", "c", false},
		{"ab*c", "ac", true},
		{"ab*c", "abbbc", true},
		{"ab+c", "ac", false},
		{"ab+c", "abc", true},
		{"ab?c", "ac", true},
		{"ab?c", "abc", true},
		{"ab?c", "abbc", false},
		{"(ab)+", "ababab", true},
		{"(ab)+", "", false},
	}
	for _, tc := range cases {
		got := compileAndMatch(t, tc.pattern, tc.input, ccl.FoldNone)
		if got != tc.want {
			t.Errorf("match(%q, %q) = %v, want %v", tc.pattern, tc.input, got, tc.want)
		}
	}
}

func TestCharClass(t *testing.T) {
	cases := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"[a-z]+", "hello", true},
		{"[a-z]+", "Hello", false},
		{"[^0-9]", "a", true},
		{"[^0-9]", "5", false},
		{"[abc]", "b", true},
	}
	for _, tc := range cases {
		got := compileAndMatch(t, tc.pattern, tc.input, ccl.FoldNone)
		if got != tc.want {
			t.Errorf("match(%q, %q) = %v, want %v", tc.pattern, tc.input, got, tc.want)
		}
	}
}

func TestEscapeSequences(t *testing.T) {
	cases := []struct {
		pattern string
		input   string
	}{
		{`\n`, "\n"},
		{`\t`, "\t"},
		{`\x41`, "A"},
		{`\u0041`, "A"},
		{`\U00000041`, "A"},
		{`\101`, "A"}, // octal 101 = 'A'
		{`\\`, `\`},
	}
	for _, tc := range cases {
		if !compileAndMatch(t, tc.pattern, tc.input, ccl.FoldNone) {
			t.Errorf("pattern %q should match %q", tc.pattern, tc.input)
		}
	}
}

func TestDotExcludesNewline(t *testing.T) {
	if !compileAndMatch(t, ".", "a", ccl.FoldNone) {
		t.Error(". should match a")
	}
	if compileAndMatch(t, ".", "\n", ccl.FoldNone) {
		t.Error(". should not match newline")
	}
}

func TestCaseInsensitiveFlag(t *testing.T) {
	if compileAndMatch(t, "abc", "ABC", ccl.FoldNone) {
		t.Error("abc should not match ABC without case folding")
	}
	if !compileAndMatch(t, "abc", "ABC", ccl.FoldASCII) {
		t.Error("abc should match ABC with ASCII case folding")
	}
}

func TestParseErrorUnbalancedGroup(t *testing.T) {
	sink := diag.NewSink(0)
	_, err := Parse("(ab", diag.Position{}, sink)
	if err == nil {
		t.Fatal("expected an error for an unbalanced group")
	}
	if !sink.HasErrors() {
		t.Fatal("expected the parse error to be recorded in the sink")
	}
}
