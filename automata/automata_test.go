package automata

import (
	"testing"

	"github.com/shadowCow/lalrgen/ccl"
)

func runDFA(d *DFA, input string) (accepted bool, consumed int) {
	state := d.Start
	for i, r := range input {
		next := d.Step(state, r)
		if next == -1 {
			return false, i
		}
		state = next
	}
	return d.States[state].Accepting(), len(input)
}

func TestLiteralConcat(t *testing.T) {
	frag := Concat(FromCCL(ccl.FromRune('a')), FromCCL(ccl.FromRune('b')), FromCCL(ccl.FromRune('c')))
	accept := map[int]bool{frag.Accept: true}
	dfa := Build(frag, func(s int) bool { return accept[s] })

	ok, n := runDFA(dfa, "abc")
	if !ok || n != 3 {
		t.Fatalf("expected abc to be accepted in full, got accepted=%v consumed=%d", ok, n)
	}

	ok, _ = runDFA(dfa, "abd")
	if ok {
		t.Fatalf("abd should not be accepted")
	}
}

func TestAlternateAndStar(t *testing.T) {
	// (a|b)*
	alt := Alternate(FromCCL(ccl.FromRune('a')), FromCCL(ccl.FromRune('b')))
	star := Star(alt)
	accept := map[int]bool{star.Accept: true}
	dfa := Build(star, func(s int) bool { return accept[s] })

	for _, in := range []string{"", "a", "b", "aababb"} {
		ok, n := runDFA(dfa, in)
		if !ok || n != len(in) {
			t.Errorf("(a|b)* should accept %q in full, got accepted=%v consumed=%d", in, ok, n)
		}
	}

	ok, _ := runDFA(dfa, "ac")
	if ok {
		t.Errorf("(a|b)* should not accept %q in full", "ac")
	}
}

func TestPlusRequiresOne(t *testing.T) {
	plus := Plus(FromCCL(ccl.FromRange('0', '9')))
	accept := map[int]bool{plus.Accept: true}
	dfa := Build(plus, func(s int) bool { return accept[s] })

	ok, n := runDFA(dfa, "")
	if ok || n != 0 {
		t.Fatalf("a+ should reject the empty string")
	}
	ok, n = runDFA(dfa, "123")
	if !ok || n != 3 {
		t.Fatalf("a+ should accept \"123\" in full")
	}
}

func TestMinimizeAcceptsSameLanguage(t *testing.T) {
	// a(bc)* has redundant states when built directly by subset
	// construction; minimization should collapse equivalent ones
	// without changing the accepted language.
	bc := Concat(FromCCL(ccl.FromRune('b')), FromCCL(ccl.FromRune('c')))
	frag := Concat(FromCCL(ccl.FromRune('a')), Star(bc))
	accept := map[int]bool{frag.Accept: true}
	dfa := Build(frag, func(s int) bool { return accept[s] })
	min := Minimize(dfa)

	if len(min.States) > len(dfa.States) {
		t.Fatalf("minimized DFA should never have more states: got %d, started with %d", len(min.States), len(dfa.States))
	}

	for _, in := range []string{"a", "abc", "abcbc", "abcbcbc"} {
		ok, n := runDFA(min, in)
		if !ok || n != len(in) {
			t.Errorf("minimized a(bc)* should accept %q in full, got accepted=%v consumed=%d", in, ok, n)
		}
	}
	ok, _ := runDFA(min, "ab")
	if ok {
		t.Errorf("minimized a(bc)* should not accept %q in full", "ab")
	}
}

func TestCanonicalHashStableUnderRenumbering(t *testing.T) {
	a := Build(FromCCL(ccl.FromRune('x')), func(s int) bool { return true })
	b := Build(FromCCL(ccl.FromRune('x')), func(s int) bool { return true })
	if CanonicalHash(a) != CanonicalHash(b) {
		t.Fatalf("two DFAs built from structurally identical fragments should hash identically")
	}
}
