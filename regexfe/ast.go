// Package regexfe implements the regex front end: it parses the
// regex surface syntax (alternation, concatenation, Kleene star,
// `+`, `?`, grouping, character classes with ranges and negation,
// the escape-sequence table, and `.`) into an AST, then compiles the
// AST directly into a Thompson-construction NFA fragment via the
// automata package.
package regexfe

import "github.com/shadowCow/lalrgen/ccl"

// Node is the regex AST marker interface: a small closed node set a
// switch can exhaustively handle. No capture groups and no anchors;
// terminal patterns never need them.
type Node interface {
	isNode()
}

// Literal matches exactly one rune.
type Literal struct {
	R rune
}

func (Literal) isNode() {}

// Class matches any rune in C (already negated/case-folded if the
// surface syntax asked for that).
type Class struct {
	C ccl.CCL
}

func (Class) isNode() {}

// AnyChar is `.`: any character except newline, by convention.
type AnyChar struct{}

func (AnyChar) isNode() {}

// Concat matches its elements in sequence.
type Concat []Node

func (Concat) isNode() {}

// Alternate matches any one of its elements.
type Alternate []Node

func (Alternate) isNode() {}

// Star is `X*`.
type Star struct{ Inner Node }

func (Star) isNode() {}

// Plus is `X+`.
type Plus struct{ Inner Node }

func (Plus) isNode() {}

// Optional is `X?`.
type Optional struct{ Inner Node }

func (Optional) isNode() {}
