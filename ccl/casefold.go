package ccl

import "unicode"

// FoldMode selects how CaseFold expands a class.
type FoldMode int

const (
	// FoldNone performs no case expansion.
	FoldNone FoldMode = iota
	// FoldASCII expands only the ASCII letters a-z/A-Z.
	FoldASCII
	// FoldUnicode expands using the full Unicode case-folding tables.
	FoldUnicode
)

// CaseFold returns c expanded to include every character that
// case-folds to (or from) a character already in c, according to mode.
// Folding happens once, at regex-compile time, so the resulting DFA
// stays minimal (matching must never re-fold at run time).
func (c CCL) CaseFold(mode FoldMode) CCL {
	switch mode {
	case FoldASCII:
		return c.foldASCII()
	case FoldUnicode:
		return c.foldUnicode()
	default:
		return c
	}
}

func (c CCL) foldASCII() CCL {
	out := c
	for _, r := range c.ranges {
		lo, hi := r.Lo, r.Hi
		if lo > 'z' || hi < 'A' {
			continue
		}
		for ch := maxRune(lo, 'A'); ch <= minRune(hi, 'Z'); ch++ {
			out = out.Add(ch + ('a' - 'A'))
		}
		for ch := maxRune(lo, 'a'); ch <= minRune(hi, 'z'); ch++ {
			out = out.Add(ch - ('a' - 'A'))
		}
	}
	return out
}

func (c CCL) foldUnicode() CCL {
	out := c
	for _, r := range c.ranges {
		for ch := r.Lo; ch <= r.Hi; ch++ {
			// unicode.SimpleFold cycles through the full orbit of
			// case-equivalent runes back to ch.
			for f := unicode.SimpleFold(ch); f != ch; f = unicode.SimpleFold(f) {
				out = out.Add(f)
			}
		}
	}
	return out
}
