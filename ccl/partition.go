package ccl

import "sort"

// Partition splits a collection of (possibly overlapping) classes into
// pairwise-disjoint single-range blocks, cut at every range boundary of
// the inputs, such that every input class is a union of some subset of
// the blocks. Subset construction
// uses this on the edge labels leaving an NFA subset: each resulting
// block becomes a single DFA transition.
func Partition(classes []CCL) []CCL {
	type boundary struct {
		at    rune
		delta int // +1 at a Lo, -1 just after a Hi
	}
	var bs []boundary
	for _, c := range classes {
		for _, r := range c.ranges {
			bs = append(bs, boundary{r.Lo, 1})
			bs = append(bs, boundary{r.Hi + 1, -1})
		}
	}
	if len(bs) == 0 {
		return nil
	}
	sort.Slice(bs, func(i, j int) bool { return bs[i].at < bs[j].at })

	var out []CCL
	depth := 0
	var blockStart rune
	haveStart := false
	for i := 0; i < len(bs); {
		at := bs[i].at
		if haveStart && depth > 0 && at > blockStart {
			out = append(out, FromRange(blockStart, at-1))
		}
		for i < len(bs) && bs[i].at == at {
			depth += bs[i].delta
			i++
		}
		if depth > 0 {
			blockStart = at
			haveStart = true
		} else {
			haveStart = false
		}
	}
	return out
}
