package discovery

import (
	"github.com/kinetic-merge/kinetic-merge/motion/match"
	"github.com/kinetic-merge/kinetic-merge/motion/section"
)

// admitCandidate applies pare-down-or-suppress (spec.md §4.4) to a single
// candidate against the matches already accepted in idx: a non-AllSides
// candidate is rejected outright if any of its sections strictly overlaps
// an already-accepted section. An AllSides candidate is judged by how many
// of its sides strictly overlap an already-accepted section: on two or more
// sides, it is dropped; on exactly one side, it is downgraded to the
// pairwise match over the two remaining sides rather than lost entirely; on
// no side, it is kept as-is. A side counts the same whether it is contained
// in an accepted section or only partly overlaps one; subsumption is not
// checked separately.
func admitCandidate[E comparable](idx *match.Index[E], m match.Match[E]) (match.Match[E], bool) {
	if m.Kind() != match.AllSides {
		if overlapsExisting(idx, m) {
			return match.Match[E]{}, false
		}
		return m, true
	}

	baseSec, _ := m.Base()
	leftSec, _ := m.Left()
	rightSec, _ := m.Right()
	baseOverlap := idx.OverlapsAny(baseSec)
	leftOverlap := idx.OverlapsAny(leftSec)
	rightOverlap := idx.OverlapsAny(rightSec)

	overlapped := 0
	for _, b := range []bool{baseOverlap, leftOverlap, rightOverlap} {
		if b {
			overlapped++
		}
	}

	switch {
	case overlapped == 0:
		return m, true
	case overlapped == 1:
		switch {
		case baseOverlap:
			return match.NewLeftAndRight(leftSec, rightSec), true
		case leftOverlap:
			return match.NewBaseAndRight(baseSec, rightSec), true
		default: // rightOverlap
			return match.NewBaseAndLeft(baseSec, leftSec), true
		}
	default:
		return match.Match[E]{}, false
	}
}

// removeRedundantPairwise drops any BaseAndLeft/BaseAndRight/LeftAndRight
// match both of whose sections are subsumed by the *same* AllSides match
// (spec.md §3/§4.4's "redundant pairwise removal"): a pairwise
// correspondence wholly inside a section three sides already agree on says
// nothing that AllSides match hasn't already said. A pairwise match whose
// two sections happen to fall under two *different* AllSides matches is a
// genuine correspondence and is kept.
func removeRedundantPairwise[E comparable](idx *match.Index[E]) *match.Index[E] {
	var allSides, pairwise []match.Match[E]
	for _, m := range idx.All() {
		if m.Kind() == match.AllSides {
			allSides = append(allSides, m)
		} else {
			pairwise = append(pairwise, m)
		}
	}

	out := match.NewIndex[E]()
	for _, m := range allSides {
		out.Add(m)
	}
	for _, m := range pairwise {
		if redundantAgainstSameAllSides(out, m) {
			continue
		}
		out.Add(m)
	}
	return out
}

// redundantAgainstSameAllSides reports whether some single AllSides match
// in idx fully contains both of m's sections. AllSides matches are
// identified by the identities of all three of their sections, since
// ambiguous AllSides matches may share an identical base section.
func redundantAgainstSameAllSides[E comparable](idx *match.Index[E], m match.Match[E]) bool {
	secs := m.Sections()
	if len(secs) != 2 {
		return false
	}
	first := allSidesContaining(idx, secs[0])
	second := allSidesContaining(idx, secs[1])
	for id := range first {
		if second[id] {
			return true
		}
	}
	return false
}

// allSidesContaining returns the identity (keyed by its base, left and
// right sections) of every AllSides match in idx whose corresponding
// section on sec's side/path fully contains sec.
func allSidesContaining[E comparable](idx *match.Index[E], sec section.Section[E]) map[[3]section.Identity]bool {
	out := make(map[[3]section.Identity]bool)
	for _, m := range idx.MatchesContaining(sec) {
		if m.Kind() != match.AllSides {
			continue
		}
		baseSec, _ := m.Base()
		leftSec, _ := m.Left()
		rightSec, _ := m.Right()
		out[[3]section.Identity{baseSec.Identity(), leftSec.Identity(), rightSec.Identity()}] = true
	}
	return out
}
