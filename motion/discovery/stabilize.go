package discovery

import (
	"sort"

	"github.com/kinetic-merge/kinetic-merge/motion/match"
	"github.com/kinetic-merge/kinetic-merge/motion/section"
)

// stabilize implements spec.md §4.4's stabilization loop. A pairwise match
// admitted in one path's pass can be "bitten into" by an AllSides match
// from a different path's pass (or from a pairwise match downgraded by
// admitCandidate) once the per-path results are merged: an AllSides section
// sitting inside the pairwise match's sections on both sides at once says
// more than the pairwise match did for that stretch. Rather than let the
// two silently overlap, the pairwise match is split around each such bite,
// producing up to two surviving pairwise fragments per bite. Fragments are
// pared down like any other candidate and the loop repeats against the
// fragments until a pass produces none.
func stabilize[E comparable](idx *match.Index[E]) *match.Index[E] {
	for {
		allSides, pairwise := splitByKind(idx)
		out := match.NewIndex[E]()
		for _, m := range allSides {
			out.Add(m)
		}

		produced := false
		for _, p := range pairwise {
			fragments, bitten := fragmentAroundBites(p, allSides)
			if !bitten {
				out.Add(p)
				continue
			}
			produced = true
			for _, f := range fragments {
				if overlapsExisting(out, f) {
					continue
				}
				out.Add(f)
			}
		}

		idx = out
		if !produced {
			return idx
		}
	}
}

func splitByKind[E comparable](idx *match.Index[E]) (allSides, pairwise []match.Match[E]) {
	for _, m := range idx.All() {
		if m.Kind() == match.AllSides {
			allSides = append(allSides, m)
		} else {
			pairwise = append(pairwise, m)
		}
	}
	return allSides, pairwise
}

// fragmentAroundBites finds every AllSides match in allSides that bites
// into p - whose sections on p's two sides sit inside p's corresponding
// sections at the same relative offset on both sides simultaneously - and
// returns the pairwise fragments left over once those bites are eaten away.
// bitten is false (fragments nil) when nothing bites into p, in which case
// p is unchanged.
func fragmentAroundBites[E comparable](p match.Match[E], allSides []match.Match[E]) ([]match.Match[E], bool) {
	sideA, sideB, secA, secB, ok := pairwiseSides(p)
	if !ok {
		return nil, false
	}
	length := secA.Length()
	if length == 0 || length != secB.Length() {
		return nil, false
	}

	type biteRange struct{ lo, hi int }
	var bites []biteRange
	for _, m := range allSides {
		mA, _ := m.SectionOn(sideA)
		mB, _ := m.SectionOn(sideB)
		if !secA.Contains(mA) || !secB.Contains(mB) {
			continue
		}
		offA := mA.Start() - secA.Start()
		offB := mB.Start() - secB.Start()
		if offA != offB || mA.Length() != mB.Length() {
			continue
		}
		bites = append(bites, biteRange{lo: offA, hi: offA + mA.Length()})
	}
	if len(bites) == 0 {
		return nil, false
	}
	sort.Slice(bites, func(i, j int) bool { return bites[i].lo < bites[j].lo })

	var fragments []match.Match[E]
	cursor := 0
	for _, b := range bites {
		if b.lo > cursor {
			fragments = append(fragments, buildFragment(p, secA, secB, cursor, b.lo))
		}
		if b.hi > cursor {
			cursor = b.hi
		}
	}
	if cursor < length {
		fragments = append(fragments, buildFragment(p, secA, secB, cursor, length))
	}
	return fragments, true
}

// pairwiseSides reports the two sides a pairwise match spans, and its
// sections on them, in a fixed (a, b) order per Kind.
func pairwiseSides[E comparable](m match.Match[E]) (sideA, sideB section.Side, secA, secB section.Section[E], ok bool) {
	switch m.Kind() {
	case match.BaseAndLeft:
		a, _ := m.Base()
		b, _ := m.Left()
		return section.Base, section.Left, a, b, true
	case match.BaseAndRight:
		a, _ := m.Base()
		b, _ := m.Right()
		return section.Base, section.Right, a, b, true
	case match.LeftAndRight:
		a, _ := m.Left()
		b, _ := m.Right()
		return section.Left, section.Right, a, b, true
	default:
		return 0, 0, section.Section[E]{}, section.Section[E]{}, false
	}
}

// buildFragment carves the relative range [lo, hi) out of p's two sections,
// simultaneously, and rebuilds a match of p's own kind over the result.
func buildFragment[E comparable](p match.Match[E], secA, secB section.Section[E], lo, hi int) match.Match[E] {
	fragA := section.New(secA.Side(), secA.Path(), secA.Start()+lo, secA.Content()[lo:hi])
	fragB := section.New(secB.Side(), secB.Path(), secB.Start()+lo, secB.Content()[lo:hi])
	switch p.Kind() {
	case match.BaseAndLeft:
		return match.NewBaseAndLeft(fragA, fragB)
	case match.BaseAndRight:
		return match.NewBaseAndRight(fragA, fragB)
	default:
		return match.NewLeftAndRight(fragA, fragB)
	}
}
