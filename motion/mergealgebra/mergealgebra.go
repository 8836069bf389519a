// Package mergealgebra implements C5: the three-way merge algebra (spec.md
// §4.5). It diffs base independently against left and against right (the
// same two-diffs-overlaid-by-range shape as
// modules/diferenco/merge_new.go's newMergeInternal), under an equivalence
// derived from the match index (C4) — two sections correspond iff some
// Match links them — and classifies the resulting regions into the
// canonical moves: Preservation, CoincidentEdit, LeftEdit, RightEdit, the
// three insertion moves, the three deletion moves, and the two conflict
// moves.
package mergealgebra

import (
	"sort"

	"github.com/kinetic-merge/kinetic-merge/motion/element"
	"github.com/kinetic-merge/kinetic-merge/motion/match"
	"github.com/kinetic-merge/kinetic-merge/motion/section"
)

// Kind names a canonical move of the merge algebra.
type Kind uint8

const (
	Preservation Kind = iota
	CoincidentEdit
	LeftEdit
	RightEdit
	CoincidentInsertion
	LeftInsertion
	RightInsertion
	CoincidentDeletion
	LeftDeletion
	RightDeletion
	EditConflict
	DeletionEditConflict
)

func (k Kind) String() string {
	switch k {
	case Preservation:
		return "Preservation"
	case CoincidentEdit:
		return "CoincidentEdit"
	case LeftEdit:
		return "LeftEdit"
	case RightEdit:
		return "RightEdit"
	case CoincidentInsertion:
		return "CoincidentInsertion"
	case LeftInsertion:
		return "LeftInsertion"
	case RightInsertion:
		return "RightInsertion"
	case CoincidentDeletion:
		return "CoincidentDeletion"
	case LeftDeletion:
		return "LeftDeletion"
	case RightDeletion:
		return "RightDeletion"
	case EditConflict:
		return "EditConflict"
	case DeletionEditConflict:
		return "DeletionEditConflict"
	default:
		return "Unknown"
	}
}

// IsConflict reports whether k requires a conflict rendering rather than a
// clean rewrite.
func (k Kind) IsConflict() bool {
	return k == EditConflict || k == DeletionEditConflict
}

// Move is one region of the alignment, classified into a Kind. Base, Left
// and Right hold the (possibly empty, possibly multi-section) run of
// sections each side contributed to the region.
type Move[E comparable] struct {
	Kind  Kind
	Base  []section.Section[E]
	Left  []section.Section[E]
	Right []section.Section[E]
}

// Result is one path's full ordered sequence of Moves.
type Result[E comparable] struct {
	Moves       []Move[E]
	HasConflict bool
}

// mergedRegion is one or more overlapping base-vs-left / base-vs-right
// changes, grouped so they can be classified together.
type mergedRegion[E comparable] struct {
	baseStart, baseEnd int
	left, right        []pairChange[E]
}

// overlaps reports whether change c shares base range with region r. Two
// zero-width changes (pure insertions) only overlap at the identical point;
// otherwise two ranges overlap only when they share positive width, so two
// merely-adjacent (touching) edits stay in separate regions. This is a
// deliberately stricter rule than
// modules/diferenco/merge_new.go's findMergeRegions (which groups on
// touching, `<=`, ranges): at section granularity, touching-but-disjoint
// edits from opposite sides are routinely independent, and grouping them
// would manufacture conflicts a line-oriented two-change-list diff never
// sees (see DESIGN.md).
func overlaps[E comparable](r mergedRegion[E], c pairChange[E]) bool {
	if r.baseStart == r.baseEnd && c.baseStart == c.baseEnd {
		return r.baseStart == c.baseStart
	}
	return c.baseStart < r.baseEnd && r.baseStart < c.baseEnd
}

// mergeRegions overlays the base-vs-left and base-vs-right change lists by
// base range, merging any that overlap into a single region to be
// classified together.
func mergeRegions[E comparable](leftChanges, rightChanges []pairChange[E]) []mergedRegion[E] {
	type tagged struct {
		pairChange[E]
		isLeft bool
	}
	all := make([]tagged, 0, len(leftChanges)+len(rightChanges))
	for _, c := range leftChanges {
		all = append(all, tagged{c, true})
	}
	for _, c := range rightChanges {
		all = append(all, tagged{c, false})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].baseStart != all[j].baseStart {
			return all[i].baseStart < all[j].baseStart
		}
		return all[i].baseEnd < all[j].baseEnd
	})

	var regions []mergedRegion[E]
	for _, t := range all {
		if n := len(regions); n > 0 && overlaps(regions[n-1], t.pairChange) {
			r := &regions[n-1]
			if t.baseEnd > r.baseEnd {
				r.baseEnd = t.baseEnd
			}
			if t.isLeft {
				r.left = append(r.left, t.pairChange)
			} else {
				r.right = append(r.right, t.pairChange)
			}
			continue
		}
		r := mergedRegion[E]{baseStart: t.baseStart, baseEnd: t.baseEnd}
		if t.isLeft {
			r.left = []pairChange[E]{t.pairChange}
		} else {
			r.right = []pairChange[E]{t.pairChange}
		}
		regions = append(regions, r)
	}
	return regions
}

// MergePath aligns one path's three File views (any of which may be nil, if
// the path doesn't exist on that side) and returns its merge-algebra Result.
func MergePath[E comparable](scheme element.Scheme[E], idx *match.Index[E], base, left, right *section.File[E]) Result[E] {
	var baseSecs, leftSecs, rightSecs []section.Section[E]
	if base != nil {
		baseSecs = base.Sections()
	}
	if left != nil {
		leftSecs = left.Sections()
	}
	if right != nil {
		rightSecs = right.Sections()
	}

	eq := func(a, b section.Section[E]) bool {
		for _, m := range idx.MatchesFor(a) {
			if m.Has(b) {
				return true
			}
		}
		return false
	}
	sz := func(s section.Section[E]) int { return scheme.SizeOfAll(s.Content()) }

	leftChanges, leftAnchors := twoWayDiff(baseSecs, leftSecs, eq, sz)
	rightChanges, rightAnchors := twoWayDiff(baseSecs, rightSecs, eq, sz)
	regions := mergeRegions(leftChanges, rightChanges)

	var moves []Move[E]
	hasConflict := false
	pos := 0

	emitGap := func(from, to int) {
		for from < to {
			_, lOK := leftAnchors[from]
			_, rOK := rightAnchors[from]
			runEnd := from + 1
			for runEnd < to {
				_, l := leftAnchors[runEnd]
				_, r := rightAnchors[runEnd]
				if l != lOK || r != rOK {
					break
				}
				runEnd++
			}
			moves = append(moves, gapMove(baseSecs, leftSecs, rightSecs, leftAnchors, rightAnchors, from, runEnd))
			from = runEnd
		}
	}

	for _, r := range regions {
		emitGap(pos, r.baseStart)
		mv := regionMove(scheme, baseSecs, leftSecs, rightSecs, r)
		if mv.Kind.IsConflict() {
			hasConflict = true
		}
		moves = append(moves, mv)
		pos = r.baseEnd
	}
	emitGap(pos, len(baseSecs))

	return Result[E]{Moves: moves, HasConflict: hasConflict}
}

func regionMove[E comparable](scheme element.Scheme[E], baseSecs, leftSecs, rightSecs []section.Section[E], r mergedRegion[E]) Move[E] {
	baseRun := baseSecs[r.baseStart:r.baseEnd]
	leftRun := sectionsFromChanges(leftSecs, r.left)
	rightRun := sectionsFromChanges(rightSecs, r.right)

	kind := classifyContent(scheme, len(r.left) > 0, len(r.right) > 0, flatten(baseRun), flatten(leftRun), flatten(rightRun))
	return Move[E]{Kind: kind, Base: baseRun, Left: leftRun, Right: rightRun}
}

// gapMove builds the Preservation move for a contiguous run of base indices
// [from,to) that neither change list touched: every index in it is anchored
// by a match on both sides, since twoWayDiff puts every base index it does
// not anchor into one of its changes.
func gapMove[E comparable](baseSecs, leftSecs, rightSecs []section.Section[E], leftAnchors, rightAnchors map[int]int, from, to int) Move[E] {
	mv := Move[E]{Kind: Preservation, Base: baseSecs[from:to]}
	if li, ok := leftAnchors[from]; ok {
		if hi, ok2 := leftAnchors[to-1]; ok2 {
			mv.Left = leftSecs[li : hi+1]
		}
	}
	if ri, ok := rightAnchors[from]; ok {
		if hi, ok2 := rightAnchors[to-1]; ok2 {
			mv.Right = rightSecs[ri : hi+1]
		}
	}
	return mv
}

// Merge runs MergePath over the union of paths present on any of the three
// sides.
func Merge[E comparable](scheme element.Scheme[E], idx *match.Index[E], base, left, right map[string]*section.File[E]) map[string]Result[E] {
	seen := make(map[string]bool)
	for _, m := range []map[string]*section.File[E]{base, left, right} {
		for path := range m {
			seen[path] = true
		}
	}
	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	out := make(map[string]Result[E], len(paths))
	for _, path := range paths {
		out[path] = MergePath(scheme, idx, base[path], left[path], right[path])
	}
	return out
}

func flatten[E comparable](secs []section.Section[E]) []E {
	var out []E
	for _, s := range secs {
		out = append(out, s.Content()...)
	}
	return out
}
