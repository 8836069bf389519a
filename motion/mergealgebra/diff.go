package mergealgebra

import (
	"github.com/kinetic-merge/kinetic-merge/motion/lcs"
	"github.com/kinetic-merge/kinetic-merge/motion/section"
)

// pairChange is one hunk of a two-way diff between base and one other side:
// base[baseStart:baseEnd) was replaced by other[otherStart:otherEnd). A pure
// deletion has otherStart==otherEnd; a pure insertion has baseStart==baseEnd.
type pairChange[E comparable] struct {
	baseStart, baseEnd   int
	otherStart, otherEnd int
}

// twoWayDiff aligns base against one other side (ignoring the third side
// entirely, by passing it as empty to the shared LCS engine) and returns
// the hunks where they disagree, plus the matched anchors linking a base
// index to the other side's index wherever they correspond. This mirrors
// the teacher's two independent O->A / O->B diffs
// (modules/diferenco/merge_new.go's newMergeInternal computing changesA and
// changesB separately before overlaying them), generalized from lines to
// Sections and from content equality to the match-index equivalence C5
// uses throughout.
func twoWayDiff[E comparable](base, other []section.Section[E], eq func(a, b section.Section[E]) bool, sz func(section.Section[E]) int) ([]pairChange[E], map[int]int) {
	var empty []section.Section[E]
	steps := lcs.Align(base, other, empty, eq, sz)

	anchors := make(map[int]int)
	var changes []pairChange[E]
	var pending *pairChange[E]
	baseCur, otherCur := 0, 0

	flush := func() {
		if pending != nil {
			changes = append(changes, *pending)
			pending = nil
		}
	}

	for _, st := range steps {
		switch st.Kind {
		case lcs.StepBaseLeft:
			flush()
			anchors[st.BaseIndex] = st.LeftIndex
			baseCur, otherCur = st.BaseIndex+1, st.LeftIndex+1
		case lcs.StepBaseOnly:
			if pending == nil {
				pending = &pairChange[E]{baseStart: baseCur, otherStart: otherCur}
			}
			baseCur = st.BaseIndex + 1
			pending.baseEnd, pending.otherEnd = baseCur, otherCur
		case lcs.StepLeftOnly:
			if pending == nil {
				pending = &pairChange[E]{baseStart: baseCur, otherStart: otherCur}
			}
			otherCur = st.LeftIndex + 1
			pending.baseEnd, pending.otherEnd = baseCur, otherCur
		}
	}
	flush()
	return changes, anchors
}

// sectionsFromChanges concatenates secs[otherStart:otherEnd) for each change
// in order, the content a side actually contributed across a merged region.
func sectionsFromChanges[E comparable](secs []section.Section[E], changes []pairChange[E]) []section.Section[E] {
	var out []section.Section[E]
	for _, c := range changes {
		out = append(out, secs[c.otherStart:c.otherEnd]...)
	}
	return out
}
