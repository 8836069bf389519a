package discovery

import (
	"github.com/kinetic-merge/kinetic-merge/motion/element"
	"github.com/kinetic-merge/kinetic-merge/motion/fingerprint"
)

// syncGroup is every occurrence, on every side, of windows sharing one
// PotentialMatchKey, found by the synchronized merge walk (spec.md §4.4:
// "fingerprint synchronization via PotentialMatchKey").
type syncGroup[E comparable] struct {
	key   fingerprint.PotentialMatchKey[E]
	base  []int
	left  []int
	right []int
}

// synchronize walks three PotentialMatchKey-sorted candidate lists in
// lockstep, the same shape as a three-way merge over sorted streams: at
// each step it advances past the smallest current key on every side that
// carries it, grouping same-content occurrences together. Groups with fewer
// than two contributing sides are dropped; they describe content with no
// cross-side correspondence at this window size.
func synchronize[E comparable](scheme element.Scheme[E], base, left, right []candidate[E]) []syncGroup[E] {
	sortCandidates(scheme, base)
	sortCandidates(scheme, left)
	sortCandidates(scheme, right)

	var groups []syncGroup[E]
	i, j, k := 0, 0, 0
	for i < len(base) || j < len(left) || k < len(right) {
		cur, ok := minKey(scheme, base, left, right, i, j, k)
		if !ok {
			break
		}

		var bs, ls, rs []int
		for i < len(base) && fingerprint.Compare(scheme, base[i].key, cur) == 0 {
			if fingerprint.SameContent(scheme, base[i].key, cur) {
				bs = append(bs, base[i].start)
			}
			i++
		}
		for j < len(left) && fingerprint.Compare(scheme, left[j].key, cur) == 0 {
			if fingerprint.SameContent(scheme, left[j].key, cur) {
				ls = append(ls, left[j].start)
			}
			j++
		}
		for k < len(right) && fingerprint.Compare(scheme, right[k].key, cur) == 0 {
			if fingerprint.SameContent(scheme, right[k].key, cur) {
				rs = append(rs, right[k].start)
			}
			k++
		}

		sides := 0
		if len(bs) > 0 {
			sides++
		}
		if len(ls) > 0 {
			sides++
		}
		if len(rs) > 0 {
			sides++
		}
		if sides >= 2 {
			groups = append(groups, syncGroup[E]{key: cur, base: bs, left: ls, right: rs})
		}
	}
	return groups
}

func minKey[E comparable](scheme element.Scheme[E], base, left, right []candidate[E], i, j, k int) (fingerprint.PotentialMatchKey[E], bool) {
	var best fingerprint.PotentialMatchKey[E]
	found := false
	consider := func(c []candidate[E], idx int) {
		if idx >= len(c) {
			return
		}
		if !found || fingerprint.Compare(scheme, c[idx].key, best) < 0 {
			best = c[idx].key
			found = true
		}
	}
	consider(base, i)
	consider(left, j)
	consider(right, k)
	return best, found
}
