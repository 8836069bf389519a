package discovery

import (
	"sort"

	"github.com/kinetic-merge/kinetic-merge/motion/element"
	"github.com/kinetic-merge/kinetic-merge/motion/fingerprint"
)

// candidate is one fixed-size window of a file, tagged with its start
// offset and the PotentialMatchKey used to synchronize it against the
// other two sides.
type candidate[E comparable] struct {
	start int
	key   fingerprint.PotentialMatchKey[E]
}

// windowsForContent slides a window of size w across content, one element
// at a time, using factory's incremental Roller rather than recomputing
// each window from scratch. A window size below content's own per-file
// threshold (spec.md §4.4: L >= max(minimumMatchSize,
// floor(thresholdSizeFractionForMatching*fileSize))) yields no candidates
// at all for this side, independent of what other sides offer at the same
// w — each file gates its own eligible window sizes.
func windowsForContent[E comparable](factory *fingerprint.Factory[E], content []E, w int, thresholds Thresholds) []candidate[E] {
	if w <= 0 || w > len(content) {
		return nil
	}
	if w < thresholds.perFileThreshold(len(content)) {
		return nil
	}
	roller := factory.NewRoller(w)
	out := make([]candidate[E], 0, len(content)-w+1)
	for i, e := range content {
		h, ready := roller.Push(e)
		if !ready {
			continue
		}
		start := i - w + 1
		out = append(out, candidate[E]{
			start: start,
			key:   fingerprint.NewPotentialMatchKey(h, content[start:i+1]),
		})
	}
	return out
}

// sortCandidates orders candidates by their PotentialMatchKey, the
// precondition for the synchronized merge walk of synchronize.
func sortCandidates[E comparable](scheme element.Scheme[E], cs []candidate[E]) {
	sort.Slice(cs, func(i, j int) bool {
		return fingerprint.Compare(scheme, cs[i].key, cs[j].key) < 0
	})
}
