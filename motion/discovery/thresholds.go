package discovery

import "sort"

// Thresholds bundles the configuration spec.md §4.4/§6 names:
// minimumMatchSize, thresholdSizeFractionForMatching and
// minimumAmbiguousMatchSize, plus the quantities derived from them.
type Thresholds struct {
	MinimumMatchSize                 int
	ThresholdSizeFractionForMatching float64
	MinimumAmbiguousMatchSize        int
}

func (t Thresholds) minimumMatchSize() int {
	if t.MinimumMatchSize <= 0 {
		return 1
	}
	return t.MinimumMatchSize
}

// fraction is ThresholdSizeFractionForMatching, defaulted to 0.5 when left
// outside (0,1], the same default minimumSureFireWindowSize and
// perFileThreshold both fall back to.
func (t Thresholds) fraction() float64 {
	if t.ThresholdSizeFractionForMatching <= 0 || t.ThresholdSizeFractionForMatching > 1 {
		return 0.5
	}
	return t.ThresholdSizeFractionForMatching
}

// minimumSureFireWindowSize is the window size above which a fingerprint
// match is accepted without further corroboration ("sure-fire"): a fraction
// of the largest window size that could possibly match across all three
// files, per spec.md §4.4.
func (t Thresholds) minimumSureFireWindowSize(maxPossible int) int {
	w := int(float64(maxPossible) * t.fraction())
	if w < t.minimumMatchSize() {
		w = t.minimumMatchSize()
	}
	if w > maxPossible {
		w = maxPossible
	}
	return w
}

// perFileThreshold is spec.md §4.4's per-file threshold: a section of
// length L in a file of size fileSize is eligible only if
// L >= max(minimumMatchSize, floor(thresholdSizeFractionForMatching*fileSize)).
func (t Thresholds) perFileThreshold(fileSize int) int {
	req := int(t.fraction() * float64(fileSize))
	if req < t.minimumMatchSize() {
		req = t.minimumMatchSize()
	}
	return req
}

// maxPossibleMatchSize is spec.md §4.4's maxPossibleMatchSize: the
// second-largest file size across all sides, since a match spans at least
// two sides and the smaller of any two sides' sizes bounds how large their
// shared match could possibly be.
func maxPossibleMatchSize(sizes ...int) int {
	var valid []int
	for _, s := range sizes {
		if s > 0 {
			valid = append(valid, s)
		}
	}
	if len(valid) < 2 {
		return 0
	}
	sort.Sort(sort.Reverse(sort.IntSlice(valid)))
	return valid[1]
}

// windowSchedule lays out the window sizes to try, largest first: a binary
// chop from maxPossible down to the sure-fire threshold (few candidates,
// each found quickly by halving), then a linear descent from just below the
// threshold down to the configured minimum (the "small-fry" phase, where
// matches are common enough that skipping sizes would miss real ones).
func windowSchedule(maxPossible, sureFireThreshold, minimum int) []int {
	if maxPossible <= 0 || minimum <= 0 || maxPossible < minimum {
		return nil
	}
	if sureFireThreshold < minimum {
		sureFireThreshold = minimum
	}
	if sureFireThreshold > maxPossible {
		sureFireThreshold = maxPossible
	}

	seen := make(map[int]bool)
	var sizes []int
	add := func(w int) {
		if w >= minimum && w <= maxPossible && !seen[w] {
			seen[w] = true
			sizes = append(sizes, w)
		}
	}

	for w := maxPossible; w > sureFireThreshold; w = w / 2 {
		add(w)
	}
	add(sureFireThreshold)
	for w := sureFireThreshold - 1; w >= minimum; w-- {
		add(w)
	}
	return sizes
}
