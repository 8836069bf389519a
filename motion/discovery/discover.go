// Package discovery implements C4: match discovery (spec.md §4.4). It finds
// correspondences between base, left and right Sections by sliding
// fixed-size windows across each file's content, fingerprinting them, and
// synchronizing the three sides' fingerprints to find shared content — a
// sure-fire binary-chop phase over large window sizes followed by a
// small-fry linear descent over small ones, with pare-down against
// already-accepted matches and a final redundant-pairwise-removal pass.
package discovery

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/kinetic-merge/kinetic-merge/motion/element"
	"github.com/kinetic-merge/kinetic-merge/motion/fingerprint"
	"github.com/kinetic-merge/kinetic-merge/motion/match"
	"github.com/kinetic-merge/kinetic-merge/motion/section"
)

// Input bundles the three sides' Sources under a common element Scheme.
type Input[E comparable] struct {
	Scheme element.Scheme[E]
	Base   *section.Sources[E]
	Left   *section.Sources[E]
	Right  *section.Sources[E]
}

// Discover returns the stabilized match.Index for in under thresholds. Each
// path is processed independently (and, since paths never share sections,
// concurrently via errgroup — spec.md §5's "optional data-parallel
// per-file fingerprinting"); the per-path results are then merged and
// passed through a final pass that drops pairwise matches made redundant by
// an AllSides match covering the same ground.
func Discover[E comparable](in Input[E], thresholds Thresholds) (*match.Index[E], error) {
	hasher := fingerprint.XXHashElement(in.Scheme)
	factory := fingerprint.NewFactory(hasher)

	paths := unionPaths(in.Base, in.Left, in.Right)
	perPath := make([][]match.Match[E], len(paths))

	g := new(errgroup.Group)
	for pi, path := range paths {
		pi, path := pi, path
		g.Go(func() error {
			ms, err := discoverForPath(in, factory, thresholds, path)
			if err != nil {
				return err
			}
			perPath[pi] = ms
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	idx := match.NewIndex[E]()
	for _, ms := range perPath {
		for _, m := range ms {
			kept, ok := admitCandidate(idx, m)
			if !ok {
				continue
			}
			idx.Add(kept)
		}
	}
	idx = stabilize(idx)
	return removeRedundantPairwise(idx), nil
}

// discoverForPath runs the full window schedule for one path, maintaining
// its own local index so a match accepted at a larger window size pares
// down the smaller windows tried afterwards for the very same path.
func discoverForPath[E comparable](in Input[E], factory *fingerprint.Factory[E], thresholds Thresholds, path string) ([]match.Match[E], error) {
	baseContent := contentFor(in.Base, path)
	leftContent := contentFor(in.Left, path)
	rightContent := contentFor(in.Right, path)

	maxPossible := maxPossibleMatchSize(len(baseContent), len(leftContent), len(rightContent))
	if maxPossible <= 0 {
		return nil, nil
	}
	sureFire := thresholds.minimumSureFireWindowSize(maxPossible)
	schedule := windowSchedule(maxPossible, sureFire, thresholds.minimumMatchSize())

	local := match.NewIndex[E]()
	var accepted []match.Match[E]
	for _, w := range schedule {
		baseC := windowsForContent(factory, baseContent, w, thresholds)
		leftC := windowsForContent(factory, leftContent, w, thresholds)
		rightC := windowsForContent(factory, rightContent, w, thresholds)
		groups := synchronize(in.Scheme, baseC, leftC, rightC)

		ambiguousOK := w >= thresholds.MinimumAmbiguousMatchSize
		for _, g := range groups {
			for _, m := range buildMatches(in, path, w, g, ambiguousOK) {
				kept, ok := admitCandidate(local, m)
				if !ok {
					continue
				}
				local.Add(kept)
				accepted = append(accepted, kept)
			}
		}
	}
	return accepted, nil
}

// buildMatches turns a syncGroup into the Matches it implies. When a side
// carries more than one occurrence of the same content, the group is
// ambiguous at this window size: below minimumAmbiguousMatchSize such a
// group is dropped outright (left for a smaller window, or the evaluator's
// ambiguity handling, to resolve); at or above it, every candidate
// combination is kept — the cartesian product across the contributing
// sides' occurrences — so the ambiguous-match-group recoverable-failure
// path downstream has something to work with (spec.md §4.4/§7).
func buildMatches[E comparable](in Input[E], path string, w int, g syncGroup[E], ambiguousOK bool) []match.Match[E] {
	totalCombos := 1
	if n := len(g.base); n > 0 {
		totalCombos *= n
	}
	if n := len(g.left); n > 0 {
		totalCombos *= n
	}
	if n := len(g.right); n > 0 {
		totalCombos *= n
	}
	if totalCombos > 1 && !ambiguousOK {
		return nil
	}

	baseIdxs, leftIdxs, rightIdxs := g.base, g.left, g.right
	if len(baseIdxs) == 0 {
		baseIdxs = []int{-1}
	}
	if len(leftIdxs) == 0 {
		leftIdxs = []int{-1}
	}
	if len(rightIdxs) == 0 {
		rightIdxs = []int{-1}
	}

	var out []match.Match[E]
	for _, bi := range baseIdxs {
		for _, li := range leftIdxs {
			for _, ri := range rightIdxs {
				if m, ok := buildOneMatch(in, path, w, bi, li, ri); ok {
					out = append(out, m)
				}
			}
		}
	}
	return out
}

// buildOneMatch builds a single Match from one occurrence per contributing
// side; a negative index means that side did not contribute to this group.
func buildOneMatch[E comparable](in Input[E], path string, w, bi, li, ri int) (match.Match[E], bool) {
	var (
		base, left, right             section.Section[E]
		haveBase, haveLeft, haveRight bool
		err                           error
	)
	if bi >= 0 {
		base, err = in.Base.Section(path, bi, w)
		if err != nil {
			return match.Match[E]{}, false
		}
		haveBase = true
	}
	if li >= 0 {
		left, err = in.Left.Section(path, li, w)
		if err != nil {
			return match.Match[E]{}, false
		}
		haveLeft = true
	}
	if ri >= 0 {
		right, err = in.Right.Section(path, ri, w)
		if err != nil {
			return match.Match[E]{}, false
		}
		haveRight = true
	}

	switch {
	case haveBase && haveLeft && haveRight:
		return match.NewAllSides(base, left, right), true
	case haveBase && haveLeft:
		return match.NewBaseAndLeft(base, left), true
	case haveBase && haveRight:
		return match.NewBaseAndRight(base, right), true
	case haveLeft && haveRight:
		return match.NewLeftAndRight(left, right), true
	default:
		return match.Match[E]{}, false
	}
}

func overlapsExisting[E comparable](idx *match.Index[E], m match.Match[E]) bool {
	for _, s := range m.Sections() {
		if idx.OverlapsAny(s) {
			return true
		}
	}
	return false
}

func contentFor[E comparable](src *section.Sources[E], path string) []E {
	if src == nil {
		return nil
	}
	f, ok := src.FilesByPath()[path]
	if !ok {
		return nil
	}
	return f.Content()
}

func unionPaths[E comparable](sides ...*section.Sources[E]) []string {
	seen := make(map[string]bool)
	for _, s := range sides {
		if s == nil {
			continue
		}
		for path := range s.FilesByPath() {
			seen[path] = true
		}
	}
	out := make([]string, 0, len(seen))
	for path := range seen {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}
