package match

import (
	"sort"

	"github.com/kinetic-merge/kinetic-merge/motion/section"
)

// Index is MatchesAndTheirSections (spec.md §3/§4.4): a multi-map from
// Section to the Matches it participates in, plus per-side section indices
// supporting the overlap/subsumption queries match discovery needs.
type Index[E comparable] struct {
	all       []Match[E]
	bySection map[section.Identity][]int // identity -> indices into all
	ranges    map[rangeKey][]rangedMatch // (side,path) -> sections sorted by start, for overlap queries
}

type rangeKey struct {
	side section.Side
	path string
}

type rangedMatch struct {
	start, end int
	matchIdx   int
}

// NewIndex builds an empty Index.
func NewIndex[E comparable]() *Index[E] {
	return &Index[E]{
		bySection: make(map[section.Identity][]int),
		ranges:    make(map[rangeKey][]rangedMatch),
	}
}

// MatchesFor returns every Match that contains sec (by identity).
func (idx *Index[E]) MatchesFor(sec section.Section[E]) []Match[E] {
	ids := idx.bySection[sec.Identity()]
	out := make([]Match[E], 0, len(ids))
	for _, i := range ids {
		out = append(out, idx.all[i])
	}
	return out
}

// All returns every Match currently in the index.
func (idx *Index[E]) All() []Match[E] {
	out := make([]Match[E], len(idx.all))
	copy(out, idx.all)
	return out
}

// Add inserts a Match, indexing each of its Sections.
func (idx *Index[E]) Add(m Match[E]) {
	i := len(idx.all)
	idx.all = append(idx.all, m)
	for _, s := range m.Sections() {
		id := s.Identity()
		idx.bySection[id] = append(idx.bySection[id], i)
		rk := rangeKey{side: s.Side(), path: s.Path()}
		rs := idx.ranges[rk]
		rs = append(rs, rangedMatch{start: s.Start(), end: s.End(), matchIdx: i})
		sort.Slice(rs, func(a, b int) bool { return rs[a].start < rs[b].start })
		idx.ranges[rk] = rs
	}
}

// Rebuild returns a fresh Index containing exactly the given matches; used
// whenever a pass produces a new match set rather than mutating in place
// (spec.md §5: "built by pure functional update; each phase produces a new
// value").
func Rebuild[E comparable](matches []Match[E]) *Index[E] {
	idx := NewIndex[E]()
	for _, m := range matches {
		idx.Add(m)
	}
	return idx
}

// OverlapsAny reports whether sec strictly overlaps any section already
// indexed on sec's side/path (spec.md §4.4's pare-down rule).
func (idx *Index[E]) OverlapsAny(sec section.Section[E]) bool {
	rk := rangeKey{side: sec.Side(), path: sec.Path()}
	rs := idx.ranges[rk]
	i := sort.Search(len(rs), func(i int) bool { return rs[i].end > sec.Start() })
	for ; i < len(rs) && rs[i].start < sec.End(); i++ {
		if rs[i].start == sec.Start() && rs[i].end == sec.End() {
			continue // identical duplicate, not a strict overlap
		}
		return true
	}
	return false
}

// SubsumedBy returns every already-indexed section on sec's side/path whose
// range fully contains sec's range (including sec itself, if present), used
// by the subsumption checks of §4.4.
func (idx *Index[E]) SubsumedBy(sec section.Section[E]) []section.Section[E] {
	rk := rangeKey{side: sec.Side(), path: sec.Path()}
	rs := idx.ranges[rk]
	var out []section.Section[E]
	for _, r := range rs {
		if r.start <= sec.Start() && sec.End() <= r.end {
			for _, s := range idx.all[r.matchIdx].Sections() {
				if s.Side() == sec.Side() && s.Path() == sec.Path() && s.Start() == r.start && s.End() == r.end {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

// MatchesContaining returns every already-indexed Match whose section on
// sec's side/path fully contains sec's range (including sec itself, if
// present). Unlike SubsumedBy (which returns the containing sections),
// this returns the Matches themselves, so a caller can check whether two
// different sections are both subsumed by the *same* Match — the
// distinction spec.md §4.4's redundant-pairwise-removal rule turns on.
func (idx *Index[E]) MatchesContaining(sec section.Section[E]) []Match[E] {
	rk := rangeKey{side: sec.Side(), path: sec.Path()}
	rs := idx.ranges[rk]
	var out []Match[E]
	for _, r := range rs {
		if r.start <= sec.Start() && sec.End() <= r.end {
			out = append(out, idx.all[r.matchIdx])
		}
	}
	return out
}
