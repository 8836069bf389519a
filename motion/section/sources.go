package section

import (
	"fmt"

	"github.com/kinetic-merge/kinetic-merge/motion/element"
)

// Sources is the per-side view of spec.md §6's Core API: filesByPath,
// section(path, start, length), pathFor(section) and
// filesByPathUtilising(mandatorySections, candidateGapChunks?).
type Sources[E comparable] struct {
	side        Side
	scheme      element.Scheme[E]
	filesByPath map[string]*File[E]
}

// New builds a Sources from raw per-path content. Each path starts out as a
// single trivial Section; callers refine that via FilesByPathUtilising once
// match discovery has produced mandatory sections.
func New[E comparable](side Side, scheme element.Scheme[E], contentByPath map[string][]E) *Sources[E] {
	files := make(map[string]*File[E], len(contentByPath))
	for path, content := range contentByPath {
		files[path] = NewFile(side, path, content)
	}
	return &Sources[E]{side: side, scheme: scheme, filesByPath: files}
}

func (s *Sources[E]) Side() Side                    { return s.side }
func (s *Sources[E]) Scheme() element.Scheme[E]      { return s.scheme }
func (s *Sources[E]) FilesByPath() map[string]*File[E] { return s.filesByPath }

// Section constructs a Section over path's content for [start, start+length).
func (s *Sources[E]) Section(path string, start, length int) (Section[E], error) {
	f, ok := s.filesByPath[path]
	if !ok {
		return Section[E]{}, fmt.Errorf("section: no such path %q on side %s", path, s.side)
	}
	if start < 0 || length < 0 || start+length > len(f.content) {
		return Section[E]{}, fmt.Errorf("section: range [%d,%d) out of bounds for path %q (size %d)", start, start+length, path, len(f.content))
	}
	return New(s.side, path, start, f.content[start:start+length]), nil
}

// PathFor returns the path a Section belongs to, validating it is actually
// one of this side's sections (same side, in-range).
func (s *Sources[E]) PathFor(sec Section[E]) (string, error) {
	if sec.Side() != s.side {
		return "", fmt.Errorf("pathFor: section belongs to side %s, not %s", sec.Side(), s.side)
	}
	f, ok := s.filesByPath[sec.Path()]
	if !ok {
		return "", fmt.Errorf("pathFor: no such path %q", sec.Path())
	}
	if sec.Start() < 0 || sec.End() > len(f.content) {
		return "", fmt.Errorf("pathFor: section out of range for path %q", sec.Path())
	}
	return sec.Path(), nil
}

// FilesByPathUtilising produces a sectioning in which every mandatory
// section is present intact, and the remainder of each file is covered by
// gap-filler sections (spec.md §4.1). When candidateGapChunks supplies
// chunks for a path, each gap is searched for exactly one chunk whose
// content occurs inside it (first match wins); on success the gap is split
// into up to three sections: prefix, the matched chunk, suffix.
func (s *Sources[E]) FilesByPathUtilising(
	mandatorySections []Section[E],
	candidateGapChunks map[string][][]E,
) (map[string]*File[E], error) {
	byPath := make(map[string][]Section[E], len(s.filesByPath))
	for _, sec := range mandatorySections {
		if sec.Side() != s.side {
			continue
		}
		byPath[sec.Path()] = append(byPath[sec.Path()], sec)
	}

	out := make(map[string]*File[E], len(s.filesByPath))
	for path, f := range s.filesByPath {
		mandatory := byPath[path]
		sortSections(mandatory)
		built, err := buildPartition(s.side, path, f.content, mandatory, candidateGapChunks[path], s.scheme)
		if err != nil {
			return nil, fmt.Errorf("filesByPathUtilising: path %q: %w", path, err)
		}
		out[path] = built
	}
	return out, nil
}

// buildPartition fills the gaps around an ordered, non-overlapping list of
// mandatory sections with gap-filler sections, optionally splitting a gap
// around one matching candidate chunk.
func buildPartition[E comparable](
	side Side,
	path string,
	content []E,
	mandatory []Section[E],
	candidateChunks [][]E,
	scheme element.Scheme[E],
) (*File[E], error) {
	var result []Section[E]
	pos := 0
	appendGap := func(lo, hi int) {
		if lo >= hi {
			return
		}
		result = append(result, gapSections(side, path, content, lo, hi, candidateChunks, scheme)...)
	}
	for _, m := range mandatory {
		if m.Start() < pos {
			return nil, fmt.Errorf("mandatory sections overlap at offset %d", m.Start())
		}
		appendGap(pos, m.Start())
		result = append(result, m)
		pos = m.End()
	}
	appendGap(pos, len(content))

	if err := validatePartition(content, result); err != nil {
		return nil, err
	}
	return newFromSections(side, path, content, result), nil
}

// gapSections fills [lo,hi) of content, trying at most one candidate chunk
// and at most its first occurrence (spec.md §4.1: "does not try multiple
// chunks per gap nor multiple occurrences of the same chunk").
func gapSections[E comparable](
	side Side,
	path string,
	content []E,
	lo, hi int,
	candidateChunks [][]E,
	scheme element.Scheme[E],
) []Section[E] {
	gap := content[lo:hi]
	for _, chunk := range candidateChunks {
		if len(chunk) == 0 || len(chunk) > len(gap) {
			continue
		}
		if at := indexOfSubslice(gap, chunk, scheme); at >= 0 {
			var out []Section[E]
			if at > 0 {
				out = append(out, New(side, path, lo, gap[:at]))
			}
			matchStart := lo + at
			out = append(out, New(side, path, matchStart, gap[at:at+len(chunk)]))
			if at+len(chunk) < len(gap) {
				out = append(out, New(side, path, matchStart+len(chunk), gap[at+len(chunk):]))
			}
			return out
		}
	}
	return []Section[E]{New(side, path, lo, gap)}
}

// indexOfSubslice returns the offset of the first occurrence of needle
// within haystack under the scheme's equivalence, or -1. Mirrors
// diferenco.go's slicesIndex, generalized to an arbitrary equivalence.
func indexOfSubslice[E comparable](haystack, needle []E, scheme element.Scheme[E]) int {
	last := len(haystack) - len(needle)
	for i := 0; i <= last; i++ {
		if subsliceEqualAt(haystack, needle, i, scheme) {
			return i
		}
	}
	return -1
}

func subsliceEqualAt[E comparable](haystack, needle []E, at int, scheme element.Scheme[E]) bool {
	for j, e := range needle {
		if !scheme.Equal(haystack[at+j], e) {
			return false
		}
	}
	return true
}
