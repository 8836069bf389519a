package section

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
)

// File is the ordered sequence of Sections covering one path's content on
// one side, contiguously: no gaps, no overlaps (spec.md §3 File invariant).
type File[E comparable] struct {
	side     Side
	path     string
	content  []E
	sections []Section[E]
	index    *redblacktree.Tree // start offset -> index into sections, binary-searchable per §4.1
}

// NewFile builds the trivial single-section File covering content in full.
func NewFile[E comparable](side Side, path string, content []E) *File[E] {
	f := &File[E]{side: side, path: path, content: content}
	if len(content) > 0 {
		f.sections = []Section[E]{New(side, path, 0, content)}
	}
	f.reindex()
	return f
}

// newFromSections builds a File from a pre-partitioned, ordered, gapless
// section list (used by filesByPathUtilising and by tests).
func newFromSections[E comparable](side Side, path string, content []E, sections []Section[E]) *File[E] {
	f := &File[E]{side: side, path: path, content: content, sections: sections}
	f.reindex()
	return f
}

func (f *File[E]) reindex() {
	f.index = redblacktree.NewWith(utils.IntComparator)
	for i, s := range f.sections {
		f.index.Put(s.Start(), i)
	}
}

func (f *File[E]) Side() Side       { return f.side }
func (f *File[E]) Path() string     { return f.path }
func (f *File[E]) Content() []E     { return f.content }
func (f *File[E]) Size() int        { return len(f.content) }
func (f *File[E]) Sections() []Section[E] {
	out := make([]Section[E], len(f.sections))
	copy(out, f.sections)
	return out
}

// SectionAt returns the Section whose range contains offset, using the
// red-black-tree index for O(log n) lookup ("binary-searchable index by
// start offset", spec.md §4.1).
func (f *File[E]) SectionAt(offset int) (Section[E], bool) {
	node, found := f.index.Floor(offset)
	if !found {
		var zero Section[E]
		return zero, false
	}
	idx := node.Value.(int)
	s := f.sections[idx]
	if offset >= s.End() {
		var zero Section[E]
		return zero, false
	}
	return s, true
}

// Reconstruct concatenates the content of every Section in order; this must
// equal the original element sequence (the Reconstruction testable property
// of spec.md §8).
func (f *File[E]) Reconstruct() []E {
	out := make([]E, 0, len(f.content))
	for _, s := range f.sections {
		out = append(out, s.Content()...)
	}
	return out
}

// validatePartition checks the File invariant: sections are contiguous,
// ordered, non-overlapping and together cover exactly [0, len(content)).
func validatePartition[E comparable](content []E, sections []Section[E]) error {
	pos := 0
	for i, s := range sections {
		if s.Start() != pos {
			return fmt.Errorf("section %d starts at %d, expected %d (gap or overlap)", i, s.Start(), pos)
		}
		if s.Length() < 0 {
			return fmt.Errorf("section %d has negative length", i)
		}
		pos = s.End()
	}
	if pos != len(content) {
		return fmt.Errorf("sections cover [0,%d), expected [0,%d)", pos, len(content))
	}
	return nil
}

// sortSections orders sections by start offset, the precondition for
// validatePartition and for SectionAt's tree index.
func sortSections[E comparable](sections []Section[E]) {
	sort.Slice(sections, func(i, j int) bool { return sections[i].Start() < sections[j].Start() })
}
