package match

import (
	"testing"

	"github.com/kinetic-merge/kinetic-merge/motion/section"
)

func TestIndexMatchesFor(t *testing.T) {
	base := sec(section.Base, "f", 0, []string{"x"})
	left := sec(section.Left, "f", 0, []string{"x"})
	right := sec(section.Right, "f", 0, []string{"x"})
	m := NewAllSides(base, left, right)

	idx := NewIndex[string]()
	idx.Add(m)

	found := idx.MatchesFor(base)
	if len(found) != 1 || found[0].Kind() != AllSides {
		t.Fatalf("expected to find the AllSides match for base, got %v", found)
	}
}

func TestIndexOverlapsAny(t *testing.T) {
	idx := NewIndex[string]()
	idx.Add(NewBaseAndLeft(
		sec(section.Base, "f", 2, []string{"a", "b"}),
		sec(section.Left, "f", 2, []string{"a", "b"}),
	))

	overlapping := sec(section.Base, "f", 3, []string{"b", "c"})
	if !idx.OverlapsAny(overlapping) {
		t.Fatalf("expected strict overlap to be detected")
	}

	identical := sec(section.Base, "f", 2, []string{"a", "b"})
	if idx.OverlapsAny(identical) {
		t.Fatalf("identical duplicate section should not count as a strict overlap")
	}

	disjoint := sec(section.Base, "f", 10, []string{"z"})
	if idx.OverlapsAny(disjoint) {
		t.Fatalf("disjoint section should not overlap")
	}
}

func TestIndexSubsumedBy(t *testing.T) {
	idx := NewIndex[string]()
	big := sec(section.Base, "f", 0, []string{"a", "b", "c", "d"})
	idx.Add(NewBaseAndLeft(big, sec(section.Left, "f", 0, []string{"a", "b", "c", "d"})))

	small := sec(section.Base, "f", 1, []string{"b", "c"})
	subsumers := idx.SubsumedBy(small)
	if len(subsumers) != 1 || !subsumers[0].Equal(big) {
		t.Fatalf("expected small to be subsumed by big, got %v", subsumers)
	}
}
