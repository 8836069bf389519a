package rewrite

import (
	"reflect"
	"testing"

	"github.com/kinetic-merge/kinetic-merge/motion/mergealgebra"
	"github.com/kinetic-merge/kinetic-merge/motion/section"
)

func sec(side section.Side, start int, content []string) section.Section[string] {
	return section.New(side, "f", start, content)
}

func TestExplodeCleanMergeConcatenatesResolvedContent(t *testing.T) {
	res := mergealgebra.Result[string]{
		Moves: []mergealgebra.Move[string]{
			{Kind: mergealgebra.Preservation, Base: []section.Section[string]{sec(section.Base, 0, []string{"a"})}},
			{Kind: mergealgebra.LeftEdit, Left: []section.Section[string]{sec(section.Left, 1, []string{"X"})}},
			{Kind: mergealgebra.Preservation, Base: []section.Section[string]{sec(section.Base, 2, []string{"c"})}},
		},
	}

	exp := Explode(res)
	if exp.HasConflict {
		t.Fatalf("did not expect a conflict")
	}
	want := []string{"a", "X", "c"}
	if !reflect.DeepEqual(exp.Elements, want) {
		t.Fatalf("got %v, want %v", exp.Elements, want)
	}
	if len(exp.Segments) != 1 {
		t.Fatalf("expected adjacent resolved moves to merge into one segment, got %d", len(exp.Segments))
	}
}

func TestExplodeCollapsesAdjacentConflicts(t *testing.T) {
	res := mergealgebra.Result[string]{
		Moves: []mergealgebra.Move[string]{
			{
				Kind: mergealgebra.EditConflict,
				Base: []section.Section[string]{sec(section.Base, 0, []string{"o1"})},
				Left: []section.Section[string]{sec(section.Left, 0, []string{"l1"})},
				Right: []section.Section[string]{sec(section.Right, 0, []string{"r1"})},
			},
			{
				Kind: mergealgebra.EditConflict,
				Base: []section.Section[string]{sec(section.Base, 1, []string{"o2"})},
				Left: []section.Section[string]{sec(section.Left, 1, []string{"l2"})},
				Right: []section.Section[string]{sec(section.Right, 1, []string{"r2"})},
			},
		},
	}

	exp := Explode(res)
	if !exp.HasConflict {
		t.Fatalf("expected a conflict")
	}
	if len(exp.Segments) != 1 {
		t.Fatalf("expected the two adjacent conflicts to collapse into one segment, got %d", len(exp.Segments))
	}
	want := []string{"o1", "o2"}
	if !reflect.DeepEqual(exp.Segments[0].Conflict.Base, want) {
		t.Fatalf("got base %v, want %v", exp.Segments[0].Conflict.Base, want)
	}
}

func TestExplodeSkipsSuppressedDeletion(t *testing.T) {
	res := mergealgebra.Result[string]{
		Moves: []mergealgebra.Move[string]{
			{Kind: mergealgebra.LeftDeletion, Base: []section.Section[string]{sec(section.Base, 0, []string{"gone"})}},
			{Kind: mergealgebra.Preservation, Base: []section.Section[string]{sec(section.Base, 1, []string{"kept"})}},
		},
	}
	exp := Explode(res)
	want := []string{"kept"}
	if !reflect.DeepEqual(exp.Elements, want) {
		t.Fatalf("got %v, want %v", exp.Elements, want)
	}
}
