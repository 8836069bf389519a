package mergealgebra

import (
	"reflect"
	"testing"

	"github.com/kinetic-merge/kinetic-merge/motion/element"
	"github.com/kinetic-merge/kinetic-merge/motion/match"
	"github.com/kinetic-merge/kinetic-merge/motion/section"
)

func line(side section.Side, start int, s string) section.Section[string] {
	return section.New(side, "f", start, []string{s})
}

func fileOf(side section.Side, lines ...string) *section.File[string] {
	content := make([]string, len(lines))
	copy(content, lines)
	return section.NewFile(side, "f", content)
}

func TestPureEditProducesLeftEdit(t *testing.T) {
	base := fileOf(section.Base, "a", "b", "c")
	left := fileOf(section.Left, "a", "X", "c")
	right := fileOf(section.Right, "a", "b", "c")

	idx := match.NewIndex[string]()
	idx.Add(match.NewAllSides(line(section.Base, 0, "a"), line(section.Left, 0, "a"), line(section.Right, 0, "a")))
	idx.Add(match.NewAllSides(line(section.Base, 2, "c"), line(section.Left, 2, "c"), line(section.Right, 2, "c")))
	idx.Add(match.NewBaseAndRight(line(section.Base, 1, "b"), line(section.Right, 1, "b")))

	res := MergePath(element.Strings(), idx, base, left, right)
	if res.HasConflict {
		t.Fatalf("pure edit should not conflict, got moves %+v", res.Moves)
	}

	var sawEdit bool
	for _, m := range res.Moves {
		if m.Kind == LeftEdit || m.Kind == RightEdit {
			sawEdit = true
		}
	}
	if !sawEdit {
		t.Fatalf("expected exactly one side's edit to be detected, got %+v", res.Moves)
	}
}

func TestCoincidentDeletionDetected(t *testing.T) {
	base := fileOf(section.Base, "a", "b", "c")
	left := fileOf(section.Left, "a", "c")
	right := fileOf(section.Right, "a", "c")

	idx := match.NewIndex[string]()
	idx.Add(match.NewAllSides(line(section.Base, 0, "a"), line(section.Left, 0, "a"), line(section.Right, 0, "a")))
	idx.Add(match.NewAllSides(line(section.Base, 2, "c"), line(section.Left, 1, "c"), line(section.Right, 1, "c")))

	res := MergePath(element.Strings(), idx, base, left, right)
	if res.HasConflict {
		t.Fatalf("coincident deletion should not conflict, got %+v", res.Moves)
	}

	var sawDeletion bool
	for _, m := range res.Moves {
		if m.Kind == CoincidentDeletion {
			sawDeletion = true
		}
	}
	if !sawDeletion {
		t.Fatalf("expected a CoincidentDeletion move, got %+v", res.Moves)
	}
}

func TestDivergentEditConflicts(t *testing.T) {
	base := fileOf(section.Base, "a", "b", "c")
	left := fileOf(section.Left, "a", "X", "c")
	right := fileOf(section.Right, "a", "Y", "c")

	idx := match.NewIndex[string]()
	idx.Add(match.NewAllSides(line(section.Base, 0, "a"), line(section.Left, 0, "a"), line(section.Right, 0, "a")))
	idx.Add(match.NewAllSides(line(section.Base, 2, "c"), line(section.Left, 2, "c"), line(section.Right, 2, "c")))

	res := MergePath(element.Strings(), idx, base, left, right)
	if !res.HasConflict {
		t.Fatalf("expected a conflict for divergent edits, got %+v", res.Moves)
	}
}

func TestNilFileSideTreatedAsEmpty(t *testing.T) {
	left := fileOf(section.Left, "a")
	idx := match.NewIndex[string]()
	res := MergePath[string](element.Strings(), idx, nil, left, nil)
	if len(res.Moves) != 1 || res.Moves[0].Kind != LeftInsertion {
		t.Fatalf("expected a single LeftInsertion move for a left-only new file, got %+v", res.Moves)
	}
}

// The scenarios below mirror spec.md §8's end-to-end numbered merge
// scenarios. Element is int, and matches link positions with deliberately
// mismatched values (e.g. base value 2 linked to left value 3) precisely so
// a pass can't happen by accident via plain content equality, only via true
// match-index-driven correspondence.

func elemOf(side section.Side, start, v int) section.Section[int] {
	return section.New(side, "f", start, []int{v})
}

func fileOfInts(side section.Side, vs ...int) *section.File[int] {
	content := make([]int, len(vs))
	copy(content, vs)
	return section.NewFile(side, "f", content)
}

func explode(res Result[int]) []int {
	var out []int
	for _, mv := range res.Moves {
		switch mv.Kind {
		case Preservation:
			if len(mv.Left) > 0 {
				out = append(out, flatten(mv.Left)...)
			} else if len(mv.Right) > 0 {
				out = append(out, flatten(mv.Right)...)
			} else {
				out = append(out, flatten(mv.Base)...)
			}
		case LeftEdit, LeftInsertion:
			out = append(out, flatten(mv.Left)...)
		case RightEdit, RightInsertion:
			out = append(out, flatten(mv.Right)...)
		case CoincidentEdit, CoincidentInsertion:
			if len(mv.Left) > 0 {
				out = append(out, flatten(mv.Left)...)
			} else {
				out = append(out, flatten(mv.Right)...)
			}
		}
	}
	return out
}

func TestScenarioPureRightEditAgainstMatchedLeftAnchor(t *testing.T) {
	// base=[1], left=[2], right=[3]; base<->left matched (BaseAndLeft). The
	// left side makes no real change (it only renamed base's element to a
	// differently-valued but matched one); the right side's edit wins clean.
	base := fileOfInts(section.Base, 1)
	left := fileOfInts(section.Left, 2)
	right := fileOfInts(section.Right, 3)

	idx := match.NewIndex[int]()
	idx.Add(match.NewBaseAndLeft(elemOf(section.Base, 0, 1), elemOf(section.Left, 0, 2)))

	res := MergePath(element.Scheme[int]{}, idx, base, left, right)
	if res.HasConflict {
		t.Fatalf("expected a clean merge, got %+v", res.Moves)
	}
	if got, want := explode(res), []int{3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScenarioInsertionOppositeEdit(t *testing.T) {
	// base=[1], left=[2,3], right=[4]; base<->left[0] matched. Left's trailing
	// "3" is a genuine insertion, independent of right's edit of base's only
	// element; neither should be treated as conflicting with the other.
	base := fileOfInts(section.Base, 1)
	left := fileOfInts(section.Left, 2, 3)
	right := fileOfInts(section.Right, 4)

	idx := match.NewIndex[int]()
	idx.Add(match.NewBaseAndLeft(elemOf(section.Base, 0, 1), elemOf(section.Left, 0, 2)))

	res := MergePath(element.Scheme[int]{}, idx, base, left, right)
	if res.HasConflict {
		t.Fatalf("expected a clean merge, got %+v", res.Moves)
	}
	if got, want := explode(res), []int{4, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScenarioInsertionAgainstDeletedFile(t *testing.T) {
	// base=[1], left=[2,3], right=[]; base<->left[1] matched (note: index 1,
	// not 0), right deletes everything. Left's leading "2" is a genuine
	// insertion ahead of the matched anchor; right's deletion wins on the
	// matched position itself.
	base := fileOfInts(section.Base, 1)
	left := fileOfInts(section.Left, 2, 3)
	right := fileOfInts(section.Right)

	idx := match.NewIndex[int]()
	idx.Add(match.NewBaseAndLeft(elemOf(section.Base, 0, 1), elemOf(section.Left, 1, 3)))

	res := MergePath(element.Scheme[int]{}, idx, base, left, right)
	if res.HasConflict {
		t.Fatalf("expected a clean merge, got %+v", res.Moves)
	}
	if got, want := explode(res), []int{2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScenarioAllSidesMatchWithDivergentEdits(t *testing.T) {
	// base=[1,2], left=[3,4], right=[5,6]; base[1]<->left[1]<->right[1]
	// matched all-sides (values 2/4/6, deliberately distinct). base[0] is
	// edited divergently by both sides (3 vs 5): a real conflict. The
	// matched tail resolves left-biased in both reconstructions.
	base := fileOfInts(section.Base, 1, 2)
	left := fileOfInts(section.Left, 3, 4)
	right := fileOfInts(section.Right, 5, 6)

	idx := match.NewIndex[int]()
	idx.Add(match.NewAllSides(elemOf(section.Base, 1, 2), elemOf(section.Left, 1, 4), elemOf(section.Right, 1, 6)))

	res := MergePath(element.Scheme[int]{}, idx, base, left, right)
	if !res.HasConflict {
		t.Fatalf("expected a conflict, got %+v", res.Moves)
	}

	var left2, right2 []int
	for _, mv := range res.Moves {
		switch {
		case mv.Kind.IsConflict():
			left2 = append(left2, flatten(mv.Left)...)
			right2 = append(right2, flatten(mv.Right)...)
		case mv.Kind == Preservation:
			rep := flatten(mv.Left)
			if len(rep) == 0 {
				rep = flatten(mv.Right)
			}
			left2 = append(left2, rep...)
			right2 = append(right2, rep...)
		default:
			t.Fatalf("unexpected non-conflict, non-preservation move %+v", mv)
		}
	}
	if wantL := []int{3, 4}; !reflect.DeepEqual(left2, wantL) {
		t.Fatalf("left reconstruction: got %v, want %v", left2, wantL)
	}
	if wantR := []int{5, 4}; !reflect.DeepEqual(right2, wantR) {
		t.Fatalf("right reconstruction: got %v, want %v", right2, wantR)
	}
}

func TestScenarioCoincidentDeletionPlusEdit(t *testing.T) {
	// base=[1,2], left=[3], right=[4]; base[1]<->left[0] matched
	// (BaseAndLeft). Left effectively deletes base[0] and keeps the matched
	// element (renamed); right edits the whole thing. Left's contribution to
	// the overlapping region is a pure deletion (no content of its own), so
	// it doesn't compete with right's edit.
	base := fileOfInts(section.Base, 1, 2)
	left := fileOfInts(section.Left, 3)
	right := fileOfInts(section.Right, 4)

	idx := match.NewIndex[int]()
	idx.Add(match.NewBaseAndLeft(elemOf(section.Base, 1, 2), elemOf(section.Left, 0, 3)))

	res := MergePath(element.Scheme[int]{}, idx, base, left, right)
	if res.HasConflict {
		t.Fatalf("expected a clean merge, got %+v", res.Moves)
	}
	if got, want := explode(res), []int{4}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
