package lcs

import "testing"

func stringEq(a, b string) bool { return a == b }

func unitSize(string) int { return 1 }

func countOf(cs []Contribution, want Contribution) int {
	n := 0
	for _, c := range cs {
		if c == want {
			n++
		}
	}
	return n
}

func TestThreeWayPureEdit(t *testing.T) {
	base := []string{"a", "b", "c"}
	left := []string{"a", "x", "c"}
	right := []string{"a", "b", "c"}

	res := ThreeWay(base, left, right, stringEq, unitSize)

	if res.Base[0] != Common || res.Base[2] != Common {
		t.Fatalf("expected base ends to be Common, got %v", res.Base)
	}
	if res.Base[1] != CommonToBaseAndRightOnly {
		t.Fatalf("expected base[1] to be shared with right only, got %v", res.Base[1])
	}
	if res.Left[1] != Difference {
		t.Fatalf("expected left's edited element to be Difference, got %v", res.Left[1])
	}
	if res.Right[1] != CommonToBaseAndRightOnly {
		t.Fatalf("expected right's unedited element to be shared with base only, got %v", res.Right[1])
	}
}

func TestThreeWayCoincidentInsertion(t *testing.T) {
	base := []string{"a", "c"}
	left := []string{"a", "b", "c"}
	right := []string{"a", "b", "c"}

	res := ThreeWay(base, left, right, stringEq, unitSize)

	if countOf(res.Left, CommonToLeftAndRightOnly) != 1 {
		t.Fatalf("expected the coincidentally inserted element to be tagged CommonToLeftAndRightOnly, got %v", res.Left)
	}
	if countOf(res.Right, CommonToLeftAndRightOnly) != 1 {
		t.Fatalf("expected right's coincident insertion tag, got %v", res.Right)
	}
}

func TestThreeWayAllDifferentWhenNoCorrespondence(t *testing.T) {
	base := []string{"a"}
	left := []string{"b"}
	right := []string{"c"}

	res := ThreeWay(base, left, right, stringEq, unitSize)

	if res.Base[0] != Difference || res.Left[0] != Difference || res.Right[0] != Difference {
		t.Fatalf("expected all positions Difference, got base=%v left=%v right=%v", res.Base, res.Left, res.Right)
	}
}

func TestThreeWayEmptyInputs(t *testing.T) {
	res := ThreeWay[string](nil, nil, nil, stringEq, unitSize)
	if len(res.Base) != 0 || len(res.Left) != 0 || len(res.Right) != 0 {
		t.Fatalf("expected empty result for empty inputs, got %+v", res)
	}
}

func TestThreeWayLengthsMatchInputs(t *testing.T) {
	base := []string{"a", "b", "c", "d"}
	left := []string{"a", "b", "c"}
	right := []string{"a", "b", "c", "d", "e"}

	res := ThreeWay(base, left, right, stringEq, unitSize)
	if len(res.Base) != len(base) || len(res.Left) != len(left) || len(res.Right) != len(right) {
		t.Fatalf("result lengths must mirror input lengths, got base=%d left=%d right=%d",
			len(res.Base), len(res.Left), len(res.Right))
	}
}
