package evaluator

import (
	"testing"

	"github.com/kinetic-merge/kinetic-merge/motion/element"
	"github.com/kinetic-merge/kinetic-merge/motion/mergealgebra"
	"github.com/kinetic-merge/kinetic-merge/motion/section"
)

func sec(side section.Side, path string, start int, content []string) section.Section[string] {
	return section.New(side, path, start, content)
}

func TestEvaluateRecognizesSingleRelocation(t *testing.T) {
	deletion := mergealgebra.Move[string]{
		Kind: mergealgebra.LeftDeletion,
		Base: []section.Section[string]{sec(section.Base, "old.go", 0, []string{"func helper() {}"})},
	}
	insertion := mergealgebra.Move[string]{
		Kind: mergealgebra.LeftInsertion,
		Left: []section.Section[string]{sec(section.Left, "new.go", 0, []string{"func helper() {}"})},
	}

	results := map[string]mergealgebra.Result[string]{
		"old.go": {Moves: []mergealgebra.Move[string]{deletion}},
		"new.go": {Moves: []mergealgebra.Move[string]{insertion}},
	}

	eval := Evaluate(element.Strings(), results)
	if len(eval.Relocations) != 1 {
		t.Fatalf("expected exactly one relocation, got %+v", eval.Relocations)
	}
	if eval.Relocations[0].FromPath != "old.go" || eval.Relocations[0].ToPath != "new.go" {
		t.Fatalf("unexpected relocation endpoints: %+v", eval.Relocations[0])
	}
	if len(eval.Substitutions) != 0 {
		t.Fatalf("expected no substitutions once the insertion is claimed by a relocation, got %+v", eval.Substitutions)
	}
}

func TestEvaluateFlagsAmbiguousDestinations(t *testing.T) {
	deletion := mergealgebra.Move[string]{
		Kind: mergealgebra.LeftDeletion,
		Base: []section.Section[string]{sec(section.Base, "old.go", 0, []string{"shared line"})},
	}
	insertionA := mergealgebra.Move[string]{
		Kind: mergealgebra.LeftInsertion,
		Left: []section.Section[string]{sec(section.Left, "a.go", 0, []string{"shared line"})},
	}
	insertionB := mergealgebra.Move[string]{
		Kind: mergealgebra.LeftInsertion,
		Left: []section.Section[string]{sec(section.Left, "b.go", 0, []string{"shared line"})},
	}

	results := map[string]mergealgebra.Result[string]{
		"old.go": {Moves: []mergealgebra.Move[string]{deletion}},
		"a.go":   {Moves: []mergealgebra.Move[string]{insertionA}},
		"b.go":   {Moves: []mergealgebra.Move[string]{insertionB}},
	}

	eval := Evaluate(element.Strings(), results)
	if len(eval.Relocations) != 0 {
		t.Fatalf("expected no confident relocation when the destination is ambiguous, got %+v", eval.Relocations)
	}
	if len(eval.Ambiguous) != 1 {
		t.Fatalf("expected the deletion to be flagged ambiguous, got %+v", eval.Ambiguous)
	}
}

func TestEvaluateTreatsUnmatchedInsertionAsSubstitution(t *testing.T) {
	insertion := mergealgebra.Move[string]{
		Kind: mergealgebra.RightInsertion,
		Right: []section.Section[string]{sec(section.Right, "new.go", 0, []string{"brand new content"})},
	}
	results := map[string]mergealgebra.Result[string]{
		"new.go": {Moves: []mergealgebra.Move[string]{insertion}},
	}

	eval := Evaluate(element.Strings(), results)
	if len(eval.Substitutions) != 1 {
		t.Fatalf("expected the unmatched insertion to be reported as a substitution, got %+v", eval.Substitutions)
	}
	if len(eval.Relocations) != 0 {
		t.Fatalf("expected no relocations, got %+v", eval.Relocations)
	}
}
