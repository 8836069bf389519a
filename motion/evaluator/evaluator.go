// Package evaluator implements C6: the motion evaluator (spec.md §4.6). It
// takes the merge algebra's per-path moves (C5) and recognizes relocations —
// a deletion on one side paired with an insertion, elsewhere, of the same
// content — as opposed to a plain deletion-plus-unrelated-insertion.
// Ambiguous relocations (more than one candidate destination for the same
// deleted content) are reported as a recoverable failure rather than
// guessed at, per spec.md §7's AdmissibleFailure model.
package evaluator

import (
	"sort"

	"github.com/kinetic-merge/kinetic-merge/motion/element"
	"github.com/kinetic-merge/kinetic-merge/motion/fingerprint"
	"github.com/kinetic-merge/kinetic-merge/motion/mergealgebra"
	"github.com/kinetic-merge/kinetic-merge/motion/section"
)

// Side identifies which side's edit produced a deletion or insertion move.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
	SideCoincident
)

// Located pairs a move with the path it belongs to, since mergealgebra.Move
// itself doesn't carry a path.
type Located[E comparable] struct {
	Path string
	Move mergealgebra.Move[E]
	Side Side
}

// Relocation links a deletion move to the insertion move that reintroduces
// its content elsewhere.
type Relocation[E comparable] struct {
	FromPath string
	From     mergealgebra.Move[E]
	ToPath   string
	To       mergealgebra.Move[E]
	Side     Side
}

// Evaluation is the full output of C6 over every path's merge-algebra moves.
type Evaluation[E comparable] struct {
	Relocations   []Relocation[E]
	Substitutions []Located[E] // insertions with no matching deletion: ordinary new content
	Ambiguous     []Located[E] // deletions whose content reappears at more than one destination
}

// Evaluate groups deletions and insertions by a content digest and pairs
// them up. Grounded in fingerprint.ContentDigest (C2) as the cheap
// equality key that avoids an O(n^2) content comparison across every
// deletion/insertion pair in a large tree.
func Evaluate[E comparable](scheme element.Scheme[E], results map[string]mergealgebra.Result[E]) Evaluation[E] {
	var deletions, insertions []Located[E]

	paths := make([]string, 0, len(results))
	for path := range results {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		res := results[path]
		for _, mv := range res.Moves {
			switch mv.Kind {
			case mergealgebra.LeftDeletion:
				deletions = append(deletions, Located[E]{Path: path, Move: mv, Side: SideLeft})
			case mergealgebra.RightDeletion:
				deletions = append(deletions, Located[E]{Path: path, Move: mv, Side: SideRight})
			case mergealgebra.CoincidentDeletion:
				deletions = append(deletions, Located[E]{Path: path, Move: mv, Side: SideCoincident})
			case mergealgebra.LeftInsertion:
				insertions = append(insertions, Located[E]{Path: path, Move: mv, Side: SideLeft})
			case mergealgebra.RightInsertion:
				insertions = append(insertions, Located[E]{Path: path, Move: mv, Side: SideRight})
			case mergealgebra.CoincidentInsertion:
				insertions = append(insertions, Located[E]{Path: path, Move: mv, Side: SideCoincident})
			}
		}
	}

	insertionsByDigest := make(map[[32]byte][]Located[E])
	for _, ins := range insertions {
		d := digestOf(scheme, insertionContent(ins.Move))
		insertionsByDigest[d] = append(insertionsByDigest[d], ins)
	}

	var eval Evaluation[E]

	for _, del := range deletions {
		d := digestOf(scheme, deletionContent(del.Move))
		candidates := insertionsByDigest[d]
		var sameSide []Located[E]
		for _, c := range candidates {
			if c.Side == del.Side || del.Side == SideCoincident || c.Side == SideCoincident {
				sameSide = append(sameSide, c)
			}
		}
		switch len(sameSide) {
		case 0:
			// no destination found: a plain deletion, nothing to report here.
		case 1:
			eval.Relocations = append(eval.Relocations, Relocation[E]{
				FromPath: del.Path,
				From:     del.Move,
				ToPath:   sameSide[0].Path,
				To:       sameSide[0].Move,
				Side:     del.Side,
			})
		default:
			eval.Ambiguous = append(eval.Ambiguous, del)
		}
	}

	for _, ins := range insertions {
		claimed := false
		for _, r := range eval.Relocations {
			if r.ToPath == ins.Path && sameMoveSections(r.To, ins.Move) {
				claimed = true
				break
			}
		}
		if !claimed {
			eval.Substitutions = append(eval.Substitutions, ins)
		}
	}

	return eval
}

func deletionContent[E comparable](mv mergealgebra.Move[E]) []E {
	return flattenAll(mv.Base)
}

func insertionContent[E comparable](mv mergealgebra.Move[E]) []E {
	if len(mv.Left) > 0 {
		return flattenAll(mv.Left)
	}
	return flattenAll(mv.Right)
}

func flattenAll[E comparable](secs []section.Section[E]) []E {
	var out []E
	for _, s := range secs {
		out = append(out, s.Content()...)
	}
	return out
}

func digestOf[E comparable](scheme element.Scheme[E], content []E) [32]byte {
	return fingerprint.ContentDigest(scheme, content)
}

func sameMoveSections[E comparable](a, b mergealgebra.Move[E]) bool {
	same := func(x, y []section.Section[E]) bool {
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !x[i].Equal(y[i]) {
				return false
			}
		}
		return true
	}
	return same(a.Left, b.Left) && same(a.Right, b.Right) && same(a.Base, b.Base)
}
