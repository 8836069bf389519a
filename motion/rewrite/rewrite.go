// Package rewrite implements C8: the result rewriter (spec.md §4.8). It
// explodes a path's merge-algebra Moves (C5, already passed through C7's
// anchored-insertion migration) into a flat sequence of resolved content or
// conflicts, suppressing moves that carry no change, splicing in whichever
// side's content a move resolved to, substituting no-op edits (already
// filtered upstream by C5, since a region whose content doesn't differ from
// base is classified Preservation rather than an edit), and collapsing
// adjacent conflicts into one combined conflict rather than rendering a
// run of back-to-back markers.
package rewrite

import (
	"github.com/kinetic-merge/kinetic-merge/motion/mergealgebra"
	"github.com/kinetic-merge/kinetic-merge/motion/section"
)

// Conflict holds the three sides' content for one unresolved region.
type Conflict[E comparable] struct {
	Base, Left, Right []E
}

// Segment is one piece of the exploded result: either resolved content or a
// Conflict.
type Segment[E comparable] struct {
	IsConflict bool
	Elements   []E
	Conflict   Conflict[E]
}

// Explosion is the full rewritten result for one path.
type Explosion[E comparable] struct {
	Segments    []Segment[E]
	Elements    []E // valid only when !HasConflict: the fully resolved content
	HasConflict bool
}

// Explode turns one path's Result into an Explosion.
func Explode[E comparable](res mergealgebra.Result[E]) Explosion[E] {
	var segs []Segment[E]
	hasConflict := false

	for _, mv := range res.Moves {
		if mv.Kind.IsConflict() {
			hasConflict = true
			c := Conflict[E]{Base: flatten(mv.Base), Left: flatten(mv.Left), Right: flatten(mv.Right)}
			if n := len(segs); n > 0 && segs[n-1].IsConflict {
				segs[n-1].Conflict.Base = append(segs[n-1].Conflict.Base, c.Base...)
				segs[n-1].Conflict.Left = append(segs[n-1].Conflict.Left, c.Left...)
				segs[n-1].Conflict.Right = append(segs[n-1].Conflict.Right, c.Right...)
			} else {
				segs = append(segs, Segment[E]{IsConflict: true, Conflict: c})
			}
			continue
		}

		content := resolvedContent(mv)
		if len(content) == 0 {
			continue // a suppressed deletion, or a no-op region with no content
		}
		if n := len(segs); n > 0 && !segs[n-1].IsConflict {
			segs[n-1].Elements = append(segs[n-1].Elements, content...)
		} else {
			segs = append(segs, Segment[E]{Elements: content})
		}
	}

	var elements []E
	if !hasConflict {
		for _, s := range segs {
			elements = append(elements, s.Elements...)
		}
	}
	return Explosion[E]{Segments: segs, Elements: elements, HasConflict: hasConflict}
}

// resolvedContent picks the winning side's content for a non-conflict move.
func resolvedContent[E comparable](mv mergealgebra.Move[E]) []E {
	switch mv.Kind {
	case mergealgebra.Preservation:
		// A Preservation move's Base/Left/Right sections are all tied together
		// by a single match (most often AllSides), so they may carry literally
		// different content (a motion-aware match, not a literal-equality one).
		// The representative is left-biased, same direction as Match.Dominant,
		// falling back to right then base when a side didn't participate.
		if len(mv.Left) > 0 {
			return flatten(mv.Left)
		}
		if len(mv.Right) > 0 {
			return flatten(mv.Right)
		}
		return flatten(mv.Base)
	case mergealgebra.LeftEdit, mergealgebra.LeftInsertion:
		return flatten(mv.Left)
	case mergealgebra.RightEdit, mergealgebra.RightInsertion:
		return flatten(mv.Right)
	case mergealgebra.CoincidentEdit, mergealgebra.CoincidentInsertion:
		if len(mv.Left) > 0 {
			return flatten(mv.Left)
		}
		return flatten(mv.Right)
	case mergealgebra.LeftDeletion, mergealgebra.RightDeletion, mergealgebra.CoincidentDeletion:
		return nil
	default:
		return nil
	}
}

func flatten[E comparable](secs []section.Section[E]) []E {
	var out []E
	for _, s := range secs {
		out = append(out, s.Content()...)
	}
	return out
}
