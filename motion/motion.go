// Package motion is the root of the pipeline spec.md §6 names as the
// external interface: CodeMotionAnalysis wires C1 (sectioning) through C4
// (match discovery) and exposes matchesFor per section; Merge wires C5
// (merge algebra) through C8 (result rewriter) and the motion evaluator
// (C6) / anchor migrator (C7) in between, returning one MergeResult per
// path plus a report of every detected relocation.
package motion

import (
	"fmt"
	"sort"

	"github.com/kinetic-merge/kinetic-merge/kerr"
	"github.com/kinetic-merge/kinetic-merge/motion/anchor"
	"github.com/kinetic-merge/kinetic-merge/motion/discovery"
	"github.com/kinetic-merge/kinetic-merge/motion/element"
	"github.com/kinetic-merge/kinetic-merge/motion/evaluator"
	"github.com/kinetic-merge/kinetic-merge/motion/match"
	"github.com/kinetic-merge/kinetic-merge/motion/mergealgebra"
	"github.com/kinetic-merge/kinetic-merge/motion/rewrite"
	"github.com/kinetic-merge/kinetic-merge/motion/section"
)

// Session is one progress-reporting run, e.g. one phase of the pipeline.
type Session interface {
	UpTo(progress int)
	Close()
}

// Progress is spec.md §9's "small interface with newSession/upTo/close";
// the default implementation (see NoopProgress) is a no-op, so embedders
// that don't care about progress reporting never need to implement it.
type Progress interface {
	NewSession(label string, max int) Session
}

type noopSession struct{}

func (noopSession) UpTo(int) {}
func (noopSession) Close()   {}

type noopProgress struct{}

func (noopProgress) NewSession(string, int) Session { return noopSession{} }

// NoopProgress is the default Progress: every call is a no-op.
func NoopProgress() Progress { return noopProgress{} }

// CodeMotionAnalysis is spec.md §6's output type:
// `CodeMotionAnalysis { base, left, right, matchesFor(section) -> Set<Match> }`.
// It owns the sectioning for all three sides (refined by match discovery,
// per spec.md §4.1) and the match index those sections were discovered
// against.
type CodeMotionAnalysis[E comparable] struct {
	scheme     element.Scheme[E]
	thresholds discovery.Thresholds

	base, left, right *section.Sources[E]
	idx               *match.Index[E]

	baseFiles, leftFiles, rightFiles map[string]*section.File[E]
}

// NewAnalysis builds the sectioning for all three sides and discovers
// matches across them (C1-C4): each side starts as one section per path
// (section.New), match discovery (C4) finds correspondences over
// that trivial sectioning, and FilesByPathUtilising (C1) then refines each
// side's sectioning so every discovered match's section is present intact.
func NewAnalysis[E comparable](
	scheme element.Scheme[E],
	thresholds discovery.Thresholds,
	baseContent, leftContent, rightContent map[string][]E,
	progress Progress,
) (*CodeMotionAnalysis[E], error) {
	if progress == nil {
		progress = NoopProgress()
	}
	base := section.New(section.Base, scheme, baseContent)
	left := section.New(section.Left, scheme, leftContent)
	right := section.New(section.Right, scheme, rightContent)

	sess := progress.NewSession("discover", 1)
	defer sess.Close()

	idx, err := discovery.Discover(discovery.Input[E]{Scheme: scheme, Base: base, Left: left, Right: right}, thresholds)
	if err != nil {
		return nil, fmt.Errorf("motion: discovering matches: %w", err)
	}
	sess.UpTo(1)

	baseFiles, err := base.FilesByPathUtilising(mandatorySections(idx, section.Base), nil)
	if err != nil {
		return nil, fmt.Errorf("motion: sectioning base: %w", err)
	}
	leftFiles, err := left.FilesByPathUtilising(mandatorySections(idx, section.Left), nil)
	if err != nil {
		return nil, fmt.Errorf("motion: sectioning left: %w", err)
	}
	rightFiles, err := right.FilesByPathUtilising(mandatorySections(idx, section.Right), nil)
	if err != nil {
		return nil, fmt.Errorf("motion: sectioning right: %w", err)
	}

	return &CodeMotionAnalysis[E]{
		scheme:     scheme,
		thresholds: thresholds,
		base:       base,
		left:       left,
		right:      right,
		idx:        idx,
		baseFiles:  baseFiles,
		leftFiles:  leftFiles,
		rightFiles: rightFiles,
	}, nil
}

func mandatorySections[E comparable](idx *match.Index[E], side section.Side) []section.Section[E] {
	var out []section.Section[E]
	for _, m := range idx.All() {
		if s, ok := m.SectionOn(side); ok {
			out = append(out, s)
		}
	}
	return out
}

// Base returns the base side's Sources.
func (a *CodeMotionAnalysis[E]) Base() *section.Sources[E] { return a.base }

// Left returns the left side's Sources.
func (a *CodeMotionAnalysis[E]) Left() *section.Sources[E] { return a.left }

// Right returns the right side's Sources.
func (a *CodeMotionAnalysis[E]) Right() *section.Sources[E] { return a.right }

// MatchesFor returns every Match sec participates in.
func (a *CodeMotionAnalysis[E]) MatchesFor(sec section.Section[E]) []match.Match[E] {
	return a.idx.MatchesFor(sec)
}

// MergeResult is spec.md §6's MergeResult sum type: either FullyMerged
// (Conflict == false, Elements holds the resolved content) or
// MergedWithConflicts (Conflict == true, Left/Right hold the two
// irreconcilable sides).
type MergeResult[E comparable] struct {
	Conflict    bool
	Elements    []E
	Left, Right []E
}

// MoveDestinationsReport is spec.md §6's MoveDestinationsReport: every
// relocation the motion evaluator (C6) confirmed, plus every deletion left
// ambiguous between more than one same-digest destination.
type MoveDestinationsReport[E comparable] struct {
	Relocations []evaluator.Relocation[E]
	Ambiguous   []evaluator.Located[E]
}

// Merge is spec.md §6's `merge() -> (Map<Path, MergeResult<Element>>,
// MoveDestinationsReport)`. It runs the merge algebra (C5) over every path,
// the motion evaluator (C6) across the whole result to recognize
// relocations, anchored-insertion migration (C7) to suppress a relocation's
// now-redundant source deletion, and the result rewriter (C8) to flatten
// each path down to its MergeResult. An AdmissibleFailure (spec.md §7) is
// returned, never panicked, when content reappears at more than one
// destination and the evaluator can't choose between them.
func (a *CodeMotionAnalysis[E]) Merge(progress Progress) (map[string]MergeResult[E], MoveDestinationsReport[E], error) {
	if progress == nil {
		progress = NoopProgress()
	}
	sess := progress.NewSession("merge", 1)
	defer sess.Close()

	results := mergealgebra.Merge(a.scheme, a.idx, a.baseFiles, a.leftFiles, a.rightFiles)

	eval := evaluator.Evaluate(a.scheme, results)
	if len(eval.Ambiguous) > 0 {
		return nil, MoveDestinationsReport[E]{}, ambiguityFailure(a.scheme, eval.Ambiguous)
	}

	migrated := anchor.Migrate(results, eval.Relocations, anchor.NewCache())

	out := make(map[string]MergeResult[E], len(migrated))
	paths := make([]string, 0, len(migrated))
	for path := range migrated {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		out[path] = buildResult(a.scheme, migrated[path])
	}
	sess.UpTo(1)

	return out, MoveDestinationsReport[E]{Relocations: eval.Relocations, Ambiguous: eval.Ambiguous}, nil
}

// buildResult explodes one path's Result (C8) and, per spec.md §4.8 step 4,
// collapses a MergedWithConflicts whose two sides ended up element-wise
// equal (e.g. after anchored splicing resolved what looked like a conflict)
// back down to FullyMerged.
func buildResult[E comparable](scheme element.Scheme[E], res mergealgebra.Result[E]) MergeResult[E] {
	exp := rewrite.Explode(res)
	if !exp.HasConflict {
		return MergeResult[E]{Elements: exp.Elements}
	}

	var left, right []E
	for _, seg := range exp.Segments {
		if seg.IsConflict {
			left = append(left, seg.Conflict.Left...)
			right = append(right, seg.Conflict.Right...)
			continue
		}
		left = append(left, seg.Elements...)
		right = append(right, seg.Elements...)
	}

	if element.ContentEqual(scheme, left, right) {
		return MergeResult[E]{Elements: left}
	}
	return MergeResult[E]{Conflict: true, Left: left, Right: right}
}

func ambiguityFailure[E comparable](scheme element.Scheme[E], ambiguous []evaluator.Located[E]) error {
	candidates := make([]string, 0, len(ambiguous))
	size := 0
	for _, loc := range ambiguous {
		candidates = append(candidates, loc.Path)
		if s := scheme.SizeOfAll(flattenMove(loc.Move)); s > size {
			size = s
		}
	}
	return kerr.NewAdmissibleFailure(size, candidates,
		"ambiguous propagation: content reappears at more than one destination; raise minimumAmbiguousMatchSize above %d", size)
}

func flattenMove[E comparable](mv mergealgebra.Move[E]) []E {
	var out []E
	for _, s := range mv.Base {
		out = append(out, s.Content()...)
	}
	return out
}
