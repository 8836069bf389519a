// Package render implements the conflict-marker renderer supplementing
// spec.md's core pipeline (see SPEC_FULL.md's "Supplemented features"):
// turning a rewrite.Explosion's conflict segments into textual markers in
// one of three styles, grounded directly on
// modules/diferenco/merge.go's writeConflict and its STYLE_* constants.
package render

import (
	"fmt"
	"strings"

	"github.com/kinetic-merge/kinetic-merge/motion/rewrite"
)

// Style selects how much context a conflict marker shows.
type Style int

const (
	// Merge shows only the minimized conflicting lines from each side,
	// hiding the base version entirely.
	Merge Style = iota
	// Diff3 shows the full, non-minimized hunks of left, base and right.
	Diff3
	// ZealousDiff3 shows minimized left/right hunks, like Merge, but adds
	// back the full base hunk, like Diff3.
	ZealousDiff3
)

const (
	sep1 = "<<<<<<<"
	sepO = "|||||||"
	sep2 = "======="
	sep3 = ">>>>>>>"
)

// Labels names the three sides for the marker lines (e.g. "<<<<<<< ours").
type Labels struct {
	Left, Base, Right string
}

// Render renders every segment of exp in order, writing one line per
// element via toString.
func Render[E comparable](exp rewrite.Explosion[E], style Style, toString func(E) string, labels Labels) string {
	var b strings.Builder
	for _, seg := range exp.Segments {
		if !seg.IsConflict {
			writeLines(&b, seg.Elements, toString)
			continue
		}
		writeConflict(&b, seg.Conflict, style, toString, labels)
	}
	return b.String()
}

func writeConflict[E comparable](b *strings.Builder, c rewrite.Conflict[E], style Style, toString func(E) string, labels Labels) {
	if style == Diff3 {
		fmt.Fprintf(b, "%s%s\n", sep1, label(labels.Left))
		writeLines(b, c.Left, toString)
		fmt.Fprintf(b, "%s%s\n", sepO, label(labels.Base))
		writeLines(b, c.Base, toString)
		fmt.Fprintf(b, "%s\n", sep2)
		writeLines(b, c.Right, toString)
		fmt.Fprintf(b, "%s%s\n", sep3, label(labels.Right))
		return
	}

	left, right := c.Left, c.Right
	prefix := commonPrefixLen(left, right, toString)
	writeLines(b, left[:prefix], toString)
	left, right = left[prefix:], right[prefix:]
	suffix := commonSuffixLen(left, right, toString)

	fmt.Fprintf(b, "%s%s\n", sep1, label(labels.Left))
	writeLines(b, left[:len(left)-suffix], toString)
	if style == ZealousDiff3 {
		fmt.Fprintf(b, "%s%s\n", sepO, label(labels.Base))
		writeLines(b, c.Base, toString)
	}
	fmt.Fprintf(b, "%s\n", sep2)
	writeLines(b, right[:len(right)-suffix], toString)
	fmt.Fprintf(b, "%s%s\n", sep3, label(labels.Right))
	if suffix != 0 {
		writeLines(b, right[len(right)-suffix:], toString)
	}
}

func writeLines[E any](b *strings.Builder, es []E, toString func(E) string) {
	for _, e := range es {
		b.WriteString(toString(e))
		b.WriteByte('\n')
	}
}

func label(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}

func commonPrefixLen[E any](a, b []E, toString func(E) string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && toString(a[i]) == toString(b[i]) {
		i++
	}
	return i
}

func commonSuffixLen[E any](a, b []E, toString func(E) string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && toString(a[len(a)-1-i]) == toString(b[len(b)-1-i]) {
		i++
	}
	return i
}
