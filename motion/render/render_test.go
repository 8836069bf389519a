package render

import (
	"strings"
	"testing"

	"github.com/kinetic-merge/kinetic-merge/motion/rewrite"
)

func id(s string) string { return s }

func TestRenderCleanMergeHasNoMarkers(t *testing.T) {
	exp := rewrite.Explosion[string]{
		Segments: []rewrite.Segment[string]{{Elements: []string{"a", "b"}}},
	}
	out := Render(exp, Merge, id, Labels{})
	if strings.Contains(out, sep1) {
		t.Fatalf("unexpected conflict markers in clean merge output: %q", out)
	}
	if out != "a\nb\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRenderMergeStyleMinimizesCommonAffixes(t *testing.T) {
	exp := rewrite.Explosion[string]{
		HasConflict: true,
		Segments: []rewrite.Segment[string]{{
			IsConflict: true,
			Conflict: rewrite.Conflict[string]{
				Base:  []string{"shared", "o"},
				Left:  []string{"shared", "l", "tail"},
				Right: []string{"shared", "r", "tail"},
			},
		}},
	}
	out := Render(exp, Merge, id, Labels{Left: "ours", Right: "theirs"})
	if strings.Count(out, "shared") != 1 || strings.Index(out, "shared") > strings.Index(out, sep1) {
		t.Fatalf("expected common prefix to be trimmed from the conflict and rendered once ahead of it in merge style, got %q", out)
	}
	if !strings.Contains(out, "tail") {
		t.Fatalf("expected common suffix to still be rendered once, got %q", out)
	}
	if !strings.Contains(out, sep1+" ours") || !strings.Contains(out, sep3+" theirs") {
		t.Fatalf("expected labels on the outer markers, got %q", out)
	}
	if strings.Contains(out, sepO) {
		t.Fatalf("merge style must not show the base hunk, got %q", out)
	}
}

func TestRenderDiff3ShowsFullBaseHunk(t *testing.T) {
	exp := rewrite.Explosion[string]{
		HasConflict: true,
		Segments: []rewrite.Segment[string]{{
			IsConflict: true,
			Conflict: rewrite.Conflict[string]{
				Base:  []string{"shared", "o"},
				Left:  []string{"shared", "l"},
				Right: []string{"shared", "r"},
			},
		}},
	}
	out := Render(exp, Diff3, id, Labels{})
	if !strings.Contains(out, sepO) {
		t.Fatalf("expected the base marker in diff3 style, got %q", out)
	}
	if strings.Count(out, "shared") != 3 {
		t.Fatalf("diff3 style must not minimize: expected 'shared' on all three sides, got %q", out)
	}
}
