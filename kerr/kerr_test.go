package kerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestAdmissibleFailureIsDetected(t *testing.T) {
	err := NewAdmissibleFailure(3, []string{"a/b.go", "c/d.go"}, "ambiguous relocation for %q", "x")
	if !IsAdmissibleFailure(err) {
		t.Fatalf("expected an AdmissibleFailure, got %v", err)
	}
	var af *AdmissibleFailure
	if !errors.As(err, &af) {
		t.Fatalf("expected errors.As to unwrap an *AdmissibleFailure")
	}
	if af.Size != 3 || len(af.Candidates) != 2 {
		t.Fatalf("got %+v", af)
	}
}

func TestAdmissibleFailureWrappedStillDetected(t *testing.T) {
	err := fmt.Errorf("merging path: %w", NewAdmissibleFailure(1, nil, "ambiguous"))
	if !IsAdmissibleFailure(err) {
		t.Fatalf("expected a wrapped AdmissibleFailure to still be detected")
	}
}

func TestOrdinaryErrorIsNotAdmissibleFailure(t *testing.T) {
	if IsAdmissibleFailure(errors.New("boom")) {
		t.Fatalf("plain error must not be mistaken for an AdmissibleFailure")
	}
}
