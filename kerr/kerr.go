// Package kerr implements spec.md §7's error taxonomy: a single recoverable
// failure kind, AdmissibleFailure, and nothing else — invariant violations
// are programmer errors and panic, following the teacher's convention of
// using klog.Errorf only for "this should never happen" conditions it still
// wants traced, never for something a caller is expected to recover from.
package kerr

import (
	"errors"
	"fmt"

	"github.com/kinetic-merge/kinetic-merge/internal/klog"
)

// AdmissibleFailure is spec.md §7's one recoverable failure: an ambiguous
// propagation or anchored migration that the analysis declines to guess at.
// Size is the offending section's size (in the active element.Scheme's
// units); Candidates names the destinations the ambiguity couldn't choose
// between (paths, positions, or whatever string the caller finds most
// useful to show a user deciding how to raise minimumAmbiguousMatchSize).
type AdmissibleFailure struct {
	Message    string
	Size       int
	Candidates []string
	cause      error
}

// NewAdmissibleFailure builds an AdmissibleFailure, logging it at warn level
// via internal/klog the way the teacher traces an error at the point it's
// raised rather than only where it's eventually handled.
func NewAdmissibleFailure(size int, candidates []string, format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	klog.WithFields(klog.Fields{"size": size, "candidates": len(candidates)}).Warn(msg)
	return &AdmissibleFailure{
		Message:    msg,
		Size:       size,
		Candidates: candidates,
		cause:      errors.New(msg),
	}
}

func (e *AdmissibleFailure) Error() string {
	return fmt.Sprintf("%s (size=%d, candidates=%d)", e.Message, e.Size, len(e.Candidates))
}

func (e *AdmissibleFailure) Unwrap() error {
	return e.cause
}

// IsAdmissibleFailure reports whether err is (or wraps) an AdmissibleFailure,
// the recoverable-failure check callers use instead of a type switch.
func IsAdmissibleFailure(err error) bool {
	var af *AdmissibleFailure
	return errors.As(err, &af)
}
