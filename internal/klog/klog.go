// Package klog is the ambient logging/error helper the motion pipeline uses
// throughout, grounded on modules/trace/error.go's Errorf (caller location
// plus a logrus line) generalized to structured fields, the pattern the
// teacher's server packages use for request-scoped logging. trace.go's
// terminal-color DbgPrint was not carried forward: it depends on
// modules/term, which has no role in a headless library core (see
// DESIGN.md).
package klog

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Location reports the calling function's name and line, skip frames above
// its own caller.
func Location(skip int) (string, int) {
	pc, _, line, ok := runtime.Caller(skip)
	if !ok {
		return "?", line
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "?", line
	}
	return fn.Name(), line
}

// Errorf logs at error level with caller location and returns a plain error
// carrying the same message, mirroring modules/trace/error.go's Errorf.
func Errorf(format string, a ...any) error {
	fn, line := Location(2)
	msg := fmt.Sprintf(format, a...)
	logrus.WithField("at", fmt.Sprintf("%s:%d", fn, line)).Error(msg)
	return errors.New(msg)
}

// Fields is a convenience alias for structured log fields.
type Fields = logrus.Fields

// WithFields returns an entry pre-populated with the given fields, for
// components (discovery, evaluator, anchor migration) that want to log
// progress with path/size/threshold context attached.
func WithFields(fields Fields) *logrus.Entry {
	return logrus.WithFields(fields)
}

// Debugf logs at debug level; a no-op unless the caller raised logrus's
// level, so it's safe to sprinkle through hot paths like discovery.
func Debugf(format string, a ...any) {
	logrus.Debugf(format, a...)
}
