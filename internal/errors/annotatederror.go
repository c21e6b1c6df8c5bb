// Package errors provides error values that carry structured logging context.
//
// Errors created with New or Wrap remember the call site and any slog.Attr
// annotations attached to them. SlogError turns the whole chain into a single
// slog group so handlers render the message, the annotations, and the source
// location of the deepest annotated error.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

type annotatedError struct {
	msg    string
	cause  error
	attrs  []slog.Attr
	source string
}

func (e *annotatedError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.cause
}

// callerSource resolves the file:line of the caller skipping the frames
// belonging to this package.
func callerSource(skip int) string {
	var pcs [1]uintptr
	if runtime.Callers(skip+2, pcs[:]) == 0 { //nolint:mnd // skip Callers and callerSource
		return ""
	}
	frame, _ := runtime.CallersFrames(pcs[:]).Next()
	if frame.File == "" {
		return ""
	}
	short := frame.File
	for i := len(short) - 1; i >= 0; i-- {
		if short[i] == '/' {
			short = short[i+1:]
			break
		}
	}
	return fmt.Sprintf("%s:%d", short, frame.Line)
}

// New creates an annotated error that records the call site.
func New(msg string, attrs ...slog.Attr) error {
	return &annotatedError{msg: msg, cause: nil, attrs: attrs, source: callerSource(1)}
}

// NewSentinel creates a bare sentinel error suitable for package-level
// declarations. It records no call site since the declaration site is not
// where the error happens.
func NewSentinel(msg string) error {
	return &annotatedError{msg: msg, cause: nil, attrs: nil, source: ""}
}

// Wrap annotates err with a message and optional slog attributes, recording
// the call site. Returns nil if err is nil.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	return &annotatedError{msg: msg, cause: err, attrs: attrs, source: callerSource(1)}
}

// SlogError converts an error chain into a slog group attribute named "error"
// containing the message, all annotations found in the chain, and the source
// location of the outermost annotated error that has one.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Group("error", slog.String("msg", "<nil>"))
	}
	var (
		annotations []any
		source      string
	)
	for e := err; e != nil; e = Unwrap(e) {
		annotated, ok := e.(*annotatedError) //nolint:errorlint // walking the chain link by link
		if !ok {
			continue
		}
		for _, attr := range annotated.attrs {
			annotations = append(annotations, attr)
		}
		if source == "" && annotated.source != "" {
			source = annotated.source
		}
	}
	attrs := []any{slog.String("msg", err.Error())}
	if len(annotations) > 0 {
		attrs = append(attrs, slog.Group("annotations", annotations...))
	}
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	return slog.Group("error", attrs...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error wrapping the given errors, discarding nil values.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Unwrap returns the result of calling the Unwrap method on err, if any.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
