package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// annotatedError carries the call site and slog attributes next to the message so that a single
// log line is enough to locate the failure.
type annotatedError struct {
	msg   string
	cause error
	pc    uintptr
	attrs []slog.Attr
}

func newAnnotated(msg string, cause error, attrs []slog.Attr) *annotatedError {
	var pcs [1]uintptr
	// Skip runtime.Callers, newAnnotated and the exported constructor.
	runtime.Callers(3, pcs[:]) //nolint:mnd // see above
	return &annotatedError{
		msg:   msg,
		cause: cause,
		pc:    pcs[0],
		attrs: attrs,
	}
}

// New creates an error annotated with the caller location and the given attributes.
func New(msg string, attrs ...slog.Attr) error {
	return newAnnotated(msg, nil, attrs)
}

// Wrap annotates err with a message describing what was being done when it happened.
//
// Wrapping a nil error returns nil so that call sites can wrap unconditionally.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	return newAnnotated(msg, err, attrs)
}

// NewSentinel creates a plain error meant to be compared with Is.
func NewSentinel(msg string) error {
	return errors.New(msg)
}

func (e *annotatedError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %s", e.msg, e.cause.Error())
}

func (e *annotatedError) Unwrap() error {
	return e.cause
}

func (e *annotatedError) source() string {
	frames := runtime.CallersFrames([]uintptr{e.pc})
	frame, _ := frames.Next()
	return fmt.Sprintf("%s:%d", frame.File, frame.Line)
}

// LogValue collects the attributes of the whole annotated chain, innermost source first.
func (e *annotatedError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("msg", e.Error()),
	}
	var sources []string
	var err error = e
	for err != nil {
		var annotated *annotatedError
		if !errors.As(err, &annotated) {
			break
		}
		sources = append(sources, annotated.source())
		attrs = append(attrs, annotated.attrs...)
		err = annotated.cause
	}
	if len(sources) > 0 {
		attrs = append(attrs, slog.String("source", sources[len(sources)-1]))
	}
	return slog.GroupValue(attrs...)
}

// SlogError returns an attribute for logging err with all its annotations.
func SlogError(err error) slog.Attr {
	var annotated *annotatedError
	if errors.As(err, &annotated) {
		return slog.Any("error", annotated)
	}
	return slog.String("error", fmt.Sprint(err))
}

// Is exposes stdlib errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As exposes stdlib errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join exposes stdlib errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Unwrap exposes stdlib errors.Unwrap.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
