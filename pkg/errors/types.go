// Package errors provides coded errors for the engine. Layout code panics
// with *Error on fatal geometry; the host loop recovers it with FromPanic.
package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
	"runtime"
	"slices"
	"strings"
)

// ErrorCode classifies an Error.
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrCodeConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Layout and rendering errors
	ErrCodeOutOfRange ErrorCode = "OUT_OF_RANGE"
	ErrCodeRender     ErrorCode = "RENDER"

	// Device errors
	ErrCodeBackendInit ErrorCode = "BACKEND_INIT"

	// Generic errors
	ErrCodeInternal       ErrorCode = "INTERNAL"
	ErrCodeInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrCodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"
)

// Error is a coded error with optional cause and key/value context.
type Error struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Context    map[string]any
	Stack      []Frame
}

// Frame is one caller recorded when the error was created.
type Frame struct {
	Function string
	File     string
	Line     int
}

func (f Frame) String() string {
	return fmt.Sprintf("%s (%s:%d)", f.Function, f.File, f.Line)
}

func build(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Underlying: cause,
		Stack:      callers(3),
	}
}

// New creates an error with code.
func New(code ErrorCode, message string) *Error {
	return build(code, message, nil)
}

// Newf creates an error with code and a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return build(code, fmt.Sprintf(format, args...), nil)
}

// Wrap attaches code and message to err. It returns nil for a nil err;
// callers must not return the result as an error without checking.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return build(code, message, err)
}

// FromPanic converts a recovered panic value into an error. Structured
// errors raised with panic are returned unchanged.
func FromPanic(v any) error {
	switch p := v.(type) {
	case nil:
		return nil
	case *Error:
		return p
	case error:
		return build(ErrCodeInternal, "panic", p)
	default:
		return build(ErrCodeInternal, fmt.Sprintf("panic: %v", p), nil)
	}
}

// WithContext records key=value on e and returns e.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// Error formats as "[CODE] message {k: v, ...}: cause".
func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s", e.Code, e.Message)
	if len(e.Context) > 0 {
		sb.WriteString(" {")
		for i, k := range slices.Sorted(maps.Keys(e.Context)) {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s: %v", k, e.Context[k])
		}
		sb.WriteString("}")
	}
	if e.Underlying != nil {
		fmt.Fprintf(&sb, ": %v", e.Underlying)
	}
	return sb.String()
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// Is matches any *Error with the same code, so errors.Is(err,
// &Error{Code: c}) tests for a code anywhere in the chain.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// StackTrace returns the recorded callers, innermost first.
func (e *Error) StackTrace() string {
	var sb strings.Builder
	sb.WriteString("Stack trace:\n")
	for i, f := range e.Stack {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, f)
	}
	return sb.String()
}

func callers(skip int) []Frame {
	var pcs [32]uintptr
	n := runtime.Callers(skip+1, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	var out []Frame
	for {
		f, more := frames.Next()
		out = append(out, Frame{Function: f.Function, File: f.File, Line: f.Line})
		if !more {
			return out
		}
	}
}

// IsCode reports whether err or any error it wraps is an *Error with
// code. Only the outermost *Error is consulted.
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain,
// ErrCodeInternal for other errors, and "" for nil.
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var e *Error
	if !stderrors.As(err, &e) {
		return ErrCodeInternal
	}
	return e.Code
}
