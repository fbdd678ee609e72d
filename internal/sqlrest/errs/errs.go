// Package errs defines the typed error kinds the translation pipeline
// raises: ParsingError for syntactically invalid SQL, UnsupportedError
// for valid SQL outside the supported subset, UnimplementedError for a
// recognized construct not yet built, RenderError for IR a renderer
// cannot express. Errors are raised at the first offending node and
// never caught internally, so no partial IR or partial URL is returned.
package errs

import "fmt"

// ParsingError reports that the SQL text was syntactically invalid.
type ParsingError struct {
	Message        string
	CursorPosition int // byte offset into the source, as reported by the parser
	Hint           string
}

func (e *ParsingError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("parse error at byte %d: %s (%s)", e.CursorPosition, e.Message, e.Hint)
	}
	return fmt.Sprintf("parse error at byte %d: %s", e.CursorPosition, e.Message)
}

// UnsupportedError reports valid SQL using a construct outside the
// declared subset.
type UnsupportedError struct {
	Message string
}

func (e *UnsupportedError) Error() string { return e.Message }

// NewUnsupported builds an UnsupportedError with a formatted message.
func NewUnsupported(format string, args ...interface{}) *UnsupportedError {
	return &UnsupportedError{Message: fmt.Sprintf(format, args...)}
}

// UnimplementedError reports a construct in the intended subset that
// has not yet been built (e.g. EXPLAIN) — distinct from UnsupportedError
// so a caller knows whether to wait or give up.
type UnimplementedError struct {
	Message string
}

func (e *UnimplementedError) Error() string { return e.Message }

// NewUnimplemented builds an UnimplementedError with a formatted message.
func NewUnimplemented(format string, args ...interface{}) *UnimplementedError {
	return &UnimplementedError{Message: fmt.Sprintf(format, args...)}
}

// RenderError reports IR a chosen renderer cannot express. Reserved for
// renderer-specific limitations; rare in practice.
type RenderError struct {
	Message string
}

func (e *RenderError) Error() string { return e.Message }

// NewRender builds a RenderError with a formatted message.
func NewRender(format string, args ...interface{}) *RenderError {
	return &RenderError{Message: fmt.Sprintf(format, args...)}
}
