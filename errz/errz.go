// Package errz defines the structured error types reported by the assembler.
package errz

import (
	"errors"
	"fmt"
	"strings"
)

// Kind represents the category of an assembly error.
type Kind int

const (
	// ErrSyntax indicates a token mismatch against the grammar.
	ErrSyntax Kind = iota
	// ErrUndeclaredLocal indicates an argument referencing a variable that is
	// not in the current function's locals table.
	ErrUndeclaredLocal
	// ErrMalformedLiteral indicates a numeric argument that does not parse as
	// an unsigned 16-bit value.
	ErrMalformedLiteral
	// ErrUnresolvedLabel indicates a label reference with no matching
	// declaration anywhere in its function.
	ErrUnresolvedLabel
	// ErrConfig indicates a malformed entry in the operation table source.
	ErrConfig
)

// String returns the string representation of the error kind.
func (k Kind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax error"
	case ErrUndeclaredLocal:
		return "undeclared local"
	case ErrMalformedLiteral:
		return "malformed literal"
	case ErrUnresolvedLabel:
		return "unresolved label"
	case ErrConfig:
		return "config error"
	default:
		return "error"
	}
}

// SourceLocation represents a position in assembly source.
type SourceLocation struct {
	Line   int    // 1-based line number
	Column int    // 1-based column number
	Source string // The line of source text
}

// String returns a formatted string representation of the source location.
func (s SourceLocation) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsZero returns true if the location has not been set.
func (s SourceLocation) IsZero() bool {
	return s.Line == 0 && s.Column == 0
}

// Error is a structured assembly error with a programmatic kind and the
// source location it was raised at. All assembly errors are fatal: the
// assembler stops at the first one and emits no output.
type Error struct {
	Kind     Kind
	Message  string
	Location SourceLocation
	Hint     string // "did you mean" suggestion, may be empty
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Location.IsZero() {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (%d:%d)", e.Kind, e.Message, e.Location.Line, e.Location.Column)
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// FriendlyErrorMessage returns a human-friendly message with a source snippet
// and caret pointing at the offending column.
func (e *Error) FriendlyErrorMessage() string {
	var msg strings.Builder
	msg.WriteString(e.Error())
	msg.WriteString("\n")
	if e.Location.Source != "" {
		msg.WriteString(" | ")
		msg.WriteString(e.Location.Source)
		msg.WriteString("\n")
		if e.Location.Column > 0 {
			msg.WriteString(" | ")
			msg.WriteString(strings.Repeat(" ", e.Location.Column-1))
			msg.WriteString("^\n")
		}
	}
	if e.Hint != "" {
		msg.WriteString("hint: ")
		msg.WriteString(e.Hint)
		msg.WriteString("\n")
	}
	return msg.String()
}

// WithHint attaches a suggestion to the error.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// WithCause wraps the error with a cause.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// New creates a new Error with a formatted message.
func New(kind Kind, loc SourceLocation, format string, args ...any) *Error {
	return &Error{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	}
}

// IsKind reports whether err (or an error it wraps) is an assembly Error of
// the given kind. Tests assert on this rather than on message text.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// KindOf returns the kind of err if it is an assembly Error. The second
// return value reports whether it was one.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.Kind, true
}
