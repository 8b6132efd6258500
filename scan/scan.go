// Package scan provides the forward-only text cursor shared by all parsing
// in the assembler. The cursor never backtracks: every primitive either
// consumes input or fails with a syntax error carrying the current location.
package scan

import (
	"strings"

	"github.com/deepnoodle-ai/svasm/errz"
)

// Cursor is a forward-only position in a source string.
type Cursor struct {
	src string
	pos int
}

// New creates a Cursor at the start of src.
func New(src string) *Cursor {
	return &Cursor{src: src}
}

// Offset returns the number of characters consumed so far.
func (c *Cursor) Offset() int {
	return c.pos
}

// Rest returns the unconsumed remainder of the source.
func (c *Cursor) Rest() string {
	return c.src[c.pos:]
}

// AtEnd returns true when the whole source has been consumed.
func (c *Cursor) AtEnd() bool {
	return c.pos >= len(c.src)
}

// Lookahead returns true if the remaining source starts with s. It never
// consumes input.
func (c *Cursor) Lookahead(s string) bool {
	return strings.HasPrefix(c.Rest(), s)
}

// Expect consumes s, failing with a syntax error if the remaining source
// does not start with it.
func (c *Cursor) Expect(s string) error {
	if !c.Lookahead(s) {
		return c.SyntaxError("expected %q", s)
	}
	c.pos += len(s)
	return nil
}

// Ident consumes a maximal run of alphanumeric characters. An empty run is
// a syntax error.
func (c *Cursor) Ident() (string, error) {
	start := c.pos
	for c.pos < len(c.src) && isAlnum(c.src[c.pos]) {
		c.pos++
	}
	if c.pos == start {
		return "", c.SyntaxError("expected identifier")
	}
	return c.src[start:c.pos], nil
}

// Whitespace skips spaces, tabs and carriage returns. Newlines are
// significant in the grammar and are left alone.
func (c *Cursor) Whitespace() {
	for c.pos < len(c.src) {
		switch c.src[c.pos] {
		case ' ', '\t', '\r':
			c.pos++
		default:
			return
		}
	}
}

// Newline requires at least one newline, then skips any further blank lines.
func (c *Cursor) Newline() error {
	c.Whitespace()
	if !c.Lookahead("\n") {
		return c.SyntaxError("expected end of line")
	}
	c.skipBlankLines()
	return nil
}

// OptionalNewline is Newline with the newline itself optional. Used before
// the first function in a source file.
func (c *Cursor) OptionalNewline() {
	c.Whitespace()
	c.skipBlankLines()
}

func (c *Cursor) skipBlankLines() {
	for c.Lookahead("\n") {
		c.pos++
		c.Whitespace()
	}
}

// Location computes the 1-based line and column of the current position,
// along with the text of the current line, for error reporting. Only error
// paths pay for the scan.
func (c *Cursor) Location() errz.SourceLocation {
	line := 1
	lineStart := 0
	for i := 0; i < c.pos && i < len(c.src); i++ {
		if c.src[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	lineEnd := strings.IndexByte(c.src[lineStart:], '\n')
	if lineEnd < 0 {
		lineEnd = len(c.src)
	} else {
		lineEnd += lineStart
	}
	return errz.SourceLocation{
		Line:   line,
		Column: c.pos - lineStart + 1,
		Source: strings.TrimRight(c.src[lineStart:lineEnd], "\r"),
	}
}

// SyntaxError creates a syntax error at the current position.
func (c *Cursor) SyntaxError(format string, args ...any) *errz.Error {
	return errz.New(errz.ErrSyntax, c.Location(), format, args...)
}

func isAlnum(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
