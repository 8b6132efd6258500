package scan

import (
	"testing"

	"github.com/deepnoodle-ai/svasm/errz"
	"github.com/stretchr/testify/require"
)

func TestLookaheadAndExpect(t *testing.T) {
	c := New(".function foo")
	require.True(t, c.Lookahead(".function"))
	require.False(t, c.Lookahead(".local"))

	require.Nil(t, c.Expect(".function"))
	require.Equal(t, 9, c.Offset())
	require.Equal(t, " foo", c.Rest())

	err := c.Expect(".label")
	require.NotNil(t, err)
	require.True(t, errz.IsKind(err, errz.ErrSyntax))
	// Failed Expect consumes nothing.
	require.Equal(t, 9, c.Offset())
}

func TestIdent(t *testing.T) {
	c := New("abc123 rest")
	id, err := c.Ident()
	require.Nil(t, err)
	require.Equal(t, "abc123", id)
	require.Equal(t, " rest", c.Rest())

	c = New(" leading")
	_, err = c.Ident()
	require.NotNil(t, err)
	require.True(t, errz.IsKind(err, errz.ErrSyntax))
}

func TestWhitespace(t *testing.T) {
	c := New(" \t\r x\n")
	c.Whitespace()
	require.Equal(t, "x\n", c.Rest())

	// Newlines are not whitespace.
	c = New("\nx")
	c.Whitespace()
	require.Equal(t, "\nx", c.Rest())
}

func TestNewline(t *testing.T) {
	c := New("  \n\n   \n.function")
	require.Nil(t, c.Newline())
	require.Equal(t, ".function", c.Rest())

	c = New("x")
	err := c.Newline()
	require.NotNil(t, err)
	require.True(t, errz.IsKind(err, errz.ErrSyntax))
}

func TestOptionalNewline(t *testing.T) {
	c := New("\n\n.function")
	c.OptionalNewline()
	require.Equal(t, ".function", c.Rest())

	// No newline present is fine.
	c = New(".function")
	c.OptionalNewline()
	require.Equal(t, ".function", c.Rest())
}

func TestCRLF(t *testing.T) {
	c := New("foo\r\nbar")
	_, err := c.Ident()
	require.Nil(t, err)
	require.Nil(t, c.Newline())
	require.Equal(t, "bar", c.Rest())
}

func TestLocation(t *testing.T) {
	c := New("one\ntwo three\n")
	require.Nil(t, c.Expect("one"))
	require.Nil(t, c.Newline())
	require.Nil(t, c.Expect("two "))

	loc := c.Location()
	require.Equal(t, 2, loc.Line)
	require.Equal(t, 5, loc.Column)
	require.Equal(t, "two three", loc.Source)
}
