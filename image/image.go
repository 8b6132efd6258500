// Package image renders an assembled program as a byte listing suitable for
// embedding as a constant array in a host program.
package image

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/svasm/assembler"
)

// bytesPerLine is how many byte literals are rendered per listing line.
const bytesPerLine = 8

// Bytes returns the raw linked image: function count, offset table, then
// each function's locals allocation size followed by its bytecode. All
// multi-byte fields are big-endian.
func Bytes(p *assembler.Program) []byte {
	size := 2 + 2*len(p.FunctionOffsets)
	for _, u := range p.Units {
		size += u.Size()
	}
	out := make([]byte, 0, size)
	out = appendUint16(out, uint16(len(p.Units)))
	for _, offset := range p.FunctionOffsets {
		out = appendUint16(out, offset)
	}
	for _, u := range p.Units {
		out = appendUint16(out, u.LocalsAllocSize)
		out = append(out, u.ByteCode...)
	}
	return out
}

// Render returns the image as a brace-delimited, comma-separated listing of
// hexadecimal byte literals, comment-annotated per function and wrapped at
// eight literals per line.
func Render(p *assembler.Program) string {
	var l listing
	l.open()
	l.comment("%d function(s)", len(p.Units))
	l.emit(byte(len(p.Units)>>8), byte(len(p.Units)))
	if len(p.FunctionOffsets) > 0 {
		l.comment("function offsets")
		for _, offset := range p.FunctionOffsets {
			l.emit(byte(offset>>8), byte(offset))
		}
	}
	for _, u := range p.Units {
		l.comment("function %s", u.Name)
		l.emit(byte(u.LocalsAllocSize>>8), byte(u.LocalsAllocSize))
		l.emit(u.ByteCode...)
	}
	l.close()
	return l.String()
}

// listing accumulates byte literals into wrapped, indented rows with
// interleaved comment lines.
type listing struct {
	b   strings.Builder
	row int // literals on the current row
}

func (l *listing) open() {
	l.b.WriteString("{\n")
}

func (l *listing) close() {
	l.endRow()
	l.b.WriteString("}\n")
}

func (l *listing) comment(format string, args ...any) {
	l.endRow()
	fmt.Fprintf(&l.b, "    /* "+format+" */\n", args...)
}

func (l *listing) emit(bytes ...byte) {
	for _, v := range bytes {
		if l.row == 0 {
			l.b.WriteString("    ")
		} else {
			l.b.WriteString(" ")
		}
		fmt.Fprintf(&l.b, "0x%02X,", v)
		l.row++
		if l.row == bytesPerLine {
			l.endRow()
		}
	}
}

func (l *listing) endRow() {
	if l.row > 0 {
		l.b.WriteString("\n")
		l.row = 0
	}
}

func (l *listing) String() string {
	return l.b.String()
}

func appendUint16(b []byte, v uint16) []byte {
	return append(b, byte(v>>8), byte(v))
}
