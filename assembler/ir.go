package assembler

import (
	"fmt"

	"github.com/deepnoodle-ai/svasm/errz"
)

// fragment is one piece of intermediate code: either raw encoded bytes or a
// label reference whose value is not yet known. It is a closed sum type;
// flatten matches its variants exhaustively.
type fragment interface {
	// width returns the encoded size in bytes, known even before the
	// fragment is resolved.
	width() int
}

// rawBytes is a fully encoded fragment.
type rawBytes []byte

func (b rawBytes) width() int { return len(b) }

// labelRef is an unresolved reference to a label in the same function. It
// always encodes to 2 bytes.
type labelRef struct {
	name string
	loc  errz.SourceLocation
}

func (labelRef) width() int { return 2 }

// codeBuffer accumulates intermediate code for one function. Its length is
// the encoded byte length of everything appended so far, which is what label
// declarations record as their offset before the flat byte sequence exists.
type codeBuffer struct {
	frags []fragment
	size  int
}

func (b *codeBuffer) append(f fragment) {
	b.frags = append(b.frags, f)
	b.size += f.width()
}

// len returns the current encoded length in bytes.
func (b *codeBuffer) len() int {
	return b.size
}

// flatten resolves every label reference against labels and produces the
// final byte sequence. It consumes the buffer conceptually: the result is
// complete and the buffer is not appended to afterwards. A reference to a
// label that was never declared is reported here, after the whole function
// has been scanned, so forward and backward references resolve identically.
func (b *codeBuffer) flatten(labels map[string]int) ([]byte, error) {
	out := make([]byte, 0, b.size)
	for _, f := range b.frags {
		switch f := f.(type) {
		case rawBytes:
			out = append(out, f...)
		case labelRef:
			offset, ok := labels[f.name]
			if !ok {
				return nil, errz.New(errz.ErrUnresolvedLabel, f.loc, "label %q is not declared in this function", f.name)
			}
			out = append(out, byte(offset>>8), byte(offset))
		default:
			panic(fmt.Sprintf("unhandled fragment type %T", f))
		}
	}
	return out, nil
}
