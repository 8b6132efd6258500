package op

import (
	"fmt"
	"io"
	"strings"
)

// WriteDefines writes one symbolic constant definition per registered
// operation, for inclusion in the host build:
//
//	#define OP_LOAD 0x01
//
// Mnemonics are upper-cased and prefixed. Operations are emitted in
// mnemonic order.
func WriteDefines(w io.Writer, prefix string, r *Registry) error {
	for _, o := range r.Operations() {
		if _, err := fmt.Fprintf(w, "#define %s%s 0x%02X\n", prefix, strings.ToUpper(o.Mnemonic), o.Opcode); err != nil {
			return err
		}
	}
	return nil
}
