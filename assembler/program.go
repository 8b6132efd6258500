// Package assembler translates stack-machine assembly text into a linked
// binary image: a function offset table followed by each function's locals
// allocation size and bytecode.
//
// Assembly happens in two passes. The first pass scans the source by line
// and assigns every declared function its index, so that the complete
// name-to-index map exists before any function body is parsed. The second
// pass parses and encodes one function at a time, slicing the source forward
// by the characters each parse consumed, then links the encoded units with
// the offset table arithmetic.
package assembler

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/svasm/op"
	"github.com/deepnoodle-ai/svasm/scan"
)

// Assembler assembles whole programs against one operation registry. It
// holds no mutable state across calls, so assembling the same source twice
// produces byte-identical output.
type Assembler struct {
	registry *op.Registry
}

// New creates an Assembler using the given registry.
func New(registry *op.Registry) *Assembler {
	return &Assembler{registry: registry}
}

// Assemble parses and encodes all functions in source and links them into a
// Program. Any error aborts the whole assembly with no partial output.
func (a *Assembler) Assemble(source string) (*Program, error) {
	functions, count := FunctionIndexes(source)

	units := make([]FunctionUnit, 0, count)
	remaining := source
	for i := 0; i < count; i++ {
		unit, consumed, err := AssembleFunction(remaining, a.registry, functions)
		if err != nil {
			return nil, fmt.Errorf("function %d: %w", i, err)
		}
		units = append(units, unit)
		remaining = remaining[consumed:]
	}

	return &Program{
		FunctionOffsets: linkOffsets(units),
		Units:           units,
	}, nil
}

// FunctionIndexes scans the source by line and maps every declared function
// name to its 0-based declaration index. This runs before any body is
// parsed: the format anticipates instructions that reference functions
// declared later in the source. The second return value is the number of
// function declarations found.
func FunctionIndexes(source string) (map[string]int, int) {
	indexes := map[string]int{}
	count := 0
	for _, line := range strings.Split(source, "\n") {
		c := scan.New(line)
		c.Whitespace()
		if !c.Lookahead(kwFunction) {
			continue
		}
		if err := c.Expect(kwFunction); err != nil {
			continue
		}
		c.Whitespace()
		name, err := c.Ident()
		if err != nil {
			continue
		}
		indexes[name] = count
		count++
	}
	return indexes, count
}

// linkOffsets computes the per-function offsets, measured from the start of
// the offset table. The first entry is the size of the table itself; each
// subsequent entry adds the previous unit's bytecode length plus its 2-byte
// locals allocation size field.
func linkOffsets(units []FunctionUnit) []uint16 {
	offsets := make([]uint16, len(units))
	if len(units) == 0 {
		return offsets
	}
	offsets[0] = uint16(2 * len(units))
	for i := 1; i < len(units); i++ {
		offsets[i] = offsets[i-1] + uint16(units[i-1].Size())
	}
	return offsets
}
