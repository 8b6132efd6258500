package assembler

// FunctionUnit is the fully encoded form of one function. It is immutable
// once produced.
type FunctionUnit struct {
	// Name is the declared function name.
	Name string

	// LocalsAllocSize is 2 bytes per declared local. It is stored separately
	// from the bytecode and prefixed to it in the final image.
	LocalsAllocSize uint16

	// ByteCode is the encoded instruction stream with all labels resolved.
	ByteCode []byte
}

// Size returns the number of bytes the unit occupies in the image: its
// bytecode plus the 2-byte locals allocation size field preceding it.
func (u FunctionUnit) Size() int {
	return len(u.ByteCode) + 2
}

// Program is the result of assembling a whole source file: one offset per
// function and the function units themselves, both in declaration order.
type Program struct {
	// FunctionOffsets holds one 2-byte offset per function, measured from
	// the start of the offset table. FunctionOffsets[0] is always twice the
	// function count, the size of the table itself.
	FunctionOffsets []uint16

	// Units are the encoded functions in declaration order.
	Units []FunctionUnit
}
