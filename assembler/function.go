package assembler

import (
	"strconv"

	"github.com/deepnoodle-ai/svasm/errz"
	"github.com/deepnoodle-ai/svasm/op"
	"github.com/deepnoodle-ai/svasm/scan"
)

// Source keywords.
const (
	kwFunction    = ".function"
	kwEndFunction = ".endfunction"
	kwLocal       = ".local"
	kwLabel       = ".label"
)

// functionAssembler parses one function's source region and encodes it into
// a FunctionUnit in a single linear scan. Label references are deferred as
// intermediate fragments and resolved at the end of the scan.
type functionAssembler struct {
	cur      *scan.Cursor
	registry *op.Registry

	// functions maps every function name in the program to its declaration
	// index. No current instruction encodes a function index, but the map is
	// threaded through so an encoder for such an instruction has it at hand.
	functions map[string]int

	locals    map[string]int
	numLocals int
	labels    map[string]int
	code      codeBuffer
}

// AssembleFunction parses the next function from src and returns its encoded
// unit together with the number of characters consumed. The caller slices
// the remaining source by that count before parsing the next function.
func AssembleFunction(src string, registry *op.Registry, functions map[string]int) (FunctionUnit, int, error) {
	f := &functionAssembler{
		cur:       scan.New(src),
		registry:  registry,
		functions: functions,
		locals:    map[string]int{},
		labels:    map[string]int{},
	}
	unit, err := f.run()
	if err != nil {
		return FunctionUnit{}, 0, err
	}
	return unit, f.cur.Offset(), nil
}

func (f *functionAssembler) run() (FunctionUnit, error) {
	c := f.cur
	c.OptionalNewline()
	if err := c.Expect(kwFunction); err != nil {
		return FunctionUnit{}, err
	}
	c.Whitespace()
	name, err := c.Ident()
	if err != nil {
		return FunctionUnit{}, err
	}
	if err := c.Newline(); err != nil {
		return FunctionUnit{}, err
	}
	if err := f.parseLocals(); err != nil {
		return FunctionUnit{}, err
	}
	if err := f.parseBody(); err != nil {
		return FunctionUnit{}, err
	}
	if err := c.Expect(kwEndFunction); err != nil {
		return FunctionUnit{}, err
	}
	byteCode, err := f.code.flatten(f.labels)
	if err != nil {
		return FunctionUnit{}, err
	}
	return FunctionUnit{
		Name:            name,
		LocalsAllocSize: uint16(2 * f.numLocals),
		ByteCode:        byteCode,
	}, nil
}

// parseLocals reads the locals block. Slots are assigned in strict
// declaration order starting at 0.
func (f *functionAssembler) parseLocals() error {
	c := f.cur
	for c.Lookahead(kwLocal) {
		if err := c.Expect(kwLocal); err != nil {
			return err
		}
		c.Whitespace()
		name, err := c.Ident()
		if err != nil {
			return err
		}
		f.locals[name] = f.numLocals
		f.numLocals++
		if err := c.Newline(); err != nil {
			return err
		}
	}
	return nil
}

// parseBody reads label declarations and instructions until the function
// end keyword. A label's offset is the encoded length accumulated at the
// point its declaration appears.
func (f *functionAssembler) parseBody() error {
	c := f.cur
	for !c.Lookahead(kwEndFunction) {
		if c.AtEnd() {
			return c.SyntaxError("missing %s", kwEndFunction)
		}
		if c.Lookahead(kwLabel) {
			if err := c.Expect(kwLabel); err != nil {
				return err
			}
			c.Whitespace()
			name, err := c.Ident()
			if err != nil {
				return err
			}
			f.labels[name] = f.code.len()
			if err := c.Newline(); err != nil {
				return err
			}
			continue
		}
		if err := f.parseInstruction(); err != nil {
			return err
		}
	}
	return nil
}

func (f *functionAssembler) parseInstruction() error {
	c := f.cur
	operation, ok := f.registry.Match(c.Rest())
	if !ok {
		err := c.SyntaxError("unknown mnemonic")
		if hint := errz.Suggest(leadingIdent(c.Rest()), f.registry.Mnemonics()); hint != "" {
			err = err.WithHint(hint)
		}
		return err
	}
	if err := c.Expect(operation.Mnemonic); err != nil {
		return err
	}
	f.code.append(rawBytes{operation.Opcode})
	for i := 0; i < operation.ArgCount; i++ {
		c.Whitespace()
		if err := f.parseArgument(); err != nil {
			return err
		}
	}
	return c.Newline()
}

// parseArgument encodes one argument. Every kind encodes to exactly 2
// bytes, big-endian.
func (f *functionAssembler) parseArgument() error {
	c := f.cur
	switch {
	case c.Lookahead("#"):
		if err := c.Expect("#"); err != nil {
			return err
		}
		loc := c.Location()
		name, err := c.Ident()
		if err != nil {
			return err
		}
		slot, ok := f.locals[name]
		if !ok {
			err := errz.New(errz.ErrUndeclaredLocal, loc, "no local named %q in this function", name)
			if hint := errz.Suggest(name, localNames(f.locals)); hint != "" {
				err = err.WithHint(hint)
			}
			return err
		}
		f.emitUint16(uint16(slot))
		return nil
	case c.Lookahead("@"):
		if err := c.Expect("@"); err != nil {
			return err
		}
		loc := c.Location()
		name, err := c.Ident()
		if err != nil {
			return err
		}
		f.code.append(labelRef{name: name, loc: loc})
		return nil
	case c.Lookahead("0x"):
		if err := c.Expect("0x"); err != nil {
			return err
		}
		loc := c.Location()
		digits, err := c.Ident()
		if err != nil {
			return errz.New(errz.ErrMalformedLiteral, loc, "hex literal has no digits")
		}
		v, err := strconv.ParseUint(digits, 16, 16)
		if err != nil {
			return errz.New(errz.ErrMalformedLiteral, loc, "bad hex literal %q", "0x"+digits).WithCause(err)
		}
		f.emitUint16(uint16(v))
		return nil
	case leadingDigit(c.Rest()):
		loc := c.Location()
		digits, err := c.Ident()
		if err != nil {
			return err
		}
		v, err := strconv.ParseUint(digits, 10, 16)
		if err != nil {
			return errz.New(errz.ErrMalformedLiteral, loc, "bad decimal literal %q", digits).WithCause(err)
		}
		f.emitUint16(uint16(v))
		return nil
	default:
		return c.SyntaxError("expected argument")
	}
}

func (f *functionAssembler) emitUint16(v uint16) {
	f.code.append(rawBytes{byte(v >> 8), byte(v)})
}

func leadingDigit(s string) bool {
	return len(s) > 0 && s[0] >= '0' && s[0] <= '9'
}

// leadingIdent returns the alphanumeric run at the start of s, for use in
// suggestions. It never consumes cursor input.
func leadingIdent(s string) string {
	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] >= 'a' && s[i] <= 'z' || s[i] >= 'A' && s[i] <= 'Z') {
		i++
	}
	return s[:i]
}

func localNames(locals map[string]int) []string {
	names := make([]string, 0, len(locals))
	for name := range locals {
		names = append(names, name)
	}
	return names
}
