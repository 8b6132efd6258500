package op

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/svasm/errz"
	"github.com/hashicorp/go-multierror"
)

// Load reads an operation table in property-list form:
//
//	mnemonic = hexOpcode [argCount]
//
// Blank lines and lines starting with "#" or ";" are ignored. The opcode is
// hexadecimal (with or without an "0x" prefix); the argument count is decimal
// and defaults to 0 when omitted. Malformed entries are fatal, but all of
// them are reported at once rather than one per run.
func Load(r io.Reader) (*Registry, error) {
	var ops []Operation
	var result *multierror.Error

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		o, err := parseEntry(line, lineNum)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		ops = append(ops, o)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return NewRegistry(ops)
}

// LoadString is a convenience wrapper around Load for in-memory tables.
func LoadString(s string) (*Registry, error) {
	return Load(strings.NewReader(s))
}

func parseEntry(line string, lineNum int) (Operation, error) {
	loc := errz.SourceLocation{Line: lineNum, Column: 1, Source: line}
	name, value, found := strings.Cut(line, "=")
	if !found {
		return Operation{}, errz.New(errz.ErrConfig, loc, "entry is not of the form 'mnemonic = opcode [argCount]'")
	}
	mnemonic := strings.TrimSpace(name)
	if mnemonic == "" {
		return Operation{}, errz.New(errz.ErrConfig, loc, "entry has an empty mnemonic")
	}
	fields := strings.Fields(value)
	if len(fields) < 1 || len(fields) > 2 {
		return Operation{}, errz.New(errz.ErrConfig, loc, "entry for %q has %d fields, want 1 or 2", mnemonic, len(fields))
	}
	opcode, err := strconv.ParseUint(strings.TrimPrefix(fields[0], "0x"), 16, 8)
	if err != nil {
		return Operation{}, errz.New(errz.ErrConfig, loc, "entry for %q has a bad opcode %q", mnemonic, fields[0]).WithCause(err)
	}
	argCount := 0
	if len(fields) == 2 {
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 0 {
			return Operation{}, errz.New(errz.ErrConfig, loc, "entry for %q has a bad argument count %q", mnemonic, fields[1])
		}
		argCount = n
	}
	return Operation{Mnemonic: mnemonic, Opcode: byte(opcode), ArgCount: argCount}, nil
}
