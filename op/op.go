// Package op defines the operation table used by the svasm assembler.
package op

import (
	"sort"

	"github.com/deepnoodle-ai/svasm/errz"
)

// Operation describes one instruction of the target machine: its textual
// mnemonic, its single-byte opcode, and the number of arguments it expects.
type Operation struct {
	Mnemonic string
	Opcode   byte
	ArgCount int
}

// Registry is an immutable mnemonic lookup table. It is constructed once,
// before assembly begins, and injected into the assembler so that independent
// assemblies never share mutable state.
type Registry struct {
	ops    []Operation
	byName map[string]Operation
}

// NewRegistry creates a Registry from the given operations. Registering the
// same mnemonic twice is a config error.
func NewRegistry(ops []Operation) (*Registry, error) {
	r := &Registry{
		ops:    make([]Operation, 0, len(ops)),
		byName: make(map[string]Operation, len(ops)),
	}
	for _, o := range ops {
		if o.Mnemonic == "" {
			return nil, errz.New(errz.ErrConfig, errz.SourceLocation{}, "operation with empty mnemonic")
		}
		if _, exists := r.byName[o.Mnemonic]; exists {
			return nil, errz.New(errz.ErrConfig, errz.SourceLocation{}, "duplicate mnemonic %q", o.Mnemonic)
		}
		r.byName[o.Mnemonic] = o
		r.ops = append(r.ops, o)
	}
	sort.Slice(r.ops, func(i, j int) bool {
		return r.ops[i].Mnemonic < r.ops[j].Mnemonic
	})
	return r, nil
}

// Get looks up an operation by its exact mnemonic.
func (r *Registry) Get(mnemonic string) (Operation, bool) {
	o, ok := r.byName[mnemonic]
	return o, ok
}

// Match finds the registered operation whose mnemonic is the longest prefix
// of src. Longest match wins, so one mnemonic may be a strict prefix of
// another (e.g. "add" and "add2") without ambiguity.
func (r *Registry) Match(src string) (Operation, bool) {
	var best Operation
	found := false
	for _, o := range r.ops {
		if len(o.Mnemonic) > len(src) {
			continue
		}
		if src[:len(o.Mnemonic)] != o.Mnemonic {
			continue
		}
		if !found || len(o.Mnemonic) > len(best.Mnemonic) {
			best = o
			found = true
		}
	}
	return best, found
}

// Operations returns all registered operations sorted by mnemonic.
func (r *Registry) Operations() []Operation {
	out := make([]Operation, len(r.ops))
	copy(out, r.ops)
	return out
}

// Mnemonics returns the registered mnemonics sorted alphabetically.
func (r *Registry) Mnemonics() []string {
	out := make([]string, len(r.ops))
	for i, o := range r.ops {
		out[i] = o.Mnemonic
	}
	return out
}

// Size returns the number of registered operations.
func (r *Registry) Size() int {
	return len(r.ops)
}
