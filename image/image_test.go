package image

import (
	"strings"
	"testing"

	"github.com/deepnoodle-ai/svasm/assembler"
	"github.com/deepnoodle-ai/svasm/op"
	"github.com/stretchr/testify/require"
)

func testProgram(t *testing.T) *assembler.Program {
	t.Helper()
	registry, err := op.NewRegistry([]op.Operation{
		{Mnemonic: "LOAD", Opcode: 0x01, ArgCount: 1},
		{Mnemonic: "ADD", Opcode: 0x10, ArgCount: 0},
	})
	require.Nil(t, err)
	src := `.function a
LOAD 1
.endfunction
.function b
.local x
ADD
.endfunction
`
	p, err := assembler.New(registry).Assemble(src)
	require.Nil(t, err)
	return p
}

func TestBytes(t *testing.T) {
	got := Bytes(testProgram(t))
	require.Equal(t, []byte{
		0x00, 0x02, // function count
		0x00, 0x04, 0x00, 0x09, // offsets
		0x00, 0x00, 0x01, 0x00, 0x01, // a: locals size, LOAD 1
		0x00, 0x02, 0x10, // b: locals size, ADD
	}, got)
}

func TestRender(t *testing.T) {
	got := Render(testProgram(t))
	require.Equal(t, `{
    /* 2 function(s) */
    0x00, 0x02,
    /* function offsets */
    0x00, 0x04, 0x00, 0x09,
    /* function a */
    0x00, 0x00, 0x01, 0x00, 0x01,
    /* function b */
    0x00, 0x02, 0x10,
}
`, got)
}

func TestRenderLineWrap(t *testing.T) {
	registry, err := op.NewRegistry([]op.Operation{
		{Mnemonic: "ADD", Opcode: 0x10, ArgCount: 0},
	})
	require.Nil(t, err)
	src := ".function f\n" + strings.Repeat("ADD\n", 20) + ".endfunction"
	p, err := assembler.New(registry).Assemble(src)
	require.Nil(t, err)

	out := Render(p)
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "0x") {
			continue
		}
		require.LessOrEqual(t, strings.Count(line, "0x"), 8)
	}
	// 20 opcode bytes plus the 2-byte locals size field.
	require.Equal(t, 22+2+2, strings.Count(out, "0x"))
}

func TestRenderEmptyProgram(t *testing.T) {
	out := Render(&assembler.Program{})
	require.Equal(t, `{
    /* 0 function(s) */
    0x00, 0x00,
}
`, out)
	require.Equal(t, []byte{0x00, 0x00}, Bytes(&assembler.Program{}))
}
