package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/svasm/errz"
)

const testOpsTable = `
load = 0x01 1
jmp  = 0x02 1
add  = 0x10
`

func writeTestFiles(t *testing.T, source string) (srcPath, outPath string) {
	t.Helper()
	dir := t.TempDir()
	opsPath := filepath.Join(dir, "ops.properties")
	require.Nil(t, os.WriteFile(opsPath, []byte(testOpsTable), 0o644))
	srcPath = filepath.Join(dir, "prog.svasm")
	require.Nil(t, os.WriteFile(srcPath, []byte(source), 0o644))
	viper.Set("ops", opsPath)
	t.Cleanup(func() { viper.Set("ops", "") })
	return srcPath, filepath.Join(dir, "out.inc")
}

func TestRunBuild(t *testing.T) {
	srcPath, outPath := writeTestFiles(t, ".function main\n.local x\nload #x\n.endfunction\n")
	require.Nil(t, runBuild(srcPath, outPath, ""))

	out, err := os.ReadFile(outPath)
	require.Nil(t, err)
	listing := string(out)
	require.Contains(t, listing, "/* 1 function(s) */")
	require.Contains(t, listing, "/* function main */")
	require.Contains(t, listing, "0x01, 0x00, 0x00,")
}

func TestRunBuildNamedArray(t *testing.T) {
	srcPath, outPath := writeTestFiles(t, ".function main\nadd\n.endfunction\n")
	require.Nil(t, runBuild(srcPath, outPath, "program"))

	out, err := os.ReadFile(outPath)
	require.Nil(t, err)
	require.Contains(t, string(out), "static const unsigned char program[] =\n{")
	require.Contains(t, string(out), "};\n")
}

func TestRunBuildAssemblyError(t *testing.T) {
	srcPath, outPath := writeTestFiles(t, ".function main\nload #nope\n.endfunction\n")
	err := runBuild(srcPath, outPath, "")
	require.NotNil(t, err)
	require.True(t, errz.IsKind(err, errz.ErrUndeclaredLocal))

	// No partial output on failure.
	_, statErr := os.Stat(outPath)
	require.True(t, os.IsNotExist(statErr))
}

func TestRunBuildMissingOpsTable(t *testing.T) {
	srcPath, outPath := writeTestFiles(t, ".function main\n.endfunction\n")
	viper.Set("ops", "")
	err := runBuild(srcPath, outPath, "")
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "--ops")
}

func TestRunDefines(t *testing.T) {
	_, outPath := writeTestFiles(t, "")
	require.Nil(t, runDefines(outPath, "VM_"))

	out, err := os.ReadFile(outPath)
	require.Nil(t, err)
	require.Equal(t,
		"#define VM_ADD 0x10\n"+
			"#define VM_JMP 0x02\n"+
			"#define VM_LOAD 0x01\n",
		string(out))
}

func TestInspectCmd(t *testing.T) {
	srcPath, _ := writeTestFiles(t, ".function a\nadd\n.endfunction\n.function b\n.local x\nload #x\n.endfunction\n")

	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"inspect", srcPath})
	require.Nil(t, root.Execute())

	out := buf.String()
	require.Contains(t, out, "a")
	require.Contains(t, out, "b")
	require.Contains(t, out, "0x0004")
	// a is 1+2 bytes, b is 3+2 bytes, plus the count and offset table.
	require.Contains(t, out, "image: 14 bytes, 2 function(s)")
}
