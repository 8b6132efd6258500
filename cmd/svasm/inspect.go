package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/svasm/assembler"
	"github.com/deepnoodle-ai/svasm/image"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Assemble a source file and print a per-function summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0])
		},
	}
}

func runInspect(cmd *cobra.Command, srcPath string) error {
	registry, err := loadRegistry()
	if err != nil {
		return err
	}
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	program, err := assembler.New(registry).Assemble(string(src))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var b strings.Builder
	fmt.Fprintf(&b, "%-5s %-16s %-8s %-8s %s\n", "IDX", "NAME", "OFFSET", "LOCALS", "CODE BYTES")
	for i, u := range program.Units {
		fmt.Fprintf(&b, "%-5d %-16s 0x%04X   %-8d %d\n",
			i, u.Name, program.FunctionOffsets[i], u.LocalsAllocSize/2, len(u.ByteCode))
	}
	fmt.Fprintf(&b, "image: %d bytes, %d function(s)\n", len(image.Bytes(program)), len(program.Units))
	_, err = fmt.Fprint(out, b.String())
	return err
}
