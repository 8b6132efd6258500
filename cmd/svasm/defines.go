package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/svasm/op"
)

func newDefinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defines",
		Short: "Emit symbolic constant definitions for the operation table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			prefix, _ := cmd.Flags().GetString("prefix")
			return runDefines(out, prefix)
		},
	}
	cmd.Flags().StringP("out", "o", "", "Write the definitions to this file instead of stdout")
	cmd.Flags().String("prefix", "OP_", "Prefix for the generated constant names")
	return cmd
}

func runDefines(outPath, prefix string) error {
	registry, err := loadRegistry()
	if err != nil {
		return err
	}
	var b strings.Builder
	if err := op.WriteDefines(&b, prefix, registry); err != nil {
		return err
	}
	return writeOutput(outPath, b.String())
}
