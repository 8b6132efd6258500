package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/svasm/assembler"
	"github.com/deepnoodle-ai/svasm/image"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build FILE",
		Short: "Assemble a source file into an embeddable byte listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			name, _ := cmd.Flags().GetString("name")
			return runBuild(args[0], out, name)
		},
	}
	cmd.Flags().StringP("out", "o", "", "Write the listing to this file instead of stdout")
	cmd.Flags().String("name", "", "Wrap the listing in an array definition with this identifier")
	return cmd
}

func runBuild(srcPath, outPath, name string) error {
	log := newLogger()

	registry, err := loadRegistry()
	if err != nil {
		return err
	}
	log.Debug().Int("operations", registry.Size()).Msg("operation table loaded")

	src, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}

	source := string(src)
	_, count := assembler.FunctionIndexes(source)
	log.Debug().Int("functions", count).Str("file", srcPath).Msg("name pass complete")

	program, err := assembler.New(registry).Assemble(source)
	if err != nil {
		return err
	}
	for i, u := range program.Units {
		log.Debug().
			Int("index", i).
			Str("name", u.Name).
			Int("code_bytes", len(u.ByteCode)).
			Uint16("offset", program.FunctionOffsets[i]).
			Msg("function assembled")
	}

	listing := image.Render(program)
	if name != "" {
		listing = "static const unsigned char " + name + "[] =\n" +
			strings.TrimSuffix(listing, "\n") + ";\n"
	}
	log.Debug().Int("image_bytes", len(image.Bytes(program))).Msg("image rendered")
	return writeOutput(outPath, listing)
}
