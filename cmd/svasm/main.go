// Command svasm assembles stack-machine assembly text into a packed binary
// image rendered as an embeddable byte listing.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "svasm",
		Short:         "Assembler for stack VM bytecode images",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("ops", "", "Path to the operation table")
	root.PersistentFlags().Bool("no-color", false, "Disable colored output")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	viper.SetEnvPrefix("svasm")
	viper.AutomaticEnv()
	viper.BindPFlag("ops", root.PersistentFlags().Lookup("ops"))
	viper.BindPFlag("no-color", root.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))
	viper.BindEnv("no-color", "NO_COLOR")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newDefinesCmd())
	root.AddCommand(newInspectCmd())
	return root
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !useColor()}).
		Level(level).
		With().Timestamp().Str("run_id", newRunID()).Logger()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fatal(err)
	}
}
