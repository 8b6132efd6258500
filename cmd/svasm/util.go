package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gofrs/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"

	"github.com/deepnoodle-ai/svasm/op"
)

func useColor() bool {
	if viper.GetBool("no-color") {
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func red(s string) string {
	if !useColor() {
		return s
	}
	return color.New(color.FgRed).Sprint(s)
}

// friendlyError is implemented by errors that carry a source snippet in
// addition to their one-line message.
type friendlyError interface {
	error
	FriendlyErrorMessage() string
}

func fatal(err error) {
	var fe friendlyError
	msg := err.Error() + "\n"
	if errors.As(err, &fe) {
		msg = fe.FriendlyErrorMessage()
	}
	fmt.Fprint(os.Stderr, red(msg))
	os.Exit(1)
}

func newRunID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return "unknown"
	}
	return id.String()[:8]
}

// loadRegistry opens and parses the operation table named by the global
// --ops flag.
func loadRegistry() (*op.Registry, error) {
	path := viper.GetString("ops")
	if path == "" {
		return nil, fmt.Errorf("no operation table given (use --ops)")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	registry, err := op.Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return registry, nil
}

// writeOutput writes s to the file named by out, or to stdout when out is
// empty.
func writeOutput(out, s string) error {
	if out == "" {
		_, err := fmt.Print(s)
		return err
	}
	return os.WriteFile(out, []byte(s), 0o644)
}
