package cmdutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/natefinch/atomic"

	"github.com/eventblocks/cli/internal/config"
	oerrors "github.com/eventblocks/cli/internal/errors"
	"github.com/eventblocks/cli/internal/output"
)

// WriteOutput runs write against stdout, or when path is set, against a
// buffer that then replaces path atomically.
func WriteOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}

	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}

	expanded, err := config.ExpandPath(path)
	if err != nil {
		return fmt.Errorf("expanding output path: %w", err)
	}
	if err := config.EnsureDir(expanded); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := atomic.WriteFile(expanded, &buf); err != nil {
		return fmt.Errorf("writing %s: %w", expanded, err)
	}
	output.Debug("wrote output", "path", expanded)
	return nil
}

// ExitErrorFor wraps err in an *ExitError whose code matches its sentinel.
// Errors that already carry an exit code are returned as is.
func ExitErrorFor(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err}
}

// PrintError reports err on stderr and returns it wrapped in an *ExitError
// marked as printed. Detailed errors are written as is; anything else goes
// through the logger with msg as the summary.
func PrintError(stderr io.Writer, msg string, err error) error {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		fmt.Fprint(stderr, detail.Error())
	} else {
		output.Error(msg, "error", err)
	}
	return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
}
