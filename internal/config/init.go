package config

import (
	"bytes"
	"fmt"

	"github.com/natefinch/atomic"

	oerrors "github.com/eventblocks/cli/internal/errors"
)

// ErrConfigExists is returned by WriteDefault when the file exists and
// force is not set.
var ErrConfigExists = fmt.Errorf("config file already exists: %w", oerrors.ErrValidation)

// WriteDefault writes the default configuration to path, creating its
// directory. The file is replaced atomically so a reader never sees a
// partial config.
func WriteDefault(path string, force bool) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	exists, err := ConfigFileExists(expanded)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if exists && !force {
		return ErrConfigExists
	}

	data, err := DefaultConfigYAML()
	if err != nil {
		return err
	}
	if err := EnsureDir(expanded); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := atomic.WriteFile(expanded, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
