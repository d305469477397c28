package cmdutil

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/eventblocks/cli/internal/errors"
	"github.com/eventblocks/cli/internal/output"
)

func writeHello(w io.Writer) error {
	_, err := io.WriteString(w, "hello\n")
	return err
}

func TestWriteOutput_Stdout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, "", writeHello))
	assert.Equal(t, "hello\n", buf.String())
}

func TestWriteOutput_File(t *testing.T) {
	var stdout bytes.Buffer
	path := filepath.Join(t.TempDir(), "nested", "head.html")

	require.NoError(t, WriteOutput(&stdout, path, writeHello))

	assert.Empty(t, stdout.String())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestWriteOutput_WriteErrorLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, os.WriteFile(path, []byte("previous\n"), 0o644))

	boom := errors.New("boom")
	err := WriteOutput(io.Discard, path, func(io.Writer) error { return boom })
	assert.ErrorIs(t, err, boom)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous\n", string(data))
}

func TestExitErrorFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "validation error",
			err:      oerrors.NewValidationError("bad", "", "", ""),
			wantCode: oerrors.ExitValidationError,
		},
		{
			name:     "not found error",
			err:      oerrors.Wrap(oerrors.ErrNotFound, "registry"),
			wantCode: oerrors.ExitNotFound,
		},
		{
			name:     "unknown error",
			err:      errors.New("boom"),
			wantCode: oerrors.ExitGeneralError,
		},
		{
			name:     "existing exit error keeps its code",
			err:      &oerrors.ExitError{Code: 7, Err: errors.New("custom")},
			wantCode: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ExitErrorFor(tt.err)
			var exitErr *oerrors.ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, tt.wantCode, exitErr.Code)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	assert.NoError(t, ExitErrorFor(nil))
}

func TestPrintError_DetailError(t *testing.T) {
	var stderr bytes.Buffer
	detail := oerrors.NewNotFoundError("registry file does not exist", "/tmp/reg.yaml", "")

	err := PrintError(&stderr, "loading registry", detail)

	assert.Contains(t, stderr.String(), "registry file does not exist")
	assert.Contains(t, stderr.String(), "/tmp/reg.yaml")

	var exitErr *oerrors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.True(t, exitErr.Printed)
	assert.Equal(t, oerrors.ExitNotFound, exitErr.Code)
}

func TestPrintError_PlainError(t *testing.T) {
	var logBuf bytes.Buffer
	output.SetupLoggingTo(&logBuf, output.LogConfig{Timestamps: output.BoolPtr(false)})
	t.Cleanup(func() { output.SetupLogging(output.LogConfig{}) })

	var stderr bytes.Buffer
	err := PrintError(&stderr, "render failed", errors.New("boom"))

	assert.Empty(t, stderr.String())
	assert.Contains(t, logBuf.String(), "render failed")
	assert.Contains(t, logBuf.String(), "boom")

	var exitErr *oerrors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.True(t, exitErr.Printed)
	assert.Equal(t, oerrors.ExitGeneralError, exitErr.Code)
}
