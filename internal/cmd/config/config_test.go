package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventblocks/cli/internal/cmdtypes"
	"github.com/eventblocks/cli/internal/testutil"
)

func execute(t *testing.T, cfg *cmdtypes.GlobalConfig, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewConfigCmd(cfg)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func tempConfig(t *testing.T) (*cmdtypes.GlobalConfig, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".evb", "config.yaml")
	return &cmdtypes.GlobalConfig{ConfigPath: path}, path
}

func TestNewConfigCmd(t *testing.T) {
	cmd := NewConfigCmd(&cmdtypes.GlobalConfig{})
	assert.Equal(t, "config", cmd.Use)

	initCmd, _, err := cmd.Find([]string{"init"})
	require.NoError(t, err)
	assert.NotNil(t, initCmd.Flags().Lookup("force"))

	vetCmd, _, err := cmd.Find([]string{"vet"})
	require.NoError(t, err)
	assert.Equal(t, "vet", vetCmd.Name())
}

func TestConfigInit_CreatesFile(t *testing.T) {
	cfg, path := tempConfig(t)

	out, _, err := execute(t, cfg, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Config file created: "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# evb configuration")
	assert.Contains(t, string(data), "theme: default")
}

func TestConfigInit_ExistingConfig(t *testing.T) {
	cfg, path := tempConfig(t)
	testutil.WriteFile(t, filepath.Dir(path), filepath.Base(path), "theme: astra\n")

	_, _, err := execute(t, cfg, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	var exitErr *cmdtypes.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, cmdtypes.ExitGeneralError, exitErr.Code)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "theme: astra\n", string(data), "existing file must be untouched")
}

func TestConfigInit_ForceOverwrite(t *testing.T) {
	cfg, path := tempConfig(t)
	testutil.WriteFile(t, filepath.Dir(path), filepath.Base(path), "theme: astra\n")

	_, _, err := execute(t, cfg, "init", "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "theme: default")
}

func TestConfigVet(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantCode   int
		wantStderr string
	}{
		{
			name:    "valid config",
			content: "theme: astra\nserve:\n  addr: 127.0.0.1:9000\n",
		},
		{
			name:       "bad exporter",
			content:    "tracing:\n  exporter: zipkin\n",
			wantCode:   cmdtypes.ExitValidationError,
			wantStderr: "tracing.exporter",
		},
		{
			name:       "bad theme and sample rate",
			content:    "theme: Not A Slug\ntracing:\n  sampleRate: 2\n",
			wantCode:   cmdtypes.ExitValidationError,
			wantStderr: "tracing.sampleRate",
		},
		{
			name:     "invalid yaml",
			content:  "theme: [unclosed\n",
			wantCode: cmdtypes.ExitValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, path := tempConfig(t)
			testutil.WriteFile(t, filepath.Dir(path), filepath.Base(path), tt.content)

			out, errOut, err := execute(t, cfg, "vet")
			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Contains(t, out, "Configuration is valid")
				return
			}

			var exitErr *cmdtypes.ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, tt.wantCode, exitErr.Code)
			if tt.wantStderr != "" {
				assert.Contains(t, errOut, tt.wantStderr)
				assert.True(t, exitErr.Printed)
			}
		})
	}
}

func TestConfigVet_Missing(t *testing.T) {
	cfg, _ := tempConfig(t)

	_, _, err := execute(t, cfg, "vet")

	var exitErr *cmdtypes.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, cmdtypes.ExitNotFound, exitErr.Code)
	assert.Contains(t, err.Error(), "evb config init")
}

func TestConfigInitThenVet(t *testing.T) {
	cfg, _ := tempConfig(t)

	_, _, err := execute(t, cfg, "init")
	require.NoError(t, err)

	_, _, err = execute(t, cfg, "vet")
	assert.NoError(t, err)
}

func TestConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("EVB_CONFIG", "")

	t.Run("resolved at startup", func(t *testing.T) {
		got, err := configPath(&cmdtypes.GlobalConfig{ConfigPath: "~/custom.yaml"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "custom.yaml"), got)
	})

	t.Run("flag when run standalone", func(t *testing.T) {
		got, err := configPath(&cmdtypes.GlobalConfig{Flags: cmdtypes.GlobalFlags{Config: "/etc/evb.yaml"}})
		require.NoError(t, err)
		assert.Equal(t, "/etc/evb.yaml", got)
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv("EVB_CONFIG", "/srv/evb.yaml")
		got, err := configPath(nil)
		require.NoError(t, err)
		assert.Equal(t, "/srv/evb.yaml", got)
	})

	t.Run("default", func(t *testing.T) {
		got, err := configPath(nil)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".evb", "config.yaml"), got)
	})
}
