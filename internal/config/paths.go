package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// homeDirName is the evb directory under the user's home.
	homeDirName = ".evb"
	// configFileName is the config file inside homeDirName.
	configFileName = "config.yaml"
	// configEnvVar overrides the config file location.
	configEnvVar = "EVB_CONFIG"
)

// Paths holds the evb locations under the user's home directory.
type Paths struct {
	// ConfigFile is ~/.evb/config.yaml.
	ConfigFile string
	// HomeDir is ~/.evb.
	HomeDir string
}

// DefaultPaths returns the default paths for evb.
func DefaultPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, homeDirName)
	return &Paths{
		ConfigFile: filepath.Join(dir, configFileName),
		HomeDir:    dir,
	}, nil
}

// GetConfigFile returns the config file path without a --config flag:
// EVB_CONFIG when set, otherwise the default location.
func GetConfigFile() (string, error) {
	res, err := ResolveConfigPath(ResolveConfigPathOptions{})
	if err != nil {
		return "", err
	}
	return res.ConfigPath, nil
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// ExpandPath expands a leading "~" or "~/" to the user's home directory.
// "~user" forms are returned unchanged.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
