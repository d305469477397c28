package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for evb configuration.
const envPrefix = "EVB"

// keys lists every configuration key. Each is bound to an EVB_ variable
// built from the upper-cased key with dots replaced by underscores.
var keys = []string{
	"theme",
	"legacy",
	"registry",
	"assets.baseURL",
	"assets.version",
	"log.timestamps",
	"tracing.enabled",
	"tracing.exporter",
	"tracing.endpoint",
	"tracing.sampleRate",
	"serve.addr",
	"serve.cacheTTL",
}

// EnvVar returns the environment variable bound to a config key.
func EnvVar(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Loader handles loading and merging configuration from defaults, the
// config file and the environment.
type Loader struct {
	v        *viper.Viper
	file     map[string]any
	defaults map[string]any
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		_ = v.BindEnv(key, EnvVar(key))
	}

	l := &Loader{v: v, defaults: make(map[string]any)}
	d := DefaultConfig()
	l.setDefault("theme", d.Theme)
	l.setDefault("legacy", d.Legacy)
	l.setDefault("registry", d.Registry)
	l.setDefault("assets.baseURL", d.Assets.BaseURL)
	l.setDefault("assets.version", d.Assets.Version)
	l.setDefault("tracing.enabled", d.Tracing.Enabled)
	l.setDefault("tracing.exporter", d.Tracing.Exporter)
	l.setDefault("tracing.sampleRate", d.Tracing.SampleRate)
	l.setDefault("serve.addr", d.Serve.Addr)
	l.setDefault("serve.cacheTTL", d.Serve.CacheTTL)

	return l
}

func (l *Loader) setDefault(key string, value any) {
	l.v.SetDefault(key, value)
	l.defaults[key] = value
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path. A missing
// file is not an error: defaults and environment variables still apply.
// Environment variables take precedence over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		l.file = readFileSettings(expandedPath)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// InFile reports whether key was set by the loaded config file.
func (l *Loader) InFile(key string) bool {
	return l.FileValue(key) != nil
}

// FileValue returns the value of key as written in the config file, or nil
// when the file does not set it. Environment overrides are not applied.
func (l *Loader) FileValue(key string) any {
	var cur any = l.file
	for _, p := range strings.Split(strings.ToLower(key), ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[p]
	}
	return cur
}

func readFileSettings(path string) map[string]any {
	fv := viper.New()
	fv.SetConfigFile(path)
	fv.SetConfigType("yaml")
	if err := fv.ReadInConfig(); err != nil {
		return nil
	}
	return fv.AllSettings()
}

// ConfigFile returns the path of the loaded config file.
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return false, err
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
