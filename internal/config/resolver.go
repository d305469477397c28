package config

import (
	"os"

	"github.com/eventblocks/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is one configuration value with the source it came from
// and the lower-precedence values it shadows.
type ResolvedValue struct {
	Key      string
	Value    any
	Source   ConfigSource
	Shadowed map[ConfigSource]any
}

// FlagValue is a command-line flag bound to a config key. Set is false
// when the flag was not given, so its zero value never wins.
type FlagValue struct {
	Value any
	Set   bool
}

// candidate is a value offered by one source. Candidates are listed in
// precedence order; the first wins and the rest are shadowed.
type candidate struct {
	source ConfigSource
	value  any
}

func pick(cands []candidate) (any, ConfigSource, map[ConfigSource]any) {
	shadowed := make(map[ConfigSource]any)
	if len(cands) == 0 {
		return nil, "", shadowed
	}
	for _, c := range cands[1:] {
		shadowed[c.source] = c.value
	}
	return cands[0].value, cands[0].source, shadowed
}

// Resolve resolves key using precedence flag > env > config > default.
// Keys that no source sets resolve to a nil Value with an empty Source.
func (l *Loader) Resolve(key string, flag FlagValue) ResolvedValue {
	var cands []candidate
	if flag.Set {
		cands = append(cands, candidate{SourceFlag, flag.Value})
	}
	if env := os.Getenv(EnvVar(key)); env != "" {
		cands = append(cands, candidate{SourceEnv, env})
	}
	if fv := l.FileValue(key); fv != nil {
		cands = append(cands, candidate{SourceConfig, fv})
	}
	if dv, ok := l.defaults[key]; ok {
		cands = append(cands, candidate{SourceDefault, dv})
	}

	rv := ResolvedValue{Key: key}
	rv.Value, rv.Source, rv.Shadowed = pick(cands)
	return rv
}

// ResolveAll resolves every known key. flags maps config keys to the
// command-line flags bound to them.
func (l *Loader) ResolveAll(flags map[string]FlagValue) []ResolvedValue {
	out := make([]ResolvedValue, 0, len(keys))
	for _, key := range keys {
		out = append(out, l.Resolve(key, flags[key]))
	}
	return out
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value, empty when unset.
	FlagValue string
}

// ResolveConfigPathResult is the config file path and where it came from.
type ResolveConfigPathResult struct {
	ConfigPath string
	Source     ConfigSource
	Shadowed   map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path with the same precedence
// as config values: --config, then EVB_CONFIG, then ~/.evb/config.yaml.
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolveConfigPathResult, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolveConfigPathResult{Shadowed: map[ConfigSource]string{}}, err
	}

	var cands []candidate
	if opts.FlagValue != "" {
		cands = append(cands, candidate{SourceFlag, opts.FlagValue})
	}
	if env := os.Getenv(configEnvVar); env != "" {
		cands = append(cands, candidate{SourceEnv, env})
	}
	cands = append(cands, candidate{SourceDefault, paths.ConfigFile})

	value, source, shadowed := pick(cands)
	result := ResolveConfigPathResult{
		ConfigPath: value.(string),
		Source:     source,
		Shadowed:   make(map[ConfigSource]string, len(shadowed)),
	}
	for src, v := range shadowed {
		result.Shadowed[src] = v.(string)
	}
	return result, nil
}

// LogResolvedValues logs each resolved value and what it shadows at debug
// level. Keys no source sets are skipped.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		if v.Source == "" {
			continue
		}
		kv := []any{"key", v.Key, "value", v.Value, "source", v.Source}
		for _, src := range []ConfigSource{SourceEnv, SourceConfig, SourceDefault} {
			if sv, ok := v.Shadowed[src]; ok {
				kv = append(kv, "shadows_"+string(src), sv)
			}
		}
		output.Debug("config value resolved", kv...)
	}
}
