package config

import (
	"os"
	"sort"
	"strings"
)

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceUser        ConfigSource = "user"        // ~/.rsbind/config.toml
	SourceProject     ConfigSource = "project"     // nearest rsbind.toml
	SourceExplicit    ConfigSource = "explicit"    // --config
	SourceEnvironment ConfigSource = "environment" // RSBIND_* env vars
)

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source ConfigSource
	Path   string // File path or environment variable name
}

// SettingInfo contains metadata about a configuration setting
type SettingInfo struct {
	Key        string       `json:"key" yaml:"key"`
	Value      interface{}  `json:"value" yaml:"value"`
	Source     ConfigSource `json:"source" yaml:"source"`
	SourcePath string       `json:"source_path,omitempty" yaml:"source_path,omitempty"`
}

// Introspection describes the active configuration and where each value came from
type Introspection struct {
	Files    []string      `json:"files" yaml:"files"`
	Settings []SettingInfo `json:"settings" yaml:"settings"`
}

// Introspect returns every effective setting with its source
func Introspect() (*Introspection, error) {
	mu.Lock()
	defer mu.Unlock()

	v, err := initViper()
	if err != nil {
		return nil, err
	}

	files := make([]string, len(loadedFiles))
	copy(files, loadedFiles)

	out := &Introspection{Files: files}
	keys := v.AllKeys()
	sort.Strings(keys)

	for _, key := range keys {
		info := SourceInfo{Source: SourceDefault, Path: "built-in default"}
		if si, ok := keySources[key]; ok {
			info = si
		}
		envKey := EnvKey(key)
		if _, ok := os.LookupEnv(envKey); ok {
			info = SourceInfo{Source: SourceEnvironment, Path: envKey}
		}
		out.Settings = append(out.Settings, SettingInfo{
			Key:        key,
			Value:      v.Get(key),
			Source:     info.Source,
			SourcePath: info.Path,
		})
	}
	return out, nil
}

// EnvKey returns the environment variable that overrides a dotted key
func EnvKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// FileStatus reports a consulted config file and whether it exists
type FileStatus struct {
	Path   string       `json:"path" yaml:"path"`
	Source ConfigSource `json:"source" yaml:"source"`
	Exists bool         `json:"exists" yaml:"exists"`
}

// Where lists the config files rsbind consults, lowest precedence first
func Where() []FileStatus {
	mu.Lock()
	defer mu.Unlock()

	var out []FileStatus
	for _, p := range candidatePaths() {
		_, err := os.Stat(p)
		out = append(out, FileStatus{Path: p, Source: sourceForPath(p), Exists: err == nil})
	}
	return out
}

// CandidatePaths returns the config files consulted, lowest precedence first
func CandidatePaths() []string {
	mu.Lock()
	defer mu.Unlock()
	return candidatePaths()
}
