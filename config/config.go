// Package config loads rsbind settings from defaults, TOML files, .env and
// RSBIND_* environment variables.
package config

// Config represents the rsbind configuration
type Config struct {
	Input    InputConfig    `mapstructure:"input" toml:"input" yaml:"input" json:"input"`
	Output   OutputConfig   `mapstructure:"output" toml:"output" yaml:"output" json:"output"`
	Format   FormatConfig   `mapstructure:"format" toml:"format" yaml:"format" json:"format"`
	Profile  ProfileConfig  `mapstructure:"profile" toml:"profile" yaml:"profile" json:"profile"`
	Upstream UpstreamConfig `mapstructure:"upstream" toml:"upstream" yaml:"upstream" json:"upstream"`
	Watch    WatchConfig    `mapstructure:"watch" toml:"watch" yaml:"watch" json:"watch"`
}

// InputConfig configures where the API description comes from
type InputConfig struct {
	Source string `mapstructure:"source" toml:"source" yaml:"source" json:"source"` // Local path or go-getter URL
	Format string `mapstructure:"format" toml:"format" yaml:"format" json:"format"` // json, yaml, or empty for auto

	FetchTimeoutSeconds  int  `mapstructure:"fetch_timeout_seconds" toml:"fetch_timeout_seconds" yaml:"fetch_timeout_seconds" json:"fetch_timeout_seconds"`
	BlockPrivateNetworks bool `mapstructure:"block_private_networks" toml:"block_private_networks" yaml:"block_private_networks" json:"block_private_networks"` // Refuse http(s) sources on localhost or private addresses
}

// OutputConfig configures the generated units
type OutputConfig struct {
	Dir           string `mapstructure:"dir" toml:"dir" yaml:"dir" json:"dir"`
	PackageName   string `mapstructure:"package_name" toml:"package_name" yaml:"package_name" json:"package_name"` // Written into the file header
	FunctionsFile string `mapstructure:"functions_file" toml:"functions_file" yaml:"functions_file" json:"functions_file"`
	ColorsFile    string `mapstructure:"colors_file" toml:"colors_file" yaml:"colors_file" json:"colors_file"`
	TypesFile     string `mapstructure:"types_file" toml:"types_file" yaml:"types_file" json:"types_file"`
	LineEnding    string `mapstructure:"line_ending" toml:"line_ending" yaml:"line_ending" json:"line_ending"` // lf or crlf
}

// FormatConfig configures the external source formatter
type FormatConfig struct {
	Enabled        bool   `mapstructure:"enabled" toml:"enabled" yaml:"enabled" json:"enabled"`
	Command        string `mapstructure:"command" toml:"command" yaml:"command" json:"command"` // Shell-quoted; reads stdin, writes stdout
	TimeoutSeconds int    `mapstructure:"timeout_seconds" toml:"timeout_seconds" yaml:"timeout_seconds" json:"timeout_seconds"`
}

// ProfileConfig selects the target profile
type ProfileConfig struct {
	Path string `mapstructure:"path" toml:"path" yaml:"path" json:"path"` // TOML overrides; empty = built-in Rust profile
}

// UpstreamConfig records the version of the described C library
type UpstreamConfig struct {
	Version string `mapstructure:"version" toml:"version" yaml:"version" json:"version"`
}

// WatchConfig configures `rsbind watch`
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms" yaml:"debounce_ms" json:"debounce_ms"`
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// File names searched for configuration
const (
	ProjectConfigName = "rsbind.toml"
	UserConfigDir     = ".rsbind"
	UserConfigName    = "config.toml"
	EnvPrefix         = "RSBIND"
)
