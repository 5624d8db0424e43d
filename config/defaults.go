package config

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Input
	v.SetDefault("input.source", "raylib_api.json")
	v.SetDefault("input.format", "") // Detected from the file extension
	v.SetDefault("input.fetch_timeout_seconds", 60)
	v.SetDefault("input.block_private_networks", false)

	// Output
	v.SetDefault("output.dir", "src")
	v.SetDefault("output.package_name", "rsbind")
	v.SetDefault("output.functions_file", "function.rs")
	v.SetDefault("output.colors_file", "color_define.rs")
	v.SetDefault("output.types_file", "types.rs")
	v.SetDefault("output.line_ending", "lf")

	// Formatter
	v.SetDefault("format.enabled", true)
	v.SetDefault("format.command", "rustfmt --edition 2021")
	v.SetDefault("format.timeout_seconds", 30)

	// Profile and upstream
	v.SetDefault("profile.path", "")
	v.SetDefault("upstream.version", "")

	// Watch
	v.SetDefault("watch.debounce_ms", 500)
}
