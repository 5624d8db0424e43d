package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at temp dirs so no real
// config files leak into the test
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(work))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		SetConfigFile("")
		Reset()
	})

	SetConfigFile("")
	Reset()
	return work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "raylib_api.json", cfg.Input.Source)
	assert.Equal(t, "", cfg.Input.Format)
	assert.Equal(t, 60, cfg.Input.FetchTimeoutSeconds)
	assert.False(t, cfg.Input.BlockPrivateNetworks)
	assert.Equal(t, "src", cfg.Output.Dir)
	assert.Equal(t, "rsbind", cfg.Output.PackageName)
	assert.Equal(t, "function.rs", cfg.Output.FunctionsFile)
	assert.Equal(t, "color_define.rs", cfg.Output.ColorsFile)
	assert.Equal(t, "types.rs", cfg.Output.TypesFile)
	assert.Equal(t, "lf", cfg.Output.LineEnding)
	assert.True(t, cfg.Format.Enabled)
	assert.Equal(t, "rustfmt --edition 2021", cfg.Format.Command)
	assert.Equal(t, 30, cfg.Format.TimeoutSeconds)
	assert.Equal(t, 500, cfg.Watch.DebounceMS)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, path, `
[input]
source = "api/raylib_api.yaml"

[output]
dir = "generated"
line_ending = "crlf"

[format]
enabled = false
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "api/raylib_api.yaml", cfg.Input.Source)
	assert.Equal(t, "generated", cfg.Output.Dir)
	assert.Equal(t, "crlf", cfg.Output.LineEnding)
	assert.False(t, cfg.Format.Enabled)
	// Untouched keys keep their defaults
	assert.Equal(t, "function.rs", cfg.Output.FunctionsFile)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_Cascade(t *testing.T) {
	work := isolate(t)
	home := os.Getenv("HOME")

	writeFile(t, filepath.Join(home, ".rsbind", "config.toml"), `
[output]
dir = "user-dir"
package_name = "user-pkg"
`)
	// Project config lives one level up from the working directory
	sub := filepath.Join(work, "crate")
	require.NoError(t, os.MkdirAll(sub, 0755))
	require.NoError(t, os.Chdir(sub))
	writeFile(t, filepath.Join(work, "rsbind.toml"), `
[output]
dir = "project-dir"
`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "project-dir", cfg.Output.Dir)
	assert.Equal(t, "user-pkg", cfg.Output.PackageName)
	assert.Len(t, LoadedFiles(), 2)
}

func TestLoad_EnvOverridesFiles(t *testing.T) {
	work := isolate(t)
	writeFile(t, filepath.Join(work, "rsbind.toml"), `
[output]
dir = "project-dir"
`)
	t.Setenv("RSBIND_OUTPUT_DIR", "env-dir")
	t.Setenv("RSBIND_WATCH_DEBOUNCE_MS", "50")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env-dir", cfg.Output.Dir)
	assert.Equal(t, 50, cfg.Watch.DebounceMS)
}

func TestLoad_ExplicitFile(t *testing.T) {
	work := isolate(t)
	writeFile(t, filepath.Join(work, "rsbind.toml"), `
[input]
source = "project.json"
`)
	explicit := filepath.Join(t.TempDir(), "explicit.toml")
	writeFile(t, explicit, `
[input]
source = "explicit.json"
`)
	SetConfigFile(explicit)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "explicit.json", cfg.Input.Source)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	isolate(t)
	SetConfigFile(filepath.Join(t.TempDir(), "missing.toml"))

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_DotEnv(t *testing.T) {
	work := isolate(t)
	writeFile(t, filepath.Join(work, ".env"), "RSBIND_OUTPUT_PACKAGE_NAME=from-dotenv\n")
	t.Cleanup(func() { os.Unsetenv("RSBIND_OUTPUT_PACKAGE_NAME") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Output.PackageName)
}

func TestIntrospect(t *testing.T) {
	work := isolate(t)
	writeFile(t, filepath.Join(work, "rsbind.toml"), `
[output]
dir = "project-dir"
`)
	t.Setenv("RSBIND_FORMAT_ENABLED", "false")

	in, err := Introspect()
	require.NoError(t, err)
	require.Len(t, in.Files, 1)

	sources := make(map[string]SettingInfo)
	for _, s := range in.Settings {
		sources[s.Key] = s
	}
	assert.Equal(t, SourceProject, sources["output.dir"].Source)
	assert.Equal(t, "project-dir", sources["output.dir"].Value)
	assert.Equal(t, SourceEnvironment, sources["format.enabled"].Source)
	assert.Equal(t, "RSBIND_FORMAT_ENABLED", sources["format.enabled"].SourcePath)
	assert.Equal(t, SourceDefault, sources["input.source"].Source)
}

func TestWhere(t *testing.T) {
	work := isolate(t)
	writeFile(t, filepath.Join(work, "rsbind.toml"), "")

	files := Where()
	require.Len(t, files, 2)
	assert.Equal(t, SourceUser, files[0].Source)
	assert.False(t, files[0].Exists)
	assert.Equal(t, SourceProject, files[1].Source)
	assert.True(t, files[1].Exists)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "RSBIND_OUTPUT_LINE_ENDING", EnvKey("output.line_ending"))
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		v := viper.New()
		SetDefaults(v)
		cfg, err := LoadWithViper(v)
		require.NoError(t, err)
		return *cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "empty source", mutate: func(c *Config) { c.Input.Source = " " }, wantErr: "input.source"},
		{name: "unknown format", mutate: func(c *Config) { c.Input.Format = "xml" }, wantErr: "input.format"},
		{name: "yaml format", mutate: func(c *Config) { c.Input.Format = "yaml" }},
		{name: "negative fetch timeout", mutate: func(c *Config) { c.Input.FetchTimeoutSeconds = -1 }, wantErr: "input.fetch_timeout_seconds"},
		{name: "empty output dir", mutate: func(c *Config) { c.Output.Dir = "" }, wantErr: "output.dir"},
		{name: "empty package name", mutate: func(c *Config) { c.Output.PackageName = "" }, wantErr: "output.package_name"},
		{name: "file name with path", mutate: func(c *Config) { c.Output.TypesFile = "a/types.rs" }, wantErr: "output.types_file"},
		{name: "duplicate file names", mutate: func(c *Config) { c.Output.ColorsFile = "function.rs" }, wantErr: "both name"},
		{name: "bad line ending", mutate: func(c *Config) { c.Output.LineEnding = "cr" }, wantErr: "output.line_ending"},
		{name: "empty format command", mutate: func(c *Config) { c.Format.Command = "" }, wantErr: "format.command"},
		{name: "formatter disabled ignores command", mutate: func(c *Config) {
			c.Format.Enabled = false
			c.Format.Command = ""
			c.Format.TimeoutSeconds = 0
		}},
		{name: "zero timeout", mutate: func(c *Config) { c.Format.TimeoutSeconds = 0 }, wantErr: "format.timeout_seconds"},
		{name: "bad upstream version", mutate: func(c *Config) { c.Upstream.Version = "five" }, wantErr: "upstream.version"},
		{name: "good upstream version", mutate: func(c *Config) { c.Upstream.Version = "5.0.0" }},
		{name: "zero debounce is valid", mutate: func(c *Config) { c.Watch.DebounceMS = 0 }},
		{name: "negative debounce", mutate: func(c *Config) { c.Watch.DebounceMS = -1 }, wantErr: "watch.debounce_ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
