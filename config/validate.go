package config

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/rsbind/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input.Source) == "" {
		return errors.New("input.source cannot be empty")
	}
	switch c.Input.Format {
	case "", "json", "yaml":
	default:
		return errors.Newf("input.format must be json, yaml or empty, got %q", c.Input.Format)
	}
	if c.Input.FetchTimeoutSeconds < 0 {
		return errors.Newf("input.fetch_timeout_seconds must be >= 0, got %d", c.Input.FetchTimeoutSeconds)
	}

	if c.Output.Dir == "" {
		return errors.New("output.dir cannot be empty")
	}
	if c.Output.PackageName == "" {
		return errors.New("output.package_name cannot be empty")
	}

	// Unit file names: non-empty, plain names, distinct
	seen := make(map[string]string, 3)
	for _, f := range []struct{ key, name string }{
		{"output.functions_file", c.Output.FunctionsFile},
		{"output.colors_file", c.Output.ColorsFile},
		{"output.types_file", c.Output.TypesFile},
	} {
		if f.name == "" {
			return errors.Newf("%s cannot be empty", f.key)
		}
		if strings.ContainsAny(f.name, `/\`) {
			return errors.Newf("%s must be a file name, got %q", f.key, f.name)
		}
		if other, dup := seen[f.name]; dup {
			return errors.Newf("%s and %s both name %q", other, f.key, f.name)
		}
		seen[f.name] = f.key
	}

	switch c.Output.LineEnding {
	case "lf", "crlf":
	default:
		return errors.Newf("output.line_ending must be lf or crlf, got %q", c.Output.LineEnding)
	}

	// Formatter settings only matter when enabled
	if c.Format.Enabled {
		if strings.TrimSpace(c.Format.Command) == "" {
			return errors.New("format.command cannot be empty when enabled")
		}
		if c.Format.TimeoutSeconds <= 0 {
			return errors.Newf("format.timeout_seconds must be > 0, got %d", c.Format.TimeoutSeconds)
		}
	}

	if c.Upstream.Version != "" {
		if _, err := semver.NewVersion(c.Upstream.Version); err != nil {
			return errors.Wrapf(err, "upstream.version %q is not a semantic version", c.Upstream.Version)
		}
	}

	// 0 falls back to the watcher default
	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	return nil
}
