package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/rsbind/config"
	"github.com/teranos/rsbind/display"
	"github.com/teranos/rsbind/errors"
)

var configFormat string

// NewConfigCmd returns the command group for showing and validating configuration
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and validate configuration",
		Long: `Display and validate rsbind configuration.

Configuration sources (later overrides earlier):
1. Built-in defaults
2. User config (~/.rsbind/config.toml)
3. Project config (nearest rsbind.toml, searching up from the working directory)
4. Explicit config (--config)
5. Environment variables (RSBIND_* prefix, also read from .env)
6. Command line flags

Examples:
  rsbind config show                  # Show effective configuration
  rsbind config show --format json
  rsbind config validate              # Validate effective configuration
  rsbind config where                 # Show which files set which keys`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		RunE:  runConfigShow,
	}
	show.Flags().StringVar(&configFormat, "format", display.FormatTOML, "Output format: toml, json, yaml")

	cmd.AddCommand(show)
	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate effective configuration",
		RunE:  runConfigValidate,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "where",
		Short: "Show where configuration is loaded from",
		Long: `Show the configuration files rsbind consults and which exist,
followed by every effective setting and its source.`,
		RunE: runConfigWhere,
	})
	return cmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	data, err := display.Encode(cfg, configFormat)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if configFormat != display.FormatJSON {
		fmt.Fprintln(out, "# rsbind configuration")
	}
	_, err = out.Write(data)
	return err
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Configuration files (later overrides earlier):")
	for _, f := range config.Where() {
		mark := "✗"
		if f.Exists {
			mark = "✓"
		}
		fmt.Fprintf(out, "  %s [%s] %s\n", mark, f.Source, f.Path)
	}
	fmt.Fprintf(out, "  Environment: %s_* variables\n\n", config.EnvPrefix)

	intro, err := config.Introspect()
	if err != nil {
		return errors.Wrap(err, "failed to get config introspection")
	}

	fmt.Fprintln(out, "Active configuration:")
	for _, s := range intro.Settings {
		valueStr := fmt.Sprintf("%v", s.Value)
		if len(valueStr) > 50 {
			valueStr = valueStr[:47] + "..."
		}
		origin := string(s.Source)
		if s.SourcePath != "" {
			origin += ": " + s.SourcePath
		}
		fmt.Fprintf(out, "  %s = %s  (%s)\n", s.Key, valueStr, origin)
	}
	return nil
}
