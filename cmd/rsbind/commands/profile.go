package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/rsbind/bindgen/profile"
	"github.com/teranos/rsbind/display"
)

var (
	profileFormat string
	profilePath   string
)

// NewProfileCmd returns the command group for inspecting target profiles
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect the target profile",
		Long: `Inspect the target profile: the sys crate, call prefix, preambles,
pointer policy, C base type table and reserved words used for generation.

The built-in Rust profile is used unless profile.path names a TOML file.
Its scalars replace the built-in values, base_types entries are merged,
reserved_words replaces the list and extra_reserved_words extends it.

Examples:
  rsbind profile show                    # Effective profile as TOML
  rsbind profile show --format json
  rsbind profile show --path my.toml     # A specific profile file`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the effective profile",
		RunE:  runProfileShow,
	}
	show.Flags().StringVar(&profileFormat, "format", display.FormatTOML, "Output format: toml, json, yaml")
	show.Flags().StringVar(&profilePath, "path", "", "Profile file (default: profile.path from config)")

	cmd.AddCommand(show)
	return cmd
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	path := profilePath
	if path == "" {
		var o overrides
		cfg, err := o.loadConfig()
		if err != nil {
			return err
		}
		path = cfg.Profile.Path
	}

	p, err := profile.Load(path)
	if err != nil {
		return err
	}

	data, err := p.Encode(profileFormat)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if profileFormat != display.FormatJSON {
		source := "built-in"
		if path != "" {
			source = path
		}
		fmt.Fprintf(out, "# rsbind %s profile (%s)\n", p.Language, source)
	}
	fmt.Fprint(out, string(data))
	return nil
}
