package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/rsbind/config"
	"github.com/teranos/rsbind/errors"
	"github.com/teranos/rsbind/logger"
)

// NewRootCmd builds the rsbind command tree. Every call returns fresh
// commands and flag sets.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rsbind",
		Short: "Generate Rust wrappers from a C API description",
		Long: `rsbind - Generate Rust wrapper modules from raylib_api.json.

rsbind reads the machine-readable API description produced by raylib's
parser and writes three Rust units over a -sys crate:

  function.rs      safe-looking wrappers calling into the -sys crate
  color_define.rs  COLOR defines as Color constants
  types.rs         re-exports of structs, aliases, enums and callbacks

Available commands:
  generate - Generate and write the units
  check    - Check that the written units are up to date
  watch    - Regenerate when the description changes
  profile  - Show the effective target profile
  config   - Show and validate configuration
  version  - Show version information

Examples:
  rsbind generate                          # raylib_api.json -> src/
  rsbind generate -i https://host/raylib_api.json -o ../raylib-plain/src
  rsbind check                             # exit 2 if src/ is stale
  rsbind watch -v                          # regenerate on change`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initGlobals,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Cleanup()
		},
	}

	root.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv, -vvvv)")
	root.PersistentFlags().Bool("json", false, "Emit logs and progress as JSON")
	root.PersistentFlags().StringP("config", "c", "", "Config file merged above rsbind.toml and ~/.rsbind/config.toml")

	root.AddCommand(
		NewGenerateCmd(),
		NewCheckCmd(),
		NewWatchCmd(),
		NewProfileCmd(),
		NewConfigCmd(),
		NewVersionCmd(),
	)
	return root
}

// initGlobals sets up logging and the explicit config file before any command runs
func initGlobals(cmd *cobra.Command, args []string) error {
	verbosity, jsonOutput := globalFlags(cmd)
	if err := logger.Initialize(jsonOutput, verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	configFile, _ := cmd.Flags().GetString("config")
	config.SetConfigFile(configFile)
	return nil
}
