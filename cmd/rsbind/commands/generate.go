package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/rsbind/errors"
	"github.com/teranos/rsbind/logger"
	"github.com/teranos/rsbind/progress"
)

var (
	generateFlags  overrides
	generateStdout bool
)

// NewGenerateCmd returns the command that generates and writes the Rust units
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate Rust wrapper units",
		Long: `Generate function.rs, color_define.rs and types.rs from an API description.

The description is read from input.source, which may be a local path or any
go-getter source (https://..., git::..., s3::...). Units are formatted with
format.command when enabled; a formatter failure is reported as a warning and
the unformatted output is written.

Examples:
  rsbind generate
  rsbind generate -i ../raylib/parser/output/raylib_api.json -o src
  rsbind generate --no-format --stdout`,
		RunE: runGenerate,
	}
	generateFlags.register(cmd)
	cmd.Flags().BoolVar(&generateStdout, "stdout", false, "Print units to stdout instead of writing them")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	verbosity, jsonOutput := globalFlags(cmd)
	if generateStdout && jsonOutput {
		return errors.New("--stdout cannot be combined with --json")
	}

	cfg, err := generateFlags.loadConfig()
	if err != nil {
		return err
	}

	runID := progress.NewRunID()
	emitter := newEmitter(cmd, runID)
	p, err := newPipeline(cmd, cfg, emitter, runID)
	if err != nil {
		return err
	}

	ctx := logger.WithComponent(logger.WithRunID(cmd.Context(), runID), "generate")

	if generateStdout {
		report, err := p.Generate(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, u := range report.Result.Units {
			fmt.Fprintf(out, "// ---- %s ----\n%s", u.FileName, u.Text)
		}
		return nil
	}

	report, err := p.Run(ctx)
	if err != nil {
		return err
	}

	if !jsonOutput && logger.ShouldOutput(verbosity, logger.OutputResults) {
		for _, path := range report.Paths {
			pterm.Fprintln(cmd.ErrOrStderr(), "  "+path)
		}
	}
	if logger.ShouldOutput(verbosity, logger.OutputTiming) {
		logger.LoggerFromContext(ctx).Debugw("Run timing", logger.FieldDurationMS, report.Duration.Milliseconds())
	}
	return nil
}
