package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/rsbind/errors"
	"github.com/teranos/rsbind/logger"
	"github.com/teranos/rsbind/progress"
)

var checkFlags overrides

// NewCheckCmd returns the command that checks whether the written units are up to date
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check if generated units are up to date",
		Long: `Check if the units in output.dir match a fresh generation.

Generator metadata lines and line endings are ignored.

Exit codes:
  0 - Units are up to date
  1 - Error during check
  2 - Units are out of date

Examples:
  rsbind check
  rsbind check -o ../raylib-plain/src`,
		RunE: runCheck,
	}
	checkFlags.register(cmd)
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	_, jsonOutput := globalFlags(cmd)

	cfg, err := checkFlags.loadConfig()
	if err != nil {
		return err
	}

	runID := progress.NewRunID()
	emitter := newEmitter(cmd, runID)
	p, err := newPipeline(cmd, cfg, emitter, runID)
	if err != nil {
		return err
	}

	ctx := logger.WithComponent(logger.WithRunID(cmd.Context(), runID), "check")
	result, err := p.Check(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		emitter.EmitComplete(map[string]interface{}{
			"up_to_date":  result.UpToDate,
			"differences": result.Differences,
		})
	} else {
		out := cmd.OutOrStdout()
		if result.UpToDate {
			fmt.Fprintln(out, "✓ Generated units are up to date")
		} else {
			fmt.Fprintln(out, "✗ Generated units are out of date:")
			for _, diff := range result.Differences {
				fmt.Fprintf(out, "  - %s\n", diff)
			}
		}
	}

	if !result.UpToDate {
		return errors.WithHint(ErrStale, "run `rsbind generate` to update")
	}
	return nil
}
