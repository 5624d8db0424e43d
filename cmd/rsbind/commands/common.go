package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/rsbind/config"
	"github.com/teranos/rsbind/display"
	"github.com/teranos/rsbind/errors"
	"github.com/teranos/rsbind/logger"
	"github.com/teranos/rsbind/pipeline"
	"github.com/teranos/rsbind/progress"
)

// ErrStale is returned by `rsbind check` when the written units are out of date
var ErrStale = errors.New("generated units are out of date")

// Exit codes
const (
	ExitError = 1
	ExitStale = 2
)

// ExitCode maps a command error to the process exit code
func ExitCode(err error) int {
	if errors.Is(err, ErrStale) {
		return ExitStale
	}
	return ExitError
}

// overrides are command-line settings applied on top of the loaded config
type overrides struct {
	input    string
	output   string
	pkg      string
	noFormat bool
}

func (o *overrides) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.input, "input", "i", "", "API description: local path or go-getter URL (overrides input.source)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Output directory (overrides output.dir)")
	cmd.Flags().StringVar(&o.pkg, "package", "", "Package name written into file headers (overrides output.package_name)")
	cmd.Flags().BoolVar(&o.noFormat, "no-format", false, "Skip the external formatter")
}

// loadConfig loads the config cascade and applies flag overrides to a copy
func (o *overrides) loadConfig() (*config.Config, error) {
	loaded, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg := *loaded

	if o.input != "" {
		cfg.Input.Source = o.input
	}
	if o.output != "" {
		cfg.Output.Dir = o.output
	}
	if o.pkg != "" {
		cfg.Output.PackageName = o.pkg
	}
	if o.noFormat {
		cfg.Format.Enabled = false
	}
	return &cfg, nil
}

// globalFlags reads the persistent root flags
func globalFlags(cmd *cobra.Command) (verbosity int, jsonOutput bool) {
	verbosity, _ = cmd.Flags().GetCount("verbose")
	return verbosity, display.ShouldOutputJSON(cmd)
}

// newEmitter picks JSON events on stdout or pterm output on stderr
func newEmitter(cmd *cobra.Command, runID string) progress.Emitter {
	verbosity, jsonOutput := globalFlags(cmd)
	if jsonOutput {
		return progress.NewJSONEmitter(runID, cmd.OutOrStdout())
	}
	return progress.NewCLIEmitter(verbosity, cmd.ErrOrStderr())
}

// newPipeline builds a pipeline for one command invocation
func newPipeline(cmd *cobra.Command, cfg *config.Config, emitter progress.Emitter, runID string) (*pipeline.Pipeline, error) {
	verbosity, _ := globalFlags(cmd)
	log := logger.Logger.Named("pipeline").With(logger.FieldRunID, runID)

	if logger.ShouldOutput(verbosity, logger.OutputConfig) {
		log.Debugw("Effective configuration",
			logger.FieldSource, cfg.Input.Source,
			logger.FieldDir, cfg.Output.Dir,
			"package_name", cfg.Output.PackageName,
			"format", cfg.Format.Enabled,
			"profile", cfg.Profile.Path,
			"files", config.LoadedFiles(),
		)
	}

	return pipeline.New(cfg, pipeline.Options{
		Emitter:   emitter,
		Logger:    log,
		Verbosity: verbosity,
	})
}
