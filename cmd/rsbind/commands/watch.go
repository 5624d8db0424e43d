package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/rsbind/apidesc"
	"github.com/teranos/rsbind/config"
	"github.com/teranos/rsbind/errors"
	"github.com/teranos/rsbind/logger"
	"github.com/teranos/rsbind/progress"
	"github.com/teranos/rsbind/watch"
)

var watchFlags overrides

// NewWatchCmd returns the command that regenerates whenever the description,
// config or profile changes
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate when inputs change",
		Long: `Generate once, then regenerate whenever the API description, a loaded
config file or the profile file changes. Changes are debounced by
watch.debounce_ms. A failed run is reported and watching continues.

Only local descriptions can be watched.

Examples:
  rsbind watch
  rsbind watch -v -i ../raylib/parser/output/raylib_api.json`,
		RunE: runWatch,
	}
	watchFlags.register(cmd)
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := watchFlags.loadConfig()
	if err != nil {
		return err
	}
	if apidesc.IsRemote(cfg.Input.Source) {
		return errors.WithHint(
			errors.Newf("cannot watch remote source %s", cfg.Input.Source),
			"download the description and point input.source at the local copy",
		)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithComponent(ctx, "watch")

	emitter := newEmitter(cmd, progress.NewRunID())
	log := logger.ComponentLogger("watch")

	run := func(ctx context.Context) error {
		// Config files are watched too, so every run reloads them
		config.Reset()
		cfg, err := watchFlags.loadConfig()
		if err != nil {
			return err
		}

		runID := progress.NewRunID()
		if rs, ok := emitter.(progress.RunStarter); ok {
			rs.SetRunID(runID)
		}
		p, err := newPipeline(cmd, cfg, emitter, runID)
		if err != nil {
			emitter.EmitError(progress.StageLoad, err)
			return err
		}
		_, err = p.Run(logger.WithRunID(ctx, runID))
		return err
	}

	if err := run(ctx); err != nil {
		log.Errorw("Initial generation failed", logger.FieldError, err.Error())
	}

	paths := []string{cfg.Input.Source}
	paths = append(paths, config.LoadedFiles()...)
	if cfg.Profile.Path != "" {
		paths = append(paths, cfg.Profile.Path)
	}

	w, err := watch.New(paths, time.Duration(cfg.Watch.DebounceMS)*time.Millisecond, run, log)
	if err != nil {
		return err
	}

	emitter.EmitStage(progress.StageWatch, "watching for changes (Ctrl+C to stop)")
	log.Infow("Watching", logger.FieldCount, len(w.Files()))
	return w.Run(ctx)
}
