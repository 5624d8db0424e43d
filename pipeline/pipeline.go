// Package pipeline runs one generation: resolve the description, generate
// units, post-process them, then write or check.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/rsbind/apidesc"
	"github.com/teranos/rsbind/bindgen"
	"github.com/teranos/rsbind/bindgen/profile"
	"github.com/teranos/rsbind/bindgen/rust"
	"github.com/teranos/rsbind/config"
	"github.com/teranos/rsbind/errors"
	"github.com/teranos/rsbind/logger"
	"github.com/teranos/rsbind/progress"
	"github.com/teranos/rsbind/version"
)

// Options configure a Pipeline beyond the file configuration
type Options struct {
	Emitter   progress.Emitter
	Logger    *zap.SugaredLogger
	Verbosity int

	// Formatter replaces the configured format.command when set
	Formatter bindgen.Formatter

	// GeneratorID overrides the metadata header line; empty uses the build version
	GeneratorID string
}

// Pipeline is a configured generator. It holds no per-run state.
type Pipeline struct {
	cfg       *config.Config
	profile   *profile.Profile
	generator *rust.Generator
	formatter bindgen.Formatter
	emitter   progress.Emitter
	log       *zap.SugaredLogger
	verbosity int
	genID     string
}

// Report summarises a completed run
type Report struct {
	Result   *bindgen.Result
	Paths    []string
	Stats    apidesc.Stats
	Upstream string
	Duration time.Duration
}

// New validates cfg, loads the target profile and prepares the formatter
func New(cfg *config.Config, opts Options) (*Pipeline, error) {
	if cfg == nil {
		return nil, errors.New("pipeline: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithHint(
			errors.Wrap(err, "invalid configuration"),
			"run `rsbind config where` to see which file sets it",
		)
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	emitter := opts.Emitter
	if emitter == nil {
		emitter = progress.NewCLIEmitter(opts.Verbosity, nil)
	}

	p, err := profile.Load(cfg.Profile.Path)
	if err != nil {
		return nil, err
	}
	if err := p.CheckVersion(cfg.Upstream.Version); err != nil {
		return nil, err
	}

	formatter := opts.Formatter
	if formatter == nil && cfg.Format.Enabled {
		cf, err := bindgen.NewCommandFormatter(cfg.Format.Command, time.Duration(cfg.Format.TimeoutSeconds)*time.Second)
		if err != nil {
			return nil, err
		}
		formatter = cf
	}

	genID := opts.GeneratorID
	if genID == "" {
		genID = version.Get().Generator()
	}

	return &Pipeline{
		cfg:       cfg,
		profile:   p,
		generator: rust.NewGenerator(p, log.Named("rust")),
		formatter: formatter,
		emitter:   emitter,
		log:       log,
		verbosity: opts.Verbosity,
		genID:     genID,
	}, nil
}

// Config returns the configuration the pipeline was built from
func (p *Pipeline) Config() *config.Config {
	return p.cfg
}

// Profile returns the effective target profile
func (p *Pipeline) Profile() *profile.Profile {
	return p.profile
}

// Files returns the configured unit file names
func (p *Pipeline) Files() bindgen.FileNames {
	return bindgen.FileNames{
		Functions: p.cfg.Output.FunctionsFile,
		Colors:    p.cfg.Output.ColorsFile,
		Types:     p.cfg.Output.TypesFile,
	}
}

// Load resolves and parses the configured description
func (p *Pipeline) Load(ctx context.Context) (*apidesc.Description, error) {
	p.emitter.EmitStage(progress.StageLoad, p.cfg.Input.Source)

	src, err := apidesc.Resolve(ctx, p.cfg.Input.Source, apidesc.FetchOptions{
		Timeout:              time.Duration(p.cfg.Input.FetchTimeoutSeconds) * time.Second,
		BlockPrivateNetworks: p.cfg.Input.BlockPrivateNetworks,
	}, p.log)
	if err != nil {
		return nil, err
	}
	defer src.Cleanup()

	desc, err := apidesc.LoadFile(src.LocalPath, apidesc.Format(p.cfg.Input.Format))
	if err != nil {
		return nil, err
	}

	if logger.ShouldOutput(p.verbosity, logger.OutputDataDump) {
		p.log.Debugw("Loaded description",
			logger.FieldSource, src.LocalPath,
			"stats", desc.Stats(),
		)
	}
	return desc, nil
}

// Generate loads the description and returns post-processed units without writing them
func (p *Pipeline) Generate(ctx context.Context) (*Report, error) {
	start := time.Now()

	desc, err := p.Load(ctx)
	if err != nil {
		p.emitter.EmitError(progress.StageLoad, err)
		return nil, err
	}

	upstream := p.upstreamVersion(desc)

	p.emitter.EmitStage(progress.StageGenerate, p.generator.Language())
	result, err := p.generator.Generate(desc, bindgen.Options{
		PackageName:     p.cfg.Output.PackageName,
		GeneratorID:     p.genID,
		UpstreamVersion: upstream,
		Files:           p.Files(),
		Verbosity:       p.verbosity,
	})
	if err != nil {
		p.emitter.EmitError(progress.StageGenerate, err)
		return nil, err
	}

	p.emitter.EmitStage(progress.StageEmit, p.formatterName())
	err = bindgen.Emit(ctx, result, bindgen.EmitOptions{
		LineEnding: bindgen.LineEnding(p.cfg.Output.LineEnding),
		Formatter:  p.formatter,
	}, p.log)
	if err != nil {
		p.emitter.EmitError(progress.StageEmit, err)
		return nil, err
	}
	for _, w := range result.Warnings {
		p.emitter.EmitWarning(progress.StageEmit, w)
	}

	if logger.ShouldOutput(p.verbosity, logger.OutputUnitText) {
		for _, u := range result.Units {
			p.log.Debugw("Unit text", logger.FieldUnit, u.FileName, "text", u.Text)
		}
	}

	return &Report{
		Result:   result,
		Stats:    desc.Stats(),
		Upstream: upstream,
		Duration: time.Since(start),
	}, nil
}

// Run generates and writes every unit into output.dir
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report, err := p.Generate(ctx)
	if err != nil {
		return nil, err
	}

	p.emitter.EmitStage(progress.StageWrite, p.cfg.Output.Dir)
	paths, err := bindgen.WriteResult(p.cfg.Output.Dir, report.Result)
	if err != nil {
		p.emitter.EmitError(progress.StageWrite, err)
		return nil, err
	}
	report.Paths = paths
	report.Duration = report.Duration.Round(time.Millisecond)

	for _, u := range report.Result.Units {
		p.emitter.EmitUnit(u.FileName, u.Declarations, u.Formatted)
	}
	p.emitter.EmitComplete(Summary(report))

	p.log.Infow("Generation complete",
		logger.FieldDir, p.cfg.Output.Dir,
		logger.FieldCount, len(paths),
		logger.FieldDurationMS, report.Duration.Milliseconds(),
	)
	return report, nil
}

// Check generates into memory and compares with output.dir
func (p *Pipeline) Check(ctx context.Context) (*bindgen.CheckResult, error) {
	report, err := p.Generate(ctx)
	if err != nil {
		return nil, err
	}

	p.emitter.EmitStage(progress.StageCheck, p.cfg.Output.Dir)
	check, err := bindgen.Check(p.cfg.Output.Dir, report.Result)
	if err != nil {
		p.emitter.EmitError(progress.StageCheck, err)
		return nil, err
	}
	return check, nil
}

// Summary returns the counters reported on completion
func Summary(r *Report) map[string]interface{} {
	summary := map[string]interface{}{
		"functions":        r.Stats.Functions,
		"colors":           r.Stats.Colors,
		"types":            r.Stats.Types,
		"skipped_defines":  r.Result.SkippedDefines,
		"elided_variadics": r.Result.ElidedVariadics,
		"warnings":         len(r.Result.Warnings),
		"duration_ms":      r.Duration.Milliseconds(),
	}
	if r.Upstream != "" {
		summary["upstream"] = r.Upstream
	}
	return summary
}

// upstreamVersion prefers upstream.version; otherwise the description's own
// version define is used, and a version outside the profile's range is a warning
func (p *Pipeline) upstreamVersion(desc *apidesc.Description) string {
	if p.cfg.Upstream.Version != "" {
		return p.cfg.Upstream.Version
	}
	v, ok := desc.UpstreamVersion()
	if !ok {
		return ""
	}
	if err := p.profile.CheckVersion(v); err != nil {
		p.emitter.EmitWarning(progress.StageLoad, err)
		p.log.Warnw("Description version is not supported by the profile",
			logger.FieldVersion, v,
			logger.FieldConstraint, p.profile.SupportedVersions,
		)
	}
	return v
}

func (p *Pipeline) formatterName() string {
	switch f := p.formatter.(type) {
	case nil:
		return "no formatter"
	case *bindgen.CommandFormatter:
		return f.String()
	default:
		return "custom formatter"
	}
}
