package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - Generated files, errors with hints, final status
//	1 (-v)      - + Stage progress, per-unit summaries
//	2 (-vv)     - + Timing, effective config and profile, skipped defines
//	3 (-vvv)    - + Each function signature and type translation
//	4 (-vvvv)   - + Full unit text and description dumps

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // Written files, check verdict
	OutputErrors                           // Errors with hints
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress    // Pipeline stage announcements
	OutputUnitSummary // "function.rs: 512 declarations"

	// Level 2 (-vv) - Detailed
	OutputTiming  // Stage timing
	OutputConfig  // Effective config and profile
	OutputSkipped // Non-COLOR defines and elided variadic markers

	// Level 3 (-vvv) - Debug
	OutputSignatures   // Each generated signature
	OutputTranslations // Each C type → target type translation

	// Level 4 (-vvvv) - Full dump
	OutputUnitText // Full generated text
	OutputDataDump // Loaded description contents
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	OutputProgress:    VerbosityInfo,
	OutputUnitSummary: VerbosityInfo,

	OutputTiming:  VerbosityDebug,
	OutputConfig:  VerbosityDebug,
	OutputSkipped: VerbosityDebug,

	OutputSignatures:   VerbosityTrace,
	OutputTranslations: VerbosityTrace,

	OutputUnitText: VerbosityAll,
	OutputDataDump: VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}

// categoryNames provides human-readable names for output categories
var categoryNames = map[OutputCategory]string{
	OutputResults:      "results",
	OutputErrors:       "errors",
	OutputUserStatus:   "status",
	OutputProgress:     "progress",
	OutputUnitSummary:  "unit-summary",
	OutputTiming:       "timing",
	OutputConfig:       "config",
	OutputSkipped:      "skipped",
	OutputSignatures:   "signatures",
	OutputTranslations: "translations",
	OutputUnitText:     "unit-text",
	OutputDataDump:     "data-dump",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
