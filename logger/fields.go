package logger

import (
	"context"

	"go.uber.org/zap"
)

// Structured field names used by rsbind log lines
const (
	// Identity and context
	FieldRunID     = "run_id"
	FieldComponent = "component"

	// Operations
	FieldStage  = "stage"
	FieldSource = "source"
	FieldUnit   = "unit"

	// Description entities
	FieldFunction = "function"
	FieldDefine   = "define"
	FieldCType    = "c_type"
	FieldTarget   = "target_type"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"
	FieldHint  = "hint"

	// Counts and sizes
	FieldCount = "count"
	FieldSize  = "size"

	// Files and paths
	FieldFile    = "file"
	FieldDir     = "dir"
	FieldCommand = "command"

	// Versions
	FieldVersion    = "version"
	FieldConstraint = "constraint"
)

// Context keys for propagating logging context
type contextKey string

const (
	runIDKey     contextKey = "logger_run_id"
	componentKey contextKey = "logger_component"
)

// WithRunID adds a generation run ID to the context for logging
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext returns the run id and component stored in ctx as
// key/value pairs for the *w logging calls
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		fields = append(fields, FieldRunID, runID)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns Logger with the context fields attached
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns the global logger named after a component
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
