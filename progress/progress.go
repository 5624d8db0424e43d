// Package progress reports generation runs to the user.
//
// Implementations:
//   - CLIEmitter: pretty-printed terminal output using pterm
//   - JSONEmitter: one JSON event per line for tooling
package progress

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"github.com/teranos/rsbind/logger"
)

// Emitter receives progress for one or more generation runs
type Emitter interface {
	// EmitStage announces the start of a pipeline stage (load, generate, emit, write)
	EmitStage(stage string, message string)

	// EmitUnit reports one generated unit
	EmitUnit(file string, declarations int, formatted bool)

	// EmitWarning reports a recoverable problem
	EmitWarning(stage string, err error)

	// EmitComplete announces a successful run with summary counters
	EmitComplete(summary map[string]interface{})

	// EmitError announces a failed run
	EmitError(stage string, err error)

	// EmitInfo emits a general informational message
	EmitInfo(message string)
}

// Stage names
const (
	StageLoad     = "load"
	StageGenerate = "generate"
	StageEmit     = "emit"
	StageWrite    = "write"
	StageCheck    = "check"
	StageWatch    = "watch"
)

// NewRunID returns a fresh identifier for one generation run
func NewRunID() string {
	return uuid.NewString()
}

// CLIEmitter outputs pretty-printed progress to a terminal
type CLIEmitter struct {
	verbosity int
	out       io.Writer
}

// NewCLIEmitter creates a CLI progress emitter writing to out (stderr if nil)
func NewCLIEmitter(verbosity int, out io.Writer) *CLIEmitter {
	if out == nil {
		out = os.Stderr
	}
	return &CLIEmitter{verbosity: verbosity, out: out}
}

func (e *CLIEmitter) EmitStage(stage string, message string) {
	if !logger.ShouldOutput(e.verbosity, logger.OutputProgress) {
		return
	}
	pterm.Fprintln(e.out, fmt.Sprintf("🔄 %s: %s", pterm.LightCyan(stage), message))
}

func (e *CLIEmitter) EmitUnit(file string, declarations int, formatted bool) {
	if !logger.ShouldOutput(e.verbosity, logger.OutputUnitSummary) {
		return
	}
	suffix := ""
	if !formatted {
		suffix = pterm.Gray(" (unformatted)")
	}
	pterm.Fprintln(e.out, fmt.Sprintf("✅ %s: %s declarations%s", file, pterm.Green(fmt.Sprintf("%d", declarations)), suffix))
}

func (e *CLIEmitter) EmitWarning(stage string, err error) {
	pterm.Warning.WithWriter(e.out).Printf("%s: %v\n", stage, err)
}

// EmitComplete prints the completion line; summary counters need -v
func (e *CLIEmitter) EmitComplete(summary map[string]interface{}) {
	pterm.Success.WithWriter(e.out).Println("Generation complete")
	if !logger.ShouldOutput(e.verbosity, logger.OutputUnitSummary) {
		return
	}
	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pterm.Fprintln(e.out, fmt.Sprintf("  %s: %v", k, summary[k]))
	}
}

func (e *CLIEmitter) EmitError(stage string, err error) {
	pterm.Error.WithWriter(e.out).Printf("Error in %s: %v\n", stage, err)
}

func (e *CLIEmitter) EmitInfo(message string) {
	if logger.ShouldOutput(e.verbosity, logger.OutputProgress) {
		pterm.Info.WithWriter(e.out).Println(message)
	}
}

// Event is one structured progress event
type Event struct {
	Type      string                 `json:"type"` // "stage", "unit", "warning", "complete", "error", "info"
	RunID     string                 `json:"run_id"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// JSONEmitter outputs one JSON event per line
type JSONEmitter struct {
	mu      sync.Mutex
	runID   string
	encoder *json.Encoder
}

// NewJSONEmitter creates a JSON progress emitter writing to out (stdout if nil)
func NewJSONEmitter(runID string, out io.Writer) *JSONEmitter {
	if out == nil {
		out = os.Stdout
	}
	if runID == "" {
		runID = NewRunID()
	}
	return &JSONEmitter{runID: runID, encoder: json.NewEncoder(out)}
}

// RunID returns the identifier stamped on every event
func (e *JSONEmitter) RunID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runID
}

// SetRunID starts a new run; the watcher calls it before each regeneration
func (e *JSONEmitter) SetRunID(runID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.runID = runID
}

func (e *JSONEmitter) emit(eventType string, data map[string]interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if data == nil {
		data = map[string]interface{}{}
	}
	_ = e.encoder.Encode(Event{
		Type:      eventType,
		RunID:     e.runID,
		Timestamp: time.Now(),
		Data:      data,
	})
}

func (e *JSONEmitter) EmitStage(stage string, message string) {
	e.emit("stage", map[string]interface{}{
		"stage":   stage,
		"message": message,
	})
}

func (e *JSONEmitter) EmitUnit(file string, declarations int, formatted bool) {
	e.emit("unit", map[string]interface{}{
		logger.FieldFile:  file,
		logger.FieldCount: declarations,
		"formatted":       formatted,
	})
}

func (e *JSONEmitter) EmitWarning(stage string, err error) {
	e.emit("warning", map[string]interface{}{
		"stage": stage,
		"error": err.Error(),
	})
}

func (e *JSONEmitter) EmitComplete(summary map[string]interface{}) {
	e.emit("complete", summary)
}

func (e *JSONEmitter) EmitError(stage string, err error) {
	e.emit("error", map[string]interface{}{
		"stage": stage,
		"error": err.Error(),
	})
}

func (e *JSONEmitter) EmitInfo(message string) {
	e.emit("info", map[string]interface{}{
		"message": message,
	})
}

// RunStarter is implemented by emitters that tag events with a run id
type RunStarter interface {
	SetRunID(runID string)
}
