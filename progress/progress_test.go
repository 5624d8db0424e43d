package progress

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/rsbind/logger"
)

func decodeEvents(t *testing.T, buf *bytes.Buffer) []Event {
	t.Helper()
	var events []Event
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var ev Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
		events = append(events, ev)
	}
	require.NoError(t, scanner.Err())
	return events
}

func TestJSONEmitter_EventStructure(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewJSONEmitter("run-1", &buf)

	emitter.EmitStage(StageLoad, "reading raylib_api.json")
	emitter.EmitUnit("function.rs", 512, true)
	emitter.EmitWarning(StageEmit, errors.New("rustfmt not found"))
	emitter.EmitError(StageLoad, errors.New("bad json"))
	emitter.EmitInfo("hello")
	emitter.EmitComplete(map[string]interface{}{"units": 3})

	events := decodeEvents(t, &buf)
	require.Len(t, events, 6)

	types := make([]string, len(events))
	for i, ev := range events {
		types[i] = ev.Type
		assert.Equal(t, "run-1", ev.RunID)
		assert.False(t, ev.Timestamp.IsZero())
	}
	assert.Equal(t, []string{"stage", "unit", "warning", "error", "info", "complete"}, types)

	assert.Equal(t, "load", events[0].Data["stage"])
	assert.Equal(t, "function.rs", events[1].Data[logger.FieldFile])
	assert.Equal(t, float64(512), events[1].Data[logger.FieldCount])
	assert.Equal(t, true, events[1].Data["formatted"])
	assert.Equal(t, "rustfmt not found", events[2].Data["error"])
	assert.Equal(t, float64(3), events[5].Data["units"])
}

func TestJSONEmitter_RunID(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewJSONEmitter("", &buf)

	_, err := uuid.Parse(emitter.RunID())
	require.NoError(t, err, "empty run id is replaced with a uuid")

	emitter.SetRunID("second")
	emitter.EmitComplete(nil)

	events := decodeEvents(t, &buf)
	require.Len(t, events, 1)
	assert.Equal(t, "second", events[0].RunID)
	assert.NotNil(t, events[0].Data)
}

func TestNewRunID_Unique(t *testing.T) {
	assert.NotEqual(t, NewRunID(), NewRunID())
}

func TestCLIEmitter_VerbosityFiltering(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	var quiet bytes.Buffer
	emitter := NewCLIEmitter(logger.VerbosityUser, &quiet)
	emitter.EmitStage(StageLoad, "reading")
	emitter.EmitUnit("function.rs", 3, true)
	emitter.EmitInfo("should not show")
	assert.Empty(t, quiet.String())

	emitter.EmitError(StageLoad, errors.New("boom"))
	assert.Contains(t, quiet.String(), "boom", "errors are always shown")

	var verbose bytes.Buffer
	emitter = NewCLIEmitter(logger.VerbosityInfo, &verbose)
	emitter.EmitStage(StageLoad, "reading")
	emitter.EmitUnit("color_define.rs", 26, false)
	emitter.EmitComplete(map[string]interface{}{"units": 3, "functions": 512})

	out := verbose.String()
	assert.Contains(t, out, "reading")
	assert.Contains(t, out, "color_define.rs")
	assert.Contains(t, out, "26")
	assert.Contains(t, out, "(unformatted)")
	assert.Contains(t, out, "functions: 512")
	assert.Less(t, bytes.Index(verbose.Bytes(), []byte("functions:")), bytes.Index(verbose.Bytes(), []byte("units:")))
}

func TestEmittersSatisfyInterface(t *testing.T) {
	var _ Emitter = NewCLIEmitter(0, nil)
	var _ Emitter = NewJSONEmitter("x", nil)
	var _ RunStarter = NewJSONEmitter("x", nil)
}
