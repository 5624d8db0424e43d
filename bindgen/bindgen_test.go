package bindgen

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/rsbind/errors"
)

func sampleResult() *Result {
	return &Result{
		Language:    "rust",
		PackageName: "raylib-plain",
		Units: []Unit{
			{Name: UnitFunctions, FileName: "function.rs", Text: "/* automatically generated by raylib-plain */\r\n/* generator: rsbind dev+abc */\r\npub fn a() {}\r\n"},
			{Name: UnitColors, FileName: "color_define.rs", Text: "pub const A: Color = Color { r: 1, g: 2, b: 3, a: 4 };\r"},
			{Name: UnitTypes, FileName: "types.rs", Text: "pub use rl::Vector2;\n"},
		},
	}
}

// stubFormatter stands in for an external formatter
type stubFormatter struct {
	fail map[string]bool
	out  string
}

func (f stubFormatter) Format(ctx context.Context, fileName string, src []byte) ([]byte, error) {
	if f.fail[fileName] {
		return nil, errors.Mark(errors.New("formatter exited 1"), errors.ErrFormat)
	}
	if f.out != "" {
		return []byte(f.out), nil
	}
	return src, nil
}

func TestNormalizeLineEndings(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		ending LineEnding
		want   string
	}{
		{"crlf to lf", "a\r\nb\r\n", LF, "a\nb\n"},
		{"lone cr to lf", "a\rb", LF, "a\nb"},
		{"mixed to crlf", "a\nb\r\nc\r", CRLF, "a\r\nb\r\nc\r\n"},
		{"empty ending means lf", "a\r\nb", "", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLineEndings(tt.in, tt.ending))
		})
	}
}

func TestEmit_NoFormatter(t *testing.T) {
	result := sampleResult()
	require.NoError(t, Emit(context.Background(), result, EmitOptions{LineEnding: LF}, nil))

	assert.Equal(t, "/* automatically generated by raylib-plain */\n/* generator: rsbind dev+abc */\npub fn a() {}\n", result.Units[0].Text)
	assert.Equal(t, "pub const A: Color = Color { r: 1, g: 2, b: 3, a: 4 };\n", result.Units[1].Text)
	assert.False(t, result.Units[0].Formatted)
	assert.Empty(t, result.Warnings)
}

func TestEmit_Formatter(t *testing.T) {
	result := sampleResult()
	opts := EmitOptions{LineEnding: CRLF, Formatter: stubFormatter{out: "formatted\n"}}
	require.NoError(t, Emit(context.Background(), result, opts, nil))

	for _, u := range result.Units {
		assert.True(t, u.Formatted, u.FileName)
		assert.Equal(t, "formatted\r\n", u.Text)
	}
}

func TestEmit_FormatterFailureIsWarning(t *testing.T) {
	result := sampleResult()
	opts := EmitOptions{
		LineEnding: LF,
		Formatter:  stubFormatter{fail: map[string]bool{"color_define.rs": true}},
	}
	require.NoError(t, Emit(context.Background(), result, opts, nil))

	require.Len(t, result.Warnings, 1)
	assert.True(t, errors.IsRecoverable(result.Warnings[0]))
	assert.Contains(t, result.Warnings[0].Error(), "color_define.rs")

	colors, _ := result.Unit(UnitColors)
	assert.False(t, colors.Formatted)
	// Unformatted text is kept, normalised
	assert.Equal(t, "pub const A: Color = Color { r: 1, g: 2, b: 3, a: 4 };\n", colors.Text)

	functions, _ := result.Unit(UnitFunctions)
	assert.True(t, functions.Formatted)
}

func TestEmit_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Emit(ctx, sampleResult(), EmitOptions{}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCommandFormatter(t *testing.T) {
	f, err := NewCommandFormatter("cat", 5*time.Second)
	require.NoError(t, err)

	out, err := f.Format(context.Background(), "function.rs", []byte("pub fn a() {}\n"))
	require.NoError(t, err)
	assert.Equal(t, "pub fn a() {}\n", string(out))
}

func TestCommandFormatter_Split(t *testing.T) {
	f, err := NewCommandFormatter(`rustfmt --edition 2021 --config "max_width=120"`, time.Second)
	require.NoError(t, err)
	assert.Equal(t, []string{"rustfmt", "--edition", "2021", "--config", "max_width=120"}, f.Args)
	assert.Equal(t, "rustfmt --edition 2021 --config max_width=120", f.String())

	_, err = NewCommandFormatter(`rustfmt "unterminated`, time.Second)
	assert.Error(t, err)

	_, err = NewCommandFormatter("   ", time.Second)
	assert.Error(t, err)
}

func TestCommandFormatter_Missing(t *testing.T) {
	f, err := NewCommandFormatter("rsbind-no-such-formatter --check", time.Second)
	require.NoError(t, err)

	_, err = f.Format(context.Background(), "function.rs", []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrFormat))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestWriteResult(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "src")
	result := sampleResult()

	paths, err := WriteResult(dir, result)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	for i, u := range result.Units {
		assert.Equal(t, filepath.Join(dir, u.FileName), paths[i])
		data, err := os.ReadFile(paths[i])
		require.NoError(t, err)
		assert.Equal(t, u.Text, string(data))
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	result := sampleResult()
	require.NoError(t, Emit(context.Background(), result, EmitOptions{LineEnding: LF}, nil))

	// Nothing on disk yet
	check, err := Check(dir, result)
	require.NoError(t, err)
	assert.False(t, check.UpToDate)
	assert.Equal(t, []string{"function.rs (missing)", "color_define.rs (missing)", "types.rs (missing)"}, check.Differences)

	_, err = WriteResult(dir, result)
	require.NoError(t, err)

	check, err = Check(dir, result)
	require.NoError(t, err)
	assert.True(t, check.UpToDate)
	assert.Empty(t, check.Differences)

	// A different tool build only changes metadata
	rebuilt := sampleResult()
	rebuilt.Units[0].Text = "/* automatically generated by raylib-plain */\n/* generator: rsbind 9.9.9 */\npub fn a() {}\n"
	require.NoError(t, Emit(context.Background(), rebuilt, EmitOptions{LineEnding: LF}, nil))
	check, err = Check(dir, rebuilt)
	require.NoError(t, err)
	assert.True(t, check.UpToDate)

	// CRLF on disk still matches
	require.NoError(t, os.WriteFile(filepath.Join(dir, "types.rs"), []byte("pub use rl::Vector2;\r\n"), 0644))
	check, err = Check(dir, result)
	require.NoError(t, err)
	assert.True(t, check.UpToDate)

	// Real content change
	require.NoError(t, os.WriteFile(filepath.Join(dir, "types.rs"), []byte("pub use rl::Vector3;\n"), 0644))
	check, err = Check(dir, result)
	require.NoError(t, err)
	assert.False(t, check.UpToDate)
	assert.Equal(t, []string{"types.rs"}, check.Differences)
}

func TestCheck_NilResult(t *testing.T) {
	_, err := Check(t.TempDir(), nil)
	assert.Error(t, err)
}

func TestResultHelpers(t *testing.T) {
	result := sampleResult()
	assert.Equal(t, []string{"function.rs", "color_define.rs", "types.rs"}, result.FileNames())

	u, ok := result.Unit(UnitTypes)
	require.True(t, ok)
	u.Declarations = 7
	assert.Equal(t, 7, result.Units[2].Declarations, "Unit returns a pointer into the result")

	_, ok = result.Unit("missing")
	assert.False(t, ok)
}

func TestDefaultFileNames(t *testing.T) {
	assert.Equal(t, FileNames{Functions: "function.rs", Colors: "color_define.rs", Types: "types.rs"}, DefaultFileNames("rs"))
}
