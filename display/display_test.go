package display

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `toml:"name" yaml:"name" json:"name"`
	Crate string `toml:"crate" yaml:"crate" json:"crate"`
}

func TestEncode(t *testing.T) {
	v := sample{Name: "rsbind", Crate: "<sys>"}

	data, err := Encode(v, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"rsbind\",\n  \"crate\": \"<sys>\"\n}\n", string(data))

	data, err = Encode(sample{Name: "rsbind", Crate: "raylib_sys"}, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "name: rsbind\ncrate: raylib_sys\n", string(data))

	data, err = Encode(v, FormatTOML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name = ")
	assert.Contains(t, string(data), "rsbind")

	_, err = Encode(v, "xml")
	assert.Error(t, err)
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputJSON(&buf, map[string]int{"units": 3}))
	assert.Equal(t, "{\n  \"units\": 3\n}\n", buf.String())
}

func TestShouldOutputJSON(t *testing.T) {
	assert.False(t, ShouldOutputJSON(nil))

	newTree := func() (*cobra.Command, *cobra.Command) {
		root := &cobra.Command{Use: "rsbind"}
		root.PersistentFlags().Bool("json", false, "")
		child := &cobra.Command{Use: "version", Run: func(*cobra.Command, []string) {}}
		root.AddCommand(child)
		return root, child
	}

	root, child := newTree()
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.False(t, ShouldOutputJSON(child))

	root, child = newTree()
	root.SetArgs([]string{"--json", "version"})
	require.NoError(t, root.Execute())
	assert.True(t, ShouldOutputJSON(child))

	root, child = newTree()
	child.Flags().Bool("json", false, "")
	root.SetArgs([]string{"--json", "version", "--json=false"})
	require.NoError(t, root.Execute())
	assert.False(t, ShouldOutputJSON(child), "local flag wins")
}
