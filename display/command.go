// Package display renders command output as text, JSON, TOML or YAML.
package display

import (
	"io"

	"github.com/spf13/cobra"
)

// ShouldOutputJSON reports whether a command should print JSON: a local
// --json flag wins, then the root's persistent --json
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}

	if f := cmd.LocalFlags().Lookup("json"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetBool("json")
		return v
	}

	if v, err := cmd.Root().PersistentFlags().GetBool("json"); err == nil {
		return v
	}
	return false
}

// OutputJSON writes v as indented JSON followed by a newline
func OutputJSON(w io.Writer, v interface{}) error {
	data, err := Encode(v, FormatJSON)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
