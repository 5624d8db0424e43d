package bindgen

import (
	"os"
	"path/filepath"

	"github.com/teranos/rsbind/errors"
)

// File system permissions for generated output
const (
	DirPermissions  = 0755
	FilePermissions = 0644
)

// WriteResult writes every unit into dir, creating it if needed.
// Returns the written paths in emission order.
func WriteResult(dir string, result *Result) ([]string, error) {
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return nil, errors.Wrap(err, "failed to create output directory")
	}

	paths := make([]string, 0, len(result.Units))
	for _, u := range result.Units {
		outputPath := filepath.Join(dir, u.FileName)
		if err := os.WriteFile(outputPath, []byte(u.Text), FilePermissions); err != nil {
			return paths, errors.Wrapf(err, "failed to write %s", outputPath)
		}
		paths = append(paths, outputPath)
	}
	return paths, nil
}
