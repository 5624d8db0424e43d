package bindgen

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/teranos/rsbind/errors"
)

// MetadataPrefix starts header lines that change with the tool build, not the output
const MetadataPrefix = "/* generator:"

// CheckResult holds the result of a staleness check
type CheckResult struct {
	UpToDate bool
	// Differences lists unit files that differ, with a reason suffix for
	// missing or unreadable files
	Differences []string
}

// Check compares freshly generated units with the files in dir.
// Metadata lines (see MetadataPrefix) and line endings are ignored.
func Check(dir string, result *Result) (*CheckResult, error) {
	if result == nil {
		return nil, errors.New("nothing to check: no generated result")
	}

	var diffs []string
	for _, u := range result.Units {
		existingPath := filepath.Join(dir, u.FileName)

		existing, err := os.ReadFile(existingPath)
		if err != nil {
			if os.IsNotExist(err) {
				diffs = append(diffs, u.FileName+" (missing)")
			} else {
				diffs = append(diffs, u.FileName+" (error: "+err.Error()+")")
			}
			continue
		}

		fresh, err := filterMetadataLines(u.Text)
		if err != nil {
			return nil, errors.Wrapf(err, "scanning generated %s", u.FileName)
		}
		onDisk, err := filterMetadataLines(string(existing))
		if err != nil {
			diffs = append(diffs, u.FileName+" (error: "+err.Error()+")")
			continue
		}
		if fresh != onDisk {
			diffs = append(diffs, u.FileName)
		}
	}

	return &CheckResult{
		UpToDate:    len(diffs) == 0,
		Differences: diffs,
	}, nil
}

// filterMetadataLines removes metadata comment lines and normalises line endings
func filterMetadataLines(content string) (string, error) {
	var result strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(NormalizeLineEndings(content, LF)))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), MetadataPrefix) {
			continue
		}
		result.WriteString(line)
		result.WriteString("\n")
	}

	if err := scanner.Err(); err != nil {
		return "", err
	}
	return result.String(), nil
}
