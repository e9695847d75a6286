// Package artifact persists committed synthesis output to disk.
package artifact

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirWriter writes a content map into a destination directory, one file
// per entry, and reports the written names.
type DirWriter struct{}

// NewDirWriter creates a directory-backed artifact writer.
func NewDirWriter() *DirWriter {
	return &DirWriter{}
}

// WriteAll persists every entry of the content map under dir and returns
// the file names in sorted order. Unchanged files are left untouched.
func (w *DirWriter) WriteAll(dir string, content map[string]string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}

	names := make([]string, 0, len(content))
	for name := range content {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		data := []byte(EnsureTrailingNewline(content[name]))
		if err := WriteIfChanged(path, data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return names, nil
}

// WriteIfChanged writes data to path unless the file already holds it.
func WriteIfChanged(path string, data []byte) error {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, data) {
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EnsureTrailingNewline appends a final newline when missing.
func EnsureTrailingNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
