// Package scanner walks a project tree and produces the file inventory the
// rest of the pipeline works from. Dependency caches, version-control
// metadata, build output, and hidden directories are skipped; unreadable
// directories are logged and treated as empty.
package scanner

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mnemo-dev/mnemo/internal/sanitize"
)

// FileRecord is one inventoried file. Records are immutable and discarded
// once structure extraction completes for the file.
type FileRecord struct {
	Path     string
	Language Language
	Size     int64
	ModTime  time.Time
	Lines    int
}

var denyDirs = map[string]bool{
	"node_modules":     true,
	"vendor":           true,
	"dist":             true,
	"build":            true,
	"out":              true,
	"target":           true,
	"coverage":         true,
	"__pycache__":      true,
	"bower_components": true,
}

// Scanner inventories files under a root up to a depth budget.
type Scanner struct {
	maxDepth int
	log      *slog.Logger
}

// New creates a scanner. maxDepth bounds recursion: at depth 0 the scanner
// inventories files in the current directory but does not descend further.
func New(maxDepth int, log *slog.Logger) *Scanner {
	if log == nil {
		log = slog.Default()
	}
	return &Scanner{maxDepth: maxDepth, log: log}
}

// Scan walks root and returns a FileRecord per inventoried file. Sibling
// ordering follows the directory listing; callers must not rely on it.
func (s *Scanner) Scan(root string) ([]FileRecord, error) {
	clean, err := sanitize.CleanPath(root)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(clean)
	if err != nil {
		return nil, err
	}

	records := make([]FileRecord, 0)
	s.walk(abs, s.maxDepth, &records)
	return records, nil
}

func (s *Scanner) walk(dir string, depth int, out *[]FileRecord) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Non-fatal: the directory is treated as empty and the scan continues.
		s.log.Warn("directory unreadable, skipping", "dir", dir, "error", err)
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if depth <= 0 || SkipDir(name) {
				continue
			}
			s.walk(filepath.Join(dir, name), depth-1, out)
			continue
		}

		info, err := entry.Info()
		if err != nil {
			s.log.Warn("file stat failed, skipping", "file", name, "error", err)
			continue
		}

		path := filepath.Join(dir, name)
		*out = append(*out, FileRecord{
			Path:     path,
			Language: DetectLanguage(path),
			Size:     info.Size(),
			ModTime:  info.ModTime(),
			Lines:    countFileLines(path),
		})
	}
}

// SkipDir reports whether a directory name is excluded from scanning.
func SkipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	return denyDirs[name]
}

func countFileLines(path string) int {
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return 0
	}
	lines := bytes.Count(data, []byte("\n"))
	if data[len(data)-1] != '\n' {
		lines++
	}
	return lines
}
