// Package sanitize provides the pure path and content sanitization
// contracts consumed before filesystem walks and before any generated
// content is persisted.
package sanitize

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	scriptTagRe = regexp.MustCompile(`(?is)<\s*(script|iframe)\b.*?<\s*/\s*(script|iframe)\s*>`)
	openTagRe   = regexp.MustCompile(`(?i)<\s*/?\s*(script|iframe)\b[^>]*>`)
)

// CleanPath normalizes a filesystem path and rejects values that cannot be
// safely handed to a directory walk.
func CleanPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("empty path")
	}
	if strings.ContainsRune(path, '\x00') {
		return "", fmt.Errorf("path contains NUL byte")
	}

	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
			return "", fmt.Errorf("path %q escapes the working directory", path)
		}
	}
	return clean, nil
}

// Markdown strips markup and characters that must never reach a persisted
// artifact: script/iframe tags, zero-width characters, and control
// characters other than tab and newline.
func Markdown(text string) string {
	text = scriptTagRe.ReplaceAllString(text, "")
	text = openTagRe.ReplaceAllString(text, "")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch r {
		case '\u200b', '\u200c', '\u200d', '\ufeff':
			continue
		}
		if r < 0x20 && r != '\n' && r != '\t' {
			continue
		}
		if r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
