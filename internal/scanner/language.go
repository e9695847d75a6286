package scanner

import (
	"path/filepath"
	"strings"
)

// Language identifies the detected source language of a file.
type Language string

const (
	LangTypeScript Language = "typescript"
	LangJavaScript Language = "javascript"
	LangGo         Language = "go"
	LangPython     Language = "python"
	LangRuby       Language = "ruby"
	LangJava       Language = "java"
	LangRust       Language = "rust"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangCSharp     Language = "csharp"
	LangPHP        Language = "php"
	LangUnknown    Language = "unknown"
)

var extLanguages = map[string]Language{
	".ts":   LangTypeScript,
	".tsx":  LangTypeScript,
	".js":   LangJavaScript,
	".jsx":  LangJavaScript,
	".mjs":  LangJavaScript,
	".cjs":  LangJavaScript,
	".go":   LangGo,
	".py":   LangPython,
	".rb":   LangRuby,
	".java": LangJava,
	".rs":   LangRust,
	".c":    LangC,
	".h":    LangC,
	".cpp":  LangCPP,
	".cc":   LangCPP,
	".hpp":  LangCPP,
	".cs":   LangCSharp,
	".php":  LangPHP,
}

// DetectLanguage classifies a file into a language bucket by extension.
// Unrecognized extensions map to LangUnknown; those files still get an
// inventory entry and are handled by the fallback analyzer.
func DetectLanguage(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extLanguages[ext]; ok {
		return lang
	}
	return LangUnknown
}
