package analyzer

import (
	"github.com/mnemo-dev/mnemo/internal/scanner"
)

// FunctionInfo describes one function, method, or arrow function.
type FunctionInfo struct {
	Name       string
	Params     []string
	ReturnType string
	Exported   bool
	Async      bool
	// Complexity is a naive cyclomatic count: 1 plus one per branching
	// construct in the body.
	Complexity int
	Line       int
}

// ClassInfo describes a class declaration.
type ClassInfo struct {
	Name     string
	Methods  []string
	Exported bool
	Line     int
}

// InterfaceInfo describes an interface or type-alias declaration.
type InterfaceInfo struct {
	Name     string
	Exported bool
	Line     int
}

// ImportInfo describes one import statement. External is false for relative
// module paths, which are the only imports the graph builder resolves.
type ImportInfo struct {
	Module   string
	Symbols  []string
	External bool
}

// ExportInfo describes one exported binding.
type ExportInfo struct {
	Name string
	Kind string // function | class | interface | value
}

// ParseIssue is a non-fatal parse diagnostic captured as data.
type ParseIssue struct {
	Message  string
	Line     int
	Column   int
	Severity string // error | warning
}

// StructuralRecord is the per-file analysis result. On parse failure
// Success is false and Errors replaces the descriptor lists.
type StructuralRecord struct {
	Path       string
	Language   scanner.Language
	Success    bool
	Functions  []FunctionInfo
	Classes    []ClassInfo
	Interfaces []InterfaceInfo
	Imports    []ImportInfo
	Exports    []ExportInfo
	Errors     []ParseIssue
	LineCount  int
}
