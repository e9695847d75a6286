package analyzer

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/mnemo-dev/mnemo/internal/scanner"
)

// TypeScriptAnalyzer is the structured reference analyzer. It walks the
// tree-sitter AST once, classifying nodes into function/class/interface/
// import/export buckets and computing a naive cyclomatic complexity.
type TypeScriptAnalyzer struct {
	tsParser *sitter.Parser
	jsParser *sitter.Parser
}

// NewTypeScriptAnalyzer creates a TypeScript/JavaScript analyzer.
func NewTypeScriptAnalyzer() *TypeScriptAnalyzer {
	ts := sitter.NewParser()
	ts.SetLanguage(typescript.GetLanguage())

	js := sitter.NewParser()
	js.SetLanguage(javascript.GetLanguage())

	return &TypeScriptAnalyzer{tsParser: ts, jsParser: js}
}

func (t *TypeScriptAnalyzer) Language() scanner.Language {
	return scanner.LangTypeScript
}

func (t *TypeScriptAnalyzer) Parse(ctx context.Context, path string, content []byte) (*StructuralRecord, error) {
	p := t.tsParser
	lang := scanner.LangTypeScript
	if isJavaScriptFile(path) {
		p = t.jsParser
		lang = scanner.LangJavaScript
	}

	tree, err := p.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	rec := &StructuralRecord{
		Language:   lang,
		Success:    true,
		Functions:  make([]FunctionInfo, 0),
		Classes:    make([]ClassInfo, 0),
		Interfaces: make([]InterfaceInfo, 0),
		Imports:    make([]ImportInfo, 0),
		Exports:    make([]ExportInfo, 0),
		LineCount:  countLines(content),
	}

	root := tree.RootNode()
	if root.HasError() {
		rec.Errors = append(rec.Errors, ParseIssue{
			Message:  "source contains syntax errors; extraction is partial",
			Line:     1,
			Column:   1,
			Severity: "warning",
		})
	}

	t.walk(root, content, rec, false)
	return rec, nil
}

func isJavaScriptFile(path string) bool {
	for _, suffix := range []string{".js", ".jsx", ".mjs", ".cjs"} {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

func (t *TypeScriptAnalyzer) walk(node *sitter.Node, content []byte, rec *StructuralRecord, exported bool) {
	switch node.Type() {
	case "function_declaration":
		if fn := t.extractFunction(node, content, exported); fn != nil {
			rec.Functions = append(rec.Functions, *fn)
			if exported {
				rec.Exports = append(rec.Exports, ExportInfo{Name: fn.Name, Kind: "function"})
			}
		}
		return

	case "class_declaration":
		t.extractClass(node, content, rec, exported)
		return

	case "interface_declaration", "type_alias_declaration":
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			name := nameNode.Content(content)
			rec.Interfaces = append(rec.Interfaces, InterfaceInfo{
				Name:     name,
				Exported: exported,
				Line:     int(node.StartPoint().Row) + 1,
			})
			if exported {
				rec.Exports = append(rec.Exports, ExportInfo{Name: name, Kind: "interface"})
			}
		}
		return

	case "lexical_declaration", "variable_declaration":
		t.extractVariableDeclarations(node, content, rec, exported)
		return

	case "export_statement":
		t.extractExportClause(node, content, rec)
		for i := 0; i < int(node.ChildCount()); i++ {
			t.walk(node.Child(i), content, rec, true)
		}
		return

	case "import_statement":
		if imp := t.extractImport(node, content); imp != nil {
			rec.Imports = append(rec.Imports, *imp)
		}
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		t.walk(node.Child(i), content, rec, false)
	}
}

func (t *TypeScriptAnalyzer) extractFunction(node *sitter.Node, content []byte, exported bool) *FunctionInfo {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	return &FunctionInfo{
		Name:       nameNode.Content(content),
		Params:     extractParams(node.ChildByFieldName("parameters"), content),
		ReturnType: extractReturnType(node.ChildByFieldName("return_type"), content),
		Exported:   exported,
		Async:      strings.HasPrefix(node.Content(content), "async"),
		Complexity: complexityOf(node.ChildByFieldName("body"), content),
		Line:       int(node.StartPoint().Row) + 1,
	}
}

func (t *TypeScriptAnalyzer) extractClass(node *sitter.Node, content []byte, rec *StructuralRecord, exported bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}

	cls := ClassInfo{
		Name:     nameNode.Content(content),
		Exported: exported,
		Line:     int(node.StartPoint().Row) + 1,
	}

	if body := node.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.ChildCount()); i++ {
			child := body.Child(i)
			if child.Type() != "method_definition" {
				continue
			}
			methodName := child.ChildByFieldName("name")
			if methodName == nil {
				continue
			}
			name := methodName.Content(content)
			cls.Methods = append(cls.Methods, name)
			rec.Functions = append(rec.Functions, FunctionInfo{
				Name:       name,
				Params:     extractParams(child.ChildByFieldName("parameters"), content),
				ReturnType: extractReturnType(child.ChildByFieldName("return_type"), content),
				Exported:   exported,
				Async:      strings.HasPrefix(child.Content(content), "async"),
				Complexity: complexityOf(child.ChildByFieldName("body"), content),
				Line:       int(child.StartPoint().Row) + 1,
			})
		}
	}

	rec.Classes = append(rec.Classes, cls)
	if exported {
		rec.Exports = append(rec.Exports, ExportInfo{Name: cls.Name, Kind: "class"})
	}
}

func (t *TypeScriptAnalyzer) extractVariableDeclarations(node *sitter.Node, content []byte, rec *StructuralRecord, exported bool) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != "variable_declarator" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		valueNode := child.ChildByFieldName("value")
		if nameNode == nil || valueNode == nil {
			continue
		}

		name := nameNode.Content(content)
		switch valueNode.Type() {
		case "arrow_function", "function", "function_expression":
			rec.Functions = append(rec.Functions, FunctionInfo{
				Name:       name,
				Params:     extractParams(valueNode.ChildByFieldName("parameters"), content),
				ReturnType: extractReturnType(valueNode.ChildByFieldName("return_type"), content),
				Exported:   exported,
				Async:      strings.HasPrefix(valueNode.Content(content), "async"),
				Complexity: complexityOf(valueNode.ChildByFieldName("body"), content),
				Line:       int(child.StartPoint().Row) + 1,
			})
			if exported {
				rec.Exports = append(rec.Exports, ExportInfo{Name: name, Kind: "function"})
			}
		default:
			if exported {
				rec.Exports = append(rec.Exports, ExportInfo{Name: name, Kind: "value"})
			}
		}
	}
}

func (t *TypeScriptAnalyzer) extractImport(node *sitter.Node, content []byte) *ImportInfo {
	source := node.ChildByFieldName("source")
	if source == nil {
		return nil
	}

	module := strings.Trim(source.Content(content), `"'`)
	imp := &ImportInfo{
		Module:   module,
		External: !strings.HasPrefix(module, "."),
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "import_clause" {
			collectImportedSymbols(child, content, &imp.Symbols)
		}
	}
	return imp
}

func collectImportedSymbols(node *sitter.Node, content []byte, symbols *[]string) {
	switch node.Type() {
	case "identifier":
		*symbols = append(*symbols, node.Content(content))
		return
	case "import_specifier":
		if name := node.ChildByFieldName("name"); name != nil {
			*symbols = append(*symbols, name.Content(content))
		}
		return
	case "namespace_import":
		for i := 0; i < int(node.ChildCount()); i++ {
			if node.Child(i).Type() == "identifier" {
				*symbols = append(*symbols, node.Child(i).Content(content))
			}
		}
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectImportedSymbols(node.Child(i), content, symbols)
	}
}

// extractExportClause handles re-export lists like `export { a, b }`.
func (t *TypeScriptAnalyzer) extractExportClause(node *sitter.Node, content []byte, rec *StructuralRecord) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != "export_clause" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			spec := child.Child(j)
			if spec.Type() != "export_specifier" {
				continue
			}
			if name := spec.ChildByFieldName("name"); name != nil {
				rec.Exports = append(rec.Exports, ExportInfo{Name: name.Content(content), Kind: "value"})
			}
		}
	}
}

func extractParams(node *sitter.Node, content []byte) []string {
	if node == nil {
		return nil
	}
	params := make([]string, 0, node.NamedChildCount())
	for i := 0; i < int(node.NamedChildCount()); i++ {
		params = append(params, strings.TrimSpace(node.NamedChild(i).Content(content)))
	}
	if len(params) == 0 {
		return nil
	}
	return params
}

func extractReturnType(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(node.Content(content), ":"))
}

// complexityOf counts branching constructs: if/for/while/do, switch cases,
// catch clauses, ternaries, and short-circuit operators. Base score is 1.
func complexityOf(body *sitter.Node, content []byte) int {
	score := 1
	if body == nil {
		return score
	}
	countBranches(body, content, &score)
	return score
}

func countBranches(node *sitter.Node, content []byte, score *int) {
	switch node.Type() {
	case "if_statement", "for_statement", "for_in_statement",
		"while_statement", "do_statement", "switch_case",
		"catch_clause", "ternary_expression":
		*score++
	case "binary_expression":
		if op := node.ChildByFieldName("operator"); op != nil {
			switch op.Content(content) {
			case "&&", "||", "??":
				*score++
			}
		}
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		countBranches(node.Child(i), content, score)
	}
}
