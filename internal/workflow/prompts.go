package workflow

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mnemo-dev/mnemo/internal/analysis"
	"github.com/mnemo-dev/mnemo/internal/scanner"
)

// frameworkHints maps well-known external module prefixes to framework names.
var frameworkHints = map[string]string{
	"react":   "React",
	"next":    "Next.js",
	"vue":     "Vue",
	"svelte":  "Svelte",
	"express": "Express",
	"fastify": "Fastify",
	"koa":     "Koa",
	"nest":    "NestJS",
	"angular": "Angular",
	"jest":    "Jest",
	"vitest":  "Vitest",
}

// BuildPromptSet derives the six documentation prompts from a snapshot's
// structural summary: languages, frameworks, layout, entry points, and
// organizational patterns.
func BuildPromptSet(snap *analysis.Snapshot) PromptSet {
	summary := summarize(snap)
	return PromptSet{
		Brief: fmt.Sprintf(`Write a project brief for the codebase rooted at %s.

%s

Cover the project's core purpose, its primary capabilities, and the problem
it solves. Be concrete: name the files and modules that define the project's
shape.`, filepath.Base(snap.Root), summary),

		ProductContext: fmt.Sprintf(`Describe the product context for this codebase.

%s

Explain why the project exists, which user problems it addresses, and how
the detected components map to user-facing behavior.`, summary),

		ActiveContext: fmt.Sprintf(`Describe the current working context of this codebase.

%s

Summarize the areas of active development suggested by the structure, the
most connected files, and what a contributor touching them must know.`, summary),

		SystemPatterns: fmt.Sprintf(`Document the system patterns in this codebase.

%s

Describe the architecture style, the dependency flow between the entry
points and the most depended-on files, detected cycles or clusters, and the
key design decisions they imply.`, summary),

		TechContext: fmt.Sprintf(`Document the technical context of this codebase.

%s

List the languages and frameworks in use, the development setup they imply,
and technical constraints visible in the structure.`, summary),

		Progress: fmt.Sprintf(`Assess the progress and state of this codebase.

%s

Describe what appears complete, what is partially built (files that failed
parsing or sparsely connected areas), and sensible next steps.`, summary),
	}
}

// summarize renders the structural facts every prompt shares.
func summarize(snap *analysis.Snapshot) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Project: %s (%d files analyzed, %d parse failures)\n",
		snap.Root, len(snap.Files), snap.ParseFailures()))

	langs := snap.TopLanguages()
	if len(langs) > 0 {
		parts := make([]string, 0, len(langs))
		for _, lang := range langs {
			parts = append(parts, fmt.Sprintf("%s (%d)", lang, snap.Languages[lang]))
		}
		b.WriteString("Languages: " + strings.Join(parts, ", ") + "\n")
	}

	if frameworks := detectFrameworks(snap); len(frameworks) > 0 {
		b.WriteString("Frameworks: " + strings.Join(frameworks, ", ") + "\n")
	}

	if layout := directoryLayout(snap); layout != "" {
		b.WriteString("Layout: " + layout + "\n")
	}

	if len(snap.Graph.Entries) > 0 {
		names := baseNames(snap.Graph.Entries, 5)
		b.WriteString("Entry points: " + strings.Join(names, ", ") + "\n")
	}

	if pattern := organizationalPattern(snap); pattern != "" {
		b.WriteString("Organization: " + pattern + "\n")
	}

	if len(snap.Graph.Clusters) > 0 {
		b.WriteString(fmt.Sprintf("Component clusters: %d (largest: %s)\n",
			len(snap.Graph.Clusters), snap.Graph.Clusters[0].Purpose))
	}

	return strings.TrimRight(b.String(), "\n")
}

func detectFrameworks(snap *analysis.Snapshot) []string {
	found := make(map[string]bool)
	for _, rec := range snap.Records {
		for _, imp := range rec.Imports {
			if !imp.External {
				continue
			}
			root := strings.SplitN(strings.TrimPrefix(imp.Module, "@"), "/", 2)[0]
			for prefix, name := range frameworkHints {
				if strings.HasPrefix(root, prefix) {
					found[name] = true
				}
			}
		}
	}

	frameworks := make([]string, 0, len(found))
	for name := range found {
		frameworks = append(frameworks, name)
	}
	sort.Strings(frameworks)
	return frameworks
}

func directoryLayout(snap *analysis.Snapshot) string {
	counts := make(map[string]int)
	for _, f := range snap.Files {
		rel, err := filepath.Rel(snap.Root, f.Path)
		if err != nil {
			continue
		}
		dir := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
		if strings.Contains(dir, ".") {
			dir = "(root)"
		}
		counts[dir]++
	}

	dirs := make([]string, 0, len(counts))
	for dir := range counts {
		dirs = append(dirs, dir)
	}
	sort.Slice(dirs, func(i, j int) bool {
		if counts[dirs[i]] != counts[dirs[j]] {
			return counts[dirs[i]] > counts[dirs[j]]
		}
		return dirs[i] < dirs[j]
	})
	if len(dirs) > 6 {
		dirs = dirs[:6]
	}

	parts := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		parts = append(parts, fmt.Sprintf("%s (%d files)", dir, counts[dir]))
	}
	return strings.Join(parts, ", ")
}

func organizationalPattern(snap *analysis.Snapshot) string {
	hasSrc := false
	hasComponents := false
	for _, f := range snap.Files {
		rel, err := filepath.Rel(snap.Root, f.Path)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, "src/") {
			hasSrc = true
		}
		if strings.Contains(rel, "components/") {
			hasComponents = true
		}
	}

	switch {
	case hasSrc && hasComponents:
		return "src-rooted with component folders"
	case hasSrc:
		return "src-rooted layout"
	case hasComponents:
		return "component-folder layout"
	default:
		return "flat layout"
	}
}

func baseNames(paths []string, limit int) []string {
	names := make([]string, 0, limit)
	for _, path := range paths {
		names = append(names, filepath.Base(path))
		if len(names) == limit {
			break
		}
	}
	return names
}

// specificityTokens collects the concrete identifiers a high-quality
// response is expected to reference.
func specificityTokens(snap *analysis.Snapshot) []string {
	seen := make(map[string]bool)
	tokens := make([]string, 0)

	add := func(token string) {
		token = strings.TrimSpace(token)
		if len(token) < 3 || seen[token] {
			return
		}
		seen[token] = true
		tokens = append(tokens, token)
	}

	for _, f := range snap.Files {
		if f.Language == scanner.LangUnknown {
			continue
		}
		add(filepath.Base(f.Path))
	}
	for _, rec := range snap.Records {
		for _, fn := range rec.Functions {
			add(fn.Name)
		}
		for _, cls := range rec.Classes {
			add(cls.Name)
		}
	}
	return tokens
}
