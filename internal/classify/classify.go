// Package classify assigns a category to repository files by name and path
// and sniffs light-weight structural tags out of file contents. Everything
// here is pure string matching; no I/O.
package classify

import (
	"path"
	"sort"
	"strings"

	"github.com/DG1001/code-to-music/internal/models"
)

var sourceExts = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".jsx": true, ".tsx": true,
	".go": true, ".rs": true, ".java": true, ".kt": true, ".c": true,
	".h": true, ".cpp": true, ".hpp": true, ".cs": true, ".rb": true,
	".php": true, ".swift": true, ".scala": true, ".sh": true,
}

var docExts = map[string]bool{
	".md": true, ".rst": true, ".txt": true, ".adoc": true,
}

var dataExts = map[string]bool{
	".json": true, ".yaml": true, ".yml": true, ".toml": true,
	".xml": true, ".ini": true,
}

var frontendExts = map[string]bool{
	".html": true, ".css": true, ".scss": true, ".sass": true,
	".vue": true, ".svelte": true,
}

// Classify maps a file name and path to its category. The rule order is a
// contract: earlier rules win, so README.test.md in a test/ directory is
// documentation, not a test file.
func Classify(name, filePath string) models.Category {
	lower := strings.ToLower(name)
	lowerPath := strings.ToLower(filePath)
	ext := strings.ToLower(path.Ext(name))

	switch {
	case containsAny(lower, "readme", "contributing", "license"):
		return models.CategoryDocumentation
	case containsAny(lower, "package", "requirements", "cargo", "pom", "build", "makefile"):
		return models.CategoryConfiguration
	case strings.Contains(lower, "test") || strings.Contains(lower, "spec") ||
		strings.Contains(lowerPath, "test") || strings.Contains(lowerPath, "spec"):
		return models.CategoryTest
	case containsAny(lower, "main", "index", "app"):
		return models.CategoryEntryPoint
	case containsAny(lower, "config", "setting"):
		return models.CategoryConfiguration
	case sourceExts[ext]:
		return models.CategorySourceCode
	case docExts[ext]:
		return models.CategoryDocumentation
	case dataExts[ext]:
		return models.CategoryConfiguration
	case frontendExts[ext]:
		return models.CategoryFrontend
	default:
		return models.CategoryOther
	}
}

// tagMarkers maps a structural tag to the content keywords that imply it.
var tagMarkers = map[string][]string{
	"asynchronous":     {"async", "await"},
	"object-oriented":  {"class "},
	"api-interaction":  {"http", "fetch(", "request", "endpoint"},
	"data-persistence": {"sql", "database", "query"},
	"security":         {"encrypt", "secure", "auth"},
	"user-interface":   {"render", "component", "layout"},
	"algorithmic":      {"algorithm", "recursive", "optimi"},
	"concurrent":       {"goroutine", "thread", "worker"},
}

// ExtractTags scans content for keyword markers and returns the matching
// tags, sorted. A file that matches nothing is tagged "general". The
// category currently only matters for non-source files, which are tagged
// by their category instead of their content.
func ExtractTags(content string, category models.Category) []string {
	switch category {
	case models.CategoryDocumentation:
		return []string{"documentation"}
	case models.CategoryConfiguration:
		return []string{"configuration"}
	}

	lower := strings.ToLower(content)
	var tags []string
	for tag, markers := range tagMarkers {
		for _, m := range markers {
			if strings.Contains(lower, m) {
				tags = append(tags, tag)
				break
			}
		}
	}
	if len(tags) == 0 {
		return []string{"general"}
	}
	sort.Strings(tags)
	return tags
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
