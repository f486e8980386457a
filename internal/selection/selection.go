// Package selection narrows a repository's file listing to the handful
// of files worth reading closely.
package selection

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/DG1001/code-to-music/internal/llm"
	"github.com/DG1001/code-to-music/internal/models"
)

const (
	// maxSelected caps how many files an AI selection may return.
	maxSelected = 15
	// fallbackCount is how many files the heuristic ranking keeps.
	fallbackCount = 12
	// manifestLimit bounds the prompt for very large repositories. The
	// model only sees this many files; its answer is still checked
	// against the full listing.
	manifestLimit = 500
)

type Selector struct {
	gen llm.Generator
}

func New(gen llm.Generator) *Selector {
	return &Selector{gen: gen}
}

// Select picks the files to analyze. It never fails: small repositories
// skip the model entirely, and any model or parse error falls back to
// the heuristic ranking.
func (s *Selector) Select(ctx context.Context, meta *models.RepoMetadata, files []models.FileEntry) []models.FileEntry {
	if len(files) <= 10 {
		return RankByHeuristic(files)
	}
	return llm.WithFallback("file selection",
		func() ([]models.FileEntry, error) { return s.aiSelect(ctx, meta, files) },
		func() []models.FileEntry { return RankByHeuristic(files) },
	)
}

func (s *Selector) aiSelect(ctx context.Context, meta *models.RepoMetadata, files []models.FileEntry) ([]models.FileEntry, error) {
	out, err := s.gen.Complete(ctx, llm.Request{
		Prompt:      manifestPrompt(meta, files),
		MaxTokens:   600,
		Temperature: 0.3,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	var paths []string
	if err := llm.DecodeLenient(out, &paths); err != nil {
		return nil, fmt.Errorf("file selection response: %w", err)
	}

	byPath := make(map[string]models.FileEntry, len(files))
	for _, f := range files {
		byPath[f.Path] = f
	}

	var selected []models.FileEntry
	for _, p := range paths {
		f, ok := byPath[strings.TrimSpace(p)]
		if !ok {
			continue
		}
		// Drop duplicates while keeping the model's order.
		delete(byPath, f.Path)
		selected = append(selected, f)
		if len(selected) == maxSelected {
			break
		}
	}
	if len(selected) == 0 {
		return nil, errors.New("no selected path matched the repository listing")
	}
	return selected, nil
}

func manifestPrompt(meta *models.RepoMetadata, files []models.FileEntry) string {
	var b strings.Builder
	b.WriteString("You are selecting files from a GitHub repository that will be turned into a piece of music.\n\n")
	fmt.Fprintf(&b, "Repository: %s\n", meta.FullName)
	if meta.Description != nil {
		fmt.Fprintf(&b, "Description: %s\n", *meta.Description)
	}
	if meta.Language != nil {
		fmt.Fprintf(&b, "Primary language: %s\n", *meta.Language)
	}
	if len(meta.Topics) > 0 {
		fmt.Fprintf(&b, "Topics: %s\n", strings.Join(meta.Topics, ", "))
	}

	listed := files
	if len(listed) > manifestLimit {
		listed = listed[:manifestLimit]
	}
	fmt.Fprintf(&b, "\nFiles (%d of %d):\n", len(listed), len(files))
	for _, f := range listed {
		fmt.Fprintf(&b, "%s (%s, %d bytes%s)\n", f.Path, f.Category, f.Size, extNote(f.Path))
	}

	b.WriteString("\nPick the 10-15 files that best capture what this project does and how it feels.\n")
	b.WriteString("Prefer core logic, entry points, documentation, unique algorithms, and creative names.\n")
	b.WriteString("Avoid tests, boilerplate, and generated files.\n\n")
	b.WriteString(`Return a JSON array of file paths, e.g. ["README.md", "src/main.go"].`)
	return b.String()
}

func extNote(p string) string {
	if ext := path.Ext(p); ext != "" {
		return ", " + ext
	}
	return ""
}

// Names that mark a dependency manifest for ranking purposes. Same
// vocabulary the classifier uses for its configuration rule.
var manifestNames = []string{"package", "requirements", "cargo", "pom", "build", "makefile"}

// RankByHeuristic orders files by a fixed priority table and returns at
// most the top 12. Pure arithmetic over already-fetched metadata, so it
// can stand in whenever the model cannot. The sort is stable: ties keep
// their listing order.
func RankByHeuristic(files []models.FileEntry) []models.FileEntry {
	ranked := make([]models.FileEntry, len(files))
	copy(ranked, files)
	sort.SliceStable(ranked, func(i, j int) bool {
		return priority(ranked[i]) > priority(ranked[j])
	})
	if len(ranked) > fallbackCount {
		ranked = ranked[:fallbackCount]
	}
	return ranked
}

func priority(f models.FileEntry) int {
	name := strings.ToLower(f.Name)
	p := strings.ToLower(f.Path)
	isTest := strings.Contains(name, "test") || strings.Contains(p, "test")

	switch {
	case strings.Contains(name, "readme"):
		return 100
	case strings.Contains(name, "main"), strings.Contains(name, "index"):
		return 90
	case strings.Contains(name, "app") && !isTest:
		return 85
	case strings.Contains(p, "src"), strings.Contains(p, "lib"):
		return 80
	case containsAny(name, manifestNames):
		return 75
	case strings.Contains(name, "config"):
		return 70
	case strings.Contains(name, "license"):
		return 60
	case isTest:
		return 10
	default:
		return 50
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
