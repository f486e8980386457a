package analysis

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/DG1001/code-to-music/internal/llm"
	"github.com/DG1001/code-to-music/internal/models"
)

type stubFetcher struct {
	contents map[string]string
}

func (s *stubFetcher) GetFileContent(_ context.Context, url string) (string, error) {
	c, ok := s.contents[url]
	if !ok {
		return "", fmt.Errorf("no content for %s", url)
	}
	return c, nil
}

type stubGen struct {
	out string
	err error
}

func (s *stubGen) Complete(_ context.Context, _ llm.Request) (string, error) {
	return s.out, s.err
}

func meta() *models.RepoMetadata {
	lang := "Go"
	desc := "makes widgets"
	return &models.RepoMetadata{
		Owner:       "acme",
		Name:        "widgets",
		FullName:    "acme/widgets",
		Description: &desc,
		Language:    &lang,
	}
}

func TestFetchContentsSkipsFailures(t *testing.T) {
	fetch := &stubFetcher{contents: map[string]string{
		"u1": "async function main() {}",
		"u3": "# Widgets\nDocs here.",
	}}
	a := New(fetch, &stubGen{})

	files := []models.FileEntry{
		{Path: "index.js", Name: "index.js", URL: "u1", Category: models.CategoryEntryPoint},
		{Path: "broken.go", Name: "broken.go", URL: "u2", Category: models.CategorySourceCode},
		{Path: "README.md", Name: "README.md", URL: "u3", Category: models.CategoryDocumentation},
	}

	got := a.FetchContents(context.Background(), files)
	if len(got) != 2 {
		t.Fatalf("expected 2 files, got %d", len(got))
	}
	if got[0].Path != "index.js" || got[1].Path != "README.md" {
		t.Errorf("wrong files: %s, %s", got[0].Path, got[1].Path)
	}
	if len(got[0].Tags) == 0 {
		t.Error("tags missing on fetched file")
	}
}

func TestFetchContentsTruncatesLongContent(t *testing.T) {
	long := strings.Repeat("x", 12000)
	fetch := &stubFetcher{contents: map[string]string{"u1": long}}
	a := New(fetch, &stubGen{})

	got := a.FetchContents(context.Background(), []models.FileEntry{
		{Path: "big.txt", Name: "big.txt", URL: "u1", Category: models.CategoryOther},
	})
	if len(got) != 1 {
		t.Fatalf("expected 1 file, got %d", len(got))
	}
	if !strings.HasSuffix(got[0].Content, "...") {
		t.Error("truncated content misses the ellipsis marker")
	}
	if len(got[0].Content) > maxContentChars+3 {
		t.Errorf("content too long: %d", len(got[0].Content))
	}
}

func TestAnalyzeNormalizesPartialAnswer(t *testing.T) {
	gen := &stubGen{out: `{"purpose": "Builds widgets fast.", "themes": ["speed"], "innovation_level": "EXTREME", "complexity": "Complex"}`}
	a := New(&stubFetcher{}, gen)

	got := a.Analyze(context.Background(), meta(), nil)
	if got.Purpose != "Builds widgets fast." {
		t.Errorf("purpose overwritten: %q", got.Purpose)
	}
	if len(got.Themes) != 1 || got.Themes[0] != "speed" {
		t.Errorf("themes overwritten: %v", got.Themes)
	}
	if got.InnovationLevel != "medium" {
		t.Errorf("invalid enum not replaced: %q", got.InnovationLevel)
	}
	if got.Complexity != "complex" {
		t.Errorf("valid enum not kept: %q", got.Complexity)
	}
	if len(got.Emotions) == 0 || got.UserImpact == "" || got.ArtisticInterpretation == "" {
		t.Error("missing fields not filled in")
	}
}

func TestAnalyzeFallsBackOnModelError(t *testing.T) {
	a := New(&stubFetcher{}, &stubGen{err: fmt.Errorf("timeout")})

	got := a.Analyze(context.Background(), meta(), nil)
	if got.Complexity != "moderate" {
		t.Errorf("expected moderate, got %q", got.Complexity)
	}
	if got.InnovationLevel != "medium" {
		t.Errorf("expected medium, got %q", got.InnovationLevel)
	}
	if !strings.Contains(got.Purpose, "acme/widgets") {
		t.Errorf("purpose lacks repository name: %q", got.Purpose)
	}
	if len(got.Themes) == 0 || len(got.Emotions) == 0 || len(got.MusicalMetaphors) == 0 {
		t.Error("fallback lists empty")
	}
}

func TestAnalyzeFallbackComplexityCountsSourceFiles(t *testing.T) {
	var files []models.SelectedFile
	for i := 0; i < 11; i++ {
		files = append(files, models.SelectedFile{
			FileEntry: models.FileEntry{
				Path:     fmt.Sprintf("src/f%d.go", i),
				Name:     fmt.Sprintf("f%d.go", i),
				Category: models.CategorySourceCode,
			},
			Tags: []string{"general"},
		})
	}
	a := New(&stubFetcher{}, &stubGen{err: fmt.Errorf("down")})

	got := a.Analyze(context.Background(), meta(), files)
	if got.Complexity != "complex" {
		t.Errorf("expected complex for 11 source files, got %q", got.Complexity)
	}
}

func TestAnalyzeFallsBackOnGarbageOutput(t *testing.T) {
	a := New(&stubFetcher{}, &stubGen{out: "sorry, no JSON today"})

	got := a.Analyze(context.Background(), meta(), nil)
	if got.Purpose == "" || got.Complexity == "" {
		t.Error("fallback analysis incomplete")
	}
}
