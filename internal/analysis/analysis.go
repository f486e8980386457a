// Package analysis turns selected files into a structured reading of
// the repository. The result feeds the music prompts, so it is always
// fully populated whether the model answered or not.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/DG1001/code-to-music/internal/classify"
	"github.com/DG1001/code-to-music/internal/llm"
	"github.com/DG1001/code-to-music/internal/models"
)

const (
	// maxContentChars bounds fetched file content.
	maxContentChars = 10000
	// previewChars is how much of each file the analysis prompt shows.
	previewChars = 500
)

// Fetcher retrieves raw file content by its retrieval URL.
type Fetcher interface {
	GetFileContent(ctx context.Context, url string) (string, error)
}

type Analyzer struct {
	fetch Fetcher
	gen   llm.Generator
}

func New(fetch Fetcher, gen llm.Generator) *Analyzer {
	return &Analyzer{fetch: fetch, gen: gen}
}

// FetchContents downloads the selected files. Per-file failures are
// logged and skipped; they only shrink the analyzed set.
func (a *Analyzer) FetchContents(ctx context.Context, files []models.FileEntry) []models.SelectedFile {
	selected := make([]models.SelectedFile, 0, len(files))
	for _, f := range files {
		content, err := a.fetch.GetFileContent(ctx, f.URL)
		if err != nil {
			slog.Warn("skipping file, content fetch failed", "path", f.Path, "error", err)
			continue
		}
		content = clip(content, maxContentChars)
		selected = append(selected, models.SelectedFile{
			FileEntry: f,
			Content:   content,
			Tags:      classify.ExtractTags(content, f.Category),
		})
	}
	return selected
}

// Analyze produces the repository reading. It never fails: model or
// parse errors yield a deterministic result built from file counts and
// fixed word lists, shaped identically to a model answer.
func (a *Analyzer) Analyze(ctx context.Context, meta *models.RepoMetadata, files []models.SelectedFile) models.Analysis {
	fb := fallbackAnalysis(meta, files)
	return llm.WithFallback("repository analysis",
		func() (models.Analysis, error) {
			got, err := a.aiAnalyze(ctx, meta, files)
			if err != nil {
				return models.Analysis{}, err
			}
			return normalize(got, fb), nil
		},
		func() models.Analysis { return fb },
	)
}

func (a *Analyzer) aiAnalyze(ctx context.Context, meta *models.RepoMetadata, files []models.SelectedFile) (models.Analysis, error) {
	out, err := a.gen.Complete(ctx, llm.Request{
		Prompt:      analysisPrompt(meta, files),
		MaxTokens:   800,
		Temperature: 0.3,
		JSONMode:    true,
	})
	if err != nil {
		return models.Analysis{}, err
	}
	var result models.Analysis
	if err := llm.DecodeLenient(out, &result); err != nil {
		return models.Analysis{}, fmt.Errorf("analysis response: %w", err)
	}
	return result, nil
}

func analysisPrompt(meta *models.RepoMetadata, files []models.SelectedFile) string {
	var b strings.Builder
	b.WriteString("Analyze this GitHub repository as inspiration for a piece of music.\n\n")
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
	fmt.Fprintf(&b, "Stars: %d, forks: %d\n", meta.Stars, meta.Forks)

	b.WriteString("\nSelected files:\n")
	for _, f := range files {
		fmt.Fprintf(&b, "--- %s (%s; tags: %s)\n%s\n", f.Path, f.Category, strings.Join(f.Tags, ", "), clip(f.Content, previewChars))
	}

	b.WriteString(`
Return a JSON object with exactly these keys:
{
  "purpose": "one or two sentences on what the project does",
  "themes": ["3-5 short thematic words"],
  "emotions": ["3-5 emotions the code evokes"],
  "technical_concepts": ["notable techniques used"],
  "musical_metaphors": ["images mapping the code to music"],
  "key_features": ["the standout features"],
  "innovation_level": "low|medium|high",
  "complexity": "simple|moderate|complex",
  "user_impact": "who benefits and how",
  "artistic_interpretation": "a short artistic reading of the codebase"
}`)
	return b.String()
}

var (
	innovationLevels = map[string]bool{"low": true, "medium": true, "high": true}
	complexityLevels = map[string]bool{"simple": true, "moderate": true, "complex": true}
)

// normalize fills every hole in a model answer from the deterministic
// result, so callers cannot tell which path produced their analysis.
func normalize(got, fb models.Analysis) models.Analysis {
	if strings.TrimSpace(got.Purpose) == "" {
		got.Purpose = fb.Purpose
	}
	if len(got.Themes) == 0 {
		got.Themes = fb.Themes
	}
	if len(got.Emotions) == 0 {
		got.Emotions = fb.Emotions
	}
	if len(got.TechnicalConcepts) == 0 {
		got.TechnicalConcepts = fb.TechnicalConcepts
	}
	if len(got.MusicalMetaphors) == 0 {
		got.MusicalMetaphors = fb.MusicalMetaphors
	}
	if len(got.KeyFeatures) == 0 {
		got.KeyFeatures = fb.KeyFeatures
	}
	got.InnovationLevel = strings.ToLower(strings.TrimSpace(got.InnovationLevel))
	if !innovationLevels[got.InnovationLevel] {
		got.InnovationLevel = fb.InnovationLevel
	}
	got.Complexity = strings.ToLower(strings.TrimSpace(got.Complexity))
	if !complexityLevels[got.Complexity] {
		got.Complexity = fb.Complexity
	}
	if strings.TrimSpace(got.UserImpact) == "" {
		got.UserImpact = fb.UserImpact
	}
	if strings.TrimSpace(got.ArtisticInterpretation) == "" {
		got.ArtisticInterpretation = fb.ArtisticInterpretation
	}
	return got
}

func fallbackAnalysis(meta *models.RepoMetadata, files []models.SelectedFile) models.Analysis {
	sourceFiles := 0
	tagSet := map[string]bool{}
	var names []string
	for _, f := range files {
		if f.Category == models.CategorySourceCode {
			sourceFiles++
		}
		for _, t := range f.Tags {
			tagSet[t] = true
		}
		if len(names) < 5 {
			names = append(names, f.Name)
		}
	}

	complexity := "moderate"
	if sourceFiles > 10 {
		complexity = "complex"
	}

	concepts := make([]string, 0, len(tagSet))
	for t := range tagSet {
		concepts = append(concepts, t)
	}
	sort.Strings(concepts)
	if len(concepts) == 0 {
		concepts = []string{"general"}
	}

	features := make([]string, 0, len(names))
	for _, n := range names {
		features = append(features, "module "+n)
	}
	if len(features) == 0 {
		features = []string{"compact codebase"}
	}

	purpose := fmt.Sprintf("%s is a software project", meta.FullName)
	if meta.Language != nil {
		purpose = fmt.Sprintf("%s is a %s project", meta.FullName, *meta.Language)
	}
	if meta.Description != nil && *meta.Description != "" {
		purpose += ": " + *meta.Description
	}
	if !strings.HasSuffix(purpose, ".") {
		purpose += "."
	}

	return models.Analysis{
		Purpose:                purpose,
		Themes:                 []string{"creation", "structure", "logic", "iteration"},
		Emotions:               []string{"focus", "determination", "flow"},
		TechnicalConcepts:      concepts,
		MusicalMetaphors:       []string{"steady rhythm of commits", "layered harmony of modules", "crescendo of features"},
		KeyFeatures:            features,
		InnovationLevel:        "medium",
		Complexity:             complexity,
		UserImpact:             "Developers and users who rely on this project in their daily work.",
		ArtisticInterpretation: "A structured composition that mirrors the architecture of the codebase.",
	}
}

// clip cuts s to at most max bytes without splitting a rune, marking
// the cut with an ellipsis.
func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
