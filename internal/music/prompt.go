package music

import (
	"context"
	"fmt"
	"strings"

	"github.com/DG1001/code-to-music/internal/llm"
	"github.com/DG1001/code-to-music/internal/models"
)

// Artifact ceilings in characters.
const (
	MaxPromptChars = 2000
	MaxLyricsChars = 3000
)

// Composer renders artifacts from an analysis.
type Composer struct {
	gen llm.Generator
}

func NewComposer(gen llm.Generator) *Composer {
	return &Composer{gen: gen}
}

// ComposePrompt renders the music-generation prompt artifact. Unlike
// the earlier pipeline steps there is no fallback: without the model
// there is no artifact, so errors propagate to the caller.
func (c *Composer) ComposePrompt(ctx context.Context, meta *models.RepoMetadata, a models.Analysis, style Style) (string, error) {
	p := profileFor(style)

	var b strings.Builder
	fmt.Fprintf(&b, "Write a music generation prompt for a %s track inspired by a software repository.\n\n", style)
	fmt.Fprintf(&b, "Repository: %s\n", meta.FullName)
	fmt.Fprintf(&b, "Purpose: %s\n", a.Purpose)
	fmt.Fprintf(&b, "Themes: %s\n", strings.Join(a.Themes, ", "))
	fmt.Fprintf(&b, "Emotions: %s\n", strings.Join(a.Emotions, ", "))
	fmt.Fprintf(&b, "Musical metaphors: %s\n", strings.Join(a.MusicalMetaphors, ", "))
	fmt.Fprintf(&b, "Key features: %s\n", strings.Join(a.KeyFeatures, ", "))
	fmt.Fprintf(&b, "Complexity: %s, innovation: %s\n", a.Complexity, a.InnovationLevel)
	b.WriteString("\nStyle direction:\n")
	fmt.Fprintf(&b, "Instruments: %s\n", p.instruments)
	fmt.Fprintf(&b, "Character: %s\n", p.adjectives)
	fmt.Fprintf(&b, "Production: %s\n", p.production)
	b.WriteString("\nDescribe the track's mood, tempo, instrumentation and arc in vivid, concrete language a music generation service can follow. Output the prompt text only.")

	out, err := c.gen.Complete(ctx, llm.Request{
		Prompt:      b.String(),
		MaxTokens:   700,
		Temperature: 0.8,
	})
	if err != nil {
		return "", fmt.Errorf("composing prompt: %w", err)
	}
	return Truncate(strings.TrimSpace(out), MaxPromptChars), nil
}
