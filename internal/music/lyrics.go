package music

import (
	"context"
	"fmt"
	"strings"

	"github.com/DG1001/code-to-music/internal/llm"
	"github.com/DG1001/code-to-music/internal/models"
)

// ComposeLyrics renders the lyrics artifact for a concrete style.
// Callers resolve the auto sentinel first. Errors propagate, same as
// ComposePrompt.
func (c *Composer) ComposeLyrics(ctx context.Context, meta *models.RepoMetadata, a models.Analysis, style Style) (string, error) {
	p := profileFor(style)

	var b strings.Builder
	fmt.Fprintf(&b, "Write %s song lyrics about a software repository.\n\n", style)
	fmt.Fprintf(&b, "Repository: %s\n", meta.FullName)
	fmt.Fprintf(&b, "Purpose: %s\n", a.Purpose)
	fmt.Fprintf(&b, "Themes: %s\n", strings.Join(a.Themes, ", "))
	fmt.Fprintf(&b, "Emotions: %s\n", strings.Join(a.Emotions, ", "))
	fmt.Fprintf(&b, "Who it helps: %s\n", a.UserImpact)
	fmt.Fprintf(&b, "Artistic reading: %s\n", a.ArtisticInterpretation)
	b.WriteString("\nStructure the lyrics with [Verse], [Chorus] and [Bridge] labels.\n")
	fmt.Fprintf(&b, "Match the tone: %s.\n", p.adjectives)
	b.WriteString("Tell the story of what this project does and why it matters, without getting lost in jargon. Output the lyrics only.")

	out, err := c.gen.Complete(ctx, llm.Request{
		Prompt:      b.String(),
		MaxTokens:   1000,
		Temperature: 0.8,
	})
	if err != nil {
		return "", fmt.Errorf("composing lyrics for %s: %w", style, err)
	}
	return Truncate(strings.TrimSpace(out), MaxLyricsChars), nil
}
