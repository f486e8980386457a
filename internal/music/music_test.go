package music

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/DG1001/code-to-music/internal/llm"
	"github.com/DG1001/code-to-music/internal/models"
)

type stubGen struct {
	out string
	err error
}

func (s *stubGen) Complete(_ context.Context, _ llm.Request) (string, error) {
	return s.out, s.err
}

func sampleMeta() *models.RepoMetadata {
	return &models.RepoMetadata{Owner: "acme", Name: "widgets", FullName: "acme/widgets"}
}

func sampleAnalysis() models.Analysis {
	return models.Analysis{
		Purpose:                "Builds widgets.",
		Themes:                 []string{"speed", "precision"},
		Emotions:               []string{"focus"},
		TechnicalConcepts:      []string{"api-interaction"},
		MusicalMetaphors:       []string{"steady rhythm"},
		KeyFeatures:            []string{"fast builds"},
		InnovationLevel:        "medium",
		Complexity:             "moderate",
		UserImpact:             "Developers ship faster.",
		ArtisticInterpretation: "An assembly line in motion.",
	}
}

func TestStylesEnumeration(t *testing.T) {
	all := Styles()
	if len(all) != 9 {
		t.Fatalf("expected 9 styles, got %d", len(all))
	}
	for _, s := range all {
		if !Valid(s) {
			t.Errorf("style %q not valid", s)
		}
	}
	if Valid(StyleAuto) {
		t.Error("auto must not count as a concrete style")
	}
	if Valid(Style("polka")) {
		t.Error("unknown style accepted")
	}
}

func TestResolveStyleExactAnswer(t *testing.T) {
	c := NewComposer(&stubGen{out: "rock\n"})
	if got := c.ResolveStyle(context.Background(), sampleMeta(), sampleAnalysis()); got != StyleRock {
		t.Errorf("got %q", got)
	}
}

func TestResolveStyleSubstringPrefersLongerNames(t *testing.T) {
	c := NewComposer(&stubGen{out: "I would go with hardrock for this one."})
	if got := c.ResolveStyle(context.Background(), sampleMeta(), sampleAnalysis()); got != StyleHardRock {
		t.Errorf("got %q", got)
	}
}

func TestResolveStyleDefaultsOnFailure(t *testing.T) {
	c := NewComposer(&stubGen{err: fmt.Errorf("timeout")})
	if got := c.ResolveStyle(context.Background(), sampleMeta(), sampleAnalysis()); got != StyleElectronic {
		t.Errorf("got %q", got)
	}
}

func TestResolveStyleDefaultsOnUnknownAnswer(t *testing.T) {
	c := NewComposer(&stubGen{out: "polka, definitely polka"})
	if got := c.ResolveStyle(context.Background(), sampleMeta(), sampleAnalysis()); got != DefaultStyle {
		t.Errorf("got %q", got)
	}
}

func TestProfileForUnknownStyleIsGeneric(t *testing.T) {
	p := profileFor(Style("bogus-style"))
	if !strings.Contains(p.instruments, "bogus-style") {
		t.Errorf("generic profile ignores the style name: %q", p.instruments)
	}
}

func TestComposePromptTruncatesToCeiling(t *testing.T) {
	c := NewComposer(&stubGen{out: strings.Repeat("loud guitars. ", 500)})
	got, err := c.ComposePrompt(context.Background(), sampleMeta(), sampleAnalysis(), StyleRock)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) > MaxPromptChars {
		t.Errorf("prompt artifact too long: %d", len(got))
	}
	if !strings.HasSuffix(got, ".") {
		t.Errorf("expected a sentence cut, got tail %q", got[len(got)-10:])
	}
}

func TestComposePromptPropagatesErrors(t *testing.T) {
	c := NewComposer(&stubGen{err: fmt.Errorf("service down")})
	if _, err := c.ComposePrompt(context.Background(), sampleMeta(), sampleAnalysis(), StyleRock); err == nil {
		t.Fatal("expected error")
	}
}

func TestComposeLyricsTruncatesToCeiling(t *testing.T) {
	c := NewComposer(&stubGen{out: "[Verse]\n" + strings.Repeat("la la la ", 600)})
	got, err := c.ComposeLyrics(context.Background(), sampleMeta(), sampleAnalysis(), StylePop)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) > MaxLyricsChars {
		t.Errorf("lyrics artifact too long: %d", len(got))
	}
	if !strings.HasPrefix(got, "[Verse]") {
		t.Errorf("lost the structure label: %q", got[:20])
	}
}

func TestComposeLyricsPropagatesErrors(t *testing.T) {
	c := NewComposer(&stubGen{err: fmt.Errorf("service down")})
	if _, err := c.ComposeLyrics(context.Background(), sampleMeta(), sampleAnalysis(), StylePop); err == nil {
		t.Fatal("expected error")
	}
}
