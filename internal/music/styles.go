// Package music renders the final artifacts: a generation prompt for a
// music service and matching lyrics.
package music

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/DG1001/code-to-music/internal/llm"
	"github.com/DG1001/code-to-music/internal/models"
)

// Style tags the musical genre of an artifact.
type Style string

const (
	StyleElectronic Style = "electronic"
	StyleRock       Style = "rock"
	StyleHardRock   Style = "hardrock"
	StyleHeavyMetal Style = "heavy-metal"
	StylePop        Style = "pop"
	StyleJazz       Style = "jazz"
	StyleClassical  Style = "classical"
	StyleHipHop     Style = "hip-hop"
	StyleAmbient    Style = "ambient"

	// StyleAuto is only valid in requests. Resolution replaces it with
	// a concrete style before any artifact is generated.
	StyleAuto Style = "auto"
)

// DefaultStyle is the terminal fallback of style resolution.
const DefaultStyle = StyleElectronic

// Styles returns the nine concrete styles in a fixed order.
func Styles() []Style {
	return []Style{
		StyleElectronic, StyleRock, StyleHardRock, StyleHeavyMetal,
		StylePop, StyleJazz, StyleClassical, StyleHipHop, StyleAmbient,
	}
}

// Valid reports whether s is one of the nine concrete styles.
func Valid(s Style) bool {
	for _, known := range Styles() {
		if s == known {
			return true
		}
	}
	return false
}

type profile struct {
	instruments string
	adjectives  string
	production  string
}

var profiles = map[Style]profile{
	StyleElectronic: {
		instruments: "analog synthesizers, drum machines, arpeggiators, sub bass",
		adjectives:  "pulsing, precise, hypnotic",
		production:  "clean quantized beats with wide stereo pads and sidechain pumping",
	},
	StyleRock: {
		instruments: "electric guitars, bass guitar, live drums, organ",
		adjectives:  "driving, raw, anthemic",
		production:  "punchy live room sound with crunchy rhythm guitars",
	},
	StyleHardRock: {
		instruments: "overdriven guitars, heavy bass, powerful drums",
		adjectives:  "aggressive, loud, relentless",
		production:  "saturated guitar walls with tight double-tracked riffs",
	},
	StyleHeavyMetal: {
		instruments: "down-tuned guitars, double kick drums, growling bass",
		adjectives:  "dark, massive, unstoppable",
		production:  "scooped mids, fast palm-muted riffing and a thunderous low end",
	},
	StylePop: {
		instruments: "bright synths, clean guitars, programmed drums, handclaps",
		adjectives:  "catchy, polished, uplifting",
		production:  "radio-ready mix with a big hook and layered vocals",
	},
	StyleJazz: {
		instruments: "piano, upright bass, brushed drums, saxophone, trumpet",
		adjectives:  "smooth, playful, sophisticated",
		production:  "warm live ensemble feel with room for improvisation",
	},
	StyleClassical: {
		instruments: "string orchestra, woodwinds, french horns, timpani",
		adjectives:  "elegant, sweeping, dramatic",
		production:  "concert hall depth with a wide dynamic range",
	},
	StyleHipHop: {
		instruments: "808 bass, crisp hi-hats, sampled loops, vinyl textures",
		adjectives:  "confident, rhythmic, streetwise",
		production:  "head-nodding groove with hard-hitting drums",
	},
	StyleAmbient: {
		instruments: "evolving pads, field recordings, soft piano, drones",
		adjectives:  "spacious, meditative, weightless",
		production:  "slow washes of reverb with barely-there percussion",
	},
}

// profileFor also serves styles outside the fixed set: explicit request
// styles are passed through unvalidated, so an unknown name gets a
// generic profile built from the name itself.
func profileFor(s Style) profile {
	if p, ok := profiles[s]; ok {
		return p
	}
	name := string(s)
	return profile{
		instruments: "instrumentation typical for " + name + " music",
		adjectives:  "expressive, authentic",
		production:  "production in the style of " + name,
	}
}

// ResolveStyle maps the repository's character onto one of the nine
// styles. Total: a model failure or unusable answer degrades through a
// substring match and finally DefaultStyle. Only called for auto.
func (c *Composer) ResolveStyle(ctx context.Context, meta *models.RepoMetadata, a models.Analysis) Style {
	return llm.WithFallback("style resolution",
		func() (Style, error) {
			out, err := c.gen.Complete(ctx, llm.Request{
				Prompt:      rubricPrompt(meta, a),
				MaxTokens:   10,
				Temperature: 0.3,
			})
			if err != nil {
				return "", err
			}
			if s, ok := matchStyle(out); ok {
				return s, nil
			}
			return "", fmt.Errorf("no known style in response %q", out)
		},
		func() Style { return DefaultStyle },
	)
}

func rubricPrompt(meta *models.RepoMetadata, a models.Analysis) string {
	var b strings.Builder
	b.WriteString("Choose the single musical style that best fits this repository.\n\n")
	fmt.Fprintf(&b, "Repository: %s\n", meta.FullName)
	fmt.Fprintf(&b, "Purpose: %s\n", a.Purpose)
	fmt.Fprintf(&b, "Themes: %s\n", strings.Join(a.Themes, ", "))
	fmt.Fprintf(&b, "Emotions: %s\n", strings.Join(a.Emotions, ", "))
	fmt.Fprintf(&b, "Complexity: %s, innovation: %s\n", a.Complexity, a.InnovationLevel)
	b.WriteString("\nGuidance: electronic for tools and automation, rock for bold frameworks, hardrock for aggressive performance work, heavy-metal for low-level systems code, pop for friendly user-facing apps, jazz for clever experimental code, classical for long-lived foundational libraries, hip-hop for expressive scripting, ambient for quiet background services.\n")
	b.WriteString("\nAnswer with exactly one of: electronic, rock, hardrock, heavy-metal, pop, jazz, classical, hip-hop, ambient. One word only.")
	return b.String()
}

// matchStyle validates a model answer, first as a bare style name and
// then as a substring of a noisy response. Longer names are checked
// first so "rock" cannot shadow "hardrock".
func matchStyle(out string) (Style, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(out))
	cleaned = strings.Trim(cleaned, `"'.!`)
	if s := Style(cleaned); Valid(s) {
		return s, true
	}

	byLength := Styles()
	sort.SliceStable(byLength, func(i, j int) bool { return len(byLength[i]) > len(byLength[j]) })
	for _, s := range byLength {
		if strings.Contains(cleaned, string(s)) {
			return s, true
		}
	}
	return "", false
}
