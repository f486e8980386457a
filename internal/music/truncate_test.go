package music

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateIdentityWhenShort(t *testing.T) {
	for _, text := range []string{"", "short", "exactly ten"} {
		if got := Truncate(text, 100); got != text {
			t.Errorf("Truncate(%q) = %q", text, got)
		}
	}
	if got := Truncate("12345", 5); got != "12345" {
		t.Errorf("text at exactly max changed: %q", got)
	}
}

func TestTruncatePrefersSentenceEnd(t *testing.T) {
	// Terminator at index 17, past 0.8*20=16.
	text := "abcdefghijklmnopq. extra words here"
	got := Truncate(text, 20)
	if got != "abcdefghijklmnopq." {
		t.Errorf("got %q", got)
	}
}

func TestTruncateFallsToWordBoundary(t *testing.T) {
	// No terminator; last space at index 37, past 0.9*40=36.
	text := strings.Repeat("a", 37) + " bbbbbb"
	got := Truncate(text, 40)
	want := strings.Repeat("a", 37) + "..."
	if got != want {
		t.Errorf("got %q", got)
	}
}

func TestTruncateHardCut(t *testing.T) {
	got := Truncate(strings.Repeat("x", 50), 10)
	if got != "xxxxxxx..." {
		t.Errorf("got %q", got)
	}
}

func TestTruncateTierBoundary(t *testing.T) {
	// The terminator after "B." sits at index 4, which does not exceed
	// 0.8*5=4, so the sentence tier must not fire.
	got := Truncate("A. B. C.", 5)
	if got != "A...." {
		t.Errorf("got %q", got)
	}
}

func TestTruncateNeverExceedsMax(t *testing.T) {
	texts := []string{
		"A. B. C.",
		strings.Repeat("word ", 100),
		strings.Repeat("sentence. ", 50),
		strings.Repeat("é", 100),
		strings.Repeat("x", 500),
	}
	for _, text := range texts {
		for _, max := range []int{1, 2, 3, 4, 5, 10, 50, 100, 333} {
			got := Truncate(text, max)
			if len(got) > max {
				t.Errorf("Truncate(%d chars, %d) returned %d bytes", len(text), max, len(got))
			}
			if !utf8.ValidString(got) {
				t.Errorf("Truncate split a rune: max=%d text=%q", max, text[:20])
			}
		}
	}
}

func TestTruncateIdempotent(t *testing.T) {
	texts := []string{
		strings.Repeat("word ", 100),
		strings.Repeat("sentence. ", 50),
		strings.Repeat("x", 500),
		"A. B. C.",
	}
	for _, text := range texts {
		for _, max := range []int{5, 10, 50, 120} {
			once := Truncate(text, max)
			twice := Truncate(once, max)
			if once != twice {
				t.Errorf("not idempotent at max=%d: %q vs %q", max, once, twice)
			}
		}
	}
}
