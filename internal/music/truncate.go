package music

import (
	"strings"
	"unicode/utf8"
)

// Truncate cuts text to at most max bytes. It prefers to end on a
// sentence boundary, falling back to a word boundary plus an ellipsis;
// the mid-word hard cut is the last resort. Text that already fits
// passes through unchanged, and applying Truncate twice with the same
// max changes nothing.
func Truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	if max <= 3 {
		return cutAtRune(text, max)
	}
	head := cutAtRune(text, max)

	// Preferred: end on a whole sentence in the back fifth.
	if i := strings.LastIndexAny(head, ".!?"); i >= 0 && float64(i) > 0.8*float64(max) {
		return head[:i+1]
	}
	// Next: end on a word, if the ellipsis still fits under max.
	if i := strings.LastIndex(head, " "); i > 0 && float64(i) > 0.9*float64(max) && i+3 <= max {
		return head[:i] + "..."
	}
	return cutAtRune(text, max-3) + "..."
}

// cutAtRune slices off at most n leading bytes of s, backing up so a
// multi-byte rune is never split.
func cutAtRune(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
