package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// DecodeLenient parses JSON out of model output that may be wrapped in
// markdown fences or surrounded by prose. It tries the cleaned text
// directly, then the first balanced JSON array or object inside it.
func DecodeLenient(text string, v any) error {
	text = stripCodeFences(text)
	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}
	if sub, ok := firstJSONValue(text); ok {
		if err := json.Unmarshal([]byte(sub), v); err == nil {
			return nil
		}
	}
	return errors.New("no valid JSON in model output")
}

// stripCodeFences removes markdown code fences that some models wrap around JSON.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		// Remove opening fence (```json or ```)
		if i := strings.Index(s, "\n"); i != -1 {
			s = s[i+1:]
		}
		// Remove closing fence
		if i := strings.LastIndex(s, "```"); i != -1 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	return s
}

// firstJSONValue returns the first balanced JSON object or array in s,
// ignoring brackets inside string literals.
func firstJSONValue(s string) (string, bool) {
	start := strings.IndexAny(s, "[{")
	if start == -1 {
		return "", false
	}
	open := s[start]
	closing := byte('}')
	if open == '[' {
		closing = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
