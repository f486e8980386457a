package llm

import "log/slog"

// WithFallback runs primary and substitutes fallback's deterministic
// result when it fails. The step name shows up in the warning log so
// operators can tell which stage degraded.
func WithFallback[T any](step string, primary func() (T, error), fallback func() T) T {
	result, err := primary()
	if err != nil {
		slog.Warn("LLM step failed, using deterministic fallback", "step", step, "error", err)
		return fallback()
	}
	return result
}
