package domain

// GenerationResult is the outcome of one call to a text generation backend.
// Exactly one of Text (OK) or Err (!OK) is meaningful.
type GenerationResult struct {
	OK   bool
	Text string
	Err  string
	// Model and Backend identify what was called, for diagnostics.
	Model   string
	Backend string
}

// GenerationSuccess wraps the verbatim backend output.
func GenerationSuccess(text string) GenerationResult {
	return GenerationResult{OK: true, Text: text}
}

// GenerationFailure wraps a human-readable failure message.
func GenerationFailure(message string) GenerationResult {
	return GenerationResult{Err: message}
}
