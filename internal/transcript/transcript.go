// Package transcript assembles and normalizes recognized ASR output.
package transcript

import "strings"

// Assemble joins ASR segments into one utterance, dropping empty segments
// and collapsing internal whitespace.
func Assemble(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	joined := strings.Join(segments, " ")
	return strings.Join(strings.Fields(joined), " ")
}

// Normalize produces the canonical command form staged for confirmation:
// trimmed, lowercased, single-spaced. Command matching operates on this form.
func Normalize(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	return strings.ToLower(collapsed)
}
