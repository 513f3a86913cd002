package extract

import (
	"regexp"
	"strings"

	"github.com/voxboard/voxboard/internal/intent"
)

var noteLeadPattern = regexp.MustCompile(`(?i)^(?:please\s+)?(?:start\s+taking\s+notes|add\s+(?:a\s+)?note|take\s+(?:a\s+)?note|write\s+down)\b[:,]?\s*`)

// Note strips the trigger phrasing and returns the remaining note text.
func Note(text string) (NotePayload, error) {
	note := noteLeadPattern.ReplaceAllString(strings.TrimSpace(text), "")
	note = strings.TrimSpace(note)
	if note == "" {
		return NotePayload{}, &Error{Intent: intent.Note, Reason: ReasonEmptyText}
	}
	return NotePayload{Text: note}, nil
}
