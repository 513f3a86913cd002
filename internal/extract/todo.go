package extract

import (
	"regexp"
	"strings"

	"github.com/voxboard/voxboard/internal/intent"
)

var (
	todoLeadPattern  = regexp.MustCompile(`(?i)^(?:please\s+)?(?:add\s+(?:a\s+)?(?:new\s+)?task|add\s+(?:a\s+)?todo|todo|add\s+to\s+(?:the\s+|my\s+)?list)\b[:,]?\s*`)
	todoTrailPattern = regexp.MustCompile(`(?i)\s+to\s+(?:the\s+|my\s+)?list$`)
)

// Todo strips the trigger phrasing and returns the remaining task text.
func Todo(text string) (TodoPayload, error) {
	task := todoLeadPattern.ReplaceAllString(strings.TrimSpace(text), "")
	task = todoTrailPattern.ReplaceAllString(task, "")
	task = strings.TrimSpace(task)
	if task == "" {
		return TodoPayload{}, &Error{Intent: intent.Todo, Reason: ReasonEmptyText}
	}
	return TodoPayload{Text: task}, nil
}
