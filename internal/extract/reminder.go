package extract

import (
	"regexp"
	"strings"

	"github.com/voxboard/voxboard/internal/dateparse"
	"github.com/voxboard/voxboard/internal/intent"
)

var (
	reminderLeadPattern = regexp.MustCompile(`(?i)^(?:please\s+)?(?:add|set|create)\s+(?:a\s+)?reminder\b[:,]?\s*`)
	// The description and date clause are joined by the first "on" or "for".
	// The connector may sit at the very start of the remainder, which leaves
	// an empty description and is rejected below.
	reminderSplitPattern = regexp.MustCompile(`(?i)^(.*?)(?:^|\s+)(?:on|for)\s+(.+)$`)
)

// Reminder splits the utterance into a description and a date clause on the
// first "on"/"for" connector and parses the date clause. A missing connector
// is a structural failure; an unparseable date clause is reported as
// ReasonBadDate with the dateparse error preserved for distinct messaging.
func Reminder(text string) (ReminderPayload, error) {
	remainder := reminderLeadPattern.ReplaceAllString(strings.TrimSpace(text), "")
	remainder = strings.TrimSpace(remainder)

	m := reminderSplitPattern.FindStringSubmatch(remainder)
	if m == nil {
		return ReminderPayload{}, &Error{Intent: intent.Reminder, Reason: ReasonNoConnector}
	}

	description := strings.TrimSpace(m[1])
	description = strings.TrimSpace(strings.TrimPrefix(description, "to "))
	dateClause := strings.TrimSpace(m[2])
	if description == "" || dateClause == "" {
		return ReminderPayload{}, &Error{Intent: intent.Reminder, Reason: ReasonEmptyText}
	}

	date, err := dateparse.Parse(dateClause)
	if err != nil {
		return ReminderPayload{}, &Error{Intent: intent.Reminder, Reason: ReasonBadDate, Err: err}
	}

	return ReminderPayload{Text: description, Date: date}, nil
}
