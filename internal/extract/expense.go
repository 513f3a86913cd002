package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/voxboard/voxboard/internal/intent"
)

var (
	amountPattern  = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	expensePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:dollars?\s+)?(?:for|on|under)\s+(.+)$`)
)

// Expense matches "<amount> [dollars] (for|on|under) <category>"; the
// category is free text through the end of the utterance.
func Expense(text string) (ExpensePayload, error) {
	trimmed := strings.TrimSpace(text)

	if !amountPattern.MatchString(trimmed) {
		return ExpensePayload{}, &Error{Intent: intent.Expense, Reason: ReasonMissingAmount}
	}

	m := expensePattern.FindStringSubmatch(trimmed)
	if m == nil {
		return ExpensePayload{}, &Error{Intent: intent.Expense, Reason: ReasonMissingCategory}
	}

	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return ExpensePayload{}, &Error{Intent: intent.Expense, Reason: ReasonMissingAmount, Err: err}
	}

	category := strings.TrimSpace(m[2])
	if category == "" {
		return ExpensePayload{}, &Error{Intent: intent.Expense, Reason: ReasonMissingCategory}
	}

	return ExpensePayload{Amount: amount, Category: category}, nil
}
