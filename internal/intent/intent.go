// Package intent classifies transcript text into one of the widget command
// intents using keyword containment checks in a fixed priority order.
package intent

import "strings"

// Intent is one recognized voice-command category.
type Intent string

const (
	Alarm    Intent = "alarm"
	Todo     Intent = "todo"
	Reminder Intent = "reminder"
	Note     Intent = "note"
	Expense  Intent = "expense"
)

// rule binds one intent to its trigger vocabulary. Rules are evaluated top to
// bottom and the first containment hit wins, so overlapping phrasings resolve
// deterministically: "remind me at" routes to alarm before the generic
// reminder triggers, and reminder outranks todo and alarm keywords.
type rule struct {
	intent   Intent
	triggers []string
}

var rules = []rule{
	{Alarm, []string{"remind me at"}},
	{Reminder, []string{"reminder", "remind me"}},
	{Alarm, []string{"alarm", "wake"}},
	{Todo, []string{"task", "todo", "add to list"}},
	{Note, []string{"note", "write down"}},
	{Expense, []string{"expense", "spent", "cost"}},
}

// Classify inspects the transcript and returns the matched intent. The second
// return value is false when no trigger vocabulary matched.
func Classify(text string) (Intent, bool) {
	lowered := strings.ToLower(text)
	for _, r := range rules {
		for _, trigger := range r.triggers {
			if strings.Contains(lowered, trigger) {
				return r.intent, true
			}
		}
	}
	return "", false
}
