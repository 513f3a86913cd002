// Package extract pulls structured command parameters out of transcript text,
// one small pattern-matching extractor per intent.
package extract

import (
	"fmt"
	"time"

	"github.com/voxboard/voxboard/internal/intent"
)

// Reason identifies why extraction failed, in enough detail to tell the user
// what to rephrase.
type Reason string

const (
	ReasonNoTime          Reason = "no_time"
	ReasonBadHour         Reason = "bad_hour"
	ReasonBadMinute       Reason = "bad_minute"
	ReasonEmptyText       Reason = "empty_text"
	ReasonNoConnector     Reason = "no_connector"
	ReasonMissingAmount   Reason = "missing_amount"
	ReasonMissingCategory Reason = "missing_category"
	ReasonBadDate         Reason = "bad_date"
)

// Error is a typed extraction failure. Err carries the underlying cause when
// one exists (the reminder extractor wraps date parse failures this way).
type Error struct {
	Intent intent.Intent
	Reason Reason
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract %s command (%s): %v", e.Intent, e.Reason, e.Err)
	}
	return fmt.Sprintf("extract %s command: %s", e.Intent, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Payload is one extracted, intent-specific parameter set.
type Payload interface {
	Intent() intent.Intent
}

// AlarmPayload carries a 24-hour "HH:MM" alarm time.
type AlarmPayload struct {
	Time string
}

func (AlarmPayload) Intent() intent.Intent { return intent.Alarm }

// TodoPayload carries the task text.
type TodoPayload struct {
	Text string
}

func (TodoPayload) Intent() intent.Intent { return intent.Todo }

// ReminderPayload carries the reminder description and its calendar date.
type ReminderPayload struct {
	Text string
	Date time.Time
}

func (ReminderPayload) Intent() intent.Intent { return intent.Reminder }

// NotePayload carries the note text.
type NotePayload struct {
	Text string
}

func (NotePayload) Intent() intent.Intent { return intent.Note }

// ExpensePayload carries the spent amount and the spoken category name.
type ExpensePayload struct {
	Amount   float64
	Category string
}

func (ExpensePayload) Intent() intent.Intent { return intent.Expense }

// ForIntent runs the extractor matching the classified intent.
func ForIntent(in intent.Intent, text string) (Payload, error) {
	switch in {
	case intent.Alarm:
		return Alarm(text)
	case intent.Todo:
		return Todo(text)
	case intent.Reminder:
		return Reminder(text)
	case intent.Note:
		return Note(text)
	case intent.Expense:
		return Expense(text)
	default:
		return nil, fmt.Errorf("no extractor for intent %q", in)
	}
}
