// Package apply merges extracted command payloads into widget state.
package apply

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voxboard/voxboard/internal/extract"
	"github.com/voxboard/voxboard/internal/intent"
	"github.com/voxboard/voxboard/internal/widget"
)

// Store is the widget-store surface the applier mutates through. The store is
// owned by the host, not by the voice pipeline.
type Store interface {
	FindByType(t widget.Type) (widget.Widget, bool)
	Add(t widget.Type, pos widget.Position) widget.Widget
	Update(id string, data *widget.Data) error
}

// Outcome reports a successful application: the widget touched and the short
// user-facing confirmation message.
type Outcome struct {
	WidgetID string
	Message  string
}

// Applier resolves target widgets and appends command payloads to their data.
type Applier struct {
	store Store
	now   func() time.Time
}

// New constructs an applier over the injected store.
func New(store Store) *Applier {
	return &Applier{store: store, now: time.Now}
}

// Apply locates the widget matching the payload's intent, creating one with
// empty data when absent, appends the new item, and writes the full updated
// data back through the store.
func (a *Applier) Apply(payload extract.Payload) (Outcome, error) {
	target := a.resolve(widgetTypeFor(payload.Intent()))
	data := target.Data
	if data == nil {
		data = widget.EmptyData(target.Type)
	}

	var message string
	switch p := payload.(type) {
	case extract.AlarmPayload:
		data.Alarms = append(data.Alarms, widget.Alarm{
			ID:      uuid.NewString(),
			Time:    p.Time,
			Enabled: true,
		})
		message = fmt.Sprintf("Alarm set for %s", p.Time)
	case extract.TodoPayload:
		data.Tasks = append(data.Tasks, widget.Task{
			ID:   uuid.NewString(),
			Text: p.Text,
		})
		message = "Task added"
	case extract.ReminderPayload:
		data.Reminders = append(data.Reminders, widget.Reminder{
			ID:   uuid.NewString(),
			Text: p.Text,
			Date: p.Date.Format(time.RFC3339),
		})
		message = fmt.Sprintf("Reminder set for %s", p.Date.Format("January 2"))
	case extract.NotePayload:
		data.Notes = append(data.Notes, widget.Note{
			ID:        uuid.NewString(),
			Text:      p.Text,
			CreatedAt: a.now().Format(time.RFC3339),
		})
		message = "Note added"
	case extract.ExpensePayload:
		categoryID := a.upsertCategory(data, p.Category)
		data.Expenses = append(data.Expenses, widget.Expense{
			ID:          uuid.NewString(),
			Amount:      p.Amount,
			Description: fmt.Sprintf("Voice command: %v under %s", p.Amount, p.Category),
			CategoryID:  categoryID,
			Date:        a.now().Format(time.RFC3339),
		})
		message = fmt.Sprintf("Expense of %v added under %s", p.Amount, p.Category)
	default:
		return Outcome{}, fmt.Errorf("unsupported payload type %T", payload)
	}

	if err := a.store.Update(target.ID, data); err != nil {
		return Outcome{}, fmt.Errorf("apply %s command: %w", payload.Intent(), err)
	}
	return Outcome{WidgetID: target.ID, Message: message}, nil
}

// resolve returns the active widget of the given type, creating it on first
// use. The created widget carries the empty default payload, so a later
// extraction failure can never leave malformed data behind.
func (a *Applier) resolve(t widget.Type) widget.Widget {
	if w, found := a.store.FindByType(t); found {
		return w
	}
	return a.store.Add(t, widget.Position{})
}

// upsertCategory finds a category by case-insensitive name or synthesizes one
// with a pseudo-random display color, returning its id. The caller appends
// the expense into the same data object, keeping upsert-then-insert atomic
// from the store's perspective.
func (a *Applier) upsertCategory(data *widget.Data, name string) string {
	for _, c := range data.Categories {
		if strings.EqualFold(c.Name, name) {
			return c.ID
		}
	}

	category := widget.Category{
		ID:    uuid.NewString(),
		Name:  name,
		Color: fmt.Sprintf("#%06x", rand.IntN(0x1000000)),
	}
	data.Categories = append(data.Categories, category)
	return category.ID
}

func widgetTypeFor(in intent.Intent) widget.Type {
	switch in {
	case intent.Alarm:
		return widget.TypeAlarm
	case intent.Todo:
		return widget.TypeTodo
	case intent.Reminder:
		return widget.TypeReminder
	case intent.Note:
		return widget.TypeNote
	case intent.Expense:
		return widget.TypeExpense
	default:
		return ""
	}
}
