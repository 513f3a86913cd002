// Package widget defines the dashboard widget model and its in-memory store.
package widget

import (
	"fmt"
	"time"
)

// Type identifies one of the fixed widget kinds on the dashboard.
type Type string

const (
	TypeAlarm    Type = "alarm"
	TypeTodo     Type = "todo"
	TypeReminder Type = "reminder"
	TypeNote     Type = "note"
	TypeExpense  Type = "expense"
)

// Types lists all valid widget types in declaration order.
var Types = []Type{TypeAlarm, TypeTodo, TypeReminder, TypeNote, TypeExpense}

// Valid reports whether t is a known widget type.
func (t Type) Valid() bool {
	switch t {
	case TypeAlarm, TypeTodo, TypeReminder, TypeNote, TypeExpense:
		return true
	default:
		return false
	}
}

// Position is the widget's layout offset on the dashboard.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is the widget's rendered dimensions.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Alarm is one scheduled alarm entry. Time is a 24-hour "HH:MM" string.
type Alarm struct {
	ID      string `json:"id"`
	Time    string `json:"time"`
	Enabled bool   `json:"enabled"`
}

// Task is one to-do list entry.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Reminder is one dated reminder entry. Date is RFC 3339.
type Reminder struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// Note is one free-text note entry. CreatedAt is RFC 3339.
type Note struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

// Category is one expense category. Color is a "#rrggbb" display color.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Expense is one expense line. CategoryID must reference a Category in the
// same widget's Categories list. Date is RFC 3339.
type Expense struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	CategoryID  string  `json:"categoryId"`
	Date        string  `json:"date"`
}

// Data is the widget's typed payload. Only the fields belonging to the
// widget's type are populated; the service layer enforces per-type rules.
type Data struct {
	Alarms     []Alarm    `json:"alarms,omitempty"`
	Tasks      []Task     `json:"tasks,omitempty"`
	Reminders  []Reminder `json:"reminders,omitempty"`
	Notes      []Note     `json:"notes,omitempty"`
	Categories []Category `json:"categories,omitempty"`
	Expenses   []Expense  `json:"expenses,omitempty"`
}

// EmptyData returns the documented empty-default payload for a widget type.
func EmptyData(t Type) *Data {
	switch t {
	case TypeAlarm:
		return &Data{Alarms: []Alarm{}}
	case TypeTodo:
		return &Data{Tasks: []Task{}}
	case TypeReminder:
		return &Data{Reminders: []Reminder{}}
	case TypeNote:
		return &Data{Notes: []Note{}}
	case TypeExpense:
		return &Data{Categories: []Category{}, Expenses: []Expense{}}
	default:
		return &Data{}
	}
}

// Widget is one dashboard entry. Data may be nil for a freshly added widget;
// consumers must treat nil as the empty-default payload for the type.
type Widget struct {
	ID       string    `json:"id"`
	Type     Type      `json:"type"`
	Position Position  `json:"position"`
	Size     Size      `json:"size"`
	Data     *Data     `json:"data,omitempty"`
	Trashed  bool      `json:"trashed,omitempty"`
	AddedAt  time.Time `json:"addedAt"`
}

// clone returns a deep copy so store snapshots never alias caller slices.
func (w Widget) clone() Widget {
	out := w
	if w.Data != nil {
		out.Data = w.Data.clone()
	}
	return out
}

func (d *Data) clone() *Data {
	if d == nil {
		return nil
	}
	out := &Data{}
	if d.Alarms != nil {
		out.Alarms = append([]Alarm{}, d.Alarms...)
	}
	if d.Tasks != nil {
		out.Tasks = append([]Task{}, d.Tasks...)
	}
	if d.Reminders != nil {
		out.Reminders = append([]Reminder{}, d.Reminders...)
	}
	if d.Notes != nil {
		out.Notes = append([]Note{}, d.Notes...)
	}
	if d.Categories != nil {
		out.Categories = append([]Category{}, d.Categories...)
	}
	if d.Expenses != nil {
		out.Expenses = append([]Expense{}, d.Expenses...)
	}
	return out
}

// ItemCount returns the number of entries in the payload list that belongs
// to the given widget type.
func (d *Data) ItemCount(t Type) int {
	if d == nil {
		return 0
	}
	switch t {
	case TypeAlarm:
		return len(d.Alarms)
	case TypeTodo:
		return len(d.Tasks)
	case TypeReminder:
		return len(d.Reminders)
	case TypeNote:
		return len(d.Notes)
	case TypeExpense:
		return len(d.Expenses)
	default:
		return 0
	}
}

// ParseType converts external input to a Type.
func ParseType(raw string) (Type, error) {
	t := Type(raw)
	if !t.Valid() {
		return "", fmt.Errorf("unknown widget type %q", raw)
	}
	return t, nil
}
