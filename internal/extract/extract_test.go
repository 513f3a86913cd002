package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxboard/voxboard/internal/dateparse"
	"github.com/voxboard/voxboard/internal/intent"
)

func TestAlarmTimeFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"evening hour", "set an alarm for 8 pm", "20:00"},
		{"midnight", "set an alarm for 12 am", "00:00"},
		{"noon", "set an alarm for 12 pm", "12:00"},
		{"compact clock", "set an alarm for 8:15am", "08:15"},
		{"clock with space", "alarm at 8:15 am", "08:15"},
		{"evening clock", "wake me up at 10:45 pm", "22:45"},
		{"spaced minutes", "set an alarm for 8 30 pm", "20:30"},
		{"bare 24h hour", "set an alarm for 18", "18:00"},
		{"word time", "set an alarm for eight thirty pm", "20:30"},
		{"word hour only", "wake me at seven am", "07:00"},
		{"word forty-five", "set an alarm for six forty-five am", "06:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Alarm(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Time)
		})
	}
}

func TestAlarmFailures(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason Reason
	}{
		{"no digits", "set an alarm for banana o'clock", ReasonNoTime},
		{"empty", "", ReasonNoTime},
		{"meridiem hour out of range", "set an alarm for 13 pm", ReasonBadHour},
		{"bare hour out of range", "set an alarm for 31", ReasonBadHour},
		{"minute out of range", "set an alarm for 8:75 am", ReasonBadMinute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Alarm(tt.input)
			require.Error(t, err)

			var extractErr *Error
			require.ErrorAs(t, err, &extractErr)
			assert.Equal(t, intent.Alarm, extractErr.Intent)
			assert.Equal(t, tt.reason, extractErr.Reason)
		})
	}
}

func TestTodoStripsTriggerPhrases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"add a task", "add a task buy milk", "buy milk"},
		{"add task", "add task water the plants", "water the plants"},
		{"todo prefix", "todo call the bank", "call the bank"},
		{"add to list", "add to the list schedule dentist", "schedule dentist"},
		{"trailing list phrase", "add a task buy milk to the list", "buy milk"},
		{"no trigger", "buy milk", "buy milk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Todo(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Text)
		})
	}
}

func TestTodoEmptyRemainder(t *testing.T) {
	for _, input := range []string{"add a task", "todo", "   "} {
		_, err := Todo(input)
		var extractErr *Error
		require.ErrorAs(t, err, &extractErr, "input %q", input)
		assert.Equal(t, ReasonEmptyText, extractErr.Reason)
	}
}

func TestNoteStripsTriggerPhrases(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"add a note remember the wifi password", "remember the wifi password"},
		{"start taking notes meeting summary", "meeting summary"},
		{"write down pick up keys", "pick up keys"},
	}

	for _, tt := range tests {
		got, err := Note(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Text)
	}

	_, err := Note("add a note")
	var extractErr *Error
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, ReasonEmptyText, extractErr.Reason)
}

func TestReminderSplitsOnConnector(t *testing.T) {
	got, err := Reminder("add a reminder call mom on december 25")
	require.NoError(t, err)
	assert.Equal(t, "call mom", got.Text)
	assert.Equal(t, time.December, got.Date.Month())
	assert.Equal(t, 25, got.Date.Day())
	assert.Equal(t, time.Now().Year(), got.Date.Year())
}

func TestReminderStripsLeadingTo(t *testing.T) {
	got, err := Reminder("set a reminder to renew the passport for march 3rd")
	require.NoError(t, err)
	assert.Equal(t, "renew the passport", got.Text)
	assert.Equal(t, time.March, got.Date.Month())
	assert.Equal(t, 3, got.Date.Day())
}

func TestReminderStructuralFailure(t *testing.T) {
	_, err := Reminder("set a reminder")
	var extractErr *Error
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, ReasonNoConnector, extractErr.Reason)

	_, err = Reminder("add a reminder call mom")
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, ReasonNoConnector, extractErr.Reason)
}

func TestReminderLeadingConnectorIsEmptyDescription(t *testing.T) {
	// The first connector is the leading "for", which leaves nothing on the
	// description side.
	_, err := Reminder("set a reminder for dentist on dec 25")

	var extractErr *Error
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, ReasonEmptyText, extractErr.Reason)
}

// A bad date clause must stay distinguishable from a bad structure so the
// user gets told to try a different date format.
func TestReminderBadDateIsDistinguishable(t *testing.T) {
	_, err := Reminder("add a reminder call mom on someday soon")

	var extractErr *Error
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, ReasonBadDate, extractErr.Reason)

	var parseErr *dateparse.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestExpenseFormats(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		amount   float64
		category string
	}{
		{"under connector", "add an expense of 20 under groceries", 20, "groceries"},
		{"for connector", "spent 15 dollars for lunch", 15, "lunch"},
		{"on connector", "spent 42.50 on household supplies", 42.5, "household supplies"},
		{"dollar singular", "expense of 1 dollar on coffee", 1, "coffee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expense(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.amount, got.Amount)
			assert.Equal(t, tt.category, got.Category)
		})
	}
}

func TestExpenseFailures(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason Reason
	}{
		{"no amount", "add an expense under groceries", ReasonMissingAmount},
		{"no category", "spent 20", ReasonMissingCategory},
		{"amount without connector", "spent 20 dollars", ReasonMissingCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Expense(tt.input)
			var extractErr *Error
			require.ErrorAs(t, err, &extractErr)
			assert.Equal(t, tt.reason, extractErr.Reason)
		})
	}
}

func TestForIntentDispatch(t *testing.T) {
	payload, err := ForIntent(intent.Todo, "add a task buy milk")
	require.NoError(t, err)
	assert.Equal(t, intent.Todo, payload.Intent())

	_, err = ForIntent(intent.Intent("bogus"), "whatever")
	assert.Error(t, err)
}
