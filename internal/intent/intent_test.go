package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Intent
		matched bool
	}{
		{"alarm keyword", "set an alarm for 8 pm", Alarm, true},
		{"wake keyword", "wake me up at 7", Alarm, true},
		{"remind me at routes to alarm", "remind me at 6:30 am", Alarm, true},
		{"todo keyword", "add a task buy milk", Todo, true},
		{"todo literal", "todo water the plants", Todo, true},
		{"add to list", "add to list call the bank", Todo, true},
		{"reminder keyword", "add a reminder call mom on december 25", Reminder, true},
		{"remind me", "remind me to stretch on friday", Reminder, true},
		{"note keyword", "add a note about the meeting", Note, true},
		{"write down", "write down the wifi password", Note, true},
		{"expense keyword", "add an expense of 20 under groceries", Expense, true},
		{"spent keyword", "spent 15 dollars on lunch", Expense, true},
		{"cost keyword", "the repair cost 300 under car", Expense, true},
		{"no match", "play some music", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.input)
			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// A transcript containing both reminder and todo vocabulary must always
// resolve to reminder; the rule order is a contract.
func TestClassifyPriorityIsDeterministic(t *testing.T) {
	got, ok := Classify("add a reminder about the task review on monday")
	assert.True(t, ok)
	assert.Equal(t, Reminder, got)

	got, ok = Classify("task list reminder cleanup")
	assert.True(t, ok)
	assert.Equal(t, Reminder, got)
}

func TestClassifyIsIdempotent(t *testing.T) {
	for _, input := range []string{"set an alarm for 8 pm", "add a task buy milk", "gibberish"} {
		first, firstOK := Classify(input)
		second, secondOK := Classify(input)
		assert.Equal(t, first, second)
		assert.Equal(t, firstOK, secondOK)
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	got, ok := Classify("ADD A REMINDER call mom ON DECEMBER 25")
	assert.True(t, ok)
	assert.Equal(t, Reminder, got)
}
