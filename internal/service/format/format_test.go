package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sandevgo/calbot/internal/core"
)

func at(t *testing.T, s string) *time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatal(err)
	}
	return &ts
}

func TestLine(t *testing.T) {
	tests := []struct {
		name     string
		input    core.Candidate
		expected string
	}{
		{
			name:     "timed event keeps its own offset",
			input:    core.Candidate{Title: "Dentist", Kind: core.ItemEvent, StartTime: at(t, "2025-06-27T14:30:00-05:00")},
			expected: "• Dentist (06/27/2025 at 02:30 PM)",
		},
		{
			name:     "all-day event",
			input:    core.Candidate{Title: "Holiday", Kind: core.ItemEvent, StartDate: "2025-07-04"},
			expected: "• Holiday (All day - 07/04/2025)",
		},
		{
			name:     "undated event",
			input:    core.Candidate{Title: "Someday", Kind: core.ItemEvent},
			expected: "• Someday (No date specified)",
		},
		{
			name:     "untitled event",
			input:    core.Candidate{Kind: core.ItemEvent},
			expected: "• Untitled Event (No date specified)",
		},
		{
			name:     "task with due date",
			input:    core.Candidate{Title: "Pay rent", Kind: core.ItemTask, StartDate: "2025-07-01"},
			expected: "• Pay rent (Due: 07/01/2025)",
		},
		{
			name:     "task without due date",
			input:    core.Candidate{Kind: core.ItemTask},
			expected: "• Untitled Task (Due: No due date)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Line(tt.input))
		})
	}
}

func TestListing(t *testing.T) {
	assert.Equal(t, "📅 **Your Events:**\n\nNo events found for the specified time period.", Listing(core.ItemEvent, nil))
	assert.Equal(t, "📋 **Your Tasks:**\n\nNo tasks found for the specified time period.", Listing(core.ItemTask, nil))

	got := Listing(core.ItemTask, []core.Candidate{
		{Title: "A", Kind: core.ItemTask},
		{Title: "B", Kind: core.ItemTask, StartDate: "2025-01-02"},
	})
	assert.Equal(t, "📋 **Your Tasks:**\n\n• A (Due: No due date)\n• B (Due: 01/02/2025)", got)
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "Found 2 events", Found(core.ItemEvent, 2))
	assert.Equal(t, "Event 'Lunch' created successfully", Created(core.ItemEvent, "Lunch"))
	assert.Equal(t, "Task 'Milk' created successfully", Created(core.ItemTask, "Milk"))
	assert.Equal(t, "Task updated successfully", Updated(core.ItemTask))
	assert.Equal(t, "Event deleted successfully", DeletedByID(core.ItemEvent))
}

func TestResolutionTexts(t *testing.T) {
	msg, formatted := NothingToDelete(core.ItemEvent)
	assert.Equal(t, "No events found to delete.", msg)
	assert.Equal(t, "📅 **No events found**\n\nThere are no events available to delete.", formatted)

	browsed := []core.Candidate{{Title: "Gym", Kind: core.ItemEvent}}
	msg, formatted = NoMatch(core.ItemEvent, "dentist", browsed)
	assert.Equal(t, "No events found matching 'dentist'. Here are all your events:", msg)
	assert.Equal(t, "❌ **No matching events found**\n\nI couldn't find any events matching 'dentist'. Here are your upcoming events:\n\n• Gym (No date specified)\n\nPlease specify which event you'd like to delete.", formatted)

	msg, formatted = Deleted(core.ItemTask, core.Candidate{Title: "Pay rent", Kind: core.ItemTask})
	assert.Equal(t, "Task 'Pay rent' deleted successfully.", msg)
	assert.Equal(t, "✅ **Task Deleted**\n\nSuccessfully deleted: Pay rent", formatted)

	matches := []core.Candidate{{Title: "Dentist appointment", Kind: core.ItemTask}, {Title: "Dentist follow-up", Kind: core.ItemTask}}
	msg, formatted = Ambiguous(core.ItemTask, "dentist", matches)
	assert.Equal(t, "Found 2 tasks matching 'dentist'. Please specify which one to delete:", msg)
	assert.Contains(t, formatted, "🔍 **Multiple matches found**\n\nFound 2 tasks matching 'dentist':\n\n• Dentist appointment (Due: No due date)\n• Dentist follow-up (Due: No due date)")
	assert.Contains(t, formatted, "Please specify which task you'd like to delete by providing more details.")
}

func TestFailed(t *testing.T) {
	assert.Equal(t, "Failed to delete task: "+assert.AnError.Error(), Failed("delete "+Noun(core.ItemTask, 1), assert.AnError))
	assert.Equal(t, "events", Noun(core.ItemEvent, 0))
}
