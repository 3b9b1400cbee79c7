package core

import "time"

type Action string

const (
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionDelete        Action = "delete"
	ActionFindAndDelete Action = "find_and_delete"
	ActionQuery         Action = "query"
	ActionClarify       Action = "clarification_needed"
	ActionGreeting      Action = "greeting"
)

// Actionable reports whether the action operates on a concrete item type.
func (a Action) Actionable() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionFindAndDelete, ActionQuery:
		return true
	}
	return false
}

type ItemType string

const (
	ItemEvent ItemType = "event"
	ItemTask  ItemType = "task"
)

type Recurrence struct {
	Freq      string   `json:"freq,omitempty"`
	Interval  int      `json:"interval,omitempty"`
	Until     string   `json:"until,omitempty"`
	ByWeekday []string `json:"byweekday,omitempty"`
}

// Instruction is the structured intent decoded from a completion reply.
// Empty strings stand for absent values.
type Instruction struct {
	Action        Action         `json:"action"`
	ItemType      ItemType       `json:"item_type,omitempty"`
	ID            string         `json:"id,omitempty"`
	Title         string         `json:"title,omitempty"`
	Description   string         `json:"description,omitempty"`
	Location      string         `json:"location,omitempty"`
	Date          string         `json:"date,omitempty"`
	Time          string         `json:"time,omitempty"`
	DatetimeStart string         `json:"datetime_start,omitempty"`
	DatetimeEnd   string         `json:"datetime_end,omitempty"`
	Recurrence    *Recurrence    `json:"recurrence,omitempty"`
	Reminders     []string       `json:"reminders,omitempty"`
	OtherFields   map[string]any `json:"other_fields"`
	MissingFields []string       `json:"missing_fields,omitempty"`
}

// Candidate is a provider item considered for listing or disambiguation.
// Timed items carry StartTime, all-day items carry StartDate (YYYY-MM-DD).
type Candidate struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Kind      ItemType   `json:"kind"`
	StartTime *time.Time `json:"start_time,omitempty"`
	StartDate string     `json:"start_date,omitempty"`
}

type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

type ReminderOverride struct {
	Method  string `json:"method"`
	Minutes int    `json:"minutes"`
}

type Reminders struct {
	UseDefault bool               `json:"useDefault"`
	Overrides  []ReminderOverride `json:"overrides"`
}

// EventFields is the provider-facing event body. Nil or empty fields are left untouched on update.
type EventFields struct {
	Summary     string     `json:"summary,omitempty"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	Start       *EventTime `json:"start,omitempty"`
	End         *EventTime `json:"end,omitempty"`
	Recurrence  []string   `json:"recurrence,omitempty"`
	Reminders   *Reminders `json:"reminders,omitempty"`
}

const (
	TaskNeedsAction = "needsAction"
	TaskCompleted   = "completed"
)

type TaskFields struct {
	Title  string `json:"title,omitempty"`
	Notes  string `json:"notes,omitempty"`
	Due    string `json:"due,omitempty"`
	Status string `json:"status,omitempty"`
}
