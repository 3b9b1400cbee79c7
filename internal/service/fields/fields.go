// Package fields converts loosely typed instruction values into the shapes
// scheduling backends expect.
package fields

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sandevgo/calbot/internal/core"
)

const (
	DateLayout      = "2006-01-02"
	ReminderPopup   = "popup"
	DefaultEventLen = time.Hour

	UntitledEvent = "Untitled Event"
	UntitledTask  = "Untitled Task"
)

var ErrInvalidReminder = errors.New("invalid reminder")

var reminderPattern = regexp.MustCompile(`(?i)^PT(\d+)M$`)

// naive layouts are interpreted in the configured zone.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// RRule renders a recurrence as an RFC 5545 rule line.
// A supplied recurrence without any parts repeats daily.
func RRule(r *core.Recurrence) string {
	if r == nil {
		return ""
	}

	var parts []string
	if r.Freq != "" {
		parts = append(parts, "FREQ="+strings.ToUpper(r.Freq))
	}
	if r.Interval > 0 {
		parts = append(parts, "INTERVAL="+strconv.Itoa(r.Interval))
	}
	if r.Until != "" {
		until, _, _ := strings.Cut(r.Until, "T")
		parts = append(parts, "UNTIL="+strings.ReplaceAll(until, "-", ""))
	}
	if days := byDay(r.ByWeekday); len(days) > 0 {
		parts = append(parts, "BYDAY="+strings.Join(days, ","))
	}

	if len(parts) == 0 {
		return "RRULE:FREQ=DAILY"
	}
	return "RRULE:" + strings.Join(parts, ";")
}

// byDay reduces weekday names ("MO", "monday", "Tue") to two-letter codes.
func byDay(days []string) []string {
	var out []string
	for _, d := range days {
		for _, part := range strings.Split(d, ",") {
			part = strings.TrimSpace(part)
			if len(part) < 2 {
				continue
			}
			out = append(out, strings.ToUpper(part[:2]))
		}
	}
	return out
}

// Reminder parses a PT<minutes>M duration into a popup override.
func Reminder(s string) (core.ReminderOverride, error) {
	m := reminderPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return core.ReminderOverride{}, fmt.Errorf("%w: %q", ErrInvalidReminder, s)
	}
	minutes, err := strconv.Atoi(m[1])
	if err != nil {
		return core.ReminderOverride{}, fmt.Errorf("%w: %q", ErrInvalidReminder, s)
	}
	return core.ReminderOverride{Method: ReminderPopup, Minutes: minutes}, nil
}

// Reminders returns nil when no reminders were requested.
func Reminders(list []string) (*core.Reminders, error) {
	if len(list) == 0 {
		return nil, nil
	}
	out := &core.Reminders{UseDefault: false, Overrides: make([]core.ReminderOverride, 0, len(list))}
	for _, s := range list {
		o, err := Reminder(s)
		if err != nil {
			return nil, err
		}
		out.Overrides = append(out.Overrides, o)
	}
	return out, nil
}

// AllDayEnd returns the exclusive end date of an all-day item starting on date.
func AllDayEnd(date string) (string, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return d.AddDate(0, 0, 1).Format(DateLayout), nil
}

// ParseDateTime accepts RFC 3339 or an offset-less timestamp read in loc.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q", s)
}

// DayWindow returns [date 00:00, next day 00:00) in loc.
func DayWindow(date string, loc *time.Location) (time.Time, time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return d, d.AddDate(0, 0, 1), nil
}

// QueryWindow derives listing bounds from an instruction. A date wins over
// explicit datetimes; unset bounds stay zero.
func QueryWindow(ins core.Instruction, loc *time.Location) (time.Time, time.Time, error) {
	if ins.Date != "" {
		return DayWindow(ins.Date, loc)
	}

	var from, to time.Time
	var err error
	if ins.DatetimeStart != "" {
		if from, err = ParseDateTime(ins.DatetimeStart, loc); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if ins.DatetimeEnd != "" {
		if to, err = ParseDateTime(ins.DatetimeEnd, loc); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return from, to, nil
}

// TaskQueryWindow is QueryWindow for task dues, which are dates pinned to
// UTC midnight. A date selects [date 00:00Z, next day 00:00Z); datetimes keep
// their wall clock in loc and are moved to UTC.
func TaskQueryWindow(ins core.Instruction, loc *time.Location) (time.Time, time.Time, error) {
	if ins.Date != "" {
		return DayWindow(ins.Date, time.UTC)
	}

	from, to, err := QueryWindow(ins, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return floating(from, loc), floating(to, loc), nil
}

// floating keeps the wall clock of t in loc but places it in UTC.
func floating(t time.Time, loc *time.Location) time.Time {
	if t.IsZero() {
		return t
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

func eventTime(s string, loc *time.Location) (*core.EventTime, error) {
	t, err := ParseDateTime(s, loc)
	if err != nil {
		return nil, err
	}
	return &core.EventTime{DateTime: t.Format(time.RFC3339), TimeZone: loc.String()}, nil
}

// EventFields builds a full event body for creation. A timed event without
// an end lasts DefaultEventLen; an all-day event ends the next day.
func EventFields(ins core.Instruction, loc *time.Location) (core.EventFields, error) {
	f, err := EventPatch(ins, loc)
	if err != nil {
		return core.EventFields{}, err
	}
	if f.Summary == "" {
		f.Summary = UntitledEvent
	}

	if f.End == nil && f.Start != nil && f.Start.DateTime != "" {
		start, _ := time.Parse(time.RFC3339, f.Start.DateTime)
		f.End = &core.EventTime{DateTime: start.Add(DefaultEventLen).Format(time.RFC3339), TimeZone: f.Start.TimeZone}
	}
	return f, nil
}

// EventPatch converts only the fields present on the instruction.
func EventPatch(ins core.Instruction, loc *time.Location) (core.EventFields, error) {
	f := core.EventFields{
		Summary:     ins.Title,
		Description: ins.Description,
		Location:    ins.Location,
	}

	var err error
	switch {
	case ins.DatetimeStart != "":
		if f.Start, err = eventTime(ins.DatetimeStart, loc); err != nil {
			return core.EventFields{}, fmt.Errorf("datetime_start: %w", err)
		}
	case ins.Date != "":
		if _, err := time.Parse(DateLayout, ins.Date); err != nil {
			return core.EventFields{}, fmt.Errorf("invalid date %q: %w", ins.Date, err)
		}
		f.Start = &core.EventTime{Date: ins.Date}
	}

	switch {
	case ins.DatetimeEnd != "":
		if f.End, err = eventTime(ins.DatetimeEnd, loc); err != nil {
			return core.EventFields{}, fmt.Errorf("datetime_end: %w", err)
		}
	case f.Start != nil && f.Start.Date != "":
		// a date-only start always carries its exclusive end, also on update
		end, err := AllDayEnd(f.Start.Date)
		if err != nil {
			return core.EventFields{}, err
		}
		f.End = &core.EventTime{Date: end}
	}

	if rule := RRule(ins.Recurrence); rule != "" {
		f.Recurrence = []string{rule}
	}
	if f.Reminders, err = Reminders(ins.Reminders); err != nil {
		return core.EventFields{}, err
	}
	return f, nil
}

// TaskFields builds a task body for creation.
func TaskFields(ins core.Instruction, loc *time.Location) (core.TaskFields, error) {
	f, err := TaskPatch(ins, loc)
	if err != nil {
		return core.TaskFields{}, err
	}
	if f.Title == "" {
		f.Title = UntitledTask
	}
	return f, nil
}

// TaskPatch converts only the fields present on the instruction. A due is a
// calendar date, sent as that date's UTC midnight; a datetime is reduced to
// its date in loc. A "status" of "completed" or "needsAction" in
// other_fields is carried through.
func TaskPatch(ins core.Instruction, loc *time.Location) (core.TaskFields, error) {
	f := core.TaskFields{Title: ins.Title, Notes: ins.Description}

	if status, ok := ins.OtherFields["status"].(string); ok {
		switch {
		case strings.EqualFold(status, core.TaskCompleted):
			f.Status = core.TaskCompleted
		case strings.EqualFold(status, core.TaskNeedsAction):
			f.Status = core.TaskNeedsAction
		}
	}

	switch {
	case ins.DatetimeStart != "":
		t, err := ParseDateTime(ins.DatetimeStart, loc)
		if err != nil {
			return core.TaskFields{}, fmt.Errorf("datetime_start: %w", err)
		}
		f.Due = dueDate(t.In(loc).Format(DateLayout))
	case ins.Date != "":
		if _, err := time.Parse(DateLayout, ins.Date); err != nil {
			return core.TaskFields{}, fmt.Errorf("invalid date %q: %w", ins.Date, err)
		}
		f.Due = dueDate(ins.Date)
	}
	return f, nil
}

func dueDate(date string) string {
	return date + "T00:00:00Z"
}
