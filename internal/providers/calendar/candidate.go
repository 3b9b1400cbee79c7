// Package calendar holds the scheduling backends instructions run against.
package calendar

import (
	"fmt"
	"time"

	"github.com/sandevgo/calbot/internal/core"
)

const dateLayout = "2006-01-02"

// zone resolves an IANA name, falling back to def when it is empty or unknown.
func zone(name string, def *time.Location) *time.Location {
	if name == "" {
		return def
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return def
	}
	return loc
}

// eventStart converts a provider start into a candidate start. Timed starts
// are rendered in their own zone.
func eventStart(c *core.Candidate, dateTime, date, tz string, def *time.Location) error {
	switch {
	case dateTime != "":
		t, err := time.Parse(time.RFC3339, dateTime)
		if err != nil {
			return fmt.Errorf("invalid start %q: %w", dateTime, err)
		}
		t = t.In(zone(tz, def))
		c.StartTime = &t
	case date != "":
		c.StartDate = date
	}
	return nil
}

// taskDue maps a due instant onto a calendar date. Due times carry no
// clock component, so the UTC date is the one the user picked.
func taskDue(c *core.Candidate, due string) error {
	if due == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, due)
	if err != nil {
		return fmt.Errorf("invalid due %q: %w", due, err)
	}
	c.StartDate = t.UTC().Format(dateLayout)
	return nil
}

func parseInstant(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nextDate is the exclusive end of an all-day item starting on date.
func nextDate(date string) (string, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return d.AddDate(0, 0, 1).Format(dateLayout), nil
}
