package resolver

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/calbot/internal/core"
	"github.com/sandevgo/calbot/internal/service/fields"
)

// DatetimeTolerance is how far a stored start may drift from the requested one.
const DatetimeTolerance = 3600 * time.Second

var timeLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM", "3PM", "3 PM"}

// Hints narrow title matches by when the item happens.
// Date takes precedence over DatetimeStart, which takes precedence over Time.
type Hints struct {
	Date          string
	DatetimeStart string
	Time          string
}

func HintsFrom(ins core.Instruction) Hints {
	return Hints{Date: ins.Date, DatetimeStart: ins.DatetimeStart, Time: ins.Time}
}

// Match returns the candidates whose title overlaps desc in either direction
// and that pass the temporal filter. Candidates without a comparable start
// are not excluded by the filter.
func Match(desc string, hints Hints, cands []core.Candidate, loc *time.Location) ([]core.Candidate, error) {
	desc = strings.ToLower(strings.TrimSpace(desc))
	if desc == "" {
		return nil, nil
	}

	filter, err := temporalFilter(hints, loc)
	if err != nil {
		return nil, err
	}

	var out []core.Candidate
	for _, c := range cands {
		if titleMatches(desc, c.Title) && filter(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

func titleMatches(desc, title string) bool {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return false
	}
	return strings.Contains(title, desc) || strings.Contains(desc, title)
}

func temporalFilter(h Hints, loc *time.Location) (func(core.Candidate) bool, error) {
	switch {
	case h.Date != "":
		date := strings.TrimSpace(h.Date)
		return func(c core.Candidate) bool {
			switch {
			case c.StartDate != "":
				return c.StartDate == date
			case c.StartTime != nil:
				return c.StartTime.Format(fields.DateLayout) == date
			}
			return true
		}, nil

	case h.DatetimeStart != "":
		want, err := fields.ParseDateTime(h.DatetimeStart, loc)
		if err != nil {
			return nil, fmt.Errorf("datetime_start: %w", err)
		}
		return func(c core.Candidate) bool {
			if c.StartTime == nil {
				return true
			}
			diff := c.StartTime.Sub(want)
			if diff < 0 {
				diff = -diff
			}
			return diff <= DatetimeTolerance
		}, nil

	case h.Time != "":
		want := clock(h.Time)
		return func(c core.Candidate) bool {
			if c.StartTime == nil {
				return true
			}
			return c.StartTime.Format("15:04") == want
		}, nil
	}

	return func(core.Candidate) bool { return true }, nil
}

// clock normalizes a time-of-day hint to HH:MM, or returns it unchanged.
func clock(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, strings.ToUpper(s)); err == nil {
			return t.Format("15:04")
		}
	}
	return s
}
