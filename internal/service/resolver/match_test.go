package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/calbot/internal/core"
)

func ids(cands []core.Candidate) []string {
	out := []string{}
	for _, c := range cands {
		out = append(out, c.ID)
	}
	return out
}

func TestMatch_Title(t *testing.T) {
	cands := []core.Candidate{
		{ID: "1", Title: "Dentist appointment"},
		{ID: "2", Title: "Dentist"},
		{ID: "3", Title: "Team lunch"},
		{ID: "4", Title: ""},
	}

	tests := []struct {
		name     string
		desc     string
		expected []string
	}{
		{name: "fragment of title", desc: "dentist", expected: []string{"1", "2"}},
		{name: "title inside description", desc: "my dentist appointment tomorrow", expected: []string{"1", "2"}},
		{name: "case insensitive", desc: "TEAM LUNCH", expected: []string{"3"}},
		{name: "no overlap", desc: "gym", expected: []string{}},
		{name: "empty description", desc: "", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match(tt.desc, Hints{}, cands, time.UTC)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestMatch_TemporalFilter(t *testing.T) {
	cdt := time.FixedZone("CDT", -5*3600)
	morning := time.Date(2025, 6, 27, 9, 0, 0, 0, cdt)
	late := time.Date(2025, 6, 27, 23, 30, 0, 0, cdt)

	cands := []core.Candidate{
		{ID: "timed", Title: "Call", StartTime: &morning},
		{ID: "late", Title: "Call", StartTime: &late},
		{ID: "allday", Title: "Call", StartDate: "2025-06-27"},
		{ID: "other-day", Title: "Call", StartDate: "2025-06-28"},
		{ID: "undated", Title: "Call"},
	}

	tests := []struct {
		name     string
		hints    Hints
		expected []string
	}{
		{name: "no hints", hints: Hints{}, expected: []string{"timed", "late", "allday", "other-day", "undated"}},
		{name: "date uses candidate offset", hints: Hints{Date: "2025-06-27"}, expected: []string{"timed", "late", "allday", "undated"}},
		{name: "datetime within an hour", hints: Hints{DatetimeStart: "2025-06-27T14:30:00Z"}, expected: []string{"timed", "allday", "other-day", "undated"}},
		{name: "datetime exactly an hour", hints: Hints{DatetimeStart: "2025-06-27T10:00:00-05:00"}, expected: []string{"timed", "allday", "other-day", "undated"}},
		{name: "datetime too far", hints: Hints{DatetimeStart: "2025-06-27T12:00:00-05:00"}, expected: []string{"allday", "other-day", "undated"}},
		{name: "naive datetime in configured zone", hints: Hints{DatetimeStart: "2025-06-27T23:00:00"}, expected: []string{"late", "allday", "other-day", "undated"}},
		{name: "time only", hints: Hints{Time: "09:00"}, expected: []string{"timed", "allday", "other-day", "undated"}},
		{name: "twelve hour time", hints: Hints{Time: "11:30 pm"}, expected: []string{"late", "allday", "other-day", "undated"}},
		{name: "date wins over time", hints: Hints{Date: "2025-06-28", Time: "09:00"}, expected: []string{"other-day", "undated"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match("call", tt.hints, cands, cdt)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestMatch_InvalidDatetimeHint(t *testing.T) {
	_, err := Match("call", Hints{DatetimeStart: "soonish"}, []core.Candidate{{Title: "Call"}}, time.UTC)
	assert.Error(t, err)
}
