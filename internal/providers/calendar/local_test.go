package calendar

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/calbot/internal/core"
	"github.com/sandevgo/calbot/internal/storage/sqlite"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	db, err := sqlite.NewDB(context.Background(), filepath.Join(t.TempDir(), "calbot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	return NewLocal(db, chicago)
}

func TestLocal_CreateTimedEvent(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(t)

	c, err := l.CreateEvent(ctx, core.EventFields{
		Summary: "Team sync",
		Start:   &core.EventTime{DateTime: "2025-06-30T10:00:00-05:00", TimeZone: "America/Chicago"},
		End:     &core.EventTime{DateTime: "2025-06-30T11:00:00-05:00", TimeZone: "America/Chicago"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, core.ItemEvent, c.Kind)
	require.NotNil(t, c.StartTime)
	assert.Equal(t, "2025-06-30 10:00", c.StartTime.Format("2006-01-02 15:04"))
	assert.Equal(t, "America/Chicago", c.StartTime.Location().String())
}

func TestLocal_AllDayEventGetsExclusiveEnd(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(t)

	c, err := l.CreateEvent(ctx, core.EventFields{
		Summary: "Offsite",
		Start:   &core.EventTime{Date: "2025-06-27"},
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-27", c.StartDate)

	stored, err := l.events.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-28", stored.EndDate)
}

func TestLocal_CreateEventRequiresStart(t *testing.T) {
	_, err := newTestLocal(t).CreateEvent(context.Background(), core.EventFields{Summary: "Floating"})
	assert.Error(t, err)
}

func TestLocal_UpdateEventPatchesOnlyGivenFields(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(t)

	c, err := l.CreateEvent(ctx, core.EventFields{
		Summary:  "Dentist",
		Location: "Main St",
		Start:    &core.EventTime{Date: "2025-06-27"},
	})
	require.NoError(t, err)

	updated, err := l.UpdateEvent(ctx, c.ID, core.EventFields{
		Start: &core.EventTime{DateTime: "2025-06-27T09:00:00-05:00", TimeZone: "America/Chicago"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Dentist", updated.Title)
	require.NotNil(t, updated.StartTime)
	assert.Empty(t, updated.StartDate)

	stored, err := l.events.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Main St", stored.Location)
}

func TestLocal_UnknownIDsFail(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(t)

	_, err := l.UpdateEvent(ctx, "missing", core.EventFields{Summary: "x"})
	assert.ErrorIs(t, err, sqlite.ErrNotFound)
	assert.ErrorIs(t, l.DeleteEvent(ctx, "missing"), sqlite.ErrNotFound)
	assert.ErrorIs(t, l.DeleteTask(ctx, "missing"), sqlite.ErrNotFound)
}

func TestLocal_ListEventsWindow(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(t)

	for _, f := range []core.EventFields{
		{Summary: "Dentist appointment", Start: &core.EventTime{DateTime: "2025-06-27T15:00:00-05:00"}},
		{Summary: "Dentist follow-up", Start: &core.EventTime{DateTime: "2025-07-20T15:00:00-05:00"}},
		{Summary: "Past", Start: &core.EventTime{DateTime: "2025-06-01T15:00:00-05:00"}},
	} {
		_, err := l.CreateEvent(ctx, f)
		require.NoError(t, err)
	}

	from := time.Date(2025, 6, 27, 0, 0, 0, 0, l.loc)
	got, err := l.ListEvents(ctx, from, from.AddDate(0, 0, 30))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Dentist appointment", got[0].Title)
	assert.Equal(t, "Dentist follow-up", got[1].Title)
}

func TestLocal_TaskLifecycle(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(t)

	c, err := l.CreateTask(ctx, core.TaskFields{Title: "Buy milk", Due: "2025-06-28T00:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, core.ItemTask, c.Kind)
	assert.Equal(t, "2025-06-28", c.StartDate)

	_, err = l.CreateTask(ctx, core.TaskFields{Title: "Someday"})
	require.NoError(t, err)

	open, err := l.ListTasks(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, open, 2)

	_, err = l.UpdateTask(ctx, c.ID, core.TaskFields{Status: core.TaskCompleted})
	require.NoError(t, err)

	open, err = l.ListTasks(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "Someday", open[0].Title)
	assert.Empty(t, open[0].StartDate)
}

func TestLocal_InvalidDue(t *testing.T) {
	_, err := newTestLocal(t).CreateTask(context.Background(), core.TaskFields{Title: "x", Due: "tomorrow"})
	assert.Error(t, err)
}

func TestLocal_UpdateSwitchesBetweenTimedAndAllDay(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(t)

	c, err := l.CreateEvent(ctx, core.EventFields{
		Summary: "Review",
		Start:   &core.EventTime{DateTime: "2025-06-27T15:00:00-05:00"},
		End:     &core.EventTime{DateTime: "2025-06-27T16:00:00-05:00"},
	})
	require.NoError(t, err)

	_, err = l.UpdateEvent(ctx, c.ID, core.EventFields{
		Start: &core.EventTime{Date: "2025-06-27"},
		End:   &core.EventTime{Date: "2025-06-28"},
	})
	require.NoError(t, err)
	stored, err := l.events.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.StartAt)
	assert.Nil(t, stored.EndAt)
	assert.Equal(t, "2025-06-28", stored.EndDate)

	_, err = l.UpdateEvent(ctx, c.ID, core.EventFields{
		Start: &core.EventTime{DateTime: "2025-06-30T09:00:00-05:00"},
	})
	require.NoError(t, err)
	stored, err = l.events.Get(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.EndAt)
	assert.Empty(t, stored.EndDate)
	assert.Equal(t, time.Hour, stored.EndAt.Sub(*stored.StartAt))
}
