package calendar

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sandevgo/calbot/internal/core"
	"github.com/sandevgo/calbot/internal/storage/sqlite"
	"github.com/sandevgo/calbot/pkg/log"
)

// Local keeps events and tasks in the application database.
type Local struct {
	events *sqlite.EventsRepo
	tasks  *sqlite.TasksRepo
	loc    *time.Location
	newID  func() string
}

func NewLocal(db *sql.DB, loc *time.Location) *Local {
	if loc == nil {
		loc = time.UTC
	}
	return &Local{
		events: sqlite.NewEventsRepo(db),
		tasks:  sqlite.NewTasksRepo(db),
		loc:    loc,
		newID:  uuid.NewString,
	}
}

func (l *Local) CreateEvent(ctx context.Context, fields core.EventFields) (core.Candidate, error) {
	e := sqlite.Event{ID: l.newID()}
	if err := applyEvent(&e, fields); err != nil {
		return core.Candidate{}, err
	}
	if e.StartAt == nil && e.StartDate == "" {
		return core.Candidate{}, fmt.Errorf("event start is required")
	}
	if e.StartDate != "" && e.EndDate == "" {
		end, err := nextDate(e.StartDate)
		if err != nil {
			return core.Candidate{}, err
		}
		e.EndDate = end
	}

	if err := l.events.Insert(ctx, e); err != nil {
		return core.Candidate{}, err
	}

	log.FromCtx(ctx).Debug().Str("id", e.ID).Str("summary", e.Summary).Msg("event stored")
	return l.eventCandidate(e), nil
}

func (l *Local) UpdateEvent(ctx context.Context, id string, fields core.EventFields) (core.Candidate, error) {
	e, err := l.events.Get(ctx, id)
	if err != nil {
		return core.Candidate{}, err
	}
	if err := applyEvent(&e, fields); err != nil {
		return core.Candidate{}, err
	}
	if err := l.events.Update(ctx, e); err != nil {
		return core.Candidate{}, err
	}
	return l.eventCandidate(e), nil
}

func (l *Local) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]core.Candidate, error) {
	events, err := l.events.List(ctx, timeMin, timeMax)
	if err != nil {
		return nil, err
	}

	out := make([]core.Candidate, 0, len(events))
	for _, e := range events {
		out = append(out, l.eventCandidate(e))
	}
	return out, nil
}

func (l *Local) DeleteEvent(ctx context.Context, id string) error {
	return l.events.Delete(ctx, id)
}

func (l *Local) CreateTask(ctx context.Context, fields core.TaskFields) (core.Candidate, error) {
	listID, err := l.taskList(ctx)
	if err != nil {
		return core.Candidate{}, err
	}

	t := sqlite.Task{ID: l.newID(), ListID: listID}
	if err := applyTask(&t, fields); err != nil {
		return core.Candidate{}, err
	}
	if err := l.tasks.Insert(ctx, t); err != nil {
		return core.Candidate{}, err
	}

	log.FromCtx(ctx).Debug().Str("id", t.ID).Str("title", t.Title).Msg("task stored")
	return taskCandidate(t), nil
}

func (l *Local) UpdateTask(ctx context.Context, id string, fields core.TaskFields) (core.Candidate, error) {
	t, err := l.tasks.Get(ctx, id)
	if err != nil {
		return core.Candidate{}, err
	}
	if err := applyTask(&t, fields); err != nil {
		return core.Candidate{}, err
	}
	if err := l.tasks.Update(ctx, t); err != nil {
		return core.Candidate{}, err
	}
	return taskCandidate(t), nil
}

func (l *Local) ListTasks(ctx context.Context, dueMin, dueMax time.Time) ([]core.Candidate, error) {
	listID, err := l.taskList(ctx)
	if err != nil {
		return nil, err
	}

	tasks, err := l.tasks.List(ctx, listID, dueMin, dueMax)
	if err != nil {
		return nil, err
	}

	out := make([]core.Candidate, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskCandidate(t))
	}
	return out, nil
}

func (l *Local) DeleteTask(ctx context.Context, id string) error {
	return l.tasks.Delete(ctx, id)
}

// taskList picks the first task list, the way new tasks land in Google's
// default list.
func (l *Local) taskList(ctx context.Context) (string, error) {
	lists, err := l.tasks.Lists(ctx)
	if err != nil {
		return "", err
	}
	if len(lists) == 0 {
		return sqlite.DefaultTaskList, nil
	}
	return lists[0].ID, nil
}

func (l *Local) eventCandidate(e sqlite.Event) core.Candidate {
	c := core.Candidate{ID: e.ID, Title: e.Summary, Kind: core.ItemEvent}
	switch {
	case e.StartAt != nil:
		t := e.StartAt.In(zone(e.TimeZone, l.loc))
		c.StartTime = &t
	case e.StartDate != "":
		c.StartDate = e.StartDate
	}
	return c
}

func taskCandidate(t sqlite.Task) core.Candidate {
	c := core.Candidate{ID: t.ID, Title: t.Title, Kind: core.ItemTask}
	if t.Due != nil {
		c.StartDate = t.Due.UTC().Format(dateLayout)
	}
	return c
}

// applyEvent merges the non-empty fields into e. A new start or end
// replaces the previous one whether timed or all-day.
func applyEvent(e *sqlite.Event, f core.EventFields) error {
	if f.Summary != "" {
		e.Summary = f.Summary
	}
	if f.Description != "" {
		e.Description = f.Description
	}
	if f.Location != "" {
		e.Location = f.Location
	}
	if f.Recurrence != nil {
		e.Recurrence = f.Recurrence
	}
	if f.Reminders != nil {
		e.Reminders = f.Reminders
	}

	if f.Start != nil {
		at, err := parseInstant(f.Start.DateTime)
		if err != nil {
			return fmt.Errorf("invalid start %q: %w", f.Start.DateTime, err)
		}
		e.StartAt, e.StartDate = at, f.Start.Date
		if f.Start.TimeZone != "" {
			e.TimeZone = f.Start.TimeZone
		}
		// a timed start on an all-day event without a new end gets one hour
		if f.End == nil && at != nil && e.EndAt == nil {
			end := at.Add(time.Hour)
			e.EndAt, e.EndDate = &end, ""
		}
	}
	if f.End != nil {
		at, err := parseInstant(f.End.DateTime)
		if err != nil {
			return fmt.Errorf("invalid end %q: %w", f.End.DateTime, err)
		}
		e.EndAt, e.EndDate = at, f.End.Date
	}
	return nil
}

func applyTask(t *sqlite.Task, f core.TaskFields) error {
	if f.Title != "" {
		t.Title = f.Title
	}
	if f.Notes != "" {
		t.Notes = f.Notes
	}
	if f.Status != "" {
		t.Status = f.Status
	}
	if f.Due != "" {
		due, err := parseInstant(f.Due)
		if err != nil {
			return fmt.Errorf("invalid due %q: %w", f.Due, err)
		}
		t.Due = due
	}
	return nil
}
