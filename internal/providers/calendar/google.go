package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
	gtasks "google.golang.org/api/tasks/v1"

	"github.com/sandevgo/calbot/internal/core"
	"github.com/sandevgo/calbot/pkg/log"
)

// sendUpdates notifies attendees on every write.
const sendUpdates = "all"

type GoogleConfig interface {
	GetGoogleClientID() string
	GetGoogleClientSecret() string
	GetGoogleRefreshToken() string
	GetGoogleCalendarID() string
}

// Google runs instructions against Google Calendar v3 and Tasks v1.
type Google struct {
	calendar   *gcal.Service
	tasks      *gtasks.Service
	calendarID string
	loc        *time.Location

	mu     sync.Mutex
	listID string
}

// NewGoogle authenticates with the stored refresh token. Access tokens are
// refreshed by the token source as they expire.
func NewGoogle(ctx context.Context, cfg GoogleConfig, loc *time.Location) (*Google, error) {
	oauth := &oauth2.Config{
		ClientID:     cfg.GetGoogleClientID(),
		ClientSecret: cfg.GetGoogleClientSecret(),
		Endpoint:     google.Endpoint,
		Scopes:       []string{gcal.CalendarScope, gtasks.TasksScope},
	}
	ts := oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.GetGoogleRefreshToken()})

	return newGoogle(ctx, cfg.GetGoogleCalendarID(), loc,
		option.WithTokenSource(ts),
		option.WithUserAgent(core.CalUserAgent),
	)
}

func newGoogle(ctx context.Context, calendarID string, loc *time.Location, opts ...option.ClientOption) (*Google, error) {
	cal, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}
	tsk, err := gtasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks client: %w", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Google{calendar: cal, tasks: tsk, calendarID: calendarID, loc: loc}, nil
}

func (g *Google) CreateEvent(ctx context.Context, fields core.EventFields) (core.Candidate, error) {
	ev, err := g.calendar.Events.Insert(g.calendarID, toGoogleEvent(fields)).
		SendUpdates(sendUpdates).Context(ctx).Do()
	if err != nil {
		return core.Candidate{}, err
	}

	log.FromCtx(ctx).Debug().Str("id", ev.Id).Str("link", ev.HtmlLink).Msg("google event created")
	return fromGoogleEvent(ev, g.loc)
}

func (g *Google) UpdateEvent(ctx context.Context, id string, fields core.EventFields) (core.Candidate, error) {
	ev, err := g.calendar.Events.Patch(g.calendarID, id, toGoogleEvent(fields)).
		SendUpdates(sendUpdates).Context(ctx).Do()
	if err != nil {
		return core.Candidate{}, err
	}
	return fromGoogleEvent(ev, g.loc)
}

func (g *Google) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]core.Candidate, error) {
	call := g.calendar.Events.List(g.calendarID).SingleEvents(true).OrderBy("startTime")
	if !timeMin.IsZero() {
		call = call.TimeMin(timeMin.Format(time.RFC3339))
	}
	if !timeMax.IsZero() {
		call = call.TimeMax(timeMax.Format(time.RFC3339))
	}

	var out []core.Candidate
	err := call.Pages(ctx, func(page *gcal.Events) error {
		for _, ev := range page.Items {
			c, err := fromGoogleEvent(ev, g.loc)
			if err != nil {
				return err
			}
			out = append(out, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Google) DeleteEvent(ctx context.Context, id string) error {
	return g.calendar.Events.Delete(g.calendarID, id).SendUpdates(sendUpdates).Context(ctx).Do()
}

func (g *Google) CreateTask(ctx context.Context, fields core.TaskFields) (core.Candidate, error) {
	listID, err := g.taskList(ctx)
	if err != nil {
		return core.Candidate{}, err
	}

	t, err := g.tasks.Tasks.Insert(listID, toGoogleTask(fields)).Context(ctx).Do()
	if err != nil {
		return core.Candidate{}, err
	}
	return fromGoogleTask(t)
}

func (g *Google) UpdateTask(ctx context.Context, id string, fields core.TaskFields) (core.Candidate, error) {
	listID, err := g.taskList(ctx)
	if err != nil {
		return core.Candidate{}, err
	}

	t, err := g.tasks.Tasks.Patch(listID, id, toGoogleTask(fields)).Context(ctx).Do()
	if err != nil {
		return core.Candidate{}, err
	}
	return fromGoogleTask(t)
}

func (g *Google) ListTasks(ctx context.Context, dueMin, dueMax time.Time) ([]core.Candidate, error) {
	listID, err := g.taskList(ctx)
	if err != nil {
		return nil, err
	}

	call := g.tasks.Tasks.List(listID).ShowCompleted(false)
	if !dueMin.IsZero() {
		call = call.DueMin(dueMin.UTC().Format(time.RFC3339))
	}
	if !dueMax.IsZero() {
		call = call.DueMax(dueMax.UTC().Format(time.RFC3339))
	}

	var out []core.Candidate
	err = call.Pages(ctx, func(page *gtasks.Tasks) error {
		for _, t := range page.Items {
			c, err := fromGoogleTask(t)
			if err != nil {
				return err
			}
			out = append(out, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Google) DeleteTask(ctx context.Context, id string) error {
	listID, err := g.taskList(ctx)
	if err != nil {
		return err
	}
	return g.tasks.Tasks.Delete(listID, id).Context(ctx).Do()
}

// taskList resolves the first task list once and falls back to @default.
func (g *Google) taskList(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.listID != "" {
		return g.listID, nil
	}

	lists, err := g.tasks.Tasklists.List().MaxResults(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to list task lists: %w", err)
	}

	g.listID = "@default"
	if len(lists.Items) > 0 && lists.Items[0].Id != "" {
		g.listID = lists.Items[0].Id
	}
	return g.listID, nil
}

func toGoogleEvent(f core.EventFields) *gcal.Event {
	ev := &gcal.Event{
		Summary:     f.Summary,
		Description: f.Description,
		Location:    f.Location,
		Recurrence:  f.Recurrence,
		Start:       toGoogleTime(f.Start),
		End:         toGoogleTime(f.End),
	}

	if f.Reminders != nil {
		ev.Reminders = &gcal.EventReminders{
			UseDefault: f.Reminders.UseDefault,
			// useDefault=false must reach the API or the overrides are ignored.
			ForceSendFields: []string{"UseDefault"},
		}
		for _, o := range f.Reminders.Overrides {
			ev.Reminders.Overrides = append(ev.Reminders.Overrides, &gcal.EventReminder{
				Method:  o.Method,
				Minutes: int64(o.Minutes),
			})
		}
	}
	return ev
}

func toGoogleTime(t *core.EventTime) *gcal.EventDateTime {
	if t == nil {
		return nil
	}
	return &gcal.EventDateTime{DateTime: t.DateTime, Date: t.Date, TimeZone: t.TimeZone}
}

func fromGoogleEvent(ev *gcal.Event, loc *time.Location) (core.Candidate, error) {
	c := core.Candidate{ID: ev.Id, Title: ev.Summary, Kind: core.ItemEvent}
	if ev.Start == nil {
		return c, nil
	}
	if err := eventStart(&c, ev.Start.DateTime, ev.Start.Date, ev.Start.TimeZone, loc); err != nil {
		return core.Candidate{}, fmt.Errorf("event %s: %w", ev.Id, err)
	}
	return c, nil
}

func toGoogleTask(f core.TaskFields) *gtasks.Task {
	return &gtasks.Task{
		Title:  f.Title,
		Notes:  f.Notes,
		Due:    f.Due,
		Status: f.Status,
	}
}

func fromGoogleTask(t *gtasks.Task) (core.Candidate, error) {
	c := core.Candidate{ID: t.Id, Title: t.Title, Kind: core.ItemTask}
	if err := taskDue(&c, t.Due); err != nil {
		return core.Candidate{}, fmt.Errorf("task %s: %w", t.Id, err)
	}
	return c, nil
}
