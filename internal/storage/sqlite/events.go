package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/calbot/internal/core"
)

const dateLayout = "2006-01-02"

// Event is a stored calendar event. Timed events carry StartAt, all-day
// events carry StartDate and an exclusive EndDate.
type Event struct {
	ID          string
	Summary     string
	Description string
	Location    string
	StartAt     *time.Time
	EndAt       *time.Time
	StartDate   string
	EndDate     string
	TimeZone    string
	Recurrence  []string
	Reminders   *core.Reminders
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type EventsRepo struct {
	db *sql.DB
}

func NewEventsRepo(db *sql.DB) *EventsRepo {
	return &EventsRepo{db: db}
}

const eventColumns = `id, summary, description, location, start_at, end_at, start_date, end_date,
	time_zone, recurrence, reminders, created_at, updated_at`

func (r *EventsRepo) Insert(ctx context.Context, e Event) error {
	args, err := eventArgs(e)
	if err != nil {
		return err
	}

	query := `INSERT INTO events (id, summary, description, location, start_at, start_utc, end_at,
		start_date, end_date, time_zone, recurrence, reminders) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, append([]any{e.ID}, args...)...); err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// Update overwrites every stored field of the event.
func (r *EventsRepo) Update(ctx context.Context, e Event) error {
	args, err := eventArgs(e)
	if err != nil {
		return err
	}

	query := `UPDATE events SET summary = ?, description = ?, location = ?, start_at = ?, start_utc = ?,
		end_at = ?, start_date = ?, end_date = ?, time_zone = ?, recurrence = ?, reminders = ?,
		updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, append(args, e.ID)...)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if err := expectRow(res); err != nil {
		return fmt.Errorf("event %s: %w", e.ID, err)
	}
	return nil
}

func (r *EventsRepo) Get(ctx context.Context, id string) (Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Event{}, fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	return e, err
}

func (r *EventsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if err := expectRow(res); err != nil {
		return fmt.Errorf("event %s: %w", id, err)
	}
	return nil
}

// List returns events that start in [from, to) ordered by start. All-day
// events are kept when their date range overlaps the window. Zero bounds
// are open.
func (r *EventsRepo) List(ctx context.Context, from, to time.Time) ([]Event, error) {
	var (
		timed  = "1 = 1"
		allDay = "1 = 1"
		args   []any
	)
	if !from.IsZero() && !to.IsZero() {
		timed = "start_utc >= ? AND start_utc < ?"
		allDay = "start_date < ? AND end_date > ?"
		args = append(args, from.Unix(), to.Unix(), dateCeil(to), from.Format(dateLayout))
	} else if !from.IsZero() {
		timed = "start_utc >= ?"
		allDay = "end_date > ?"
		args = append(args, from.Unix(), from.Format(dateLayout))
	} else if !to.IsZero() {
		timed = "start_utc < ?"
		allDay = "start_date < ?"
		args = append(args, to.Unix(), dateCeil(to))
	}

	query := `SELECT ` + eventColumns + ` FROM events
		WHERE (start_utc IS NOT NULL AND ` + timed + `)
		   OR (start_date IS NOT NULL AND ` + allDay + `)
		ORDER BY COALESCE(start_utc, CAST(strftime('%s', start_date) AS INTEGER)), created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// dateCeil is the first calendar date not touched by the exclusive bound t.
func dateCeil(t time.Time) string {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	if !day.Equal(t) {
		day = day.AddDate(0, 0, 1)
	}
	return day.Format(dateLayout)
}

func eventArgs(e Event) ([]any, error) {
	recurrence, err := json.Marshal(e.Recurrence)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recurrence: %w", err)
	}
	if e.Recurrence == nil {
		recurrence = []byte("[]")
	}

	reminders := ""
	if e.Reminders != nil {
		b, err := json.Marshal(e.Reminders)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal reminders: %w", err)
		}
		reminders = string(b)
	}

	return []any{
		e.Summary, e.Description, e.Location,
		formatTime(e.StartAt), nullUnix(e.StartAt), formatTime(e.EndAt),
		nullString(e.StartDate), nullString(e.EndDate),
		e.TimeZone, string(recurrence), reminders,
	}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (Event, error) {
	var (
		e                     Event
		startAt, endAt        sql.NullString
		startDate, endDate    sql.NullString
		recurrence, reminders string
	)
	err := s.Scan(&e.ID, &e.Summary, &e.Description, &e.Location, &startAt, &endAt, &startDate, &endDate,
		&e.TimeZone, &recurrence, &reminders, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return Event{}, err
	}

	if e.StartAt, err = parseTime(startAt); err != nil {
		return Event{}, fmt.Errorf("event %s start: %w", e.ID, err)
	}
	if e.EndAt, err = parseTime(endAt); err != nil {
		return Event{}, fmt.Errorf("event %s end: %w", e.ID, err)
	}
	e.StartDate = startDate.String
	e.EndDate = endDate.String

	if err := json.Unmarshal([]byte(recurrence), &e.Recurrence); err != nil {
		return Event{}, fmt.Errorf("event %s recurrence: %w", e.ID, err)
	}
	if len(e.Recurrence) == 0 {
		e.Recurrence = nil
	}
	if reminders != "" {
		e.Reminders = &core.Reminders{}
		if err := json.Unmarshal([]byte(reminders), e.Reminders); err != nil {
			return Event{}, fmt.Errorf("event %s reminders: %w", e.ID, err)
		}
	}
	return e, nil
}

func formatTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339), Valid: true}
}

func parseTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
