package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/calbot/internal/core"
)

// DefaultTaskList is the list seeded by the migrations.
const DefaultTaskList = "@default"

type TaskList struct {
	ID    string
	Title string
}

type Task struct {
	ID        string
	ListID    string
	Title     string
	Notes     string
	Due       *time.Time
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t Task) Completed() bool {
	return t.Status == core.TaskCompleted
}

type TasksRepo struct {
	db *sql.DB
}

func NewTasksRepo(db *sql.DB) *TasksRepo {
	return &TasksRepo{db: db}
}

// Lists returns task lists, the seeded default first.
func (r *TasksRepo) Lists(ctx context.Context) ([]TaskList, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title FROM task_lists ORDER BY id = ? DESC, created_at, id`, DefaultTaskList)
	if err != nil {
		return nil, fmt.Errorf("failed to query task lists: %w", err)
	}
	defer rows.Close()

	var lists []TaskList
	for rows.Next() {
		var l TaskList
		if err := rows.Scan(&l.ID, &l.Title); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

const taskColumns = `id, list_id, title, notes, due, status, created_at, updated_at`

func (r *TasksRepo) Insert(ctx context.Context, t Task) error {
	if t.ListID == "" {
		t.ListID = DefaultTaskList
	}
	if t.Status == "" {
		t.Status = core.TaskNeedsAction
	}

	query := `INSERT INTO tasks (id, list_id, title, notes, due, due_utc, status, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CASE WHEN ? = 'completed' THEN CURRENT_TIMESTAMP END)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.ListID, t.Title, t.Notes, formatTime(t.Due), nullUnix(t.Due), t.Status, t.Status)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// Update overwrites title, notes, due and status. completed_at follows the status.
func (r *TasksRepo) Update(ctx context.Context, t Task) error {
	if t.Status == "" {
		t.Status = core.TaskNeedsAction
	}

	query := `UPDATE tasks SET title = ?, notes = ?, due = ?, due_utc = ?, status = ?,
		completed_at = CASE WHEN ? = 'completed' THEN COALESCE(completed_at, CURRENT_TIMESTAMP) END,
		updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title, t.Notes, formatTime(t.Due), nullUnix(t.Due), t.Status, t.Status, t.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if err := expectRow(res); err != nil {
		return fmt.Errorf("task %s: %w", t.ID, err)
	}
	return nil
}

func (r *TasksRepo) Get(ctx context.Context, id string) (Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return t, err
}

func (r *TasksRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if err := expectRow(res); err != nil {
		return fmt.Errorf("task %s: %w", id, err)
	}
	return nil
}

// List returns open tasks of a list ordered by due date, undated last.
// When a bound is given, tasks without a due date are left out.
func (r *TasksRepo) List(ctx context.Context, listID string, dueMin, dueMax time.Time) ([]Task, error) {
	if listID == "" {
		listID = DefaultTaskList
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE list_id = ? AND status != 'completed'`
	args := []any{listID}
	if !dueMin.IsZero() {
		query += ` AND due_utc >= ?`
		args = append(args, dueMin.Unix())
	}
	if !dueMax.IsZero() {
		query += ` AND due_utc < ?`
		args = append(args, dueMax.Unix())
	}
	query += ` ORDER BY due_utc IS NULL, due_utc, created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanTask(s scanner) (Task, error) {
	var (
		t   Task
		due sql.NullString
	)
	if err := s.Scan(&t.ID, &t.ListID, &t.Title, &t.Notes, &due, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return Task{}, err
	}

	var err error
	if t.Due, err = parseTime(due); err != nil {
		return Task{}, fmt.Errorf("task %s due: %w", t.ID, err)
	}
	return t, nil
}
