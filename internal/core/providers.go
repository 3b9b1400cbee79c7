package core

import (
	"context"
	"time"
)

// ChatOptions tune a single completion request.
type ChatOptions struct {
	MaxTokens   int
	Temperature float64
}

type AIProvider interface {
	Chat(ctx context.Context, history []Message, opts ChatOptions) (Message, error)
	Models(ctx context.Context) ([]Model, error)
}

// Scheduler is the scheduling backend instructions are executed against.
// Implementations report provider failures as plain errors.
type Scheduler interface {
	CreateEvent(ctx context.Context, fields EventFields) (Candidate, error)
	UpdateEvent(ctx context.Context, id string, fields EventFields) (Candidate, error)
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]Candidate, error)
	DeleteEvent(ctx context.Context, id string) error

	CreateTask(ctx context.Context, fields TaskFields) (Candidate, error)
	UpdateTask(ctx context.Context, id string, fields TaskFields) (Candidate, error)
	// ListTasks returns open tasks. Zero bounds are not applied.
	ListTasks(ctx context.Context, dueMin, dueMax time.Time) ([]Candidate, error)
	DeleteTask(ctx context.Context, id string) error
}
