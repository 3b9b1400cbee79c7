// Package resolver deletes an item described by title, but only when the
// description identifies exactly one candidate.
package resolver

import (
	"context"
	"strings"
	"time"

	"github.com/sandevgo/calbot/internal/core"
	"github.com/sandevgo/calbot/internal/service/format"
	"github.com/sandevgo/calbot/pkg/log"
)

// EventHorizon bounds how far ahead events are browsed.
const EventHorizon = 30 * 24 * time.Hour

type Resolver struct {
	sched   core.Scheduler
	loc     *time.Location
	timeout time.Duration
	now     func() time.Time
}

func New(sched core.Scheduler, loc *time.Location, timeout time.Duration) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{
		sched:   sched,
		loc:     loc,
		timeout: timeout,
		now:     time.Now,
	}
}

func (r *Resolver) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// Resolve browses the candidates for ins.ItemType and deletes the single
// match, if there is one. Zero or several matches delete nothing.
func (r *Resolver) Resolve(ctx context.Context, ins core.Instruction) core.Result {
	logger := log.FromCtx(ctx).With().Str("item_type", string(ins.ItemType)).Logger()
	kind := ins.ItemType
	failed := "find and delete " + format.Noun(kind, 1)

	desc := strings.ToLower(strings.TrimSpace(ins.Title))
	if desc == "" {
		return core.Failure("title required")
	}

	browsed, err := r.browse(ctx, kind)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list candidates")
		return core.Failure(format.Failed(failed, err))
	}

	if len(browsed) == 0 {
		msg, formatted := format.NothingToDelete(kind)
		return core.Result{
			Success:           true,
			Message:           msg,
			FormattedResponse: formatted,
			Data:              core.Resolution{Outcome: core.OutcomeNoMatch, Candidates: []core.Candidate{}},
		}
	}

	matches, err := Match(desc, HintsFrom(ins), browsed, r.loc)
	if err != nil {
		return core.Failure(format.Failed(failed, err))
	}
	logger.Debug().Int("candidates", len(browsed)).Int("count", len(matches)).Msg("candidates matched")

	switch len(matches) {
	case 0:
		msg, formatted := format.NoMatch(kind, desc, browsed)
		return core.Result{
			Success:           true,
			Message:           msg,
			FormattedResponse: formatted,
			Clarification:     true,
			Data:              core.Resolution{Outcome: core.OutcomeNoMatch, Candidates: browsed},
		}

	case 1:
		target := matches[0]
		if err := r.delete(ctx, kind, target.ID); err != nil {
			logger.Error().Err(err).Str("id", target.ID).Msg("failed to delete match")
			return core.Failure(format.Failed("delete "+format.Noun(kind, 1), err))
		}
		logger.Info().Str("id", target.ID).Msg("deleted single match")

		msg, formatted := format.Deleted(kind, target)
		return core.Result{
			Success:           true,
			Message:           msg,
			FormattedResponse: formatted,
			Data:              core.Resolution{Outcome: core.OutcomeDeleted, Deleted: &target},
		}

	default:
		msg, formatted := format.Ambiguous(kind, desc, matches)
		return core.Result{
			Success:           true,
			Message:           msg,
			FormattedResponse: formatted,
			Clarification:     true,
			Data:              core.Resolution{Outcome: core.OutcomeAmbiguous, Candidates: matches},
		}
	}
}

func (r *Resolver) browse(ctx context.Context, kind core.ItemType) ([]core.Candidate, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if kind == core.ItemTask {
		return r.sched.ListTasks(ctx, time.Time{}, time.Time{})
	}
	now := r.now()
	return r.sched.ListEvents(ctx, now, now.Add(EventHorizon))
}

func (r *Resolver) delete(ctx context.Context, kind core.ItemType, id string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if kind == core.ItemTask {
		return r.sched.DeleteTask(ctx, id)
	}
	return r.sched.DeleteEvent(ctx, id)
}
