// Package dispatch routes decoded instructions to scheduling operations and
// wraps every outcome in a core.Result.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/calbot/internal/core"
	"github.com/sandevgo/calbot/internal/service/resolver"
	"github.com/sandevgo/calbot/pkg/log"
)

type handler func(ctx context.Context, ins core.Instruction) core.Result

type route struct {
	action core.Action
	item   core.ItemType
}

type Dispatcher struct {
	sched    core.Scheduler
	resolver *resolver.Resolver
	loc      *time.Location
	timeout  time.Duration
	routes   map[route]handler
}

func New(sched core.Scheduler, loc *time.Location, timeout time.Duration) *Dispatcher {
	if loc == nil {
		loc = time.UTC
	}
	d := &Dispatcher{
		sched:    sched,
		resolver: resolver.New(sched, loc, timeout),
		loc:      loc,
		timeout:  timeout,
	}

	d.routes = map[route]handler{
		{core.ActionCreate, core.ItemEvent}:        d.createEvent,
		{core.ActionCreate, core.ItemTask}:         d.createTask,
		{core.ActionUpdate, core.ItemEvent}:        d.updateEvent,
		{core.ActionUpdate, core.ItemTask}:         d.updateTask,
		{core.ActionQuery, core.ItemEvent}:         d.queryEvents,
		{core.ActionQuery, core.ItemTask}:          d.queryTasks,
		{core.ActionDelete, core.ItemEvent}:        d.deleteEvent,
		{core.ActionDelete, core.ItemTask}:         d.deleteTask,
		{core.ActionFindAndDelete, core.ItemEvent}: d.resolver.Resolve,
		{core.ActionFindAndDelete, core.ItemTask}:  d.resolver.Resolve,
	}
	return d
}

// Dispatch executes ins and always returns a Result. Collaborator failures
// and panics become Result.Error.
func (d *Dispatcher) Dispatch(ctx context.Context, ins core.Instruction) (res core.Result) {
	logger := log.FromCtx(ctx).With().
		Str("action", string(ins.Action)).
		Str("item_type", string(ins.ItemType)).
		Logger()
	ctx = logger.WithContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("dispatch panicked")
			res = core.Failure(fmt.Sprintf("internal error: %v", r))
		}
	}()

	switch ins.Action {
	case core.ActionGreeting:
		return core.Result{Success: true, Message: "Greeting processed"}
	case core.ActionClarify:
		return core.Result{
			Success:       true,
			Message:       "Clarification needed",
			Clarification: true,
			Data:          core.ClarificationRequest{MissingFields: ins.MissingFields},
		}
	}

	h, ok := d.routes[route{ins.Action, ins.ItemType}]
	if !ok {
		err := d.unroutable(ins)
		logger.Warn().Err(err).Msg("unroutable instruction")
		return core.Failure(err.Error())
	}

	logger.Info().Msg("dispatching instruction")
	return h(ctx, ins)
}

func (d *Dispatcher) unroutable(ins core.Instruction) error {
	if !ins.Action.Actionable() {
		return &Error{Kind: ErrUnknownAction, Value: string(ins.Action)}
	}
	return &Error{Kind: ErrUnknownAction, Value: fmt.Sprintf("%s/%s", ins.Action, ins.ItemType)}
}

func (d *Dispatcher) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.timeout)
}
