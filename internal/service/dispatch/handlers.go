package dispatch

import (
	"context"
	"time"

	"github.com/sandevgo/calbot/internal/core"
	"github.com/sandevgo/calbot/internal/service/fields"
	"github.com/sandevgo/calbot/internal/service/format"
	"github.com/sandevgo/calbot/pkg/log"
)

func (d *Dispatcher) fail(ctx context.Context, action string, err error) core.Result {
	log.FromCtx(ctx).Error().Err(err).Msg("failed to " + action)
	return core.Failure(format.Failed(action, err))
}

func missingID() core.Result {
	return core.Failure((&Error{Kind: ErrMissingIdentifier}).Error())
}

func (d *Dispatcher) createEvent(ctx context.Context, ins core.Instruction) core.Result {
	body, err := fields.EventFields(ins, d.loc)
	if err != nil {
		return d.fail(ctx, "create event", err)
	}

	cctx, cancel := d.withTimeout(ctx)
	defer cancel()
	created, err := d.sched.CreateEvent(cctx, body)
	if err != nil {
		return d.fail(ctx, "create event", err)
	}

	return core.Result{Success: true, Message: format.Created(core.ItemEvent, body.Summary), Data: created}
}

func (d *Dispatcher) createTask(ctx context.Context, ins core.Instruction) core.Result {
	body, err := fields.TaskFields(ins, d.loc)
	if err != nil {
		return d.fail(ctx, "create task", err)
	}

	cctx, cancel := d.withTimeout(ctx)
	defer cancel()
	created, err := d.sched.CreateTask(cctx, body)
	if err != nil {
		return d.fail(ctx, "create task", err)
	}

	return core.Result{Success: true, Message: format.Created(core.ItemTask, body.Title), Data: created}
}

// Updates require an explicit id; there is no lookup by description.

func (d *Dispatcher) updateEvent(ctx context.Context, ins core.Instruction) core.Result {
	if ins.ID == "" {
		return missingID()
	}
	patch, err := fields.EventPatch(ins, d.loc)
	if err != nil {
		return d.fail(ctx, "update event", err)
	}

	cctx, cancel := d.withTimeout(ctx)
	defer cancel()
	updated, err := d.sched.UpdateEvent(cctx, ins.ID, patch)
	if err != nil {
		return d.fail(ctx, "update event", err)
	}

	return core.Result{Success: true, Message: format.Updated(core.ItemEvent), Data: updated}
}

func (d *Dispatcher) updateTask(ctx context.Context, ins core.Instruction) core.Result {
	if ins.ID == "" {
		return missingID()
	}
	patch, err := fields.TaskPatch(ins, d.loc)
	if err != nil {
		return d.fail(ctx, "update task", err)
	}

	cctx, cancel := d.withTimeout(ctx)
	defer cancel()
	updated, err := d.sched.UpdateTask(cctx, ins.ID, patch)
	if err != nil {
		return d.fail(ctx, "update task", err)
	}

	return core.Result{Success: true, Message: format.Updated(core.ItemTask), Data: updated}
}

func (d *Dispatcher) queryEvents(ctx context.Context, ins core.Instruction) core.Result {
	return d.query(ctx, ins, core.ItemEvent, fields.QueryWindow, d.sched.ListEvents)
}

// Task dues are UTC-pinned dates, so their window is not the local day.
func (d *Dispatcher) queryTasks(ctx context.Context, ins core.Instruction) core.Result {
	return d.query(ctx, ins, core.ItemTask, fields.TaskQueryWindow, d.sched.ListTasks)
}

func (d *Dispatcher) query(
	ctx context.Context,
	ins core.Instruction,
	kind core.ItemType,
	window func(core.Instruction, *time.Location) (time.Time, time.Time, error),
	list func(context.Context, time.Time, time.Time) ([]core.Candidate, error),
) core.Result {
	action := "query " + format.Noun(kind, 2)

	from, to, err := window(ins, d.loc)
	if err != nil {
		return d.fail(ctx, action, err)
	}

	cctx, cancel := d.withTimeout(ctx)
	defer cancel()
	items, err := list(cctx, from, to)
	if err != nil {
		return d.fail(ctx, action, err)
	}
	if items == nil {
		items = []core.Candidate{}
	}

	return core.Result{
		Success:           true,
		Message:           format.Found(kind, len(items)),
		FormattedResponse: format.Listing(kind, items),
		Data:              core.Listing{Items: items, Count: len(items)},
	}
}

func (d *Dispatcher) deleteEvent(ctx context.Context, ins core.Instruction) core.Result {
	return d.deleteByID(ctx, ins, core.ItemEvent, d.sched.DeleteEvent)
}

func (d *Dispatcher) deleteTask(ctx context.Context, ins core.Instruction) core.Result {
	return d.deleteByID(ctx, ins, core.ItemTask, d.sched.DeleteTask)
}

func (d *Dispatcher) deleteByID(
	ctx context.Context,
	ins core.Instruction,
	kind core.ItemType,
	del func(context.Context, string) error,
) core.Result {
	if ins.ID == "" {
		return missingID()
	}

	cctx, cancel := d.withTimeout(ctx)
	defer cancel()
	if err := del(cctx, ins.ID); err != nil {
		return d.fail(ctx, "delete "+format.Noun(kind, 1), err)
	}

	return core.Result{Success: true, Message: format.DeletedByID(kind), Data: core.ItemRef{ID: ins.ID}}
}
