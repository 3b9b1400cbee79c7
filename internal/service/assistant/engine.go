package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/calbot/internal/core"
	"github.com/sandevgo/calbot/internal/service/instruction"
	"github.com/sandevgo/calbot/pkg/log"
)

const rephrase = "I couldn't work out what to do with that. Could you rephrase your request?"

type Dispatcher interface {
	Dispatch(ctx context.Context, ins core.Instruction) core.Result
}

type PromptBuilder interface {
	Messages(ctx context.Context, history []core.ConversationEntry) ([]core.Message, error)
}

type Options struct {
	ContextWindow     int
	CompletionTimeout time.Duration
	Chat              core.ChatOptions
}

// Reply is what a transport shows the user after one message.
type Reply struct {
	Text   string
	Result core.Result
}

// Markdown joins the model's reply with the formatted outcome.
func (r Reply) Markdown() string {
	var parts []string
	if r.Text != "" {
		parts = append(parts, r.Text)
	}

	switch {
	case r.Result.FormattedResponse != "":
		parts = append(parts, r.Result.FormattedResponse)
	case r.Result.Error != "":
		parts = append(parts, "⚠️ "+r.Result.Error)
	case r.Text == "" && r.Result.Message != "":
		parts = append(parts, r.Result.Message)
	}
	return strings.Join(parts, "\n\n")
}

type Engine struct {
	store      core.ConversationStore
	ai         core.AIProvider
	prompts    PromptBuilder
	dispatcher Dispatcher
	opts       Options
	now        func() time.Time
}

func NewEngine(
	store core.ConversationStore,
	ai core.AIProvider,
	prompts PromptBuilder,
	dispatcher Dispatcher,
	opts Options,
) *Engine {
	if opts.ContextWindow <= 0 {
		opts.ContextWindow = 8
	}
	return &Engine{
		store:      store,
		ai:         ai,
		prompts:    prompts,
		dispatcher: dispatcher,
		opts:       opts,
		now:        time.Now,
	}
}

// Resolve turns a raw completion into a Result. It never panics and never
// returns without an envelope.
func (e *Engine) Resolve(ctx context.Context, userID, raw string) (res core.Result) {
	ctx = log.WithUser(ctx, userID)
	logger := log.FromCtx(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("resolve panicked")
			res = core.Failure(fmt.Sprintf("internal error: %v", r))
		}
	}()

	ins, err := instruction.Extract(ctx, raw)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to extract instruction")
		return core.Result{
			Message:       rephrase,
			Error:         err.Error(),
			Clarification: true,
		}
	}

	return e.dispatcher.Dispatch(ctx, ins)
}

// RecordExchange stores a user message and the assistant's reply.
func (e *Engine) RecordExchange(userID, userText, assistantText string) {
	e.record(userID, userText, true)
	e.record(userID, assistantText, false)
}

func (e *Engine) record(userID, text string, isUser bool) {
	e.store.Append(userID, core.ConversationEntry{Text: text, IsUser: isUser, Timestamp: e.now()})
}

// Handle runs one full turn: history, completion, resolution.
// The session-start marker is sent to the model but never stored as a user message.
func (e *Engine) Handle(ctx context.Context, userID, input string) Reply {
	ctx = log.WithUser(ctx, userID)
	logger := log.FromCtx(ctx)

	sessionStart := strings.TrimSpace(input) == core.SessionStart
	if !sessionStart {
		e.record(userID, input, true)
	}

	history := e.store.Recent(userID, e.opts.ContextWindow)
	messages, err := e.prompts.Messages(ctx, history)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build prompt")
		return Reply{Result: core.Failure(fmt.Sprintf("Failed to build prompt: %v", err))}
	}
	if sessionStart {
		messages = append(messages, core.Message{Role: core.RoleUser, Content: core.SessionStart})
	}

	raw, err := e.complete(ctx, messages)
	if err != nil {
		logger.Error().Err(err).Msg("completion failed")
		return Reply{Result: core.Failure(fmt.Sprintf("Failed to get completion: %v", err))}
	}
	e.record(userID, raw, false)

	return Reply{
		Text:   instruction.Reply(raw),
		Result: e.Resolve(ctx, userID, raw),
	}
}

func (e *Engine) complete(ctx context.Context, messages []core.Message) (string, error) {
	if e.opts.CompletionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.CompletionTimeout)
		defer cancel()
	}

	msg, err := e.ai.Chat(ctx, messages, e.opts.Chat)
	if err != nil {
		return "", err
	}
	return msg.Content, nil
}
