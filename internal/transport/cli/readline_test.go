package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/sandevgo/calbot/internal/core"
	"github.com/sandevgo/calbot/internal/service/assistant"
)

type fakeEngine struct {
	inputs []string
	reply  assistant.Reply
}

func (f *fakeEngine) Handle(_ context.Context, userID, input string) assistant.Reply {
	f.inputs = append(f.inputs, userID+":"+input)
	return f.reply
}

type fakeRouter struct{}

func (fakeRouter) Execute(_ context.Context, _, input string) (string, bool) {
	if !strings.HasPrefix(input, "/") {
		return "", false
	}
	return "⚙️ **Commands**\n› **/help** List available commands", true
}

func (fakeRouter) ListCommands() []core.Command { return nil }

func TestHandleLine(t *testing.T) {
	defer goleak.VerifyNone(t)

	engine := &fakeEngine{reply: assistant.Reply{
		Text:   "Here you go.",
		Result: core.Result{Success: true, FormattedResponse: "📅 **Your Events:**\n\n• Standup (06/30/2025 at 09:00 AM)"},
	}}
	r := &ReadLine{engine: engine, router: fakeRouter{}}
	ctx := context.Background()

	out, quit := r.handleLine(ctx, "  ")
	assert.False(t, quit)
	assert.Empty(t, out)

	out, quit = r.handleLine(ctx, "/help")
	assert.False(t, quit)
	assert.Contains(t, out, "Commands")
	assert.NotContains(t, out, "**")
	assert.Empty(t, engine.inputs)

	out, quit = r.handleLine(ctx, "what's on monday?")
	assert.False(t, quit)
	assert.Contains(t, out, "Here you go.")
	assert.Contains(t, out, "📅 Your Events:")
	assert.Contains(t, out, "• Standup (06/30/2025 at 09:00 AM)")
	assert.Equal(t, []string{"cli-local:what's on monday?"}, engine.inputs)

	_, quit = r.handleLine(ctx, "exit")
	assert.True(t, quit)
}

func TestQuitCallsStop(t *testing.T) {
	stopped := false
	r := &ReadLine{stop: func() { stopped = true }}

	r.quit()
	assert.True(t, stopped)

	assert.NotPanics(t, (&ReadLine{}).quit)
}
