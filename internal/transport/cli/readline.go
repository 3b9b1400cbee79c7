package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/sandevgo/calbot/internal/core"
	"github.com/sandevgo/calbot/internal/service/assistant"
	"github.com/sandevgo/calbot/internal/service/ui"
	"github.com/sandevgo/calbot/pkg/conv"
	"github.com/sandevgo/calbot/pkg/log"
)

const defaultUserID = "cli-local"

type Assistant interface {
	Handle(ctx context.Context, userID, input string) assistant.Reply
}

type ReadLine struct {
	engine Assistant
	router core.CmdRouter
	rl     *readline.Instance
	// stop ends the whole process when the user leaves the chat.
	stop func()
}

func NewReadLine(engine Assistant, router core.CmdRouter, runtimePath string, stop func()) (*ReadLine, error) {
	if err := os.MkdirAll(runtimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(runtimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(router),
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		engine: engine,
		router: router,
		rl:     rl,
		stop:   stop,
	}, nil
}

func completer(router core.CmdRouter) readline.AutoCompleter {
	var items []readline.PrefixCompleterInterface
	for _, cmd := range router.ListCommands() {
		items = append(items, readline.PcItem("/"+cmd.Name()))
	}
	items = append(items, readline.PcItem("exit"))
	return readline.NewPrefixCompleter(items...)
}

func (r *ReadLine) Start(ctx context.Context) error {
	defer r.quit()

	logger := log.FromCtx(ctx)
	logger.Info().Msg("chat started, type 'exit' to quit")

	r.print(r.respond(ctx, core.SessionStart))

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		out, quit := r.handleLine(ctx, line)
		if quit {
			return nil
		}
		if out != "" {
			r.print(out)
		}
	}
}

// handleLine returns the text to show for one input line and whether the
// user asked to leave.
func (r *ReadLine) handleLine(ctx context.Context, line string) (string, bool) {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return "", false
	case "exit", "quit":
		return "", true
	}

	if out, ok := r.router.Execute(ctx, defaultUserID, line); ok {
		return conv.MarkdownToPlain([]byte(out)), false
	}
	return r.respond(ctx, line), false
}

func (r *ReadLine) respond(ctx context.Context, input string) string {
	reply := r.engine.Handle(ctx, defaultUserID, input)
	if reply.Result.Error != "" {
		log.FromCtx(ctx).Debug().Str("error", reply.Result.Error).Msg("request finished with error")
	}
	return conv.MarkdownToPlain([]byte(reply.Markdown()))
}

func (r *ReadLine) print(text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(r.rl.Stdout(), "%s %s\n", ui.ReplyStyle.Render(core.CalName+" ›"), text)
}

func (r *ReadLine) quit() {
	if r.stop != nil {
		r.stop()
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
