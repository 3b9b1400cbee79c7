package prompt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/template"
	"time"

	"github.com/sandevgo/calbot/configs"
	"github.com/sandevgo/calbot/internal/core"
	"github.com/sandevgo/calbot/pkg/log"
)

const systemFile = "SYSTEM.md"

// Data is exposed to the SYSTEM.md template.
type Data struct {
	Name         string
	Today        string
	TodayLong    string
	Now          string
	Clock        string
	Zone         string
	NextMonday   string
	SessionStart string
}

type Builder struct {
	cfg core.PromptConfig
	now func() time.Time
}

func NewBuilder(cfg core.PromptConfig) *Builder {
	return &Builder{cfg: cfg, now: time.Now}
}

// System renders the system prompt. A SYSTEM.md in the runtime directory
// replaces the embedded template.
func (b *Builder) System(ctx context.Context) (string, error) {
	src, err := b.template(ctx)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(systemFile).Parse(src)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", systemFile, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, b.data()); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", systemFile, err)
	}
	return buf.String(), nil
}

// Messages prepends the system prompt to the conversation window.
func (b *Builder) Messages(ctx context.Context, history []core.ConversationEntry) ([]core.Message, error) {
	system, err := b.System(ctx)
	if err != nil {
		return nil, err
	}

	messages := make([]core.Message, 0, len(history)+1)
	messages = append(messages, core.Message{Role: core.RoleSystem, Content: system})
	for _, e := range history {
		role := core.RoleAssistant
		if e.IsUser {
			role = core.RoleUser
		}
		messages = append(messages, core.Message{Role: role, Content: e.Text})
	}
	return messages, nil
}

func (b *Builder) template(ctx context.Context) (string, error) {
	if path := b.cfg.GetSystemPath(); path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			log.FromCtx(ctx).Warn().Err(err).Str("path", path).Msg("failed to read system prompt, using embedded")
		}
	}

	data, err := configs.FS.ReadFile(systemFile)
	if err != nil {
		return "", fmt.Errorf("failed to read embedded %s: %w", systemFile, err)
	}
	return string(data), nil
}

func (b *Builder) data() Data {
	loc := b.cfg.GetLocation()
	if loc == nil {
		loc = time.UTC
	}
	now := b.now().In(loc)

	return Data{
		Name:         core.CalName,
		Today:        now.Format("2006-01-02"),
		TodayLong:    now.Format("January 02, 2006"),
		Now:          now.Format("2006-01-02T15:04:05"),
		Clock:        now.Format("03:04 PM"),
		Zone:         loc.String(),
		NextMonday:   nextMonday(now).Format("2006-01-02"),
		SessionStart: core.SessionStart,
	}
}

func nextMonday(t time.Time) time.Time {
	days := (int(time.Monday) - int(t.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return t.AddDate(0, 0, days)
}
