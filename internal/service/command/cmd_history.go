package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandevgo/calbot/internal/core"
	"github.com/sandevgo/calbot/internal/service/instruction"
)

const (
	defaultHistoryShown = 10
	historyPreviewLen   = 80
)

type historyReader interface {
	Recent(userID string, k int) []core.ConversationEntry
}

// HistoryCommand shows the conversation window the model currently sees.
type HistoryCommand struct {
	store historyReader
}

func NewHistoryCommand(store historyReader) *HistoryCommand {
	return &HistoryCommand{store: store}
}

func (c *HistoryCommand) Name() string {
	return "history"
}

func (c *HistoryCommand) Description() string {
	return "Show recent conversation messages"
}

func (c *HistoryCommand) Execute(_ context.Context, userID string, args []string) (string, error) {
	n := defaultHistoryShown
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			return "", fmt.Errorf("count must be a positive number, got %q", args[0])
		}
		n = v
	}

	entries := c.store.Recent(userID, n)
	if len(entries) == 0 {
		return newReply("History").add("No messages yet.").String(), nil
	}

	items := make([]string, 0, len(entries))
	for _, e := range entries {
		who, text := "You", e.Text
		if !e.IsUser {
			who = core.CalName
			if reply := instruction.Reply(e.Text); reply != "" {
				text = reply
			}
		}
		items = append(items, fmt.Sprintf("%s **%s**: %s", e.Timestamp.Format("15:04"), who, preview(text)))
	}

	return newReply("History").
		label("Messages", strconv.Itoa(len(entries))).
		list(items).
		String(), nil
}

func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > historyPreviewLen {
		return string(r[:historyPreviewLen-3]) + "..."
	}
	return s
}
