package instruction

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sandevgo/calbot/internal/core"
	"github.com/sandevgo/calbot/pkg/log"
)

const (
	Label      = "instruction:"
	ReplyLabel = "userReply:"
)

var (
	labelPattern = regexp.MustCompile(`(?i)instruction:`)
	replyPattern = regexp.MustCompile(`(?is)userReply:\s*(.*)$`)
)

// Parsed is the outcome of reading a full completion reply.
type Parsed struct {
	Instruction core.Instruction
	Reply       string
}

// Parse extracts both the instruction block and the user-facing reply line.
func Parse(ctx context.Context, raw string) (Parsed, error) {
	ins, err := Extract(ctx, raw)
	return Parsed{Instruction: ins, Reply: Reply(raw)}, err
}

// Extract locates the labeled block in raw, repairs it and decodes it into
// a validated Instruction. A strict parse is tried first; when it fails the
// first brace-balanced object is decoded instead.
func Extract(ctx context.Context, raw string) (core.Instruction, error) {
	logger := log.FromCtx(ctx)

	block, err := locate(raw)
	if err != nil {
		return core.Instruction{}, err
	}

	repaired := Repair(block)
	if repaired != strings.TrimSpace(block) {
		logger.Debug().Msg("instruction block repaired")
	}

	var obj map[string]any
	if strictErr := json.Unmarshal([]byte(repaired), &obj); strictErr != nil {
		span, ok := firstObject(repaired)
		if !ok {
			return core.Instruction{}, extractionErr(ErrMalformedInstruction, "%v", strictErr)
		}
		obj = nil
		if err := json.Unmarshal([]byte(span), &obj); err != nil {
			return core.Instruction{}, extractionErr(ErrMalformedInstruction, "%v", err)
		}
		logger.Debug().Err(strictErr).Msg("instruction recovered from first balanced object")
	}
	if obj == nil {
		return core.Instruction{}, extractionErr(ErrMalformedInstruction, "instruction is not an object")
	}

	ins := decode(obj)
	if err := Validate(ins); err != nil {
		return core.Instruction{}, err
	}
	return ins, nil
}

// locate returns the text between the label's first '{' and the last '}'.
func locate(raw string) (string, error) {
	loc := labelPattern.FindStringIndex(raw)
	if loc == nil {
		return "", &ExtractionError{Kind: ErrNoInstructionFound}
	}
	rest := raw[loc[1]:]

	open := strings.IndexByte(rest, '{')
	if open < 0 {
		return "", extractionErr(ErrMalformedInstruction, "no object after %q", Label)
	}
	rest = rest[open:]

	if end := strings.LastIndexByte(rest, '}'); end >= 0 {
		return rest[:end+1], nil
	}
	return rest, nil
}

// Reply returns the user-facing line that follows the reply label, unquoted.
func Reply(raw string) string {
	m := replyPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	reply := strings.TrimSpace(m[1])
	reply = strings.Trim(reply, "\"“”'")
	return strings.TrimSpace(reply)
}

// Validate checks the invariants every decoded instruction must satisfy.
// Unknown actions pass; routing reports them.
func Validate(ins core.Instruction) error {
	if ins.Action == "" {
		return extractionErr(ErrInvalidInstruction, "action is required")
	}
	if ins.Action == core.ActionClarify && len(ins.MissingFields) == 0 {
		return extractionErr(ErrInvalidInstruction, "missing_fields is required for %s", ins.Action)
	}
	if ins.Action.Actionable() && ins.ItemType == "" {
		return extractionErr(ErrInvalidInstruction, "item_type is required for %s", ins.Action)
	}
	if ins.Action == core.ActionFindAndDelete && strings.TrimSpace(ins.Title) == "" {
		return extractionErr(ErrInvalidInstruction, "title is required for %s", ins.Action)
	}
	return nil
}

func decode(obj map[string]any) core.Instruction {
	ins := core.Instruction{
		Action:        core.Action(strings.ToLower(str(obj["action"]))),
		ItemType:      core.ItemType(strings.ToLower(str(obj["item_type"]))),
		ID:            str(obj["id"]),
		Title:         str(obj["title"]),
		Description:   str(obj["description"]),
		Location:      str(obj["location"]),
		Date:          str(obj["date"]),
		Time:          str(obj["time"]),
		DatetimeStart: str(obj["datetime_start"]),
		DatetimeEnd:   str(obj["datetime_end"]),
		Recurrence:    recurrence(obj["recurrence"]),
		Reminders:     strs(obj["reminders"]),
		MissingFields: strs(obj["missing_fields"]),
		OtherFields:   map[string]any{},
	}
	if other, ok := obj["other_fields"].(map[string]any); ok {
		ins.OtherFields = other
	}
	return ins
}

func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func strs(v any) []string {
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}
		}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := str(item); s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func recurrence(v any) *core.Recurrence {
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return &core.Recurrence{Freq: s}
		}
	case map[string]any:
		r := &core.Recurrence{
			Freq:      str(t["freq"]),
			Until:     str(t["until"]),
			ByWeekday: strs(t["byweekday"]),
		}
		switch n := t["interval"].(type) {
		case float64:
			r.Interval = int(n)
		case string:
			r.Interval, _ = strconv.Atoi(strings.TrimSpace(n))
		}
		return r
	}
	return nil
}
