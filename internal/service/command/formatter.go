package command

import (
	"fmt"
	"strings"
)

// reply builds the markdown shown for a command. Both transports render it,
// Telegram as HTML and the CLI as plain text.
type reply struct {
	sections []string
}

func newReply(title string) *reply {
	return &reply{sections: []string{fmt.Sprintf("⚙️ **%s**\n", title)}}
}

func success(message string) string {
	return fmt.Sprintf("✅ **%s**\n", message)
}

func (r *reply) add(section string) *reply {
	r.sections = append(r.sections, section)
	return r
}

func (r *reply) label(name, value string) *reply {
	return r.add(fmt.Sprintf("**%s**  ›  `%s`\n", name, value))
}

func (r *reply) usage(command string) *reply {
	return r.add(fmt.Sprintf("**Usage**: `%s`\n", command))
}

func (r *reply) examples(examples ...string) *reply {
	var sb strings.Builder
	sb.WriteString("**Examples**:\n")
	for _, ex := range examples {
		fmt.Fprintf(&sb, "`%s`\n", ex)
	}
	return r.add(sb.String())
}

func (r *reply) list(items []string) *reply {
	var sb strings.Builder
	for _, item := range items {
		fmt.Fprintf(&sb, "› %s\n", item)
	}
	return r.add(sb.String())
}

func (r *reply) tip(text string) *reply {
	return r.add(fmt.Sprintf("**Tip**: %s\n", text))
}

func (r *reply) String() string {
	return strings.Join(r.sections, "\n")
}
