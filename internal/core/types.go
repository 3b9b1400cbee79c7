package core

const (
	CalName          = "CalBot"
	CalUserAgent     = "CalBot-Agent/0.1"
	CalRepositoryURL = "https://github.com/sandevgo/calbot"
	CalVersion       = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// SessionStart is sent to the completion model when a user opens a new chat.
const SessionStart = "SESSION_START"

type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Reasoning string `json:"reasoning,omitempty"`
}

type Model struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContextLength int    `json:"context_length"`
}
