package core

import "time"

// ConversationEntry is a single message in a user's conversation window.
type ConversationEntry struct {
	Text      string    `json:"text"`
	IsUser    bool      `json:"is_user"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationStore keeps a bounded history per user id.
// Implementations must be safe for concurrent use.
type ConversationStore interface {
	Append(userID string, entry ConversationEntry)
	Recent(userID string, k int) []ConversationEntry
}
