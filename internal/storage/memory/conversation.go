package memory

import (
	"sync"

	"github.com/sandevgo/calbot/internal/core"
)

const (
	DefaultLimit  = 20
	DefaultRecent = 8
)

type history struct {
	mu      sync.Mutex
	entries []core.ConversationEntry
}

// ConversationStore keeps the last Limit entries per user in process memory.
// Mutations for the same user are serialized by a per-user lock.
type ConversationStore struct {
	mu    sync.RWMutex
	users map[string]*history
	limit int
}

// NewConversationStore caps limit at DefaultLimit; zero or negative means
// DefaultLimit.
func NewConversationStore(limit int) *ConversationStore {
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}
	return &ConversationStore{
		users: make(map[string]*history),
		limit: limit,
	}
}

func (s *ConversationStore) Limit() int {
	return s.limit
}

// Append adds entry at the end of the user's history and evicts the oldest
// entries beyond the limit in the same critical section.
func (s *ConversationStore) Append(userID string, entry core.ConversationEntry) {
	h := s.historyFor(userID)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, entry)
	if over := len(h.entries) - s.limit; over > 0 {
		// Copy into a fresh slice so the evicted prefix can be collected.
		trimmed := make([]core.ConversationEntry, s.limit, s.limit+1)
		copy(trimmed, h.entries[over:])
		h.entries = trimmed
	}
}

// Recent returns a copy of the last min(k, len) entries in chronological order.
func (s *ConversationStore) Recent(userID string, k int) []core.ConversationEntry {
	s.mu.RLock()
	h, ok := s.users[userID]
	s.mu.RUnlock()
	if !ok || k <= 0 {
		return []core.ConversationEntry{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	start := len(h.entries) - k
	if start < 0 {
		start = 0
	}
	out := make([]core.ConversationEntry, len(h.entries)-start)
	copy(out, h.entries[start:])
	return out
}

// Len reports how many entries are stored for the user.
func (s *ConversationStore) Len(userID string) int {
	s.mu.RLock()
	h, ok := s.users[userID]
	s.mu.RUnlock()
	if !ok {
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (s *ConversationStore) historyFor(userID string) *history {
	s.mu.RLock()
	h, ok := s.users[userID]
	s.mu.RUnlock()
	if ok {
		return h
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok = s.users[userID]; ok {
		return h
	}
	h = &history{}
	s.users[userID] = h
	return h
}
