// In-memory conversation log for tests and ephemeral sessions.
package storage

import (
	"context"
	"sync"

	"github.com/richinex/palaver/conversation"
)

// MemoryStore implements ConversationStore in process memory.
// Data does not survive restarts. Thread-safe.
type MemoryStore struct {
	mu       sync.RWMutex
	channels map[string][]conversation.Item
}

// NewMemoryStore creates an empty in-memory conversation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		channels: make(map[string][]conversation.Item),
	}
}

// Append appends items for a channel in order.
func (s *MemoryStore) Append(_ context.Context, channel string, items []conversation.Item) error {
	if len(items) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels[channel] = append(s.channels[channel], items...)
	return nil
}

// Items returns a copy of the channel history in arrival order.
func (s *MemoryStore) Items(_ context.Context, channel string) ([]conversation.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.channels[channel]
	items := make([]conversation.Item, len(stored))
	copy(items, stored)
	return items, nil
}

// Clear deletes all history for a channel.
func (s *MemoryStore) Clear(_ context.Context, channel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.channels, channel)
	return nil
}

// Verify MemoryStore implements ConversationStore
var _ ConversationStore = (*MemoryStore)(nil)
