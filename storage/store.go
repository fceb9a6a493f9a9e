// Package storage provides the durable conversation log.
//
// Information Hiding:
// - Storage backend implementation details hidden behind interface
// - Allows swapping between memory and SQLite without API changes
// - Each implementation encapsulates its own data structures and schema
package storage

import (
	"context"

	"github.com/richinex/palaver/conversation"
)

// ConversationStore is an append-only log of conversation items, keyed by
// channel. Distinct channels are fully isolated. The store never reorders or
// merges items; callers serialize concurrent writers per channel.
type ConversationStore interface {
	// Append durably appends items in the given order. Append is
	// all-or-nothing: on error the caller must not assume anything was
	// written.
	Append(ctx context.Context, channel string, items []conversation.Item) error

	// Items returns the full history for a channel in arrival order.
	// Returns an empty slice (not nil) for an unknown channel.
	Items(ctx context.Context, channel string) ([]conversation.Item, error)

	// Clear deletes all items for a channel. Items reads after a successful
	// Clear return empty until the next Append.
	Clear(ctx context.Context, channel string) error
}
