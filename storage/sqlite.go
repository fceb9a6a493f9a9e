// SQLite-backed conversation log.
//
// Information Hiding:
// - SQLite connection management hidden behind ConversationStore
// - Schema and item serialization encapsulated
// - Thread-safe via sql.DB's built-in connection pooling
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/richinex/palaver/conversation"
)

// SqliteStore implements ConversationStore on a local SQLite database file.
// Items are stored as JSON rows so kinds added by a newer runtime round-trip
// unchanged.
type SqliteStore struct {
	db *sql.DB
}

// OpenSqlite opens or creates a SQLite database at the given path.
// Creates parent directories if they don't exist.
func OpenSqlite(path string) (*SqliteStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	store := &SqliteStore{db: db}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// NewSqliteInMemory creates an in-memory database (useful for testing).
func NewSqliteInMemory() (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite: %w", err)
	}

	store := &SqliteStore{db: db}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS channels (
			channel TEXT PRIMARY KEY,
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			channel TEXT NOT NULL,
			item_index INTEGER NOT NULL,
			item_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			payload TEXT NOT NULL,
			FOREIGN KEY (channel) REFERENCES channels(channel) ON DELETE CASCADE,
			UNIQUE(channel, item_index)
		);

		CREATE INDEX IF NOT EXISTS idx_items_channel
		ON items(channel, item_index);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *SqliteStore) ensureChannel(ctx context.Context, tx *sql.Tx, channel string) error {
	_, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO channels (channel) VALUES (?)",
		channel,
	)
	if err != nil {
		return fmt.Errorf("failed to ensure channel: %w", err)
	}
	return nil
}

// Append durably appends items for a channel in a single transaction.
func (s *SqliteStore) Append(ctx context.Context, channel string, items []conversation.Item) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// defer tx.Rollback() is safe even after Commit() - it becomes a no-op
	defer func() { _ = tx.Rollback() }()

	if err := s.ensureChannel(ctx, tx, channel); err != nil {
		return err
	}

	var next int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(item_index) + 1, 0) FROM items WHERE channel = ?",
		channel).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to determine next item index: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO items (channel, item_index, item_id, kind, payload) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		payload, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to encode item: %w", err)
		}
		_, err = stmt.ExecContext(ctx, channel, next+i, item.ID, string(item.Kind), string(payload))
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE channels SET updated_at = datetime('now') WHERE channel = ?",
		channel)
	if err != nil {
		return fmt.Errorf("failed to update channel timestamp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Items loads the full history for a channel in arrival order.
// Returns an empty slice if the channel doesn't exist.
func (s *SqliteStore) Items(ctx context.Context, channel string) ([]conversation.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT payload FROM items WHERE channel = ? ORDER BY item_index ASC",
		channel)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []conversation.Item{} // Start with empty slice, not nil
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		var item conversation.Item
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			return nil, fmt.Errorf("failed to decode item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// Clear deletes all history for a channel.
func (s *SqliteStore) Clear(ctx context.Context, channel string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE channel = ?", channel); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM channels WHERE channel = ?", channel); err != nil {
		return fmt.Errorf("failed to clear channel: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListChannels lists all channels, most recently updated first.
func (s *SqliteStore) ListChannels(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT channel FROM channels ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query channels: %w", err)
	}
	defer rows.Close()

	channels := []string{} // Start with empty slice, not nil
	for rows.Next() {
		var channel string
		if err := rows.Scan(&channel); err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		channels = append(channels, channel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating channels: %w", err)
	}

	return channels, nil
}

// Verify SqliteStore implements ConversationStore
var _ ConversationStore = (*SqliteStore)(nil)
