package storage

import (
	"context"
	"testing"

	"github.com/richinex/palaver/conversation"
)

func TestSqliteStoreAppendAndItems(t *testing.T) {
	store, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	items := []conversation.Item{
		conversation.NewUserText("Hello"),
		conversation.NewAssistantText("Hi there"),
	}

	if err := store.Append(ctx, "test-channel", items); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	loaded, err := store.Items(ctx, "test-channel")
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}

	if len(loaded) != 2 {
		t.Fatalf("expected 2 items, got %d", len(loaded))
	}
	if loaded[0].Text != "Hello" {
		t.Errorf("expected 'Hello', got %q", loaded[0].Text)
	}
	if loaded[1].Text != "Hi there" {
		t.Errorf("expected 'Hi there', got %q", loaded[1].Text)
	}
	if loaded[1].Role != conversation.RoleAssistant {
		t.Errorf("expected assistant role, got %q", loaded[1].Role)
	}
}

func TestSqliteStoreAppendIsAppendOnly(t *testing.T) {
	store, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	first := conversation.NewUserText("first")
	second := conversation.NewAssistantText("second")
	third := conversation.NewUserText("third")

	if err := store.Append(ctx, "c", []conversation.Item{first, second}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(ctx, "c", []conversation.Item{third}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	loaded, err := store.Items(ctx, "c")
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}

	want := []string{"first", "second", "third"}
	if len(loaded) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(loaded))
	}
	for i, text := range want {
		if loaded[i].Text != text {
			t.Errorf("item %d: expected %q, got %q", i, text, loaded[i].Text)
		}
	}
}

func TestSqliteStoreItemsUnknownChannel(t *testing.T) {
	store, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	loaded, err := store.Items(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected empty slice, got %d items", len(loaded))
	}
	if loaded == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestSqliteStoreClear(t *testing.T) {
	store, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	if err := store.Append(ctx, "c", []conversation.Item{conversation.NewUserText("x")}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if err := store.Clear(ctx, "c"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	loaded, err := store.Items(ctx, "c")
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected empty history after Clear, got %d items", len(loaded))
	}

	// Appending after a clear starts a fresh sequence.
	if err := store.Append(ctx, "c", []conversation.Item{conversation.NewUserText("y")}); err != nil {
		t.Fatalf("Append after Clear failed: %v", err)
	}
	loaded, err = store.Items(ctx, "c")
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Text != "y" {
		t.Errorf("expected single item 'y', got %+v", loaded)
	}
}

func TestSqliteStoreChannelIsolation(t *testing.T) {
	store, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	if err := store.Append(ctx, "a", []conversation.Item{conversation.NewUserText("for a")}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(ctx, "b", []conversation.Item{conversation.NewUserText("for b")}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if err := store.Clear(ctx, "a"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	loaded, err := store.Items(ctx, "b")
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Text != "for b" {
		t.Errorf("channel b affected by clearing channel a: %+v", loaded)
	}
}

func TestSqliteStoreRoundTripsToolRecords(t *testing.T) {
	store, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	items := []conversation.Item{
		conversation.NewCodeInterpreterCall("print(1)"),
		conversation.NewMCPCall("Context7", "get-docs", `{"topic":"go"}`),
		conversation.NewImageGenerationCall("aGVsbG8="),
	}
	if err := store.Append(ctx, "tools", items); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	loaded, err := store.Items(ctx, "tools")
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("expected 3 items, got %d", len(loaded))
	}
	if loaded[0].Code != "print(1)" {
		t.Errorf("expected code 'print(1)', got %q", loaded[0].Code)
	}
	if loaded[1].ServerLabel != "Context7" || loaded[1].ToolName != "get-docs" {
		t.Errorf("mcp call fields lost: %+v", loaded[1])
	}
	if loaded[2].ImageResult != "aGVsbG8=" {
		t.Errorf("expected image result preserved, got %q", loaded[2].ImageResult)
	}
}

func TestSqliteStorePreservesUnknownKinds(t *testing.T) {
	store, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	item := conversation.Item{ID: "x-1", Kind: "computer_call", Text: "screenshot"}
	if err := store.Append(ctx, "c", []conversation.Item{item}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	loaded, err := store.Items(ctx, "c")
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 item, got %d", len(loaded))
	}
	if loaded[0].Kind != "computer_call" {
		t.Errorf("unknown kind not preserved: got %q", loaded[0].Kind)
	}
}

func TestSqliteStoreListChannels(t *testing.T) {
	store, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	if err := store.Append(ctx, "one", []conversation.Item{conversation.NewUserText("a")}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(ctx, "two", []conversation.Item{conversation.NewUserText("b")}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	channels, err := store.ListChannels(ctx)
	if err != nil {
		t.Fatalf("ListChannels failed: %v", err)
	}
	if len(channels) != 2 {
		t.Errorf("expected 2 channels, got %d", len(channels))
	}
}
