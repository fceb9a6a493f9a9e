// Package chat wires the conversation core together: the durable log, the
// indexing store reconciler, the agent runtime, and the render sink. A
// Session is constructed once per logical conversation and passed its
// collaborators explicitly; there is no process-wide state.
package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/richinex/palaver/conversation"
	"github.com/richinex/palaver/render"
	"github.com/richinex/palaver/replay"
	"github.com/richinex/palaver/runtime"
	"github.com/richinex/palaver/storage"
	"github.com/richinex/palaver/vecstore"
)

// DefaultInstructions is the standing guidance given to the agent.
const DefaultInstructions = `You are a helpful assistant.

You have access to the following tools:
    - Web Search Tool: Use this when the user asks about current or future events, or when you think you don't know the answer; try searching the web first.
    - File Search Tool: Use this tool when the user asks about facts related to themselves, or about specific files.
    - Code Interpreter Tool: Use this tool when you need to write and run code to answer the user's question.`

// SessionConfig holds the collaborators for a session.
type SessionConfig struct {
	// Channel names the conversation in the store.
	Channel string

	// Store is the durable conversation log. Required.
	Store storage.ConversationStore

	// Reconciler keeps the indexing store valid. Optional; when nil, turns
	// run without a vector store id.
	Reconciler *vecstore.Reconciler

	// Runtime executes agent turns. Required for RunTurn.
	Runtime runtime.Runtime

	// Sink receives render operations. Required.
	Sink render.Sink

	// Instructions overrides DefaultInstructions when non-empty.
	Instructions string

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Session owns one conversation channel. Turns on a session are serialized
// by the caller: a new turn starts only after the previous one completed or
// failed.
type Session struct {
	channel      string
	store        storage.ConversationStore
	reconciler   *vecstore.Reconciler
	runtime      runtime.Runtime
	sink         render.Sink
	instructions string
	logger       *slog.Logger
	state        TurnState
}

// NewSession creates a session from its collaborators.
func NewSession(cfg SessionConfig) *Session {
	instructions := cfg.Instructions
	if instructions == "" {
		instructions = DefaultInstructions
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		channel:      cfg.Channel,
		store:        cfg.Store,
		reconciler:   cfg.Reconciler,
		runtime:      cfg.Runtime,
		sink:         cfg.Sink,
		instructions: instructions,
		logger:       logger,
		state:        TurnIdle,
	}
}

// Channel returns the session's channel name.
func (s *Session) Channel() string {
	return s.channel
}

// State returns the state of the most recent turn.
func (s *Session) State() TurnState {
	return s.state
}

// History returns the full persisted history in arrival order.
func (s *Session) History(ctx context.Context) ([]conversation.Item, error) {
	return s.store.Items(ctx, s.channel)
}

// ReplayHistory drains the persisted history into the render sink.
func (s *Session) ReplayHistory(ctx context.Context) error {
	items, err := s.store.Items(ctx, s.channel)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	replay.Replay(items, s.sink)
	return nil
}

// Reset deletes the full history for this channel.
func (s *Session) Reset(ctx context.Context) error {
	if err := s.store.Clear(ctx, s.channel); err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}
	s.logger.Info("session reset", "channel", s.channel)
	return nil
}

// RunTurn executes one agent turn: revalidates the indexing store, persists
// the user text, streams the turn's events through a fresh accumulator into
// the sink, and persists the finalized items the runtime produced. Render
// operations are emitted strictly in event-arrival order. On a mid-stream
// failure, partial render state stays on screen and the error is returned.
func (s *Session) RunTurn(ctx context.Context, userText string) error {
	s.state = TurnStreaming

	var storeID string
	if s.reconciler != nil {
		id, err := s.reconciler.Ensure(ctx)
		if err != nil {
			s.state = TurnFailed
			return err
		}
		storeID = id
	}

	history, err := s.store.Items(ctx, s.channel)
	if err != nil {
		s.state = TurnFailed
		return fmt.Errorf("failed to load history: %w", err)
	}

	userItem := conversation.NewUserText(userText)
	if err := s.store.Append(ctx, s.channel, []conversation.Item{userItem}); err != nil {
		s.state = TurnFailed
		return fmt.Errorf("failed to persist user message: %w", err)
	}
	s.sink.Emit(render.ShowBubble{Role: string(conversation.RoleUser), Text: userText})

	req := runtime.TurnRequest{
		History:       history,
		UserText:      userText,
		Instructions:  s.instructions,
		VectorStoreID: storeID,
	}

	acc := NewTurnAccumulator(s.sink)

	events := make(chan runtime.Event, 16)
	var finalized []conversation.Item
	var streamErr error
	go func() {
		defer close(events)
		finalized, streamErr = s.runtime.StreamTurn(ctx, req, events)
	}()

	var applyErr error
	for ev := range events {
		if applyErr != nil {
			continue // drain so the runtime goroutine can finish
		}
		applyErr = acc.Apply(ev)
	}

	if streamErr != nil {
		s.state = TurnFailed
		return fmt.Errorf("turn stream failed: %w", streamErr)
	}
	if applyErr != nil {
		s.state = TurnFailed
		return applyErr
	}

	s.state = TurnCompleted
	if err := s.store.Append(ctx, s.channel, finalized); err != nil {
		// The turn rendered fully but its results are not durable.
		return fmt.Errorf("failed to persist turn results: %w", err)
	}

	s.logger.Debug("turn completed",
		"channel", s.channel,
		"runtime", s.runtime.Name(),
		"items", len(finalized),
	)
	return nil
}
