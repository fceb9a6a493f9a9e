// Runtime interface - the abstract interface for agent runtimes.
// Each runtime implementation hides:
// - API client initialization and authentication
// - Request/response format conversion
// - Mapping of the native stream onto the turn event contract
package runtime

import (
	"context"

	"github.com/richinex/palaver/conversation"
)

// TurnRequest carries everything a runtime needs for one turn.
type TurnRequest struct {
	// History is the persisted conversation so far, in arrival order.
	History []conversation.Item

	// UserText is the new user input for this turn.
	UserText string

	// Instructions is the standing system guidance for the agent.
	Instructions string

	// VectorStoreID is the indexing store consulted by file search. May be
	// empty when file search is not configured.
	VectorStoreID string
}

// Runtime executes agent turns against a remote model backend.
type Runtime interface {
	// Name returns the runtime name (for logging/debugging).
	Name() string

	// Model returns the current model being used.
	Model() string

	// StreamTurn runs one turn, sending events on events in arrival order
	// as they happen. It returns the finalized conversation items the turn
	// produced (tool call records and the final assistant message), which
	// the caller persists. The caller owns the channel; StreamTurn must not
	// close it. A non-nil error means the stream failed mid-turn; events
	// already sent remain valid.
	StreamTurn(ctx context.Context, req TurnRequest, events chan<- Event) ([]conversation.Item, error)
}

// historyMessage is the provider-neutral form of a history item used when
// converting to a native request. Only text-bearing messages participate;
// tool records and image parts are self-contained history and are not
// replayed into the model prompt.
type historyMessage struct {
	role string
	text string
}

func flattenHistory(req TurnRequest) []historyMessage {
	var msgs []historyMessage
	if req.Instructions != "" {
		msgs = append(msgs, historyMessage{role: "system", text: req.Instructions})
	}
	for _, item := range req.History {
		if !item.IsMessage() || item.Text == "" {
			continue
		}
		msgs = append(msgs, historyMessage{role: string(item.Role), text: item.Text})
	}
	msgs = append(msgs, historyMessage{role: "user", text: req.UserText})
	return msgs
}

// send delivers an event unless the context is already done.
func send(ctx context.Context, events chan<- Event, ev Event) error {
	select {
	case events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
