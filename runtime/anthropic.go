// Anthropic runtime implementation using official anthropic-sdk-go.
//
// Information Hiding:
// - API endpoint and authentication
// - Request/response format for Anthropic Messages API
// - Streaming via official SDK
package runtime

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/richinex/palaver/conversation"
)

// AnthropicRuntime implements the Runtime interface for Anthropic Claude.
type AnthropicRuntime struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
}

// NewAnthropicRuntime creates a new Anthropic runtime.
func NewAnthropicRuntime(apiKey, model string, maxTokens uint32, temperature float32) *AnthropicRuntime {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &AnthropicRuntime{
		client:      client,
		model:       model,
		maxTokens:   int64(maxTokens),
		temperature: float64(temperature),
	}
}

// Name returns the runtime name.
func (r *AnthropicRuntime) Name() string {
	return "anthropic"
}

// Model returns the current model.
func (r *AnthropicRuntime) Model() string {
	return r.model
}

// StreamTurn streams one turn, translating native stream events into turn events.
func (r *AnthropicRuntime) StreamTurn(ctx context.Context, req TurnRequest, events chan<- Event) ([]conversation.Item, error) {
	anthropicMessages, systemPrompt := convertToAnthropicMessages(flattenHistory(req))

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(r.model),
		MaxTokens:   r.maxTokens,
		Messages:    anthropicMessages,
		Temperature: anthropic.Float(r.temperature),
	}

	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: systemPrompt},
		}
	}

	stream := r.client.Messages.NewStreaming(ctx, params)

	var text string
	for stream.Next() {
		event := stream.Current()

		switch eventVariant := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			switch deltaVariant := eventVariant.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				if deltaVariant.Text != "" {
					text += deltaVariant.Text
					if err := send(ctx, events, TextDelta(deltaVariant.Text)); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	if stream.Err() != nil {
		return nil, fmt.Errorf("stream error: %w", stream.Err())
	}

	if err := send(ctx, events, Status(EventCompleted)); err != nil {
		return nil, err
	}

	return []conversation.Item{conversation.NewAssistantText(text)}, nil
}

// convertToAnthropicMessages converts neutral history to Anthropic format.
// Extracts the system message and returns it separately.
func convertToAnthropicMessages(messages []historyMessage) ([]anthropic.MessageParam, string) {
	var anthropicMessages []anthropic.MessageParam
	var systemPrompt string

	for _, msg := range messages {
		switch msg.role {
		case "system":
			systemPrompt = msg.text
		case "user":
			anthropicMessages = append(anthropicMessages, anthropic.NewUserMessage(
				anthropic.NewTextBlock(msg.text),
			))
		case "assistant":
			anthropicMessages = append(anthropicMessages, anthropic.NewAssistantMessage(
				anthropic.NewTextBlock(msg.text),
			))
		}
	}

	return anthropicMessages, systemPrompt
}

// Verify AnthropicRuntime implements Runtime
var _ Runtime = (*AnthropicRuntime)(nil)
