// OpenAI runtime implementation using go-openai library.
//
// Information Hiding:
// - API endpoint and authentication
// - Request/response format for OpenAI Chat Completions API
// - Streaming via go-openai library
package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/richinex/palaver/conversation"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIRuntime implements the Runtime interface for OpenAI.
type OpenAIRuntime struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewOpenAIRuntime creates a new OpenAI runtime.
func NewOpenAIRuntime(apiKey, model string, maxTokens uint32, temperature float32) *OpenAIRuntime {
	return &OpenAIRuntime{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   int(maxTokens),
		temperature: temperature,
	}
}

// Name returns the runtime name.
func (r *OpenAIRuntime) Name() string {
	return "openai"
}

// Model returns the current model.
func (r *OpenAIRuntime) Model() string {
	return r.model
}

// StreamTurn streams one turn, translating native chunks into turn events.
func (r *OpenAIRuntime) StreamTurn(ctx context.Context, req TurnRequest, events chan<- Event) ([]conversation.Item, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       r.model,
		Messages:    convertToOpenAIMessages(flattenHistory(req)),
		MaxTokens:   r.maxTokens,
		Temperature: r.temperature,
		Stream:      true,
	}

	stream, err := r.client.CreateChatCompletionStream(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("stream creation failed: %w", err)
	}
	defer stream.Close()

	var text string
	for {
		response, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("stream recv failed: %w", err)
		}

		if len(response.Choices) > 0 {
			content := response.Choices[0].Delta.Content
			if content != "" {
				text += content
				if err := send(ctx, events, TextDelta(content)); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := send(ctx, events, Status(EventCompleted)); err != nil {
		return nil, err
	}

	return []conversation.Item{conversation.NewAssistantText(text)}, nil
}

// convertToOpenAIMessages converts neutral history to openai.ChatCompletionMessage
func convertToOpenAIMessages(messages []historyMessage) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		result[i] = openai.ChatCompletionMessage{
			Role:    msg.role,
			Content: msg.text,
		}
	}
	return result
}

// Verify OpenAIRuntime implements Runtime
var _ Runtime = (*OpenAIRuntime)(nil)
