// Google Gemini runtime implementation using official google.golang.org/genai SDK.
//
// Information Hiding:
// - API authentication and client creation
// - Request/response format for Gemini API
// - System instruction handling via config
// - Streaming via official SDK iterator
package runtime

import (
	"context"
	"fmt"

	"github.com/richinex/palaver/conversation"
	"google.golang.org/genai"
)

// GeminiRuntime implements the Runtime interface for Google Gemini.
type GeminiRuntime struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
	initErr     error // Stores client initialization error for deferred reporting
}

// NewGeminiRuntime creates a new Gemini runtime.
// If client initialization fails, the error is stored and returned on first use.
func NewGeminiRuntime(apiKey, model string, maxTokens uint32, temperature float32) *GeminiRuntime {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return &GeminiRuntime{
			client:      nil,
			model:       model,
			maxTokens:   int32(maxTokens),
			temperature: temperature,
			initErr:     fmt.Errorf("failed to initialize Gemini client: %w", err),
		}
	}

	return &GeminiRuntime{
		client:      client,
		model:       model,
		maxTokens:   int32(maxTokens),
		temperature: temperature,
	}
}

// Name returns the runtime name.
func (r *GeminiRuntime) Name() string {
	return "gemini"
}

// Model returns the current model.
func (r *GeminiRuntime) Model() string {
	return r.model
}

// StreamTurn streams one turn, translating native responses into turn events.
func (r *GeminiRuntime) StreamTurn(ctx context.Context, req TurnRequest, events chan<- Event) ([]conversation.Item, error) {
	if r.initErr != nil {
		return nil, r.initErr
	}
	if r.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}

	contents, systemInstruction := convertToGeminiMessages(flattenHistory(req))

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(r.temperature),
		MaxOutputTokens: r.maxTokens,
	}

	if systemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	var text string
	// GenerateContentStream returns iter.Seq2[*GenerateContentResponse, error]
	for response, err := range r.client.Models.GenerateContentStream(ctx, r.model, contents, config) {
		if err != nil {
			return nil, fmt.Errorf("stream error: %w", err)
		}

		chunk := response.Text()
		if chunk != "" {
			text += chunk
			if err := send(ctx, events, TextDelta(chunk)); err != nil {
				return nil, err
			}
		}
	}

	if err := send(ctx, events, Status(EventCompleted)); err != nil {
		return nil, err
	}

	return []conversation.Item{conversation.NewAssistantText(text)}, nil
}

// convertToGeminiMessages converts neutral history to Gemini contents.
// Extracts the system instruction and returns it separately.
func convertToGeminiMessages(messages []historyMessage) ([]*genai.Content, string) {
	var contents []*genai.Content
	var systemInstruction string

	for _, msg := range messages {
		switch msg.role {
		case "system":
			systemInstruction = msg.text
		case "user":
			contents = append(contents, genai.NewContentFromText(msg.text, genai.RoleUser))
		case "assistant":
			contents = append(contents, genai.NewContentFromText(msg.text, genai.RoleModel))
		}
	}

	return contents, systemInstruction
}

// Verify GeminiRuntime implements Runtime
var _ Runtime = (*GeminiRuntime)(nil)
