// OpenAI vector store backend using the go-openai library.
//
// Information Hiding:
// - API endpoint and authentication
// - Vector store and file upload request/response formats
// - Not-found vs transport error classification
package vecstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIBackend implements Backend and FileBackend against the OpenAI
// vector stores API.
type OpenAIBackend struct {
	client *openai.Client
}

// NewOpenAIBackend creates a backend with the given API key.
func NewOpenAIBackend(apiKey string) *OpenAIBackend {
	return &OpenAIBackend{client: openai.NewClient(apiKey)}
}

// NewOpenAIBackendWithClient creates a backend around an existing client.
func NewOpenAIBackendWithClient(client *openai.Client) *OpenAIBackend {
	return &OpenAIBackend{client: client}
}

// Probe checks whether a vector store id resolves. Only an HTTP 404 counts
// as not-found; any other failure is a backend error.
func (b *OpenAIBackend) Probe(ctx context.Context, id string) (bool, error) {
	_, err := b.client.RetrieveVectorStore(ctx, id)
	if err == nil {
		return true, nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusNotFound {
		return false, nil
	}
	return false, fmt.Errorf("retrieve vector store: %w", err)
}

// Create creates a vector store with a human-readable name.
func (b *OpenAIBackend) Create(ctx context.Context, name string) (string, error) {
	store, err := b.client.CreateVectorStore(ctx, openai.VectorStoreRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("create vector store: %w", err)
	}
	return store.ID, nil
}

// UploadFile uploads raw file bytes and returns the file id.
func (b *OpenAIBackend) UploadFile(ctx context.Context, name string, data []byte) (string, error) {
	file, err := b.client.CreateFileBytes(ctx, openai.FileBytesRequest{
		Name:    name,
		Bytes:   data,
		Purpose: openai.PurposeAssistants,
	})
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}
	return file.ID, nil
}

// AttachFile links an uploaded file to a vector store so it gets indexed
// for file search.
func (b *OpenAIBackend) AttachFile(ctx context.Context, storeID, fileID string) error {
	_, err := b.client.CreateVectorStoreFile(ctx, storeID, openai.VectorStoreFileRequest{
		FileID: fileID,
	})
	if err != nil {
		return fmt.Errorf("attach file to vector store: %w", err)
	}
	return nil
}

// Verify OpenAIBackend implements both backend interfaces
var _ Backend = (*OpenAIBackend)(nil)
var _ FileBackend = (*OpenAIBackend)(nil)
