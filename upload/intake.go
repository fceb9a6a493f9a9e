// Package upload handles files the user attaches to a conversation.
//
// Text documents are uploaded to the remote backend and attached to the
// reconciled indexing store so file search can consult them. Images become
// user messages in the conversation log, stored as data URIs, and are
// visible to the agent on the next turn.
package upload

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/richinex/palaver/conversation"
	"github.com/richinex/palaver/render"
	"github.com/richinex/palaver/storage"
	"github.com/richinex/palaver/vecstore"
)

// Intake routes uploaded files to the right destination.
type Intake struct {
	files      vecstore.FileBackend
	reconciler *vecstore.Reconciler
	store      storage.ConversationStore
	channel    string
	sink       render.Sink
	logger     *slog.Logger
}

// NewIntake creates an intake for one conversation channel. A nil logger
// falls back to slog.Default().
func NewIntake(files vecstore.FileBackend, reconciler *vecstore.Reconciler, store storage.ConversationStore, channel string, sink render.Sink, logger *slog.Logger) *Intake {
	if logger == nil {
		logger = slog.Default()
	}
	return &Intake{
		files:      files,
		reconciler: reconciler,
		store:      store,
		channel:    channel,
		sink:       sink,
		logger:     logger,
	}
}

// Add dispatches a file by MIME type: text documents go to the indexing
// store, images into the conversation log. Other types are rejected.
func (i *Intake) Add(ctx context.Context, name, mimeType string, data []byte) error {
	switch {
	case strings.HasPrefix(mimeType, "text/"):
		return i.AddDocument(ctx, name, data)
	case strings.HasPrefix(mimeType, "image/"):
		return i.AddImage(ctx, mimeType, data)
	default:
		return fmt.Errorf("unsupported upload type: %s", mimeType)
	}
}

// AddDocument uploads document bytes and attaches them to the indexing
// store, revalidating the store id first.
func (i *Intake) AddDocument(ctx context.Context, name string, data []byte) error {
	i.sink.Emit(render.SetStatus{Label: "⏳ Uploading file...", State: render.StateRunning})

	storeID, err := i.reconciler.Ensure(ctx)
	if err != nil {
		return err
	}

	fileID, err := i.files.UploadFile(ctx, name, data)
	if err != nil {
		return fmt.Errorf("failed to upload document %q: %w", name, err)
	}

	i.sink.Emit(render.SetStatus{Label: "⏳ Attaching file...", State: render.StateRunning})

	if err := i.files.AttachFile(ctx, storeID, fileID); err != nil {
		return fmt.Errorf("failed to attach document %q: %w", name, err)
	}

	i.sink.Emit(render.SetStatus{Label: "✅ File uploaded", State: render.StateComplete})
	i.logger.Info("document attached to indexing store", "name", name, "store", storeID, "file", fileID)
	return nil
}

// AddImage appends image bytes to the conversation log as a user message
// and echoes it as a user bubble.
func (i *Intake) AddImage(ctx context.Context, mimeType string, data []byte) error {
	i.sink.Emit(render.SetStatus{Label: "⏳ Uploading image...", State: render.StateRunning})

	src := conversation.DataURI(mimeType, data)
	item := conversation.NewUserImage(conversation.ImagePart{Src: src})
	if err := i.store.Append(ctx, i.channel, []conversation.Item{item}); err != nil {
		return fmt.Errorf("failed to persist image: %w", err)
	}

	i.sink.Emit(render.SetStatus{Label: "✅ Image uploaded", State: render.StateComplete})
	i.sink.Emit(render.ShowBubble{Role: string(conversation.RoleUser), ImageSrc: src})
	return nil
}
