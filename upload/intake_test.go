package upload

import (
	"context"
	"strings"
	"testing"

	"github.com/richinex/palaver/conversation"
	"github.com/richinex/palaver/render"
	"github.com/richinex/palaver/storage"
	"github.com/richinex/palaver/vecstore"
)

// fakeFiles records uploads and attachments.
type fakeFiles struct {
	uploads  []string
	attached [][2]string
}

func (f *fakeFiles) UploadFile(_ context.Context, name string, _ []byte) (string, error) {
	f.uploads = append(f.uploads, name)
	return "file_1", nil
}

func (f *fakeFiles) AttachFile(_ context.Context, storeID, fileID string) error {
	f.attached = append(f.attached, [2]string{storeID, fileID})
	return nil
}

type liveBackend struct{}

func (liveBackend) Probe(_ context.Context, id string) (bool, error) { return id == "vs_ok", nil }
func (liveBackend) Create(_ context.Context, _ string) (string, error) {
	return "vs_created", nil
}

func newIntake(t *testing.T) (*Intake, *fakeFiles, *storage.MemoryStore, *render.Recorder) {
	t.Helper()
	files := &fakeFiles{}
	store := storage.NewMemoryStore()
	rec := vecstore.NewReconciler(liveBackend{}, "store", []string{"vs_ok"}, nil)
	sink := &render.Recorder{}
	return NewIntake(files, rec, store, "test", sink, nil), files, store, sink
}

func TestAddDocumentUploadsAndAttaches(t *testing.T) {
	intake, files, store, sink := newIntake(t)

	if err := intake.AddDocument(context.Background(), "notes.txt", []byte("hello")); err != nil {
		t.Fatalf("AddDocument failed: %v", err)
	}

	if len(files.uploads) != 1 || files.uploads[0] != "notes.txt" {
		t.Errorf("unexpected uploads: %v", files.uploads)
	}
	if len(files.attached) != 1 || files.attached[0] != [2]string{"vs_ok", "file_1"} {
		t.Errorf("unexpected attachments: %v", files.attached)
	}

	// Documents do not enter the conversation log.
	items, _ := store.Items(context.Background(), "test")
	if len(items) != 0 {
		t.Errorf("expected no log items, got %d", len(items))
	}

	status, ok := sink.LastStatus()
	if !ok || status.State != render.StateComplete {
		t.Errorf("expected complete status, got %+v", status)
	}
}

func TestAddImageAppendsUserItem(t *testing.T) {
	intake, files, store, sink := newIntake(t)

	if err := intake.AddImage(context.Background(), "image/png", []byte{1, 2, 3}); err != nil {
		t.Fatalf("AddImage failed: %v", err)
	}

	if len(files.uploads) != 0 {
		t.Errorf("images must not be uploaded to the backend: %v", files.uploads)
	}

	items, _ := store.Items(context.Background(), "test")
	if len(items) != 1 {
		t.Fatalf("expected 1 log item, got %d", len(items))
	}
	item := items[0]
	if item.Role != conversation.RoleUser || len(item.ImageParts) != 1 {
		t.Fatalf("unexpected item: %+v", item)
	}
	if !strings.HasPrefix(item.ImageParts[0].Src, "data:image/png;base64,") {
		t.Errorf("expected data URI, got %q", item.ImageParts[0].Src)
	}

	// The image is echoed as a user bubble.
	bubbles := sink.Bubbles()
	if len(bubbles) != 1 || bubbles[0].ImageSrc == "" {
		t.Errorf("expected an image bubble, got %+v", bubbles)
	}
}

func TestAddDispatchesByMIMEType(t *testing.T) {
	intake, files, store, _ := newIntake(t)
	ctx := context.Background()

	if err := intake.Add(ctx, "a.txt", "text/plain", []byte("doc")); err != nil {
		t.Fatalf("Add document failed: %v", err)
	}
	if err := intake.Add(ctx, "b.png", "image/png", []byte{9}); err != nil {
		t.Fatalf("Add image failed: %v", err)
	}
	if err := intake.Add(ctx, "c.bin", "application/octet-stream", []byte{0}); err == nil {
		t.Error("expected error for unsupported type")
	}

	if len(files.uploads) != 1 {
		t.Errorf("expected 1 document upload, got %d", len(files.uploads))
	}
	items, _ := store.Items(ctx, "test")
	if len(items) != 1 {
		t.Errorf("expected 1 image item, got %d", len(items))
	}
}
