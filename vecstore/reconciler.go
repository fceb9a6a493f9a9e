// Package vecstore keeps a remote indexing store valid for the session.
//
// The store is the searchable corpus uploaded documents are attached to. A
// remembered store id is a hint, not a guarantee: it may have expired or been
// deleted by another process. The Reconciler probes before every dependent
// use and creates a fresh store only when no candidate resolves.
package vecstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrUnavailable indicates the remote backend could not be reached. It is
// distinct from "store not found": only not-found advances the candidate
// loop, so a transient outage never causes a duplicate store.
var ErrUnavailable = errors.New("indexing store backend unavailable")

// Backend is the remote store API the reconciler depends on.
type Backend interface {
	// Probe is a read-only existence check. A false result with nil error
	// means the id does not resolve; a non-nil error means the backend
	// itself failed and should be wrapped as ErrUnavailable by callers.
	Probe(ctx context.Context, id string) (bool, error)

	// Create creates a new store with a human-readable name and returns its
	// freshly issued id.
	Create(ctx context.Context, name string) (string, error)
}

// FileBackend uploads document bytes and attaches them to a store so a
// file-search capability can consult them.
type FileBackend interface {
	// UploadFile uploads raw file bytes and returns the backend file id.
	UploadFile(ctx context.Context, name string, data []byte) (string, error)

	// AttachFile links an uploaded file to the store with the given id.
	AttachFile(ctx context.Context, storeID, fileID string) error
}

// Reconciler ensures exactly one indexing store id is current for the
// process session. Safe for concurrent use; Ensure is cheap (one probe round
// trip when the remembered id is still live).
type Reconciler struct {
	backend   Backend
	name      string
	fallbacks []string
	logger    *slog.Logger

	mu       sync.Mutex
	remember string
}

// NewReconciler creates a reconciler. name is used when a new store must be
// created; fallbacks are historically known ids tried after the remembered
// one. A nil logger falls back to slog.Default().
func NewReconciler(backend Backend, name string, fallbacks []string, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		backend:   backend,
		name:      name,
		fallbacks: fallbacks,
		logger:    logger,
	}
}

// Ensure returns the id of a store that exists right now, remembering it for
// the next call. Candidates are probed in order: the remembered id first,
// then the configured fallbacks. If none resolves, a new store is created.
func (r *Reconciler) Ensure(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	candidates := make([]string, 0, len(r.fallbacks)+1)
	if r.remember != "" {
		candidates = append(candidates, r.remember)
	}
	candidates = append(candidates, r.fallbacks...)

	for _, cand := range candidates {
		if cand == "" {
			continue
		}
		exists, err := r.backend.Probe(ctx, cand)
		if err != nil {
			return "", fmt.Errorf("probing indexing store %q: %w: %w", cand, ErrUnavailable, err)
		}
		if exists {
			r.remember = cand
			return cand, nil
		}
		r.logger.Debug("indexing store candidate not found", "id", cand)
	}

	id, err := r.backend.Create(ctx, r.name)
	if err != nil {
		return "", fmt.Errorf("creating indexing store %q: %w: %w", r.name, ErrUnavailable, err)
	}
	r.logger.Info("created indexing store", "id", id, "name", r.name)
	r.remember = id
	return id, nil
}
