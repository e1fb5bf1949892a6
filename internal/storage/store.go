// Package storage persists runs and their reported interactions.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"ixrna/pkg/api"
)

// Run describes one CLI invocation.
type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Version   string    `json:"version"`
	Energy    string    `json:"energy"`
	Mode      string    `json:"mode"`
	Args      []string  `json:"args"`
}

// Store is implemented by the in-memory and SQLite backends. Interactions
// are keyed by (run, target, query, rank); saving the same key again
// replaces the row.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	SaveInteractions(ctx context.Context, runID string, list []api.InteractionV1) error
	ListInteractions(ctx context.Context, runID string) ([]api.InteractionV1, error)
}

// Backends accepted by Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// ErrBackendUnavailable is returned by Open for a backend this binary was
// built without.
var ErrBackendUnavailable = errors.New("interaction store backend unavailable")

// Open returns an uninitialized store. path names the database file and is
// ignored by the memory backend.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		return openSQLite(path)
	default:
		return nil, fmt.Errorf("unknown interaction store backend %q", backend)
	}
}

// Release closes st if its backend holds a database handle.
func Release(st Store) error {
	if c, ok := st.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
