// Package store persists calendar events. The in-memory event list is
// canonical; every mutation is mirrored synchronously to durable storage
// and a failed write surfaces as a StorageError rather than being dropped.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/gridcal/gridcal/internal/model"
)

var ErrNotFound = errors.New("store: event not found")

// StorageError wraps a durable-write or read failure with enough context
// for the status bar and the log.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store is the event repository. All reads return events in insertion
// order; callers that need a different order sort their own copy.
type Store interface {
	// Add persists a new event, assigning an id when the caller left it
	// empty, and returns the stored record.
	Add(ctx context.Context, ev model.Event) (model.Event, error)
	// Update replaces the event with the same id. ErrNotFound when no
	// such event exists.
	Update(ctx context.Context, ev model.Event) error
	// Remove deletes by id and reports whether anything was removed.
	Remove(ctx context.Context, id string) (bool, error)
	// All returns a copy of every stored event in insertion order.
	All(ctx context.Context) ([]model.Event, error)
	Close() error
}
