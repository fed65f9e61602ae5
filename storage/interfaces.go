package storage

import (
	"context"

	"github.com/poiesic/gitkb/core"
)

// KnowledgeRepository persists snapshots of a knowledge set.
// Implementations must be thread-safe and support concurrent access.
type KnowledgeRepository interface {
	// ReplaceEntries atomically replaces the stored snapshot with entries.
	// Entries are validated first; on error the previous snapshot is left untouched.
	// Insertion order is preserved.
	ReplaceEntries(ctx context.Context, entries ...core.KnowledgeEntry) error

	// LoadEntries returns the stored entries in insertion order.
	// Returns ErrNotFound if no snapshot has been written.
	// Returns ErrCorruptSnapshot if the stored digest does not match the entries.
	LoadEntries(ctx context.Context) ([]core.KnowledgeEntry, error)

	// Digest returns the digest recorded with the stored snapshot.
	// Returns ErrNotFound if no snapshot has been written.
	Digest(ctx context.Context) (core.ID, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
