package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/gitkb/core"
	"github.com/poiesic/gitkb/storage"
)

// KnowledgeRepository implements storage.KnowledgeRepository for BadgerDB.
type KnowledgeRepository struct {
	backend *Backend
}

var _ storage.KnowledgeRepository = (*KnowledgeRepository)(nil)

// NewKnowledgeRepository creates a new KnowledgeRepository.
func NewKnowledgeRepository(backend *Backend) (storage.KnowledgeRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &KnowledgeRepository{
		backend: backend,
	}, nil
}

// Close releases resources. KnowledgeRepository has no resources to release;
// the backend is closed by its owner.
func (r *KnowledgeRepository) Close() error {
	return nil
}

// ReplaceEntries atomically replaces the stored snapshot.
func (r *KnowledgeRepository) ReplaceEntries(ctx context.Context, entries ...core.KnowledgeEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if err := core.ValidateEntries(entries); err != nil {
		return err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		stale, err := collectEntryKeys(tx)
		if err != nil {
			return err
		}
		for _, key := range stale {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}

		for i := range entries {
			key := makeEntryKey(uint64(i))
			if err := tx.Set(key, storage.MarshalKnowledgeEntry(&entries[i])); err != nil {
				return err
			}
		}

		if err := tx.Set([]byte(knowledgeCountKey), storage.MarshalID(core.ID(len(entries)))); err != nil {
			return err
		}
		digest := core.DigestEntries(entries)
		if err := tx.Set([]byte(knowledgeDigestKey), storage.MarshalID(digest)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	r.backend.logger.Debug("knowledge snapshot replaced", "entries", len(entries))
	return nil
}

// LoadEntries returns the stored entries in insertion order after checking the digest.
func (r *KnowledgeRepository) LoadEntries(ctx context.Context) ([]core.KnowledgeEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var entries []core.KnowledgeEntry
	var digest, count core.ID

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		if digest, err = readID(tx, knowledgeDigestKey); err != nil {
			return err
		}
		if count, err = readID(tx, knowledgeCountKey); err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = entryKeyPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var entry *core.KnowledgeEntry
			err := iter.Item().Value(func(val []byte) error {
				var unmarshalErr error
				entry, unmarshalErr = storage.UnmarshalKnowledgeEntry(val)
				return unmarshalErr
			})
			if err != nil {
				return fmt.Errorf("%w: %w", storage.ErrCorruptSnapshot, err)
			}
			entries = append(entries, *entry)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	if core.ID(len(entries)) != count {
		return nil, fmt.Errorf("%w: expected %d entries, found %d", storage.ErrCorruptSnapshot, count, len(entries))
	}
	if core.DigestEntries(entries) != digest {
		return nil, fmt.Errorf("%w: digest mismatch", storage.ErrCorruptSnapshot)
	}
	return entries, nil
}

// Digest returns the digest recorded with the stored snapshot.
func (r *KnowledgeRepository) Digest(ctx context.Context) (core.ID, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if r.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	var digest core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		digest, err = readID(tx, knowledgeDigestKey)
		return err
	}, false)
	return digest, err
}

// readID reads an ID-encoded value, mapping a missing key to storage.ErrNotFound.
func readID(tx *badger.Txn, key string) (core.ID, error) {
	item, err := tx.Get([]byte(key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return 0, storage.ErrNotFound
		}
		return 0, err
	}

	var id core.ID
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		id, unmarshalErr = storage.UnmarshalID(val)
		return unmarshalErr
	})
	return id, err
}

// collectEntryKeys returns copies of every entry key in the current snapshot.
func collectEntryKeys(tx *badger.Txn) ([][]byte, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = entryKeyPrefix()
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var keys [][]byte
	for iter.Rewind(); iter.Valid(); iter.Next() {
		keys = append(keys, iter.Item().KeyCopy(nil))
	}
	return keys, nil
}
