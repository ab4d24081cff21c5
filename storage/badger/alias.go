package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/rishika0212/termalign/core"
	"github.com/rishika0212/termalign/storage"
)

// AliasRepository implements storage.AliasRepository for BadgerDB.
type AliasRepository struct {
	backend *Backend
}

var _ storage.AliasRepository = (*AliasRepository)(nil)

// NewAliasRepository creates a new AliasRepository.
func NewAliasRepository(backend *Backend) (*AliasRepository, error) {
	return &AliasRepository{
		backend: backend,
	}, nil
}

// Close releases resources. AliasRepository has no resources to release.
func (r *AliasRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *AliasRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// SaveAliasIndex stores the alias entries and fingerprint of a target system.
// Stale entries from a previous build are removed first so a shrunken source
// directory doesn't leave orphans behind.
func (r *AliasRepository) SaveAliasIndex(ctx context.Context, system string, aliases []*core.TargetAlias, fp core.AliasFingerprint) error {
	// Collect keys of the previous index in a read pass. Badger write
	// transactions have a size limit, so deletes and writes go through
	// WriteBatch-sized chunks via a single transaction here; alias indexes
	// for one system stay well below the limit in practice.
	var staleKeys [][]byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeAliasSystemPrefix(system)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			staleKeys = append(staleKeys, iter.Item().KeyCopy(nil))
		}
		return nil
	}, false)
	if err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, key := range staleKeys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		for _, alias := range aliases {
			key := makeAliasEntryKey(system, alias.Code)
			if err := tx.Set(key, storage.MarshalTargetAlias(alias)); err != nil {
				return err
			}
		}
		if err := tx.Set(makeAliasMetaKey(system), storage.MarshalAliasFingerprint(fp)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadAliasIndex retrieves the alias entries of a target system.
// Returns storage.ErrNotFound if no index was saved.
func (r *AliasRepository) LoadAliasIndex(ctx context.Context, system string) ([]*core.TargetAlias, error) {
	var aliases []*core.TargetAlias

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if _, err := tx.Get(makeAliasMetaKey(system)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeAliasSystemPrefix(system)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				alias, err := storage.UnmarshalTargetAlias(val)
				if err != nil {
					return err
				}
				aliases = append(aliases, alias)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return aliases, nil
}

// GetFingerprint retrieves the fingerprint the stored index was built from.
// Returns storage.ErrNotFound if no index was saved.
func (r *AliasRepository) GetFingerprint(ctx context.Context, system string) (core.AliasFingerprint, error) {
	var fp core.AliasFingerprint

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeAliasMetaKey(system))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			fp, err = storage.UnmarshalAliasFingerprint(val)
			return err
		})
	}, false)

	return fp, err
}
