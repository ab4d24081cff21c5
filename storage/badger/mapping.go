package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/rishika0212/termalign/core"
	"github.com/rishika0212/termalign/storage"
)

// MappingRepository implements storage.MappingRepository for BadgerDB.
type MappingRepository struct {
	backend *Backend
}

var _ storage.MappingRepository = (*MappingRepository)(nil)

// NewMappingRepository creates a new MappingRepository.
func NewMappingRepository(backend *Backend) (*MappingRepository, error) {
	return &MappingRepository{
		backend: backend,
	}, nil
}

// Close releases resources. MappingRepository has no resources to release.
func (r *MappingRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *MappingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// UpsertMappings stores mapping records keyed by the content hash of their
// identity tuple. Records whose tuple is already present are left untouched,
// so re-running a pipeline never duplicates or rewrites mappings. Returns the
// number of newly inserted records.
func (r *MappingRepository) UpsertMappings(ctx context.Context, records ...*core.MappingRecord) (int, error) {
	inserted := 0

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if err := core.ValidateMappingRecord(record); err != nil {
				return err
			}

			key := makeMappingKey(record.RecordID())
			_, err := tx.Get(key)
			if err == nil {
				// Tuple already stored, first write wins
				continue
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}

			if err := tx.Set(key, storage.MarshalMappingRecord(record)); err != nil {
				return err
			}
			inserted++
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// CountMappings returns the total number of stored mappings.
func (r *MappingRepository) CountMappings(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(mappingPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// ListMappings retrieves every mapping originating from a source system.
// An empty sourceSystem retrieves all mappings.
func (r *MappingRepository) ListMappings(ctx context.Context, sourceSystem string) ([]*core.MappingRecord, error) {
	var records []*core.MappingRecord

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(mappingPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				record, err := storage.UnmarshalMappingRecord(val)
				if err != nil {
					return err
				}
				if sourceSystem == "" || record.SourceSystem == sourceSystem {
					records = append(records, record)
				}
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
	return records, nil
}
