package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/rishika0212/termalign/core"
	"github.com/rishika0212/termalign/storage"
)

// ConceptRepository implements storage.ConceptRepository for BadgerDB.
type ConceptRepository struct {
	backend *Backend
}

var _ storage.ConceptRepository = (*ConceptRepository)(nil)

// NewConceptRepository creates a new ConceptRepository.
func NewConceptRepository(backend *Backend) (*ConceptRepository, error) {
	return &ConceptRepository{
		backend: backend,
	}, nil
}

// Close releases resources. ConceptRepository has no resources to release.
func (r *ConceptRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ConceptRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddConcepts adds one or more source concepts to storage. Existing
// (system, code) pairs are overwritten.
func (r *ConceptRepository) AddConcepts(ctx context.Context, concepts ...*core.SourceConcept) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, concept := range concepts {
			if err := core.ValidateSourceConcept(concept); err != nil {
				return err
			}
			key := makeConceptKey(concept.System, concept.Code)
			if err := tx.Set(key, storage.MarshalSourceConcept(concept)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// ListConcepts retrieves every concept of a coding system. Key order gives
// results sorted by code.
func (r *ConceptRepository) ListConcepts(ctx context.Context, system string) ([]*core.SourceConcept, error) {
	var concepts []*core.SourceConcept

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeConceptSystemPrefix(system)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				concept, err := storage.UnmarshalSourceConcept(val)
				if err != nil {
					return err
				}
				concepts = append(concepts, concept)
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
	return concepts, nil
}

// CodeExists reports whether a (system, code) pair is present.
func (r *ConceptRepository) CodeExists(ctx context.Context, system, code string) (bool, error) {
	exists := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeConceptKey(system, code))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		exists = true
		return nil
	}, false)
	return exists, err
}
