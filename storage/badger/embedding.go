package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/rishika0212/termalign/core"
	"github.com/rishika0212/termalign/storage"
)

// EmbeddingRepository implements storage.EmbeddingRepository for BadgerDB.
type EmbeddingRepository struct {
	backend *Backend
}

var _ storage.EmbeddingRepository = (*EmbeddingRepository)(nil)

// NewEmbeddingRepository creates a new EmbeddingRepository.
func NewEmbeddingRepository(backend *Backend) (*EmbeddingRepository, error) {
	return &EmbeddingRepository{
		backend: backend,
	}, nil
}

// Close releases resources. EmbeddingRepository has no resources to release.
func (r *EmbeddingRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *EmbeddingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// SaveArtifact stores an embedding artifact, replacing any previous artifact
// for the same system.
func (r *EmbeddingRepository) SaveArtifact(ctx context.Context, artifact *core.EmbeddingArtifact) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeEmbeddingKey(artifact.System)
		if err := tx.Set(key, storage.MarshalEmbeddingArtifact(artifact)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadArtifact retrieves the embedding artifact of a target system.
// Returns storage.ErrNotFound if no artifact was saved.
func (r *EmbeddingRepository) LoadArtifact(ctx context.Context, system string) (*core.EmbeddingArtifact, error) {
	var artifact *core.EmbeddingArtifact

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeEmbeddingKey(system))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			artifact, err = storage.UnmarshalEmbeddingArtifact(val)
			return err
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return artifact, nil
}
