package storage

import (
	"context"

	"github.com/rishika0212/termalign/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ConceptRepository provides operations for managing source concepts.
type ConceptRepository interface {
	Repository

	// AddConcepts adds one or more source concepts to storage.
	// Re-adding an existing (system, code) pair overwrites the stored concept.
	AddConcepts(ctx context.Context, concepts ...*core.SourceConcept) error

	// ListConcepts retrieves every concept of a coding system, ordered by code.
	ListConcepts(ctx context.Context, system string) ([]*core.SourceConcept, error)

	// CodeExists reports whether a (system, code) pair is present.
	CodeExists(ctx context.Context, system, code string) (bool, error)
}

// TranslationRepository caches translation results keyed by (system, code).
type TranslationRepository interface {
	Repository

	// GetTranslation retrieves a cached translation.
	// Returns ErrNotFound if no cached entry exists. A corrupt entry is
	// treated as a miss.
	GetTranslation(ctx context.Context, system, code string) (*core.TranslationRecord, error)

	// PutTranslation stores a translation, overwriting any previous entry
	// for the same (system, code) pair.
	PutTranslation(ctx context.Context, record *core.TranslationRecord) error
}

// MappingRepository persists accepted concept mappings.
type MappingRepository interface {
	Repository

	// UpsertMappings stores mapping records keyed by their identity tuple.
	// A record whose tuple is already present is left untouched. Returns the
	// number of newly inserted records.
	UpsertMappings(ctx context.Context, records ...*core.MappingRecord) (int, error)

	// CountMappings returns the total number of stored mappings.
	CountMappings(ctx context.Context) (int, error)

	// ListMappings retrieves every mapping originating from a source system.
	// An empty sourceSystem retrieves all mappings.
	ListMappings(ctx context.Context, sourceSystem string) ([]*core.MappingRecord, error)
}

// AliasRepository persists built alias indexes together with the fingerprint
// of the source files they were built from.
type AliasRepository interface {
	Repository

	// SaveAliasIndex stores the alias entries and fingerprint of a target
	// system, replacing any previous index for that system.
	SaveAliasIndex(ctx context.Context, system string, aliases []*core.TargetAlias, fp core.AliasFingerprint) error

	// LoadAliasIndex retrieves the alias entries of a target system.
	// Returns ErrNotFound if no index was saved.
	LoadAliasIndex(ctx context.Context, system string) ([]*core.TargetAlias, error)

	// GetFingerprint retrieves the fingerprint the stored index was built
	// from. Returns ErrNotFound if no index was saved.
	GetFingerprint(ctx context.Context, system string) (core.AliasFingerprint, error)
}

// EmbeddingRepository persists precomputed embedding artifacts per target
// system.
type EmbeddingRepository interface {
	Repository

	// SaveArtifact stores an embedding artifact, replacing any previous
	// artifact for the same system.
	SaveArtifact(ctx context.Context, artifact *core.EmbeddingArtifact) error

	// LoadArtifact retrieves the embedding artifact of a target system.
	// Returns ErrNotFound if no artifact was saved.
	LoadArtifact(ctx context.Context, system string) (*core.EmbeddingArtifact, error)
}
