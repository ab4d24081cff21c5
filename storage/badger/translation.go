// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/rishika0212/termalign/core"
	"github.com/rishika0212/termalign/storage"
)

// TranslationRepository implements storage.TranslationRepository for BadgerDB.
type TranslationRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.TranslationRepository = (*TranslationRepository)(nil)

// NewTranslationRepository creates a new TranslationRepository.
func NewTranslationRepository(backend *Backend) (*TranslationRepository, error) {
	return &TranslationRepository{
		backend: backend,
		logger:  slog.Default().With("component", "translation-repo"),
	}, nil
}

// Close releases resources. TranslationRepository has no resources to release.
func (r *TranslationRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *TranslationRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// GetTranslation retrieves a cached translation. A missing entry returns
// storage.ErrNotFound. A corrupt entry is logged and treated as a miss so a
// fresh translation replaces it.
func (r *TranslationRepository) GetTranslation(ctx context.Context, system, code string) (*core.TranslationRecord, error) {
	var record *core.TranslationRecord

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeTranslationKey(system, code))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			record, err = storage.UnmarshalTranslationRecord(val)
			if err != nil {
				r.logger.Warn("corrupt translation cache entry, treating as miss",
					"system", system, "code", code, "err", err)
				record = nil
				return storage.ErrNotFound
			}
			return nil
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return record, nil
}

// PutTranslation stores a translation. Last write wins for the same
// (system, code) pair.
func (r *TranslationRepository) PutTranslation(ctx context.Context, record *core.TranslationRecord) error {
	if err := core.ValidateTranslationRecord(record); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeTranslationKey(record.System, record.Code)
		if err := tx.Set(key, storage.MarshalTranslationRecord(record)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
