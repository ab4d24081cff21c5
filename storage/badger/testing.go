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

import "github.com/rishika0212/termalign/storage"

// Stores bundles the repositories that share one backend.
type Stores struct {
	Concepts     storage.ConceptRepository
	Translations storage.TranslationRepository
	Mappings     storage.MappingRepository
	Aliases      storage.AliasRepository
	Embeddings   storage.EmbeddingRepository

	backend *Backend
}

// NewStores creates all repositories on an already opened backend.
func NewStores(backend *Backend) (*Stores, error) {
	concepts, err := NewConceptRepository(backend)
	if err != nil {
		return nil, err
	}
	translations, err := NewTranslationRepository(backend)
	if err != nil {
		return nil, err
	}
	mappings, err := NewMappingRepository(backend)
	if err != nil {
		return nil, err
	}
	aliases, err := NewAliasRepository(backend)
	if err != nil {
		return nil, err
	}
	embeddings, err := NewEmbeddingRepository(backend)
	if err != nil {
		return nil, err
	}

	return &Stores{
		Concepts:     concepts,
		Translations: translations,
		Mappings:     mappings,
		Aliases:      aliases,
		Embeddings:   embeddings,
		backend:      backend,
	}, nil
}

// OpenStores opens a backend at path and creates all repositories on it.
func OpenStores(path string) (*Stores, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	stores, err := NewStores(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return stores, nil
}

// NewMemoryStores creates in-memory repositories for testing.
// Caller must close the stores when done.
func NewMemoryStores() (*Stores, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	stores, err := NewStores(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return stores, nil
}

// Close closes the shared backend.
func (s *Stores) Close() error {
	return s.backend.Close()
}
