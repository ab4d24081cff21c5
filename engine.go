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


package termalign

import (
	"log/slog"

	"github.com/rishika0212/termalign/ai"
	"github.com/rishika0212/termalign/ai/openai"
	"github.com/rishika0212/termalign/config"
	"github.com/rishika0212/termalign/mapping"
	"github.com/rishika0212/termalign/shortlist"
	"github.com/rishika0212/termalign/storage"
	badgerstore "github.com/rishika0212/termalign/storage/badger"
	"github.com/rishika0212/termalign/translate"
)

// Engine is the embeddable entry point: it owns the stores and AI provider
// and hands out configured pipeline components.
type Engine struct {
	stores   *badgerstore.Stores
	provider ai.AIProvider
	cfg      *config.Config
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	cfg      *config.Config
	provider ai.AIProvider
}

// WithAIConfig sets the AI service configuration.
func WithAIConfig(aiConfig *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = aiConfig
	}
}

// WithConfig sets the pipeline configuration.
func WithConfig(cfg *config.Config) EngineOption {
	return func(o *engineOptions) {
		o.cfg = cfg
	}
}

// WithProvider injects an AI provider directly, bypassing the OpenAI client
// construction. Tests use this with ai/mock.
func WithProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// NewEngine opens the database at filePath and wires the AI provider.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
		cfg:      config.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if err := options.cfg.Validate(); err != nil {
		return nil, err
	}

	stores, err := badgerstore.OpenStores(filePath)
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			stores.Close()
			return nil, err
		}
	}

	return &Engine{
		stores:   stores,
		provider: provider,
		cfg:      options.cfg,
		logger:   slog.Default(),
	}, nil
}

// Close releases the AI provider and the underlying database.
func (e *Engine) Close() error {
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}
	if err := e.stores.Close(); err != nil {
		e.logger.Error("error closing storage backend", "err", err)
		return err
	}
	return nil
}

func (e *Engine) ConceptStore() storage.ConceptRepository {
	return e.stores.Concepts
}

func (e *Engine) MappingStore() storage.MappingRepository {
	return e.stores.Mappings
}

func (e *Engine) AliasStore() storage.AliasRepository {
	return e.stores.Aliases
}

// NewValidator builds a translation validator for one source system, loading
// that system's synonym overrides from the configured overrides directory.
func (e *Engine) NewValidator(sourceSystem string, opts ...translate.Option) (*translate.Validator, error) {
	overrides, err := translate.LoadSystemOverrides(e.cfg.OverridesDir, sourceSystem)
	if err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		opts = append([]translate.Option{translate.WithOverrides(sourceSystem, overrides)}, opts...)
	}
	return translate.NewValidator(e.provider.Translator(), e.stores.Translations, opts...), nil
}

// NewShortlister builds an embedding shortlister over the stored artifacts.
func (e *Engine) NewShortlister(opts ...shortlist.ShortlisterOption) *shortlist.Shortlister {
	opts = append([]shortlist.ShortlisterOption{shortlist.WithTopK(e.cfg.TopK)}, opts...)
	return shortlist.NewShortlister(e.provider.Embedder(), e.stores.Embeddings, opts...)
}

// NewOrchestrator builds an alignment orchestrator for one source system.
func (e *Engine) NewOrchestrator(sourceSystem string, opts ...mapping.OrchestratorOption) (*mapping.Orchestrator, error) {
	validator, err := e.NewValidator(sourceSystem)
	if err != nil {
		return nil, err
	}
	return mapping.NewOrchestrator(
		e.cfg,
		e.stores.Concepts,
		e.stores.Mappings,
		e.stores.Aliases,
		validator,
		e.NewShortlister(),
		opts...,
	)
}
