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


// Package shortlist narrows the candidate space of a target system with
// precomputed embeddings before lexical scoring runs.
package shortlist

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/rishika0212/termalign/ai"
	"github.com/rishika0212/termalign/core"
	"github.com/rishika0212/termalign/storage"
)

const (
	// DefaultTopK is the shortlist size per source concept.
	DefaultTopK = 50

	// DefaultEmbedBatchSize is the chunk size for embedding requests during
	// precomputation.
	DefaultEmbedBatchSize = 32
)

// Final-score blend weights. The semantic component is fixed at full weight
// for every shortlisted candidate; lexical and back-translation similarity
// modulate the rest.
const (
	semanticWeight = 0.50
	lexicalWeight  = 0.35
	backWeight     = 0.15
)

// FinalScore blends a candidate's lexical score and its concept's
// back-translation similarity into the 0-100 ranking score used for
// shortlisted candidates.
func FinalScore(lexical, backSim float64) float64 {
	return 100 * (semanticWeight + lexicalWeight*lexical/100 + backWeight*backSim/100)
}

// Shortlister ranks target codes by embedding similarity against precomputed
// per-code vectors. It is an accelerator, not a gate: any failure to embed
// or load degrades to no shortlist and the caller scores the full code set.
type Shortlister struct {
	embedder ai.Embedder
	store    storage.EmbeddingRepository
	topK     int
	logger   *slog.Logger

	mu     sync.Mutex
	loaded map[string]*core.EmbeddingArtifact
}

// ShortlisterOption configures a Shortlister.
type ShortlisterOption func(*Shortlister)

// WithTopK sets the shortlist size.
func WithTopK(k int) ShortlisterOption {
	return func(s *Shortlister) {
		s.topK = k
	}
}

// NewShortlister creates a Shortlister over an embedder and an artifact store.
func NewShortlister(embedder ai.Embedder, store storage.EmbeddingRepository, opts ...ShortlisterOption) *Shortlister {
	s := &Shortlister{
		embedder: embedder,
		store:    store,
		topK:     DefaultTopK,
		logger:   slog.Default().With("component", "shortlister"),
		loaded:   make(map[string]*core.EmbeddingArtifact),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Shortlist returns the topK target codes of a system ranked by embedding
// similarity to the English text. The second return value reports whether a
// shortlist was produced; false means the caller should fall back to the
// full code set. Degradation is silent by design: a missing artifact or a
// failing embedder must never fail the pipeline.
func (s *Shortlister) Shortlist(ctx context.Context, system, englishText string) ([]string, bool) {
	artifact := s.artifact(ctx, system)
	if artifact == nil || len(artifact.Codes) == 0 {
		return nil, false
	}

	vector, err := s.embedder.EmbedText(ctx, englishText)
	if err != nil || len(vector) == 0 {
		s.logger.Debug("embedding failed, skipping shortlist", "system", system, "err", err)
		return nil, false
	}
	vector = NormalizeVector(vector)

	type scored struct {
		code  string
		score float32
	}
	ranked := make([]scored, len(artifact.Codes))
	for i, code := range artifact.Codes {
		ranked[i] = scored{code: code, score: Dot(vector, artifact.Vectors[i])}
	}
	slices.SortFunc(ranked, func(a, b scored) int {
		if a.score > b.score {
			return -1
		}
		if a.score < b.score {
			return 1
		}
		// Stable output for equal scores
		if a.code < b.code {
			return -1
		}
		if a.code > b.code {
			return 1
		}
		return 0
	})

	k := s.topK
	if k > len(ranked) {
		k = len(ranked)
	}
	codes := make([]string, k)
	for i := 0; i < k; i++ {
		codes[i] = ranked[i].code
	}
	return codes, true
}

// Precompute embeds every alias of every entry, averages the alias vectors
// per code, and stores the normalized result as the system's artifact.
func (s *Shortlister) Precompute(ctx context.Context, system string, aliases []*core.TargetAlias, batchSize int) error {
	if batchSize < 1 {
		batchSize = DefaultEmbedBatchSize
	}

	// Flatten to one embedding request per alias, remembering which entry
	// each belongs to
	var texts []string
	var owner []int
	for i, entry := range aliases {
		for _, label := range entry.Aliases {
			texts = append(texts, label)
			owner = append(owner, i)
		}
	}
	if len(texts) == 0 {
		return errors.New("no alias labels to embed")
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}
		chunk, err := s.embedder.EmbedTexts(ctx, texts[start:end])
		if err != nil {
			return err
		}
		vectors = append(vectors, chunk...)
	}

	// Average the alias vectors of each entry
	sums := make([][]float64, len(aliases))
	counts := make([]int, len(aliases))
	for vi, vec := range vectors {
		i := owner[vi]
		if sums[i] == nil {
			sums[i] = make([]float64, len(vec))
		}
		for d, val := range vec {
			sums[i][d] += float64(val)
		}
		counts[i]++
	}

	artifact := &core.EmbeddingArtifact{System: system}
	for i, entry := range aliases {
		if counts[i] == 0 {
			continue
		}
		mean := make([]float32, len(sums[i]))
		for d, sum := range sums[i] {
			mean[d] = float32(sum / float64(counts[i]))
		}
		artifact.Codes = append(artifact.Codes, entry.Code)
		artifact.Vectors = append(artifact.Vectors, NormalizeVector(mean))
	}

	if err := s.store.SaveArtifact(ctx, artifact); err != nil {
		return err
	}

	// Replace any cached copy
	s.mu.Lock()
	s.loaded[system] = artifact
	s.mu.Unlock()

	s.logger.Info("precomputed embeddings", "system", system, "codes", len(artifact.Codes), "labels", len(texts))
	return nil
}

// artifact returns the cached artifact of a system, loading it from storage
// on first use. Returns nil when no artifact exists.
func (s *Shortlister) artifact(ctx context.Context, system string) *core.EmbeddingArtifact {
	s.mu.Lock()
	defer s.mu.Unlock()

	if artifact, ok := s.loaded[system]; ok {
		return artifact
	}

	artifact, err := s.store.LoadArtifact(ctx, system)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("failed to load embedding artifact", "system", system, "err", err)
		}
		// Negative result is cached too, one probe per run
		s.loaded[system] = nil
		return nil
	}
	s.loaded[system] = artifact
	return artifact
}
