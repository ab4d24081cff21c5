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


package translate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rishika0212/termalign/ai"
	"github.com/rishika0212/termalign/core"
	"github.com/rishika0212/termalign/match"
	"github.com/rishika0212/termalign/storage"
	"github.com/rishika0212/termalign/text"
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = 500 * time.Millisecond

	// DefaultBatchSize is the chunk size for batch translation requests.
	DefaultBatchSize = 32
)

// Validator produces validated English translations of source concepts.
// Every translation is round-tripped back to the source language and scored,
// so downstream matching can gate on how much meaning survived. Results are
// cached by (system, code); curated synonym overrides short-circuit both the
// cache and the external service.
type Validator struct {
	translator ai.Translator
	cache      storage.TranslationRepository
	scorer     *match.Scorer
	overrides  map[string]map[string]string
	fixedLang  string
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithOverrides registers curated synonym overrides for a coding system.
// Keys must be normalized source terms.
func WithOverrides(system string, overrides map[string]string) Option {
	return func(v *Validator) {
		v.overrides[system] = overrides
	}
}

// WithFixedLangTag pins the source language tag instead of detecting it per
// text. Some systems publish all their displays in one script, and pinning
// avoids misdetection on short or mixed-script terms.
func WithFixedLangTag(tag string) Option {
	return func(v *Validator) {
		v.fixedLang = tag
	}
}

// WithMaxRetries sets the retry attempt count for external translation calls.
func WithMaxRetries(n int) Option {
	return func(v *Validator) {
		v.maxRetries = n
	}
}

// WithRetryDelay sets the base backoff delay between retries.
func WithRetryDelay(d time.Duration) Option {
	return func(v *Validator) {
		v.retryDelay = d
	}
}

// NewValidator creates a Validator over a translator and a translation cache.
func NewValidator(translator ai.Translator, cache storage.TranslationRepository, opts ...Option) *Validator {
	v := &Validator{
		translator: translator,
		cache:      cache,
		scorer:     match.NewScorer(),
		overrides:  make(map[string]map[string]string),
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
		logger:     slog.Default().With("component", "translate-validator"),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Translate resolves the validated English translation of one concept text.
//
// Resolution order: curated override, English passthrough, cache, external
// service. The first three never touch the network. External failure is not
// fatal: the original text degrades through with a zero back-similarity so
// the pipeline keeps moving and downstream gates handle the low confidence.
func (v *Validator) Translate(ctx context.Context, system, code, display string) (*core.TranslationRecord, error) {
	record, resolved, err := v.resolveLocal(ctx, system, code, display)
	if err != nil {
		return nil, err
	}
	if resolved {
		return record, nil
	}
	return v.translateExternal(ctx, system, code, display, record.SourceLang)
}

// TranslateBatch resolves translations for a slice of concepts. Concepts
// served by passthrough, override, or cache are resolved locally; the rest
// go to the external service in chunks of batchSize. Results are returned in
// input order. Per-concept external failures degrade exactly as in Translate.
func (v *Validator) TranslateBatch(ctx context.Context, system string, concepts []*core.SourceConcept, batchSize int) ([]*core.TranslationRecord, error) {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}

	records := make([]*core.TranslationRecord, len(concepts))
	var pendingIdx []int
	var pendingTexts []string
	var pendingTags []string

	for i, concept := range concepts {
		display := concept.JoinedText()
		record, resolved, err := v.resolveLocal(ctx, system, concept.Code, display)
		if err != nil {
			return nil, err
		}
		if resolved {
			records[i] = record
			continue
		}
		pendingIdx = append(pendingIdx, i)
		pendingTexts = append(pendingTexts, display)
		pendingTags = append(pendingTags, record.SourceLang)
	}

	if len(pendingIdx) == 0 {
		return records, nil
	}
	v.logger.Info("batch translating", "system", system, "pending", len(pendingIdx), "total", len(concepts))

	// Group pending texts by source language so each group can go through
	// the batch API with one tag pair.
	byTag := make(map[string][]int)
	for j, tag := range pendingTags {
		byTag[tag] = append(byTag[tag], j)
	}

	for tag, group := range byTag {
		texts := make([]string, len(group))
		for gi, j := range group {
			texts[gi] = pendingTexts[j]
		}

		forward, backward, err := v.roundTripBatch(ctx, texts, tag, batchSize)
		if err != nil {
			// Degrade the whole group, concept by concept
			v.logger.Warn("batch translation failed, degrading group", "lang", tag, "size", len(group), "err", err)
			for _, j := range group {
				i := pendingIdx[j]
				records[i] = v.degraded(ctx, system, concepts[i].Code, pendingTexts[j], tag)
			}
			continue
		}

		for gi, j := range group {
			i := pendingIdx[j]
			records[i] = v.scoreAndCache(ctx, system, concepts[i].Code, pendingTexts[j], tag, forward[gi], backward[gi])
		}
	}

	return records, nil
}

// resolveLocal serves a translation without the external service when it
// can. The returned bool reports whether the record is final; when false the
// record carries only the detected source language.
func (v *Validator) resolveLocal(ctx context.Context, system, code, display string) (*core.TranslationRecord, bool, error) {
	srcTag := v.fixedLang
	if srcTag == "" {
		srcTag = DetectLangTag(display)
	}

	if english, ok := v.overrides[system][text.Normalize(display)]; ok {
		record := &core.TranslationRecord{
			System:         system,
			Code:           code,
			EnglishText:    english,
			SourceLang:     srcTag,
			BackSimilarity: 100,
			Provenance:     core.ProvenanceOverride,
		}
		if err := v.cache.PutTranslation(ctx, record); err != nil {
			return nil, false, err
		}
		return record, true, nil
	}

	if srcTag == "eng_Latn" {
		return &core.TranslationRecord{
			System:         system,
			Code:           code,
			EnglishText:    display,
			SourceLang:     srcTag,
			BackSimilarity: 100,
			Provenance:     core.ProvenanceFresh,
		}, true, nil
	}

	cached, err := v.cache.GetTranslation(ctx, system, code)
	if err == nil {
		out := *cached
		out.Provenance = core.ProvenanceCache
		return &out, true, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, false, err
	}

	return &core.TranslationRecord{SourceLang: srcTag}, false, nil
}

// translateExternal performs the forward and back translation of one text
// with retries, then scores and caches the result.
func (v *Validator) translateExternal(ctx context.Context, system, code, display, srcTag string) (*core.TranslationRecord, error) {
	var english string
	err := RetryWithBackoff(ctx, func() error {
		var opErr error
		english, opErr = v.translator.Translate(ctx, display, srcTag, "eng_Latn")
		return opErr
	}, v.maxRetries, v.retryDelay)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return v.degraded(ctx, system, code, display, srcTag), nil
	}

	var back string
	err = RetryWithBackoff(ctx, func() error {
		var opErr error
		back, opErr = v.translator.Translate(ctx, english, "eng_Latn", srcTag)
		return opErr
	}, v.maxRetries, v.retryDelay)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return v.degraded(ctx, system, code, display, srcTag), nil
	}

	return v.scoreAndCache(ctx, system, code, display, srcTag, english, back), nil
}

// roundTripBatch forward-translates texts to English and back-translates the
// results, both with retries. Returns the forward and backward slices in
// input order.
func (v *Validator) roundTripBatch(ctx context.Context, texts []string, srcTag string, batchSize int) (forward, backward []string, err error) {
	err = RetryWithBackoff(ctx, func() error {
		var opErr error
		forward, opErr = v.translator.TranslateBatch(ctx, texts, srcTag, "eng_Latn", batchSize)
		return opErr
	}, v.maxRetries, v.retryDelay)
	if err != nil {
		return nil, nil, err
	}

	err = RetryWithBackoff(ctx, func() error {
		var opErr error
		backward, opErr = v.translator.TranslateBatch(ctx, forward, "eng_Latn", srcTag, batchSize)
		return opErr
	}, v.maxRetries, v.retryDelay)
	if err != nil {
		return nil, nil, err
	}
	return forward, backward, nil
}

// scoreAndCache builds the fresh record for a completed round trip, stores
// it in the cache, and returns it. A cache write failure is logged but does
// not fail the translation.
func (v *Validator) scoreAndCache(ctx context.Context, system, code, original, srcTag, english, back string) *core.TranslationRecord {
	backSim := v.scorer.ScoreNormalized(text.Normalize(original), text.Normalize(back))

	record := &core.TranslationRecord{
		System:         system,
		Code:           code,
		EnglishText:    english,
		SourceLang:     srcTag,
		BackSimilarity: backSim,
		Provenance:     core.ProvenanceFresh,
	}
	if err := v.cache.PutTranslation(ctx, record); err != nil {
		v.logger.Warn("failed to cache translation", "system", system, "code", code, "err", err)
	}
	return record
}

// degraded builds the fallback record used when the external service fails:
// the original text passes through untranslated with zero back-similarity so
// downstream gates treat it as unvalidated. Degraded records are never
// cached; the next run gets another chance at a real translation.
func (v *Validator) degraded(ctx context.Context, system, code, display, srcTag string) *core.TranslationRecord {
	v.logger.Warn("translation degraded to original text", "system", system, "code", code, "lang", srcTag)
	return &core.TranslationRecord{
		System:         system,
		Code:           code,
		EnglishText:    display,
		SourceLang:     srcTag,
		BackSimilarity: 0,
		Provenance:     core.ProvenanceFresh,
	}
}
