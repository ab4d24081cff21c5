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


package mapping

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/rishika0212/termalign/alias"
	"github.com/rishika0212/termalign/config"
	"github.com/rishika0212/termalign/core"
	"github.com/rishika0212/termalign/match"
	"github.com/rishika0212/termalign/shortlist"
	"github.com/rishika0212/termalign/storage"
	"github.com/rishika0212/termalign/text"
	"github.com/rishika0212/termalign/translate"
)

// Target names one target system and the directory its release files live in.
type Target struct {
	System   string
	AliasDir string
}

// Orchestrator drives a full alignment run for one source system against one
// or more target systems.
type Orchestrator struct {
	cfg       *config.Config
	concepts  storage.ConceptRepository
	mappings  storage.MappingRepository
	aliases   storage.AliasRepository
	validator *translate.Validator
	matcher   *Matcher
	classify  match.ClassifyThresholds
	pool      *ants.Pool
	logger    *slog.Logger
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator) error

// WithClassifyThresholds overrides the relationship cascade cutoffs.
func WithClassifyThresholds(th match.ClassifyThresholds) OrchestratorOption {
	return func(o *Orchestrator) error {
		o.classify = th
		return nil
	}
}

// NewOrchestrator wires the pipeline together. The shortlister may be nil;
// matching then relies on the lexical prefilter alone.
func NewOrchestrator(
	cfg *config.Config,
	concepts storage.ConceptRepository,
	mappings storage.MappingRepository,
	aliases storage.AliasRepository,
	validator *translate.Validator,
	shortlister *shortlist.Shortlister,
	opts ...OrchestratorOption,
) (*Orchestrator, error) {
	poolSize := cfg.Workers
	if poolSize < 1 {
		poolSize = runtime.NumCPU() / 2
		if poolSize < 1 {
			poolSize = 1
		}
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	scorer := match.NewScorer()
	prefilter := match.NewPrefilter(cfg.MinTokenOverlap, cfg.Fast)

	o := &Orchestrator{
		cfg:       cfg,
		concepts:  concepts,
		mappings:  mappings,
		aliases:   aliases,
		validator: validator,
		matcher:   NewMatcher(scorer, prefilter, shortlister),
		classify:  match.DefaultClassifyThresholds(),
		pool:      pool,
		logger:    slog.Default().With("component", "orchestrator"),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			pool.Release()
			return nil, err
		}
	}
	return o, nil
}

// Release releases the worker pool. The orchestrator should not be used
// after calling Release.
func (o *Orchestrator) Release() {
	if o.pool != nil {
		o.pool.Release()
	}
}

// activeTarget is a target whose alias index and code set loaded cleanly.
type activeTarget struct {
	system     string
	aliases    []*core.TargetAlias
	validCodes map[string]struct{}
}

// conceptOutcome collects everything one concept produced, index-addressed
// so workers never share state.
type conceptOutcome struct {
	mappings []*core.MappingRecord
	reviews  []core.ReviewItem
	rejected bool
}

// Run aligns every concept of the source system against the targets.
//
// Targets that fail to prepare are disabled with a warning rather than
// failing the run; a source system with no concepts is a configuration
// error and fails immediately. Accepted mappings are upserted at the end,
// so re-running an identical input changes nothing.
func (o *Orchestrator) Run(ctx context.Context, sourceSystem string, targets []Target) (*RunResult, error) {
	startedAt := time.Now().UTC()

	concepts, err := o.concepts.ListConcepts(ctx, sourceSystem)
	if err != nil {
		return nil, err
	}
	if len(concepts) == 0 {
		return nil, ErrNoConcepts
	}
	o.logger.Info("starting alignment run", "source", sourceSystem, "concepts", len(concepts), "targets", len(targets))

	active, disabled := o.prepareTargets(ctx, targets)
	if len(active) == 0 {
		return nil, ErrNoTargets
	}

	translations, err := o.validator.TranslateBatch(ctx, sourceSystem, concepts, o.cfg.BatchSize)
	if err != nil {
		return nil, err
	}

	th := o.cfg.ThresholdsFor(sourceSystem)
	outcomes := make([]conceptOutcome, len(concepts))

	var wg sync.WaitGroup
	for i := range concepts {
		if ctx.Err() != nil {
			break
		}
		i := i
		wg.Add(1)
		submitErr := o.pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = o.processConcept(ctx, concepts[i], translations[i], th, active)
		})
		if submitErr != nil {
			wg.Done()
			o.logger.Error("failed to submit concept", "code", concepts[i].Code, "err", submitErr)
		}
	}
	wg.Wait()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	result := &RunResult{
		Report: RunReport{
			SourceSystem:    sourceSystem,
			DisabledTargets: disabled,
			ConceptCount:    len(concepts),
			StartedAt:       startedAt,
		},
	}
	for _, target := range active {
		result.Report.Targets = append(result.Report.Targets, target.system)
	}

	var accepted []*core.MappingRecord
	for i, outcome := range outcomes {
		switch translations[i].Provenance {
		case core.ProvenanceCache:
			result.Report.TranslatedFromCache++
		case core.ProvenanceOverride:
			result.Report.TranslatedFromOverride++
		default:
			result.Report.TranslatedFresh++
		}

		if outcome.rejected {
			result.Report.TranslationRejected++
			continue
		}
		accepted = append(accepted, outcome.mappings...)
		result.Reviews = append(result.Reviews, outcome.reviews...)
		if len(outcome.mappings) == 0 {
			result.Unmapped = append(result.Unmapped, UnmappedConcept{
				SourceSystem:   sourceSystem,
				SourceCode:     concepts[i].Code,
				SourceDisplay:  concepts[i].Display,
				TranslatedText: translations[i].EnglishText,
				BackSimilarity: translations[i].BackSimilarity,
			})
		}
	}

	inserted, err := o.mappings.UpsertMappings(ctx, accepted...)
	if err != nil {
		return nil, err
	}

	result.Mappings = accepted
	result.Report.Accepted = len(accepted)
	if len(accepted) > 0 {
		result.Report.Relationships = make(map[string]int)
		for _, m := range accepted {
			result.Report.Relationships[m.Relationship.String()]++
		}
	}
	result.Report.Inserted = inserted
	result.Report.ReviewCount = len(result.Reviews)
	result.Report.UnmappedCount = len(result.Unmapped)
	result.Report.FinishedAt = time.Now().UTC()

	o.logger.Info("alignment run finished",
		"source", sourceSystem,
		"accepted", result.Report.Accepted,
		"inserted", inserted,
		"review", result.Report.ReviewCount,
		"unmapped", result.Report.UnmappedCount,
		"rejected", result.Report.TranslationRejected)
	return result, nil
}

// DryRunTranslations translates every concept of the source system without
// matching or persisting mappings. The audit shows curators what the
// matcher would see.
func (o *Orchestrator) DryRunTranslations(ctx context.Context, sourceSystem string) ([]TranslationAudit, error) {
	concepts, err := o.concepts.ListConcepts(ctx, sourceSystem)
	if err != nil {
		return nil, err
	}
	if len(concepts) == 0 {
		return nil, ErrNoConcepts
	}

	translations, err := o.validator.TranslateBatch(ctx, sourceSystem, concepts, o.cfg.BatchSize)
	if err != nil {
		return nil, err
	}

	th := o.cfg.ThresholdsFor(sourceSystem)
	audits := make([]TranslationAudit, len(concepts))
	for i, concept := range concepts {
		record := translations[i]
		audits[i] = TranslationAudit{
			SourceSystem:   sourceSystem,
			SourceCode:     concept.Code,
			SourceDisplay:  concept.Display,
			SourceLang:     record.SourceLang,
			EnglishText:    record.EnglishText,
			BackSimilarity: record.BackSimilarity,
			Provenance:     record.Provenance.String(),
			WouldReject:    record.BackSimilarity < th.MinBackSimilarity && record.Provenance != core.ProvenanceOverride,
		}
	}
	return audits, nil
}

// prepareTargets builds or loads each target's alias index and target code
// set. A target that fails is disabled, not fatal: the other targets still
// get their mappings.
func (o *Orchestrator) prepareTargets(ctx context.Context, targets []Target) (active []*activeTarget, disabled []string) {
	for _, target := range targets {
		builder := alias.NewBuilder(target.AliasDir, o.aliases)
		entries, err := builder.BuildOrLoad(ctx, target.System)
		if err != nil {
			o.logger.Warn("disabling target, alias index unavailable", "target", target.System, "err", err)
			disabled = append(disabled, target.System)
			continue
		}

		stored, err := o.concepts.ListConcepts(ctx, target.System)
		if err != nil {
			o.logger.Warn("disabling target, concept list unavailable", "target", target.System, "err", err)
			disabled = append(disabled, target.System)
			continue
		}

		// Mappings may only reference target codes that exist in the
		// concept store; a target with nothing seeded cannot absorb anything
		validCodes := make(map[string]struct{}, len(stored))
		for _, concept := range stored {
			validCodes[concept.Code] = struct{}{}
		}
		if len(validCodes) == 0 {
			o.logger.Warn("disabling target, no concepts seeded", "target", target.System)
			disabled = append(disabled, target.System)
			continue
		}

		active = append(active, &activeTarget{
			system:     target.System,
			aliases:    entries,
			validCodes: validCodes,
		})
	}
	return active, disabled
}

// processConcept runs the per-concept decision cascade against every active
// target.
func (o *Orchestrator) processConcept(ctx context.Context, concept *core.SourceConcept, record *core.TranslationRecord, th config.SystemThresholds, targets []*activeTarget) conceptOutcome {
	// Round-trip gate: a translation that lost too much meaning produces
	// no mappings at all. Curated overrides are trusted past the gate.
	if record.BackSimilarity < th.MinBackSimilarity && record.Provenance != core.ProvenanceOverride {
		o.logger.Debug("rejecting concept, back-translation below minimum",
			"code", concept.Code, "backSim", record.BackSimilarity, "min", th.MinBackSimilarity)
		return conceptOutcome{rejected: true}
	}

	var outcome conceptOutcome
	for _, target := range targets {
		candidates := o.matcher.FindCandidates(ctx, record, target.system, target.aliases, target.validCodes)
		if len(candidates) == 0 {
			continue
		}
		top := candidates[0]

		if top.FinalScore >= th.MinAcceptScore {
			relationship := match.Classify(
				text.Normalize(record.EnglishText),
				text.Normalize(top.TargetLabel),
				top.FinalScore,
				o.classify,
			)
			if relationship == core.RelationshipNone {
				o.logger.Debug("dropping unclassifiable candidate",
					"code", concept.Code, "target", target.system, "score", top.FinalScore)
				continue
			}
			outcome.mappings = append(outcome.mappings, &core.MappingRecord{
				SourceSystem:   concept.System,
				SourceCode:     concept.Code,
				TargetSystem:   target.system,
				TargetCode:     top.TargetCode,
				Relationship:   relationship,
				Confidence:     top.FinalScore,
				SourceDisplay:  concept.Display,
				TargetDisplay:  top.TargetLabel,
				SourceLang:     record.SourceLang,
				TranslatedText: record.EnglishText,
				BackSimilarity: record.BackSimilarity,
				Provenance:     record.Provenance,
			})
			continue
		}

		if top.FinalScore >= o.cfg.ReviewLow && top.FinalScore <= o.cfg.ReviewHigh {
			outcome.reviews = append(outcome.reviews, o.reviewItem(concept, record, target.system, candidates))
		}
	}
	return outcome
}

// reviewItem packages the top candidates of an uncertain match for a curator.
func (o *Orchestrator) reviewItem(concept *core.SourceConcept, record *core.TranslationRecord, targetSystem string, candidates []core.MatchCandidate) core.ReviewItem {
	limit := o.cfg.MaxReviewCandidates
	if limit > len(candidates) {
		limit = len(candidates)
	}

	top := candidates[0]
	suggested := "review"
	if top.FinalScore >= o.classify.Related {
		suggested = core.RelationshipRelated.String()
	}

	return core.ReviewItem{
		SourceSystem:          concept.System,
		SourceCode:            concept.Code,
		SourceDisplay:         concept.Display,
		TargetSystem:          targetSystem,
		TranslatedText:        record.EnglishText,
		BackSimilarity:        record.BackSimilarity,
		Candidates:            candidates[:limit],
		SuggestedRelationship: suggested,
		FinalScore:            top.FinalScore,
	}
}
