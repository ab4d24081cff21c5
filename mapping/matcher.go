// Package mapping runs the alignment pipeline: candidate matching,
// relationship classification, and the orchestration that turns source
// concepts into persisted mappings, review items, and run reports.
package mapping

import (
	"context"
	"slices"

	"github.com/rishika0212/termalign/core"
	"github.com/rishika0212/termalign/match"
	"github.com/rishika0212/termalign/shortlist"
	"github.com/rishika0212/termalign/text"
)

// Matcher scores a translated source concept against the alias index of one
// target system.
type Matcher struct {
	scorer      *match.Scorer
	prefilter   match.Prefilter
	shortlister *shortlist.Shortlister
}

// NewMatcher creates a Matcher. The shortlister is optional; without one
// every alias entry goes through the prefilter.
func NewMatcher(scorer *match.Scorer, prefilter match.Prefilter, shortlister *shortlist.Shortlister) *Matcher {
	return &Matcher{
		scorer:      scorer,
		prefilter:   prefilter,
		shortlister: shortlister,
	}
}

// FindCandidates scores the translation against every admissible alias entry
// and returns candidates sorted by final score descending, target code
// ascending on ties.
//
// Admissibility: the entry's code must be in validCodes (mappings may only
// reference target codes that exist), and the entry must either survive the
// embedding shortlist or, when no shortlist is available, pass the lexical
// prefilter against its primary label.
func (m *Matcher) FindCandidates(ctx context.Context, record *core.TranslationRecord, targetSystem string, aliases []*core.TargetAlias, validCodes map[string]struct{}) []core.MatchCandidate {
	srcNorm := text.Normalize(record.EnglishText)
	if srcNorm == "" {
		return nil
	}

	var shortSet map[string]struct{}
	shortlisted := false
	if m.shortlister != nil {
		if codes, ok := m.shortlister.Shortlist(ctx, targetSystem, record.EnglishText); ok {
			shortlisted = true
			shortSet = make(map[string]struct{}, len(codes))
			for _, code := range codes {
				shortSet[code] = struct{}{}
			}
		}
	}

	var candidates []core.MatchCandidate
	for _, entry := range aliases {
		if _, ok := validCodes[entry.Code]; !ok {
			continue
		}
		if shortlisted {
			if _, ok := shortSet[entry.Code]; !ok {
				continue
			}
		} else if !m.prefilter.Admit(srcNorm, text.Normalize(entry.Primary())) {
			continue
		}

		bestScore, bestLabel := m.bestLabel(srcNorm, entry.Aliases)
		if bestLabel == "" {
			continue
		}

		finalScore := bestScore
		if shortlisted {
			finalScore = shortlist.FinalScore(bestScore, record.BackSimilarity)
		}

		candidates = append(candidates, core.MatchCandidate{
			TargetCode:     entry.Code,
			TargetLabel:    bestLabel,
			LexicalScore:   bestScore,
			FinalScore:     finalScore,
			EnglishText:    record.EnglishText,
			SourceLang:     record.SourceLang,
			BackSimilarity: record.BackSimilarity,
		})
	}

	slices.SortFunc(candidates, func(a, b core.MatchCandidate) int {
		if a.FinalScore > b.FinalScore {
			return -1
		}
		if a.FinalScore < b.FinalScore {
			return 1
		}
		if a.TargetCode < b.TargetCode {
			return -1
		}
		if a.TargetCode > b.TargetCode {
			return 1
		}
		return 0
	})
	return candidates
}

// bestLabel scores up to LabelCap labels of one entry and returns the best
// score with the label that produced it. Strictly-greater comparison keeps
// the earliest label on ties, so a raw label wins over its normalized
// variant.
func (m *Matcher) bestLabel(srcNorm string, labels []string) (float64, string) {
	limit := m.prefilter.LabelCap
	if limit < 1 || limit > len(labels) {
		limit = len(labels)
	}

	bestScore, bestLabel := -1.0, ""
	for _, label := range labels[:limit] {
		score := m.scorer.ScoreNormalized(srcNorm, text.Normalize(label))
		if score > bestScore {
			bestScore, bestLabel = score, label
		}
	}
	if bestScore < 0 {
		return 0, ""
	}
	return bestScore, bestLabel
}
