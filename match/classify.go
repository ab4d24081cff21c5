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


package match

import (
	"github.com/rishika0212/termalign/core"
	"github.com/rishika0212/termalign/text"
)

// ClassifyThresholds hold the score and overlap cutoffs of the relationship
// cascade. Scores are on the 0-100 composite scale, overlaps in [0, 1].
type ClassifyThresholds struct {
	Equivalent        float64
	EquivalentJaccard float64
	Narrower          float64
	NarrowerOverlap   float64
	Broader           float64
	BroaderOverlap    float64
	Related           float64
}

// DefaultClassifyThresholds returns the standard cascade cutoffs.
func DefaultClassifyThresholds() ClassifyThresholds {
	return ClassifyThresholds{
		Equivalent:        96,
		EquivalentJaccard: 0.9,
		Narrower:          90,
		NarrowerOverlap:   0.8,
		Broader:           88,
		BroaderOverlap:    0.7,
		Related:           70,
	}
}

// Classify runs the relationship cascade over a scored source/target label
// pair. Both labels must be normalized. The cascade is ordered from the
// strongest relationship down; the first rule that fires wins:
//
//   - equivalent: score at the equivalent bar, or identical normalized
//     labels, or near-total Jaccard token agreement
//   - narrower: target tokens strictly inside the source tokens with high
//     overlap (the target says less than the source)
//   - broader: source tokens strictly inside the target tokens
//   - related: score at the related bar
//
// Anything below the related bar classifies as RelationshipNone.
func Classify(source, target string, score float64, th ClassifyThresholds) core.Relationship {
	if source == "" || target == "" {
		return core.RelationshipNone
	}

	if score >= th.Equivalent || source == target || text.Jaccard(source, target) >= th.EquivalentJaccard {
		return core.RelationshipEquivalent
	}

	overlap := text.TokenOverlap(source, target)
	if score >= th.Narrower && text.IsStrictSubset(target, source) && overlap >= th.NarrowerOverlap {
		return core.RelationshipNarrower
	}
	if score >= th.Broader && text.IsStrictSubset(source, target) && overlap >= th.BroaderOverlap {
		return core.RelationshipBroader
	}
	if score >= th.Related {
		return core.RelationshipRelated
	}
	return core.RelationshipNone
}
