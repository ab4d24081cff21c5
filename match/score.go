// Package match scores lexical similarity between normalized terminology
// strings and classifies the relationship between matched concepts.
package match

import (
	"github.com/antzucaro/matchr"
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/rishika0212/termalign/text"
)

// Scorer computes composite lexical similarity on a 0-100 scale.
// Inputs are expected to be normalized with text.Normalize.
type Scorer struct {
	useCharProximity bool
}

// ScorerOption configures a Scorer.
type ScorerOption func(*Scorer)

// WithoutCharProximity drops the character-proximity component and falls back
// to a two-term blend of the token metrics.
func WithoutCharProximity() ScorerOption {
	return func(s *Scorer) {
		s.useCharProximity = false
	}
}

// NewScorer creates a Scorer with the character-proximity component enabled.
func NewScorer(opts ...ScorerOption) *Scorer {
	s := &Scorer{useCharProximity: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScoreNormalized returns the composite similarity of two normalized strings
// in [0, 100]. Equal non-empty inputs score exactly 100; an empty input
// scores 0.
func (s *Scorer) ScoreNormalized(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}

	wr := float64(fuzzy.WRatio(a, b))
	tsr := float64(fuzzy.TokenSetRatio(a, b))
	if !s.useCharProximity {
		return 0.6*wr + 0.4*tsr
	}
	jw := matchr.JaroWinkler(a, b, false) * 100
	return 0.45*wr + 0.35*tsr + 0.20*jw
}

// QuickRatio is the cheap similarity used by the prefilter. Same scale as
// ScoreNormalized but a single pass instead of the composite blend.
func QuickRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return float64(fuzzy.Ratio(a, b))
}

// Prefilter gates candidate labels before the expensive composite score runs.
type Prefilter struct {
	// MinTokenOverlap is the minimum token-set overlap ratio between the
	// source text and a candidate's primary label.
	MinTokenOverlap float64

	// QuickRatioBar admits a candidate that fails the overlap gate when its
	// quick ratio reaches this bar anyway. In fast mode there is no rescue:
	// the bar becomes a second gate on top of the overlap test.
	QuickRatioBar float64

	// LabelCap bounds how many aliases per candidate get the full composite
	// score.
	LabelCap int

	// Fast requires both gates to pass instead of either.
	Fast bool
}

// NewPrefilter builds a Prefilter for the given minimum overlap. Fast mode
// floors the overlap bar at 0.5, raises the quick-ratio bar, drops the
// quick-ratio rescue, and tightens the label cap so that far fewer candidates
// survive to full scoring.
func NewPrefilter(minOverlap float64, fast bool) Prefilter {
	if fast {
		if minOverlap < 0.5 {
			minOverlap = 0.5
		}
		return Prefilter{MinTokenOverlap: minOverlap, QuickRatioBar: 92, LabelCap: 20, Fast: true}
	}
	return Prefilter{MinTokenOverlap: minOverlap, QuickRatioBar: 90, LabelCap: 50}
}

// Admit reports whether a candidate's primary label passes the prefilter
// against the normalized source text.
func (p Prefilter) Admit(source, primaryLabel string) bool {
	overlap := text.TokenOverlap(source, primaryLabel) >= p.MinTokenOverlap
	if p.Fast {
		return overlap && QuickRatio(source, primaryLabel) >= p.QuickRatioBar
	}
	if overlap {
		return true
	}
	return QuickRatio(source, primaryLabel) >= p.QuickRatioBar
}
