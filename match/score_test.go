package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorer(t *testing.T) {
	scorer := NewScorer()

	t.Run("IdenticalScores100", func(t *testing.T) {
		assert.Equal(t, 100.0, scorer.ScoreNormalized("liver abscess", "liver abscess"))
	})

	t.Run("EmptyScoresZero", func(t *testing.T) {
		assert.Zero(t, scorer.ScoreNormalized("", "liver"))
		assert.Zero(t, scorer.ScoreNormalized("liver", ""))
	})

	t.Run("SimilarOutscoresDissimilar", func(t *testing.T) {
		near := scorer.ScoreNormalized("amoebic liver abscess", "liver abscess amoebic")
		far := scorer.ScoreNormalized("amoebic liver abscess", "fracture of femur")
		assert.Greater(t, near, far)
		assert.Greater(t, near, 80.0)
		assert.Less(t, far, 50.0)
	})

	t.Run("BoundedScale", func(t *testing.T) {
		for _, pair := range [][2]string{
			{"fever", "pyrexia"},
			{"chronic kidney failure", "kidney failure"},
			{"a", "completely unrelated phrase here"},
		} {
			got := scorer.ScoreNormalized(pair[0], pair[1])
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		}
	})

	t.Run("FallbackBlendStillRanks", func(t *testing.T) {
		plain := NewScorer(WithoutCharProximity())
		near := plain.ScoreNormalized("liver abscess", "abscess of liver")
		far := plain.ScoreNormalized("liver abscess", "skull fracture")
		assert.Greater(t, near, far)
	})
}

func TestPrefilter(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		p := NewPrefilter(0.30, false)
		assert.Equal(t, 0.30, p.MinTokenOverlap)
		assert.Equal(t, 90.0, p.QuickRatioBar)
		assert.Equal(t, 50, p.LabelCap)
	})

	t.Run("FastModeTightens", func(t *testing.T) {
		p := NewPrefilter(0.10, true)
		assert.Equal(t, 0.5, p.MinTokenOverlap)
		assert.Equal(t, 92.0, p.QuickRatioBar)
		assert.Equal(t, 20, p.LabelCap)
		assert.True(t, p.Fast)
	})

	t.Run("AdmitsOnOverlap", func(t *testing.T) {
		p := NewPrefilter(0.30, false)
		assert.True(t, p.Admit("liver abscess", "amoebic liver abscess"))
	})

	t.Run("RejectsDisjoint", func(t *testing.T) {
		p := NewPrefilter(0.30, false)
		assert.False(t, p.Admit("liver abscess", "fracture of femur"))
	})

	t.Run("QuickRatioRescuesNearIdentical", func(t *testing.T) {
		// no shared tokens after stopword filtering would fail overlap,
		// but near-identical strings pass on the quick ratio
		p := NewPrefilter(0.99, false)
		assert.True(t, p.Admit("gastritis", "gastritis"))
		assert.True(t, p.Admit("pyelonephritis", "pyelonephritides"))
	})

	t.Run("FastModeNeedsBothGates", func(t *testing.T) {
		p := NewPrefilter(0.30, true)
		// full token overlap, quick ratio under the bar
		assert.False(t, p.Admit("liver abscess", "liver abscess amoebic variant"))
		assert.True(t, p.Admit("gastritis", "gastritis"))
	})

	t.Run("FastModeHasNoQuickRescue", func(t *testing.T) {
		// the singular/plural pair clears the quick bar but shares no token
		p := NewPrefilter(0.30, true)
		assert.False(t, p.Admit("pyelonephritis", "pyelonephritides"))
	})
}
