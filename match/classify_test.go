package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rishika0212/termalign/core"
)

func TestClassify(t *testing.T) {
	th := DefaultClassifyThresholds()

	t.Run("HighScoreIsEquivalent", func(t *testing.T) {
		got := Classify("amoebic liver abscess", "hepatic amoebic abscess", 97.5, th)
		assert.Equal(t, core.RelationshipEquivalent, got)
	})

	t.Run("IdenticalNormalizedIsEquivalentRegardlessOfScore", func(t *testing.T) {
		got := Classify("fever", "fever", 40, th)
		assert.Equal(t, core.RelationshipEquivalent, got)
	})

	t.Run("NearTotalJaccardIsEquivalent", func(t *testing.T) {
		got := Classify("liver abscess amoebic", "amoebic liver abscess", 80, th)
		assert.Equal(t, core.RelationshipEquivalent, got)
	})

	t.Run("TargetSubsetIsNarrower", func(t *testing.T) {
		// target {liver, abscess} strictly inside source {amoebic, liver,
		// abscess}, overlap 2/3 < 0.8 so this needs a richer source
		got := Classify("amoebic liver abscess cyst hepatitis", "amoebic liver abscess cyst", 91, th)
		assert.Equal(t, core.RelationshipNarrower, got)
	})

	t.Run("SourceSubsetIsBroader", func(t *testing.T) {
		got := Classify("amoebic liver abscess", "amoebic liver abscess cyst", 89, th)
		// overlap 3/4 = 0.75 >= 0.7
		assert.Equal(t, core.RelationshipBroader, got)
	})

	t.Run("MidScoreIsRelated", func(t *testing.T) {
		got := Classify("liver inflammation", "hepatitis viral", 75, th)
		assert.Equal(t, core.RelationshipRelated, got)
	})

	t.Run("LowScoreIsNone", func(t *testing.T) {
		got := Classify("liver inflammation", "skull fracture", 42, th)
		assert.Equal(t, core.RelationshipNone, got)
	})

	t.Run("EmptyInputIsNone", func(t *testing.T) {
		assert.Equal(t, core.RelationshipNone, Classify("", "fever", 100, th))
		assert.Equal(t, core.RelationshipNone, Classify("fever", "", 100, th))
	})

	t.Run("NarrowerNeedsSubsetNotJustScore", func(t *testing.T) {
		// high score, no subset relation in either direction
		got := Classify("kidney stone pain", "kidney cyst pain", 91, th)
		assert.Equal(t, core.RelationshipRelated, got)
	})
}
