package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0.30, cfg.MinTokenOverlap)
	assert.Equal(t, 50.0, cfg.ReviewLow)
	assert.Equal(t, 85.0, cfg.ReviewHigh)
	assert.Equal(t, 5, cfg.MaxReviewCandidates)
	assert.Equal(t, 32, cfg.BatchSize)
	assert.Equal(t, 50, cfg.TopK)

	ayu := cfg.ThresholdsFor("NAMASTE-Ayurveda")
	assert.Equal(t, 60.0, ayu.MinBackSimilarity)
	assert.Equal(t, 65.0, ayu.MinAcceptScore)

	sid := cfg.ThresholdsFor("NAMASTE-Siddha")
	assert.Equal(t, 70.0, sid.MinBackSimilarity)
	assert.Equal(t, 75.0, sid.MinAcceptScore)
}

func TestThresholdsForFallsBack(t *testing.T) {
	cfg := Default()
	unknown := cfg.ThresholdsFor("WHO-ITA")
	assert.Equal(t, cfg.Systems["default"], unknown)
}

func TestLoad(t *testing.T) {
	t.Run("OverridesDefaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "termalign.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
batchSize: 8
fast: true
systems:
  NAMASTE-Ayurveda:
    minBackSimilarity: 55
    minAcceptScore: 60
  default:
    minBackSimilarity: 70
    minAcceptScore: 75
`), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 8, cfg.BatchSize)
		assert.True(t, cfg.Fast)
		assert.Equal(t, 55.0, cfg.ThresholdsFor("NAMASTE-Ayurveda").MinBackSimilarity)
		// untouched fields keep defaults
		assert.Equal(t, 50, cfg.TopK)
	})

	t.Run("RejectsInvalidValues", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("minTokenOverlap: 3.0\n"), 0644))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("MissingDefaultSystem", func(t *testing.T) {
		cfg := Default()
		delete(cfg.Systems, "default")
		assert.Error(t, cfg.Validate())
	})

	t.Run("ReviewBandInverted", func(t *testing.T) {
		cfg := Default()
		cfg.ReviewLow, cfg.ReviewHigh = 90, 50
		assert.Error(t, cfg.Validate())
	})
}
