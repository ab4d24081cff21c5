package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigNormalize(t *testing.T) {
	t.Run("AddsV1Suffix", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.TranslationHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("StripsTrailingSlash", func(t *testing.T) {
		cfg := NewConfig(WithTranslationHost("http://localhost:9100/"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:9100/v1", cfg.TranslationHost)
	})

	t.Run("LeavesCanonicalAlone", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434/v1"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.TranslationHost)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("DefaultsValid", func(t *testing.T) {
		require.NoError(t, DefaultConfig().Validate())
	})

	t.Run("MissingModel", func(t *testing.T) {
		cfg := NewConfig(WithTranslationModel(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("MissingHost", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.EmbeddingHost = ""
		assert.Error(t, cfg.Validate())
	})
}
