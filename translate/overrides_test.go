package translate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishika0212/termalign/text"
)

func TestLoadSystemOverrides(t *testing.T) {
	t.Run("LoadsAndNormalizesKeys", func(t *testing.T) {
		dir := t.TempDir()
		payload := `{"ज्वर": "fever", "Āmavāta": "rheumatoid arthritis", "  ": "ignored", "empty": "  "}`
		path := filepath.Join(dir, "namaste_ayurveda_synonyms.json")
		require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

		overrides, err := LoadSystemOverrides(dir, "NAMASTE-Ayurveda")
		require.NoError(t, err)

		assert.Equal(t, "fever", overrides[text.Normalize("ज्वर")])
		assert.Equal(t, "rheumatoid arthritis", overrides[text.Normalize("Āmavāta")])
		// blank keys and blank values are dropped
		assert.Len(t, overrides, 2)
	})

	t.Run("MissingFileIsEmptyMap", func(t *testing.T) {
		overrides, err := LoadSystemOverrides(t.TempDir(), "NAMASTE-Siddha")
		require.NoError(t, err)
		assert.Empty(t, overrides)
	})

	t.Run("MalformedFileFails", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "namaste_unani_synonyms.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		_, err := LoadSystemOverrides(dir, "NAMASTE-Unani")
		assert.ErrorIs(t, err, ErrInvalidOverrideFile)
	})
}
