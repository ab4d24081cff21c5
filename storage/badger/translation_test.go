package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishika0212/termalign/core"
	"github.com/rishika0212/termalign/storage"
)

func TestTranslationRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("MissReturnsNotFound", func(t *testing.T) {
		stores, err := NewMemoryStores()
		require.NoError(t, err)
		defer stores.Close()

		_, err = stores.Translations.GetTranslation(ctx, "NAMASTE-Ayurveda", "AYU-1")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("PutAndGetRoundTrip", func(t *testing.T) {
		stores, err := NewMemoryStores()
		require.NoError(t, err)
		defer stores.Close()

		record := &core.TranslationRecord{
			System:         "NAMASTE-Ayurveda",
			Code:           "AYU-1",
			EnglishText:    "fever with body ache",
			SourceLang:     "hin_Deva",
			BackSimilarity: 84.5,
			Provenance:     core.ProvenanceFresh,
		}
		require.NoError(t, stores.Translations.PutTranslation(ctx, record))

		got, err := stores.Translations.GetTranslation(ctx, "NAMASTE-Ayurveda", "AYU-1")
		require.NoError(t, err)
		assert.Equal(t, record.EnglishText, got.EnglishText)
		assert.Equal(t, record.SourceLang, got.SourceLang)
		assert.Equal(t, record.BackSimilarity, got.BackSimilarity)
		assert.Equal(t, core.ProvenanceFresh, got.Provenance)
	})

	t.Run("LastWriteWins", func(t *testing.T) {
		stores, err := NewMemoryStores()
		require.NoError(t, err)
		defer stores.Close()

		first := &core.TranslationRecord{
			System: "NAMASTE-Unani", Code: "UNA-7",
			EnglishText: "old translation", SourceLang: "urd_Arab",
			BackSimilarity: 60, Provenance: core.ProvenanceFresh,
		}
		require.NoError(t, stores.Translations.PutTranslation(ctx, first))

		second := &core.TranslationRecord{
			System: "NAMASTE-Unani", Code: "UNA-7",
			EnglishText: "new translation", SourceLang: "urd_Arab",
			BackSimilarity: 92, Provenance: core.ProvenanceFresh,
		}
		require.NoError(t, stores.Translations.PutTranslation(ctx, second))

		got, err := stores.Translations.GetTranslation(ctx, "NAMASTE-Unani", "UNA-7")
		require.NoError(t, err)
		assert.Equal(t, "new translation", got.EnglishText)
		assert.Equal(t, 92.0, got.BackSimilarity)
	})

	t.Run("RejectsInvalidRecord", func(t *testing.T) {
		stores, err := NewMemoryStores()
		require.NoError(t, err)
		defer stores.Close()

		err = stores.Translations.PutTranslation(ctx, &core.TranslationRecord{
			System: "", Code: "X",
		})
		assert.ErrorIs(t, err, core.ErrInvalidTranslation)
	})
}
