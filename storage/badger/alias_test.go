package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishika0212/termalign/core"
	"github.com/rishika0212/termalign/storage"
)

func TestAliasRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("SaveAndLoad", func(t *testing.T) {
		stores, err := NewMemoryStores()
		require.NoError(t, err)
		defer stores.Close()

		aliases := []*core.TargetAlias{
			{System: "ICD-11-TM2", Code: "TM2-1", Aliases: []string{"Fever disorder", "fever disorder"}},
			{System: "ICD-11-TM2", Code: "TM2-2", Aliases: []string{"Wind disorder"}},
		}
		fp := core.AliasFingerprint{FileCount: 3, LatestModTime: 1700000000}
		require.NoError(t, stores.Aliases.SaveAliasIndex(ctx, "ICD-11-TM2", aliases, fp))

		loaded, err := stores.Aliases.LoadAliasIndex(ctx, "ICD-11-TM2")
		require.NoError(t, err)
		require.Len(t, loaded, 2)
		assert.Equal(t, []string{"Fever disorder", "fever disorder"}, loaded[0].Aliases)

		gotFP, err := stores.Aliases.GetFingerprint(ctx, "ICD-11-TM2")
		require.NoError(t, err)
		assert.True(t, gotFP.Equal(fp))
	})

	t.Run("MissingIndexReturnsNotFound", func(t *testing.T) {
		stores, err := NewMemoryStores()
		require.NoError(t, err)
		defer stores.Close()

		_, err = stores.Aliases.LoadAliasIndex(ctx, "ICD-11-Bio")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = stores.Aliases.GetFingerprint(ctx, "ICD-11-Bio")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("ResaveDropsStaleEntries", func(t *testing.T) {
		stores, err := NewMemoryStores()
		require.NoError(t, err)
		defer stores.Close()

		first := []*core.TargetAlias{
			{System: "ICD-11-TM2", Code: "TM2-1", Aliases: []string{"a"}},
			{System: "ICD-11-TM2", Code: "TM2-2", Aliases: []string{"b"}},
		}
		fp1 := core.AliasFingerprint{FileCount: 2, LatestModTime: 100}
		require.NoError(t, stores.Aliases.SaveAliasIndex(ctx, "ICD-11-TM2", first, fp1))

		second := []*core.TargetAlias{
			{System: "ICD-11-TM2", Code: "TM2-3", Aliases: []string{"c"}},
		}
		fp2 := core.AliasFingerprint{FileCount: 1, LatestModTime: 200}
		require.NoError(t, stores.Aliases.SaveAliasIndex(ctx, "ICD-11-TM2", second, fp2))

		loaded, err := stores.Aliases.LoadAliasIndex(ctx, "ICD-11-TM2")
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, "TM2-3", loaded[0].Code)

		gotFP, err := stores.Aliases.GetFingerprint(ctx, "ICD-11-TM2")
		require.NoError(t, err)
		assert.False(t, gotFP.Equal(fp1))
		assert.True(t, gotFP.Equal(fp2))
	})
}

func TestEmbeddingRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("SaveAndLoadRoundTrip", func(t *testing.T) {
		stores, err := NewMemoryStores()
		require.NoError(t, err)
		defer stores.Close()

		artifact := &core.EmbeddingArtifact{
			System: "ICD-11-TM2",
			Codes:  []string{"TM2-1", "TM2-2"},
			Vectors: [][]float32{
				{0.6, 0.8},
				{1.0, 0.0},
			},
		}
		require.NoError(t, stores.Embeddings.SaveArtifact(ctx, artifact))

		loaded, err := stores.Embeddings.LoadArtifact(ctx, "ICD-11-TM2")
		require.NoError(t, err)
		assert.Equal(t, artifact.Codes, loaded.Codes)
		assert.Equal(t, artifact.Vectors, loaded.Vectors)
	})

	t.Run("MissingArtifactReturnsNotFound", func(t *testing.T) {
		stores, err := NewMemoryStores()
		require.NoError(t, err)
		defer stores.Close()

		_, err = stores.Embeddings.LoadArtifact(ctx, "ICD-11-Bio")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
