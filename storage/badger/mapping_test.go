package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishika0212/termalign/core"
)

func newTestMapping(sourceCode, targetCode string) *core.MappingRecord {
	return &core.MappingRecord{
		SourceSystem:   "NAMASTE-Ayurveda",
		SourceCode:     sourceCode,
		TargetSystem:   "ICD-11-TM2",
		TargetCode:     targetCode,
		Relationship:   core.RelationshipEquivalent,
		Confidence:     97.2,
		SourceDisplay:  "Jvara",
		TargetDisplay:  "Fever disorder",
		SourceLang:     "hin_Deva",
		TranslatedText: "fever",
		BackSimilarity: 88.0,
		Provenance:     core.ProvenanceFresh,
	}
}

func TestMappingRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("UpsertAndCount", func(t *testing.T) {
		stores, err := NewMemoryStores()
		require.NoError(t, err)
		defer stores.Close()

		inserted, err := stores.Mappings.UpsertMappings(ctx,
			newTestMapping("AYU-1", "TM2-1"),
			newTestMapping("AYU-2", "TM2-2"))
		require.NoError(t, err)
		assert.Equal(t, 2, inserted)

		count, err := stores.Mappings.CountMappings(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("DuplicateTupleIsNoOp", func(t *testing.T) {
		stores, err := NewMemoryStores()
		require.NoError(t, err)
		defer stores.Close()

		first := newTestMapping("AYU-1", "TM2-1")
		inserted, err := stores.Mappings.UpsertMappings(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, 1, inserted)

		// Same identity tuple with different scores must not insert or
		// overwrite
		second := newTestMapping("AYU-1", "TM2-1")
		second.Confidence = 50.0
		second.Relationship = core.RelationshipRelated
		inserted, err = stores.Mappings.UpsertMappings(ctx, second)
		require.NoError(t, err)
		assert.Equal(t, 0, inserted)

		records, err := stores.Mappings.ListMappings(ctx, "NAMASTE-Ayurveda")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 97.2, records[0].Confidence)
		assert.Equal(t, core.RelationshipEquivalent, records[0].Relationship)
	})

	t.Run("DifferentTargetCodeIsDistinct", func(t *testing.T) {
		stores, err := NewMemoryStores()
		require.NoError(t, err)
		defer stores.Close()

		inserted, err := stores.Mappings.UpsertMappings(ctx,
			newTestMapping("AYU-1", "TM2-1"),
			newTestMapping("AYU-1", "TM2-2"))
		require.NoError(t, err)
		assert.Equal(t, 2, inserted)
	})

	t.Run("ListFiltersBySourceSystem", func(t *testing.T) {
		stores, err := NewMemoryStores()
		require.NoError(t, err)
		defer stores.Close()

		siddha := newTestMapping("SID-1", "TM2-9")
		siddha.SourceSystem = "NAMASTE-Siddha"
		_, err = stores.Mappings.UpsertMappings(ctx, newTestMapping("AYU-1", "TM2-1"), siddha)
		require.NoError(t, err)

		records, err := stores.Mappings.ListMappings(ctx, "NAMASTE-Siddha")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "SID-1", records[0].SourceCode)

		all, err := stores.Mappings.ListMappings(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("RejectsInvalidRecord", func(t *testing.T) {
		stores, err := NewMemoryStores()
		require.NoError(t, err)
		defer stores.Close()

		bad := newTestMapping("AYU-1", "TM2-1")
		bad.Relationship = core.RelationshipNone
		_, err = stores.Mappings.UpsertMappings(ctx, bad)
		assert.ErrorIs(t, err, core.ErrInvalidMapping)
	})
}
