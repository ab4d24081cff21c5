package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishika0212/termalign/core"
)

func TestConceptRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("AddAndList", func(t *testing.T) {
		stores, err := NewMemoryStores()
		require.NoError(t, err)
		defer stores.Close()

		err = stores.Concepts.AddConcepts(ctx,
			&core.SourceConcept{System: "NAMASTE-Ayurveda", Code: "AYU-2", Display: "Amavata"},
			&core.SourceConcept{System: "NAMASTE-Ayurveda", Code: "AYU-1", Display: "Jvara"},
			&core.SourceConcept{System: "NAMASTE-Siddha", Code: "SID-1", Display: "Suram"})
		require.NoError(t, err)

		concepts, err := stores.Concepts.ListConcepts(ctx, "NAMASTE-Ayurveda")
		require.NoError(t, err)
		require.Len(t, concepts, 2)
		// badger key order sorts by code
		assert.Equal(t, "AYU-1", concepts[0].Code)
		assert.Equal(t, "AYU-2", concepts[1].Code)
	})

	t.Run("ListUnknownSystemIsEmpty", func(t *testing.T) {
		stores, err := NewMemoryStores()
		require.NoError(t, err)
		defer stores.Close()

		concepts, err := stores.Concepts.ListConcepts(ctx, "ICD-11-TM2")
		require.NoError(t, err)
		assert.Empty(t, concepts)
	})

	t.Run("CodeExists", func(t *testing.T) {
		stores, err := NewMemoryStores()
		require.NoError(t, err)
		defer stores.Close()

		err = stores.Concepts.AddConcepts(ctx,
			&core.SourceConcept{System: "ICD-11-TM2", Code: "TM2-1", Display: "Fever disorder"})
		require.NoError(t, err)

		exists, err := stores.Concepts.CodeExists(ctx, "ICD-11-TM2", "TM2-1")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = stores.Concepts.CodeExists(ctx, "ICD-11-TM2", "TM2-404")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("ReAddOverwrites", func(t *testing.T) {
		stores, err := NewMemoryStores()
		require.NoError(t, err)
		defer stores.Close()

		err = stores.Concepts.AddConcepts(ctx,
			&core.SourceConcept{System: "NAMASTE-Unani", Code: "UNA-1", Display: "old"})
		require.NoError(t, err)
		err = stores.Concepts.AddConcepts(ctx,
			&core.SourceConcept{System: "NAMASTE-Unani", Code: "UNA-1", Display: "new", Definition: "def"})
		require.NoError(t, err)

		concepts, err := stores.Concepts.ListConcepts(ctx, "NAMASTE-Unani")
		require.NoError(t, err)
		require.Len(t, concepts, 1)
		assert.Equal(t, "new", concepts[0].Display)
	})

	t.Run("RejectsInvalidConcept", func(t *testing.T) {
		stores, err := NewMemoryStores()
		require.NoError(t, err)
		defer stores.Close()

		err = stores.Concepts.AddConcepts(ctx, &core.SourceConcept{System: "", Code: "X"})
		assert.ErrorIs(t, err, core.ErrInvalidConcept)
	})
}
