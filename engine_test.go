package termalign

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishika0212/termalign/ai/mock"
	"github.com/rishika0212/termalign/core"
	"github.com/rishika0212/termalign/mapping"
)

func TestNewEngine(t *testing.T) {
	t.Run("create new engine", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		e, err := NewEngine(tmpDir, WithProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		require.NotNil(t, e)
		defer e.Close()

		assert.NotNil(t, e.ConceptStore())
		assert.NotNil(t, e.MappingStore())
		assert.NotNil(t, e.AliasStore())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0644))

		e, err := NewEngine(tmpFile, WithProvider(mock.NewMockProvider()))
		assert.Error(t, err)
		assert.Nil(t, e)
	})
}

func TestEngineFactoryMethods(t *testing.T) {
	e, err := NewEngine(t.TempDir(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer e.Close()

	t.Run("can create validator", func(t *testing.T) {
		v, err := e.NewValidator("NAMASTE-Ayurveda")
		require.NoError(t, err)
		require.NotNil(t, v)
	})

	t.Run("can create shortlister", func(t *testing.T) {
		require.NotNil(t, e.NewShortlister())
	})

	t.Run("can create orchestrator", func(t *testing.T) {
		o, err := e.NewOrchestrator("NAMASTE-Ayurveda")
		require.NoError(t, err)
		require.NotNil(t, o)
		o.Release()
	})
}

func TestEngineEndToEnd(t *testing.T) {
	ctx := context.Background()

	e, err := NewEngine(t.TempDir(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer e.Close()

	releaseDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(releaseDir, "tm2.json"),
		[]byte(`[{"code": "SP00", "title": "Fever disorder"}]`), 0644))

	require.NoError(t, e.ConceptStore().AddConcepts(ctx,
		&core.SourceConcept{System: "ICD-11-TM2", Code: "SP00", Display: "Fever disorder"},
		&core.SourceConcept{System: "NAMASTE-Siddha", Code: "SID-1", Display: "Fever disorder"},
	))

	o, err := e.NewOrchestrator("NAMASTE-Siddha")
	require.NoError(t, err)
	defer o.Release()

	result, err := o.Run(ctx, "NAMASTE-Siddha", []mapping.Target{
		{System: "ICD-11-TM2", AliasDir: releaseDir},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Report.Accepted)
	assert.Equal(t, "SP00", result.Mappings[0].TargetCode)
	assert.Equal(t, core.RelationshipEquivalent, result.Mappings[0].Relationship)

	count, err := e.MappingStore().CountMappings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
