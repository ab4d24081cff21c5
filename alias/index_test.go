package alias

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	badgerstore "github.com/rishika0212/termalign/storage/badger"
)

func writeRelease(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func newTestBuilder(t *testing.T, dir string) (*Builder, *badgerstore.Stores) {
	t.Helper()
	stores, err := badgerstore.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { stores.Close() })
	return NewBuilder(dir, stores.Aliases), stores
}

const feverDoc = `{
	"code": "TM2-1",
	"title": {"@value": "Fever disorder (TM2)"},
	"definition": {"@value": "Disorder with elevated body temperature."},
	"indexTerm": [{"label": {"@value": "Pyrexia"}}, {"label": {"@value": "Febrile state"}}],
	"browserUrl": "https://icd.example/TM2-1"
}`

func TestBuilder(t *testing.T) {
	ctx := context.Background()

	t.Run("BuildsFromReleaseFiles", func(t *testing.T) {
		dir := t.TempDir()
		writeRelease(t, dir, "tm2-fever.json", feverDoc)
		writeRelease(t, dir, "tm2-wind.json", `[
			{"code": "TM2-2", "title": {"@value": "Wind disorder (TM2)"}},
			{"code": "", "title": {"@value": "codeless entry"}}
		]`)
		writeRelease(t, dir, "_scratch.json", `{"code": "IGNORED", "title": "ignored"}`)

		builder, _ := newTestBuilder(t, dir)
		aliases, err := builder.BuildOrLoad(ctx, "ICD-11-TM2")
		require.NoError(t, err)
		require.Len(t, aliases, 2)

		byCode := map[string][]string{}
		for _, a := range aliases {
			byCode[a.Code] = a.Aliases
		}
		require.Contains(t, byCode, "TM2-1")
		require.Contains(t, byCode, "TM2-2")

		// title is the primary alias, raw labels precede normalized variants
		assert.Equal(t, "Fever disorder (TM2)", byCode["TM2-1"][0])
		assert.Contains(t, byCode["TM2-1"], "Pyrexia")
		assert.Contains(t, byCode["TM2-1"], "fever disorder tm2")
	})

	t.Run("WalksNestedChildDocuments", func(t *testing.T) {
		dir := t.TempDir()
		writeRelease(t, dir, "chapter.json", `{
			"code": "TM2",
			"title": {"@value": "Traditional medicine disorders"},
			"child": [
				{
					"code": "TM2-1",
					"title": {"@value": "Fever disorder (TM2)"},
					"child": [{"code": "TM2-1.1", "title": {"@value": "Intermittent fever (TM2)"}}]
				},
				{"code": "TM2-1", "title": {"@value": "Fever disorder (TM2)"}}
			]
		}`)

		builder, _ := newTestBuilder(t, dir)
		aliases, err := builder.BuildOrLoad(ctx, "ICD-11-TM2")
		require.NoError(t, err)

		codes := make([]string, 0, len(aliases))
		for _, a := range aliases {
			codes = append(codes, a.Code)
		}
		assert.ElementsMatch(t, []string{"TM2", "TM2-1", "TM2-1.1"}, codes)
	})

	t.Run("FingerprintCountsAndTracksLatest", func(t *testing.T) {
		dir := t.TempDir()
		writeRelease(t, dir, "a.json", feverDoc)
		writeRelease(t, dir, "b.json", `{"code": "TM2-2", "title": "Wind disorder"}`)
		writeRelease(t, dir, "_partial.json", `{}`)
		writeRelease(t, dir, "notes.txt", "not json")

		builder, _ := newTestBuilder(t, dir)
		fp, err := builder.Fingerprint()
		require.NoError(t, err)
		assert.Equal(t, int64(2), fp.FileCount)
		assert.Positive(t, fp.LatestModTime)
	})

	t.Run("UnchangedDirectoryLoadsStoredIndex", func(t *testing.T) {
		dir := t.TempDir()
		writeRelease(t, dir, "a.json", feverDoc)

		builder, stores := newTestBuilder(t, dir)
		first, err := builder.BuildOrLoad(ctx, "ICD-11-TM2")
		require.NoError(t, err)

		// Corrupting the stored entries would surface if a rebuild happened;
		// instead verify the stored fingerprint is honored by checking the
		// second call returns identical content without directory changes.
		second, err := builder.BuildOrLoad(ctx, "ICD-11-TM2")
		require.NoError(t, err)
		require.Len(t, second, len(first))
		assert.Equal(t, first[0].Aliases, second[0].Aliases)

		fp, err := stores.Aliases.GetFingerprint(ctx, "ICD-11-TM2")
		require.NoError(t, err)
		assert.Equal(t, int64(1), fp.FileCount)
	})

	t.Run("ChangedDirectoryRebuilds", func(t *testing.T) {
		dir := t.TempDir()
		writeRelease(t, dir, "a.json", feverDoc)

		builder, _ := newTestBuilder(t, dir)
		first, err := builder.BuildOrLoad(ctx, "ICD-11-TM2")
		require.NoError(t, err)
		require.Len(t, first, 1)

		// New file changes the fingerprint
		writeRelease(t, dir, "b.json", `{"code": "TM2-2", "title": "Wind disorder"}`)
		future := time.Now().Add(2 * time.Second)
		require.NoError(t, os.Chtimes(filepath.Join(dir, "b.json"), future, future))

		second, err := builder.BuildOrLoad(ctx, "ICD-11-TM2")
		require.NoError(t, err)
		assert.Len(t, second, 2)
	})

	t.Run("EmptyDirectoryFails", func(t *testing.T) {
		builder, _ := newTestBuilder(t, t.TempDir())
		_, err := builder.BuildOrLoad(ctx, "ICD-11-TM2")
		assert.ErrorIs(t, err, ErrNoSourceFiles)
	})
}
