package mapping

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishika0212/termalign/core"
	"github.com/rishika0212/termalign/match"
)

func newTestMatcher() *Matcher {
	return NewMatcher(match.NewScorer(), match.NewPrefilter(0.30, false), nil)
}

func codeSet(codes ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return set
}

func TestFindCandidates(t *testing.T) {
	ctx := context.Background()
	matcher := newTestMatcher()

	record := &core.TranslationRecord{
		EnglishText:    "fever disorder",
		SourceLang:     "eng_Latn",
		BackSimilarity: 100,
	}

	aliases := []*core.TargetAlias{
		{System: "ICD-11-TM2", Code: "SP00", Aliases: []string{"Fever disorder"}},
		{System: "ICD-11-TM2", Code: "SP75", Aliases: []string{"Abdominal pain"}},
		{System: "ICD-11-TM2", Code: "SP50", Aliases: []string{"Fever disorder"}},
	}

	t.Run("ExactMatchScores100", func(t *testing.T) {
		got := matcher.FindCandidates(ctx, record, "ICD-11-TM2", aliases, codeSet("SP00", "SP75"))
		require.Len(t, got, 1)
		assert.Equal(t, "SP00", got[0].TargetCode)
		assert.Equal(t, "Fever disorder", got[0].TargetLabel)
		assert.Equal(t, 100.0, got[0].LexicalScore)
		assert.Equal(t, 100.0, got[0].FinalScore)
	})

	t.Run("AbsentTargetCodeIsFilteredOut", func(t *testing.T) {
		// SP50 matches perfectly but is not a valid code in the store
		got := matcher.FindCandidates(ctx, record, "ICD-11-TM2", aliases, codeSet("SP75"))
		assert.Empty(t, got)
	})

	t.Run("EmptyTranslationYieldsNothing", func(t *testing.T) {
		empty := &core.TranslationRecord{EnglishText: "   "}
		got := matcher.FindCandidates(ctx, empty, "ICD-11-TM2", aliases, codeSet("SP00"))
		assert.Nil(t, got)
	})

	t.Run("TiesOrderByTargetCode", func(t *testing.T) {
		tied := []*core.TargetAlias{
			{System: "ICD-11-TM2", Code: "SPB", Aliases: []string{"Fever disorder"}},
			{System: "ICD-11-TM2", Code: "SPA", Aliases: []string{"Fever disorder"}},
		}
		got := matcher.FindCandidates(ctx, record, "ICD-11-TM2", tied, codeSet("SPA", "SPB"))
		require.Len(t, got, 2)
		assert.Equal(t, "SPA", got[0].TargetCode)
		assert.Equal(t, "SPB", got[1].TargetCode)
	})

	t.Run("RawLabelWinsOverNormalizedVariant", func(t *testing.T) {
		entry := []*core.TargetAlias{
			{System: "ICD-11-TM2", Code: "SP00", Aliases: []string{"Fever disorder (TM2)", "fever disorder tm2"}},
		}
		tm2 := &core.TranslationRecord{EnglishText: "fever disorder tm2", SourceLang: "eng_Latn", BackSimilarity: 100}
		got := matcher.FindCandidates(ctx, tm2, "ICD-11-TM2", entry, codeSet("SP00"))
		require.Len(t, got, 1)
		// both labels normalize to the source text; the raw one comes first
		assert.Equal(t, "Fever disorder (TM2)", got[0].TargetLabel)
		assert.Equal(t, 100.0, got[0].LexicalScore)
	})
}
