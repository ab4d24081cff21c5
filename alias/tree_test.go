package alias

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, raw string) TreeValue {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return FromJSON(v)
}

func TestCollectStrings(t *testing.T) {
	t.Run("PlainString", func(t *testing.T) {
		assert.Equal(t, []string{"Fever disorder"}, CollectStrings(parse(t, `"Fever disorder"`)))
	})

	t.Run("ValueWrapper", func(t *testing.T) {
		got := CollectStrings(parse(t, `{"@value": "Fever disorder", "@language": "en"}`))
		assert.Equal(t, []string{"Fever disorder"}, got)
	})

	t.Run("ListOfWrappers", func(t *testing.T) {
		got := CollectStrings(parse(t, `[{"label": {"@value": "Pyrexia"}}, "Fever", {"title": "Febrile state"}]`))
		assert.Equal(t, []string{"Pyrexia", "Fever", "Febrile state"}, got)
	})

	t.Run("DeduplicatesPreservingOrder", func(t *testing.T) {
		got := CollectStrings(parse(t, `["Fever", {"@value": "Fever"}, "Pyrexia"]`))
		assert.Equal(t, []string{"Fever", "Pyrexia"}, got)
	})

	t.Run("IgnoresNonLabelFields", func(t *testing.T) {
		got := CollectStrings(parse(t, `{"code": "TM2-1", "browserUrl": "http://x", "@value": "Fever"}`))
		assert.Equal(t, []string{"Fever"}, got)
	})

	t.Run("NumbersAndBoolsAreNull", func(t *testing.T) {
		assert.Empty(t, CollectStrings(parse(t, `[1, true, null]`)))
	})
}
