package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("EmptyString", func(t *testing.T) {
		assert.Equal(t, "", Normalize(""))
	})

	t.Run("LowercasesAndCollapsesPunctuation", func(t *testing.T) {
		assert.Equal(t, "fever of unknown origin", Normalize("  Fever, of Unknown—Origin!  "))
	})

	t.Run("StripsDiacritics", func(t *testing.T) {
		assert.Equal(t, "amavata", Normalize("Āmavāta"))
		assert.Equal(t, "sula", Normalize("śūla"))
	})

	t.Run("TransliteratesDevanagari", func(t *testing.T) {
		got := Normalize("ज्वर")
		assert.NotEmpty(t, got)
		for _, r := range got {
			isLatin := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' '
			assert.True(t, isLatin, "expected ascii output, got %q", got)
		}
	})

	t.Run("FoldsSpellingVariants", func(t *testing.T) {
		assert.Equal(t, Normalize("tumor of the edema"), Normalize("Tumour of the Oedema"))
		assert.Equal(t, "hemorrhage", Normalize("haemorrhage"))
		assert.Equal(t, "anemia", Normalize("anaemia"))
		assert.Equal(t, "pediatric esophagitis", Normalize("paediatric oesophagitis"))
	})

	t.Run("Idempotent", func(t *testing.T) {
		once := Normalize("Vāta-vyādhi (wind disorder)")
		assert.Equal(t, once, Normalize(once))
	})

	t.Run("NumbersKept", func(t *testing.T) {
		assert.Equal(t, "type 2 diabetes", Normalize("Type 2 diabetes"))
	})
}
