// Package text canonicalizes terminology strings across scripts and spelling
// variants. All functions are pure and deterministic.
package text

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// British/American variants and common medical variants. Order matters:
// "haemorrhage" must fold before the bare "haem" stem.
var spellingVariants = [][2]string{
	{"tumour", "tumor"},
	{"oedema", "edema"},
	{"haemorrhage", "hemorrhage"},
	{"haem", "hem"},
	{"anaemia", "anemia"},
	{"foetal", "fetal"},
	{"paediatric", "pediatric"},
	{"oesoph", "esoph"},
}

// Normalize canonicalizes text for matching: best-effort transliteration of
// non-Latin scripts, diacritic stripping, spelling-variant folding,
// lowercasing, and collapsing to single-spaced alphanumeric tokens.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	// Transliterate non-Latin scripts (Devanagari, Tamil, Arabic, ...)
	s = unidecode.Unidecode(s)

	// Strip combining marks left over from Latin diacritics
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}

	s = strings.ToLower(s)
	for _, v := range spellingVariants {
		s = strings.ReplaceAll(s, v[0], v[1])
	}

	// Replace every non-alphanumeric run with a single space
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		} else {
			pendingSpace = true
		}
	}
	return b.String()
}
