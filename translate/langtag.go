package translate

// DetectLangTag infers the FLORES language tag of a text from its dominant
// Unicode script. Scripts map to the language each coding system publishes
// in: Devanagari to Hindi, Arabic-range script to Urdu, and the south Indian
// scripts to their primary language. Text without any Indic or Arabic
// characters is treated as English.
func DetectLangTag(text string) string {
	counts := make(map[string]int)
	for _, r := range text {
		switch {
		case r >= 0x0900 && r <= 0x097F:
			counts["hin_Deva"]++
		case r >= 0x0980 && r <= 0x09FF:
			counts["ben_Beng"]++
		case r >= 0x0A00 && r <= 0x0A7F:
			counts["pan_Guru"]++
		case r >= 0x0A80 && r <= 0x0AFF:
			counts["guj_Gujr"]++
		case r >= 0x0B00 && r <= 0x0B7F:
			counts["ory_Orya"]++
		case r >= 0x0B80 && r <= 0x0BFF:
			counts["tam_Taml"]++
		case r >= 0x0C00 && r <= 0x0C7F:
			counts["tel_Telu"]++
		case r >= 0x0C80 && r <= 0x0CFF:
			counts["kan_Knda"]++
		case r >= 0x0D00 && r <= 0x0D7F:
			counts["mal_Mlym"]++
		case r >= 0x0600 && r <= 0x077F:
			counts["urd_Arab"]++
		}
	}

	best, bestCount := "eng_Latn", 0
	for tag, count := range counts {
		if count > bestCount {
			best, bestCount = tag, count
		}
	}
	return best
}
