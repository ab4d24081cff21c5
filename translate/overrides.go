package translate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rishika0212/termalign/text"
)

// LoadSystemOverrides loads curated synonym overrides for a coding system
// from <dir>/<system>_synonyms.json. The file maps source-language terms to
// hand-picked English equivalents:
//
//	{"ज्वर": "fever", "Āmavāta": "rheumatoid arthritis"}
//
// Keys are normalized so lookups work on normalized source text. A missing
// file yields an empty map, not an error; overrides are optional per system.
func LoadSystemOverrides(dir, system string) (map[string]string, error) {
	path := filepath.Join(dir, sanitizeSystemName(system)+"_synonyms.json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidOverrideFile, path, err)
	}

	overrides := make(map[string]string, len(raw))
	for term, english := range raw {
		key := text.Normalize(term)
		if key == "" || strings.TrimSpace(english) == "" {
			continue
		}
		overrides[key] = english
	}
	return overrides, nil
}

// sanitizeSystemName lowercases a system name and flattens separators so
// "NAMASTE-Ayurveda" looks for "namaste_ayurveda_synonyms.json".
func sanitizeSystemName(system string) string {
	s := strings.ToLower(system)
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
