package mapping

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rishika0212/termalign/core"
)

// RunReport summarizes one alignment run for operators.
type RunReport struct {
	SourceSystem string   `json:"sourceSystem"`
	Targets      []string `json:"targets"`
	// DisabledTargets lists targets that failed to prepare and were skipped.
	DisabledTargets []string `json:"disabledTargets,omitempty"`

	ConceptCount           int `json:"conceptCount"`
	TranslatedFresh        int `json:"translatedFresh"`
	TranslatedFromCache    int `json:"translatedFromCache"`
	TranslatedFromOverride int `json:"translatedFromOverride"`
	TranslationRejected    int `json:"translationRejected"`

	Accepted      int `json:"accepted"`
	Inserted      int `json:"inserted"`
	ReviewCount   int `json:"reviewCount"`
	UnmappedCount int `json:"unmappedCount"`

	// Relationships counts accepted mappings per relationship type.
	Relationships map[string]int `json:"relationships,omitempty"`

	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// UnmappedConcept records a source concept that produced no accepted mapping
// against any target.
type UnmappedConcept struct {
	SourceSystem   string  `json:"sourceSystem"`
	SourceCode     string  `json:"sourceCode"`
	SourceDisplay  string  `json:"sourceDisplay"`
	TranslatedText string  `json:"translatedText"`
	BackSimilarity float64 `json:"backSimilarity"`
}

// TranslationAudit is one row of a translation dry run.
type TranslationAudit struct {
	SourceSystem   string  `json:"sourceSystem"`
	SourceCode     string  `json:"sourceCode"`
	SourceDisplay  string  `json:"sourceDisplay"`
	SourceLang     string  `json:"sourceLang"`
	EnglishText    string  `json:"englishText"`
	BackSimilarity float64 `json:"backSimilarity"`
	Provenance     string  `json:"provenance"`
	WouldReject    bool    `json:"wouldReject"`
}

// RunResult bundles everything a run produced.
type RunResult struct {
	Report   RunReport
	Mappings []*core.MappingRecord
	Reviews  []core.ReviewItem
	Unmapped []UnmappedConcept
}

// WriteReport writes the run report as indented JSON.
func WriteReport(w io.Writer, report RunReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// reviewCandidateColumns is how many candidate triples the review CSV carries.
const reviewCandidateColumns = 5

// WriteReviewCSV writes review items in the layout curators work with:
// one row per uncertain concept, the top candidates flattened into
// code/label/score column triples, and two empty trailing columns for the
// curator to fill in.
func WriteReviewCSV(w io.Writer, items []core.ReviewItem) error {
	cw := csv.NewWriter(w)

	header := []string{
		"source_system", "source_code", "source_display", "target_system",
		"translated_text", "back_similarity", "suggested_relationship", "final_score",
	}
	for i := 1; i <= reviewCandidateColumns; i++ {
		header = append(header,
			fmt.Sprintf("cand%d_code", i),
			fmt.Sprintf("cand%d_label", i),
			fmt.Sprintf("cand%d_score", i),
		)
	}
	header = append(header, "curator_id", "comment")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, item := range items {
		row := []string{
			item.SourceSystem,
			item.SourceCode,
			item.SourceDisplay,
			item.TargetSystem,
			item.TranslatedText,
			formatScore(item.BackSimilarity),
			item.SuggestedRelationship,
			formatScore(item.FinalScore),
		}
		for i := 0; i < reviewCandidateColumns; i++ {
			if i < len(item.Candidates) {
				cand := item.Candidates[i]
				row = append(row, cand.TargetCode, cand.TargetLabel, formatScore(cand.FinalScore))
			} else {
				row = append(row, "", "", "")
			}
		}
		row = append(row, "", "")
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteUnmappedCSV writes the concepts no target could absorb.
func WriteUnmappedCSV(w io.Writer, items []UnmappedConcept) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{
		"source_system", "source_code", "source_display", "translated_text", "back_similarity",
	}); err != nil {
		return err
	}
	for _, item := range items {
		if err := cw.Write([]string{
			item.SourceSystem,
			item.SourceCode,
			item.SourceDisplay,
			item.TranslatedText,
			formatScore(item.BackSimilarity),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTranslationAuditCSV writes a dry-run translation audit.
func WriteTranslationAuditCSV(w io.Writer, audits []TranslationAudit) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{
		"source_system", "source_code", "source_display", "source_lang",
		"english_text", "back_similarity", "provenance", "would_reject",
	}); err != nil {
		return err
	}
	for _, audit := range audits {
		if err := cw.Write([]string{
			audit.SourceSystem,
			audit.SourceCode,
			audit.SourceDisplay,
			audit.SourceLang,
			audit.EnglishText,
			formatScore(audit.BackSimilarity),
			audit.Provenance,
			strconv.FormatBool(audit.WouldReject),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteMappingsJSON writes accepted mappings as a JSON array.
func WriteMappingsJSON(w io.Writer, mappings []*core.MappingRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(mappings)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
