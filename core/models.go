package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so that identical content
// always lands on the same key.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Relationship classifies how a source concept relates to a target concept.
type Relationship int

const (
	// RelationshipNone means no usable relationship; the candidate is discarded.
	RelationshipNone Relationship = iota
	// RelationshipEquivalent means source and target denote the same concept.
	RelationshipEquivalent
	// RelationshipNarrower means the source is more specific than the target.
	RelationshipNarrower
	// RelationshipBroader means the source is more general than the target.
	RelationshipBroader
	// RelationshipRelated means the concepts overlap without subsumption.
	RelationshipRelated
)

// String returns the curator-facing label for the relationship.
func (r Relationship) String() string {
	switch r {
	case RelationshipEquivalent:
		return "equivalent"
	case RelationshipNarrower:
		return "narrower"
	case RelationshipBroader:
		return "broader"
	case RelationshipRelated:
		return "related"
	default:
		return "none"
	}
}

// Provenance records where a translation came from.
type Provenance int

const (
	// ProvenanceFresh means the translation was produced by the external service.
	ProvenanceFresh Provenance = iota
	// ProvenanceCache means the translation was reused from the persistent cache.
	ProvenanceCache
	// ProvenanceOverride means a curated synonym override replaced the translation.
	ProvenanceOverride
)

// String returns the audit label for the provenance.
func (p Provenance) String() string {
	switch p {
	case ProvenanceCache:
		return "cache"
	case ProvenanceOverride:
		return "synonym-override"
	default:
		return "fresh"
	}
}

// SourceConcept is a concept from a source terminology. Immutable once loaded.
type SourceConcept struct {
	System     string
	Code       string
	Display    string
	Definition string
}

// JoinedText returns the display joined with the definition, the text the
// translator and matcher operate on.
func (c *SourceConcept) JoinedText() string {
	if c.Definition == "" {
		return c.Display
	}
	if c.Display == "" {
		return c.Definition
	}
	return c.Display + "; " + c.Definition
}

// TargetAlias holds every human-readable label for a target code.
// The primary title comes first, followed by synonyms, index terms,
// inclusions, exclusions and definition strings.
type TargetAlias struct {
	System  string
	Code    string
	Aliases []string
}

// Primary returns the primary title, or "" when the alias list is empty.
func (a *TargetAlias) Primary() string {
	if len(a.Aliases) == 0 {
		return ""
	}
	return a.Aliases[0]
}

// TranslationRecord is the cached outcome of rendering one source concept in
// English, keyed by (System, Code). Persists across runs; last-write-wins.
type TranslationRecord struct {
	System         string
	Code           string
	EnglishText    string
	SourceLang     string
	BackSimilarity float64 // round-trip similarity, 0-100
	Provenance     Provenance
}

// MatchCandidate is a transient scored candidate for one source concept.
type MatchCandidate struct {
	TargetCode     string
	TargetLabel    string
	LexicalScore   float64
	FinalScore     float64
	EnglishText    string
	SourceLang     string
	BackSimilarity float64
}

// MappingRecord is an accepted alignment between a source and a target
// concept. Append-only; unique on the four-tuple (SourceSystem, SourceCode,
// TargetSystem, TargetCode) — duplicate upserts are absorbed as no-ops.
type MappingRecord struct {
	SourceSystem   string
	SourceCode     string
	TargetSystem   string
	TargetCode     string
	Relationship   Relationship
	Confidence     float64 // 0-100
	SourceDisplay  string
	TargetDisplay  string
	SourceLang     string
	TranslatedText string
	BackSimilarity float64
	Provenance     Provenance
}

// Tuple returns the identity four-tuple as a string, used for deterministic IDs.
func (m *MappingRecord) Tuple() string {
	return "(" + m.SourceSystem + "," + m.SourceCode + "," + m.TargetSystem + "," + m.TargetCode + ")"
}

// RecordID returns the content-based ID of the mapping's four-tuple.
// Duplicate mappings hash to the same ID, which is what makes upserts idempotent.
func (m *MappingRecord) RecordID() ID {
	return IDFromContent(m.Tuple())
}

// ReviewItem is an uncertain candidate set handed to a human curator.
// Ephemeral output only; never persisted alongside mappings.
type ReviewItem struct {
	SourceSystem          string
	SourceCode            string
	SourceDisplay         string
	TargetSystem          string
	TranslatedText        string
	BackSimilarity        float64
	Candidates            []MatchCandidate // top candidates, at most five
	SuggestedRelationship string
	FinalScore            float64
}

// AliasFingerprint identifies a snapshot of an alias source directory.
// The index artifact is rebuilt only when the fingerprint changes.
type AliasFingerprint struct {
	FileCount     int64
	LatestModTime int64 // unix microseconds
}

// Equal reports whether two fingerprints describe the same snapshot.
func (f AliasFingerprint) Equal(other AliasFingerprint) bool {
	return f.FileCount == other.FileCount && f.LatestModTime == other.LatestModTime
}

// EmbeddingArtifact holds precomputed unit-normalized alias vectors for one
// target system, one vector per target code.
type EmbeddingArtifact struct {
	System  string
	Codes   []string
	Vectors [][]float32
}
