package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written mus-format serializers for the records that reach storage.
// All stored structs are small and flat, so the serializers compose the
// primitive codecs directly instead of going through code generation.

var (
	vectorSer  = ord.NewSliceSer[float32](varint.Float32)
	vectorsSer = ord.NewSliceSer[[]float32](vectorSer)
	stringsSer = ord.NewSliceSer[string](ord.String)
)

// IDMUS serializes IDs.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

// SourceConceptMUS serializes SourceConcepts.
var SourceConceptMUS = sourceConceptMUS{}

type sourceConceptMUS struct{}

func (sourceConceptMUS) Marshal(c SourceConcept, bs []byte) (n int) {
	n = ord.String.Marshal(c.System, bs)
	n += ord.String.Marshal(c.Code, bs[n:])
	n += ord.String.Marshal(c.Display, bs[n:])
	n += ord.String.Marshal(c.Definition, bs[n:])
	return n
}

func (sourceConceptMUS) Unmarshal(bs []byte) (c SourceConcept, n int, err error) {
	var n1 int
	if c.System, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if c.Code, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.Display, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.Definition, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (sourceConceptMUS) Size(c SourceConcept) int {
	return ord.String.Size(c.System) + ord.String.Size(c.Code) +
		ord.String.Size(c.Display) + ord.String.Size(c.Definition)
}

// TargetAliasMUS serializes TargetAliases.
var TargetAliasMUS = targetAliasMUS{}

type targetAliasMUS struct{}

func (targetAliasMUS) Marshal(a TargetAlias, bs []byte) (n int) {
	n = ord.String.Marshal(a.System, bs)
	n += ord.String.Marshal(a.Code, bs[n:])
	n += stringsSer.Marshal(a.Aliases, bs[n:])
	return n
}

func (targetAliasMUS) Unmarshal(bs []byte) (a TargetAlias, n int, err error) {
	var n1 int
	if a.System, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if a.Code, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if a.Aliases, n1, err = stringsSer.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (targetAliasMUS) Size(a TargetAlias) int {
	return ord.String.Size(a.System) + ord.String.Size(a.Code) + stringsSer.Size(a.Aliases)
}

// TranslationRecordMUS serializes TranslationRecords.
var TranslationRecordMUS = translationRecordMUS{}

type translationRecordMUS struct{}

func (translationRecordMUS) Marshal(r TranslationRecord, bs []byte) (n int) {
	n = ord.String.Marshal(r.System, bs)
	n += ord.String.Marshal(r.Code, bs[n:])
	n += ord.String.Marshal(r.EnglishText, bs[n:])
	n += ord.String.Marshal(r.SourceLang, bs[n:])
	n += varint.Float64.Marshal(r.BackSimilarity, bs[n:])
	n += varint.Int.Marshal(int(r.Provenance), bs[n:])
	return n
}

func (translationRecordMUS) Unmarshal(bs []byte) (r TranslationRecord, n int, err error) {
	var n1 int
	if r.System, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if r.Code, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.EnglishText, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.SourceLang, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.BackSimilarity, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	var p int
	if p, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	r.Provenance = Provenance(p)
	return
}

func (translationRecordMUS) Size(r TranslationRecord) int {
	return ord.String.Size(r.System) + ord.String.Size(r.Code) +
		ord.String.Size(r.EnglishText) + ord.String.Size(r.SourceLang) +
		varint.Float64.Size(r.BackSimilarity) + varint.Int.Size(int(r.Provenance))
}

// MappingRecordMUS serializes MappingRecords.
var MappingRecordMUS = mappingRecordMUS{}

type mappingRecordMUS struct{}

func (mappingRecordMUS) Marshal(m MappingRecord, bs []byte) (n int) {
	n = ord.String.Marshal(m.SourceSystem, bs)
	n += ord.String.Marshal(m.SourceCode, bs[n:])
	n += ord.String.Marshal(m.TargetSystem, bs[n:])
	n += ord.String.Marshal(m.TargetCode, bs[n:])
	n += varint.Int.Marshal(int(m.Relationship), bs[n:])
	n += varint.Float64.Marshal(m.Confidence, bs[n:])
	n += ord.String.Marshal(m.SourceDisplay, bs[n:])
	n += ord.String.Marshal(m.TargetDisplay, bs[n:])
	n += ord.String.Marshal(m.SourceLang, bs[n:])
	n += ord.String.Marshal(m.TranslatedText, bs[n:])
	n += varint.Float64.Marshal(m.BackSimilarity, bs[n:])
	n += varint.Int.Marshal(int(m.Provenance), bs[n:])
	return n
}

func (mappingRecordMUS) Unmarshal(bs []byte) (m MappingRecord, n int, err error) {
	var n1 int
	if m.SourceSystem, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if m.SourceCode, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if m.TargetSystem, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if m.TargetCode, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	var rel int
	if rel, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	m.Relationship = Relationship(rel)
	if m.Confidence, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if m.SourceDisplay, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if m.TargetDisplay, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if m.SourceLang, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if m.TranslatedText, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if m.BackSimilarity, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	var p int
	if p, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	m.Provenance = Provenance(p)
	return
}

func (mappingRecordMUS) Size(m MappingRecord) int {
	return ord.String.Size(m.SourceSystem) + ord.String.Size(m.SourceCode) +
		ord.String.Size(m.TargetSystem) + ord.String.Size(m.TargetCode) +
		varint.Int.Size(int(m.Relationship)) + varint.Float64.Size(m.Confidence) +
		ord.String.Size(m.SourceDisplay) + ord.String.Size(m.TargetDisplay) +
		ord.String.Size(m.SourceLang) + ord.String.Size(m.TranslatedText) +
		varint.Float64.Size(m.BackSimilarity) + varint.Int.Size(int(m.Provenance))
}

// AliasFingerprintMUS serializes AliasFingerprints.
var AliasFingerprintMUS = aliasFingerprintMUS{}

type aliasFingerprintMUS struct{}

func (aliasFingerprintMUS) Marshal(f AliasFingerprint, bs []byte) (n int) {
	n = varint.Int64.Marshal(f.FileCount, bs)
	n += varint.Int64.Marshal(f.LatestModTime, bs[n:])
	return n
}

func (aliasFingerprintMUS) Unmarshal(bs []byte) (f AliasFingerprint, n int, err error) {
	var n1 int
	if f.FileCount, n, err = varint.Int64.Unmarshal(bs); err != nil {
		return
	}
	if f.LatestModTime, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (aliasFingerprintMUS) Size(f AliasFingerprint) int {
	return varint.Int64.Size(f.FileCount) + varint.Int64.Size(f.LatestModTime)
}

// EmbeddingArtifactMUS serializes EmbeddingArtifacts.
var EmbeddingArtifactMUS = embeddingArtifactMUS{}

type embeddingArtifactMUS struct{}

func (embeddingArtifactMUS) Marshal(a EmbeddingArtifact, bs []byte) (n int) {
	n = ord.String.Marshal(a.System, bs)
	n += stringsSer.Marshal(a.Codes, bs[n:])
	n += vectorsSer.Marshal(a.Vectors, bs[n:])
	return n
}

func (embeddingArtifactMUS) Unmarshal(bs []byte) (a EmbeddingArtifact, n int, err error) {
	var n1 int
	if a.System, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if a.Codes, n1, err = stringsSer.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if a.Vectors, n1, err = vectorsSer.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (embeddingArtifactMUS) Size(a EmbeddingArtifact) int {
	return ord.String.Size(a.System) + stringsSer.Size(a.Codes) + vectorsSer.Size(a.Vectors)
}
