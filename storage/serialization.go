// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"github.com/rishika0212/termalign/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalSourceConcept serializes a SourceConcept to bytes.
func MarshalSourceConcept(concept *core.SourceConcept) []byte {
	buf := make([]byte, core.SourceConceptMUS.Size(*concept))
	core.SourceConceptMUS.Marshal(*concept, buf)
	return buf
}

// UnmarshalSourceConcept deserializes a SourceConcept from bytes.
func UnmarshalSourceConcept(data []byte) (*core.SourceConcept, error) {
	concept, _, err := core.SourceConceptMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &concept, nil
}

// MarshalTranslationRecord serializes a TranslationRecord to bytes.
func MarshalTranslationRecord(record *core.TranslationRecord) []byte {
	buf := make([]byte, core.TranslationRecordMUS.Size(*record))
	core.TranslationRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalTranslationRecord deserializes a TranslationRecord from bytes.
func UnmarshalTranslationRecord(data []byte) (*core.TranslationRecord, error) {
	record, _, err := core.TranslationRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalMappingRecord serializes a MappingRecord to bytes.
func MarshalMappingRecord(record *core.MappingRecord) []byte {
	buf := make([]byte, core.MappingRecordMUS.Size(*record))
	core.MappingRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalMappingRecord deserializes a MappingRecord from bytes.
func UnmarshalMappingRecord(data []byte) (*core.MappingRecord, error) {
	record, _, err := core.MappingRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalTargetAlias serializes a TargetAlias to bytes.
func MarshalTargetAlias(alias *core.TargetAlias) []byte {
	buf := make([]byte, core.TargetAliasMUS.Size(*alias))
	core.TargetAliasMUS.Marshal(*alias, buf)
	return buf
}

// UnmarshalTargetAlias deserializes a TargetAlias from bytes.
func UnmarshalTargetAlias(data []byte) (*core.TargetAlias, error) {
	alias, _, err := core.TargetAliasMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &alias, nil
}

// MarshalAliasFingerprint serializes an AliasFingerprint to bytes.
func MarshalAliasFingerprint(fp core.AliasFingerprint) []byte {
	buf := make([]byte, core.AliasFingerprintMUS.Size(fp))
	core.AliasFingerprintMUS.Marshal(fp, buf)
	return buf
}

// UnmarshalAliasFingerprint deserializes an AliasFingerprint from bytes.
func UnmarshalAliasFingerprint(data []byte) (core.AliasFingerprint, error) {
	fp, _, err := core.AliasFingerprintMUS.Unmarshal(data)
	return fp, err
}

// MarshalEmbeddingArtifact serializes an EmbeddingArtifact to bytes.
func MarshalEmbeddingArtifact(artifact *core.EmbeddingArtifact) []byte {
	buf := make([]byte, core.EmbeddingArtifactMUS.Size(*artifact))
	core.EmbeddingArtifactMUS.Marshal(*artifact, buf)
	return buf
}

// UnmarshalEmbeddingArtifact deserializes an EmbeddingArtifact from bytes.
func UnmarshalEmbeddingArtifact(data []byte) (*core.EmbeddingArtifact, error) {
	artifact, _, err := core.EmbeddingArtifactMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}
