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


package core

import "fmt"

// ValidateSourceConcept validates a SourceConcept according to domain rules.
//
// Validation rules:
//   - System must not be empty
//   - Code must not be empty
//
// NOT validated:
//   - Display and Definition (either may be empty; a concept with neither
//     simply produces no match text and goes unmapped)
func ValidateSourceConcept(concept *SourceConcept) error {
	if concept == nil {
		return fmt.Errorf("%w: concept is nil", ErrInvalidConcept)
	}

	if concept.System == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConcept, ErrEmptySystem)
	}

	if concept.Code == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConcept, ErrEmptyCode)
	}

	return nil
}

// ValidateMappingRecord validates a MappingRecord before persistence.
//
// Validation rules:
//   - all four identity fields must be non-empty
//   - Relationship must be one of the four accepted values (never none)
//   - Confidence must be in [0, 100]
func ValidateMappingRecord(record *MappingRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidMapping)
	}

	if record.SourceSystem == "" || record.TargetSystem == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMapping, ErrEmptySystem)
	}

	if record.SourceCode == "" || record.TargetCode == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMapping, ErrEmptyCode)
	}

	if err := ValidateRelationship(record.Relationship); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMapping, err)
	}

	if record.Confidence < 0 || record.Confidence > 100 {
		return fmt.Errorf("%w: %w", ErrInvalidMapping, ErrInvalidConfidence)
	}

	return nil
}

// ValidateTranslationRecord validates a TranslationRecord before caching.
func ValidateTranslationRecord(record *TranslationRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidTranslation)
	}

	if record.System == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTranslation, ErrEmptySystem)
	}

	if record.Code == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTranslation, ErrEmptyCode)
	}

	if record.BackSimilarity < 0 || record.BackSimilarity > 100 {
		return fmt.Errorf("%w: %w", ErrInvalidTranslation, ErrInvalidSimilarity)
	}

	return nil
}

// ValidateRelationship validates that a Relationship carries one of the four
// emittable values. RelationshipNone is not emittable.
func ValidateRelationship(r Relationship) error {
	switch r {
	case RelationshipEquivalent, RelationshipNarrower, RelationshipBroader, RelationshipRelated:
		return nil
	default:
		return ErrInvalidRelationship
	}
}
