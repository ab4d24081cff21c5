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

import "errors"

// Domain validation errors
var (
	// ErrInvalidConcept indicates a SourceConcept failed validation.
	ErrInvalidConcept = errors.New("invalid source concept")

	// ErrInvalidMapping indicates a MappingRecord failed validation.
	ErrInvalidMapping = errors.New("invalid mapping record")

	// ErrInvalidTranslation indicates a TranslationRecord failed validation.
	ErrInvalidTranslation = errors.New("invalid translation record")

	// ErrEmptySystem indicates the System field is empty.
	ErrEmptySystem = errors.New("system cannot be empty")

	// ErrEmptyCode indicates the Code field is empty.
	ErrEmptyCode = errors.New("code cannot be empty")

	// ErrInvalidRelationship indicates a Relationship outside the accepted set.
	ErrInvalidRelationship = errors.New("invalid relationship")

	// ErrInvalidConfidence indicates a confidence outside [0, 100].
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 100")

	// ErrInvalidSimilarity indicates a back-translation similarity outside [0, 100].
	ErrInvalidSimilarity = errors.New("similarity must be between 0 and 100")
)
