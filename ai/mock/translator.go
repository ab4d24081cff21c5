package mock

import (
	"context"
	"strings"
)

// MockTranslator is a test double for ai.Translator.
// It allows custom behavior injection via function fields.
type MockTranslator struct {
	// TranslateFunc is called by Translate if set.
	// If nil, uses default deterministic behavior.
	TranslateFunc func(ctx context.Context, text, sourceTag, targetTag string) (string, error)

	// TranslateBatchFunc is called by TranslateBatch if set.
	// If nil, batches are served through Translate.
	TranslateBatchFunc func(ctx context.Context, texts []string, sourceTag, targetTag string, batchSize int) ([]string, error)

	callCount int
}

// NewMockTranslator creates a mock translator with default deterministic
// behavior. Note: returns concrete type to allow test assertions.
func NewMockTranslator() *MockTranslator {
	return &MockTranslator{}
}

// Translate returns a deterministic pseudo-translation. Translating into
// English prefixes the text with "en "; translating back out of English
// strips that prefix, so a forward/back round trip reproduces the input
// exactly.
func (m *MockTranslator) Translate(ctx context.Context, text, sourceTag, targetTag string) (string, error) {
	m.callCount++

	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, text, sourceTag, targetTag)
	}

	if targetTag == "eng_Latn" {
		return "en " + text, nil
	}
	return strings.TrimPrefix(text, "en "), nil
}

// TranslateBatch translates each text via Translate unless a custom batch
// function is injected.
func (m *MockTranslator) TranslateBatch(ctx context.Context, texts []string, sourceTag, targetTag string, batchSize int) ([]string, error) {
	m.callCount++

	if m.TranslateBatchFunc != nil {
		return m.TranslateBatchFunc(ctx, texts, sourceTag, targetTag, batchSize)
	}

	out := make([]string, len(texts))
	for i, text := range texts {
		translated, err := m.Translate(ctx, text, sourceTag, targetTag)
		if err != nil {
			return nil, err
		}
		out[i] = translated
	}
	return out, nil
}

// CallCount returns the number of times any method was called.
func (m *MockTranslator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockTranslator) Reset() {
	m.callCount = 0
	m.TranslateFunc = nil
	m.TranslateBatchFunc = nil
}
