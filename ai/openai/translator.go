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


package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/rishika0212/termalign/ai"
)

// Translator implements ai.Translator using OpenAI-compatible chat APIs.
type Translator struct {
	client llms.Model
	logger *slog.Logger
}

// languageNames maps FLORES-style language tags to the names used in prompts.
var languageNames = map[string]string{
	"eng_Latn": "English",
	"hin_Deva": "Hindi",
	"ben_Beng": "Bengali",
	"pan_Guru": "Punjabi",
	"guj_Gujr": "Gujarati",
	"ory_Orya": "Odia",
	"tam_Taml": "Tamil",
	"tel_Telu": "Telugu",
	"kan_Knda": "Kannada",
	"mal_Mlym": "Malayalam",
	"urd_Arab": "Urdu",
	"san_Deva": "Sanskrit",
}

// newTranslator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newTranslator(config *ai.Config) (*Translator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.TranslationHost),
		openai.WithToken("none"),
		openai.WithModel(config.TranslationModel),
	)
	if err != nil {
		return nil, err
	}

	return &Translator{
		client: client,
		logger: slog.Default().With("component", "openai-translator"),
	}, nil
}

// NewTranslator creates a new translator using the provided configuration.
//
// Returns ai.Translator interface to enforce abstraction.
func NewTranslator(config *ai.Config) (ai.Translator, error) {
	return newTranslator(config)
}

// Translate translates a single text between the given language tags.
// Temperature is pinned to zero so repeated runs produce identical output.
func (t *Translator) Translate(ctx context.Context, text, sourceTag, targetTag string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	systemPrompt := fmt.Sprintf(
		"You are a medical terminology translator. Translate the user's text from %s to %s. "+
			"The text is a clinical term or short definition from a traditional medicine vocabulary. "+
			"Reply with the translation only. No explanations, no quotes, no transliteration notes.",
		languageName(sourceTag), languageName(targetTag))

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	response, err := t.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		t.logger.Error("failed to generate translation", "source", sourceTag, "target", targetTag, "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		t.logger.Debug("no choices returned from model")
		return "", fmt.Errorf("translation returned no choices")
	}

	out := strings.TrimSpace(response.Choices[0].Content)
	out = strings.Trim(out, `"`)
	return out, nil
}

// TranslateBatch translates texts in chunks of batchSize. Each chunk is
// translated item by item so a transient failure surfaces with the index of
// the text that caused it.
func (t *Translator) TranslateBatch(ctx context.Context, texts []string, sourceTag, targetTag string, batchSize int) ([]string, error) {
	if batchSize < 1 {
		batchSize = 1
	}

	out := make([]string, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}
		t.logger.Debug("translating chunk", "from", start, "to", end, "total", len(texts))

		for i := start; i < end; i++ {
			translated, err := t.Translate(ctx, texts[i], sourceTag, targetTag)
			if err != nil {
				return nil, fmt.Errorf("translating text %d: %w", i, err)
			}
			out[i] = translated
		}
	}
	return out, nil
}

func languageName(tag string) string {
	if name, ok := languageNames[tag]; ok {
		return name
	}
	return tag
}
