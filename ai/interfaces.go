package ai

import "context"

// Translator translates terminology text between languages.
// Implementations must be thread-safe for concurrent use.
type Translator interface {
	// Translate translates a single text from the source language to the
	// target language. Language tags use the FLORES convention, for example
	// "hin_Deva" or "eng_Latn".
	// Returns an error if the translation fails.
	Translate(ctx context.Context, text, sourceTag, targetTag string) (string, error)

	// TranslateBatch translates multiple texts in chunks of batchSize.
	// The returned slice contains translations in the same order as the
	// input texts.
	// Returns an error if any chunk fails.
	TranslateBatch(ctx context.Context, texts []string, sourceTag, targetTag string, batchSize int) ([]string, error)
}

// Embedder generates vector embeddings from text for semantic shortlisting.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in the same order as the
	// input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Translator and
// Embedder instances, ensuring they share configuration appropriately.
type AIProvider interface {
	// Translator returns the translation service.
	// The returned Translator is safe for concurrent use.
	Translator() Translator

	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
