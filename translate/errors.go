package translate

import "errors"

var (
	// ErrInvalidMaxAttempts indicates a non-positive retry attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrTranslationFailed indicates the external translator failed after
	// all retries.
	ErrTranslationFailed = errors.New("translation failed")

	// ErrInvalidOverrideFile indicates a synonym override file could not be
	// parsed.
	ErrInvalidOverrideFile = errors.New("invalid override file")
)
