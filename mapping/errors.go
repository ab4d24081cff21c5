package mapping

import "errors"

var (
	// ErrNoConcepts indicates the source system has no concepts loaded.
	// This is a configuration error, not an empty result.
	ErrNoConcepts = errors.New("no source concepts loaded")

	// ErrNoTargets indicates a run was started without any usable target
	// system.
	ErrNoTargets = errors.New("no usable target systems")
)
