package driven

import (
	"context"

	"github.com/rostlab/tmvis/internal/core/domain"
)

// AnnotationFetcher retrieves one remote source's raw payload.
// Implementations own their timeouts, throttling and wire formats.
type AnnotationFetcher interface {
	// Source returns the registry source the payload belongs to.
	Source() domain.AnnotationSource

	// Fetch returns the raw payload for an identifier.
	// Returns domain.ErrNoCoverage when the upstream has no entry.
	Fetch(ctx context.Context, id string) (*domain.RawPayload, error)
}

// StructureFetcher retrieves predicted models and their sequence.
type StructureFetcher interface {
	// FetchStructure returns model metadata and, when withModel is true, the model file.
	// Returns domain.ErrNoCoverage when no model exists.
	FetchStructure(ctx context.Context, accession string, withModel bool) (*domain.Structure, error)
}
