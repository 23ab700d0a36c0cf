package driven

import (
	"context"

	"github.com/rostlab/tmvis/internal/core/domain"
)

// NormaliserRegistry dispatches payloads to the normaliser of their source.
type NormaliserRegistry interface {
	// Normalise transforms a payload using the normaliser registered for payload.Source.
	Normalise(ctx context.Context, payload *domain.RawPayload, sequenceLength int) (*NormaliseResult, error)

	// Register adds a normaliser, replacing any previous one for the same source.
	Register(normaliser Normaliser)

	// Sources returns the sources with a registered normaliser, in registry order.
	Sources() []domain.AnnotationSource
}
