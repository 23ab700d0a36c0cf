package driven

import (
	"context"

	"github.com/rostlab/tmvis/internal/core/domain"
)

// Normaliser converts one source's raw payload into canonical ranges.
// Each source has exactly one normaliser.
type Normaliser interface {
	// Source returns the registry source this normaliser handles.
	Source() domain.AnnotationSource

	// Convention returns the coordinate convention of the source's payload.
	Convention() domain.CoordinateConvention

	// Normalise parses the payload and returns canonical 1-based inclusive ranges,
	// clamped to sequenceLength when it is positive.
	// Returns domain.ErrNoCoverage when the payload carries no record for the protein.
	Normalise(ctx context.Context, payload *domain.RawPayload, sequenceLength int) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Ranges are canonical, in payload order. Empty means "present, no evidence".
	Ranges []domain.ResidueRange

	// Warnings are data-quality findings made while converting.
	Warnings []domain.Warning

	// Identity is filled by sources that resolve the protein (UniProt).
	Identity *domain.ProteinIdentity
}

// RecordNormaliser converts local store rows, which mix sources, into an aggregate.
type RecordNormaliser interface {
	// NormaliseRecords groups rows by source and converts each to canonical ranges.
	// Reference URLs are kept per source.
	NormaliseRecords(records []domain.RangeRecord, sequenceLength int) *domain.MembraneAnnotation
}
