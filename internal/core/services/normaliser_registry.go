package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/core/ports/driven"
	"github.com/rostlab/tmvis/internal/logger"
)

// Ensure NormaliserRegistry implements the interface.
var _ driven.NormaliserRegistry = (*NormaliserRegistry)(nil)

// NormaliserRegistry holds one normaliser per annotation source.
type NormaliserRegistry struct {
	mu          sync.RWMutex
	normalisers map[domain.AnnotationSource]driven.Normaliser
}

// NewNormaliserRegistry creates a registry with the given normalisers.
func NewNormaliserRegistry(normalisers ...driven.Normaliser) *NormaliserRegistry {
	r := &NormaliserRegistry{
		normalisers: make(map[domain.AnnotationSource]driven.Normaliser),
	}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// Register adds a normaliser, replacing any previous one for the same source.
func (r *NormaliserRegistry) Register(normaliser driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalisers[normaliser.Source()] = normaliser
}

// Sources returns the sources with a registered normaliser, in registry order.
func (r *NormaliserRegistry) Sources() []domain.AnnotationSource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.AnnotationSource
	for _, s := range domain.Sources() {
		if _, ok := r.normalisers[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Normalise dispatches the payload to the normaliser of its source.
// Unregistered sources return *domain.UnknownSourceError; registered sources
// without a normaliser return domain.ErrUnsupportedType.
func (r *NormaliserRegistry) Normalise(
	ctx context.Context, payload *domain.RawPayload, sequenceLength int,
) (*driven.NormaliseResult, error) {
	if payload == nil {
		return nil, domain.ErrInvalidInput
	}
	if _, err := domain.LookupSource(payload.Source); err != nil {
		return nil, err
	}

	r.mu.RLock()
	n, ok := r.normalisers[payload.Source]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no normaliser for %s", domain.ErrUnsupportedType, payload.Source)
	}

	logger.Debug("Normalising %s payload for %s (%s, %d residues)",
		payload.Source, payload.Accession, n.Convention(), sequenceLength)
	result, err := n.Normalise(ctx, payload, sequenceLength)
	if err != nil {
		return nil, err
	}
	for _, rng := range result.Ranges {
		if err := rng.Validate(); err != nil {
			return nil, fmt.Errorf("%s normaliser: %w", payload.Source, err)
		}
	}
	return result, nil
}
