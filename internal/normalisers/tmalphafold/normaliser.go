// Package tmalphafold normalises TMDET region annotations of AlphaFold
// models published by the TmAlphaFold database.
//
// The payload is /api/tmdet/<entry name>.json. Regions of the first chain
// with type "M" are membrane spans; seq_beg and seq_end are 1-based inclusive.
package tmalphafold

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/core/ports/driven"
	"github.com/rostlab/tmvis/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// membraneRegion is the region type of a membrane span.
const membraneRegion = "M"

// Normaliser handles TMDET documents.
type Normaliser struct{}

// New creates a new TmAlphaFold normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Source returns the TmAlphaFold source.
func (n *Normaliser) Source() domain.AnnotationSource {
	return domain.SourceTmAlphaFold
}

// Convention returns 1-based inclusive.
func (n *Normaliser) Convention() domain.CoordinateConvention {
	return domain.OneBasedInclusive
}

type document struct {
	Chain []chain `json:"CHAIN"`
}

type chain struct {
	Region []region `json:"REGION"`
}

type region struct {
	Attributes struct {
		SeqBeg normalisers.FlexInt `json:"seq_beg"`
		SeqEnd normalisers.FlexInt `json:"seq_end"`
		Type   string              `json:"type"`
	} `json:"_attributes"`
}

// Normalise converts the first chain's membrane regions into AH ranges.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawPayload, sequenceLength int) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	var doc document
	if err := json.Unmarshal(raw.Content, &doc); err != nil {
		return nil, fmt.Errorf("%w: tmalphafold payload: %v", domain.ErrInvalidInput, err)
	}
	if len(doc.Chain) == 0 {
		return nil, domain.ErrNoCoverage
	}

	c := normalisers.NewCollector(n.Source(), n.Convention(), sequenceLength)
	if len(doc.Chain) > 1 {
		c.Warn(domain.WarningDropped, "%d extra chains ignored", len(doc.Chain)-1)
	}
	for _, r := range doc.Chain[0].Region {
		if r.Attributes.Type != membraneRegion {
			continue
		}
		if !r.Attributes.SeqBeg.Set || !r.Attributes.SeqEnd.Set {
			c.Warn(domain.WarningDropped, "membrane region without bounds")
			continue
		}
		c.Add(r.Attributes.SeqBeg.Value, r.Attributes.SeqEnd.Value, domain.LabelAlphaHelical)
	}

	ranges, warnings := c.Finish()
	return &driven.NormaliseResult{Ranges: ranges, Warnings: warnings}, nil
}
