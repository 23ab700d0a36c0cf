// Package uniprot normalises UniProtKB search responses.
//
// The payload is the JSON body of /uniprotkb/search with fields
// id,accession,length,ft_transmem. Only the first result is read.
// Feature locations are 1-based and inclusive.
package uniprot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/core/ports/driven"
	"github.com/rostlab/tmvis/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// transmembraneFeature is the feature type carrying membrane spans.
const transmembraneFeature = "Transmembrane"

// Normaliser handles UniProtKB search results.
type Normaliser struct{}

// New creates a new UniProt normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Source returns the UniProt source.
func (n *Normaliser) Source() domain.AnnotationSource {
	return domain.SourceUniProt
}

// Convention returns 1-based inclusive.
func (n *Normaliser) Convention() domain.CoordinateConvention {
	return domain.OneBasedInclusive
}

// SearchResponse is the subset of the search body the normaliser reads.
type SearchResponse struct {
	Results []Entry `json:"results"`
}

// Entry is one UniProtKB entry.
type Entry struct {
	PrimaryAccession string    `json:"primaryAccession"`
	UniProtKBID      string    `json:"uniProtkbId"`
	Sequence         Sequence  `json:"sequence"`
	Features         []Feature `json:"features"`
}

// Sequence holds the entry's sequence metadata.
type Sequence struct {
	Length int `json:"length"`
}

// Feature is one sequence feature.
type Feature struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Location    Location `json:"location"`
}

// Location is a feature span.
type Location struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Position is one end of a span. Value is absent for uncertain positions.
type Position struct {
	Value    normalisers.FlexInt `json:"value"`
	Modifier string              `json:"modifier"`
}

// Normalise converts transmembrane features into AH ranges, or BS when the
// feature describes a beta strand. The entry's identity is returned too.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawPayload, sequenceLength int) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	var resp SearchResponse
	if err := json.Unmarshal(raw.Content, &resp); err != nil {
		return nil, fmt.Errorf("%w: uniprot payload: %v", domain.ErrInvalidInput, err)
	}
	if len(resp.Results) == 0 {
		return nil, domain.ErrNoCoverage
	}
	entry := resp.Results[0]

	bound := sequenceLength
	if bound <= 0 {
		bound = entry.Sequence.Length
	}

	c := normalisers.NewCollector(n.Source(), n.Convention(), bound)
	if sequenceLength > 0 && entry.Sequence.Length > 0 && entry.Sequence.Length != sequenceLength {
		c.Warn(domain.WarningLengthMismatch, "entry length %d, sequence has %d residues",
			entry.Sequence.Length, sequenceLength)
	}

	for _, f := range entry.Features {
		if f.Type != transmembraneFeature {
			continue
		}
		if !f.Location.Start.Value.Set || !f.Location.End.Value.Set {
			c.Warn(domain.WarningDropped, "feature %q without exact location", f.Description)
			continue
		}
		c.Add(f.Location.Start.Value.Value, f.Location.End.Value.Value, labelFor(f.Description))
	}

	ranges, warnings := c.Finish()
	return &driven.NormaliseResult{
		Ranges:   ranges,
		Warnings: warnings,
		Identity: &domain.ProteinIdentity{
			Accession: entry.PrimaryAccession,
			EntryName: entry.UniProtKBID,
			Length:    entry.Sequence.Length,
		},
	}, nil
}

func labelFor(description string) domain.Label {
	if strings.Contains(description, "Beta") {
		return domain.LabelBetaStrand
	}
	return domain.LabelAlphaHelical
}
