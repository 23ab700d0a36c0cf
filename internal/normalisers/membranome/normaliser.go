// Package membranome normalises single-span bitopic protein records from
// the Membranome database.
//
// The payload is {"seq_length": N, "membranomedb": {"tm_seq_start": S, "tm_seq_end": E}}.
// Positions are 1-based and inclusive and may be encoded as strings.
package membranome

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

// Normaliser handles Membranome records.
type Normaliser struct{}

// New creates a new Membranome normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Source returns the Membranome source.
func (n *Normaliser) Source() domain.AnnotationSource {
	return domain.SourceMembranome
}

// Convention returns 1-based inclusive.
func (n *Normaliser) Convention() domain.CoordinateConvention {
	return domain.OneBasedInclusive
}

type record struct {
	SeqLength    normalisers.FlexInt `json:"seq_length"`
	MembranomeDB *struct {
		Start normalisers.FlexInt `json:"tm_seq_start"`
		End   normalisers.FlexInt `json:"tm_seq_end"`
	} `json:"membranomedb"`
}

// Normalise converts the record's transmembrane span into one AH range.
// When sequenceLength is unknown the record's own seq_length bounds the span.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawPayload, sequenceLength int) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	var rec record
	if err := json.Unmarshal(raw.Content, &rec); err != nil {
		return nil, fmt.Errorf("%w: membranome payload: %v", domain.ErrInvalidInput, err)
	}
	if rec.MembranomeDB == nil {
		return nil, domain.ErrNoCoverage
	}

	bound := sequenceLength
	var pre []domain.Warning
	if rec.SeqLength.Set {
		switch {
		case bound <= 0:
			bound = rec.SeqLength.Value
		case rec.SeqLength.Value != bound:
			pre = append(pre, domain.NewWarning(n.Source(), domain.WarningLengthMismatch,
				"seq_length %d, sequence has %d residues", rec.SeqLength.Value, bound))
		}
	}

	c := normalisers.NewCollector(n.Source(), n.Convention(), bound)
	c.Warnings = append(c.Warnings, pre...)
	if rec.MembranomeDB.Start.Set && rec.MembranomeDB.End.Set {
		c.Add(rec.MembranomeDB.Start.Value, rec.MembranomeDB.End.Value, domain.LabelAlphaHelical)
	} else {
		c.Warn(domain.WarningDropped, "record without tm_seq_start/tm_seq_end")
	}

	ranges, warnings := c.Finish()
	return &driven.NormaliseResult{Ranges: ranges, Warnings: warnings}, nil
}
