// Package topdb normalises experimentally derived topology strings from
// the Topology Data Bank of Transmembrane Proteins.
//
// The payload is the stored TopDB object, {"TopDB_Entry": "<one code per residue>"},
// optionally wrapped as {"topdb": {...}}. Codes are I (inside), O (outside),
// M (membrane), S (signal) and U (unknown). String positions are 0-based.
package topdb

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

// Normaliser handles TopDB entries.
type Normaliser struct{}

// New creates a new TopDB normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Source returns the TopDB source.
func (n *Normaliser) Source() domain.AnnotationSource {
	return domain.SourceTopDB
}

// Convention returns 0-based inclusive (string indices).
func (n *Normaliser) Convention() domain.CoordinateConvention {
	return domain.ZeroBasedInclusive
}

type entry struct {
	TopDBEntry *string `json:"TopDB_Entry"`
	TopDB      *struct {
		TopDBEntry *string `json:"TopDB_Entry"`
	} `json:"topdb"`
}

// Normalise converts a TopDB string into ranges. Membrane runs get a
// direction from the flanking sides: I..M..O is H, O..M..I is h, anything
// else is the generic AH.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawPayload, sequenceLength int) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	var e entry
	if err := json.Unmarshal(raw.Content, &e); err != nil {
		return nil, fmt.Errorf("%w: topdb payload: %v", domain.ErrInvalidInput, err)
	}
	value := e.TopDBEntry
	if value == nil && e.TopDB != nil {
		value = e.TopDB.TopDBEntry
	}
	if value == nil || *value == "" {
		return nil, domain.ErrNoCoverage
	}

	c := normalisers.NewCollector(n.Source(), n.Convention(), sequenceLength)
	if sequenceLength > 0 && len([]rune(*value)) != sequenceLength {
		c.Warn(domain.WarningLengthMismatch, "entry has %d codes, sequence has %d residues",
			len([]rune(*value)), sequenceLength)
	}

	runs := normalisers.Runs(*value)
	for i, run := range runs {
		var label domain.Label
		switch run.Code {
		case "I":
			label = domain.LabelInside
		case "O":
			label = domain.LabelOutside
		case "S":
			label = domain.LabelSignalPeptide
		case "M":
			label = membraneLabel(runs, i)
		case "U", "*", "-":
			continue
		default:
			label = domain.Label(run.Code)
		}
		c.Add(run.Start, run.End, label)
	}

	ranges, warnings := c.Finish()
	return &driven.NormaliseResult{Ranges: ranges, Warnings: warnings}, nil
}

func membraneLabel(runs []normalisers.Run, i int) domain.Label {
	if i == 0 || i == len(runs)-1 {
		return domain.LabelAlphaHelical
	}
	before, after := runs[i-1].Code, runs[i+1].Code
	switch {
	case before == "I" && after == "O":
		return domain.LabelHelixInOut
	case before == "O" && after == "I":
		return domain.LabelHelixOutIn
	default:
		return domain.LabelAlphaHelical
	}
}
