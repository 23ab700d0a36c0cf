// Package predicted normalises the per-residue topology prediction string
// stored for every protein (TMbed output).
//
// The payload is {"transmembrane": "<one code per residue>"}; a bare
// text/plain string is also accepted. Position i of the string is residue
// i+1, so runs are read 0-based inclusive.
package predicted

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

// gaps are codes meaning "no evidence at this residue".
const gaps = "*-. "

// Normaliser handles prediction strings.
type Normaliser struct{}

// New creates a new prediction normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Source returns the predicted source.
func (n *Normaliser) Source() domain.AnnotationSource {
	return domain.SourcePredicted
}

// Convention returns 0-based inclusive (string indices).
func (n *Normaliser) Convention() domain.CoordinateConvention {
	return domain.ZeroBasedInclusive
}

type payload struct {
	Transmembrane *string `json:"transmembrane"`
}

// Normalise converts a prediction string into one range per run of identical codes.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawPayload, sequenceLength int) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	prediction, err := decode(raw)
	if err != nil {
		return nil, err
	}

	c := normalisers.NewCollector(n.Source(), n.Convention(), sequenceLength)
	if sequenceLength > 0 && len([]rune(prediction)) != sequenceLength {
		c.Warn(domain.WarningLengthMismatch, "prediction has %d codes, sequence has %d residues",
			len([]rune(prediction)), sequenceLength)
	}

	for _, run := range normalisers.Runs(prediction) {
		if strings.Contains(gaps, run.Code) {
			continue
		}
		c.Add(run.Start, run.End, domain.Label(run.Code))
	}

	ranges, warnings := c.Finish()
	return &driven.NormaliseResult{Ranges: ranges, Warnings: warnings}, nil
}

func decode(raw *domain.RawPayload) (string, error) {
	if strings.HasPrefix(raw.MIMEType, "text/plain") {
		return strings.TrimSpace(string(raw.Content)), nil
	}

	var p payload
	if err := json.Unmarshal(raw.Content, &p); err != nil {
		return "", fmt.Errorf("%w: prediction payload: %v", domain.ErrInvalidInput, err)
	}
	if p.Transmembrane == nil {
		return "", domain.ErrNoCoverage
	}
	return *p.Transmembrane, nil
}
