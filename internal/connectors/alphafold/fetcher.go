// Package alphafold fetches predicted models from the AlphaFold Protein Structure Database.
package alphafold

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/rostlab/tmvis/internal/connectors"
	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/core/ports/driven"
)

// DefaultBaseURL is the AlphaFold DB root.
const DefaultBaseURL = "https://alphafold.ebi.ac.uk"

var _ driven.StructureFetcher = (*Fetcher)(nil)

// Prediction is one entry of the /api/prediction response.
type Prediction struct {
	EntryID         string `json:"entryId"`
	UniProtAccession string `json:"uniprotAccession"`
	UniProtSequence string `json:"uniprotSequence"`
	PDBURL          string `json:"pdbUrl"`
	LatestVersion   int    `json:"latestVersion"`
}

// Fetcher implements driven.StructureFetcher.
type Fetcher struct {
	client *connectors.Client
}

// New creates an AlphaFold DB fetcher.
func New(cfg connectors.Config) *Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Fetcher{client: connectors.NewClient(connectors.ServiceAlphaFold, cfg)}
}

// FetchStructure returns the sequence and model URL for an accession,
// downloading the PDB text when withModel is true.
func (f *Fetcher) FetchStructure(ctx context.Context, accession string, withModel bool) (*domain.Structure, error) {
	accession = strings.ToUpper(strings.TrimSpace(accession))
	if accession == "" {
		return nil, fmt.Errorf("alphafold: empty accession: %w", domain.ErrInvalidInput)
	}

	resp, err := f.client.Get(ctx, f.client.BaseURL()+"/api/prediction/"+url.PathEscape(accession))
	if err != nil {
		return nil, err
	}

	var predictions []Prediction
	if err := json.Unmarshal(resp.Body, &predictions); err != nil {
		return nil, fmt.Errorf("alphafold: decode prediction: %w", domain.ErrInvalidInput)
	}
	if len(predictions) == 0 {
		return nil, domain.ErrNoCoverage
	}

	p := predictions[0]
	s := &domain.Structure{
		Accession: accession,
		Sequence:  p.UniProtSequence,
		PDBURL:    p.PDBURL,
	}
	if p.UniProtAccession != "" {
		s.Accession = p.UniProtAccession
	}

	if withModel && p.PDBURL != "" {
		model, err := f.client.Get(ctx, p.PDBURL)
		if err != nil {
			return nil, fmt.Errorf("alphafold: fetch model: %w", err)
		}
		s.PDB = string(model.Body)
	}
	return s, nil
}
