// Package tmalphafold fetches TMDET membrane regions computed on AlphaFold models.
package tmalphafold

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rostlab/tmvis/internal/connectors"
	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/core/ports/driven"
)

// DefaultBaseURL is the TmAlphaFold root.
const DefaultBaseURL = "https://tmalphafold.ttk.hu"

var _ driven.AnnotationFetcher = (*Fetcher)(nil)

// Fetcher retrieves /api/tmdet/<name>.json documents.
// The service keys entries by UniProt entry name.
type Fetcher struct {
	client *connectors.Client
}

// New creates a TmAlphaFold fetcher.
func New(cfg connectors.Config) *Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Fetcher{client: connectors.NewClient(connectors.ServiceTmAlphaFold, cfg)}
}

// Source returns domain.SourceTmAlphaFold.
func (f *Fetcher) Source() domain.AnnotationSource {
	return domain.SourceTmAlphaFold
}

// Fetch returns the TMDET document for an entry name.
// Returns domain.ErrNoCoverage on 404.
func (f *Fetcher) Fetch(ctx context.Context, name string) (*domain.RawPayload, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("tmalphafold: empty identifier: %w", domain.ErrInvalidInput)
	}

	resp, err := f.client.Get(ctx, f.client.BaseURL()+"/api/tmdet/"+url.PathEscape(name)+".json")
	if err != nil {
		return nil, err
	}
	return &domain.RawPayload{
		Source:    domain.SourceTmAlphaFold,
		Accession: name,
		MIMEType:  resp.ContentType,
		Content:   resp.Body,
	}, nil
}
