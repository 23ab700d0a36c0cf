// Package uniprot fetches transmembrane features from the UniProt REST API.
package uniprot

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rostlab/tmvis/internal/connectors"
	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/core/ports/driven"
)

// DefaultBaseURL is the UniProt REST root.
const DefaultBaseURL = "https://rest.uniprot.org"

// Fields requested from the search endpoint.
const Fields = "id,accession,length,ft_transmem"

// Verify interface compliance.
var _ driven.AnnotationFetcher = (*Fetcher)(nil)

// Fetcher queries UniProtKB search for one active entry.
type Fetcher struct {
	client *connectors.Client
}

// New creates a UniProt fetcher. An empty BaseURL uses DefaultBaseURL.
func New(cfg connectors.Config) *Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Fetcher{client: connectors.NewClient(connectors.ServiceUniProt, cfg)}
}

// Source returns domain.SourceUniProt.
func (f *Fetcher) Source() domain.AnnotationSource {
	return domain.SourceUniProt
}

// Fetch returns the raw search response for id.
// An empty result set is returned as-is; the normaliser reports it as no coverage.
func (f *Fetcher) Fetch(ctx context.Context, id string) (*domain.RawPayload, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("uniprot: empty identifier: %w", domain.ErrInvalidInput)
	}

	resp, err := f.client.Get(ctx, f.SearchURL(id))
	if err != nil {
		return nil, err
	}
	return &domain.RawPayload{
		Source:    domain.SourceUniProt,
		Accession: id,
		MIMEType:  resp.ContentType,
		Content:   resp.Body,
	}, nil
}

// SearchURL builds the search request for id.
func (f *Fetcher) SearchURL(id string) string {
	q := url.Values{}
	q.Set("query", Query(id))
	q.Set("fields", Fields)
	q.Set("format", "json")
	q.Set("size", "1")
	return f.client.BaseURL() + "/uniprotkb/search?" + q.Encode()
}

// Query returns the search expression for an identifier, scoped to
// active entries and prefixed by the identifier kind.
func Query(id string) string {
	id = strings.ToUpper(strings.TrimSpace(id))
	switch domain.ClassifyIdentifier(id) {
	case domain.IdentifierAccession:
		return "accession:" + id + " AND active:true"
	case domain.IdentifierEntryName:
		return "id:" + id + " AND active:true"
	default:
		return id + " AND active:true"
	}
}
