package driven

import (
	"context"

	"github.com/rostlab/tmvis/internal/core/domain"
)

// ProteinStore persists protein records, their raw annotation rows
// and raw per-source payloads.
type ProteinStore interface {
	// SaveProtein stores or updates a protein.
	SaveProtein(ctx context.Context, protein *domain.Protein) error

	// GetProtein retrieves a protein by accession or UniProt entry name.
	// Returns domain.ErrNotFound when neither matches.
	GetProtein(ctx context.Context, id string) (*domain.Protein, error)

	// ListProteins returns proteins matching the filter.
	ListProteins(ctx context.Context, filter domain.ProteinFilter) ([]domain.Protein, error)

	// CountProteins returns the number of stored proteins.
	CountProteins(ctx context.Context) (int, error)

	// DeleteProtein removes a protein with its records and payloads.
	DeleteProtein(ctx context.Context, accession string) error

	// ReplaceRecords replaces every annotation row of a protein.
	ReplaceRecords(ctx context.Context, accession string, records []domain.RangeRecord) error

	// ListRecords returns a protein's annotation rows in insertion order.
	ListRecords(ctx context.Context, accession string) ([]domain.RangeRecord, error)

	// SavePayload stores a raw payload, one per accession and source.
	SavePayload(ctx context.Context, payload domain.RawPayload) error

	// ListPayloads returns a protein's raw payloads in registry order.
	ListPayloads(ctx context.Context, accession string) ([]domain.RawPayload, error)

	// Close releases resources.
	Close() error
}
