package driving

import (
	"context"
	"io"

	"github.com/rostlab/tmvis/internal/core/domain"
)

// ProteinService browses and loads the local protein store.
type ProteinService interface {
	// List returns proteins matching the filter.
	List(ctx context.Context, filter domain.ProteinFilter) ([]domain.Protein, error)

	// Get retrieves a protein by accession or entry name.
	Get(ctx context.Context, id string) (*domain.Protein, error)

	// Count returns the number of stored proteins.
	Count(ctx context.Context) (int, error)

	// Import reads JSON Lines protein documents and stores them.
	Import(ctx context.Context, r io.Reader) (*ImportSummary, error)

	// ImportFile imports one JSON Lines file.
	ImportFile(ctx context.Context, path string) (*ImportSummary, error)
}

// ImportSummary reports the outcome of an import.
type ImportSummary struct {
	// RunID identifies the import run in logs.
	RunID string

	// Imported is the number of proteins stored.
	Imported int

	// Skipped is the number of lines that could not be stored.
	Skipped int

	// Errors holds one message per skipped line.
	Errors []string
}
