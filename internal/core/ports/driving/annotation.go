package driving

import (
	"context"

	"github.com/rostlab/tmvis/internal/core/domain"
)

// AnnotationService assembles the membrane annotation report for one protein.
type AnnotationService interface {
	// Collect looks the identifier up in the local store and, when enabled,
	// the remote sources, and merges every answer into one report.
	// Missing or failing sources never fail the lookup; only an identifier
	// unknown to every collaborator returns domain.ErrNotFound.
	Collect(ctx context.Context, id string, opts domain.LookupOptions) (*domain.ProteinReport, error)
}
