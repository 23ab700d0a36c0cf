package mcp

import (
	"github.com/rostlab/tmvis/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Annotation collects protein reports.
	Annotation driving.AnnotationService

	// Protein browses the local store. Optional: without it list_proteins is not offered.
	Protein driving.ProteinService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Annotation == nil {
		return ErrMissingAnnotationService
	}
	return nil
}
