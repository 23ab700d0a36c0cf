// Package tui provides an interactive terminal viewer for tmvis.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/rostlab/tmvis/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Annotation collects protein reports.
	Annotation driving.AnnotationService

	// Protein browses the local store. Optional: the browse view is hidden without it.
	Protein driving.ProteinService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(annotation driving.AnnotationService, protein driving.ProteinService) *Ports {
	return &Ports{
		Annotation: annotation,
		Protein:    protein,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Annotation == nil {
		return ErrMissingAnnotationService
	}
	return nil
}
