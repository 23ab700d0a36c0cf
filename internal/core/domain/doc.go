// Package domain defines the core topology entities for tmvis.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ResidueRange: One annotated span in canonical 1-based inclusive coordinates
//   - AnnotationSource: A registered origin of topology evidence
//   - MembraneAnnotation: The per-protein aggregate of every source's ranges
//   - Protein: A stored sequence record with organism and TM summary
//   - RawPayload: Source-specific bytes as delivered by a fetch collaborator
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
