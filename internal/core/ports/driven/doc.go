// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Normaliser: Converts one source's raw payload into canonical ranges
//   - NormaliserRegistry: Dispatches payloads by source
//   - RecordNormaliser: Converts mixed-source store rows into an aggregate
//   - ProteinStore: Protein, annotation row and payload persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - lookups degrade to the local store:
//
//   - AnnotationFetcher: Remote source payloads (UniProt, TmAlphaFold)
//   - StructureFetcher: AlphaFold DB models and sequences
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
