package domain

// ProteinIdentity is what a lookup resolved the supplied identifier to.
type ProteinIdentity struct {
	// Accession is the UniProt accession.
	Accession string

	// EntryName is the UniProt entry name (e.g., "GP1BB_HUMAN").
	EntryName string

	// Length is the sequence length reported upstream; 0 when unknown.
	Length int
}

// Structure is a predicted 3D model from AlphaFold DB.
type Structure struct {
	// Accession the model was fetched for.
	Accession string

	// Sequence is the UniProt sequence the model was built on.
	Sequence string

	// PDBURL is the model file location.
	PDBURL string

	// PDB is the model file content; empty when only metadata was fetched.
	PDB string
}

// LookupOptions controls which collaborators a lookup consults.
type LookupOptions struct {
	// Remote enables UniProt, TmAlphaFold and AlphaFold DB fetches.
	Remote bool

	// Structure also downloads the model file.
	Structure bool
}

// ProteinReport is everything the detail view needs for one protein.
type ProteinReport struct {
	// Query is the identifier the user supplied.
	Query string

	// Identity is the resolved UniProt identity; fields may be empty.
	Identity ProteinIdentity

	// Protein is the stored record, nil when the store has none.
	Protein *Protein

	// Sequence is the best known sequence (store first, then AlphaFold DB).
	Sequence string

	// Structure is the AlphaFold model, nil when not fetched or absent.
	Structure *Structure

	// Annotation is the merged aggregate.
	Annotation *MembraneAnnotation

	// Failures records why attempted sources are absent.
	Failures map[AnnotationSource]string
}

// Accession returns the resolved accession, falling back to the query.
func (r *ProteinReport) Accession() string {
	if r.Identity.Accession != "" {
		return r.Identity.Accession
	}
	if r.Protein != nil && r.Protein.Accession != "" {
		return r.Protein.Accession
	}
	return r.Query
}
