package domain

import "time"

// Organism is the taxon a sequence belongs to.
type Organism struct {
	// TaxonID is the NCBI taxonomy identifier.
	TaxonID string

	// Name is the scientific name.
	Name string

	// SuperKingdom is the domain of life (e.g., "Eukaryota").
	SuperKingdom string

	// Clade is the kingdom-level clade (e.g., "Opisthokonta").
	Clade string
}

// TMInfo summarises a prediction string.
type TMInfo struct {
	HelixCount    int
	HelixPercent  float64
	StrandCount   int
	StrandPercent float64
	SignalCount   int
	SignalPercent float64
	HasAlphaHelix bool
	HasBetaStrand bool
	HasSignal     bool
	GeneratedAt   time.Time
}

// Protein is a stored sequence record.
type Protein struct {
	// Accession is the UniProt accession and primary key (e.g., "P0DPA2").
	Accession string

	// UniProtID is the UniProt entry name (e.g., "GP1BB_HUMAN").
	UniProtID string

	// Sequence is the amino-acid string.
	Sequence string

	// Organism is the source organism.
	Organism Organism

	// TMInfo is the derived transmembrane summary.
	TMInfo TMInfo

	// CreatedAt is when the record was first stored.
	CreatedAt time.Time

	// UpdatedAt is when the record was last stored.
	UpdatedAt time.Time
}

// Length returns the sequence length.
func (p *Protein) Length() int {
	return len(p.Sequence)
}

// StoredProtein bundles everything the store holds for one accession.
type StoredProtein struct {
	Protein  Protein
	Records  []RangeRecord
	Payloads []RawPayload
}
