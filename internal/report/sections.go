package report

import (
	"fmt"
	"strconv"

	"github.com/rostlab/tmvis/internal/colourmap"
	"github.com/rostlab/tmvis/internal/core/domain"
)

// External resources offered for every protein.
const (
	LambdaPPURL = "https://lambda.predictprotein.org/o/"
	FoldseekURL = "https://search.foldseek.com/search"
)

// Link is one entry of the resources panel.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Resources returns LambdaPP and Foldseek followed by each source's
// reference URL in registry order.
func Resources(rep *domain.ProteinReport) []Link {
	links := []Link{
		{Label: "Evaluate protein-specific phenotype predictions: LambdaPP", URL: LambdaPPURL + rep.Accession()},
		{Label: "Generate structural alignments: Foldseek", URL: FoldseekURL},
	}
	if rep.Annotation == nil {
		return links
	}
	for _, ref := range rep.Annotation.References() {
		links = append(links, Link{Label: ref.Source.DisplayName(), URL: ref.URL})
	}
	return links
}

// Field is one row of the protein information panel.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProteinFields returns the stored record's details, or the remote
// identity when the store has no record.
func ProteinFields(rep *domain.ProteinReport) []Field {
	p := rep.Protein
	if p == nil {
		fields := []Field{{"UniProt Accession", rep.Accession()}}
		if rep.Identity.EntryName != "" {
			fields = append(fields, Field{"UniProt ID", rep.Identity.EntryName})
		}
		if n := len(rep.Sequence); n > 0 {
			fields = append(fields, Field{"Sequence length", strconv.Itoa(n)})
		} else if rep.Identity.Length > 0 {
			fields = append(fields, Field{"Sequence length", strconv.Itoa(rep.Identity.Length)})
		}
		return fields
	}

	tm := p.TMInfo
	return []Field{
		{"UniProt Accession", p.Accession},
		{"UniProt ID", p.UniProtID},
		{"Sequence length", strconv.Itoa(p.Length())},
		{"Organism name", p.Organism.Name},
		{"Organism ID", p.Organism.TaxonID},
		{"Domain", p.Organism.SuperKingdom},
		{"Kingdom", p.Organism.Clade},
		{"Has alpha helix", yesNo(tm.HasAlphaHelix)},
		{"Has beta strand", yesNo(tm.HasBetaStrand)},
		{"Has signal peptide", yesNo(tm.HasSignal)},
		{"Transmembrane helix residues", fmt.Sprintf("%d (%.1f%%)", tm.HelixCount, tm.HelixPercent)},
		{"Transmembrane strand residues", fmt.Sprintf("%d (%.1f%%)", tm.StrandCount, tm.StrandPercent)},
		{"Signal peptide residues", fmt.Sprintf("%d (%.1f%%)", tm.SignalCount, tm.SignalPercent)},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// UsesConfidenceLegend reports whether the pLDDT legend replaces the
// topology legend. It follows the structure colouring: the confidence
// scheme is selected or there is no prediction to colour by.
func UsesConfidenceLegend(scheme colourmap.Scheme, annotation *domain.MembraneAnnotation) bool {
	if scheme == colourmap.SchemeConfidence {
		return true
	}
	_, ok := colourmap.PredictionColours(annotation)
	return !ok
}
