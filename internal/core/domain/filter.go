package domain

import "fmt"

// Topology selects proteins by membrane class.
type Topology string

const (
	// TopologyAll applies no topology filter.
	TopologyAll Topology = "all"
	// TopologyBoth requires both helices and strands.
	TopologyBoth Topology = "both"
	// TopologyAlphaHelix requires transmembrane helices.
	TopologyAlphaHelix Topology = "alpha-helix"
	// TopologyBetaStrand requires transmembrane strands.
	TopologyBetaStrand Topology = "beta-strand"
)

// ParseTopology validates a topology name.
func ParseTopology(s string) (Topology, error) {
	switch Topology(s) {
	case TopologyAll, TopologyBoth, TopologyAlphaHelix, TopologyBetaStrand:
		return Topology(s), nil
	case "":
		return TopologyAll, nil
	default:
		return "", fmt.Errorf("%w: topology %q", ErrInvalidInput, s)
	}
}

// Default length bounds; a filter at exactly these bounds does not restrict length.
const (
	DefaultMinLength = 16
	DefaultMaxLength = 5500
	DefaultLimit     = 100
)

// ProteinFilter narrows a protein listing.
type ProteinFilter struct {
	// TaxonID restricts to one organism. It takes precedence over
	// SuperKingdom and Clade.
	TaxonID string

	// SuperKingdom restricts to a domain of life; empty means all.
	SuperKingdom string

	// Clade restricts to a kingdom-level clade; empty means all.
	Clade string

	// Topology restricts by membrane class.
	Topology Topology

	// SignalPeptide is matched against TMInfo.HasSignal for beta-strand topology.
	SignalPeptide bool

	// MinLength and MaxLength bound the sequence length.
	MinLength int
	MaxLength int

	// Limit caps the number of results.
	Limit int

	// Random returns a random sample and ignores every other criterion.
	Random bool
}

// DefaultProteinFilter returns the listing defaults: human proteins, no other restriction.
func DefaultProteinFilter() ProteinFilter {
	return ProteinFilter{
		TaxonID:   "9606",
		Topology:  TopologyAll,
		MinLength: DefaultMinLength,
		MaxLength: DefaultMaxLength,
		Limit:     DefaultLimit,
	}
}

// RestrictsLength reports whether the length bounds differ from the defaults.
// Zero bounds are unset.
func (f ProteinFilter) RestrictsLength() bool {
	if f.MinLength == 0 && f.MaxLength == 0 {
		return false
	}
	return f.MinLength != DefaultMinLength || f.MaxLength != DefaultMaxLength
}

// EffectiveLimit returns Limit, or DefaultLimit when unset.
func (f ProteinFilter) EffectiveLimit() int {
	if f.Limit <= 0 {
		return DefaultLimit
	}
	return f.Limit
}

// Validate checks the bounds.
func (f ProteinFilter) Validate() error {
	if f.MinLength < 0 || f.MaxLength < 0 || (f.MaxLength > 0 && f.MinLength > f.MaxLength) {
		return fmt.Errorf("%w: length bounds %d..%d", ErrInvalidInput, f.MinLength, f.MaxLength)
	}
	if _, err := ParseTopology(string(f.Topology)); err != nil {
		return err
	}
	return nil
}

// Matches applies the filter to one protein. Stores that cannot express
// the filter in their query language use it directly.
func (f ProteinFilter) Matches(p *Protein) bool {
	if f.Random {
		return true
	}
	if f.RestrictsLength() {
		n := p.Length()
		if n < f.MinLength || (f.MaxLength > 0 && n > f.MaxLength) {
			return false
		}
	}
	switch f.Topology {
	case TopologyBoth:
		if !p.TMInfo.HasAlphaHelix || !p.TMInfo.HasBetaStrand {
			return false
		}
	case TopologyAlphaHelix:
		if !p.TMInfo.HasAlphaHelix {
			return false
		}
	case TopologyBetaStrand:
		if !p.TMInfo.HasBetaStrand || p.TMInfo.HasSignal != f.SignalPeptide {
			return false
		}
	}
	if f.TaxonID != "" {
		return p.Organism.TaxonID == f.TaxonID
	}
	if f.SuperKingdom != "" && p.Organism.SuperKingdom != f.SuperKingdom {
		return false
	}
	if f.Clade != "" && p.Organism.Clade != f.Clade {
		return false
	}
	return true
}
