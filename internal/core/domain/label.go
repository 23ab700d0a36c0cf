package domain

// Label is a topology classification code attached to a residue range.
// Codes are shared across sources so one palette colours every source.
type Label string

const (
	// LabelHelixInOut is a transmembrane helix crossing inside to outside.
	LabelHelixInOut Label = "H"
	// LabelHelixOutIn is a transmembrane helix crossing outside to inside.
	LabelHelixOutIn Label = "h"
	// LabelBetaInOut is a transmembrane beta strand crossing inside to outside.
	LabelBetaInOut Label = "B"
	// LabelBetaOutIn is a transmembrane beta strand crossing outside to inside.
	LabelBetaOutIn Label = "b"
	// LabelInside is a non-membrane residue on the inner side.
	LabelInside Label = "i"
	// LabelOutside is a non-membrane residue on the outer side.
	LabelOutside Label = "o"
	// LabelSignalPeptide is a signal peptide residue.
	LabelSignalPeptide Label = "S"
	// LabelAlphaHelical is a generic alpha-helical membrane span from coarser sources.
	LabelAlphaHelical Label = "AH"
	// LabelBetaStrand is a generic beta-strand membrane span from coarser sources.
	LabelBetaStrand Label = "BS"
	// LabelNone marks a position with no evidence from a source.
	LabelNone Label = "*"
)

// knownLabels is the closed vocabulary, in legend order.
var knownLabels = []Label{
	LabelHelixInOut,
	LabelHelixOutIn,
	LabelBetaInOut,
	LabelBetaOutIn,
	LabelInside,
	LabelOutside,
	LabelSignalPeptide,
	LabelAlphaHelical,
	LabelBetaStrand,
}

// KnownLabels returns the closed label vocabulary in legend order.
// LabelNone is not part of it; it is the table fill value.
func KnownLabels() []Label {
	out := make([]Label, len(knownLabels))
	copy(out, knownLabels)
	return out
}

// IsKnown reports whether the label belongs to the closed vocabulary.
func (l Label) IsKnown() bool {
	for _, k := range knownLabels {
		if l == k {
			return true
		}
	}
	return false
}

// IsMembrane reports whether the label denotes a membrane-spanning segment.
func (l Label) IsMembrane() bool {
	switch l {
	case LabelHelixInOut, LabelHelixOutIn, LabelBetaInOut, LabelBetaOutIn,
		LabelAlphaHelical, LabelBetaStrand:
		return true
	default:
		return false
	}
}

// String returns the code as a string.
func (l Label) String() string {
	return string(l)
}
