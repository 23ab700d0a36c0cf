// Package colourmap maps topology labels to colours for the residue table,
// its legend and the 3D structure viewer. Every function is total: labels
// outside the vocabulary get the fallback colour.
package colourmap

import (
	"github.com/rostlab/tmvis/internal/core/domain"
)

// Colour is a named display colour.
type Colour struct {
	// Name is the CSS colour name, without spaces (e.g., "lightgreen").
	Name string

	// Hex is the #RRGGBB value of Name.
	Hex string
}

// IsZero reports whether the colour is the neutral "no styling" value.
func (c Colour) IsZero() bool {
	return c == Colour{}
}

// Palette colours.
var (
	HelixLight    = Colour{Name: "lightgreen", Hex: "#90EE90"}
	HelixDark     = Colour{Name: "darkgreen", Hex: "#006400"}
	BetaLight     = Colour{Name: "lightblue", Hex: "#ADD8E6"}
	BetaDark      = Colour{Name: "darkblue", Hex: "#00008B"}
	Inside        = Colour{Name: "lightgrey", Hex: "#D3D3D3"}
	Outside       = Colour{Name: "darkgrey", Hex: "#A9A9A9"}
	SignalPeptide = Colour{Name: "pink", Hex: "#FFC0CB"}
	AlphaHelical  = Colour{Name: "mediumseagreen", Hex: "#3CB371"}
	BetaStrand    = Colour{Name: "steelblue", Hex: "#4682B4"}

	// Fallback colours labels outside the vocabulary.
	Fallback = Outside

	// Neutral is no styling.
	Neutral = Colour{}
)

var palette = map[domain.Label]Colour{
	domain.LabelHelixInOut:    HelixLight,
	domain.LabelHelixOutIn:    HelixDark,
	domain.LabelBetaInOut:     BetaLight,
	domain.LabelBetaOutIn:     BetaDark,
	domain.LabelInside:        Inside,
	domain.LabelOutside:       Outside,
	domain.LabelSignalPeptide: SignalPeptide,
	domain.LabelAlphaHelical:  AlphaHelical,
	domain.LabelBetaStrand:    BetaStrand,
}

// ForLabel returns the colour of a label, or Fallback.
func ForLabel(l domain.Label) Colour {
	if c, ok := palette[l]; ok {
		return c
	}
	return Fallback
}

// LegendEntry is one row of the topology legend.
type LegendEntry struct {
	Topology    string
	Code        domain.Label
	Orientation string
	Colour      Colour
}

// TopologyLegend returns the legend for per-residue prediction codes.
func TopologyLegend() []LegendEntry {
	return []LegendEntry{
		{Topology: "Helix", Code: domain.LabelHelixInOut, Orientation: "IN-->OUT", Colour: HelixLight},
		{Topology: "Helix", Code: domain.LabelHelixOutIn, Orientation: "OUT-->IN", Colour: HelixDark},
		{Topology: "Beta-Strand", Code: domain.LabelBetaInOut, Orientation: "IN-->OUT", Colour: BetaLight},
		{Topology: "Beta-Strand", Code: domain.LabelBetaOutIn, Orientation: "OUT-->IN", Colour: BetaDark},
		{Topology: "inside", Code: domain.LabelInside, Orientation: "inside", Colour: Inside},
		{Topology: "outside", Code: domain.LabelOutside, Orientation: "outside", Colour: Outside},
		{Topology: "Signal Peptide", Code: domain.LabelSignalPeptide, Orientation: "NA", Colour: SignalPeptide},
	}
}

// SpanLegend returns the legend for the generic span codes of coarser sources.
func SpanLegend() []LegendEntry {
	return []LegendEntry{
		{Topology: "Alpha-helical span", Code: domain.LabelAlphaHelical, Orientation: "NA", Colour: AlphaHelical},
		{Topology: "Beta-strand span", Code: domain.LabelBetaStrand, Orientation: "NA", Colour: BetaStrand},
	}
}
