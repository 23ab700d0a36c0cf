package colourmap

// ConfidenceBand is one pLDDT band of the AlphaFold confidence legend.
type ConfidenceBand struct {
	Label  string
	Min    float64
	Max    float64
	Colour Colour
}

// Confidence colours.
var (
	VeryLow   = Colour{Name: "red", Hex: "#FF0000"}
	Low       = Colour{Name: "orange", Hex: "#FFA500"}
	Confident = Colour{Name: "green", Hex: "#00C900"}
	VeryHigh  = Colour{Name: "blue", Hex: "#0000FF"}
)

var bands = []ConfidenceBand{
	{Label: "Very low (pLDDT < 50)", Min: 0, Max: 50, Colour: VeryLow},
	{Label: "Low (70 > pLDDT > 50)", Min: 50, Max: 70, Colour: Low},
	{Label: "Confident (90 > pLDDT > 70)", Min: 70, Max: 90, Colour: Confident},
	{Label: "Very high (pLDDT > 90)", Min: 90, Max: 100, Colour: VeryHigh},
}

// ConfidenceBands returns the pLDDT legend, lowest band first.
func ConfidenceBands() []ConfidenceBand {
	out := make([]ConfidenceBand, len(bands))
	copy(out, bands)
	return out
}

// ForConfidence returns the band colour of a pLDDT score.
// A score on a boundary belongs to the higher band.
func ForConfidence(plddt float64) Colour {
	for i := len(bands) - 1; i >= 0; i-- {
		if plddt >= bands[i].Min {
			return bands[i].Colour
		}
	}
	return VeryLow
}
