package colourmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rostlab/tmvis/internal/core/domain"
)

// Scheme selects how the structure is coloured.
type Scheme string

const (
	// SchemeTopology colours residues by the prediction label.
	SchemeTopology Scheme = "topology"
	// SchemeConfidence colours residues by AlphaFold pLDDT.
	SchemeConfidence Scheme = "plddt"
)

// ParseScheme parses a scheme name; empty means SchemeTopology.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(s))) {
	case "", SchemeTopology:
		return SchemeTopology, nil
	case SchemeConfidence:
		return SchemeConfidence, nil
	default:
		return "", fmt.Errorf("%w: colour scheme %q", domain.ErrInvalidInput, s)
	}
}

// Render is the molecule drawing style.
type Render string

// Render styles.
const (
	RenderCartoon Render = "cartoon"
	RenderLine    Render = "line"
	RenderCross   Render = "cross"
	RenderStick   Render = "stick"
	RenderSphere  Render = "sphere"
)

// ParseRender parses a render style; empty means RenderCartoon.
func ParseRender(s string) (Render, error) {
	r := Render(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case "":
		return RenderCartoon, nil
	case RenderCartoon, RenderLine, RenderCross, RenderStick, RenderSphere:
		return r, nil
	default:
		return "", fmt.Errorf("%w: render style %q", domain.ErrInvalidInput, s)
	}
}

// Gradient bounds of the confidence colouring (pLDDT is stored as B-factor).
const (
	GradientName = "roygb"
	GradientMin  = 50
	GradientMax  = 90
)

// ColourSpec is the colouring part of a viewer style, in the 3Dmol.js shape:
// either {"prop":"resi","map":{...}} or {"prop":"b","gradient":"roygb","min":50,"max":90}.
type ColourSpec struct {
	Prop     string            `json:"prop"`
	Map      map[string]string `json:"map,omitempty"`
	Gradient string            `json:"gradient,omitempty"`
	Min      int               `json:"min,omitempty"`
	Max      int               `json:"max,omitempty"`
}

// ViewerStyle describes how the structure viewer draws one protein.
type ViewerStyle struct {
	Scheme Scheme     `json:"scheme"`
	Render Render     `json:"render"`
	Spin   bool       `json:"spin"`
	Colour ColourSpec `json:"colorscheme"`
}

// NewViewerStyle builds the viewer style. The topology scheme uses the
// prediction colour map; without a prediction, or with the confidence
// scheme, it falls back to the pLDDT gradient.
func NewViewerStyle(annotation *domain.MembraneAnnotation, scheme Scheme, render Render, spin bool) ViewerStyle {
	style := ViewerStyle{Scheme: scheme, Render: render, Spin: spin}

	if scheme == SchemeTopology {
		if colours, ok := PredictionColours(annotation); ok {
			m := make(map[string]string, len(colours))
			for pos, c := range colours {
				m[strconv.Itoa(pos)] = c.Name
			}
			style.Colour = ColourSpec{Prop: "resi", Map: m}
			return style
		}
	}

	style.Scheme = SchemeConfidence
	style.Colour = ColourSpec{Prop: "b", Gradient: GradientName, Min: GradientMin, Max: GradientMax}
	return style
}
