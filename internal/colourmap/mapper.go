package colourmap

import (
	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/residuetable"
)

// RowColour returns the style of a table row from its prediction label.
// Rows without a prediction, or with no evidence, are Neutral.
func RowColour(predicted domain.Label, present bool) Colour {
	if !present || predicted == domain.LabelNone || predicted == "" {
		return Neutral
	}
	return ForLabel(predicted)
}

// RowColours returns one row style per table row, keyed off the
// prediction column.
func RowColours(t *residuetable.Table) []Colour {
	out := make([]Colour, len(t.Rows))
	for i := range t.Rows {
		l, ok := t.Label(i, domain.SourcePredicted)
		out[i] = RowColour(l, ok)
	}
	return out
}

// StructureColours maps 1-based residue numbers to colours for every
// residue covered by the ranges. Later ranges overwrite earlier ones.
func StructureColours(ranges []domain.ResidueRange) map[int]Colour {
	out := make(map[int]Colour)
	for _, r := range ranges {
		c := ForLabel(r.Label)
		for pos := r.Start; pos <= r.End; pos++ {
			out[pos] = c
		}
	}
	return out
}

// PredictionColours returns the structure colour map from the prediction
// source. It returns false when the aggregate has no prediction, in which
// case callers colour by confidence instead.
func PredictionColours(annotation *domain.MembraneAnnotation) (map[int]Colour, bool) {
	if annotation == nil {
		return nil, false
	}
	ranges, err := annotation.Ranges(domain.SourcePredicted)
	if err != nil || len(ranges) == 0 {
		return nil, false
	}
	return StructureColours(ranges), true
}
