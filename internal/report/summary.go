// Package report renders a protein report for terminals: the summary
// sentence, the aligned residue table, the colour legend and the
// resources panel.
package report

import (
	"strings"

	"github.com/rostlab/tmvis/internal/core/domain"
)

// Fixed report texts.
const (
	NoAnnotationsSummary = "Found no available annotations."
	NoAnnotationsNotice  = "Could not find any annotations for this protein."
	NoEvidenceCaption    = "If entries in a row are '*', there are no annotations for these residues."
	TMbedCaveat          = "Inside/outside annotations of TMbed are not optimized and must be interpreted with caution."
)

// Summary lists the available sources as a sentence, e.g.
// "Found a TMbed Prediction and a UniProt Annotation."
func Summary(annotation *domain.MembraneAnnotation) string {
	if annotation == nil || !annotation.HasAnnotations() {
		return NoAnnotationsSummary
	}

	sources := annotation.AvailableSources()
	items := make([]string, len(sources))
	for i, s := range sources {
		name := s.DisplayName()
		items[i] = article(name) + " " + name
	}

	var connected string
	switch len(items) {
	case 1:
		connected = items[0]
	case 2:
		connected = items[0] + " and " + items[1]
	default:
		connected = strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
	return "Found " + connected + "."
}

// article picks "a" or "an" from the first letter. Names starting with
// "U" are read "you" (UniProt), so they take "a".
func article(name string) string {
	if name == "" {
		return "a"
	}
	switch strings.ToLower(name[:1]) {
	case "a", "e", "i", "o":
		return "an"
	default:
		return "a"
	}
}
