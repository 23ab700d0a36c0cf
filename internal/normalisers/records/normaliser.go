// Package records normalises annotation rows read from the local protein
// store. Rows carry their own source name and are 1-based inclusive.
package records

import (
	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/core/ports/driven"
	"github.com/rostlab/tmvis/internal/logger"
	"github.com/rostlab/tmvis/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.RecordNormaliser = (*Normaliser)(nil)

// Normaliser groups store rows into an aggregate.
type Normaliser struct{}

// New creates a new store record normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Convention returns 1-based inclusive.
func (n *Normaliser) Convention() domain.CoordinateConvention {
	return domain.OneBasedInclusive
}

// NormaliseRecords groups rows by source, preserving row order within a source.
// Rows naming an unregistered source are skipped with a warning on the
// aggregate. The first non-empty source URL of a source becomes its reference.
func (n *Normaliser) NormaliseRecords(rows []domain.RangeRecord, sequenceLength int) *domain.MembraneAnnotation {
	agg := domain.NewMembraneAnnotation()

	collectors := make(map[domain.AnnotationSource]*normalisers.Collector)
	urls := make(map[domain.AnnotationSource]string)

	for _, row := range rows {
		source, err := domain.ParseSource(row.Source)
		if err != nil {
			agg.AddWarning(domain.NewWarning(domain.AnnotationSource(row.Source), domain.WarningDropped,
				"row %s: unregistered source", row.ID))
			continue
		}

		c, ok := collectors[source]
		if !ok {
			c = normalisers.NewCollector(source, n.Convention(), sequenceLength)
			collectors[source] = c
		}
		c.Add(row.Start, row.End, domain.Label(row.Label))

		if row.SourceURL != "" && urls[source] == "" {
			urls[source] = row.SourceURL
		}
	}

	for _, source := range domain.Sources() {
		c, ok := collectors[source]
		if !ok {
			continue
		}
		ranges, warnings := c.Finish()
		// Canonicalise only emits ranges that validate.
		_ = agg.Set(source, ranges)
		for _, w := range warnings {
			logger.For(string(source)).Warn("%s", w.Message)
			agg.AddWarning(w)
		}
		if url := urls[source]; url != "" {
			_ = agg.SetReferenceURL(source, url)
		}
	}

	return agg
}
