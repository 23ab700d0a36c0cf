package normalisers

import (
	"github.com/rostlab/tmvis/internal/core/domain"
)

// Canonicalise converts a source span to canonical coordinates and bounds it
// by sequenceLength. A non-positive sequenceLength disables the upper bound.
//
// Spans reaching past either end are clamped with a warning. Spans lying wholly
// outside the sequence, or reversed, are dropped (ok is false) with a warning.
// Labels outside the vocabulary are kept with a warning.
func Canonicalise(
	source domain.AnnotationSource,
	conv domain.CoordinateConvention,
	start, end int,
	label domain.Label,
	sequenceLength int,
) (r domain.ResidueRange, warnings []domain.Warning, ok bool) {
	cs, ce := conv.ToCanonical(start, end)

	if ce < cs {
		warnings = append(warnings, domain.NewWarning(source, domain.WarningDropped,
			"reversed span %d-%d (%s)", start, end, conv))
		return domain.ResidueRange{}, warnings, false
	}
	if ce < 1 || (sequenceLength > 0 && cs > sequenceLength) {
		warnings = append(warnings, domain.NewWarning(source, domain.WarningDropped,
			"span %d-%d outside sequence of %d residues", cs, ce, sequenceLength))
		return domain.ResidueRange{}, warnings, false
	}
	if cs < 1 {
		warnings = append(warnings, domain.NewWarning(source, domain.WarningClamped,
			"start %d clamped to 1", cs))
		cs = 1
	}
	if sequenceLength > 0 && ce > sequenceLength {
		warnings = append(warnings, domain.NewWarning(source, domain.WarningClamped,
			"end %d clamped to %d", ce, sequenceLength))
		ce = sequenceLength
	}
	if !label.IsKnown() {
		warnings = append(warnings, domain.NewWarning(source, domain.WarningUnknownLabel,
			"label %q at %d-%d", string(label), cs, ce))
	}

	return domain.ResidueRange{Start: cs, End: ce, Label: label}, warnings, true
}

// Collector accumulates canonical ranges and warnings for one source.
type Collector struct {
	source         domain.AnnotationSource
	conv           domain.CoordinateConvention
	sequenceLength int

	Ranges   []domain.ResidueRange
	Warnings []domain.Warning
}

// NewCollector creates a collector for a source and its convention.
func NewCollector(source domain.AnnotationSource, conv domain.CoordinateConvention, sequenceLength int) *Collector {
	return &Collector{
		source:         source,
		conv:           conv,
		sequenceLength: sequenceLength,
		Ranges:         []domain.ResidueRange{},
	}
}

// Add canonicalises a span and keeps it if it survives.
func (c *Collector) Add(start, end int, label domain.Label) {
	r, warnings, ok := Canonicalise(c.source, c.conv, start, end, label, c.sequenceLength)
	c.Warnings = append(c.Warnings, warnings...)
	if ok {
		c.Ranges = append(c.Ranges, r)
	}
}

// Warn records a source-level warning.
func (c *Collector) Warn(kind domain.WarningKind, format string, args ...any) {
	c.Warnings = append(c.Warnings, domain.NewWarning(c.source, kind, format, args...))
}

// Finish records an empty-source warning when nothing survived.
func (c *Collector) Finish() ([]domain.ResidueRange, []domain.Warning) {
	if len(c.Ranges) == 0 {
		c.Warn(domain.WarningEmptySource, "no usable ranges")
	}
	return c.Ranges, c.Warnings
}
