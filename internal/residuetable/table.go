// Package residuetable expands an aggregate's ranges into an aligned,
// one-row-per-residue table: the sequence column followed by one column
// per available source in registry order.
package residuetable

import (
	"github.com/rostlab/tmvis/internal/core/domain"
)

// SequenceColumn is the title of the first column.
const SequenceColumn = "Sequence"

// Table is the aligned per-residue view of an aggregate.
type Table struct {
	// Columns are the titles: SequenceColumn then source display names.
	Columns []string

	// Sources are the annotation columns, aligned with Columns[1:].
	Sources []domain.AnnotationSource

	// Rows holds one row per residue, in sequence order.
	Rows []Row
}

// Row is one residue and its label from every source column.
type Row struct {
	// Position is the 1-based residue number.
	Position int

	// Residue is the amino acid one-letter code.
	Residue string

	// Labels are aligned with Table.Sources; LabelNone means no evidence.
	Labels []domain.Label
}

// Builder builds tables.
type Builder struct {
	fill domain.Label
}

// NewBuilder creates a builder that fills uncovered residues with LabelNone.
func NewBuilder() *Builder {
	return &Builder{fill: domain.LabelNone}
}

// Build expands every available source of the aggregate over the sequence.
// An empty sequence yields a table with its header and no rows; a nil
// aggregate yields only the sequence column.
func (b *Builder) Build(sequence string, annotation *domain.MembraneAnnotation) *Table {
	residues := []rune(sequence)

	var sources []domain.AnnotationSource
	if annotation != nil {
		sources = annotation.AvailableSources()
	}

	t := &Table{
		Columns: make([]string, 0, len(sources)+1),
		Sources: sources,
		Rows:    make([]Row, len(residues)),
	}
	t.Columns = append(t.Columns, SequenceColumn)

	vectors := make([][]domain.Label, len(sources))
	for i, source := range sources {
		t.Columns = append(t.Columns, source.DisplayName())
		// AvailableSources only returns registered sources.
		ranges, _ := annotation.Ranges(source)
		vectors[i] = b.Vector(len(residues), ranges)
	}

	for pos, residue := range residues {
		labels := make([]domain.Label, len(sources))
		for i := range sources {
			labels[i] = vectors[i][pos]
		}
		t.Rows[pos] = Row{Position: pos + 1, Residue: string(residue), Labels: labels}
	}

	return t
}

// Vector expands ranges to one label per residue. Ranges are written in
// order so later ranges overwrite earlier ones where they overlap.
// Positions beyond length are ignored.
func (b *Builder) Vector(length int, ranges []domain.ResidueRange) []domain.Label {
	if length < 0 {
		length = 0
	}
	vec := make([]domain.Label, length)
	for i := range vec {
		vec[i] = b.fill
	}
	for _, r := range ranges {
		start := max(r.Start, 1)
		end := min(r.End, length)
		for pos := start; pos <= end; pos++ {
			vec[pos-1] = r.Label
		}
	}
	return vec
}

// Column returns the labels of one source, or false if the table has no such column.
func (t *Table) Column(source domain.AnnotationSource) ([]domain.Label, bool) {
	idx := t.index(source)
	if idx < 0 {
		return nil, false
	}
	col := make([]domain.Label, len(t.Rows))
	for i, row := range t.Rows {
		col[i] = row.Labels[idx]
	}
	return col, true
}

// Label returns the label of a source at a row, or false if the table has no such column.
func (t *Table) Label(row int, source domain.AnnotationSource) (domain.Label, bool) {
	idx := t.index(source)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return "", false
	}
	return t.Rows[row].Labels[idx], true
}

// Sequence returns the residue column as a string.
func (t *Table) Sequence() string {
	var out []rune
	for _, row := range t.Rows {
		out = append(out, []rune(row.Residue)...)
	}
	return string(out)
}

func (t *Table) index(source domain.AnnotationSource) int {
	for i, s := range t.Sources {
		if s == source {
			return i
		}
	}
	return -1
}
