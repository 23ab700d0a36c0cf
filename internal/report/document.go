package report

import (
	"github.com/rostlab/tmvis/internal/colourmap"
	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/residuetable"
)

// RangeView is the JSON form of one residue range.
type RangeView struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
}

// SourceView is the JSON form of one present source.
type SourceView struct {
	Source       string      `json:"source"`
	DisplayName  string      `json:"display_name"`
	ReferenceURL string      `json:"reference_url,omitempty"`
	Ranges       []RangeView `json:"ranges"`
}

// WarningView is the JSON form of a data-quality note.
type WarningView struct {
	Source  string `json:"source"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// TableView is the JSON form of the aligned residue table. Each row is the
// residue followed by one label per annotation column.
type TableView struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Document is the machine-readable protein report.
type Document struct {
	Query     string                 `json:"query"`
	Accession string                 `json:"accession"`
	EntryName string                 `json:"entry_name,omitempty"`
	Length    int                    `json:"length,omitempty"`
	Sequence  string                 `json:"sequence,omitempty"`
	Summary   string                 `json:"summary"`
	Sources   []SourceView           `json:"sources"`
	Table     *TableView             `json:"table,omitempty"`
	Warnings  []WarningView          `json:"warnings,omitempty"`
	Failures  map[string]string      `json:"failures,omitempty"`
	Fields    []Field                `json:"fields"`
	Resources []Link                 `json:"resources"`
	Viewer    *colourmap.ViewerStyle `json:"viewer,omitempty"`
}

// NewDocument flattens a report. Sources are listed in registry order and
// only when present; a present source with no evidence has an empty range list.
func NewDocument(rep *domain.ProteinReport, viewer *colourmap.ViewerStyle) Document {
	doc := Document{
		Query:     rep.Query,
		Accession: rep.Accession(),
		EntryName: rep.Identity.EntryName,
		Length:    rep.Identity.Length,
		Sequence:  rep.Sequence,
		Summary:   NoAnnotationsSummary,
		Sources:   []SourceView{},
		Fields:    ProteinFields(rep),
		Resources: Resources(rep),
		Viewer:    viewer,
	}
	if doc.Length == 0 {
		doc.Length = len(rep.Sequence)
	}

	if ann := rep.Annotation; ann != nil {
		doc.Summary = Summary(ann)
		for _, source := range ann.PresentSources() {
			ranges, err := ann.Ranges(source)
			if err != nil {
				continue
			}
			url, _ := ann.ReferenceURL(source)
			view := SourceView{
				Source:       string(source),
				DisplayName:  source.DisplayName(),
				ReferenceURL: url,
				Ranges:       make([]RangeView, len(ranges)),
			}
			for i, r := range ranges {
				view.Ranges[i] = RangeView{Start: r.Start, End: r.End, Label: string(r.Label)}
			}
			doc.Sources = append(doc.Sources, view)
		}
		for _, w := range ann.Warnings() {
			doc.Warnings = append(doc.Warnings, WarningView{
				Source:  string(w.Source),
				Kind:    string(w.Kind),
				Message: w.Message,
			})
		}
	}

	if rep.Sequence != "" {
		doc.Table = newTableView(residuetable.NewBuilder().Build(rep.Sequence, rep.Annotation))
	}

	if len(rep.Failures) > 0 {
		doc.Failures = make(map[string]string, len(rep.Failures))
		for source, reason := range rep.Failures {
			doc.Failures[string(source)] = reason
		}
	}
	return doc
}

func newTableView(t *residuetable.Table) *TableView {
	view := &TableView{
		Columns: t.Columns,
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		cells := make([]string, 0, len(row.Labels)+1)
		cells = append(cells, row.Residue)
		for _, l := range row.Labels {
			cells = append(cells, string(l))
		}
		view.Rows[i] = cells
	}
	return view
}
