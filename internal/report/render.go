package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rostlab/tmvis/internal/colourmap"
	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/residuetable"
)

// DefaultBlockWidth is the number of residues per alignment block.
const DefaultBlockWidth = 60

// Options controls rendering.
type Options struct {
	// Colour enables ANSI styling; plain text otherwise.
	Colour bool

	// Scheme selects the legend: topology or pLDDT confidence.
	Scheme colourmap.Scheme

	// BlockWidth is the number of residues per alignment block.
	BlockWidth int
}

// Renderer writes protein reports.
type Renderer struct {
	opts    Options
	builder *residuetable.Builder

	heading lipgloss.Style
	muted   lipgloss.Style
	warn    lipgloss.Style
}

// NewRenderer creates a renderer.
func NewRenderer(opts Options) *Renderer {
	if opts.BlockWidth <= 0 {
		opts.BlockWidth = DefaultBlockWidth
	}
	if opts.Scheme == "" {
		opts.Scheme = colourmap.SchemeTopology
	}
	return &Renderer{
		opts:    opts,
		builder: residuetable.NewBuilder(),
		heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// Render writes the full report.
func (r *Renderer) Render(w io.Writer, rep *domain.ProteinReport) error {
	_, err := io.WriteString(w, r.String(rep))
	return err
}

// String returns the full report.
func (r *Renderer) String(rep *domain.ProteinReport) string {
	var b strings.Builder

	b.WriteString(r.style(r.heading, rep.Accession()))
	b.WriteString("\n\n")

	r.writeFields(&b, ProteinFields(rep))
	b.WriteString("\n")

	b.WriteString(r.style(r.heading, "Membrane Annotations"))
	b.WriteString("\n")
	r.writeAnnotations(&b, rep)
	b.WriteString("\n")

	b.WriteString(r.style(r.heading, "Colour code"))
	b.WriteString("\n")
	r.writeLegend(&b, rep.Annotation)
	b.WriteString("\n")

	b.WriteString(r.style(r.heading, "Resources to evaluate your selection further"))
	b.WriteString("\n")
	for _, link := range Resources(rep) {
		fmt.Fprintf(&b, "- %s: %s\n", link.Label, link.URL)
	}

	r.writeDiagnostics(&b, rep)
	return b.String()
}

// Table renders only the aligned residue table.
func (r *Renderer) Table(sequence string, annotation *domain.MembraneAnnotation) string {
	var b strings.Builder
	r.writeTable(&b, r.builder.Build(sequence, annotation))
	return b.String()
}

func (r *Renderer) writeFields(b *strings.Builder, fields []Field) {
	width := 0
	for _, f := range fields {
		width = max(width, len(f.Name))
	}
	for _, f := range fields {
		value := f.Value
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(b, "  %-*s  %s\n", width, f.Name, value)
	}
}

func (r *Renderer) writeAnnotations(b *strings.Builder, rep *domain.ProteinReport) {
	if rep.Annotation == nil || !rep.Annotation.HasAnnotations() {
		b.WriteString(r.style(r.muted, NoAnnotationsNotice))
		b.WriteString("\n")
		return
	}

	b.WriteString(Summary(rep.Annotation))
	b.WriteString("\n\n")

	if rep.Sequence == "" {
		b.WriteString(r.style(r.muted, "Sequence unknown; residue table unavailable."))
		b.WriteString("\n")
		return
	}

	r.writeTable(b, r.builder.Build(rep.Sequence, rep.Annotation))
	b.WriteString(r.style(r.muted, NoEvidenceCaption))
	b.WriteString("\n")
}

// writeTable prints the table transposed, in blocks of BlockWidth residues:
// one line per column, residues left to right, each residue shaded by its
// row colour.
func (r *Renderer) writeTable(b *strings.Builder, t *residuetable.Table) {
	if len(t.Rows) == 0 {
		return
	}

	nameWidth := 0
	for _, c := range t.Columns {
		nameWidth = max(nameWidth, len(c))
	}
	posWidth := len(fmt.Sprint(len(t.Rows)))

	colours := colourmap.RowColours(t)
	width := cellWidth(t)

	for start := 0; start < len(t.Rows); start += r.opts.BlockWidth {
		end := min(start+r.opts.BlockWidth, len(t.Rows))

		for col, name := range t.Columns {
			prefix := strings.Repeat(" ", posWidth)
			if col == 0 {
				prefix = fmt.Sprintf("%*d", posWidth, start+1)
			}
			fmt.Fprintf(b, "%s %-*s ", prefix, nameWidth, name)

			for i := start; i < end; i++ {
				row := t.Rows[i]
				cell := row.Residue
				if col > 0 {
					cell = string(row.Labels[col-1])
				}
				b.WriteString(r.cell(cell, width, colours[i]))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
}

// cellWidth is the widest label in the table. Every cell is padded to it
// so multi-character codes (AH, BS) stay whole and residues stay aligned.
func cellWidth(t *residuetable.Table) int {
	width := 1
	for _, row := range t.Rows {
		for _, l := range row.Labels {
			width = max(width, len(l))
		}
	}
	return width
}

// cell renders one residue padded to width.
func (r *Renderer) cell(text string, width int, c colourmap.Colour) string {
	text = fmt.Sprintf("%-*s", width, text)
	if !r.opts.Colour || c.IsZero() {
		return text
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex)).
		Foreground(lipgloss.Color("#000000")).
		Render(text)
}

func (r *Renderer) writeLegend(b *strings.Builder, annotation *domain.MembraneAnnotation) {
	if UsesConfidenceLegend(r.opts.Scheme, annotation) {
		for _, band := range colourmap.ConfidenceBands() {
			fmt.Fprintf(b, "  %s %s\n", r.swatch(band.Colour), band.Label)
		}
		return
	}

	entries := append(colourmap.TopologyLegend(), colourmap.SpanLegend()...)
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Topology))
	}
	for _, e := range entries {
		fmt.Fprintf(b, "  %s %-*s  %-2s  %-9s  %s\n",
			r.swatch(e.Colour), width, e.Topology, string(e.Code), e.Orientation, e.Colour.Name)
	}
	b.WriteString(r.style(r.muted, TMbedCaveat))
	b.WriteString("\n")
}

func (r *Renderer) swatch(c colourmap.Colour) string {
	if !r.opts.Colour {
		return "-"
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex)).Render("  ")
}

func (r *Renderer) writeDiagnostics(b *strings.Builder, rep *domain.ProteinReport) {
	if len(rep.Failures) > 0 {
		b.WriteString("\n")
		b.WriteString(r.style(r.warn, "Unavailable sources"))
		b.WriteString("\n")
		for _, s := range domain.Sources() {
			if reason, ok := rep.Failures[s]; ok {
				fmt.Fprintf(b, "- %s: %s\n", s.DisplayName(), reason)
			}
		}
	}

	if rep.Annotation == nil {
		return
	}
	var notes []domain.Warning
	for _, w := range rep.Annotation.Warnings() {
		if w.Kind != domain.WarningFetchFailed {
			notes = append(notes, w)
		}
	}
	if len(notes) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(r.style(r.warn, "Data-quality notes"))
	b.WriteString("\n")
	for _, w := range notes {
		fmt.Fprintf(b, "- %s: %s\n", w.Source.DisplayName(), w.Message)
	}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.opts.Colour {
		return text
	}
	return s.Render(text)
}
