// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rostlab/tmvis/internal/adapters/driving/tui/styles"
	"github.com/rostlab/tmvis/internal/core/domain"
)

// ProteinList displays stored proteins in a navigable list.
type ProteinList struct {
	proteins []domain.Protein
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewProteinList creates a new protein list component.
func NewProteinList(s *styles.Styles) *ProteinList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ProteinList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (p *ProteinList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (p *ProteinList) Update(msg tea.Msg) (*ProteinList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			p.MoveUp()
		case "down", "j":
			p.MoveDown()
		case "home", "g":
			p.selected = 0
		case "end", "G":
			if len(p.proteins) > 0 {
				p.selected = len(p.proteins) - 1
			}
		}
	}
	return p, nil
}

// View renders the list.
func (p *ProteinList) View() string {
	if len(p.proteins) == 0 {
		return p.styles.Muted.Render("No proteins")
	}

	lines := make([]string, 0, len(p.proteins)+2)
	lines = append(lines, p.styles.Subtitle.Render(fmt.Sprintf("Proteins (%d)", len(p.proteins))), "")

	visible := max(p.height-3, 1)
	start := 0
	if p.selected >= visible {
		start = p.selected - visible + 1
	}
	end := min(start+visible, len(p.proteins))

	for i := start; i < end; i++ {
		lines = append(lines, p.renderRow(i, &p.proteins[i]))
	}
	return strings.Join(lines, "\n")
}

// renderRow formats one protein: accession, entry name, length and topology.
func (p *ProteinList) renderRow(index int, protein *domain.Protein) string {
	indicator := "  "
	if index == p.selected {
		indicator = "> "
	}

	organism := protein.Organism.Name
	maxOrganism := max(p.width-50, 10)
	if len(organism) > maxOrganism {
		organism = organism[:maxOrganism-3] + "..."
	}

	main := fmt.Sprintf("%s%-10s %-14s %5d", indicator, protein.Accession, protein.UniProtID, protein.Length())
	detail := fmt.Sprintf("  %s  %s", topologyTag(protein.TMInfo), organism)

	if index == p.selected {
		return p.styles.Selected.Render(main) + p.styles.Muted.Render(detail)
	}
	return p.styles.Normal.Render(main) + p.styles.Muted.Render(detail)
}

// topologyTag summarises the membrane content of a protein.
func topologyTag(info domain.TMInfo) string {
	var parts []string
	if info.HasAlphaHelix {
		parts = append(parts, fmt.Sprintf("α %.0f%%", info.HelixPercent))
	}
	if info.HasBetaStrand {
		parts = append(parts, fmt.Sprintf("β %.0f%%", info.StrandPercent))
	}
	if info.HasSignal {
		parts = append(parts, "SP")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// SetProteins replaces the list contents.
func (p *ProteinList) SetProteins(proteins []domain.Protein) {
	p.proteins = proteins
	p.selected = 0
}

// Selected returns the index of the selected protein.
func (p *ProteinList) Selected() int {
	return p.selected
}

// SelectedProtein returns the selected protein, or nil if none.
func (p *ProteinList) SelectedProtein() *domain.Protein {
	if p.selected < 0 || p.selected >= len(p.proteins) {
		return nil
	}
	return &p.proteins[p.selected]
}

// MoveUp moves selection up.
func (p *ProteinList) MoveUp() {
	if p.selected > 0 {
		p.selected--
	}
}

// MoveDown moves selection down.
func (p *ProteinList) MoveDown() {
	if p.selected < len(p.proteins)-1 {
		p.selected++
	}
}

// SetDimensions sets the component dimensions.
func (p *ProteinList) SetDimensions(width, height int) {
	p.width = width
	p.height = height
}

// Count returns the number of proteins.
func (p *ProteinList) Count() int {
	return len(p.proteins)
}
