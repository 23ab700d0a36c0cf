// Package report provides the scrollable protein report view for the TUI.
package report

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rostlab/tmvis/internal/adapters/driving/tui/components/status"
	"github.com/rostlab/tmvis/internal/adapters/driving/tui/keymap"
	"github.com/rostlab/tmvis/internal/adapters/driving/tui/messages"
	"github.com/rostlab/tmvis/internal/adapters/driving/tui/styles"
	"github.com/rostlab/tmvis/internal/colourmap"
	"github.com/rostlab/tmvis/internal/core/domain"
	rendering "github.com/rostlab/tmvis/internal/report"
)

// chromeHeight is the number of lines used by the title, help and status bar.
const chromeHeight = 4

// View shows one rendered protein report in a viewport.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	viewport  viewport.Model
	statusbar *status.Bar

	report *domain.ProteinReport
	scheme colourmap.Scheme
	back   messages.ViewType

	width  int
	height int
}

// NewView creates a new report view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetState(status.StateReport)

	return &View{
		styles:    s,
		keymap:    km,
		viewport:  viewport.New(80, 24-chromeHeight),
		statusbar: bar,
		scheme:    colourmap.SchemeTopology,
		back:      messages.ViewLookup,
		width:     80,
		height:    24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetReport shows rep; esc returns to back.
func (v *View) SetReport(rep *domain.ProteinReport, back messages.ViewType) {
	v.report = rep
	v.back = back
	v.render()
	v.viewport.GotoTop()
}

// Report returns the report on display.
func (v *View) Report() *domain.ProteinReport {
	return v.report
}

// Scheme returns the active legend scheme.
func (v *View) Scheme() colourmap.Scheme {
	return v.scheme
}

func (v *View) render() {
	if v.report == nil {
		v.viewport.SetContent("")
		return
	}
	r := rendering.NewRenderer(rendering.Options{Colour: true, Scheme: v.scheme})
	v.viewport.SetContent(r.String(v.report))
	v.statusbar.SetMessage(v.report.Accession())
}

func (v *View) toggleScheme() {
	if v.scheme == colourmap.SchemeTopology {
		v.scheme = colourmap.SchemeConfidence
	} else {
		v.scheme = colourmap.SchemeTopology
	}
	v.render()
}

// Update handles messages for the report view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch {
		case keymap.Matches(msg.String(), v.keymap.Back):
			back := v.back
			return v, func() tea.Msg {
				return messages.ViewChanged{View: back}
			}
		case keymap.Matches(msg.String(), v.keymap.Scheme):
			v.toggleScheme()
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the report view.
func (v *View) View() string {
	var b strings.Builder

	title := "Report"
	if v.report != nil {
		title = v.report.Accession()
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(v.viewport.View())
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] scroll  [p] toggle topology/pLDDT legend  [esc] back"))
	b.WriteString("\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = max(height-chromeHeight, 1)
	v.statusbar.SetWidth(width)
}
