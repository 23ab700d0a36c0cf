// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rostlab/tmvis/internal/adapters/driving/tui/styles"
)

// maxIdentifier bounds the input; entry names and accessions are short.
const maxIdentifier = 32

// AccessionInput wraps a bubbles textinput for protein identifiers.
type AccessionInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewAccessionInput creates a new identifier input component.
func NewAccessionInput(s *styles.Styles) *AccessionInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "UniProt accession or entry name, e.g. P02945"
	ti.Focus()
	ti.CharLimit = maxIdentifier
	ti.Width = 50

	return &AccessionInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the input.
func (a *AccessionInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (a *AccessionInput) Update(msg tea.Msg) (*AccessionInput, tea.Cmd) {
	var cmd tea.Cmd
	a.textinput, cmd = a.textinput.Update(msg)
	return a, cmd
}

// View renders the input.
func (a *AccessionInput) View() string {
	label := a.styles.Title.Render("Protein: ")
	field := a.styles.InputField.Render(a.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the trimmed identifier.
func (a *AccessionInput) Value() string {
	return strings.TrimSpace(a.textinput.Value())
}

// SetValue sets the input value.
func (a *AccessionInput) SetValue(value string) {
	a.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (a *AccessionInput) Focus() tea.Cmd {
	return a.textinput.Focus()
}

// Blur removes focus from the input.
func (a *AccessionInput) Blur() {
	a.textinput.Blur()
}

// Focused returns whether the input is focused.
func (a *AccessionInput) Focused() bool {
	return a.textinput.Focused()
}

// SetWidth sets the width of the input.
func (a *AccessionInput) SetWidth(width int) {
	a.width = width
	a.textinput.Width = max(width-12, 20)
}

// Width returns the current width.
func (a *AccessionInput) Width() int {
	return a.width
}

// Reset clears the input.
func (a *AccessionInput) Reset() {
	a.textinput.Reset()
}
