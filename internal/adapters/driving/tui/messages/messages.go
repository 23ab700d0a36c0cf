// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/rostlab/tmvis/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewLookup is the identifier input view.
	ViewLookup
	// ViewReport shows one protein report.
	ViewReport
	// ViewBrowse lists stored proteins.
	ViewBrowse
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewLookup:
		return "lookup"
	case ViewReport:
		return "report"
	case ViewBrowse:
		return "browse"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// LookupRequested asks for the report of one protein.
type LookupRequested struct {
	ID      string
	Offline bool
}

// ReportLoaded carries a collected report back to the model.
type ReportLoaded struct {
	ID     string
	Report *domain.ProteinReport
	Err    error
}

// ProteinsLoaded carries the browse list from the store.
type ProteinsLoaded struct {
	Proteins []domain.Protein
	Err      error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
