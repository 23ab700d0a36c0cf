package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rostlab/tmvis/internal/adapters/driving/tui/keymap"
	"github.com/rostlab/tmvis/internal/adapters/driving/tui/messages"
	"github.com/rostlab/tmvis/internal/adapters/driving/tui/styles"
	"github.com/rostlab/tmvis/internal/adapters/driving/tui/views/browse"
	"github.com/rostlab/tmvis/internal/adapters/driving/tui/views/lookup"
	"github.com/rostlab/tmvis/internal/adapters/driving/tui/views/menu"
	"github.com/rostlab/tmvis/internal/adapters/driving/tui/views/report"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles

	menuView   *menu.View
	lookupView *lookup.View
	reportView *report.View

	// browseView is nil when no protein store is available.
	browseView *browse.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// lookupOrigin is the view a lookup was started from; the report
	// view returns there.
	lookupOrigin messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	app := &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s, ports.Protein != nil),
		lookupView:   lookup.NewView(s, km, ports.Annotation),
		reportView:   report.NewView(s, km),
		currentView:  messages.ViewMenu,
		lookupOrigin: messages.ViewLookup,
	}
	if ports.Protein != nil {
		app.browseView = browse.NewView(s, km, ports.Protein)
	}
	return app, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.lookupView.WithContext(ctx)
	if a.browseView != nil {
		a.browseView.WithContext(ctx)
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("tmvis"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.LookupRequested:
		a.lookupOrigin = messages.ViewLookup
		if a.currentView == messages.ViewBrowse {
			a.lookupOrigin = messages.ViewBrowse
		}
		a.currentView = messages.ViewLookup
		if msg.Offline {
			a.lookupView.SetOffline(true)
		}
		return a, a.lookupView.Start(msg.ID)

	case messages.ReportLoaded:
		if !a.lookupView.Finish(msg) {
			a.err = a.lookupView.Err()
			return a, nil
		}
		a.err = nil
		a.reportView.SetReport(msg.Report, a.lookupOrigin)
		a.currentView = messages.ViewReport
		return a, nil

	case messages.ProteinsLoaded:
		if a.browseView != nil {
			a.browseView, cmd = a.browseView.Update(msg)
		}
		if msg.Err != nil {
			a.err = msg.Err
		}
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil
	}

	return a, a.forward(msg)
}

// switchTo activates a view, initialising it where needed.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	switch view {
	case messages.ViewLookup:
		a.currentView = view
		a.lookupOrigin = messages.ViewLookup
		a.lookupView.Reset()
		return a.lookupView.Init()
	case messages.ViewBrowse:
		if a.browseView == nil {
			return nil
		}
		a.currentView = view
		return a.browseView.Load()
	case messages.ViewReport:
		if a.reportView.Report() == nil {
			return nil
		}
	case messages.ViewMenu, messages.ViewHelp:
	}
	a.currentView = view
	return nil
}

// forward passes msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewLookup:
		a.lookupView, cmd = a.lookupView.Update(msg)
	case messages.ViewReport:
		a.reportView, cmd = a.reportView.Update(msg)
	case messages.ViewBrowse:
		if a.browseView != nil {
			a.browseView, cmd = a.browseView.Update(msg)
		}
	case messages.ViewHelp:
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewLookup:
		return a.lookupView.View()
	case messages.ViewReport:
		return a.reportView.View()
	case messages.ViewBrowse:
		if a.browseView != nil {
			return a.browseView.View()
		}
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
	}
	return a.menuView.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Lookup:
  (type)      UniProt accession or entry name
  enter       Collect annotations
  ctrl+o      Toggle offline (local store only)

Report:
  ↑/↓, pgup   Scroll
  p           Toggle topology / pLDDT legend

Browse:
  j/k, ↑/↓    Navigate proteins
  enter       Show report
  r           Random selection

` + a.styles.Help.Render("[esc] back to menu")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.lookupView.SetDimensions(width, height)
	a.reportView.SetDimensions(width, height)
	if a.browseView != nil {
		a.browseView.SetDimensions(width, height)
	}
}
