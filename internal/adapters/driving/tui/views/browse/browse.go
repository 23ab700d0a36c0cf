// Package browse provides the stored protein list view for the TUI.
package browse

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rostlab/tmvis/internal/adapters/driving/tui/components/list"
	"github.com/rostlab/tmvis/internal/adapters/driving/tui/components/status"
	"github.com/rostlab/tmvis/internal/adapters/driving/tui/keymap"
	"github.com/rostlab/tmvis/internal/adapters/driving/tui/messages"
	"github.com/rostlab/tmvis/internal/adapters/driving/tui/styles"
	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/core/ports/driving"
)

// View lists proteins from the local store.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.ProteinList
	statusbar *status.Bar

	service driving.ProteinService
	ctx     context.Context

	random  bool
	loading bool
	err     error
	width   int
	height  int
}

// NewView creates a new browse view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.ProteinService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetState(status.StateBrowse)

	return &View{
		styles:    s,
		keymap:    km,
		list:      list.NewProteinList(s),
		statusbar: bar,
		service:   service,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used for store queries.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load lists stored proteins of every organism.
func (v *View) Load() tea.Cmd {
	return v.load(false)
}

func (v *View) load(random bool) tea.Cmd {
	v.loading = true
	v.random = random
	v.err = nil

	service, ctx := v.service, v.ctx
	filter := domain.DefaultProteinFilter()
	filter.TaxonID = ""
	filter.Random = random

	return func() tea.Msg {
		if service == nil {
			return messages.ProteinsLoaded{Err: errors.New("protein store not available")}
		}
		proteins, err := service.List(ctx, filter)
		return messages.ProteinsLoaded{Proteins: proteins, Err: err}
	}
}

// Loading reports whether a query is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Update handles messages for the browse view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ProteinsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.list.SetProteins(msg.Proteins)
		v.statusbar.SetState(status.StateBrowse)
		v.statusbar.SetMessage(fmt.Sprintf("%d protein(s)", len(msg.Proteins)))
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case keymap.Matches(msg.String(), v.keymap.Random):
		return v, v.load(true)

	case keymap.Matches(msg.String(), v.keymap.Select):
		p := v.list.SelectedProtein()
		if p == nil {
			return v, nil
		}
		id := p.Accession
		return v, func() tea.Msg {
			return messages.LookupRequested{ID: id}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// View renders the browse view.
func (v *View) View() string {
	var b strings.Builder

	title := "Stored proteins"
	if v.random {
		title = "Stored proteins (random selection)"
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(v.err.Error()))
	case v.list.Count() == 0:
		b.WriteString(v.styles.Muted.Render("No proteins stored. Import a dump with 'tmvis import'."))
	default:
		b.WriteString(v.list.View())
	}
	b.WriteString("\n\n")

	b.WriteString(v.styles.Help.Render("[enter] show report  [r] random selection  [esc] back"))
	b.WriteString("\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, max(height-6, 1))
	v.statusbar.SetWidth(width)
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// SelectedProtein returns the highlighted protein, nil when the list is empty.
func (v *View) SelectedProtein() *domain.Protein {
	return v.list.SelectedProtein()
}
