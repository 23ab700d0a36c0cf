// Package lookup provides the protein identifier input view for the TUI.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rostlab/tmvis/internal/adapters/driving/tui/components/input"
	"github.com/rostlab/tmvis/internal/adapters/driving/tui/components/status"
	"github.com/rostlab/tmvis/internal/adapters/driving/tui/keymap"
	"github.com/rostlab/tmvis/internal/adapters/driving/tui/messages"
	"github.com/rostlab/tmvis/internal/adapters/driving/tui/styles"
	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/core/ports/driving"
)

// View is the lookup view: an identifier input and a spinner while the
// report is collected.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.AccessionInput
	spinner   spinner.Model
	statusbar *status.Bar

	service driving.AnnotationService
	ctx     context.Context

	offline bool
	pending string
	width   int
	height  int
	err     error
}

// NewView creates a new lookup view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.AnnotationService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Title

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewAccessionInput(s),
		spinner:   sp,
		statusbar: status.NewBar(s, km),
		service:   service,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used for lookups.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Focus(), v.input.Init())
}

// Start begins collecting the report of id.
func (v *View) Start(id string) tea.Cmd {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	v.pending = id
	v.err = nil
	v.input.SetValue(id)
	v.input.Blur()
	v.statusbar.SetState(status.StateLoading)
	v.statusbar.SetMessage(id)
	return tea.Batch(v.spinner.Tick, v.collect(id, v.offline))
}

func (v *View) collect(id string, offline bool) tea.Cmd {
	service, ctx := v.service, v.ctx
	return func() tea.Msg {
		if service == nil {
			return messages.ReportLoaded{ID: id, Err: errors.New("annotation service not available")}
		}
		rep, err := service.Collect(ctx, id, domain.LookupOptions{Remote: !offline})
		return messages.ReportLoaded{ID: id, Report: rep, Err: err}
	}
}

// Finish consumes a collected report. It reports whether the report is
// current and usable; stale answers and failures are absorbed by the view.
func (v *View) Finish(msg messages.ReportLoaded) bool {
	if msg.ID != v.pending {
		return false
	}
	v.pending = ""
	v.input.Focus()

	if msg.Err != nil {
		if errors.Is(msg.Err, domain.ErrNotFound) {
			v.err = fmt.Errorf("no protein matches %q", msg.ID)
		} else {
			v.err = msg.Err
		}
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(v.err.Error())
		return false
	}

	v.statusbar.Clear()
	return true
}

// Loading reports whether a lookup is in flight.
func (v *View) Loading() bool {
	return v.pending != ""
}

// Offline reports whether remote lookups are disabled.
func (v *View) Offline() bool {
	return v.offline
}

// SetOffline enables or disables remote lookups.
func (v *View) SetOffline(offline bool) {
	v.offline = offline
	v.statusbar.SetOffline(offline)
}

// Update handles messages for the lookup view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case spinner.TickMsg:
		if !v.Loading() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Back):
		// Abandon any lookup in flight; its answer is ignored by Finish.
		v.pending = ""
		v.statusbar.Clear()
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case keymap.Matches(msg.String(), v.keymap.Offline):
		v.SetOffline(!v.offline)
		return v, nil
	}

	if v.Loading() {
		return v, nil
	}

	if msg.Type == tea.KeyEnter {
		return v, v.Start(v.input.Value())
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the lookup view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Look up a protein"))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n\n")

	switch {
	case v.Loading():
		source := "local store and remote sources"
		if v.offline {
			source = "local store"
		}
		b.WriteString(fmt.Sprintf("%s Collecting annotations for %s from the %s...",
			v.spinner.View(), v.pending, source))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(v.err.Error()))
	default:
		b.WriteString(v.styles.Muted.Render("Accessions look like P02945; entry names like BACR_HALSA."))
	}
	b.WriteString("\n\n")

	b.WriteString(v.styles.Help.Render("[enter] look up  [ctrl+o] toggle offline  [esc] back"))
	b.WriteString("\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Err returns the last lookup error.
func (v *View) Err() error {
	return v.err
}

// Reset clears the input and any error.
func (v *View) Reset() {
	v.input.Reset()
	v.err = nil
	v.pending = ""
	v.statusbar.Clear()
}
