package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/photodesk/internal/keys"
	"github.com/nhle/photodesk/internal/studio"
	psync "github.com/nhle/photodesk/internal/sync"
	"github.com/nhle/photodesk/internal/theme"
	"github.com/nhle/photodesk/internal/ui"
	"github.com/nhle/photodesk/internal/ui/action"
	"github.com/nhle/photodesk/internal/ui/calendar"
	"github.com/nhle/photodesk/internal/ui/checklists"
	"github.com/nhle/photodesk/internal/ui/command"
	"github.com/nhle/photodesk/internal/ui/dashboard"
	"github.com/nhle/photodesk/internal/ui/events"
	helpview "github.com/nhle/photodesk/internal/ui/help"
	"github.com/nhle/photodesk/internal/ui/settings"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewCalendar
	ViewEvents
	ViewChecklists
	ViewSettings
	ViewHelp
	ViewCommand
)

// tabCount is the number of views reachable from the tab bar.
const tabCount = int(ViewSettings) + 1

var tabTitles = []string{"Panel", "Calendario", "Eventos", "Entregas", "Ajustes"}

// Options configures the root model.
type Options struct {
	// UpcomingLimit caps the dashboard's upcoming list.
	UpcomingLimit int
	// AutoConnect connects to the mirror with stored credentials on
	// start, and opens the cloud settings when none are stored.
	AutoConnect bool
}

// Model is the root Bubble Tea model that manages view routing, layout,
// the confirmation dialog and the single in-flight operation.
type Model struct {
	ctx          context.Context
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	st           *studio.Studio
	keys         *keys.KeyMap
	opts         Options
	dashboard    dashboard.Model
	calendar     calendar.Model
	events       events.Model
	checklists   checklists.Model
	settings     settings.Model
	helpView     helpview.Model
	commandView  command.Model
	dialog       action.Dialog
	ready        bool
	busy         string
	statusMsg    string
	statusErr    bool
}

// New creates the root application model over st.
func New(ctx context.Context, st *studio.Studio, opts Options) Model {
	k := keys.DefaultKeyMap()
	return Model{
		ctx:         ctx,
		currentView: ViewDashboard,
		st:          st,
		keys:        k,
		opts:        opts,
		dashboard:   dashboard.New(st, k, opts.UpcomingLimit, 80, 24),
		calendar:    calendar.New(st, k, 80, 24),
		events:      events.New(st, k, 80, 24),
		checklists:  checklists.New(st, k, 80, 24),
		settings:    settings.New(st, k, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24, helpview.CommandNames()),
	}
}

// Init starts listening for mirror notices and, when configured,
// connects to the mirror.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.st.Sync().WaitForNotice()}
	if m.opts.AutoConnect {
		cmds = append(cmds, m.connectMirror())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.dashboard.SetSize(contentWidth, contentHeight)
		m.calendar.SetSize(contentWidth, contentHeight)
		m.events.SetSize(contentWidth, contentHeight)
		m.checklists.SetSize(contentWidth, contentHeight)
		m.settings.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		m.dialog.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case mirrorReadyMsg:
		if msg.missing {
			m.previousView = m.currentView
			m.currentView = ViewSettings
			m.settings.ShowRemote()
			m.setStatus("Configurá la nube o elegí trabajar sin conexión", false)
		}
		return m, nil

	case psync.NoticeMsg:
		m.setStatus(msg.Message, msg.Err != nil)
		return m, m.st.Sync().WaitForNotice()

	case action.RequestMsg:
		if m.busy != "" {
			m.setStatus(fmt.Sprintf("Esperá: %s en curso", m.busy), true)
			return m, nil
		}
		m.busy = msg.Label
		return m, action.Run(m.ctx, msg)

	case action.ResultMsg:
		m.busy = ""
		if msg.Err != nil {
			m.setStatus(action.Describe(msg.Err), true)
		} else if msg.Status != "" {
			m.setStatus(msg.Status, false)
		}
		return m.broadcast(msg)

	case action.ConfirmMsg:
		if m.busy != "" {
			m.st.Cancel(msg.Ticket)
			m.setStatus(fmt.Sprintf("Esperá: %s en curso", m.busy), true)
			return m, nil
		}
		cmd := m.dialog.Open(msg.Ticket)
		return m, cmd

	case action.DialogDoneMsg:
		if !msg.Accepted {
			m.st.Cancel(msg.Ticket)
			m.setStatus("Operación cancelada", false)
			return m, nil
		}
		st, ticket := m.st, msg.Ticket
		return m, action.Request("Confirmar", func(ctx context.Context) (string, error) {
			if err := st.Execute(ctx, ticket); err != nil {
				return "", err
			}
			return "Operación completada", nil
		})

	case action.ErrorMsg:
		m.setStatus(action.Describe(msg.Err), true)
		return m, nil

	case dashboard.OpenEventMsg:
		m.events.Focus(msg.EventID)
		m.currentView = ViewEvents
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		if msg == "" {
			return m, nil
		}
		cmd := m.executeCommand(string(msg))
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.setStatus("", false)
		if m.dialog.Visible() {
			cmd := m.dialog.Update(msg)
			return m, cmd
		}
		if m.currentView == ViewCommand || m.inForm() {
			return m.updateActiveView(msg)
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit

		case "?":
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case ":":
			m.previousView = m.currentView
			m.currentView = ViewCommand
			cmd := m.commandView.Focus()
			return m, cmd

		case "esc":
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}

		case "tab":
			if m.currentView < ViewHelp {
				m.currentView = ViewState((int(m.currentView) + 1) % tabCount)
				return m, nil
			}

		case "1", "2", "3", "4", "5":
			m.currentView = ViewState(msg.String()[0] - '1')
			return m, nil
		}

	default:
		if m.dialog.Visible() {
			cmd := m.dialog.Update(msg)
			return m, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// inForm reports whether the active view has a form owning the keyboard.
func (m Model) inForm() bool {
	switch m.currentView {
	case ViewEvents:
		return m.events.InForm()
	case ViewSettings:
		return m.settings.InForm()
	}
	return false
}

// broadcast lets every list view adjust its selection after data changed.
func (m Model) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds [4]tea.Cmd
	m.dashboard, cmds[0] = m.dashboard.Update(msg)
	m.events, cmds[1] = m.events.Update(msg)
	m.checklists, cmds[2] = m.checklists.Update(msg)
	m.settings, cmds[3] = m.settings.Update(msg)
	return m, tea.Batch(cmds[:]...)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewCalendar:
		m.calendar, cmd = m.calendar.Update(msg)
	case ViewEvents:
		m.events, cmd = m.events.Update(msg)
	case ViewChecklists:
		m.checklists, cmd = m.checklists.Update(msg)
	case ViewSettings:
		m.settings, cmd = m.settings.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusErr = isErr
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Cargando..."
	}

	header := m.layout.RenderHeader("photodesk", m.syncStatus())
	activeTab := int(m.currentView)
	if m.currentView >= ViewHelp {
		activeTab = int(m.previousView)
	}
	tabs := m.layout.RenderTabs(tabTitles, activeTab)
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, tabs, m.renderContent(), statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	if m.dialog.Visible() {
		return m.dialog.View()
	}

	switch m.currentView {
	case ViewDashboard:
		return m.dashboard.View()
	case ViewCalendar:
		return m.calendar.View()
	case ViewEvents:
		return m.events.View()
	case ViewChecklists:
		return m.checklists.View()
	case ViewSettings:
		return m.settings.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// syncStatus returns a short string describing the mirror state and any
// running operation.
func (m Model) syncStatus() string {
	status := m.st.Sync().State().String()
	if m.busy != "" {
		return fmt.Sprintf("%s | %s...", status, m.busy)
	}
	return status
}

// keyHints returns the last status message, or keyboard shortcut hints
// for the status bar.
func (m Model) keyHints() string {
	if m.statusMsg != "" {
		if m.statusErr {
			return theme.ErrorStyle.Render(m.statusMsg)
		}
		return m.statusMsg
	}

	switch m.currentView {
	case ViewHelp:
		return "? cerrar ayuda | esc volver"
	case ViewCommand:
		return "enter ejecutar | tab completar | esc volver"
	default:
		return "q salir | ? ayuda | : comandos | 1-5 pestañas | tab siguiente"
	}
}
