package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/photodesk/internal/keys"
	"github.com/nhle/photodesk/internal/model"
	"github.com/nhle/photodesk/internal/studio"
	"github.com/nhle/photodesk/internal/theme"
	"github.com/nhle/photodesk/internal/ui/action"
	"github.com/nhle/photodesk/internal/workspace"
)

// OpenEventMsg asks the parent to show the events tab focused on EventID.
type OpenEventMsg struct {
	EventID model.ID
}

// Model is the dashboard: four counters and the next sessions.
type Model struct {
	st          *studio.Studio
	keys        *keys.KeyMap
	limit       int
	selectedIdx int
	width       int
	height      int
}

// New creates the dashboard. limit caps the upcoming list.
func New(st *studio.Studio, k *keys.KeyMap, limit, width, height int) Model {
	return Model{st: st, keys: k, limit: limit, width: width, height: height}
}

type snapshot struct {
	counters workspace.Counters
	upcoming []model.Session
	labels   map[model.ID]string
}

func (m Model) load() snapshot {
	snap := snapshot{labels: map[model.ID]string{}}
	m.st.View(func(ws *workspace.Workspace) {
		now := ws.Dates().RegionalNow()
		snap.counters = ws.Counters(now)
		for s := range ws.UpcomingSessions(now, m.limit) {
			snap.upcoming = append(snap.upcoming, s)
			snap.labels[s.EventID] = ws.EventLabel(s.EventID)
		}
	})
	return snap
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	snap := m.load()
	n := len(snap.upcoming)

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		if n > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % n
		}
	case key.Matches(keyMsg, m.keys.Up):
		if n > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = n - 1
			}
		}
	case key.Matches(keyMsg, m.keys.Toggle):
		if m.selectedIdx < n {
			return m, m.toggle(snap.upcoming[m.selectedIdx].ID)
		}
	case key.Matches(keyMsg, m.keys.Select):
		if m.selectedIdx < n {
			id := snap.upcoming[m.selectedIdx].EventID
			return m, func() tea.Msg { return OpenEventMsg{EventID: id} }
		}
	}
	return m, nil
}

func (m Model) toggle(id model.ID) tea.Cmd {
	st := m.st
	return action.Request("Cambiar estado", func(ctx context.Context) (string, error) {
		if err := st.ToggleSessionStatus(ctx, id); err != nil {
			return "", err
		}
		return "Estado de la sesión actualizado", nil
	})
}

// View renders the dashboard.
func (m Model) View() string {
	snap := m.load()

	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render("Panel"))
	b.WriteString("\n")

	c := snap.counters
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		counter("Sesiones hoy", c.TodaySessions),
		counter("Próximos 7 días", c.SessionsNext7Days),
		counter("Eventos activos", c.ActiveEvents),
		counter("Entregas pendientes", c.PendingDeliveries),
	))
	b.WriteString("\n\n")

	b.WriteString(theme.TitleStyle.Render("Próximas sesiones"))
	b.WriteString("\n")
	if len(snap.upcoming) == 0 {
		b.WriteString(theme.EmptyStyle.Render("No hay sesiones próximas."))
	}
	for i, s := range snap.upcoming {
		line := fmt.Sprintf("%s %s  %s  %s  %s",
			s.Date, s.Time, snap.labels[s.EventID], s.Photographer,
			theme.StatusStyle(s.Status).Render(sessionStatus(s)))
		if i == m.selectedIdx {
			b.WriteString(theme.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(theme.ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("x completar | enter ver evento"))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Render(b.String())
}

func counter(label string, n int) string {
	value := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue).Render(fmt.Sprint(n))
	return theme.CounterStyle.Width(22).Render(value + "\n" + label)
}

func sessionStatus(s model.Session) string {
	if s.IsCompleted() {
		return "Completada"
	}
	return "Pendiente"
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
