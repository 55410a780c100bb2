package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/photodesk/internal/datetime"
	"github.com/nhle/photodesk/internal/keys"
	"github.com/nhle/photodesk/internal/studio"
	"github.com/nhle/photodesk/internal/theme"
	"github.com/nhle/photodesk/internal/workspace"
)

// GridCells is the number of day cells in a month view: six weeks.
const GridCells = 42

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

var weekdayNames = [...]string{"Dom", "Lun", "Mar", "Mié", "Jue", "Vie", "Sáb"}

// MonthGrid returns the days shown for the month containing day, starting
// on the Sunday on or before the first of the month.
func MonthGrid(day time.Time) [GridCells]time.Time {
	first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	start := datetime.AddDays(first, -int(first.Weekday()))

	var grid [GridCells]time.Time
	for i := range grid {
		grid[i] = datetime.AddDays(start, i)
	}
	return grid
}

// MonthTitle renders "Mes YYYY" in Spanish.
func MonthTitle(day time.Time) string {
	return fmt.Sprintf("%s %d", monthNames[day.Month()-1], day.Year())
}

// Model is the month calendar with the sessions of the selected day.
type Model struct {
	st       *studio.Studio
	keys     *keys.KeyMap
	selected time.Time
	width    int
	height   int
}

// New creates the calendar positioned on today.
func New(st *studio.Studio, k *keys.KeyMap, width, height int) Model {
	return Model{st: st, keys: k, selected: st.Today(), width: width, height: height}
}

// Selected returns the highlighted day.
func (m Model) Selected() time.Time {
	return m.selected
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Left):
		m.selected = datetime.AddDays(m.selected, -1)
	case key.Matches(keyMsg, m.keys.Right):
		m.selected = datetime.AddDays(m.selected, 1)
	case key.Matches(keyMsg, m.keys.Up):
		m.selected = datetime.AddDays(m.selected, -7)
	case key.Matches(keyMsg, m.keys.Down):
		m.selected = datetime.AddDays(m.selected, 7)
	case key.Matches(keyMsg, m.keys.PrevMonth):
		m.selected = shiftMonth(m.selected, -1)
	case key.Matches(keyMsg, m.keys.NextMonth):
		m.selected = shiftMonth(m.selected, 1)
	case key.Matches(keyMsg, m.keys.Today):
		m.selected = m.st.Today()
	}
	return m, nil
}

// shiftMonth moves day by n months, clamping to the last day of the
// target month.
func shiftMonth(day time.Time, n int) time.Time {
	first := time.Date(day.Year(), day.Month()+time.Month(n), 1, 0, 0, 0, 0, day.Location())
	last := first.AddDate(0, 1, -1).Day()
	d := day.Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, day.Location())
}

// View renders the calendar.
func (m Model) View() string {
	today := m.st.Today()
	grid := MonthGrid(m.selected)

	busy := map[string]bool{}
	var daySessions []string
	m.st.View(func(ws *workspace.Workspace) {
		for _, d := range grid {
			if len(ws.SessionsOn(d)) > 0 {
				busy[datetime.FormatCanonical(d)] = true
			}
		}
		for _, s := range ws.SessionsOn(m.selected) {
			daySessions = append(daySessions, fmt.Sprintf("%s  %s  %s  %s",
				s.Time, ws.EventLabel(s.EventID), s.Photographer,
				theme.StatusStyle(s.Status).Render(s.Status)))
		}
	})

	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render(MonthTitle(m.selected)))
	b.WriteString("\n")

	header := make([]string, len(weekdayNames))
	for i, name := range weekdayNames {
		header[i] = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Foreground(theme.ColorGray).Render(name)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	for week := 0; week < GridCells/7; week++ {
		cells := make([]string, 7)
		for i := range cells {
			d := grid[week*7+i]
			label := fmt.Sprint(d.Day())
			if busy[datetime.FormatCanonical(d)] {
				label += "•"
			}
			style := theme.DayStyle(
				d.Month() == m.selected.Month(),
				datetime.SameDay(d, today),
				datetime.SameDay(d, m.selected),
				busy[datetime.FormatCanonical(d)],
			)
			cells[i] = style.Render(label)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.TitleStyle.Render("Sesiones del " + datetime.FormatCanonical(m.selected)))
	b.WriteString("\n")
	if len(daySessions) == 0 {
		b.WriteString(theme.EmptyStyle.Render("Sin sesiones."))
	}
	for _, line := range daySessions {
		b.WriteString(theme.ListItemStyle.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("h/j/k/l mover | [ ] mes | t hoy"))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Render(b.String())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
