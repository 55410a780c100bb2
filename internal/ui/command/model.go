package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/photodesk/internal/theme"
)

// CommandMsg is emitted when the user executes a command. An empty
// command means the palette was dismissed.
type CommandMsg string

// historySize bounds the recalled commands.
const historySize = 20

// Model is the command palette. Tab completes from the suggestions;
// up and down walk through previously executed commands.
type Model struct {
	input       textinput.Model
	suggestions []string
	history     []string
	cursor      int
	width       int
	height      int
}

// New creates the palette with the given completion vocabulary.
func New(width, height int, suggestions []string) Model {
	ti := textinput.New()
	ti.Placeholder = "escribí un comando..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(suggestions)

	m := Model{input: ti, suggestions: suggestions}
	m.SetSize(width, height)
	return m
}

// Update handles messages for the palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			m.input.Reset()
			return m, func() tea.Msg { return CommandMsg("") }
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" {
				return m, nil
			}
			m.remember(line)
			return m, func() tea.Msg { return CommandMsg(line) }
		case "up":
			m.recall(-1)
			return m, nil
		case "down":
			m.recall(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) remember(line string) {
	if n := len(m.history); n == 0 || m.history[n-1] != line {
		m.history = append(m.history, line)
	}
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
	m.cursor = len(m.history)
}

// recall moves the history cursor by step. Past the newest entry the
// input is cleared.
func (m *Model) recall(step int) {
	if len(m.history) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+step, 0), len(m.history))
	if m.cursor == len(m.history) {
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.history[m.cursor])
	m.input.CursorEnd()
}

// matches returns the suggestions starting with the typed text.
func (m Model) matches() []string {
	typed := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if typed == "" {
		return nil
	}
	var out []string
	for _, s := range m.suggestions {
		if strings.HasPrefix(s, typed) && s != typed {
			out = append(out, s)
		}
	}
	return out
}

// View renders the palette.
func (m Model) View() string {
	parts := []string{theme.TitleStyle.Render("Comandos"), m.input.View()}
	if found := m.matches(); len(found) > 0 {
		parts = append(parts, theme.HelpStyle.Render(strings.Join(found, "  ")))
	}
	return theme.DetailPanelStyle.
		Width(max(m.width-4, 0)).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-6, 10)
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
