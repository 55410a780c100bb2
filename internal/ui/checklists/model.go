package checklists

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

// Model lists delivery checklists with the items of the selected one.
// Left and right move between the list and the items.
type Model struct {
	st          *studio.Studio
	keys        *keys.KeyMap
	selectedIdx int
	itemIdx     int
	inItems     bool
	showAll     bool
	width       int
	height      int
}

// New creates the checklists view.
func New(st *studio.Studio, k *keys.KeyMap, width, height int) Model {
	return Model{st: st, keys: k, width: width, height: height}
}

func (m Model) visible() []model.Checklist {
	var out []model.Checklist
	m.st.View(func(ws *workspace.Workspace) {
		for _, c := range ws.Checklists() {
			if m.showAll || !c.Archived {
				out = append(out, c)
			}
		}
	})
	return out
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case action.ResultMsg:
		if n := len(m.visible()); m.selectedIdx >= n {
			m.selectedIdx = max(n-1, 0)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	list := m.visible()
	n := len(list)
	var current model.Checklist
	if m.selectedIdx < n {
		current = list[m.selectedIdx]
	}

	switch {
	case key.Matches(msg, m.keys.ShowAll):
		m.showAll = !m.showAll
		m.selectedIdx, m.itemIdx, m.inItems = 0, 0, false
		return m, nil
	case n == 0:
		return m, nil

	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Select):
		m.inItems = true
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Back):
		m.inItems = false

	case key.Matches(msg, m.keys.Down):
		if m.inItems {
			if k := len(current.Items); k > 0 {
				m.itemIdx = (m.itemIdx + 1) % k
			}
		} else {
			m.selectedIdx = (m.selectedIdx + 1) % n
			m.itemIdx = 0
		}
	case key.Matches(msg, m.keys.Up):
		if m.inItems {
			if k := len(current.Items); k > 0 {
				m.itemIdx = (m.itemIdx - 1 + k) % k
			}
		} else {
			m.selectedIdx = (m.selectedIdx - 1 + n) % n
			m.itemIdx = 0
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.inItems && m.itemIdx < len(current.Items) {
			return m, m.toggleItem(current.ID, m.itemIdx)
		}
	case key.Matches(msg, m.keys.Archive):
		return m, m.toggleArchive(current)
	case key.Matches(msg, m.keys.Delete):
		return m, action.Confirm(m.st.RequestDeleteChecklist(current.ID))
	}
	return m, nil
}

func (m Model) toggleItem(id model.ID, item int) tea.Cmd {
	st := m.st
	return action.Request("Actualizar entrega", func(ctx context.Context) (string, error) {
		if err := st.ToggleChecklistItem(ctx, id, item); err != nil {
			return "", err
		}
		return "Checklist actualizada", nil
	})
}

func (m Model) toggleArchive(c model.Checklist) tea.Cmd {
	st := m.st
	return action.Request("Archivar checklist", func(ctx context.Context) (string, error) {
		if err := st.SetChecklistArchived(ctx, c.ID, !c.Archived); err != nil {
			return "", err
		}
		if c.Archived {
			return "Checklist restaurada", nil
		}
		return "Checklist archivada", nil
	})
}

// View renders the checklists.
func (m Model) View() string {
	list := m.visible()

	var left strings.Builder
	title := "Entregas"
	if m.showAll {
		title = "Entregas (incluye archivadas)"
	}
	left.WriteString(theme.TitleStyle.Render(title))
	left.WriteString("\n")
	if len(list) == 0 {
		left.WriteString(theme.EmptyStyle.Render("No hay checklists. Creá una desde un evento con 'c'."))
	}
	for i, c := range list {
		done, total := c.Progress()
		line := fmt.Sprintf("%-22s %s", c.ClientName,
			theme.ProgressStyle(done, total).Render(fmt.Sprintf("%d/%d", done, total)))
		if c.Archived {
			line += " " + theme.StatusStyle(model.EventStatusArchived).Render("archivada")
		}
		if i == m.selectedIdx && !m.inItems {
			left.WriteString(theme.SelectedItemStyle.Render(line))
		} else {
			left.WriteString(theme.ListItemStyle.Render(line))
		}
		left.WriteString("\n")
	}

	var right strings.Builder
	if m.selectedIdx < len(list) {
		c := list[m.selectedIdx]
		right.WriteString(theme.TitleStyle.Render(c.ClientName))
		right.WriteString("\n")
		for i, item := range c.Items {
			box := "[ ]"
			if item.Completed {
				box = lipgloss.NewStyle().Foreground(theme.ColorGreen).Render("[x]")
			}
			line := box + " " + item.Name
			if m.inItems && i == m.itemIdx {
				right.WriteString(theme.SelectedItemStyle.Render(line))
			} else {
				right.WriteString(theme.ListItemStyle.Render(line))
			}
			right.WriteString("\n")
		}
	}

	half := max(m.width/2-2, 20)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(half).Render(left.String()),
		theme.BorderStyle.Padding(0, 1).Width(half).Render(right.String()),
	)

	help := theme.HelpStyle.Render("→ ítems | ← lista | x completar | a archivar | d eliminar | H archivadas")
	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, body, "", help),
	)
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
