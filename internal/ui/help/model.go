package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/photodesk/internal/keys"
	"github.com/nhle/photodesk/internal/theme"
)

// Command is one entry of the command palette vocabulary.
type Command struct {
	Name string
	Args string
	Desc string
}

// Commands lists what the palette understands, in display order.
var Commands = []Command{
	{Name: "panel", Desc: "ir al panel"},
	{Name: "calendario", Desc: "ir al calendario"},
	{Name: "eventos", Desc: "ir a eventos"},
	{Name: "entregas", Desc: "ir a entregas"},
	{Name: "ajustes", Desc: "ir a ajustes"},
	{Name: "nuevo evento", Desc: "crear un evento"},
	{Name: "exportar", Args: "[archivo]", Desc: "exportar datos (.json o .yaml)"},
	{Name: "importar", Args: "[archivo]", Desc: "importar datos y sobrescribir"},
	{Name: "ics", Args: "[archivo]", Desc: "exportar sesiones a iCalendar"},
	{Name: "conectar", Desc: "conectar a la nube con las credenciales guardadas"},
	{Name: "local", Desc: "trabajar sin conexión"},
	{Name: "resync", Desc: "reemplazar la nube con los datos locales"},
	{Name: "borrar todo", Desc: "volver a los datos iniciales"},
	{Name: "salir", Desc: "cerrar photodesk"},
}

// CommandNames returns the command names, used for completion.
func CommandNames() []string {
	names := make([]string, len(Commands))
	for i, c := range Commands {
		names[i] = c.Name
	}
	return names
}

// Model shows the key bindings and the command reference.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates the help view.
func New(k *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.ShowAll = true
	m := Model{keys: k, help: h}
	m.SetSize(width, height)
	return m
}

// Update is a no-op; the root model closes the view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func commandTable() string {
	width := 0
	for _, c := range Commands {
		width = max(width, len(strings.TrimSpace(c.Name+" "+c.Args)))
	}
	var b strings.Builder
	for _, c := range Commands {
		usage := strings.TrimSpace(c.Name + " " + c.Args)
		fmt.Fprintf(&b, "  :%-*s  %s\n", width, usage, theme.HelpStyle.Render(c.Desc))
	}
	return strings.TrimRight(b.String(), "\n")
}

// View renders the bindings above the command table.
func (m Model) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		theme.TitleStyle.Render("Atajos de teclado"),
		m.help.View(m.keys),
		"",
		theme.TitleStyle.Render("Comandos"),
		commandTable(),
	)
	return theme.DetailPanelStyle.
		Width(max(m.width-4, 0)).
		Height(max(m.height-4, 0)).
		Render(content)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = max(width-4, 0)
}
