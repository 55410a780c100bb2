package app

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/photodesk/internal/backup"
	"github.com/nhle/photodesk/internal/ui/action"
	"github.com/nhle/photodesk/internal/ui/settings"
)

// executeCommand handles a command string from the command palette. The
// first word selects the command; the rest is its argument, usually a
// file path.
func (m *Model) executeCommand(input string) tea.Cmd {
	verb, arg := splitCommand(input)
	st := m.st

	switch verb {
	case "panel", "dashboard":
		m.currentView = ViewDashboard
	case "calendario", "calendar":
		m.currentView = ViewCalendar
	case "eventos", "events":
		m.currentView = ViewEvents
	case "entregas", "checklists":
		m.currentView = ViewChecklists
	case "ajustes", "settings":
		m.currentView = ViewSettings

	case "nuevo evento", "nuevo", "new":
		m.currentView = ViewEvents
		return m.events.StartCreate()

	case "exportar", "export":
		path := orDefault(arg, backup.DefaultFileName)
		return action.Request("Exportar", func(context.Context) (string, error) {
			if err := st.ExportFile(path); err != nil {
				return "", err
			}
			return "Datos exportados a " + path, nil
		})

	case "ics", "calendario ics":
		path := orDefault(arg, settings.CalendarFileName)
		return action.Request("Exportar calendario", func(context.Context) (string, error) {
			if err := st.ExportCalendarFile(path); err != nil {
				return "", err
			}
			return "Calendario exportado a " + path, nil
		})

	case "importar", "import":
		path := orDefault(arg, backup.DefaultFileName)
		return func() tea.Msg {
			t, err := st.RequestImportFile(path, true)
			if err != nil {
				return action.ErrorMsg{Err: err}
			}
			return action.ConfirmMsg{Ticket: t}
		}

	case "conectar", "connect":
		return connectStored(m.ctx, st)

	case "local", "offline":
		st.SkipRemote()

	case "resync", "resincronizar":
		return action.Confirm(st.RequestResync())

	case "borrar todo", "clear":
		return action.Confirm(st.RequestClearAll(true), nil)

	case "salir", "quit", "q":
		return tea.Quit

	default:
		m.setStatus("Comando desconocido: "+input, true)
	}
	return nil
}

// twoWordCommands are matched before splitting off an argument.
var twoWordCommands = []string{"nuevo evento", "borrar todo", "calendario ics"}

func splitCommand(input string) (verb, arg string) {
	input = strings.TrimSpace(input)
	lower := strings.ToLower(input)
	for _, c := range twoWordCommands {
		if lower == c || strings.HasPrefix(lower, c+" ") {
			return c, strings.TrimSpace(input[len(c):])
		}
	}
	verb, arg, _ = strings.Cut(input, " ")
	return strings.ToLower(verb), strings.TrimSpace(arg)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
