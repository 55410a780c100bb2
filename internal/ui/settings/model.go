package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/photodesk/internal/backup"
	"github.com/nhle/photodesk/internal/credential"
	"github.com/nhle/photodesk/internal/keys"
	"github.com/nhle/photodesk/internal/studio"
	psync "github.com/nhle/photodesk/internal/sync"
	"github.com/nhle/photodesk/internal/theme"
	"github.com/nhle/photodesk/internal/ui/action"
	"github.com/nhle/photodesk/internal/workspace"
)

// CalendarFileName is the default name of the exported iCalendar feed.
const CalendarFileName = "photodesk-sesiones.ics"

type section int

const (
	sectionPhotographers section = iota
	sectionServices
	sectionRemote
	sectionData
	sectionCount
)

var sectionTitles = [sectionCount]string{"Fotógrafos", "Servicios", "Nube", "Datos"}

type menuItem struct {
	label string
	run   func(m *Model) tea.Cmd
}

var remoteMenu = []menuItem{
	{"Configurar credenciales", (*Model).startCredentialsForm},
	{"Conectar con credenciales guardadas", (*Model).connectStored},
	{"Trabajar sin conexión", (*Model).skipRemote},
	{"Resincronizar la nube", (*Model).requestResync},
	{"Olvidar credenciales", (*Model).forgetCredentials},
}

var dataMenu = []menuItem{
	{"Exportar datos", (*Model).startExportForm},
	{"Importar datos", (*Model).startImportForm},
	{"Exportar calendario (.ics)", (*Model).startCalendarForm},
	{"Borrar todos los datos", (*Model).startClearAll},
}

type settingsMode int

const (
	modeBrowse settingsMode = iota
	modeForm
)

type formKind int

const (
	formPhotographer formKind = iota
	formService
	formCredentials
	formExport
	formImport
	formCalendar
	formClearAll
)

type formBindings struct {
	name      string
	price     string
	apiKey    string
	projectID string
	appID     string
	path      string
	resync    bool
}

// Model manages the roster, the price list, the cloud connection and
// the data file operations.
type Model struct {
	st       *studio.Studio
	keys     *keys.KeyMap
	mode     settingsMode
	section  section
	cursor   int
	form     *huh.Form
	formKind formKind
	fb       *formBindings
	width    int
	height   int
}

// New creates the settings view.
func New(st *studio.Studio, k *keys.KeyMap, width, height int) Model {
	return Model{st: st, keys: k, fb: &formBindings{}, width: width, height: height}
}

// InForm reports whether a form owns the keyboard.
func (m Model) InForm() bool {
	return m.mode == modeForm
}

// ShowRemote focuses the cloud section. Used on first run.
func (m *Model) ShowRemote() {
	m.section = sectionRemote
	m.cursor = 0
}

func (m Model) rows() int {
	var n int
	switch m.section {
	case sectionPhotographers:
		m.st.View(func(ws *workspace.Workspace) { n = len(ws.Photographers()) })
	case sectionServices:
		m.st.View(func(ws *workspace.Workspace) { n = len(ws.Services()) })
	case sectionRemote:
		n = len(remoteMenu)
	case sectionData:
		n = len(dataMenu)
	}
	return n
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case action.ResultMsg:
		if n := m.rows(); m.cursor >= n {
			m.cursor = max(n-1, 0)
		}
		return m, nil
	case tea.KeyMsg:
		if m.mode == modeBrowse {
			return m.handleKey(msg)
		}
	}

	if m.mode == modeForm {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	n := m.rows()

	switch {
	case key.Matches(msg, m.keys.Right):
		m.section = (m.section + 1) % sectionCount
		m.cursor = 0
	case key.Matches(msg, m.keys.Left):
		m.section = (m.section + sectionCount - 1) % sectionCount
		m.cursor = 0
	case key.Matches(msg, m.keys.Down):
		if n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
	case key.Matches(msg, m.keys.Up):
		if n > 0 {
			m.cursor = (m.cursor - 1 + n) % n
		}
	case key.Matches(msg, m.keys.Resync):
		return m, m.requestResync()

	case key.Matches(msg, m.keys.New):
		switch m.section {
		case sectionPhotographers:
			cmd := m.startForm(formPhotographer)
			return m, cmd
		case sectionServices:
			cmd := m.startForm(formService)
			return m, cmd
		}

	case key.Matches(msg, m.keys.Delete):
		switch m.section {
		case sectionPhotographers:
			return m, action.Confirm(m.st.RequestRemovePhotographer(m.cursor))
		case sectionServices:
			return m, action.Confirm(m.st.RequestRemoveService(m.cursor))
		}

	case key.Matches(msg, m.keys.Select):
		switch m.section {
		case sectionRemote:
			if m.cursor < len(remoteMenu) {
				cmd := remoteMenu[m.cursor].run(&m)
				return m, cmd
			}
		case sectionData:
			if m.cursor < len(dataMenu) {
				cmd := dataMenu[m.cursor].run(&m)
				return m, cmd
			}
		}
	}
	return m, nil
}

func (m *Model) startForm(kind formKind) tea.Cmd {
	*m.fb = formBindings{}
	switch kind {
	case formExport:
		m.fb.path = backup.DefaultFileName
	case formImport:
		m.fb.path = backup.DefaultFileName
		m.fb.resync = true
	case formCalendar:
		m.fb.path = CalendarFileName
	case formClearAll:
		m.fb.resync = true
	}
	m.formKind = kind
	m.form = m.buildForm(kind)
	m.mode = modeForm
	return m.form.Init()
}

func (m *Model) startCredentialsForm() tea.Cmd { return m.startForm(formCredentials) }
func (m *Model) startExportForm() tea.Cmd      { return m.startForm(formExport) }
func (m *Model) startImportForm() tea.Cmd      { return m.startForm(formImport) }
func (m *Model) startCalendarForm() tea.Cmd    { return m.startForm(formCalendar) }

func (m *Model) startClearAll() tea.Cmd {
	if m.st.Sync().State() == psync.Connected {
		return m.startForm(formClearAll)
	}
	return action.Confirm(m.st.RequestClearAll(false), nil)
}

func notEmpty(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s es obligatorio", label)
		}
		return nil
	}
}

func validPrice(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err != nil || n < 0 {
		return errors.New("el precio debe ser un número entero")
	}
	return nil
}

func (m *Model) buildForm(kind formKind) *huh.Form {
	var fields []huh.Field
	connected := m.st.Sync().State() == psync.Connected

	switch kind {
	case formPhotographer:
		fields = append(fields, huh.NewInput().
			Title("Nombre del fotógrafo").
			Value(&m.fb.name).
			Validate(notEmpty("El nombre")))
	case formService:
		fields = append(fields,
			huh.NewInput().
				Title("Nombre del servicio").
				Value(&m.fb.name).
				Validate(notEmpty("El nombre")),
			huh.NewInput().
				Title("Precio").
				Placeholder("Opcional").
				Value(&m.fb.price).
				Validate(validPrice))
	case formCredentials:
		fields = append(fields,
			huh.NewInput().
				Title("API key").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.apiKey).
				Validate(notEmpty("La API key")),
			huh.NewInput().
				Title("Project ID").
				Value(&m.fb.projectID).
				Validate(notEmpty("El project ID")),
			huh.NewInput().
				Title("App ID").
				Value(&m.fb.appID).
				Validate(notEmpty("El app ID")))
	case formExport, formCalendar:
		title := "Archivo de destino (.json o .yaml)"
		if kind == formCalendar {
			title = "Archivo de destino"
		}
		fields = append(fields, huh.NewInput().
			Title(title).
			Value(&m.fb.path).
			Validate(notEmpty("El archivo")))
	case formImport:
		fields = append(fields, huh.NewInput().
			Title("Archivo a importar").
			Value(&m.fb.path).
			Validate(notEmpty("El archivo")))
		if connected {
			fields = append(fields, huh.NewConfirm().
				Title("¿Resincronizar la nube después de importar?").
				Affirmative("Sí").
				Negative("No").
				Value(&m.fb.resync))
		}
	case formClearAll:
		fields = append(fields, huh.NewConfirm().
			Title("¿Borrar también los datos de la nube?").
			Affirmative("Sí").
			Negative("No").
			Value(&m.fb.resync))
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithWidth(m.formWidth()).
		WithHeight(m.formHeight())
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.mode = modeBrowse
		return m, m.submit()
	case huh.StateAborted:
		m.mode = modeBrowse
		return m, nil
	}
	return m, cmd
}

func (m Model) submit() tea.Cmd {
	st := m.st
	fb := *m.fb

	switch m.formKind {
	case formPhotographer:
		return action.Request("Agregar fotógrafo", func(ctx context.Context) (string, error) {
			p, err := st.AddPhotographer(ctx, fb.name)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Fotógrafo %s agregado", p.Name), nil
		})

	case formService:
		var price *int
		if n, err := strconv.Atoi(strings.TrimSpace(fb.price)); err == nil {
			price = &n
		}
		return action.Request("Agregar servicio", func(ctx context.Context) (string, error) {
			s, err := st.AddService(ctx, fb.name, price)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Servicio %s agregado", s.Name), nil
		})

	case formCredentials:
		creds := credential.Firebase{APIKey: fb.apiKey, ProjectID: fb.projectID, AppID: fb.appID}
		return action.Request("Conectar", func(ctx context.Context) (string, error) {
			if err := st.SaveCredentials(ctx, creds); err != nil {
				return "", err
			}
			return "Conectado a la nube", nil
		})

	case formExport:
		return action.Request("Exportar", func(context.Context) (string, error) {
			if err := st.ExportFile(fb.path); err != nil {
				return "", err
			}
			return "Datos exportados a " + fb.path, nil
		})

	case formCalendar:
		return action.Request("Exportar calendario", func(context.Context) (string, error) {
			if err := st.ExportCalendarFile(fb.path); err != nil {
				return "", err
			}
			return "Calendario exportado a " + fb.path, nil
		})

	case formImport:
		return func() tea.Msg {
			t, err := st.RequestImportFile(fb.path, fb.resync)
			if err != nil {
				return action.ErrorMsg{Err: err}
			}
			return action.ConfirmMsg{Ticket: t}
		}

	case formClearAll:
		return action.Confirm(st.RequestClearAll(fb.resync), nil)
	}
	return nil
}

func (m *Model) connectStored() tea.Cmd {
	st := m.st
	return action.Request("Conectar", func(ctx context.Context) (string, error) {
		if err := st.ConnectStored(ctx); err != nil {
			if errors.Is(err, credential.ErrMissing) {
				return "", errors.New("no hay credenciales guardadas")
			}
			return "", err
		}
		return "Conectado a la nube", nil
	})
}

func (m *Model) skipRemote() tea.Cmd {
	m.st.SkipRemote()
	return nil
}

func (m *Model) requestResync() tea.Cmd {
	return action.Confirm(m.st.RequestResync())
}

func (m *Model) forgetCredentials() tea.Cmd {
	st := m.st
	return action.Request("Olvidar credenciales", func(context.Context) (string, error) {
		if err := st.ForgetCredentials(); err != nil {
			return "", err
		}
		return "Credenciales eliminadas", nil
	})
}

// View renders the settings.
func (m Model) View() string {
	if m.mode == modeForm && m.form != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
	}

	tabs := make([]string, sectionCount)
	for i, title := range sectionTitles {
		if section(i) == m.section {
			tabs[i] = theme.ActiveTabStyle.Render(title)
		} else {
			tabs[i] = theme.TabStyle.Render(title)
		}
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	var rows []string
	var hint string
	switch m.section {
	case sectionPhotographers:
		m.st.View(func(ws *workspace.Workspace) {
			for _, p := range ws.Photographers() {
				rows = append(rows, p.Name)
			}
		})
		hint = "n agregar | d eliminar | ←/→ sección"
	case sectionServices:
		m.st.View(func(ws *workspace.Workspace) {
			for _, s := range ws.Services() {
				row := s.Name
				if p := theme.FormatPrice(s.Price); p != "" {
					row += "  " + lipgloss.NewStyle().Foreground(theme.ColorGreen).Render(p)
				}
				rows = append(rows, row)
			}
		})
		hint = "n agregar | d eliminar | ←/→ sección"
	case sectionRemote:
		b.WriteString(m.remoteStatus())
		b.WriteString("\n\n")
		for _, item := range remoteMenu {
			rows = append(rows, item.label)
		}
		hint = "enter ejecutar | R resincronizar | ←/→ sección"
	case sectionData:
		for _, item := range dataMenu {
			rows = append(rows, item.label)
		}
		hint = "enter ejecutar | ←/→ sección"
	}

	if len(rows) == 0 {
		b.WriteString(theme.EmptyStyle.Render("Lista vacía. Presioná 'n' para agregar."))
	}
	for i, row := range rows {
		if i == m.cursor {
			b.WriteString(theme.SelectedItemStyle.Render(row))
		} else {
			b.WriteString(theme.ListItemStyle.Render(row))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render(hint))
	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Render(b.String())
}

func (m Model) remoteStatus() string {
	status := m.st.Sync().Status()
	line := "Estado: " + status.State.String()
	if !status.LastSync.IsZero() {
		line += "  |  Última sincronización: " + status.LastSync.Format("02/01/2006 15:04")
	}
	if status.Err != nil {
		line += "\n" + theme.ErrorStyle.Render(action.Describe(status.Err))
	}
	return line
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}
