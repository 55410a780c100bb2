package events

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/photodesk/internal/datetime"
	"github.com/nhle/photodesk/internal/keys"
	"github.com/nhle/photodesk/internal/model"
	"github.com/nhle/photodesk/internal/studio"
	"github.com/nhle/photodesk/internal/theme"
	"github.com/nhle/photodesk/internal/ui/action"
	"github.com/nhle/photodesk/internal/workspace"
)

// eventTypes are offered as suggestions in the event form.
var eventTypes = []string{
	"Boda", "Quinceañera", "Corporativo", "Retrato", "Cumpleaños", "Bautismo",
}

type eventsMode int

const (
	modeList eventsMode = iota
	modeDetail
	modeEventForm
	modeSessionForm
)

type eventBindings struct {
	client   string
	phone    string
	kind     string
	service  string
	date     string
	location string
}

type sessionBindings struct {
	eventID      string
	date         string
	time         string
	photographer string
	location     string
	notes        string
}

// Model lists events and the sessions of the focused event.
type Model struct {
	mode        eventsMode
	st          *studio.Studio
	keys        *keys.KeyMap
	selectedIdx int
	sessionIdx  int
	showAll     bool
	form        *huh.Form
	eb          *eventBindings
	sb          *sessionBindings
	width       int
	height      int
}

// New creates the events view.
func New(st *studio.Studio, k *keys.KeyMap, width, height int) Model {
	return Model{
		mode:   modeList,
		st:     st,
		keys:   k,
		eb:     &eventBindings{},
		sb:     &sessionBindings{},
		width:  width,
		height: height,
	}
}

// InForm reports whether a form owns the keyboard.
func (m Model) InForm() bool {
	return m.mode == modeEventForm || m.mode == modeSessionForm
}

// StartCreate opens the new-event form.
func (m *Model) StartCreate() tea.Cmd {
	return m.startEventForm()
}

// Focus opens the detail of the event with id.
func (m *Model) Focus(id model.ID) {
	m.showAll = true
	for i, e := range m.visible() {
		if e.ID == id {
			m.selectedIdx = i
			m.sessionIdx = 0
			m.mode = modeDetail
			return
		}
	}
}

// visible returns the listed events, active ones only unless showAll.
func (m Model) visible() []model.Event {
	var out []model.Event
	m.st.View(func(ws *workspace.Workspace) {
		for _, e := range ws.Events() {
			if m.showAll || !e.Archived {
				out = append(out, e)
			}
		}
	})
	return out
}

func (m Model) selected() (model.Event, bool) {
	list := m.visible()
	if m.selectedIdx < 0 || m.selectedIdx >= len(list) {
		return model.Event{}, false
	}
	return list[m.selectedIdx], true
}

func (m Model) sessions(eventID model.ID) []model.Session {
	var out []model.Session
	m.st.View(func(ws *workspace.Workspace) {
		out = ws.SessionsForEvent(eventID)
	})
	slices.SortStableFunc(out, func(a, b model.Session) int {
		if c := strings.Compare(sortKey(a.Date), sortKey(b.Date)); c != 0 {
			return c
		}
		return strings.Compare(a.Time, b.Time)
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
		m.clamp()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeList:
			return m.handleListKey(msg)
		case modeDetail:
			return m.handleDetailKey(msg)
		}
	}

	if m.InForm() {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m *Model) clamp() {
	n := len(m.visible())
	if m.selectedIdx >= n {
		m.selectedIdx = max(n-1, 0)
	}
	if e, ok := m.selected(); ok {
		if k := len(m.sessions(e.ID)); m.sessionIdx >= k {
			m.sessionIdx = max(k-1, 0)
		}
	}
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	n := len(m.visible())

	switch {
	case key.Matches(msg, m.keys.Down):
		if n > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % n
		}
	case key.Matches(msg, m.keys.Up):
		if n > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = n - 1
			}
		}
	case key.Matches(msg, m.keys.Select):
		if n > 0 {
			m.sessionIdx = 0
			m.mode = modeDetail
		}
	case key.Matches(msg, m.keys.ShowAll):
		m.showAll = !m.showAll
		m.selectedIdx = 0
	case key.Matches(msg, m.keys.New):
		cmd := m.startEventForm()
		return m, cmd
	default:
		return m.handleEventAction(msg)
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	e, ok := m.selected()
	if !ok {
		m.mode = modeList
		return m, nil
	}
	sessions := m.sessions(e.ID)

	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = modeList
	case key.Matches(msg, m.keys.Down):
		if len(sessions) > 0 {
			m.sessionIdx = (m.sessionIdx + 1) % len(sessions)
		}
	case key.Matches(msg, m.keys.Up):
		if len(sessions) > 0 {
			m.sessionIdx--
			if m.sessionIdx < 0 {
				m.sessionIdx = len(sessions) - 1
			}
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.sessionIdx < len(sessions) {
			return m, m.toggleSession(sessions[m.sessionIdx].ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if m.sessionIdx < len(sessions) {
			return m, action.Confirm(m.st.RequestDeleteSession(sessions[m.sessionIdx].ID))
		}
	default:
		return m.handleEventAction(msg)
	}
	return m, nil
}

// sortKey orders canonical DD/MM/YYYY dates chronologically.
func sortKey(date string) string {
	if t, err := datetime.Parse(date); err == nil {
		return datetime.FormatInputControl(t)
	}
	return date
}

// handleEventAction covers the keys acting on the selected event in both
// the list and the detail.
func (m Model) handleEventAction(msg tea.KeyMsg) (Model, tea.Cmd) {
	e, ok := m.selected()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NewSession):
		cmd := m.startSessionForm(e)
		return m, cmd
	case key.Matches(msg, m.keys.Checklist):
		return m, m.createChecklist(e)
	case key.Matches(msg, m.keys.Archive):
		return m, m.toggleArchive(e)
	case key.Matches(msg, m.keys.Delete):
		return m, action.Confirm(m.st.RequestDeleteEvent(e.ID))
	}
	return m, nil
}

func (m *Model) startEventForm() tea.Cmd {
	*m.eb = eventBindings{date: datetime.FormatCanonical(m.st.Today())}
	m.form = m.buildEventForm()
	m.mode = modeEventForm
	return m.form.Init()
}

func (m *Model) startSessionForm(e model.Event) tea.Cmd {
	*m.sb = sessionBindings{
		eventID:  string(e.ID),
		date:     e.Date,
		time:     "10:00",
		location: e.Location,
	}
	m.st.View(func(ws *workspace.Workspace) {
		if roster := ws.Photographers(); len(roster) > 0 {
			m.sb.photographer = roster[0].Name
		}
	})
	m.form = m.buildSessionForm()
	m.mode = modeSessionForm
	return m.form.Init()
}

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s es obligatorio", label)
		}
		return nil
	}
}

func validDate(s string) error {
	if _, err := datetime.Parse(s); err != nil {
		return fmt.Errorf("usá DD/MM/AAAA")
	}
	return nil
}

func validClock(s string) error {
	if _, _, err := datetime.ParseClock(s); err != nil {
		return fmt.Errorf("usá HH:MM")
	}
	return nil
}

func (m Model) buildEventForm() *huh.Form {
	services := []huh.Option[string]{huh.NewOption("Sin servicio", "")}
	m.st.View(func(ws *workspace.Workspace) {
		for _, s := range ws.Services() {
			label := s.Name
			if p := theme.FormatPrice(s.Price); p != "" {
				label += " - " + p
			}
			services = append(services, huh.NewOption(label, s.Name))
		}
	})

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cliente").
				Placeholder("Nombre del cliente").
				Value(&m.eb.client).
				Validate(required("El cliente")),
			huh.NewInput().
				Title("Teléfono").
				Value(&m.eb.phone),
			huh.NewInput().
				Title("Tipo de evento").
				Suggestions(eventTypes).
				Value(&m.eb.kind),
			huh.NewSelect[string]().
				Title("Servicio").
				Options(services...).
				Value(&m.eb.service),
			huh.NewInput().
				Title("Fecha").
				Placeholder("DD/MM/AAAA").
				Value(&m.eb.date).
				Validate(validDate),
			huh.NewInput().
				Title("Ubicación").
				Value(&m.eb.location),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) buildSessionForm() *huh.Form {
	var photographers []huh.Option[string]
	m.st.View(func(ws *workspace.Workspace) {
		for _, p := range ws.Photographers() {
			photographers = append(photographers, huh.NewOption(p.Name, p.Name))
		}
	})
	if len(photographers) == 0 {
		photographers = []huh.Option[string]{huh.NewOption("Sin asignar", "")}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Fecha").
				Placeholder("DD/MM/AAAA").
				Value(&m.sb.date).
				Validate(validDate),
			huh.NewInput().
				Title("Hora").
				Placeholder("HH:MM").
				Value(&m.sb.time).
				Validate(validClock),
			huh.NewSelect[string]().
				Title("Fotógrafo").
				Options(photographers...).
				Value(&m.sb.photographer),
			huh.NewInput().
				Title("Ubicación").
				Value(&m.sb.location),
			huh.NewText().
				Title("Notas").
				Value(&m.sb.notes),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	back := modeList
	if m.mode == modeSessionForm {
		back = modeDetail
	}

	switch m.form.State {
	case huh.StateCompleted:
		var save tea.Cmd
		if m.mode == modeEventForm {
			save = m.saveEvent()
		} else {
			save = m.saveSession()
		}
		m.mode = back
		return m, save
	case huh.StateAborted:
		m.mode = back
		return m, nil
	}
	return m, cmd
}

func (m Model) saveEvent() tea.Cmd {
	st := m.st
	in := workspace.EventInput{
		Client:   m.eb.client,
		Phone:    m.eb.phone,
		Type:     m.eb.kind,
		Service:  m.eb.service,
		Date:     m.eb.date,
		Location: m.eb.location,
	}
	return action.Request("Crear evento", func(ctx context.Context) (string, error) {
		e, _, err := st.CreateEvent(ctx, in)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Evento de %s creado", e.Client), nil
	})
}

func (m Model) saveSession() tea.Cmd {
	st := m.st
	in := workspace.SessionInput{
		EventID:      model.ID(m.sb.eventID),
		Date:         m.sb.date,
		Time:         m.sb.time,
		Photographer: m.sb.photographer,
		Location:     m.sb.location,
		Notes:        m.sb.notes,
	}
	return action.Request("Crear sesión", func(ctx context.Context) (string, error) {
		s, err := st.CreateSession(ctx, in)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Sesión agendada el %s a las %s", s.Date, s.Time), nil
	})
}

func (m Model) toggleSession(id model.ID) tea.Cmd {
	st := m.st
	return action.Request("Cambiar estado", func(ctx context.Context) (string, error) {
		if err := st.ToggleSessionStatus(ctx, id); err != nil {
			return "", err
		}
		return "Estado de la sesión actualizado", nil
	})
}

func (m Model) createChecklist(e model.Event) tea.Cmd {
	st := m.st
	return action.Request("Crear checklist", func(ctx context.Context) (string, error) {
		if _, err := st.CreateChecklist(ctx, e.ID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Checklist creada para %s", e.Client), nil
	})
}

func (m Model) toggleArchive(e model.Event) tea.Cmd {
	st := m.st
	return action.Request("Archivar evento", func(ctx context.Context) (string, error) {
		if err := st.SetEventArchived(ctx, e.ID, !e.Archived); err != nil {
			return "", err
		}
		if e.Archived {
			return "Evento restaurado", nil
		}
		return "Evento archivado", nil
	})
}

// View renders the events view.
func (m Model) View() string {
	switch m.mode {
	case modeEventForm, modeSessionForm:
		return m.viewForm()
	case modeDetail:
		return m.viewDetail()
	default:
		return m.viewList()
	}
}

func (m Model) viewList() string {
	var b strings.Builder

	title := "Eventos activos"
	if m.showAll {
		title = "Todos los eventos"
	}
	b.WriteString(theme.TitleStyle.Render(title))
	b.WriteString("\n")

	list := m.visible()
	if len(list) == 0 {
		b.WriteString(theme.EmptyStyle.Render("No hay eventos. Presioná 'n' para crear uno."))
	}
	for i, e := range list {
		line := fmt.Sprintf("%s  %-24s %-14s %s %s",
			e.Date, e.Client, e.Type, e.Service,
			theme.StatusStyle(e.Status).Render(e.Status))
		if i == m.selectedIdx {
			b.WriteString(theme.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(theme.ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render(
		"n nuevo | enter detalle | s sesión | c checklist | a archivar | d eliminar | H archivados",
	))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Render(b.String())
}

func (m Model) viewDetail() string {
	e, ok := m.selected()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render(e.Client))
	b.WriteString("\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorGray).Width(12).Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}
	field("Estado", theme.StatusStyle(e.Status).Render(e.Status))
	field("Fecha", e.Date)
	field("Tipo", e.Type)
	field("Servicio", e.Service)
	field("Teléfono", e.Phone)
	field("Ubicación", e.Location)

	b.WriteString("\n")
	b.WriteString(theme.TitleStyle.Render("Sesiones"))
	b.WriteString("\n")

	sessions := m.sessions(e.ID)
	if len(sessions) == 0 {
		b.WriteString(theme.EmptyStyle.Render("Sin sesiones."))
	}
	for i, s := range sessions {
		line := fmt.Sprintf("%s %s  %s  %s", s.Date, s.Time, s.Photographer,
			theme.StatusStyle(s.Status).Render(s.Status))
		if s.Notes != "" {
			line += "  " + theme.HelpStyle.Render(s.Notes)
		}
		if i == m.sessionIdx {
			b.WriteString(theme.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(theme.ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render(
		"s nueva sesión | x completar | d eliminar sesión | c checklist | a archivar | esc volver",
	))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Render(b.String())
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	title := "Nuevo evento"
	if m.mode == modeSessionForm {
		title = "Nueva sesión"
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, theme.TitleStyle.Render(title), m.form.View()),
	)
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
	h := m.height - 6
	if h < 10 {
		h = 10
	}
	return h
}
