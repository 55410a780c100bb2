package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down  key.Binding
	Up    key.Binding
	Left  key.Binding
	Right key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Tabs
	TabDashboard  key.Binding
	TabCalendar   key.Binding
	TabEvents     key.Binding
	TabChecklists key.Binding
	TabSettings   key.Binding
	NextTab       key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding

	// Record actions
	New        key.Binding
	NewSession key.Binding
	Checklist  key.Binding
	Delete     key.Binding
	Toggle     key.Binding
	Archive    key.Binding
	ShowAll    key.Binding

	// Calendar
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding

	// Mirror
	Resync key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "abajo"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "arriba"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "izquierda"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "derecha"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "ver detalle"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "volver"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "salir"),
		),
		TabDashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "panel"),
		),
		TabCalendar: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "calendario"),
		),
		TabEvents: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "eventos"),
		),
		TabChecklists: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "entregas"),
		),
		TabSettings: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "ajustes"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "siguiente pestaña"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "comandos"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "ayuda"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "nuevo"),
		),
		NewSession: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "nueva sesión"),
		),
		Checklist: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "crear checklist"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "eliminar"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x", "completar"),
		),
		Archive: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "archivar/restaurar"),
		),
		ShowAll: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "mostrar archivados"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("[", "pgup"),
			key.WithHelp("[", "mes anterior"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]", "pgdown"),
			key.WithHelp("]", "mes siguiente"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "hoy"),
		),
		Resync: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "resincronizar"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help, k.Command,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Select, k.Back, k.Quit},
		{k.TabDashboard, k.TabCalendar, k.TabEvents, k.TabChecklists, k.TabSettings, k.NextTab},
		{k.New, k.NewSession, k.Checklist, k.Delete, k.Toggle, k.Archive, k.ShowAll},
		{k.PrevMonth, k.NextMonth, k.Today, k.Resync, k.Command, k.Help},
	}
}
