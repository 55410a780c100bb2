// Package action carries work requests from the views to the root model,
// which runs them one at a time and reports the outcome.
package action

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/photodesk/internal/apperr"
	"github.com/nhle/photodesk/internal/confirm"
	"github.com/nhle/photodesk/internal/theme"
)

// Func performs the work of a request and returns a short status line.
type Func func(ctx context.Context) (string, error)

// RequestMsg asks the root model to run Run.
type RequestMsg struct {
	Label string
	Run   Func
}

// ResultMsg reports a finished request.
type ResultMsg struct {
	Label  string
	Status string
	Err    error
}

// ConfirmMsg asks the root model to show Ticket's prompt and, if the user
// accepts, execute it.
type ConfirmMsg struct {
	Ticket confirm.Ticket
}

// ErrorMsg reports a failure that happened before any work was queued.
type ErrorMsg struct {
	Err error
}

// Request returns a command emitting a RequestMsg.
func Request(label string, run Func) tea.Cmd {
	return func() tea.Msg {
		return RequestMsg{Label: label, Run: run}
	}
}

// Confirm returns a command emitting a ConfirmMsg for t, or an ErrorMsg
// when issuing the ticket failed.
func Confirm(t confirm.Ticket, err error) tea.Cmd {
	return func() tea.Msg {
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfirmMsg{Ticket: t}
	}
}

// Fail returns a command emitting an ErrorMsg.
func Fail(err error) tea.Cmd {
	return func() tea.Msg { return ErrorMsg{Err: err} }
}

// Run executes req and wraps the outcome in a ResultMsg.
func Run(ctx context.Context, req RequestMsg) tea.Cmd {
	return func() tea.Msg {
		status, err := req.Run(ctx)
		return ResultMsg{Label: req.Label, Status: status, Err: err}
	}
}

// Describe turns an error into a message for the status line.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, apperr.ErrValidation):
		return fmt.Sprintf("Datos inválidos: %v", err)
	case errors.Is(err, apperr.ErrDuplicate):
		return "Ya existe un registro con ese nombre"
	case errors.Is(err, apperr.ErrNotFound):
		return "El registro ya no existe"
	case errors.Is(err, apperr.ErrOutOfRange):
		return "Posición fuera de rango"
	case errors.Is(err, apperr.ErrParse):
		return fmt.Sprintf("Archivo inválido: %v", err)
	case errors.Is(err, apperr.ErrNotConfirmed):
		return "La operación ya no está pendiente"
	case errors.Is(err, apperr.ErrRemoteUnavailable):
		return "Sin conexión con la nube"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// Dialog is the confirmation prompt shown for a pending ticket.
type Dialog struct {
	ticket  confirm.Ticket
	form    *huh.Form
	accept  *bool
	width   int
	height  int
	visible bool
}

// DialogDoneMsg reports the user's answer to a Dialog.
type DialogDoneMsg struct {
	Ticket   confirm.Ticket
	Accepted bool
}

// Open shows the prompt of t.
func (d *Dialog) Open(t confirm.Ticket) tea.Cmd {
	accept := false
	d.ticket = t
	d.accept = &accept
	d.visible = true
	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(t.Prompt).
				Affirmative("Sí, continuar").
				Negative("Cancelar").
				Value(d.accept),
		),
	).WithWidth(d.formWidth()).WithShowHelp(false)
	return d.form.Init()
}

// Visible reports whether the dialog is waiting for an answer.
func (d *Dialog) Visible() bool {
	return d.visible
}

// Update forwards msg to the prompt and emits DialogDoneMsg once the user
// answers or aborts.
func (d *Dialog) Update(msg tea.Msg) tea.Cmd {
	if !d.visible || d.form == nil {
		return nil
	}
	mdl, cmd := d.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		d.form = f
	}

	switch d.form.State {
	case huh.StateCompleted:
		d.visible = false
		done := DialogDoneMsg{Ticket: d.ticket, Accepted: *d.accept}
		return func() tea.Msg { return done }
	case huh.StateAborted:
		d.visible = false
		done := DialogDoneMsg{Ticket: d.ticket}
		return func() tea.Msg { return done }
	}
	return cmd
}

// View renders the prompt.
func (d *Dialog) View() string {
	if !d.visible || d.form == nil {
		return ""
	}
	return theme.DetailPanelStyle.
		BorderForeground(theme.ColorOrange).
		Render(lipgloss.NewStyle().Width(d.formWidth()).Render(d.form.View()))
}

// SetSize updates dimensions.
func (d *Dialog) SetSize(width, height int) {
	d.width = width
	d.height = height
}

func (d *Dialog) formWidth() int {
	w := d.width - 8
	if w < 30 {
		w = 30
	}
	if w > 70 {
		w = 70
	}
	return w
}
