// Package sync bridges local mutations to the optional remote mirror.
// The local working set stays authoritative: remote failures are logged
// and published as notices, never propagated as a rollback.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/photodesk/internal/apperr"
	"github.com/nhle/photodesk/internal/confirm"
	"github.com/nhle/photodesk/internal/credential"
	"github.com/nhle/photodesk/internal/model"
	"github.com/nhle/photodesk/internal/remote"
)

// State is the connection state of the mirror.
type State int

const (
	Unconfigured State = iota
	Connecting
	Connected
	Disconnected
)

func (s State) String() string {
	switch s {
	case Unconfigured:
		return "sin configurar"
	case Connecting:
		return "conectando"
	case Connected:
		return "conectado"
	case Disconnected:
		return "modo local"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Status is a point-in-time view of the coordinator.
type Status struct {
	State    State
	LastSync time.Time
	Err      error
}

// NoticeMsg is a tea.Msg carrying a non-fatal sync event for the UI.
type NoticeMsg struct {
	State   State
	Message string
	Err     error
}

// Target is the local side of the mirror: it receives pulled collections
// and provides the full working set for uploads.
type Target interface {
	Snapshot() model.Data
	MergePulled(ctx context.Context, pulled model.Data) error
}

// Coordinator owns the connection state machine
// Unconfigured -> Connecting -> Connected | Disconnected. There is no
// automatic reconnect; only an explicit Connect leaves Disconnected.
type Coordinator struct {
	dial    remote.Dialer
	target  Target
	resyncs *confirm.Book[struct{}]

	noticeCh chan NoticeMsg

	mu     gosync.Mutex
	state  State
	mirror *remote.Mirror
	last   time.Time
	err    error
}

// New creates a Coordinator in the Unconfigured state.
func New(dial remote.Dialer, target Target) *Coordinator {
	return &Coordinator{
		dial:     dial,
		target:   target,
		resyncs:  confirm.NewBook[struct{}](),
		noticeCh: make(chan NoticeMsg, 16),
	}
}

// Status returns the current connection status.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{State: c.state, LastSync: c.last, Err: c.err}
}

// State returns the current connection state.
func (c *Coordinator) State() State {
	return c.Status().State
}

func (c *Coordinator) setState(state State, m *remote.Mirror, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
	c.mirror = m
	c.err = err
	if state == Connected && err == nil {
		c.last = time.Now()
	}
}

func (c *Coordinator) connected() *remote.Mirror {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Connected {
		return nil
	}
	return c.mirror
}

// Connect dials the mirror, pulls all five collections and hands them to
// the target, which overwrites every collection that is non-empty
// remotely. Any failure leaves the coordinator Disconnected.
func (c *Coordinator) Connect(ctx context.Context, creds credential.Firebase) error {
	c.setState(Connecting, nil, nil)

	fail := func(op string, err error) error {
		err = fmt.Errorf("%s: %w", op, err)
		if !errors.Is(err, apperr.ErrRemoteUnavailable) {
			err = fmt.Errorf("%w: %w", apperr.ErrRemoteUnavailable, err)
		}
		c.setState(Disconnected, nil, err)
		c.notify(Disconnected, "Sin conexión - modo local", err)
		return err
	}

	cols, err := c.dial(ctx, creds)
	if err != nil {
		return fail("connecting to mirror", err)
	}

	m := remote.NewMirror(cols)
	pulled, err := m.PullAll(ctx)
	if err != nil {
		return fail("loading mirror", err)
	}

	if err := c.target.MergePulled(ctx, pulled); err != nil {
		log.Printf("sync: storing pulled data: %v", err)
		c.setState(Connected, m, err)
		c.notify(Connected, "Conectado, pero no se pudo guardar localmente", err)
		return err
	}

	c.setState(Connected, m, nil)
	log.Printf("sync: connected to project %s", creds.ProjectID)
	c.notify(Connected, "Conectado a Firebase", nil)
	return nil
}

// Skip chooses local-only mode.
func (c *Coordinator) Skip() {
	c.setState(Disconnected, nil, nil)
	c.notify(Disconnected, "Modo local", nil)
}

// Apply writes changes through to the mirror when connected. Every change
// is attempted; failures are logged, published as a notice and returned
// joined. When not connected Apply does nothing.
func (c *Coordinator) Apply(ctx context.Context, changes ...Change) error {
	m := c.connected()
	if m == nil {
		return nil
	}

	var errs []error
	for _, ch := range changes {
		if err := ch.apply(ctx, m); err != nil {
			log.Printf("sync: %s: %v", ch.desc, err)
			errs = append(errs, err)
			continue
		}
		log.Printf("sync: %s", ch.desc)
	}

	err := errors.Join(errs...)
	c.mu.Lock()
	c.err = err
	if err == nil {
		c.last = time.Now()
	}
	c.mu.Unlock()

	if err != nil {
		c.notify(Connected, "Error guardando en Firebase. Los datos se mantienen localmente.", err)
	}
	return err
}

// RequestResync returns the ticket that authorizes a full resync. It
// fails with apperr.ErrRemoteUnavailable when not connected.
func (c *Coordinator) RequestResync() (confirm.Ticket, error) {
	if c.connected() == nil {
		return confirm.Ticket{}, fmt.Errorf("requesting resync: %w", apperr.ErrRemoteUnavailable)
	}
	return c.resyncs.Issue(
		"¿Sincronizar todos los datos con Firebase? Esto sobrescribirá los datos en la nube.",
		struct{}{},
	), nil
}

// CancelResync drops an unused resync ticket.
func (c *Coordinator) CancelResync(t confirm.Ticket) {
	c.resyncs.Cancel(t)
}

// ExecuteResync empties all five remote collections and uploads the
// target's full working set.
func (c *Coordinator) ExecuteResync(ctx context.Context, t confirm.Ticket) error {
	if _, err := c.resyncs.Redeem(t); err != nil {
		return err
	}
	m := c.connected()
	if m == nil {
		return fmt.Errorf("resyncing: %w", apperr.ErrRemoteUnavailable)
	}

	err := m.Wipe(ctx)
	if err == nil {
		err = m.UploadAll(ctx, c.target.Snapshot())
	}

	c.mu.Lock()
	c.err = err
	if err == nil {
		c.last = time.Now()
	}
	c.mu.Unlock()

	if err != nil {
		log.Printf("sync: full resync: %v", err)
		c.notify(Connected, "Error durante la sincronización", err)
		return err
	}
	c.notify(Connected, "¡Sincronización completada exitosamente!", nil)
	return nil
}

// notify publishes a notice without blocking.
func (c *Coordinator) notify(state State, msg string, err error) {
	select {
	case c.noticeCh <- NoticeMsg{State: state, Message: msg, Err: err}:
	default:
		// Drop if channel is full to avoid blocking the caller
	}
}

// Notices exposes the notice channel for non-TUI consumers.
func (c *Coordinator) Notices() <-chan NoticeMsg {
	return c.noticeCh
}

// WaitForNotice returns a tea.Cmd that waits for the next notice. Call it
// again after handling each NoticeMsg to keep listening.
func (c *Coordinator) WaitForNotice() tea.Cmd {
	return func() tea.Msg {
		n, ok := <-c.noticeCh
		if !ok {
			return nil
		}
		return n
	}
}
