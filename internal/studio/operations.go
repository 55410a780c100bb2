package studio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"slices"

	"github.com/nhle/photodesk/internal/apperr"
	"github.com/nhle/photodesk/internal/backup"
	"github.com/nhle/photodesk/internal/confirm"
	"github.com/nhle/photodesk/internal/model"
	psync "github.com/nhle/photodesk/internal/sync"
	"github.com/nhle/photodesk/internal/workspace"
)

type opKind int

const (
	opDeleteEvent opKind = iota
	opDeleteSession
	opDeleteChecklist
	opRemovePhotographer
	opRemoveService
	opResync
	opImport
	opClearAll
)

// operation is the payload of a pending confirmation.
type operation struct {
	kind   opKind
	id     model.ID
	index  int
	name   string
	raw    []byte
	format backup.Format
	resync *confirm.Ticket
}

func (s *Studio) issue(prompt string, op operation) confirm.Ticket {
	return s.pending.Issue(prompt, op)
}

// requestResyncIfConnected asks the coordinator for a resync ticket when
// want is set and the mirror is connected.
func (s *Studio) requestResyncIfConnected(want bool) *confirm.Ticket {
	if !want || s.sync.State() != psync.Connected {
		return nil
	}
	t, err := s.sync.RequestResync()
	if err != nil {
		return nil
	}
	return &t
}

// RequestDeleteEvent prepares deleting an event with its sessions and
// checklists.
func (s *Studio) RequestDeleteEvent(id model.ID) (confirm.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ws.Event(id); !ok {
		return confirm.Ticket{}, fmt.Errorf("deleting event %s: %w", id, apperr.ErrNotFound)
	}
	return s.issue(
		"¿Estás seguro de eliminar este evento? Se eliminarán también todas sus sesiones.",
		operation{kind: opDeleteEvent, id: id},
	), nil
}

// RequestDeleteSession prepares deleting a session.
func (s *Studio) RequestDeleteSession(id model.ID) (confirm.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ws.Session(id); !ok {
		return confirm.Ticket{}, fmt.Errorf("deleting session %s: %w", id, apperr.ErrNotFound)
	}
	return s.issue("¿Estás seguro de eliminar esta sesión?", operation{kind: opDeleteSession, id: id}), nil
}

// RequestDeleteChecklist prepares deleting a checklist.
func (s *Studio) RequestDeleteChecklist(id model.ID) (confirm.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ws.Checklist(id); !ok {
		return confirm.Ticket{}, fmt.Errorf("deleting checklist %s: %w", id, apperr.ErrNotFound)
	}
	return s.issue("¿Estás seguro de eliminar esta checklist?", operation{kind: opDeleteChecklist, id: id}), nil
}

// RequestRemovePhotographer prepares removing the roster entry at index.
func (s *Studio) RequestRemovePhotographer(index int) (confirm.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	roster := s.ws.Photographers()
	if index < 0 || index >= len(roster) {
		return confirm.Ticket{}, fmt.Errorf("removing photographer %d: %w", index, apperr.ErrOutOfRange)
	}
	return s.issue(
		"¿Estás seguro de eliminar este fotógrafo?",
		operation{kind: opRemovePhotographer, index: index, name: roster[index].Name},
	), nil
}

// RequestRemoveService prepares removing the price-list entry at index.
func (s *Studio) RequestRemoveService(index int) (confirm.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	services := s.ws.Services()
	if index < 0 || index >= len(services) {
		return confirm.Ticket{}, fmt.Errorf("removing service %d: %w", index, apperr.ErrOutOfRange)
	}
	return s.issue(
		"¿Estás seguro de eliminar este servicio?",
		operation{kind: opRemoveService, index: index, name: services[index].Name},
	), nil
}

// RequestResync prepares wiping the mirror and uploading the full
// working set. It fails with apperr.ErrRemoteUnavailable when not
// connected.
func (s *Studio) RequestResync() (confirm.Ticket, error) {
	inner, err := s.sync.RequestResync()
	if err != nil {
		return confirm.Ticket{}, err
	}
	return s.issue(inner.Prompt, operation{kind: opResync, resync: &inner}), nil
}

// RequestImport reads and validates a snapshot file. Executing the
// ticket merges it over the data current at that time; with resync set
// and the mirror connected it also runs a full resync.
func (s *Studio) RequestImport(r io.Reader, f backup.Format, resync bool) (confirm.Ticket, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return confirm.Ticket{}, fmt.Errorf("reading import: %w", err)
	}
	if _, err := backup.Import(bytes.NewReader(raw), model.Defaults(), f); err != nil {
		return confirm.Ticket{}, err
	}
	return s.issue(
		"¿Estás seguro de importar estos datos? Se sobrescribirán los datos actuales.",
		operation{kind: opImport, raw: raw, format: f, resync: s.requestResyncIfConnected(resync)},
	), nil
}

// RequestClearAll prepares resetting everything to the built-in defaults.
func (s *Studio) RequestClearAll(resync bool) confirm.Ticket {
	return s.issue(
		"¿Estás seguro de eliminar TODOS los datos? Esta acción no se puede deshacer.",
		operation{kind: opClearAll, resync: s.requestResyncIfConnected(resync)},
	)
}

// Cancel drops a pending confirmation.
func (s *Studio) Cancel(t confirm.Ticket) {
	op, err := s.pending.Redeem(t)
	if err == nil && op.resync != nil {
		s.sync.CancelResync(*op.resync)
	}
}

// Execute performs the operation t was issued for. Tickets are
// single-use; unknown or spent tickets fail with apperr.ErrNotConfirmed.
func (s *Studio) Execute(ctx context.Context, t confirm.Ticket) error {
	op, err := s.pending.Redeem(t)
	if err != nil {
		return err
	}

	switch op.kind {
	case opDeleteEvent:
		return noop("deleting event", s.mutate(ctx, func(ws *workspace.Workspace) ([]psync.Change, error) {
			cascade, err := ws.DeleteEvent(op.id)
			if err != nil {
				return nil, err
			}
			changes := []psync.Change{psync.DeleteEvent(cascade.Event)}
			for _, id := range cascade.Sessions {
				changes = append(changes, psync.DeleteSession(id))
			}
			for _, id := range cascade.Checklists {
				changes = append(changes, psync.DeleteChecklist(id))
			}
			return changes, nil
		}))

	case opDeleteSession:
		return noop("deleting session", s.mutate(ctx, func(ws *workspace.Workspace) ([]psync.Change, error) {
			if err := ws.DeleteSession(op.id); err != nil {
				return nil, err
			}
			return []psync.Change{psync.DeleteSession(op.id)}, nil
		}))

	case opDeleteChecklist:
		return noop("deleting checklist", s.mutate(ctx, func(ws *workspace.Workspace) ([]psync.Change, error) {
			if err := ws.DeleteChecklist(op.id); err != nil {
				return nil, err
			}
			return []psync.Change{psync.DeleteChecklist(op.id)}, nil
		}))

	case opRemovePhotographer:
		return noop("removing photographer", s.mutate(ctx, func(ws *workspace.Workspace) ([]psync.Change, error) {
			index := resolveIndex(ws.Photographers(), op.index, op.name, func(p model.Photographer) string { return p.Name })
			p, err := ws.RemovePhotographer(index)
			if err != nil {
				return nil, err
			}
			return []psync.Change{psync.RemovePhotographer(p.Name)}, nil
		}))

	case opRemoveService:
		return noop("removing service", s.mutate(ctx, func(ws *workspace.Workspace) ([]psync.Change, error) {
			index := resolveIndex(ws.Services(), op.index, op.name, func(svc model.Service) string { return svc.Name })
			svc, err := ws.RemoveService(index)
			if err != nil {
				return nil, err
			}
			return []psync.Change{psync.RemoveService(svc.Name)}, nil
		}))

	case opResync:
		return s.sync.ExecuteResync(ctx, *op.resync)

	case opImport:
		if err := s.importData(ctx, op); err != nil {
			return err
		}
		s.resyncAfter(ctx, op)
		return nil

	case opClearAll:
		if err := s.clearAll(ctx); err != nil {
			return err
		}
		s.resyncAfter(ctx, op)
		return nil
	}

	return fmt.Errorf("unknown operation %d", op.kind)
}

// resolveIndex returns the current position of the entry named name,
// preferring the index it had when the ticket was issued. It returns -1
// when the entry is gone.
func resolveIndex[T any](items []T, index int, name string, key func(T) string) int {
	if index >= 0 && index < len(items) && key(items[index]) == name {
		return index
	}
	return slices.IndexFunc(items, func(item T) bool { return key(item) == name })
}

func (s *Studio) importData(ctx context.Context, op operation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.ws.Snapshot()
	data, err := backup.Import(bytes.NewReader(op.raw), before, op.format)
	if err != nil {
		return err
	}
	s.ws.Replace(data)
	if err := s.commit(ctx, before); err != nil {
		return fmt.Errorf("saving imported data: %w", err)
	}
	log.Printf("studio: imported %d events, %d sessions, %d checklists",
		len(data.Events), len(data.Sessions), len(data.Checklists))
	return nil
}

func (s *Studio) clearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.ws.Snapshot()
	s.ws.Replace(model.Defaults())
	if err := s.store.ClearSnapshot(ctx); err != nil {
		s.ws.Replace(before)
		return fmt.Errorf("clearing local data: %w", err)
	}
	log.Printf("studio: reset to defaults")
	return nil
}

// resyncAfter runs the resync attached to op. Failures are reported by
// the coordinator and do not fail the local operation.
func (s *Studio) resyncAfter(ctx context.Context, op operation) {
	if op.resync == nil {
		return
	}
	if err := s.sync.ExecuteResync(ctx, *op.resync); err != nil {
		log.Printf("studio: resync after operation: %v", err)
	}
}
