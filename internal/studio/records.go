package studio

import (
	"context"

	"github.com/nhle/photodesk/internal/model"
	psync "github.com/nhle/photodesk/internal/sync"
	"github.com/nhle/photodesk/internal/workspace"
)

// AddPhotographer adds name to the roster.
func (s *Studio) AddPhotographer(ctx context.Context, name string) (model.Photographer, error) {
	var out model.Photographer
	err := s.mutate(ctx, func(ws *workspace.Workspace) ([]psync.Change, error) {
		p, err := ws.AddPhotographer(name)
		if err != nil {
			return nil, err
		}
		out = p
		return []psync.Change{psync.AppendPhotographer(p)}, nil
	})
	return out, err
}

// AddService adds a price-list entry. price may be nil.
func (s *Studio) AddService(ctx context.Context, name string, price *int) (model.Service, error) {
	var out model.Service
	err := s.mutate(ctx, func(ws *workspace.Workspace) ([]psync.Change, error) {
		svc, err := ws.AddService(name, price)
		if err != nil {
			return nil, err
		}
		out = svc
		return []psync.Change{psync.AppendService(svc)}, nil
	})
	return out, err
}

// CreateEvent stores a new event and its main session.
func (s *Studio) CreateEvent(ctx context.Context, in workspace.EventInput) (model.Event, model.Session, error) {
	var (
		event   model.Event
		session model.Session
	)
	err := s.mutate(ctx, func(ws *workspace.Workspace) ([]psync.Change, error) {
		e, sess, err := ws.CreateEvent(in)
		if err != nil {
			return nil, err
		}
		event, session = e, sess
		return []psync.Change{psync.PutEvent(e), psync.PutSession(sess)}, nil
	})
	return event, session, err
}

// CreateSession stores a new session.
func (s *Studio) CreateSession(ctx context.Context, in workspace.SessionInput) (model.Session, error) {
	var out model.Session
	err := s.mutate(ctx, func(ws *workspace.Workspace) ([]psync.Change, error) {
		sess, err := ws.CreateSession(in)
		if err != nil {
			return nil, err
		}
		out = sess
		return []psync.Change{psync.PutSession(sess)}, nil
	})
	return out, err
}

// CreateChecklist starts a delivery checklist for an event.
func (s *Studio) CreateChecklist(ctx context.Context, eventID model.ID) (model.Checklist, error) {
	var out model.Checklist
	err := s.mutate(ctx, func(ws *workspace.Workspace) ([]psync.Change, error) {
		c, err := ws.CreateChecklist(eventID)
		if err != nil {
			return nil, err
		}
		out = c
		return []psync.Change{psync.PutChecklist(c)}, nil
	})
	return out, err
}

// ToggleSessionStatus flips a session between pending and completed. A
// missing session is a no-op.
func (s *Studio) ToggleSessionStatus(ctx context.Context, id model.ID) error {
	err := s.mutate(ctx, func(ws *workspace.Workspace) ([]psync.Change, error) {
		sess, err := ws.ToggleSessionStatus(id)
		if err != nil {
			return nil, err
		}
		return []psync.Change{psync.PutSession(sess)}, nil
	})
	return noop("toggling session", err)
}

// ToggleChecklistItem flips one checklist item. Missing checklists and
// items are no-ops.
func (s *Studio) ToggleChecklistItem(ctx context.Context, id model.ID, item int) error {
	err := s.mutate(ctx, func(ws *workspace.Workspace) ([]psync.Change, error) {
		c, err := ws.ToggleChecklistItem(id, item)
		if err != nil {
			return nil, err
		}
		return []psync.Change{psync.PutChecklist(c)}, nil
	})
	return noop("toggling checklist item", err)
}

// SetEventArchived archives or unarchives an event.
func (s *Studio) SetEventArchived(ctx context.Context, id model.ID, archived bool) error {
	err := s.mutate(ctx, func(ws *workspace.Workspace) ([]psync.Change, error) {
		archive := ws.UnarchiveEvent
		if archived {
			archive = ws.ArchiveEvent
		}
		e, err := archive(id)
		if err != nil {
			return nil, err
		}
		return []psync.Change{psync.PutEvent(e)}, nil
	})
	return noop("archiving event", err)
}

// SetChecklistArchived archives or unarchives a checklist.
func (s *Studio) SetChecklistArchived(ctx context.Context, id model.ID, archived bool) error {
	err := s.mutate(ctx, func(ws *workspace.Workspace) ([]psync.Change, error) {
		archive := ws.UnarchiveChecklist
		if archived {
			archive = ws.ArchiveChecklist
		}
		c, err := archive(id)
		if err != nil {
			return nil, err
		}
		return []psync.Change{psync.PutChecklist(c)}, nil
	})
	return noop("archiving checklist", err)
}
