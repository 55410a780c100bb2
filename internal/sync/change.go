package sync

import (
	"context"

	"github.com/nhle/photodesk/internal/model"
	"github.com/nhle/photodesk/internal/remote"
)

// Change is one remote write produced by a local mutation.
type Change struct {
	desc  string
	apply func(ctx context.Context, m *remote.Mirror) error
}

func (c Change) String() string { return c.desc }

// PutEvent upserts an event by id.
func PutEvent(e model.Event) Change {
	return Change{
		desc:  "saving event " + e.ID.String(),
		apply: func(ctx context.Context, m *remote.Mirror) error { return m.PutEvent(ctx, e) },
	}
}

// DeleteEvent deletes an event by id.
func DeleteEvent(id model.ID) Change {
	return Change{
		desc:  "deleting event " + id.String(),
		apply: func(ctx context.Context, m *remote.Mirror) error { return m.DeleteEvent(ctx, id) },
	}
}

// PutSession upserts a session by id.
func PutSession(s model.Session) Change {
	return Change{
		desc:  "saving session " + s.ID.String(),
		apply: func(ctx context.Context, m *remote.Mirror) error { return m.PutSession(ctx, s) },
	}
}

// DeleteSession deletes a session by id.
func DeleteSession(id model.ID) Change {
	return Change{
		desc:  "deleting session " + id.String(),
		apply: func(ctx context.Context, m *remote.Mirror) error { return m.DeleteSession(ctx, id) },
	}
}

// PutChecklist upserts a checklist by id.
func PutChecklist(c model.Checklist) Change {
	return Change{
		desc:  "saving checklist " + c.ID.String(),
		apply: func(ctx context.Context, m *remote.Mirror) error { return m.PutChecklist(ctx, c) },
	}
}

// DeleteChecklist deletes a checklist by id.
func DeleteChecklist(id model.ID) Change {
	return Change{
		desc:  "deleting checklist " + id.String(),
		apply: func(ctx context.Context, m *remote.Mirror) error { return m.DeleteChecklist(ctx, id) },
	}
}

// AppendPhotographer adds a roster entry remotely.
func AppendPhotographer(p model.Photographer) Change {
	return Change{
		desc:  "adding photographer " + p.Name,
		apply: func(ctx context.Context, m *remote.Mirror) error { return m.AppendPhotographer(ctx, p) },
	}
}

// RemovePhotographer removes every remote roster entry with name.
func RemovePhotographer(name string) Change {
	return Change{
		desc:  "removing photographer " + name,
		apply: func(ctx context.Context, m *remote.Mirror) error { return m.RemovePhotographer(ctx, name) },
	}
}

// AppendService adds a price-list entry remotely.
func AppendService(s model.Service) Change {
	return Change{
		desc:  "adding service " + s.Name,
		apply: func(ctx context.Context, m *remote.Mirror) error { return m.AppendService(ctx, s) },
	}
}

// RemoveService removes every remote price-list entry with name.
func RemoveService(name string) Change {
	return Change{
		desc:  "removing service " + name,
		apply: func(ctx context.Context, m *remote.Mirror) error { return m.RemoveService(ctx, name) },
	}
}
