package remote

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/nhle/photodesk/internal/apperr"
	"github.com/nhle/photodesk/internal/model"
)

// Mirror maps model entities onto remote collections. Events, sessions
// and checklists are keyed by their id; photographers and services are
// appended with store-assigned ids and addressed by name.
type Mirror struct {
	c Collections
}

// NewMirror wraps c.
func NewMirror(c Collections) *Mirror {
	return &Mirror{c: c}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, apperr.ErrRemoteUnavailable, err)
}

// PullAll fetches the five collections concurrently. A collection that is
// empty remotely comes back as a nil slice.
func (m *Mirror) PullAll(ctx context.Context) (model.Data, error) {
	var (
		out  model.Data
		docs = make([][]Document, len(model.Collections))
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range model.Collections {
		g.Go(func() error {
			list, err := m.c.List(gctx, name)
			if err != nil {
				return unavailable("pulling "+name, err)
			}
			docs[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.Data{}, err
	}

	for i, name := range model.Collections {
		var err error
		switch name {
		case model.CollectionPhotographers:
			out.Photographers, err = decodeAll[model.Photographer](docs[i], false)
		case model.CollectionServices:
			out.Services, err = decodeAll[model.Service](docs[i], false)
		case model.CollectionEvents:
			out.Events, err = decodeAll[model.Event](docs[i], true)
		case model.CollectionSessions:
			out.Sessions, err = decodeAll[model.Session](docs[i], true)
		case model.CollectionChecklists:
			out.Checklists, err = decodeAll[model.Checklist](docs[i], true)
		}
		if err != nil {
			return model.Data{}, fmt.Errorf("pulling %s: %w", name, err)
		}
	}
	return out, nil
}

func decodeAll[T any](docs []Document, withID bool) ([]T, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var v T
		if err := fromDocument(doc, &v, withID); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *Mirror) set(ctx context.Context, collection string, id model.ID, v any) error {
	fields, err := toFields(v)
	if err != nil {
		return err
	}
	if err := m.c.Set(ctx, collection, id.String(), fields); err != nil {
		return unavailable(fmt.Sprintf("writing %s/%s", collection, id), err)
	}
	return nil
}

func (m *Mirror) delete(ctx context.Context, collection string, id model.ID) error {
	if err := m.c.Delete(ctx, collection, id.String()); err != nil {
		return unavailable(fmt.Sprintf("deleting %s/%s", collection, id), err)
	}
	return nil
}

// PutEvent writes e under its id.
func (m *Mirror) PutEvent(ctx context.Context, e model.Event) error {
	return m.set(ctx, model.CollectionEvents, e.ID, e)
}

// PutSession writes s under its id.
func (m *Mirror) PutSession(ctx context.Context, s model.Session) error {
	return m.set(ctx, model.CollectionSessions, s.ID, s)
}

// PutChecklist writes c under its id.
func (m *Mirror) PutChecklist(ctx context.Context, c model.Checklist) error {
	return m.set(ctx, model.CollectionChecklists, c.ID, c)
}

// DeleteEvent removes the event document.
func (m *Mirror) DeleteEvent(ctx context.Context, id model.ID) error {
	return m.delete(ctx, model.CollectionEvents, id)
}

// DeleteSession removes the session document.
func (m *Mirror) DeleteSession(ctx context.Context, id model.ID) error {
	return m.delete(ctx, model.CollectionSessions, id)
}

// DeleteChecklist removes the checklist document.
func (m *Mirror) DeleteChecklist(ctx context.Context, id model.ID) error {
	return m.delete(ctx, model.CollectionChecklists, id)
}

// AppendPhotographer adds p as a new document.
func (m *Mirror) AppendPhotographer(ctx context.Context, p model.Photographer) error {
	_, err := m.c.Add(ctx, model.CollectionPhotographers, map[string]any{"name": p.Name})
	if err != nil {
		return unavailable("adding photographer", err)
	}
	return nil
}

// AppendService adds s as a new document.
func (m *Mirror) AppendService(ctx context.Context, s model.Service) error {
	fields, err := toFields(s)
	if err != nil {
		return err
	}
	if _, err := m.c.Add(ctx, model.CollectionServices, fields); err != nil {
		return unavailable("adding service", err)
	}
	return nil
}

// RemovePhotographer deletes every photographer document named name.
func (m *Mirror) RemovePhotographer(ctx context.Context, name string) error {
	return m.removeByName(ctx, model.CollectionPhotographers, name)
}

// RemoveService deletes every service document named name.
func (m *Mirror) RemoveService(ctx context.Context, name string) error {
	return m.removeByName(ctx, model.CollectionServices, name)
}

func (m *Mirror) removeByName(ctx context.Context, collection, name string) error {
	docs, err := m.c.List(ctx, collection)
	if err != nil {
		return unavailable("listing "+collection, err)
	}
	for _, doc := range docs {
		if n, _ := doc.Fields["name"].(string); n != name {
			continue
		}
		if err := m.c.Delete(ctx, collection, doc.ID); err != nil {
			return unavailable(fmt.Sprintf("deleting %s/%s", collection, doc.ID), err)
		}
	}
	return nil
}

// Wipe empties all five collections.
func (m *Mirror) Wipe(ctx context.Context) error {
	for _, name := range model.Collections {
		if err := m.c.DeleteAll(ctx, name); err != nil {
			return unavailable("clearing "+name, err)
		}
	}
	return nil
}

// UploadAll writes the full working set. It stops at the first failure.
func (m *Mirror) UploadAll(ctx context.Context, d model.Data) error {
	for _, p := range d.Photographers {
		if err := m.AppendPhotographer(ctx, p); err != nil {
			return err
		}
	}
	for _, s := range d.Services {
		if err := m.AppendService(ctx, s); err != nil {
			return err
		}
	}
	for _, e := range d.Events {
		if err := m.PutEvent(ctx, e); err != nil {
			return err
		}
	}
	for _, s := range d.Sessions {
		if err := m.PutSession(ctx, s); err != nil {
			return err
		}
	}
	for _, c := range d.Checklists {
		if err := m.PutChecklist(ctx, c); err != nil {
			return err
		}
	}
	log.Printf("remote: uploaded %d events, %d sessions, %d checklists",
		len(d.Events), len(d.Sessions), len(d.Checklists))
	return nil
}
