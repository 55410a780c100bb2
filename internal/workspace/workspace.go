// Package workspace holds the in-memory working set and every structural
// mutation on it. A Workspace is not safe for concurrent use; the studio
// controller serializes access.
package workspace

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nhle/photodesk/internal/datetime"
	"github.com/nhle/photodesk/internal/model"
)

// createdAtLayout matches the ISO-8601 timestamps older snapshots carry.
const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Workspace owns the five collections.
type Workspace struct {
	data     model.Data
	dates    *datetime.Service
	ids      idSource
	validate *validator.Validate
}

// New returns a Workspace over a copy of data.
func New(data model.Data, dates *datetime.Service) *Workspace {
	w := &Workspace{
		dates:    dates,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	w.ids.now = dates.RegionalNow
	w.Replace(data)
	return w
}

// Dates returns the date service the workspace computes "today" with.
func (w *Workspace) Dates() *datetime.Service {
	return w.dates
}

// Snapshot returns a deep copy of the working set.
func (w *Workspace) Snapshot() model.Data {
	return w.data.Clone()
}

// Replace swaps the whole working set for a copy of data.
func (w *Workspace) Replace(data model.Data) {
	w.data = model.Migrate(data.Clone(), model.SchemaVersion)
	w.ids.observeAll(w.data)
}

// ReplaceCollections overwrites every collection that is non-empty in
// pulled. Empty collections keep the current data. Pulled records are
// migrated like a legacy snapshot.
func (w *Workspace) ReplaceCollections(pulled model.Data) {
	out := w.data.Clone()
	if len(pulled.Photographers) > 0 {
		out.Photographers = pulled.Photographers
	}
	if len(pulled.Services) > 0 {
		out.Services = pulled.Services
	}
	if len(pulled.Events) > 0 {
		out.Events = pulled.Events
	}
	if len(pulled.Sessions) > 0 {
		out.Sessions = pulled.Sessions
	}
	if len(pulled.Checklists) > 0 {
		out.Checklists = pulled.Checklists
	}
	w.data = model.Migrate(out.Clone(), 1)
	w.ids.observeAll(w.data)
}

// Photographers returns the roster.
func (w *Workspace) Photographers() []model.Photographer {
	return append([]model.Photographer(nil), w.data.Photographers...)
}

// Services returns the price list.
func (w *Workspace) Services() []model.Service {
	return w.Snapshot().Services
}

// Events returns all events, archived included.
func (w *Workspace) Events() []model.Event {
	return append([]model.Event(nil), w.data.Events...)
}

// Sessions returns all sessions.
func (w *Workspace) Sessions() []model.Session {
	return append([]model.Session(nil), w.data.Sessions...)
}

// Checklists returns all checklists, archived included.
func (w *Workspace) Checklists() []model.Checklist {
	return w.Snapshot().Checklists
}

func (w *Workspace) createdAt() string {
	return w.dates.RegionalNow().UTC().Format(createdAtLayout)
}

// idSource hands out millisecond timestamps, bumping past the last issued
// or observed id so two entities created in the same instant never collide.
type idSource struct {
	now  func() time.Time
	last int64
}

func (g *idSource) next() model.ID {
	n := g.now().UnixMilli()
	if n <= g.last {
		n = g.last + 1
	}
	g.last = n
	return model.IDFromInt(n)
}

func (g *idSource) observe(id model.ID) {
	if n, ok := id.Int(); ok && n > g.last {
		g.last = n
	}
}

func (g *idSource) observeAll(d model.Data) {
	for _, e := range d.Events {
		g.observe(e.ID)
	}
	for _, s := range d.Sessions {
		g.observe(s.ID)
	}
	for _, c := range d.Checklists {
		g.observe(c.ID)
	}
}
