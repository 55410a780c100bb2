package model

import (
	"github.com/nhle/photodesk/internal/datetime"
)

// SchemaVersion is the version of the snapshot layout written today.
const SchemaVersion = 2

// schemaMigration upgrades a snapshot from version-1 to version.
type schemaMigration struct {
	version int
	apply   func(*Data)
}

// schemaMigrations is the ordered list of snapshot upgrades.
var schemaMigrations = []schemaMigration{
	{version: 2, apply: migrateV2},
}

// Migrate upgrades d from schema version from to SchemaVersion and
// normalizes shapes every reader relies on. It runs once, at load time.
func Migrate(d Data, from int) Data {
	for _, m := range schemaMigrations {
		if m.version <= from {
			continue
		}
		m.apply(&d)
	}
	normalize(&d)
	d.SchemaVersion = SchemaVersion
	return d
}

// migrateV2 renames the old "active" event status, forces archived events
// to the archived label and canonicalizes dates saved straight from a
// date-picker.
func migrateV2(d *Data) {
	for i := range d.Events {
		e := &d.Events[i]
		switch {
		case e.Archived:
			e.Status = EventStatusArchived
		case e.Status == "" || e.Status == eventStatusLegacyOpen:
			e.Status = EventStatusActive
		}
		e.Date = canonicalOrKeep(e.Date)
	}
	for i := range d.Sessions {
		s := &d.Sessions[i]
		s.Date = canonicalOrKeep(s.Date)
		if s.Status == "" {
			s.Status = SessionStatusPending
		}
	}
}

// canonicalOrKeep keeps unparseable dates untouched so a single bad record
// cannot block loading the whole snapshot.
func canonicalOrKeep(date string) string {
	c, err := datetime.Canonicalize(date)
	if err != nil {
		return date
	}
	return c
}

func normalize(d *Data) {
	if d.Photographers == nil {
		d.Photographers = []Photographer{}
	}
	if d.Services == nil {
		d.Services = []Service{}
	}
	if d.Events == nil {
		d.Events = []Event{}
	}
	if d.Sessions == nil {
		d.Sessions = []Session{}
	}
	if d.Checklists == nil {
		d.Checklists = []Checklist{}
	}
	for i := range d.Checklists {
		if d.Checklists[i].Items == nil {
			d.Checklists[i].Items = []ChecklistItem{}
		}
	}

	d.Photographers = dedupe(d.Photographers, func(p Photographer) string { return p.Name })
	d.Services = dedupe(d.Services, func(s Service) string { return s.Name })
}

// dedupe keeps the first occurrence of every key, preserving order.
func dedupe[T any](items []T, key func(T) string) []T {
	seen := make(map[string]bool, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, item)
	}
	return out
}
