package model

import (
	"encoding/json"
	"fmt"
)

// SnapshotKey is the local storage slot holding the full data set.
const SnapshotKey = "photoBusinessData"

// Remote collection names.
const (
	CollectionPhotographers = "photographers"
	CollectionServices      = "services"
	CollectionEvents        = "events"
	CollectionSessions      = "sessions"
	CollectionChecklists    = "checklists"
)

// Collections lists every collection in a snapshot, in dependency order.
var Collections = []string{
	CollectionPhotographers,
	CollectionServices,
	CollectionEvents,
	CollectionSessions,
	CollectionChecklists,
}

// Data is the full working set. It is also the JSON document written to
// local storage and to export files.
type Data struct {
	SchemaVersion int            `json:"schemaVersion,omitempty"`
	Photographers []Photographer `json:"photographers"`
	Services      []Service      `json:"services"`
	Events        []Event        `json:"events"`
	Sessions      []Session      `json:"sessions"`
	Checklists    []Checklist    `json:"checklists"`
}

func intPtr(v int) *int { return &v }

// Defaults returns the built-in starting data set.
func Defaults() Data {
	return Data{
		SchemaVersion: SchemaVersion,
		Photographers: []Photographer{{Name: "Fotógrafo Principal"}},
		Services: []Service{
			{Name: "Boda Completa", Price: intPtr(50000)},
			{Name: "Quinceañera", Price: intPtr(30000)},
			{Name: "Evento Corporativo", Price: intPtr(25000)},
			{Name: "Sesión de Retratos", Price: intPtr(15000)},
		},
		Events:     []Event{},
		Sessions:   []Session{},
		Checklists: []Checklist{},
	}
}

// Clone returns a deep copy of d.
func (d Data) Clone() Data {
	out := Data{
		SchemaVersion: d.SchemaVersion,
		Photographers: append([]Photographer{}, d.Photographers...),
		Services:      make([]Service, len(d.Services)),
		Events:        append([]Event{}, d.Events...),
		Sessions:      append([]Session{}, d.Sessions...),
		Checklists:    make([]Checklist, len(d.Checklists)),
	}
	for i, s := range d.Services {
		if s.Price != nil {
			s.Price = intPtr(*s.Price)
		}
		out.Services[i] = s
	}
	for i, c := range d.Checklists {
		c.Items = append([]ChecklistItem{}, c.Items...)
		out.Checklists[i] = c
	}
	return out
}

// DecodeSnapshot shallow-merges the top-level keys of raw over base: a key
// present in raw fully replaces the same collection, a missing key keeps
// base's data. The merged result is migrated to the current schema.
func DecodeSnapshot(base Data, raw []byte) (Data, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return Data{}, fmt.Errorf("decoding snapshot: %w", err)
	}

	out := base.Clone()
	version := 1
	if v, ok := top["schemaVersion"]; ok {
		if err := json.Unmarshal(v, &version); err != nil {
			return Data{}, fmt.Errorf("decoding schemaVersion: %w", err)
		}
	}

	fields := []struct {
		key    string
		decode func(json.RawMessage) error
	}{
		{CollectionPhotographers, replaceWith(&out.Photographers)},
		{CollectionServices, replaceWith(&out.Services)},
		{CollectionEvents, replaceWith(&out.Events)},
		{CollectionSessions, replaceWith(&out.Sessions)},
		{CollectionChecklists, replaceWith(&out.Checklists)},
	}
	for _, f := range fields {
		v, ok := top[f.key]
		if !ok {
			continue
		}
		if err := f.decode(v); err != nil {
			return Data{}, fmt.Errorf("decoding %s: %w", f.key, err)
		}
	}

	return Migrate(out, version), nil
}

// replaceWith decodes into a fresh slice before assigning it to dst, so
// fields absent from the document never carry over from the old records.
func replaceWith[T any](dst *[]T) func(json.RawMessage) error {
	return func(raw json.RawMessage) error {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		*dst = items
		return nil
	}
}
