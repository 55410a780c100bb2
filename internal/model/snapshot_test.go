package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestIDAcceptsNumbersAndStrings(t *testing.T) {
	var v struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
		D ID `json:"d"`
	}
	raw := `{"a": 1715299200000, "b": "1715299200000", "c": 1.7152992e12, "d": null}`
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.A != "1715299200000" || v.B != v.A {
		t.Fatalf("ids differ: a=%q b=%q", v.A, v.B)
	}
	if v.C != "1715299200000" {
		t.Fatalf("exponent id = %q", v.C)
	}
	if v.D != "" {
		t.Fatalf("null id = %q, want empty", v.D)
	}

	out, err := json.Marshal(v.A)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"1715299200000"` {
		t.Fatalf("marshal id = %s, want quoted string", out)
	}
}

func TestPhotographerAcceptsBothShapes(t *testing.T) {
	var ps []Photographer
	if err := json.Unmarshal([]byte(`["Ana", {"name": "Beto"}]`), &ps); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []Photographer{{Name: "Ana"}, {Name: "Beto"}}
	if !reflect.DeepEqual(ps, want) {
		t.Fatalf("got %+v, want %+v", ps, want)
	}

	out, err := json.Marshal(ps)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `["Ana","Beto"]` {
		t.Fatalf("marshal = %s", out)
	}
}

func TestDecodeSnapshotShallowMerge(t *testing.T) {
	base := Defaults()
	raw := `{"events": [{"id": 1, "client": "Lucía", "date": "2024-05-10", "status": "active"}]}`

	got, err := DecodeSnapshot(base, []byte(raw))
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}

	if !reflect.DeepEqual(got.Services, base.Services) {
		t.Errorf("services changed although key was absent")
	}
	if !reflect.DeepEqual(got.Photographers, base.Photographers) {
		t.Errorf("photographers changed although key was absent")
	}
	if len(got.Events) != 1 {
		t.Fatalf("events = %d, want 1", len(got.Events))
	}
	e := got.Events[0]
	if e.ID != "1" || e.Date != "10/05/2024" || e.Status != EventStatusActive {
		t.Errorf("migrated event = %+v", e)
	}
	if got.SchemaVersion != SchemaVersion {
		t.Errorf("schemaVersion = %d, want %d", got.SchemaVersion, SchemaVersion)
	}
}

func TestDecodeSnapshotReplacesPresentKeys(t *testing.T) {
	raw := `{"schemaVersion": 2, "services": [{"name": "Solo"}], "sessions": null}`
	got, err := DecodeSnapshot(Defaults(), []byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Services) != 1 || got.Services[0].Price != nil {
		t.Fatalf("services = %+v, want a single unpriced entry", got.Services)
	}
	if got.Sessions == nil {
		t.Fatal("null sessions should normalize to an empty slice")
	}
}

func TestDecodeSnapshotDropsFieldsOfReplacedRecords(t *testing.T) {
	base := Defaults()
	base.Events = []Event{{ID: "1", Client: "Viejo", Phone: "555", Status: EventStatusArchived, Archived: true}}
	base.Checklists = []Checklist{{ID: "9", ClientName: "Viejo", Archived: true, Items: []ChecklistItem{{Name: "a", Completed: true}}}}

	raw := `{"events": [{"id": 2, "client": "Nuevo", "date": "02/02/2024", "status": "Activo"}],
		"checklists": [{"id": 3, "clientName": "Nuevo"}]}`
	got, err := DecodeSnapshot(base, []byte(raw))
	if err != nil {
		t.Fatal(err)
	}

	e := got.Events[0]
	if e.ID != "2" || e.Phone != "" || e.Archived || e.Status != EventStatusActive {
		t.Errorf("imported event = %+v, want no fields from the replaced one", e)
	}
	c := got.Checklists[0]
	if c.Archived || len(c.Items) != 0 {
		t.Errorf("imported checklist = %+v, want no fields from the replaced one", c)
	}
	if base.Events[0].Phone != "555" {
		t.Error("base was modified")
	}
}

func TestMigrateArchivedAndDedupe(t *testing.T) {
	d := Data{
		Photographers: []Photographer{{Name: "Ana"}, {Name: "Ana"}, {Name: "Beto"}},
		Events: []Event{
			{ID: "1", Status: "active", Archived: true, Date: "10/05/2024"},
			{ID: "2", Status: "completed", Date: "bad date"},
		},
		Sessions: []Session{{ID: "3", Date: "2024-06-01"}},
	}
	got := Migrate(d, 1)

	if len(got.Photographers) != 2 {
		t.Errorf("photographers = %+v, want deduplicated", got.Photographers)
	}
	if got.Events[0].Status != EventStatusArchived {
		t.Errorf("archived status = %q", got.Events[0].Status)
	}
	if got.Events[1].Status != EventStatusCompleted || got.Events[1].Date != "bad date" {
		t.Errorf("legacy event = %+v", got.Events[1])
	}
	if got.Sessions[0].Date != "01/06/2024" || got.Sessions[0].Status != SessionStatusPending {
		t.Errorf("session = %+v", got.Sessions[0])
	}
}

func TestCloneIsDeep(t *testing.T) {
	d := Defaults()
	d.Checklists = []Checklist{{ID: "1", Items: []ChecklistItem{{Name: "x"}}}}

	c := d.Clone()
	*c.Services[0].Price = 1
	c.Checklists[0].Items[0].Completed = true

	if *d.Services[0].Price == 1 {
		t.Error("clone shares service price")
	}
	if d.Checklists[0].Items[0].Completed {
		t.Error("clone shares checklist items")
	}
}
