package workspace

import (
	"errors"
	"slices"
	"testing"

	"github.com/nhle/photodesk/internal/apperr"
	"github.com/nhle/photodesk/internal/model"
	"github.com/nhle/photodesk/internal/testutil"
)

func newWorkspace(t *testing.T) *Workspace {
	t.Helper()
	return New(model.Defaults(), testutil.FixedDates(t, "10/05/2024", "09:30"))
}

func mustCreateEvent(t *testing.T, w *Workspace, client, date string) (model.Event, model.Session) {
	t.Helper()
	e, s, err := w.CreateEvent(EventInput{Client: client, Date: date, Location: "Salón Norte"})
	if err != nil {
		t.Fatalf("CreateEvent(%s): %v", client, err)
	}
	return e, s
}

func TestCreateEventEndToEnd(t *testing.T) {
	w := New(model.Data{}, testutil.FixedDates(t, "10/05/2024", "09:30"))

	e, s := mustCreateEvent(t, w, "Lucía", "2024-05-10")

	if e.Date != "10/05/2024" {
		t.Errorf("event date = %q, want 10/05/2024", e.Date)
	}
	if e.Status != model.EventStatusActive || e.Archived {
		t.Errorf("event status = %q archived = %v", e.Status, e.Archived)
	}
	if s.EventID != e.ID || s.Date != "10/05/2024" || s.Time != "00:00" || s.Status != model.SessionStatusPending {
		t.Errorf("auto session = %+v", s)
	}
	if s.Photographer != "" {
		t.Errorf("photographer = %q with empty roster", s.Photographer)
	}
	if s.Notes != model.MainSessionNotes || s.Location != "Salón Norte" {
		t.Errorf("auto session notes/location = %q/%q", s.Notes, s.Location)
	}

	eid, _ := e.ID.Int()
	sid, _ := s.ID.Int()
	if sid != eid+1 {
		t.Errorf("session id = %d, want event id + 1 (%d)", sid, eid+1)
	}

	c := w.Counters(w.Dates().Today())
	if c.ActiveEvents != 1 || c.TodaySessions != 1 || c.SessionsNext7Days != 1 {
		t.Errorf("counters = %+v", c)
	}
}

func TestCreateEventUsesFirstPhotographer(t *testing.T) {
	w := newWorkspace(t)
	_, s := mustCreateEvent(t, w, "Lucía", "10/05/2024")
	if s.Photographer != "Fotógrafo Principal" {
		t.Errorf("photographer = %q", s.Photographer)
	}
}

func TestCreateEventAlwaysCreatesOneSession(t *testing.T) {
	w := newWorkspace(t)
	for _, client := range []string{"A", "B", "C"} {
		e, _ := mustCreateEvent(t, w, client, "12/05/2024")
		got := w.SessionsForEvent(e.ID)
		if len(got) != 1 || got[0].Date != e.Date {
			t.Fatalf("sessions for %s = %+v", client, got)
		}
	}
}

func TestIDsAreUniqueAndIncreasing(t *testing.T) {
	w := newWorkspace(t)
	var ids []int64
	for range 5 {
		e, s := mustCreateEvent(t, w, "X", "10/05/2024")
		c, err := w.CreateChecklist(e.ID)
		if err != nil {
			t.Fatal(err)
		}
		for _, id := range []model.ID{e.ID, s.ID, c.ID} {
			n, _ := id.Int()
			ids = append(ids, n)
		}
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			t.Fatalf("ids not strictly increasing: %v", ids)
		}
	}
}

func TestIDsStayAboveLoadedData(t *testing.T) {
	data := model.Defaults()
	data.Events = []model.Event{{ID: "99999999999999", Client: "Futuro"}}
	w := New(data, testutil.FixedDates(t, "10/05/2024", "09:30"))

	e, _ := mustCreateEvent(t, w, "Nuevo", "10/05/2024")
	if e.ID != "100000000000000" {
		t.Fatalf("new id = %s, want one past the loaded maximum", e.ID)
	}
}

func TestCreateEventValidation(t *testing.T) {
	w := newWorkspace(t)
	tests := []struct {
		name string
		in   EventInput
		want error
	}{
		{"missing client", EventInput{Date: "10/05/2024"}, apperr.ErrValidation},
		{"blank client", EventInput{Client: "   ", Date: "10/05/2024"}, apperr.ErrValidation},
		{"missing date", EventInput{Client: "Lucía"}, apperr.ErrValidation},
		{"bad date", EventInput{Client: "Lucía", Date: "mañana"}, apperr.ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := w.CreateEvent(tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if len(w.Events()) != 0 || len(w.Sessions()) != 0 {
				t.Fatal("failed create mutated state")
			}
		})
	}
}

func TestCreateSession(t *testing.T) {
	w := newWorkspace(t)

	s, err := w.CreateSession(SessionInput{EventID: "1", Date: "2024-06-01", Time: "9:05"})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if s.Date != "01/06/2024" || s.Time != "09:05" || s.Status != model.SessionStatusPending {
		t.Errorf("session = %+v", s)
	}

	for _, in := range []SessionInput{
		{Date: "01/06/2024", Time: "10:00"},
		{EventID: "1", Time: "10:00"},
		{EventID: "1", Date: "01/06/2024"},
	} {
		if _, err := w.CreateSession(in); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("CreateSession(%+v) err = %v, want ErrValidation", in, err)
		}
	}
	if _, err := w.CreateSession(SessionInput{EventID: "1", Date: "01/06/2024", Time: "25:00"}); !errors.Is(err, apperr.ErrParse) {
		t.Errorf("bad time err = %v, want ErrParse", err)
	}
}

func TestDanglingSessionLabel(t *testing.T) {
	w := newWorkspace(t)
	e, _ := mustCreateEvent(t, w, "Lucía", "10/05/2024")

	if got := w.EventLabel(e.ID); got != "Lucía" {
		t.Errorf("label = %q", got)
	}
	if got := w.EventLabel("404"); got != model.UnknownClientLabel {
		t.Errorf("dangling label = %q, want %q", got, model.UnknownClientLabel)
	}
}

func TestRoster(t *testing.T) {
	w := newWorkspace(t)

	if _, err := w.AddPhotographer("Ana"); err != nil {
		t.Fatalf("AddPhotographer: %v", err)
	}
	before := len(w.Photographers())
	if _, err := w.AddPhotographer("Ana"); !errors.Is(err, apperr.ErrDuplicate) {
		t.Fatalf("second AddPhotographer err = %v, want ErrDuplicate", err)
	}
	if len(w.Photographers()) != before {
		t.Fatal("duplicate changed the roster")
	}
	if _, err := w.AddPhotographer("ana"); err != nil {
		t.Errorf("names are case-sensitive; AddPhotographer(ana) = %v", err)
	}
	if _, err := w.AddPhotographer(" "); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("blank name err = %v, want ErrValidation", err)
	}

	removed, err := w.RemovePhotographer(1)
	if err != nil || removed.Name != "Ana" {
		t.Fatalf("RemovePhotographer(1) = %+v, %v", removed, err)
	}
	if _, err := w.RemovePhotographer(10); !errors.Is(err, apperr.ErrOutOfRange) {
		t.Errorf("RemovePhotographer(10) err = %v, want ErrOutOfRange", err)
	}
	if _, err := w.RemovePhotographer(-1); !errors.Is(err, apperr.ErrOutOfRange) {
		t.Errorf("RemovePhotographer(-1) err = %v, want ErrOutOfRange", err)
	}
}

func TestRosterNamesAreTrimmedThenMatchedExactly(t *testing.T) {
	w := newWorkspace(t)

	p, err := w.AddPhotographer("  Ana ")
	if err != nil || p.Name != "Ana" {
		t.Fatalf("AddPhotographer(\"  Ana \") = %+v, %v", p, err)
	}
	if _, err := w.AddPhotographer("Ana"); !errors.Is(err, apperr.ErrDuplicate) {
		t.Errorf("AddPhotographer(Ana) err = %v, want ErrDuplicate", err)
	}
	if _, err := w.AddPhotographer("ANA"); err != nil {
		t.Errorf("AddPhotographer(ANA) = %v, want case-sensitive match", err)
	}

	s, err := w.AddService(" Book ", nil)
	if err != nil || s.Name != "Book" {
		t.Fatalf("AddService = %+v, %v", s, err)
	}
	if _, err := w.AddService("Book", nil); !errors.Is(err, apperr.ErrDuplicate) {
		t.Errorf("AddService(Book) err = %v, want ErrDuplicate", err)
	}
}

func TestServices(t *testing.T) {
	w := newWorkspace(t)
	price := 12000

	s, err := w.AddService("Book de Estudio", &price)
	if err != nil {
		t.Fatalf("AddService: %v", err)
	}
	price = 1
	if *s.Price != 12000 {
		t.Error("service aliases the caller's price")
	}
	if _, err := w.AddService("Boda Completa", nil); !errors.Is(err, apperr.ErrDuplicate) {
		t.Errorf("duplicate service err = %v", err)
	}
	neg := -5
	if _, err := w.AddService("Gratis", &neg); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("negative price err = %v, want ErrValidation", err)
	}
	if _, err := w.AddService("Sin precio", nil); err != nil {
		t.Errorf("service without price: %v", err)
	}

	if _, err := w.RemoveService(len(w.Services())); !errors.Is(err, apperr.ErrOutOfRange) {
		t.Errorf("RemoveService out of range err = %v", err)
	}
	if _, err := w.RemoveService(0); err != nil {
		t.Fatal(err)
	}
	if w.Services()[0].Name != "Quinceañera" {
		t.Errorf("order not preserved: %+v", w.Services())
	}
}

func TestToggleSessionStatusIsSelfInverse(t *testing.T) {
	w := newWorkspace(t)
	_, s := mustCreateEvent(t, w, "Lucía", "10/05/2024")

	first, err := w.ToggleSessionStatus(s.ID)
	if err != nil || first.Status != model.SessionStatusCompleted {
		t.Fatalf("first toggle = %+v, %v", first, err)
	}
	second, err := w.ToggleSessionStatus(s.ID)
	if err != nil || second.Status != s.Status {
		t.Fatalf("second toggle = %+v, %v", second, err)
	}
	if _, err := w.ToggleSessionStatus("nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("toggle missing err = %v", err)
	}
}

func TestArchiveEventIsSelfInverse(t *testing.T) {
	w := newWorkspace(t)
	e, _ := mustCreateEvent(t, w, "Lucía", "10/05/2024")

	a, err := w.ArchiveEvent(e.ID)
	if err != nil || !a.Archived || a.Status != model.EventStatusArchived {
		t.Fatalf("archive = %+v, %v", a, err)
	}
	if got := w.Counters(w.Dates().Today()).ActiveEvents; got != 0 {
		t.Errorf("active events with archived event = %d", got)
	}

	u, err := w.UnarchiveEvent(e.ID)
	if err != nil || u.Archived || u.Status != model.EventStatusActive {
		t.Fatalf("unarchive = %+v, %v", u, err)
	}
	if _, err := w.ArchiveEvent("missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("archive missing err = %v", err)
	}
}

func TestChecklists(t *testing.T) {
	w := newWorkspace(t)

	if _, err := w.CreateChecklist("404"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("CreateChecklist(404) err = %v", err)
	}
	if len(w.Checklists()) != 0 {
		t.Fatal("failed CreateChecklist added a checklist")
	}

	e, _ := mustCreateEvent(t, w, "Lucía", "10/05/2024")
	c, err := w.CreateChecklist(e.ID)
	if err != nil {
		t.Fatalf("CreateChecklist: %v", err)
	}
	if c.ClientName != "Lucía" || c.ClientID != e.ID || len(c.Items) != len(model.DefaultChecklistItems) {
		t.Errorf("checklist = %+v", c)
	}
	if got := w.Counters(w.Dates().Today()).PendingDeliveries; got != 1 {
		t.Errorf("pending deliveries = %d, want 1", got)
	}

	for i := range c.Items {
		if _, err := w.ToggleChecklistItem(c.ID, i); err != nil {
			t.Fatal(err)
		}
	}
	if done, total, _ := w.ChecklistProgress(c.ID); done != total {
		t.Errorf("progress = %d/%d", done, total)
	}
	if got := w.Counters(w.Dates().Today()).PendingDeliveries; got != 0 {
		t.Errorf("pending deliveries after completing = %d", got)
	}
	if _, err := w.ToggleChecklistItem(c.ID, 5); !errors.Is(err, apperr.ErrOutOfRange) {
		t.Errorf("toggle item 5 err = %v", err)
	}

	arch, err := w.ArchiveChecklist(c.ID)
	if err != nil || !arch.Archived {
		t.Fatalf("ArchiveChecklist = %+v, %v", arch, err)
	}
	if un, _ := w.UnarchiveChecklist(c.ID); un.Archived {
		t.Error("UnarchiveChecklist left archived set")
	}
}

func TestDeleteEventCascades(t *testing.T) {
	w := newWorkspace(t)
	keep, _ := mustCreateEvent(t, w, "Otro", "11/05/2024")
	e, auto := mustCreateEvent(t, w, "Lucía", "10/05/2024")
	extra, err := w.CreateSession(SessionInput{EventID: e.ID, Date: "12/05/2024", Time: "18:00"})
	if err != nil {
		t.Fatal(err)
	}
	cl, err := w.CreateChecklist(e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.CreateChecklist(keep.ID); err != nil {
		t.Fatal(err)
	}

	cascade, err := w.DeleteEvent(e.ID)
	if err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}

	if !slices.Equal(cascade.Sessions, []model.ID{auto.ID, extra.ID}) {
		t.Errorf("cascade sessions = %v", cascade.Sessions)
	}
	if !slices.Equal(cascade.Checklists, []model.ID{cl.ID}) {
		t.Errorf("cascade checklists = %v", cascade.Checklists)
	}
	for _, s := range w.Sessions() {
		if s.EventID == e.ID {
			t.Errorf("orphan session %s", s.ID)
		}
	}
	for _, c := range w.Checklists() {
		if c.ClientID == e.ID {
			t.Errorf("orphan checklist %s", c.ID)
		}
	}
	if len(w.Events()) != 1 || len(w.Sessions()) != 1 || len(w.Checklists()) != 1 {
		t.Errorf("unrelated records were removed")
	}

	if _, err := w.DeleteEvent(e.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second DeleteEvent err = %v", err)
	}
}

func TestDeleteSessionAndChecklist(t *testing.T) {
	w := newWorkspace(t)
	e, s := mustCreateEvent(t, w, "Lucía", "10/05/2024")
	c, _ := w.CreateChecklist(e.ID)

	if err := w.DeleteSession(s.ID); err != nil {
		t.Fatal(err)
	}
	if err := w.DeleteSession(s.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second DeleteSession err = %v", err)
	}
	if err := w.DeleteChecklist(c.ID); err != nil {
		t.Fatal(err)
	}
	if err := w.DeleteChecklist(c.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second DeleteChecklist err = %v", err)
	}
	if _, ok := w.Event(e.ID); !ok {
		t.Error("deleting children removed the event")
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	w := newWorkspace(t)
	e, _ := mustCreateEvent(t, w, "Lucía", "10/05/2024")
	c, _ := w.CreateChecklist(e.ID)

	snap := w.Snapshot()
	snap.Checklists[0].Items[0].Completed = true
	snap.Events[0].Client = "Otra"

	if got, _ := w.Checklist(c.ID); got.Items[0].Completed {
		t.Error("snapshot shares checklist items")
	}
	if got, _ := w.Event(e.ID); got.Client != "Lucía" {
		t.Error("snapshot shares events")
	}
}

func TestReplaceCollectionsKeepsEmptyOnes(t *testing.T) {
	w := newWorkspace(t)
	e, _ := mustCreateEvent(t, w, "Local", "10/05/2024")

	w.ReplaceCollections(model.Data{
		Photographers: []model.Photographer{{Name: "Remota"}, {Name: "Remota"}},
		Events: []model.Event{{
			ID: "5", Client: "Remoto", Date: "2024-05-20", Status: "active",
		}},
	})

	if got := w.Photographers(); len(got) != 1 || got[0].Name != "Remota" {
		t.Errorf("photographers = %+v, want deduplicated remote roster", got)
	}
	if got := w.Events(); len(got) != 1 || got[0].Date != "20/05/2024" || got[0].Status != model.EventStatusActive {
		t.Errorf("events = %+v, want migrated remote event", got)
	}
	if len(w.Services()) != 4 {
		t.Errorf("services replaced by empty remote collection")
	}
	if got := w.SessionsForEvent(e.ID); len(got) != 1 {
		t.Errorf("local sessions replaced by empty remote collection")
	}
}
