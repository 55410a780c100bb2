package remote

import (
	"context"
	"errors"
	"testing"

	"github.com/nhle/photodesk/internal/apperr"
	"github.com/nhle/photodesk/internal/model"
)

func price(v int) *int { return &v }

func TestMirrorUploadAndPull(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	m := NewMirror(mem)

	in := model.Data{
		Photographers: []model.Photographer{{Name: "Ana"}},
		Services:      []model.Service{{Name: "Boda", Price: price(50000)}, {Name: "Retrato"}},
		Events: []model.Event{{
			ID: "1700000000000", Client: "Lucía", Date: "15/03/2025", Status: model.EventStatusActive,
		}},
		Sessions: []model.Session{{
			ID: "1700000000001", EventID: "1700000000000", Date: "15/03/2025", Time: "00:00",
			Status: model.SessionStatusPending,
		}},
		Checklists: []model.Checklist{{
			ID: "1700000000100", ClientID: "1700000000000", ClientName: "Lucía",
			Items: []model.ChecklistItem{{Name: "Fotos", Completed: true}},
		}},
	}

	if err := m.UploadAll(ctx, in); err != nil {
		t.Fatalf("UploadAll: %v", err)
	}

	got, err := m.PullAll(ctx)
	if err != nil {
		t.Fatalf("PullAll: %v", err)
	}

	if len(got.Photographers) != 1 || got.Photographers[0].Name != "Ana" {
		t.Errorf("photographers = %+v", got.Photographers)
	}
	if len(got.Services) != 2 || got.Services[0].Price == nil || *got.Services[0].Price != 50000 {
		t.Errorf("services = %+v", got.Services)
	}
	if got.Services[1].Price != nil {
		t.Errorf("service without price pulled with %d", *got.Services[1].Price)
	}
	if len(got.Events) != 1 || got.Events[0].ID != "1700000000000" || got.Events[0].Client != "Lucía" {
		t.Errorf("events = %+v", got.Events)
	}
	if len(got.Sessions) != 1 || got.Sessions[0].EventID != "1700000000000" {
		t.Errorf("sessions = %+v", got.Sessions)
	}
	if len(got.Checklists) != 1 || !got.Checklists[0].Items[0].Completed {
		t.Errorf("checklists = %+v", got.Checklists)
	}
}

func TestMirrorPullEmptyCollectionsAreNil(t *testing.T) {
	got, err := NewMirror(NewMemory()).PullAll(context.Background())
	if err != nil {
		t.Fatalf("PullAll: %v", err)
	}
	if got.Events != nil || got.Photographers != nil {
		t.Fatalf("empty remote produced non-nil collections: %+v", got)
	}
}

func TestMirrorDocumentIDWinsOverStoredField(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	if err := mem.Set(ctx, model.CollectionEvents, "42", map[string]any{"id": "7", "client": "X"}); err != nil {
		t.Fatal(err)
	}

	got, err := NewMirror(mem).PullAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Events[0].ID != "42" {
		t.Fatalf("event id = %q, want document id 42", got.Events[0].ID)
	}
}

func TestMirrorRemoveByName(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	m := NewMirror(mem)

	for _, name := range []string{"Ana", "Beto", "Ana"} {
		if err := m.AppendPhotographer(ctx, model.Photographer{Name: name}); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.RemovePhotographer(ctx, "Ana"); err != nil {
		t.Fatalf("RemovePhotographer: %v", err)
	}
	if n := mem.Len(model.CollectionPhotographers); n != 1 {
		t.Fatalf("photographers left = %d, want 1", n)
	}
}

func TestMirrorWipe(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	m := NewMirror(mem)
	if err := m.PutEvent(ctx, model.Event{ID: "1"}); err != nil {
		t.Fatal(err)
	}
	if err := m.AppendService(ctx, model.Service{Name: "Boda"}); err != nil {
		t.Fatal(err)
	}

	if err := m.Wipe(ctx); err != nil {
		t.Fatalf("Wipe: %v", err)
	}
	for _, c := range model.Collections {
		if n := mem.Len(c); n != 0 {
			t.Errorf("%s has %d documents after wipe", c, n)
		}
	}
}

func TestMirrorFailureIsRemoteUnavailable(t *testing.T) {
	mem := NewMemory()
	mem.SetFailure(errors.New("offline"))
	m := NewMirror(mem)

	err := m.PutSession(context.Background(), model.Session{ID: "1"})
	if !errors.Is(err, apperr.ErrRemoteUnavailable) {
		t.Fatalf("PutSession error = %v, want ErrRemoteUnavailable", err)
	}
	if _, err := m.PullAll(context.Background()); !errors.Is(err, apperr.ErrRemoteUnavailable) {
		t.Fatalf("PullAll error = %v, want ErrRemoteUnavailable", err)
	}
}
