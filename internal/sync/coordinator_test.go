package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/nhle/photodesk/internal/apperr"
	"github.com/nhle/photodesk/internal/confirm"
	"github.com/nhle/photodesk/internal/credential"
	"github.com/nhle/photodesk/internal/model"
	"github.com/nhle/photodesk/internal/remote"
)

var testCreds = credential.Firebase{APIKey: "k", ProjectID: "studio", AppID: "app"}

type fakeTarget struct {
	data   model.Data
	pulled []model.Data
}

func (f *fakeTarget) Snapshot() model.Data { return f.data.Clone() }

func (f *fakeTarget) MergePulled(_ context.Context, pulled model.Data) error {
	f.pulled = append(f.pulled, pulled)
	return nil
}

func connected(t *testing.T, mem *remote.Memory, target *fakeTarget) *Coordinator {
	t.Helper()
	c := New(mem.Dialer(), target)
	if err := c.Connect(context.Background(), testCreds); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	return c
}

func drain(c *Coordinator) []NoticeMsg {
	var out []NoticeMsg
	for {
		select {
		case n := <-c.Notices():
			out = append(out, n)
		default:
			return out
		}
	}
}

func TestConnectPullsIntoTarget(t *testing.T) {
	ctx := context.Background()
	mem := remote.NewMemory()
	if err := remote.NewMirror(mem).PutEvent(ctx, model.Event{ID: "1", Client: "Lucía"}); err != nil {
		t.Fatal(err)
	}
	target := &fakeTarget{}

	c := New(mem.Dialer(), target)
	if c.State() != Unconfigured {
		t.Fatalf("initial state = %v", c.State())
	}
	if err := c.Connect(ctx, testCreds); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	if c.State() != Connected {
		t.Fatalf("state = %v, want Connected", c.State())
	}
	if len(target.pulled) != 1 || len(target.pulled[0].Events) != 1 {
		t.Fatalf("pulled = %+v", target.pulled)
	}
	if target.pulled[0].Sessions != nil {
		t.Errorf("empty remote sessions came back non-nil")
	}
	if n := drain(c); len(n) != 1 || n[0].State != Connected {
		t.Errorf("notices = %+v", n)
	}
}

func TestConnectFailureDisconnects(t *testing.T) {
	mem := remote.NewMemory()
	mem.SetFailure(errors.New("network down"))
	target := &fakeTarget{}

	c := New(mem.Dialer(), target)
	err := c.Connect(context.Background(), testCreds)
	if !errors.Is(err, apperr.ErrRemoteUnavailable) {
		t.Fatalf("Connect err = %v, want ErrRemoteUnavailable", err)
	}
	if c.State() != Disconnected {
		t.Fatalf("state = %v, want Disconnected", c.State())
	}
	if len(target.pulled) != 0 {
		t.Fatal("failed connect touched the target")
	}
	if n := drain(c); len(n) != 1 || n[0].Err == nil {
		t.Errorf("notices = %+v", n)
	}
}

func TestSkipIsLocalOnly(t *testing.T) {
	mem := remote.NewMemory()
	c := New(mem.Dialer(), &fakeTarget{})
	c.Skip()

	if c.State() != Disconnected {
		t.Fatalf("state = %v", c.State())
	}
	if err := c.Apply(context.Background(), PutEvent(model.Event{ID: "1"})); err != nil {
		t.Fatalf("Apply while disconnected: %v", err)
	}
	if mem.Len(model.CollectionEvents) != 0 {
		t.Fatal("disconnected coordinator wrote to the mirror")
	}
	if _, err := c.RequestResync(); !errors.Is(err, apperr.ErrRemoteUnavailable) {
		t.Fatalf("RequestResync err = %v", err)
	}
}

func TestApplyWritesThrough(t *testing.T) {
	ctx := context.Background()
	mem := remote.NewMemory()
	c := connected(t, mem, &fakeTarget{})

	err := c.Apply(ctx,
		PutEvent(model.Event{ID: "1", Client: "Lucía"}),
		PutSession(model.Session{ID: "2", EventID: "1"}),
		PutChecklist(model.Checklist{ID: "3", ClientID: "1"}),
		AppendPhotographer(model.Photographer{Name: "Ana"}),
		AppendService(model.Service{Name: "Boda"}),
	)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for _, coll := range model.Collections {
		if mem.Len(coll) != 1 {
			t.Errorf("%s has %d documents, want 1", coll, mem.Len(coll))
		}
	}

	err = c.Apply(ctx,
		DeleteEvent("1"), DeleteSession("2"), DeleteChecklist("3"),
		RemovePhotographer("Ana"), RemoveService("Boda"),
	)
	if err != nil {
		t.Fatalf("Apply deletes: %v", err)
	}
	for _, coll := range model.Collections {
		if mem.Len(coll) != 0 {
			t.Errorf("%s has %d documents after delete", coll, mem.Len(coll))
		}
	}
}

func TestApplyFailureIsReportedNotFatal(t *testing.T) {
	mem := remote.NewMemory()
	c := connected(t, mem, &fakeTarget{})
	drain(c)

	mem.SetFailure(errors.New("quota exceeded"))
	err := c.Apply(context.Background(), PutEvent(model.Event{ID: "1"}))
	if !errors.Is(err, apperr.ErrRemoteUnavailable) {
		t.Fatalf("Apply err = %v, want ErrRemoteUnavailable", err)
	}
	if c.State() != Connected {
		t.Errorf("write failure changed state to %v", c.State())
	}
	if n := drain(c); len(n) != 1 || n[0].Err == nil {
		t.Errorf("notices = %+v", n)
	}
	if c.Status().Err == nil {
		t.Error("status does not carry the last error")
	}
}

func TestResyncRequiresTicket(t *testing.T) {
	ctx := context.Background()
	mem := remote.NewMemory()
	m := remote.NewMirror(mem)
	if err := m.PutEvent(ctx, model.Event{ID: "stale"}); err != nil {
		t.Fatal(err)
	}

	target := &fakeTarget{data: model.Defaults()}
	target.data.Events = []model.Event{{ID: "1"}, {ID: "2"}}
	c := connected(t, mem, target)

	if err := c.ExecuteResync(ctx, confirm.Ticket{ID: "forged"}); !errors.Is(err, apperr.ErrNotConfirmed) {
		t.Fatalf("forged resync err = %v, want ErrNotConfirmed", err)
	}
	if mem.Len(model.CollectionEvents) != 1 {
		t.Fatal("unconfirmed resync touched the mirror")
	}

	ticket, err := c.RequestResync()
	if err != nil {
		t.Fatalf("RequestResync: %v", err)
	}
	if err := c.ExecuteResync(ctx, ticket); err != nil {
		t.Fatalf("ExecuteResync: %v", err)
	}

	got, err := m.PullAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Events) != 2 || got.Events[0].ID != "1" {
		t.Errorf("remote events = %+v", got.Events)
	}
	if len(got.Services) != 4 || len(got.Photographers) != 1 {
		t.Errorf("remote roster/services = %d/%d", len(got.Photographers), len(got.Services))
	}

	if err := c.ExecuteResync(ctx, ticket); !errors.Is(err, apperr.ErrNotConfirmed) {
		t.Fatalf("reused ticket err = %v", err)
	}
}

func TestWaitForNotice(t *testing.T) {
	c := New(remote.NewMemory().Dialer(), &fakeTarget{})
	c.Skip()

	msg := c.WaitForNotice()()
	n, ok := msg.(NoticeMsg)
	if !ok || n.State != Disconnected {
		t.Fatalf("WaitForNotice = %#v", msg)
	}
}
