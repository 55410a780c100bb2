// Package studio is the application controller. It owns the working set,
// persists it after every mutation and forwards changes to the remote
// mirror. All presentation layers talk to a *Studio.
package studio

import (
	"context"
	"fmt"
	"log"
	gosync "sync"
	"time"

	"github.com/nhle/photodesk/internal/apperr"
	"github.com/nhle/photodesk/internal/confirm"
	"github.com/nhle/photodesk/internal/credential"
	"github.com/nhle/photodesk/internal/datetime"
	"github.com/nhle/photodesk/internal/model"
	"github.com/nhle/photodesk/internal/remote"
	"github.com/nhle/photodesk/internal/store"
	psync "github.com/nhle/photodesk/internal/sync"
	"github.com/nhle/photodesk/internal/workspace"
)

// Options configures Open.
type Options struct {
	Store store.Store
	// Dates defaults to the system clock.
	Dates *datetime.Service
	// Dialer connects to the remote mirror. Nil keeps the studio local-only.
	Dialer remote.Dialer
	// Vault holds the mirror credentials. Nil disables stored credentials.
	Vault credential.Vault
}

// Studio serializes every mutation: lock, mutate, persist, unlock, then
// write through to the mirror outside the lock.
type Studio struct {
	mu    gosync.Mutex
	ws    *workspace.Workspace
	store store.Store
	vault credential.Vault
	sync  *psync.Coordinator

	pending *confirm.Book[operation]
}

// Open loads the stored snapshot and returns a ready Studio. The mirror is
// not contacted until Connect or ConnectStored is called.
func Open(ctx context.Context, opts Options) (*Studio, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("opening studio: no store")
	}
	dates := opts.Dates
	if dates == nil {
		dates = datetime.New()
	}

	data, err := opts.Store.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening studio: %w", err)
	}

	s := &Studio{
		ws:      workspace.New(data, dates),
		store:   opts.Store,
		vault:   opts.Vault,
		pending: confirm.NewBook[operation](),
	}

	dial := opts.Dialer
	if dial == nil {
		dial = func(context.Context, credential.Firebase) (remote.Collections, error) {
			return nil, fmt.Errorf("no remote configured: %w", apperr.ErrRemoteUnavailable)
		}
	}
	s.sync = psync.New(dial, s)
	return s, nil
}

// Sync exposes the mirror coordinator for status display and notices.
func (s *Studio) Sync() *psync.Coordinator {
	return s.sync
}

// View runs fn with read access to the working set. fn must not retain ws.
func (s *Studio) View(fn func(ws *workspace.Workspace)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.ws)
}

// Snapshot returns a deep copy of the working set.
func (s *Studio) Snapshot() model.Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ws.Snapshot()
}

// Today returns midnight of the current regional day.
func (s *Studio) Today() time.Time {
	return s.ws.Dates().Today()
}

// mutate runs fn under the lock, persists the result and then writes the
// returned changes through to the mirror. If fn or the save fails the
// working set is rolled back and nothing reaches the mirror. Remote
// failures are reported by the coordinator and never undo the local
// commit.
func (s *Studio) mutate(ctx context.Context, fn func(ws *workspace.Workspace) ([]psync.Change, error)) error {
	s.mu.Lock()
	before := s.ws.Snapshot()
	changes, err := fn(s.ws)
	if err != nil {
		s.ws.Replace(before)
		s.mu.Unlock()
		return err
	}
	if err := s.commit(ctx, before); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("saving data: %w", err)
	}
	s.mu.Unlock()

	_ = s.sync.Apply(ctx, changes...)
	return nil
}

// noop swallows errors that only mean there was nothing to act on.
func noop(op string, err error) error {
	if apperr.IsNoop(err) {
		log.Printf("studio: %s: nothing to do: %v", op, err)
		return nil
	}
	return err
}

// MergePulled implements the sync target: every collection non-empty in
// pulled replaces the local one, and the result is persisted.
func (s *Studio) MergePulled(ctx context.Context, pulled model.Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.ws.Snapshot()
	s.ws.ReplaceCollections(pulled)
	if err := s.commit(ctx, before); err != nil {
		return fmt.Errorf("saving pulled data: %w", err)
	}
	return nil
}

// commit saves the working set, restoring before when the store fails so
// memory never runs ahead of what is persisted. Callers hold the lock.
func (s *Studio) commit(ctx context.Context, before model.Data) error {
	if err := s.store.SaveSnapshot(ctx, s.ws.Snapshot()); err != nil {
		s.ws.Replace(before)
		return err
	}
	return nil
}

// Connect connects to the mirror with creds and pulls remote data.
func (s *Studio) Connect(ctx context.Context, creds credential.Firebase) error {
	return s.sync.Connect(ctx, creds)
}

// ConnectStored connects with the credentials kept in the vault. It
// returns credential.ErrMissing when none are stored.
func (s *Studio) ConnectStored(ctx context.Context) error {
	if s.vault == nil {
		return fmt.Errorf("connecting: %w", credential.ErrMissing)
	}
	creds, err := credential.LoadFirebase(s.vault)
	if err != nil {
		return err
	}
	return s.Connect(ctx, creds)
}

// SaveCredentials stores creds in the vault and connects with them.
func (s *Studio) SaveCredentials(ctx context.Context, creds credential.Firebase) error {
	if !creds.Complete() {
		return fmt.Errorf("saving credentials: %w: api key, project id and app id are required", apperr.ErrValidation)
	}
	if s.vault != nil {
		if err := credential.SaveFirebase(s.vault, creds); err != nil {
			return err
		}
	}
	return s.Connect(ctx, creds)
}

// ForgetCredentials removes stored credentials and switches to local mode.
func (s *Studio) ForgetCredentials() error {
	if s.vault != nil {
		if err := credential.ForgetFirebase(s.vault); err != nil {
			return err
		}
	}
	s.sync.Skip()
	return nil
}

// SkipRemote chooses local-only mode.
func (s *Studio) SkipRemote() {
	s.sync.Skip()
}
