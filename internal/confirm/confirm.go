// Package confirm issues single-use tickets that gate destructive
// operations: the caller first requests a ticket describing the action,
// shows its prompt to the user, and only then executes with it.
package confirm

import (
	"fmt"
	"slices"
	gosync "sync"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/photodesk/internal/apperr"
)

// Ticket identifies one pending confirmation.
type Ticket struct {
	ID     string
	Prompt string
}

// Default limits of a Book.
const (
	DefaultTTL   = 15 * time.Minute
	DefaultLimit = 16
)

// Limits bound how long and how many tickets stay pending.
type Limits struct {
	// TTL expires tickets older than this. Zero means DefaultTTL.
	TTL time.Duration
	// Max keeps at most this many tickets, dropping the oldest.
	// Zero means DefaultLimit.
	Max int
	// Now defaults to time.Now.
	Now func() time.Time
}

type entry[T any] struct {
	payload T
	issued  time.Time
}

// Book holds pending confirmations, each carrying a payload describing
// what will be executed. Abandoned tickets expire after the TTL and the
// oldest are dropped once Max are pending.
type Book[T any] struct {
	mu      gosync.Mutex
	limits  Limits
	pending map[string]entry[T]
	order   []string
}

// NewBook returns an empty Book with the default limits.
func NewBook[T any]() *Book[T] {
	return NewBookWithLimits[T](Limits{})
}

// NewBookWithLimits returns an empty Book bounded by l.
func NewBookWithLimits[T any](l Limits) *Book[T] {
	if l.TTL <= 0 {
		l.TTL = DefaultTTL
	}
	if l.Max <= 0 {
		l.Max = DefaultLimit
	}
	if l.Now == nil {
		l.Now = time.Now
	}
	return &Book[T]{limits: l, pending: make(map[string]entry[T])}
}

// Issue records payload and returns the ticket that releases it.
func (b *Book[T]) Issue(prompt string, payload T) Ticket {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.limits.Now()
	b.prune(now)
	for len(b.order) >= b.limits.Max {
		b.drop(b.order[0])
	}

	t := Ticket{ID: uuid.NewString(), Prompt: prompt}
	b.pending[t.ID] = entry[T]{payload: payload, issued: now}
	b.order = append(b.order, t.ID)
	return t
}

// prune drops expired tickets. order is oldest first.
func (b *Book[T]) prune(now time.Time) {
	for len(b.order) > 0 {
		e := b.pending[b.order[0]]
		if now.Sub(e.issued) < b.limits.TTL {
			return
		}
		b.drop(b.order[0])
	}
}

func (b *Book[T]) drop(id string) {
	delete(b.pending, id)
	if i := slices.Index(b.order, id); i >= 0 {
		b.order = slices.Delete(b.order, i, i+1)
	}
}

// Redeem consumes t and returns its payload. Unknown, cancelled, expired
// and already redeemed tickets fail with apperr.ErrNotConfirmed.
func (b *Book[T]) Redeem(t Ticket) (T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.prune(b.limits.Now())
	e, ok := b.pending[t.ID]
	if !ok {
		var zero T
		return zero, fmt.Errorf("redeeming ticket %q: %w", t.ID, apperr.ErrNotConfirmed)
	}
	b.drop(t.ID)
	return e.payload, nil
}

// Cancel drops t without executing it.
func (b *Book[T]) Cancel(t Ticket) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.drop(t.ID)
}

// Pending returns the number of outstanding tickets.
func (b *Book[T]) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prune(b.limits.Now())
	return len(b.pending)
}
