// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/nhle/photodesk/internal/datetime"
	"github.com/nhle/photodesk/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// FixedDates returns a date service whose clock is stuck at the given
// regional date and time.
func FixedDates(t *testing.T, date, clock string) *datetime.Service {
	t.Helper()

	at, err := datetime.At(date, clock)
	if err != nil {
		t.Fatalf("parsing fixed clock %s %s: %v", date, clock, err)
	}
	return datetime.NewWithClock(func() time.Time { return at })
}
