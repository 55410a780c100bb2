package store

import (
	"context"

	"github.com/nhle/photodesk/internal/model"
)

// Store is the local persistent store: named key-value slots, one of which
// holds the full data snapshot.
type Store interface {
	// === Snapshot ===

	// LoadSnapshot returns the stored snapshot overlaid on the built-in
	// defaults. A missing slot yields the defaults.
	LoadSnapshot(ctx context.Context) (model.Data, error)
	// SaveSnapshot overwrites the snapshot slot with data.
	SaveSnapshot(ctx context.Context, data model.Data) error
	// ClearSnapshot removes the snapshot slot.
	ClearSnapshot(ctx context.Context) error

	// === Slots ===

	GetSlot(ctx context.Context, key string) (string, bool, error)
	SetSlot(ctx context.Context, key, value string) error
	DeleteSlot(ctx context.Context, key string) error
}
