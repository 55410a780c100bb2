package remote

import (
	"context"
	"fmt"
	"maps"
	"slices"
	gosync "sync"

	"github.com/google/uuid"

	"github.com/nhle/photodesk/internal/credential"
)

// Memory is an in-process Collections implementation. It is used when the
// mirror runs without network access and in tests.
type Memory struct {
	mu    gosync.Mutex
	docs  map[string]map[string]map[string]any
	order map[string][]string
	fail  error
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		docs:  make(map[string]map[string]map[string]any),
		order: make(map[string][]string),
	}
}

// Dialer returns a Dialer that always connects to m.
func (m *Memory) Dialer() Dialer {
	return func(ctx context.Context, _ credential.Firebase) (Collections, error) {
		if err := m.failure(); err != nil {
			return nil, err
		}
		return m, nil
	}
}

// SetFailure makes every subsequent call, including dialing, fail with
// err. A nil err restores normal operation.
func (m *Memory) SetFailure(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

func (m *Memory) failure() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fail
}

// List implements Collections. Documents come back in insertion order.
func (m *Memory) List(ctx context.Context, collection string) ([]Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}

	out := make([]Document, 0, len(m.order[collection]))
	for _, id := range m.order[collection] {
		out = append(out, Document{ID: id, Fields: maps.Clone(m.docs[collection][id])})
	}
	return out, nil
}

// Add implements Collections.
func (m *Memory) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id := uuid.New().String()
	if err := m.Set(ctx, collection, id, fields); err != nil {
		return "", err
	}
	return id, nil
}

// Set implements Collections.
func (m *Memory) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if id == "" {
		return fmt.Errorf("setting %s: empty document id", collection)
	}

	coll, ok := m.docs[collection]
	if !ok {
		coll = make(map[string]map[string]any)
		m.docs[collection] = coll
	}
	if _, exists := coll[id]; !exists {
		m.order[collection] = append(m.order[collection], id)
	}
	coll[id] = maps.Clone(fields)
	return nil
}

// Delete implements Collections.
func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}

	delete(m.docs[collection], id)
	m.order[collection] = slices.DeleteFunc(m.order[collection], func(s string) bool { return s == id })
	return nil
}

// DeleteAll implements Collections.
func (m *Memory) DeleteAll(ctx context.Context, collection string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}

	delete(m.docs, collection)
	delete(m.order, collection)
	return nil
}

// Len returns the number of documents in collection.
func (m *Memory) Len(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order[collection])
}
