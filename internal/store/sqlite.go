package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/photodesk/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// An in-memory database exists per connection; pin the pool to one.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// LoadSnapshot reads the photoBusinessData slot and shallow-merges it over
// the defaults.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context) (model.Data, error) {
	raw, ok, err := s.GetSlot(ctx, model.SnapshotKey)
	if err != nil {
		return model.Data{}, err
	}
	if !ok {
		return model.Defaults(), nil
	}

	data, err := model.DecodeSnapshot(model.Defaults(), []byte(raw))
	if err != nil {
		return model.Data{}, fmt.Errorf("loading snapshot: %w", err)
	}
	return data, nil
}

// SaveSnapshot serializes data and overwrites the snapshot slot in a
// single statement.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, data model.Data) error {
	data.SchemaVersion = model.SchemaVersion
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	return s.SetSlot(ctx, model.SnapshotKey, string(raw))
}

// ClearSnapshot deletes the snapshot slot.
func (s *SQLiteStore) ClearSnapshot(ctx context.Context) error {
	return s.DeleteSlot(ctx, model.SnapshotKey)
}

// GetSlot returns the value stored under key and whether it exists.
func (s *SQLiteStore) GetSlot(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT value FROM slots WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading slot %s: %w", key, err)
	}
	return value, true, nil
}

// SetSlot inserts or replaces the value stored under key.
func (s *SQLiteStore) SetSlot(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO slots (key, value, updated_at)
		VALUES (?, ?, ?)`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing slot %s: %w", key, err)
	}
	return nil
}

// DeleteSlot removes key. Deleting a missing slot is not an error.
func (s *SQLiteStore) DeleteSlot(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM slots WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting slot %s: %w", key, err)
	}
	return nil
}
