package eventsource

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists events in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite-backed store at path.
// Use ":memory:" for an ephemeral store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return store, nil
}

// migrate creates the event table if it doesn't exist.
func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		stream     TEXT NOT NULL,
		version    INTEGER NOT NULL,
		id         TEXT NOT NULL UNIQUE,
		type       TEXT NOT NULL,
		data       BLOB NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (stream, version)
	);`
	_, err := s.db.Exec(schema)
	return err
}

// Append adds events to a stream with optimistic concurrency.
func (s *SQLiteStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var head sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT MAX(version) FROM events WHERE stream = ?`, stream).Scan(&head)
	if err != nil {
		return 0, err
	}
	current := -1
	if head.Valid {
		current = int(head.Int64)
	}
	if current != expectedVersion {
		return 0, ErrVersionConflict
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO events (stream, version, id, type, data, created_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	version := expectedVersion
	for _, e := range events {
		version++
		if _, err := stmt.ExecContext(ctx, stream, version, e.ID, e.Type, []byte(e.Data),
			e.Timestamp.Format(time.RFC3339Nano)); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return version, nil
}

// Read returns events from a stream starting at fromVersion.
func (s *SQLiteStore) Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT version, id, type, data, created_at FROM events
		 WHERE stream = ? AND version >= ? ORDER BY version`, stream, fromVersion)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Event
	for rows.Next() {
		e := &Event{Stream: stream}
		var created string
		if err := rows.Scan(&e.Version, &e.ID, &e.Type, (*[]byte)(&e.Data), &created); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			e.Timestamp = ts
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
