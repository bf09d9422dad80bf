package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens (creating if needed) the database that SQLiteStores share.
func OpenSQLite(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS records (
			kind TEXT NOT NULL,
			id TEXT NOT NULL,
			version INTEGER NOT NULL,
			spec TEXT NOT NULL,
			PRIMARY KEY (kind, id)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("initialising schema: %w", err)
		}
	}

	return db, nil
}

// SQLiteStore keeps the records of one kind in a shared sqlite table and
// mirrors them in memory.
type SQLiteStore[T ValidatingSpec] struct {
	db      *sql.DB
	kind    string
	records map[string]T

	mu sync.RWMutex
}

func NewSQLiteStore[T ValidatingSpec](ctx context.Context, db *sql.DB, kind string) (*SQLiteStore[T], error) {
	s := &SQLiteStore[T]{
		db:      db,
		kind:    kind,
		records: map[string]T{},
	}

	if err := s.load(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// load reads every row of the store's kind. Rows that fail to decode or
// validate are logged and skipped.
func (s *SQLiteStore[T]) load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, version, spec FROM records WHERE kind = ?`, s.kind)
	if err != nil {
		return fmt.Errorf("querying %s records: %w", s.kind, err)
	}
	defer func() { _ = rows.Close() }()

	s.records = map[string]T{}
	for rows.Next() {
		var (
			id      string
			version uint
			spec    string
		)
		if err := rows.Scan(&id, &version, &spec); err != nil {
			return fmt.Errorf("scanning %s record: %w", s.kind, err)
		}

		asset := &Asset[T]{Version: version, Identifier: id}
		if err := json.Unmarshal([]byte(spec), &asset.Spec); err != nil {
			slog.Warn("skipping unreadable record", "kind", s.kind, "id", id, "error", err)
			continue
		}
		if err := asset.Validate(); err != nil {
			slog.Warn("skipping invalid record", "kind", s.kind, "id", id, "error", err)
			continue
		}

		s.records[id] = asset.Spec
	}

	return rows.Err()
}

func (s *SQLiteStore[T]) Save(id string, o T) error {
	if id == "" {
		return fmt.Errorf("%w: id is empty", ErrInvalidIdentifier)
	}
	if err := ValidateIdentifier(id); err != nil {
		return err
	}

	spec, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(
		`INSERT INTO records (kind, id, version, spec) VALUES (?, ?, ?, ?)
		 ON CONFLICT(kind, id) DO UPDATE SET version = excluded.version, spec = excluded.spec`,
		s.kind, id, assetVersion, string(spec),
	)
	if err != nil {
		return fmt.Errorf("saving %s %s: %w", s.kind, id, err)
	}

	s.records[id] = o
	return nil
}

func (s *SQLiteStore[T]) Get(id string) T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records[id]
}

func (s *SQLiteStore[T]) GetAll() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vals := make(map[string]T, len(s.records))
	for id, v := range s.records {
		vals[id] = v
	}

	return vals
}

func (s *SQLiteStore[T]) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM records WHERE kind = ? AND id = ?`, s.kind, id); err != nil {
		return fmt.Errorf("deleting %s %s: %w", s.kind, id, err)
	}
	delete(s.records, id)
	return nil
}
