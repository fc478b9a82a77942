package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id            TEXT PRIMARY KEY,
	kind          TEXT NOT NULL,
	vault_path    TEXT NOT NULL,
	archive_bytes INTEGER NOT NULL DEFAULT 0,
	commit_hash   TEXT NOT NULL DEFAULT '',
	duration_ms   INTEGER NOT NULL DEFAULT 0,
	created_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at DESC);
`

// SQLiteStore implements Store on a local SQLite database file.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (and creates if needed) the history database at dbPath.
func Open(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't handle multiple writers well
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Record inserts a snapshot row, assigning an ID and timestamp when absent.
func (s *SQLiteStore) Record(snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}

	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO snapshots (id, kind, vault_path, archive_bytes, commit_hash, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.Kind, snap.VaultPath, snap.ArchiveBytes, snap.Commit,
		snap.Duration.Milliseconds(), snap.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("recording snapshot: %w", err)
	}

	return nil
}

// Recent returns up to limit snapshots, newest first.
func (s *SQLiteStore) Recent(limit int) ([]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, kind, vault_path, archive_bytes, commit_hash, duration_ms, created_at
		 FROM snapshots ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snaps []Snapshot

	for rows.Next() {
		var (
			snap       Snapshot
			durationMS int64
		)

		if err := rows.Scan(&snap.ID, &snap.Kind, &snap.VaultPath, &snap.ArchiveBytes,
			&snap.Commit, &durationMS, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}

		snap.Duration = time.Duration(durationMS) * time.Millisecond
		snaps = append(snaps, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}

	return snaps, nil
}

// Prune deletes all but the newest keep snapshots. keep <= 0 keeps all.
func (s *SQLiteStore) Prune(keep int) error {
	if keep <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY created_at DESC, id LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("pruning snapshots: %w", err)
	}

	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
