// Package store keeps a local history of backup and restore runs.
// History is best-effort bookkeeping: flows record snapshots when they
// succeed and never fail because the history could not be written.
package store

import "time"

// Snapshot kinds.
const (
	KindBackup  = "backup"
	KindRestore = "restore"
)

// Snapshot is one recorded backup or restore run.
type Snapshot struct {
	ID           string
	Kind         string
	VaultPath    string
	ArchiveBytes int64
	Commit       string
	Duration     time.Duration
	CreatedAt    time.Time
}

// Store defines the history operations used by the flows.
type Store interface {
	Record(s Snapshot) error
	Recent(limit int) ([]Snapshot, error)
	Prune(keep int) error
	Close() error
}
