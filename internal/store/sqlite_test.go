package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Record(Snapshot{
		Kind:         KindBackup,
		VaultPath:    "/tmp/vault",
		ArchiveBytes: 2048,
		Commit:       "abc1234",
		Duration:     1500 * time.Millisecond,
	}))

	snaps, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, snaps, 1)

	got := snaps[0]
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, KindBackup, got.Kind)
	assert.Equal(t, "/tmp/vault", got.VaultPath)
	assert.Equal(t, int64(2048), got.ArchiveBytes)
	assert.Equal(t, "abc1234", got.Commit)
	assert.Equal(t, 1500*time.Millisecond, got.Duration)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Record(Snapshot{
			Kind:      KindBackup,
			VaultPath: "/tmp/vault",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	snaps, err := s.Recent(2)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.True(t, snaps[0].CreatedAt.After(snaps[1].CreatedAt))
}

func TestPruneKeepsNewest(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(Snapshot{
			Kind:      KindRestore,
			VaultPath: "/tmp/vault",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	require.NoError(t, s.Prune(2))

	snaps, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, base.Add(4*time.Minute), snaps[0].CreatedAt.UTC())
}

func TestPruneZeroKeepsAll(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Record(Snapshot{Kind: KindBackup, VaultPath: "/tmp/vault"}))
	}

	require.NoError(t, s.Prune(0))

	snaps, err := s.Recent(10)
	require.NoError(t, err)
	assert.Len(t, snaps, 3)
}
