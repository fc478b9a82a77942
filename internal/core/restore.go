package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/vaultbak/vaultbak/internal/git"
	"github.com/vaultbak/vaultbak/internal/store"
)

// Restore runs the fetch-decrypt-restore flow: pull the current branch,
// then stream the encrypted archive through gpg | gzip | tar into the
// vault directory. A failed extraction leaves the vault exactly as the
// tools left it; no rollback is attempted.
func (f *Flows) Restore(ctx context.Context) error {
	vault, err := f.vaultPath()
	if err != nil {
		return err
	}

	repoDir, err := f.EnsureRepo(ctx)
	if err != nil {
		return err
	}

	passphrase, err := f.Prompter.ConfirmedPassphrase()
	if err != nil {
		return err
	}

	start := time.Now()
	client := f.NewGit(repoDir)

	if err := f.pull(ctx, client); err != nil {
		return err
	}

	archive := f.ArchivePath(repoDir)
	if _, err := os.Stat(archive); err != nil {
		return ErrArchiveMissing
	}

	if err := os.MkdirAll(vault, 0o755); err != nil {
		return fmt.Errorf("failed to create vault directory: %w", err)
	}

	if err := f.Archiver.Decrypt(ctx, archive, vault, passphrase); err != nil {
		return fmt.Errorf("failed to decrypt archive (wrong passphrase?): %w", err)
	}

	var archiveBytes int64
	if info, statErr := os.Stat(archive); statErr == nil {
		archiveBytes = info.Size()
	}

	f.recordSnapshot(store.Snapshot{
		Kind:         store.KindRestore,
		VaultPath:    vault,
		ArchiveBytes: archiveBytes,
		Commit:       client.HeadCommit(ctx),
		Duration:     time.Since(start),
	})

	fmt.Fprintf(os.Stderr, "Vault restored into %s\n", vault)

	return nil
}

// pull fetches the latest archive. A repository without a remote is
// restored from the local archive instead of failing.
func (f *Flows) pull(ctx context.Context, client GitClient) error {
	remote := f.Settings.RemoteName

	if _, err := client.RemoteURL(ctx, remote); errors.Is(err, git.ErrNoRemote) {
		slog.Warn("no remote configured, restoring from the local archive")
		return nil
	} else if err != nil {
		return err
	}

	branch, err := client.CurrentBranch(ctx)
	if err != nil {
		return err
	}

	return client.Pull(ctx, remote, branch)
}
