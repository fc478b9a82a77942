package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/vaultbak/vaultbak/internal/git"
	"github.com/vaultbak/vaultbak/internal/giturl"
	"github.com/vaultbak/vaultbak/internal/store"
)

// Backup runs the archive-encrypt-publish flow: stream the vault into
// the fixed-name encrypted archive, commit the repository if anything
// changed, and push the current branch, rewriting an http(s) remote to
// its SSH form first.
func (f *Flows) Backup(ctx context.Context) error {
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
	archive := f.ArchivePath(repoDir)

	if err := f.Archiver.Encrypt(ctx, vault, archive, f.Settings.Cipher, passphrase); err != nil {
		// Nothing gets committed when the pipeline fails; a broken
		// archive must not be published.
		return fmt.Errorf("failed to create encrypted archive: %w", err)
	}

	client := f.NewGit(repoDir)

	if err := client.AddAll(ctx); err != nil {
		return err
	}

	changed, err := client.HasChanges(ctx)
	if err != nil {
		return err
	}

	if changed {
		message := "vault backup " + time.Now().Format(time.RFC1123)
		if err := client.Commit(ctx, message); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(os.Stderr, "No changes since the last backup; nothing to commit.")
	}

	pushed, err := f.publish(ctx, client)
	if err != nil {
		return err
	}

	var archiveBytes int64
	if info, statErr := os.Stat(archive); statErr == nil {
		archiveBytes = info.Size()
	}

	f.recordSnapshot(store.Snapshot{
		Kind:         store.KindBackup,
		VaultPath:    vault,
		ArchiveBytes: archiveBytes,
		Commit:       client.HeadCommit(ctx),
		Duration:     time.Since(start),
	})

	if pushed {
		fmt.Fprintln(os.Stderr, "Backup pushed to the remote repository.")
	}

	return nil
}

// publish makes sure a remote exists, rewrites an insecure transport to
// SSH, and pushes the current branch. Returns false without error when
// no remote is configured and the user supplies none: that is a normal
// soft stop, not a failure.
func (f *Flows) publish(ctx context.Context, client GitClient) (bool, error) {
	remote := f.Settings.RemoteName

	url, err := client.RemoteURL(ctx, remote)
	if errors.Is(err, git.ErrNoRemote) {
		url, err = f.Prompter.Line("No remote configured. Remote URL (leave empty to skip push): ")
		if err != nil {
			return false, err
		}

		if url == "" {
			fmt.Fprintf(os.Stderr, "Skipping push. Configure a remote later with: git remote add %s <url>\n", remote)
			return false, nil
		}

		if err := client.AddRemote(ctx, remote, url); err != nil {
			return false, err
		}
	} else if err != nil {
		return false, err
	}

	if giturl.IsWeb(url) {
		sshURL, err := giturl.ToSSH(url)
		if err != nil {
			return false, err
		}

		if err := client.SetRemoteURL(ctx, remote, sshURL); err != nil {
			return false, err
		}

		fmt.Fprintf(os.Stderr, "Rewrote remote %s to %s\n", remote, sshURL)
	}

	branch, err := client.CurrentBranch(ctx)
	if err != nil {
		return false, err
	}

	if err := client.Push(ctx, remote, branch); err != nil {
		return false, err
	}

	return true, nil
}
