package core

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vaultbak/vaultbak/internal/config"
)

// Setup walks the first-run (or reconfiguration) state machine over the
// two persisted paths: confirm or collect the vault directory, then
// confirm or create the local backup repository, optionally
// provisioning a private remote for it.
func (f *Flows) Setup(ctx context.Context) error {
	if err := f.setupVault(); err != nil {
		return err
	}

	return f.setupRepo(ctx)
}

func (f *Flows) setupVault() error {
	current, ok, err := f.Config.Load(config.KeyVaultPath)
	if err != nil {
		return err
	}

	if ok && current != "" {
		if f.Prompter.Confirm(fmt.Sprintf("Use vault at %s?", current)) {
			return nil
		}
	}

	path, err := f.Prompter.ExistingDir("Path to your vault directory: ")
	if err != nil {
		return err
	}

	return f.Config.Save(config.KeyVaultPath, path)
}

func (f *Flows) setupRepo(ctx context.Context) error {
	current, ok, err := f.Config.Load(config.KeyRepoPath)
	if err != nil {
		return err
	}

	if ok && current != "" {
		if f.Prompter.Confirm(fmt.Sprintf("Use backup repository at %s?", current)) {
			return nil
		}
	}

	repoDir, err := f.DefaultRepoDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(repoDir, 0o755); err != nil {
		return fmt.Errorf("failed to create repository directory: %w", err)
	}

	client := f.NewGit(repoDir)
	if !client.IsRepository(ctx) {
		if err := client.Init(ctx); err != nil {
			return err
		}
	}

	if err := f.Config.Save(config.KeyRepoPath, repoDir); err != nil {
		return err
	}

	f.provisionRemote(ctx, client, repoDir)

	return nil
}

// provisionRemote creates the private remote repository. Failure is not
// fatal to local setup; it just leaves no remote configured.
func (f *Flows) provisionRemote(ctx context.Context, client GitClient, repoDir string) {
	if f.Provisioner == nil {
		return
	}

	if _, err := client.RemoteURL(ctx, f.Settings.RemoteName); err == nil {
		// Remote already configured.
		return
	}

	name, err := f.Prompter.Line(fmt.Sprintf("Name for the private remote repository [%s]: ", filepath.Base(repoDir)))
	if err != nil {
		return
	}

	if name == "" {
		name = filepath.Base(repoDir)
	}

	url, err := f.Provisioner.CreatePrivate(ctx, name, repoDir, f.Settings.RemoteName)
	if err != nil {
		slog.Warn("failed to provision remote repository", "error", err)
		fmt.Fprintf(os.Stderr, "Could not create the remote repository: %v\n", err)
		fmt.Fprintln(os.Stderr, "You can add one later with: git remote add origin <url>")

		return
	}

	fmt.Fprintf(os.Stderr, "Created private remote repository: %s\n", url)
}
