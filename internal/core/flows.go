package core

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/vaultbak/vaultbak/internal/application"
	"github.com/vaultbak/vaultbak/internal/config"
	"github.com/vaultbak/vaultbak/internal/git"
	"github.com/vaultbak/vaultbak/internal/store"
)

// GitClient is the subset of the git client the flows depend on.
// Narrowed to an interface so tests can substitute a fake.
type GitClient interface {
	Init(ctx context.Context) error
	IsRepository(ctx context.Context) bool
	CurrentBranch(ctx context.Context) (string, error)
	AddAll(ctx context.Context) error
	HasChanges(ctx context.Context) (bool, error)
	Commit(ctx context.Context, message string) error
	HeadCommit(ctx context.Context) string
	RemoteURL(ctx context.Context, remote string) (string, error)
	AddRemote(ctx context.Context, remote, url string) error
	SetRemoteURL(ctx context.Context, remote, url string) error
	Pull(ctx context.Context, remote, branch string) error
	Push(ctx context.Context, remote, branch string) error
}

// Provisioner creates the private remote repository on first-run setup.
type Provisioner interface {
	CreatePrivate(ctx context.Context, name, localDir, remote string) (string, error)
}

// Flows wires the collaborators every flow needs. History may be nil;
// it is bookkeeping only and never fails a flow.
type Flows struct {
	Config      *config.Store
	Settings    config.Settings
	Prompter    *Prompter
	Archiver    Archiver
	Provisioner Provisioner
	History     store.Store

	// NewGit builds a git client for a repository directory.
	NewGit func(repoDir string) GitClient

	// DefaultRepoDir resolves where the backup repository is created
	// when none is configured. Defaults to application.DefaultRepoDir.
	DefaultRepoDir func() (string, error)
}

// NewFlows assembles flows with the production collaborators.
func NewFlows(cfg *config.Store, settings config.Settings, prov Provisioner, history store.Store) *Flows {
	return &Flows{
		Config:      cfg,
		Settings:    settings,
		Prompter:    NewPrompter(),
		Archiver:    ToolArchiver{},
		Provisioner: prov,
		History:     history,
		NewGit: func(repoDir string) GitClient {
			return git.NewClient(repoDir)
		},
		DefaultRepoDir: application.DefaultRepoDir,
	}
}

// ArchivePath returns the fixed-name archive location inside repoDir.
func (f *Flows) ArchivePath(repoDir string) string {
	return filepath.Join(repoDir, f.Settings.ArchiveName)
}

// vaultPath loads the configured vault directory.
func (f *Flows) vaultPath() (string, error) {
	path, ok, err := f.Config.Load(config.KeyVaultPath)
	if err != nil {
		return "", err
	}

	if !ok || path == "" {
		return "", ErrVaultNotConfigured
	}

	return path, nil
}

// EnsureRepo returns the configured repository path, re-initializing
// the repository when its metadata has gone missing.
func (f *Flows) EnsureRepo(ctx context.Context) (string, error) {
	path, ok, err := f.Config.Load(config.KeyRepoPath)
	if err != nil {
		return "", err
	}

	if !ok || path == "" {
		return "", ErrRepoNotConfigured
	}

	client := f.NewGit(path)
	if !client.IsRepository(ctx) {
		slog.Warn("repository metadata missing, re-initializing", "path", path)

		if err := client.Init(ctx); err != nil {
			return "", err
		}

		if err := f.Config.Save(config.KeyRepoPath, path); err != nil {
			return "", err
		}
	}

	return path, nil
}

// recordSnapshot writes history without ever failing the flow.
func (f *Flows) recordSnapshot(snap store.Snapshot) {
	if f.History == nil {
		return
	}

	if err := f.History.Record(snap); err != nil {
		slog.Warn("failed to record snapshot history", "error", err)
		return
	}

	if err := f.History.Prune(f.Settings.HistoryKeep); err != nil {
		slog.Warn("failed to prune snapshot history", "error", err)
	}
}
