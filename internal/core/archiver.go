package core

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/vaultbak/vaultbak/internal/pipeline"
)

// Archiver turns a vault directory into an encrypted archive and back.
// The tool-backed implementation delegates to tar, gzip, and gpg.
type Archiver interface {
	Encrypt(ctx context.Context, vaultDir, archivePath, cipher, passphrase string) error
	Decrypt(ctx context.Context, archivePath, vaultDir, passphrase string) error
}

// ToolArchiver streams the vault through tar | gzip | gpg as one
// pipeline, so no plaintext archive is ever written to disk.
type ToolArchiver struct{}

func encryptStages(ctx context.Context, vaultDir, archivePath, cipher string) []*pipeline.Stage {
	return []*pipeline.Stage{
		pipeline.NewStage("tar", exec.CommandContext(ctx, "tar", "-C", vaultDir, "-cf", "-", ".")),
		pipeline.NewStage("gzip", exec.CommandContext(ctx, "gzip", "-c")),
		pipeline.NewStage("gpg", exec.CommandContext(ctx, "gpg",
			"--batch", "--yes", "--quiet",
			"--pinentry-mode", "loopback",
			"--passphrase-fd", "3",
			"--symmetric", "--cipher-algo", cipher,
			"-o", archivePath,
		)),
	}
}

func decryptStages(ctx context.Context, archivePath, vaultDir string) []*pipeline.Stage {
	return []*pipeline.Stage{
		pipeline.NewStage("gpg", exec.CommandContext(ctx, "gpg",
			"--batch", "--quiet",
			"--pinentry-mode", "loopback",
			"--passphrase-fd", "3",
			"--decrypt", archivePath,
		)),
		pipeline.NewStage("gzip", exec.CommandContext(ctx, "gzip", "-dc")),
		pipeline.NewStage("tar", exec.CommandContext(ctx, "tar", "-C", vaultDir, "-xf", "-")),
	}
}

// Encrypt archives vaultDir into archivePath encrypted with the
// passphrase.
func (ToolArchiver) Encrypt(ctx context.Context, vaultDir, archivePath, cipher, passphrase string) error {
	stages := encryptStages(ctx, vaultDir, archivePath, cipher)
	if err := stages[2].WithPassphrase(passphrase); err != nil {
		return err
	}

	if err := pipeline.New(stages...).Run(); err != nil {
		return fmt.Errorf("archive pipeline failed: %w", err)
	}

	return nil
}

// Decrypt extracts archivePath into vaultDir using the passphrase.
func (ToolArchiver) Decrypt(ctx context.Context, archivePath, vaultDir, passphrase string) error {
	stages := decryptStages(ctx, archivePath, vaultDir)
	if err := stages[0].WithPassphrase(passphrase); err != nil {
		return err
	}

	if err := pipeline.New(stages...).Run(); err != nil {
		return fmt.Errorf("restore pipeline failed: %w", err)
	}

	return nil
}
