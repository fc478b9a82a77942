package core

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireArchiveTools skips when the archive toolchain is not
// installed and isolates gpg state in a throwaway home.
func requireArchiveTools(t *testing.T) {
	t.Helper()

	for _, tool := range []string{"tar", "gzip", "gpg"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not installed", tool)
		}
	}

	t.Setenv("GNUPGHOME", t.TempDir())
}

func writeVault(t *testing.T) string {
	t.Helper()

	vault := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(vault, "note.md"), []byte("hello"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(vault, "daily"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(vault, "daily", "today.md"), []byte("entry"), 0o644))

	return vault
}

func TestToolArchiverRoundTrip(t *testing.T) {
	requireArchiveTools(t)

	ctx := context.Background()
	vault := writeVault(t)
	archive := filepath.Join(t.TempDir(), "vault.tar.gz.gpg")

	require.NoError(t, ToolArchiver{}.Encrypt(ctx, vault, archive, "AES256", "secret123"))
	require.FileExists(t, archive)

	restored := t.TempDir()
	require.NoError(t, ToolArchiver{}.Decrypt(ctx, archive, restored, "secret123"))

	note, err := os.ReadFile(filepath.Join(restored, "note.md"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), note)

	daily, err := os.ReadFile(filepath.Join(restored, "daily", "today.md"))
	require.NoError(t, err)
	assert.Equal(t, []byte("entry"), daily)
}

func TestToolArchiverWrongPassphraseFails(t *testing.T) {
	requireArchiveTools(t)

	ctx := context.Background()
	vault := writeVault(t)
	archive := filepath.Join(t.TempDir(), "vault.tar.gz.gpg")

	require.NoError(t, ToolArchiver{}.Encrypt(ctx, vault, archive, "AES256", "secret123"))

	// Fresh gpg home so no cached session key can satisfy the decrypt.
	t.Setenv("GNUPGHOME", t.TempDir())

	restored := t.TempDir()
	err := ToolArchiver{}.Decrypt(ctx, archive, restored, "wrong-passphrase")
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(restored, "note.md"))
}

func TestEncryptStagesShape(t *testing.T) {
	stages := encryptStages(context.Background(), "/tmp/vault", "/tmp/repo/vault.tar.gz.gpg", "AES256")
	require.Len(t, stages, 3)

	assert.Equal(t, "tar", stages[0].Name)
	assert.Equal(t, "gzip", stages[1].Name)
	assert.Equal(t, "gpg", stages[2].Name)

	tarArgs := strings.Join(stages[0].Cmd.Args, " ")
	assert.Contains(t, tarArgs, "-C /tmp/vault")
	assert.Contains(t, tarArgs, "-cf -")

	gpgArgs := strings.Join(stages[2].Cmd.Args, " ")
	assert.Contains(t, gpgArgs, "--symmetric")
	assert.Contains(t, gpgArgs, "--cipher-algo AES256")
	assert.Contains(t, gpgArgs, "--passphrase-fd 3")
	assert.Contains(t, gpgArgs, "-o /tmp/repo/vault.tar.gz.gpg")
}

func TestDecryptStagesShape(t *testing.T) {
	stages := decryptStages(context.Background(), "/tmp/repo/vault.tar.gz.gpg", "/tmp/vault")
	require.Len(t, stages, 3)

	assert.Equal(t, "gpg", stages[0].Name)
	assert.Equal(t, "gzip", stages[1].Name)
	assert.Equal(t, "tar", stages[2].Name)

	gpgArgs := strings.Join(stages[0].Cmd.Args, " ")
	assert.Contains(t, gpgArgs, "--decrypt /tmp/repo/vault.tar.gz.gpg")

	tarArgs := strings.Join(stages[2].Cmd.Args, " ")
	assert.Contains(t, tarArgs, "-C /tmp/vault")
	assert.Contains(t, tarArgs, "-xf -")
}

// The passphrase travels on fd 3, never argv.
func TestPassphraseNeverInArgv(t *testing.T) {
	stages := encryptStages(context.Background(), "/tmp/vault", "/tmp/out", "AES256")
	require.NoError(t, stages[2].WithPassphrase("secret123"))

	for _, s := range stages {
		for _, arg := range s.Cmd.Args {
			assert.NotContains(t, arg, "secret123")
		}
	}
}
