// Package hosting provisions the private remote repository through the
// gh CLI. Repository creation stays delegated to gh; this package only
// shapes the invocation and interprets the result.
package hosting

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	gh "github.com/cli/go-gh/v2"
	"github.com/cli/go-gh/v2/pkg/auth"

	"github.com/vaultbak/vaultbak/internal/giturl"
)

// ErrNotAuthenticated indicates no GitHub credentials were found for
// the target host.
var ErrNotAuthenticated = errors.New("not authenticated with GitHub; run 'gh auth login'")

const defaultHost = "github.com"

// Provisioner creates remote repositories via the gh CLI. The exec and
// token lookups are injectable for tests.
type Provisioner struct {
	ghExec       func(ctx context.Context, args ...string) (bytes.Buffer, bytes.Buffer, error)
	tokenForHost func(host string) (string, string)
}

// NewProvisioner returns a provisioner backed by the installed gh binary.
func NewProvisioner() *Provisioner {
	return &Provisioner{
		ghExec:       gh.ExecContext,
		tokenForHost: auth.TokenForHost,
	}
}

// CreatePrivate creates a private repository named name, linked to the
// local repository at localDir as the given remote. It returns the
// SSH-form URL of the new repository.
func (p *Provisioner) CreatePrivate(ctx context.Context, name, localDir, remote string) (string, error) {
	if token, _ := p.tokenForHost(defaultHost); token == "" {
		return "", ErrNotAuthenticated
	}

	stdout, stderr, err := p.ghExec(ctx, "repo", "create", name,
		"--private",
		"--source", localDir,
		"--remote", remote,
	)
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("gh repo create failed: %s", msg)
		}

		return "", fmt.Errorf("gh repo create failed: %w", err)
	}

	// gh prints the repository URL on success.
	created := strings.TrimSpace(stdout.String())
	if created == "" {
		return "", fmt.Errorf("gh repo create returned no repository URL")
	}

	repo, err := giturl.ParseRepository(created, "")
	if err != nil {
		return "", fmt.Errorf("unexpected gh output %q: %w", created, err)
	}

	return repo.CloneURL("ssh"), nil
}
