// Package git wraps the git command-line client for the backup
// repository. All repository operations stay delegated to the installed
// git binary; the package only builds commands and interprets results.
package git

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Executor runs prepared commands. The default implementation delegates
// to os/exec; tests substitute a recording fake.
type Executor interface {
	// Run executes cmd and returns the captured stdout.
	Run(cmd *exec.Cmd) (string, error)
}

// ExecExecutor is the default Executor backed by os/exec.
type ExecExecutor struct{}

// Run implements Executor. Output streams already attached to the
// command (interactive pull/push) are left in place.
func (ExecExecutor) Run(cmd *exec.Cmd) (string, error) {
	var stdout, stderr bytes.Buffer

	if cmd.Stdout == nil {
		cmd.Stdout = &stdout
	}

	if cmd.Stderr == nil {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		return "", NewGitError(cmd.Args, stderr.String(), err)
	}

	return stdout.String(), nil
}

// Client runs git operations against a single repository directory.
type Client struct {
	RepoDir  string // repository working directory
	GitPath  string // path to the git executable
	Executor Executor
	Stderr   io.Writer
	Stdout   io.Writer
}

// NewClient creates a git client for the given repository directory.
func NewClient(repoDir string) *Client {
	gitPath, _ := exec.LookPath("git")

	return &Client{
		RepoDir:  repoDir,
		GitPath:  gitPath,
		Executor: ExecExecutor{},
		Stderr:   os.Stderr,
		Stdout:   os.Stdout,
	}
}

// Command creates a git command rooted in the repository directory.
func (c *Client) Command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.GitPath, args...)

	if c.RepoDir != "" {
		cmd.Dir = c.RepoDir
	}

	return cmd
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	return c.Executor.Run(c.Command(ctx, args...))
}

// Init initializes a repository in the client's directory.
func (c *Client) Init(ctx context.Context) error {
	if _, err := c.run(ctx, "init"); err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}

	return nil
}

// IsRepository checks whether the directory holds repository metadata.
func (c *Client) IsRepository(ctx context.Context) bool {
	_, err := c.run(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// CurrentBranch returns the name of the checked-out branch.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve current branch: %w", err)
	}

	return strings.TrimSpace(out), nil
}

// AddAll stages every change in the repository.
func (c *Client) AddAll(ctx context.Context) error {
	if _, err := c.run(ctx, "add", "-A"); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}

	return nil
}

// HasChanges reports whether the working tree differs from HEAD,
// including untracked files.
func (c *Client) HasChanges(ctx context.Context) (bool, error) {
	out, err := c.run(ctx, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to read repository status: %w", err)
	}

	return strings.TrimSpace(out) != "", nil
}

// Commit creates a commit with the given message.
func (c *Client) Commit(ctx context.Context, message string) error {
	if _, err := c.run(ctx, "commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

// HeadCommit returns the abbreviated hash of HEAD, or "" before the
// first commit.
func (c *Client) HeadCommit(ctx context.Context) string {
	out, err := c.run(ctx, "rev-parse", "--short", "HEAD")
	if err != nil {
		return ""
	}

	return strings.TrimSpace(out)
}

// RemoteURL returns the URL configured for the remote, or ErrNoRemote
// when the remote does not exist.
func (c *Client) RemoteURL(ctx context.Context, remote string) (string, error) {
	out, err := c.run(ctx, "remote", "get-url", remote)
	if err != nil {
		return "", ErrNoRemote
	}

	return strings.TrimSpace(out), nil
}

// AddRemote registers a remote with the given URL.
func (c *Client) AddRemote(ctx context.Context, remote, url string) error {
	if _, err := c.run(ctx, "remote", "add", remote, url); err != nil {
		return fmt.Errorf("failed to add remote %q: %w", remote, err)
	}

	return nil
}

// SetRemoteURL rewrites the URL of an existing remote.
func (c *Client) SetRemoteURL(ctx context.Context, remote, url string) error {
	if _, err := c.run(ctx, "remote", "set-url", remote, url); err != nil {
		return fmt.Errorf("failed to set remote URL: %w", err)
	}

	return nil
}

// Pull pulls the branch from the remote, streaming git's own output to
// the user.
func (c *Client) Pull(ctx context.Context, remote, branch string) error {
	cmd := c.Command(ctx, "pull", remote, branch)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if _, err := c.Executor.Run(cmd); err != nil {
		return fmt.Errorf("failed to pull %s %s: %w", remote, branch, err)
	}

	return nil
}

// Push pushes the branch to the remote, creating the upstream tracking
// link if absent.
func (c *Client) Push(ctx context.Context, remote, branch string) error {
	cmd := c.Command(ctx, "push", "-u", remote, branch)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if _, err := c.Executor.Run(cmd); err != nil {
		return fmt.Errorf("failed to push %s %s: %w", remote, branch, err)
	}

	return nil
}
