// Package giturl normalizes git remote URLs and rewrites insecure
// transport forms to their SSH equivalents.
package giturl

import (
	"fmt"
	"net/url"
	"strings"
)

// IsURL checks if the given string is a git URL
func IsURL(u string) bool {
	return strings.HasPrefix(u, "git@") || isSupportedProtocol(u)
}

func isSupportedProtocol(u string) bool {
	return strings.HasPrefix(u, "ssh:") ||
		strings.HasPrefix(u, "git+ssh:") ||
		strings.HasPrefix(u, "git:") ||
		strings.HasPrefix(u, "http:") ||
		strings.HasPrefix(u, "git+https:") ||
		strings.HasPrefix(u, "https:")
}

func isPossibleProtocol(u string) bool {
	return isSupportedProtocol(u) ||
		strings.HasPrefix(u, "ftp:") ||
		strings.HasPrefix(u, "ftps:") ||
		strings.HasPrefix(u, "file:")
}

// Parse normalizes git remote urls, including scp-like syntax (git@github.com:owner/repo)
func Parse(rawURL string) (*url.URL, error) {
	if !isPossibleProtocol(rawURL) &&
		strings.ContainsRune(rawURL, ':') &&
		// not a Windows path
		!strings.ContainsRune(rawURL, '\\') {
		// support scp-like syntax for ssh protocol
		rawURL = "ssh://" + strings.Replace(rawURL, ":", "/", 1)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	switch u.Scheme {
	case "git+https":
		u.Scheme = "https"
	case "git+ssh":
		u.Scheme = "ssh"
	}

	if u.Scheme != "ssh" {
		return u, nil
	}

	if strings.HasPrefix(u.Path, "//") {
		u.Path = strings.TrimPrefix(u.Path, "/")
	}

	u.Host = strings.TrimSuffix(u.Host, ":"+u.Port())

	return u, nil
}

// IsWeb reports whether the remote uses an http or https transport, the
// forms that get rewritten to SSH before a push.
func IsWeb(rawURL string) bool {
	u, err := Parse(rawURL)
	if err != nil {
		return false
	}

	return u.Scheme == "http" || u.Scheme == "https"
}

// ToSSH rewrites an http(s) remote URL to the equivalent scp-like SSH
// form (git@host:owner/repo.git). URLs already in an SSH form are
// returned unchanged.
func ToSSH(rawURL string) (string, error) {
	u, err := Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid remote URL %q: %w", rawURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return rawURL, nil
	}

	owner, repo, err := ExtractOwnerRepo(u)
	if err != nil {
		return "", fmt.Errorf("cannot rewrite remote URL %q: %w", rawURL, err)
	}

	return fmt.Sprintf("git@%s:%s/%s.git", u.Hostname(), owner, repo), nil
}

// ExtractOwnerRepo extracts owner and repo name from a URL
func ExtractOwnerRepo(u *url.URL) (owner, repo string, err error) {
	parts := strings.SplitN(strings.Trim(u.Path, "/"), "/", 3)
	if len(parts) < 2 {
		return "", "", &url.Error{Op: "parse", URL: u.String(), Err: errInvalidPath}
	}

	owner = parts[0]
	repo = strings.TrimSuffix(parts[1], ".git")

	return owner, repo, nil
}

var errInvalidPath = &invalidPathError{}

type invalidPathError struct{}

func (e *invalidPathError) Error() string {
	return "invalid path: expected owner/repo"
}
