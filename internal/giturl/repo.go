package giturl

import (
	"fmt"
	"strings"
)

const defaultHost = "github.com"

// Repository represents a remote repository with owner, name, and host
type Repository struct {
	Owner string
	Name  string
	Host  string
}

// CloneURL returns the clone URL for the repository using the specified protocol
func (r *Repository) CloneURL(protocol string) string {
	if protocol == "ssh" {
		return fmt.Sprintf("git@%s:%s/%s.git", r.Host, r.Owner, r.Name)
	}

	return fmt.Sprintf("https://%s/%s/%s.git", r.Host, r.Owner, r.Name)
}

// ParseRepository parses a repository string into a Repository struct.
// Supports multiple formats:
//   - "repo" (requires currentUser to resolve to currentUser/repo)
//   - "owner/repo"
//   - "https://github.com/owner/repo"
//   - "git@github.com:owner/repo.git"
func ParseRepository(arg string, currentUser string) (*Repository, error) {
	isURL := strings.Contains(arg, ":") && !strings.Contains(arg, "\\")

	if isURL {
		return parseRepositoryFromURL(arg)
	}

	if strings.Contains(arg, "/") {
		return parseRepositoryFromFullName(arg)
	}

	if currentUser == "" {
		return nil, fmt.Errorf("cannot resolve repository %q: no authenticated user", arg)
	}

	return &Repository{
		Owner: currentUser,
		Name:  arg,
		Host:  defaultHost,
	}, nil
}

func parseRepositoryFromURL(rawURL string) (*Repository, error) {
	u, err := Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	owner, name, err := ExtractOwnerRepo(u)
	if err != nil {
		return nil, fmt.Errorf("invalid repository URL %q: %w", rawURL, err)
	}

	host := u.Hostname()
	if host == "" {
		host = defaultHost
	}

	return &Repository{
		Owner: owner,
		Name:  name,
		Host:  strings.ToLower(strings.TrimPrefix(host, "www.")),
	}, nil
}

func parseRepositoryFromFullName(fullName string) (*Repository, error) {
	// Handle HOST/OWNER/REPO format
	parts := strings.Split(fullName, "/")
	switch len(parts) {
	case 2:
		return &Repository{
			Owner: parts[0],
			Name:  parts[1],
			Host:  defaultHost,
		}, nil
	case 3:
		return &Repository{
			Owner: parts[1],
			Name:  parts[2],
			Host:  strings.ToLower(strings.TrimPrefix(parts[0], "www.")),
		}, nil
	default:
		return nil, fmt.Errorf("invalid repository format %q: expected owner/repo or host/owner/repo", fullName)
	}
}
