// Package deps verifies the external programs vaultbak shells out to are
// resolvable before any flow runs.
package deps

import (
	"fmt"
	"os/exec"
	"runtime"
	"sort"
)

// Required lists every external tool the flows invoke.
var Required = []string{"git", "gh", "tar", "gzip", "gpg"}

// hints maps tool name to install hints keyed by GOOS.
var hints = map[string]map[string]string{
	"git":  {"linux": "sudo apt install git", "darwin": "brew install git"},
	"gh":   {"linux": "sudo apt install gh", "darwin": "brew install gh"},
	"tar":  {"linux": "sudo apt install tar", "darwin": "preinstalled with macOS"},
	"gzip": {"linux": "sudo apt install gzip", "darwin": "preinstalled with macOS"},
	"gpg":  {"linux": "sudo apt install gnupg", "darwin": "brew install gnupg"},
}

// Checker resolves tools on the execution search path. LookPath is
// injectable so tests can simulate missing tools.
type Checker struct {
	LookPath func(name string) (string, error)
}

// NewChecker returns a checker backed by exec.LookPath.
func NewChecker() *Checker {
	return &Checker{LookPath: exec.LookPath}
}

// Missing returns the required tools that cannot be resolved, sorted.
func (c *Checker) Missing() []string {
	var missing []string

	for _, tool := range Required {
		if _, err := c.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}

	sort.Strings(missing)

	return missing
}

// Resolve returns the path each required tool resolves to, with an empty
// string for tools that are missing.
func (c *Checker) Resolve() map[string]string {
	resolved := make(map[string]string, len(Required))

	for _, tool := range Required {
		path, err := c.LookPath(tool)
		if err != nil {
			path = ""
		}

		resolved[tool] = path
	}

	return resolved
}

// Hint returns an installation hint for the tool on the current platform.
func Hint(tool string) string {
	byOS, ok := hints[tool]
	if !ok {
		return ""
	}

	if hint, ok := byOS[runtime.GOOS]; ok {
		return hint
	}

	return byOS["linux"]
}

// FormatMissing renders the abort message printed when required tools are
// absent.
func FormatMissing(missing []string) string {
	msg := "missing required programs:\n"
	for _, tool := range missing {
		msg += fmt.Sprintf("  %-5s %s\n", tool, Hint(tool))
	}

	return msg
}
