package core

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// Prompter reads interactive answers from an injected input source so
// tests can script entire conversations.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer

	// readSecret reads a passphrase without echo. Defaults to
	// term.ReadPassword on a terminal with a plain line read otherwise.
	readSecret func() (string, error)
}

// NewPrompter returns a prompter bound to stdin/stderr.
func NewPrompter() *Prompter {
	p := NewPrompterIO(os.Stdin, os.Stderr)
	p.readSecret = readTerminalSecret(p)

	return p
}

// NewPrompterIO returns a prompter over arbitrary streams. Secrets are
// read as plain lines, which is what scripted tests want.
func NewPrompterIO(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
	p.readSecret = p.line

	return p
}

func readTerminalSecret(p *Prompter) func() (string, error) {
	return func() (string, error) {
		fd := int(syscall.Stdin)
		if !term.IsTerminal(fd) {
			return p.line()
		}

		secret, err := term.ReadPassword(fd)
		_, _ = fmt.Fprintln(p.out)

		if err != nil {
			return "", err
		}

		return string(secret), nil
	}
}

func (p *Prompter) line() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}

		return "", io.EOF
	}

	return p.in.Text(), nil
}

// Line prints prompt and reads one line of input.
func (p *Prompter) Line(prompt string) (string, error) {
	_, _ = fmt.Fprint(p.out, prompt)

	text, err := p.line()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

// Confirm asks a yes/no question. Empty input means yes.
func (p *Prompter) Confirm(prompt string) bool {
	answer, err := p.Line(prompt + " [Y/n]: ")
	if err != nil {
		return false
	}

	answer = strings.ToLower(answer)

	return answer == "" || answer == "y" || answer == "yes"
}

// Passphrase prints prompt and reads a secret without echo.
func (p *Prompter) Passphrase(prompt string) (string, error) {
	_, _ = fmt.Fprint(p.out, prompt)
	return p.readSecret()
}

// ConfirmedPassphrase prompts for a passphrase and a confirmation,
// repeating until both entries match and are non-empty.
func (p *Prompter) ConfirmedPassphrase() (string, error) {
	for {
		first, err := p.Passphrase("Passphrase: ")
		if err != nil {
			return "", err
		}

		second, err := p.Passphrase("Confirm passphrase: ")
		if err != nil {
			return "", err
		}

		if first == "" {
			_, _ = fmt.Fprintln(p.out, "Passphrase must not be empty. Try again.")
			continue
		}

		if first != second {
			_, _ = fmt.Fprintln(p.out, "Passphrases do not match. Try again.")
			continue
		}

		return first, nil
	}
}

// ExistingDir prompts until the user names a directory that exists,
// expanding a leading ~ and returning the absolute path.
func (p *Prompter) ExistingDir(prompt string) (string, error) {
	for {
		answer, err := p.Line(prompt)
		if err != nil {
			return "", err
		}

		if answer == "" {
			_, _ = fmt.Fprintln(p.out, "Path must not be empty.")
			continue
		}

		path, err := ExpandPath(answer)
		if err != nil {
			_, _ = fmt.Fprintf(p.out, "Invalid path: %v\n", err)
			continue
		}

		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			_, _ = fmt.Fprintf(p.out, "%s is not an existing directory.\n", path)
			continue
		}

		return path, nil
	}
}

// ExpandPath expands ~ to the user's home directory and returns an absolute path
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return "", fmt.Errorf("path is empty")
	}

	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}

		path = filepath.Join(home, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	return absPath, nil
}
