// Package pipeline chains external commands stdout-to-stdin so a vault
// snapshot streams through archive, compression, and cipher stages
// without an intermediate plaintext file ever touching disk.
package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Stage is a single external command in a pipeline.
type Stage struct {
	Name string
	Cmd  *exec.Cmd

	stderr  bytes.Buffer
	closers []*os.File
}

// NewStage wraps a prepared command under a short display name.
func NewStage(name string, cmd *exec.Cmd) *Stage {
	return &Stage{Name: name, Cmd: cmd}
}

// WithPassphrase arranges for the passphrase to reach the command on
// file descriptor 3, keeping it out of argv and the environment. The
// command must read it with a flag such as gpg's --passphrase-fd 3.
func (s *Stage) WithPassphrase(passphrase string) error {
	r, w, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("failed to create passphrase pipe: %w", err)
	}

	// A passphrase fits the kernel pipe buffer, so the write completes
	// before the child starts reading.
	if _, err := w.WriteString(passphrase + "\n"); err != nil {
		_ = r.Close()
		_ = w.Close()

		return fmt.Errorf("failed to write passphrase: %w", err)
	}

	_ = w.Close()

	s.Cmd.ExtraFiles = append(s.Cmd.ExtraFiles, r)
	s.closers = append(s.closers, r)

	return nil
}

// StageError reports which stage of a pipeline failed.
type StageError struct {
	Stage  string
	Stderr string
	err    error
}

func (e *StageError) Error() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return fmt.Sprintf("%s failed: %s", e.Stage, msg)
	}

	return fmt.Sprintf("%s failed: %v", e.Stage, e.err)
}

func (e *StageError) Unwrap() error {
	return e.err
}

// Pipeline is an ordered chain of stages.
type Pipeline struct {
	stages []*Stage
}

// New builds a pipeline from the given stages in order.
func New(stages ...*Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run connects each stage's stdout to the next stage's stdin, starts
// all stages, and waits for every one of them. A failure in any stage
// is reported, not just the last; errors from multiple stages are
// joined.
func (p *Pipeline) Run() error {
	if len(p.stages) == 0 {
		return errors.New("empty pipeline")
	}

	var parentEnds []*os.File

	for i := 0; i < len(p.stages)-1; i++ {
		r, w, err := os.Pipe()
		if err != nil {
			closeAll(parentEnds)

			return fmt.Errorf("failed to create pipe: %w", err)
		}

		p.stages[i].Cmd.Stdout = w
		p.stages[i+1].Cmd.Stdin = r
		parentEnds = append(parentEnds, r, w)
	}

	for _, s := range p.stages {
		if s.Cmd.Stderr == nil {
			s.Cmd.Stderr = &s.stderr
		}
	}

	var started []*Stage

	for _, s := range p.stages {
		if err := s.Cmd.Start(); err != nil {
			// Release the descriptors so already-started stages see EOF
			// and exit instead of blocking forever.
			closeAll(parentEnds)

			for _, prev := range started {
				_ = prev.Cmd.Wait()
			}

			return &StageError{Stage: s.Name, err: err}
		}

		started = append(started, s)
	}

	// The children own duplicated descriptors now; the parent copies
	// must go away or downstream stages never see EOF.
	closeAll(parentEnds)

	for _, s := range p.stages {
		closeAll(s.closers)
	}

	var errs []error

	for _, s := range p.stages {
		if err := s.Cmd.Wait(); err != nil {
			errs = append(errs, &StageError{Stage: s.Name, Stderr: s.stderr.String(), err: err})
		}
	}

	return errors.Join(errs...)
}

func closeAll(files []*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}
