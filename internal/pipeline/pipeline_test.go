package pipeline

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shStage(t *testing.T, name, script string) *Stage {
	t.Helper()
	return NewStage(name, exec.Command("sh", "-c", script))
}

func TestRunStreamsThroughAllStages(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")

	p := New(
		shStage(t, "produce", "printf hello"),
		shStage(t, "pass", "cat"),
		shStage(t, "sink", "cat > "+out),
	)
	require.NoError(t, p.Run())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestRunCapturesFinalStdout(t *testing.T) {
	var buf bytes.Buffer

	last := shStage(t, "upper", "tr a-z A-Z")
	last.Cmd.Stdout = &buf

	p := New(shStage(t, "produce", "printf hello"), last)
	require.NoError(t, p.Run())
	assert.Equal(t, "HELLO", buf.String())
}

func TestRunReportsMiddleStageFailure(t *testing.T) {
	p := New(
		shStage(t, "produce", "printf hello"),
		shStage(t, "cipher", "echo boom >&2; exit 3"),
		shStage(t, "sink", "cat > /dev/null"),
	)

	err := p.Run()
	require.Error(t, err)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, "cipher", stageErr.Stage)
	assert.Contains(t, err.Error(), "boom")
}

func TestRunReportsEarlyStageFailureEvenWhenLastSucceeds(t *testing.T) {
	p := New(
		shStage(t, "archive", "printf partial; exit 1"),
		shStage(t, "sink", "cat > /dev/null"),
	)

	err := p.Run()
	require.Error(t, err)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, "archive", stageErr.Stage)
}

func TestRunJoinsMultipleStageFailures(t *testing.T) {
	p := New(
		shStage(t, "first", "exit 1"),
		shStage(t, "second", "cat; exit 2"),
	)

	err := p.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first")
	assert.Contains(t, err.Error(), "second")
}

func TestRunEmptyPipeline(t *testing.T) {
	assert.Error(t, New().Run())
}

func TestRunUnknownBinary(t *testing.T) {
	p := New(NewStage("cipher", exec.Command("definitely-not-a-real-binary-xyz")))

	err := p.Run()
	require.Error(t, err)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, "cipher", stageErr.Stage)
}

func TestWithPassphraseDeliversOnFD3(t *testing.T) {
	var buf bytes.Buffer

	s := shStage(t, "reader", "cat <&3")
	s.Cmd.Stdout = &buf
	require.NoError(t, s.WithPassphrase("secret123"))

	require.NoError(t, New(s).Run())
	assert.Equal(t, "secret123\n", buf.String())
}

func TestWithPassphraseNotInArgs(t *testing.T) {
	s := shStage(t, "reader", "cat <&3 > /dev/null")
	require.NoError(t, s.WithPassphrase("secret123"))

	for _, arg := range s.Cmd.Args {
		assert.NotContains(t, arg, "secret123")
	}
	require.NoError(t, New(s).Run())
}

func TestStageErrorUnwrap(t *testing.T) {
	inner := errors.New("exit status 3")
	err := &StageError{Stage: "cipher", err: inner}
	assert.ErrorIs(t, err, inner)
}
