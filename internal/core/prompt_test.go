package core

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scriptedPrompter(lines ...string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	p := NewPrompterIO(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)

	return p, &out
}

func TestConfirmedPassphraseAcceptsMatchingPair(t *testing.T) {
	p, _ := scriptedPrompter("secret123", "secret123")

	got, err := p.ConfirmedPassphrase()
	require.NoError(t, err)
	assert.Equal(t, "secret123", got)
}

func TestConfirmedPassphraseRejectsMismatchThenAccepts(t *testing.T) {
	p, out := scriptedPrompter("secret123", "oops", "secret123", "secret123")

	got, err := p.ConfirmedPassphrase()
	require.NoError(t, err)
	assert.Equal(t, "secret123", got)
	assert.Contains(t, out.String(), "do not match")
}

func TestConfirmedPassphraseRejectsEmpty(t *testing.T) {
	p, out := scriptedPrompter("", "", "secret123", "secret123")

	got, err := p.ConfirmedPassphrase()
	require.NoError(t, err)
	assert.Equal(t, "secret123", got)
	assert.Contains(t, out.String(), "must not be empty")
}

func TestConfirmedPassphraseEOF(t *testing.T) {
	p, _ := scriptedPrompter("secret123")

	_, err := p.ConfirmedPassphrase()
	assert.Error(t, err)
}

func TestConfirmDefaults(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "empty means yes", input: "", want: true},
		{name: "y", input: "y", want: true},
		{name: "yes", input: "yes", want: true},
		{name: "uppercase Y", input: "Y", want: true},
		{name: "n", input: "n", want: false},
		{name: "garbage", input: "maybe", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := scriptedPrompter(tt.input)
			assert.Equal(t, tt.want, p.Confirm("Proceed?"))
		})
	}
}

func TestExistingDirRepromptsUntilValid(t *testing.T) {
	dir := t.TempDir()
	p, out := scriptedPrompter("/definitely/not/there", "", dir)

	got, err := p.ExistingDir("Vault: ")
	require.NoError(t, err)
	assert.Equal(t, dir, got)
	assert.Contains(t, out.String(), "not an existing directory")
}

func TestLineTrimsWhitespace(t *testing.T) {
	p, _ := scriptedPrompter("  /tmp/vault  ")

	got, err := p.Line("> ")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/vault", got)
}

func TestExpandPathHome(t *testing.T) {
	got, err := ExpandPath("~/vault")
	require.NoError(t, err)
	assert.NotContains(t, got, "~")
	assert.True(t, strings.HasSuffix(got, "/vault"))
}

func TestExpandPathEmpty(t *testing.T) {
	_, err := ExpandPath("")
	assert.Error(t, err)
}
