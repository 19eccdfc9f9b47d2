package watch

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LegacyCodeHQ/styleimport/internal/app"
)

func TestWatchCommand_RequiresEnvironment(t *testing.T) {
	cmd := NewCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--out-dir", t.TempDir()})

	assert.Error(t, cmd.Execute())
}

func TestWatchCommand_RequiresOutDir(t *testing.T) {
	cmd := NewCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(nil)
	cmd.SetContext(app.ContextWithEnv(context.Background(), &app.Env{}))

	assert.ErrorIs(t, cmd.Execute(), errNoOutDir)
}

func TestWatchCommand_RejectsArguments(t *testing.T) {
	cmd := NewCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"src"})

	assert.Error(t, cmd.Execute())
}
