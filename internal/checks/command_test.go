package checks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/converge/goal"
)

func TestCommand_ProbeSucceeds(t *testing.T) {
	g := Command(CommandParams{Probe: []string{"sh", "-c", "echo ok"}})

	state, err := g.Read(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, state.ExitCode)
	assert.Equal(t, "ok", state.Stdout)
	assert.True(t, g.Test(nil, state))
}

func TestCommand_ProbeFails(t *testing.T) {
	g := Command(CommandParams{Probe: []string{"sh", "-c", "exit 3"}})

	state, err := g.Read(context.Background(), nil)
	require.NoError(t, err, "nonzero exit is state, not an error")
	assert.Equal(t, 3, state.ExitCode)
	assert.False(t, g.Test(nil, state))
}

func TestCommand_MissingProbeIsIndeterminate(t *testing.T) {
	g := Command(CommandParams{Probe: []string{"definitely-not-installed-anywhere"}})

	_, err := g.Read(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, goal.IsIndeterminate(err))

	// And the engine turns it into an unmet outcome, not a defect.
	met, err := g.Seek(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, met)
}

func TestCommand_FixConverges(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "marker")
	g := Command(CommandParams{
		Probe: []string{"test", "-f", marker},
		Fix:   []string{"touch", marker},
	})

	met, err := g.Seek(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, met)

	_, err = os.Stat(marker)
	assert.NoError(t, err)
}

func TestCommand_FixFailureIsDefect(t *testing.T) {
	g := Command(CommandParams{
		Probe: []string{"sh", "-c", "exit 1"},
		Fix:   []string{"sh", "-c", "echo broken >&2; exit 9"},
	})

	_, err := g.Seek(context.Background(), nil)
	require.Error(t, err)
	assert.False(t, goal.IsIndeterminate(err))
	assert.Contains(t, err.Error(), "broken")
}

func TestCommand_Dir(t *testing.T) {
	dir := t.TempDir()
	g := Command(CommandParams{Probe: []string{"pwd"}, Dir: dir})

	state, err := g.Read(context.Background(), nil)
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, resolved, state.Stdout)
}
