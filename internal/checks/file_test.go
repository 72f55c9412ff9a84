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

func TestFile_MissingFileIsUnmetState(t *testing.T) {
	g := File(FileParams{Path: filepath.Join(t.TempDir(), "absent.conf")})

	state, err := g.Read(context.Background(), nil)
	require.NoError(t, err, "absence is state, not the failure signal")
	assert.False(t, state.Exists)
	assert.False(t, g.Test(nil, state))
}

func TestFile_ExistingFileSatisfies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "present.conf")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	g := File(FileParams{Path: path})

	met, err := g.Seek(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, met)
}

func TestFile_ContentActionConverges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etc", "app.conf")
	g := File(FileParams{Path: path, Content: "port = 8080\n"})

	met, err := g.Seek(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, met, "one corrective write must converge")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "port = 8080\n", string(data))
}

func TestFile_ContentMismatchCorrected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.conf")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	g := File(FileParams{Path: path, Content: "fresh"})

	met, err := g.Seek(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, met)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(data))
}

func TestFile_MinSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.log")
	require.NoError(t, os.WriteFile(path, []byte("ab"), 0o644))

	g := File(FileParams{Path: path, MinSize: 10})

	met, err := g.Seek(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, met, "no action configured, undersized file stays unmet")
}

func TestFileSpec_CustomTest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "any.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	spec := FileSpec(FileParams{Path: path})
	spec.Test = func(_ Inputs, s FileState) bool { return s.Size > 100 }
	g := goal.New(spec)

	met, err := g.Seek(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, met)
}
