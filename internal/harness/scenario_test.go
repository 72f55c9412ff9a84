package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "suite.cue"), []byte(`suite: {name: "s", checks: []}`), 0o644))
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenarioFile(t, `
name: sample
description: loads
suite: suite.cue
inputs:
  limit: 3
expect_converged: true
`)

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "sample", sc.Name)
	assert.True(t, sc.ExpectConverged)
	assert.Equal(t, 3, sc.Inputs["limit"])
	assert.True(t, filepath.IsAbs(sc.Suite), "suite path resolves against the scenario file")
}

func TestLoadScenario_UnknownFieldRejected(t *testing.T) {
	path := writeScenarioFile(t, `
name: sample
suite: suite.cue
expects_converged: true
`)

	_, err := LoadScenario(path)
	require.Error(t, err, "typoed field names must not be dropped silently")
}

func TestLoadScenario_MissingSuiteFile(t *testing.T) {
	path := writeScenarioFile(t, `
name: sample
suite: nope.cue
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "suite file")
}

func TestLoadScenario_AbsoluteSetupPathRejected(t *testing.T) {
	path := writeScenarioFile(t, `
name: sample
suite: suite.cue
setup:
  - path: /etc/passwd
    content: nope
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relative")
}
