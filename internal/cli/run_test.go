package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSuite writes one suite CUE file into its own directory and returns
// that directory.
func writeSuite(t *testing.T, source string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "suite.cue"), []byte(source), 0o644))
	return dir
}

func convergingSuite(t *testing.T) (suitesDir, workDir string) {
	t.Helper()
	workDir = t.TempDir()
	suitesDir = writeSuite(t, fmt.Sprintf(`suite: {
	name: "files"
	checks: [{
		name: "conf"
		kind: "file"
		file: {path: "%s/app.conf", content: "port = 8080\n"}
	}]
}`, workDir))
	return suitesDir, workDir
}

func TestRun_Converges(t *testing.T) {
	suitesDir, workDir := convergingSuite(t)

	out, err := execute(t, "run", suitesDir)
	require.NoError(t, err)
	assert.Contains(t, out, "suite files: converged")
	assert.FileExists(t, filepath.Join(workDir, "app.conf"))
}

func TestRun_NotConvergedExitCode(t *testing.T) {
	suitesDir := writeSuite(t, fmt.Sprintf(`suite: {
	name: "absent"
	checks: [{
		name: "gone"
		kind: "file"
		file: path: "%s/gone"
	}]
}`, t.TempDir()))

	out, err := execute(t, "run", suitesDir)
	require.Error(t, err)
	assert.Equal(t, ExitNotConverged, GetExitCode(err))
	assert.Contains(t, out, "suite absent: not converged")
}

func TestRun_MissingDirIsCommandError(t *testing.T) {
	_, err := execute(t, "run", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRun_RecordsToJournal(t *testing.T) {
	suitesDir, _ := convergingSuite(t)
	db := filepath.Join(t.TempDir(), "journal.db")

	_, err := execute(t, "run", suitesDir, "--db", db)
	require.NoError(t, err)

	out, err := execute(t, "trace", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "suite=files")
	assert.Contains(t, out, "converged")
}

func TestRun_JSONOutput(t *testing.T) {
	suitesDir, _ := convergingSuite(t)

	out, err := execute(t, "--format", "json", "run", suitesDir)
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   []struct {
			Suite     string `json:"suite"`
			Converged bool   `json:"converged"`
			Attempts  int    `json:"attempts"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "files", resp.Data[0].Suite)
	assert.True(t, resp.Data[0].Converged)
	assert.Equal(t, 1, resp.Data[0].Attempts)
}

func TestRun_WatchConverges(t *testing.T) {
	counter := filepath.Join(t.TempDir(), "counter")
	suitesDir := writeSuite(t, fmt.Sprintf(`suite: {
	name: "stubborn"
	checks: [{
		name: "two-lines"
		kind: "command"
		command: {
			probe: ["sh", "-c", "test \"$(wc -l < %s)\" -ge 2"]
			fix: ["sh", "-c", "echo x >> %s"]
		}
	}]
}`, counter, counter))

	out, err := execute(t, "run", suitesDir, "--watch", "--interval", "1ms", "--max-attempts", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "suite stubborn: converged after 2 attempts")
}

func TestRun_InputsReachPredicates(t *testing.T) {
	suitesDir := writeSuite(t, `suite: {
	name: "probe"
	checks: [{
		name: "exit-matches"
		kind: "command"
		command: probe: ["true"]
		test: "state.exit_code == input.want"
	}]
}`)

	_, err := execute(t, "run", suitesDir, "--input", "want=0")
	require.NoError(t, err)

	_, err = execute(t, "run", suitesDir, "--input", "want=1")
	require.Error(t, err)
	assert.Equal(t, ExitNotConverged, GetExitCode(err))
}

func TestParseInputs(t *testing.T) {
	inputs, err := parseInputs([]string{"count=3", "flag=true", "name=web", "quoted=\"5\""})
	require.NoError(t, err)
	assert.Equal(t, float64(3), inputs["count"])
	assert.Equal(t, true, inputs["flag"])
	assert.Equal(t, "web", inputs["name"])
	assert.Equal(t, "5", inputs["quoted"])

	_, err = parseInputs([]string{"novalue"})
	require.Error(t, err)

	inputs, err = parseInputs(nil)
	require.NoError(t, err)
	assert.Nil(t, inputs)
}
