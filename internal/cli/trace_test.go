package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/converge/internal/journal"
)

// seedJournal records one finished run with a small trace.
func seedJournal(t *testing.T) string {
	t.Helper()
	db := filepath.Join(t.TempDir(), "journal.db")
	j, err := journal.Open(db)
	require.NoError(t, err)
	defer j.Close()

	ctx := context.Background()
	clock := journal.NewClock()
	require.NoError(t, j.BeginRun(ctx, journal.Run{
		Token:      "run-seeded",
		SuiteName:  "files",
		SuiteHash:  "deadbeef",
		StartedSeq: clock.Next(),
	}))

	rec := journal.NewRecorder(j, clock, "run-seeded")
	require.NoError(t, rec.Read(ctx, "conf", `{"exists":false,"size":0}`))
	require.NoError(t, rec.Action(ctx, "conf", ""))
	require.NoError(t, rec.Outcome(ctx, "conf", true))
	require.NoError(t, rec.Verdict(ctx, true))
	return db
}

func TestTrace_ListRuns(t *testing.T) {
	db := seedJournal(t)

	out, err := execute(t, "trace", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "run-seeded")
	assert.Contains(t, out, "suite=files")
	assert.Contains(t, out, "converged")
}

func TestTrace_ShowRun(t *testing.T) {
	db := seedJournal(t)

	out, err := execute(t, "trace", "--db", db, "run-seeded")
	require.NoError(t, err)
	assert.Contains(t, out, "run run-seeded")
	assert.Contains(t, out, "hash=deadbeef")
	assert.Contains(t, out, "read")
	assert.Contains(t, out, "action")
	assert.Contains(t, out, "verdict")
	assert.Contains(t, out, `{"exists":false,"size":0}`)
}

func TestTrace_UnknownRunIsCommandError(t *testing.T) {
	db := seedJournal(t)

	_, err := execute(t, "trace", "--db", db, "no-such-run")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "not found")
}

func TestTrace_RequiresDatabaseFlag(t *testing.T) {
	_, err := execute(t, "trace")
	require.Error(t, err)
}

func TestTrace_JSONOutput(t *testing.T) {
	db := seedJournal(t)

	out, err := execute(t, "--format", "json", "trace", "--db", db, "run-seeded")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Token     string `json:"token"`
			Suite     string `json:"suite"`
			Converged *bool  `json:"converged"`
			Events    []struct {
				Seq   int64  `json:"seq"`
				Phase string `json:"phase"`
			} `json:"events"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "run-seeded", resp.Data.Token)
	require.NotNil(t, resp.Data.Converged)
	assert.True(t, *resp.Data.Converged)
	require.Len(t, resp.Data.Events, 4)
	assert.Equal(t, "verdict", resp.Data.Events[3].Phase)
}
