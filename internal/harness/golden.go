package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/converge/internal/journal"
	"github.com/roach88/converge/internal/suite"
)

// TraceSnapshot is the canonical rendering of one scenario run: the verdict
// plus every journaled event, with the working directory folded back to
// @workdir@ so the bytes never depend on where the scenario ran.
type TraceSnapshot struct {
	Scenario  string
	RunToken  string
	Converged bool
	Trace     []journal.Event
}

// Render serializes the snapshot as canonical JSON. Details that parse as
// JSON are embedded structurally so key order inside them is canonical too.
func (s *TraceSnapshot) Render(workdir string) ([]byte, error) {
	events := make([]any, len(s.Trace))
	for i, ev := range s.Trace {
		m := map[string]any{
			"seq":   ev.Seq,
			"phase": string(ev.Phase),
		}
		if ev.Check != "" {
			m["check"] = ev.Check
		}
		if ev.Detail != "" {
			m["detail"] = detailValue(ev.Detail, workdir)
		}
		if ev.Met != nil {
			m["met"] = *ev.Met
		}
		events[i] = m
	}

	return suite.MarshalCanonical(map[string]any{
		"scenario":  s.Scenario,
		"run_token": s.RunToken,
		"converged": s.Converged,
		"trace":     events,
	})
}

func detailValue(detail, workdir string) any {
	if workdir != "" {
		detail = strings.ReplaceAll(detail, workdir, workdirToken)
	}
	var parsed any
	if err := json.Unmarshal([]byte(detail), &parsed); err != nil || parsed == nil {
		return detail
	}
	return parsed
}

// RunWithGolden executes a scenario in a fresh temp directory, checks the
// verdict against the scenario's expectation, and compares the rendered
// trace with testdata/golden/{name}.golden.
//
// Regenerate goldens with:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, sc *Scenario) error {
	t.Helper()

	workdir := t.TempDir()
	res, err := Run(context.Background(), sc, workdir)
	if err != nil {
		return err
	}
	if res.Converged != sc.ExpectConverged {
		return fmt.Errorf("scenario %q: converged=%v, expected %v", sc.Name, res.Converged, sc.ExpectConverged)
	}

	snapshot := TraceSnapshot{
		Scenario:  sc.Name,
		RunToken:  res.Token,
		Converged: res.Converged,
		Trace:     res.Trace,
	}
	rendered, err := snapshot.Render(workdir)
	if err != nil {
		return fmt.Errorf("render trace: %w", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, sc.Name, rendered)
	return nil
}
