package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/converge/internal/journal"
	"github.com/roach88/converge/internal/runner"
	"github.com/roach88/converge/internal/suite"
	"github.com/roach88/converge/internal/testutil"
)

// workdirToken is the placeholder suite sources use for the scenario's
// working directory.
const workdirToken = "@workdir@"

// Result is the outcome of one scenario execution.
type Result struct {
	Token     string
	Converged bool
	Run       journal.Run
	Trace     []journal.Event
}

// Run executes a scenario inside workdir and returns its recorded trace.
//
// The working directory must be fresh per run: the journal lives there and a
// reused directory would collide on the fixed run token. Setup files are
// written first, then the suite source is compiled with @workdir@ expanded,
// sought once through the runner, and the trace read back.
func Run(ctx context.Context, sc *Scenario, workdir string) (*Result, error) {
	for _, f := range sc.Setup {
		path := filepath.Join(workdir, f.Path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("setup %s: %w", f.Path, err)
		}
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			return nil, fmt.Errorf("setup %s: %w", f.Path, err)
		}
	}

	source, err := os.ReadFile(sc.Suite)
	if err != nil {
		return nil, fmt.Errorf("read suite: %w", err)
	}
	source = []byte(strings.ReplaceAll(string(source), workdirToken, workdir))

	s, errs := suite.LoadBytes(sc.Suite, source)
	if len(errs) > 0 {
		return nil, fmt.Errorf("load suite %s: %w", sc.Suite, errs[0])
	}

	j, err := journal.Open(filepath.Join(workdir, "journal.db"))
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	r := &runner.Runner{
		Journal: j,
		Tokens:  testutil.NewFixedTokenGenerator(sc.RunToken),
		Clock:   journal.NewClock(),
		Inputs:  sc.Inputs,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	res, err := r.Once(ctx, *s)
	if err != nil {
		return nil, fmt.Errorf("seek suite %q: %w", s.Name, err)
	}

	run, err := j.ReadRun(ctx, res.Token)
	if err != nil {
		return nil, fmt.Errorf("read run: %w", err)
	}
	trace, err := j.ReadTrace(ctx, res.Token)
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}

	return &Result{
		Token:     res.Token,
		Converged: res.Converged,
		Run:       run,
		Trace:     trace,
	}, nil
}
