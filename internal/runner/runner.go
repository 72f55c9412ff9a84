package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/converge/internal/checks"
	"github.com/roach88/converge/internal/journal"
	"github.com/roach88/converge/internal/suite"
)

// Runner seeks suites and journals their runs.
//
// The zero value is usable: runs are not recorded, tokens are UUIDv7, and
// logging goes to slog.Default(). Set Journal to persist traces.
type Runner struct {
	// Journal persists run traces. Nil disables recording.
	Journal *journal.Journal

	// Tokens allocates run tokens. Nil means UUIDv7.
	Tokens journal.TokenGenerator

	// Clock stamps trace events. Nil means a fresh clock per runner.
	// Share one clock across runners writing to the same journal.
	Clock *journal.Clock

	// Inputs are passed to every check's predicate as the input scope.
	Inputs checks.Inputs

	Logger *slog.Logger

	clockOnce sync.Once
}

// Result reports one run of one suite.
type Result struct {
	Suite     string
	Token     string
	Hash      string
	Converged bool

	// Attempts is the number of seeks performed. Once always reports 1;
	// Watch reports how many polls it took.
	Attempts int
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Runner) tokens() journal.TokenGenerator {
	if r.Tokens != nil {
		return r.Tokens
	}
	return journal.UUIDv7Generator{}
}

func (r *Runner) clock() *journal.Clock {
	r.clockOnce.Do(func() {
		if r.Clock == nil {
			r.Clock = journal.NewClock()
		}
	})
	return r.Clock
}

// Once seeks the suite a single time and records the run.
//
// A false Converged with a nil error means the suite did not reach its goal
// state within one corrective attempt per check; that is an outcome, not a
// failure. A non-nil error means a check defected or the journal could not
// be written, and the run's verdict is recorded as not converged.
func (r *Runner) Once(ctx context.Context, s suite.Suite) (Result, error) {
	hash, err := suite.Hash(s)
	if err != nil {
		return Result{Suite: s.Name}, fmt.Errorf("hash suite %q: %w", s.Name, err)
	}

	res := Result{Suite: s.Name, Token: r.tokens().Generate(), Hash: hash, Attempts: 1}
	clock := r.clock()

	var rec *journal.Recorder
	if r.Journal != nil {
		err := r.Journal.BeginRun(ctx, journal.Run{
			Token:      res.Token,
			SuiteName:  s.Name,
			SuiteHash:  hash,
			StartedSeq: clock.Next(),
		})
		if err != nil {
			return res, fmt.Errorf("begin run %s: %w", res.Token, err)
		}
		rec = journal.NewRecorder(r.Journal, clock, res.Token)
	}

	g, err := suite.Build(s, rec)
	if err != nil {
		if vErr := rec.Verdict(ctx, false); vErr != nil {
			r.logger().Warn("verdict not recorded", "run", res.Token, "error", vErr)
		}
		return res, fmt.Errorf("build suite %q: %w", s.Name, err)
	}

	log := r.logger().With("suite", s.Name, "run", res.Token)
	log.Info("seek started", "hash", hash)

	met, seekErr := g.Seek(ctx, r.Inputs)
	res.Converged = met

	if vErr := rec.Verdict(ctx, met); vErr != nil {
		if seekErr == nil {
			return res, fmt.Errorf("record verdict for run %s: %w", res.Token, vErr)
		}
		log.Warn("verdict not recorded", "error", vErr)
	}

	if seekErr != nil {
		log.Error("seek failed", "error", seekErr)
		return res, seekErr
	}
	log.Info("seek finished", "converged", met)
	return res, nil
}

// RunAll seeks every suite concurrently and returns a result per suite, in
// input order. The first defect cancels the remaining seeks and is returned;
// results for suites that completed before the cancellation are still filled.
func (r *Runner) RunAll(ctx context.Context, suites []suite.Suite) ([]Result, error) {
	results := make([]Result, len(suites))
	g, ctx := errgroup.WithContext(ctx)
	for i, s := range suites {
		i, s := i, s
		g.Go(func() error {
			res, err := r.Once(ctx, s)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
