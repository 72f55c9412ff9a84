package runner

import (
	"context"
	"time"

	"github.com/roach88/converge/internal/suite"
)

// WatchOptions controls repeated seeking.
type WatchOptions struct {
	// Interval is the pause between seeks. Zero means 10 seconds.
	Interval time.Duration

	// MaxAttempts bounds the number of seeks. Zero means unbounded: watch
	// until convergence or context cancellation.
	MaxAttempts int
}

const defaultWatchInterval = 10 * time.Second

// Watch seeks the suite repeatedly until it converges, the attempt budget is
// spent, or the context is cancelled. Each attempt is a full recorded run
// with its own token, so the journal keeps the whole history.
//
// Defects stop the watch immediately. Returns the last attempt's result with
// Attempts set to the total number of seeks performed.
func (r *Runner) Watch(ctx context.Context, s suite.Suite, opts WatchOptions) (Result, error) {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultWatchInterval
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()

	var res Result
	for attempt := 1; ; attempt++ {
		var err error
		res, err = r.Once(ctx, s)
		res.Attempts = attempt
		if err != nil || res.Converged {
			return res, err
		}
		if opts.MaxAttempts > 0 && attempt >= opts.MaxAttempts {
			return res, nil
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(interval)
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		case <-timer.C:
		}
	}
}
