// Package runner drives suite seeks and records their runs.
//
// The runner owns run lifecycle: it hashes the suite, allocates a run token,
// opens the run in the journal, builds the suite into a seekable goal, seeks
// it once (or repeatedly under Watch), and finishes the run with a verdict.
// Retry policy lives here, not in the goals themselves: a single seek makes
// at most one corrective attempt per check, and Watch decides whether and
// when to try again.
package runner
