package cli

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/converge/internal/checks"
	"github.com/roach88/converge/internal/journal"
	"github.com/roach88/converge/internal/runner"
	"github.com/roach88/converge/internal/suite"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database    string
	Inputs      []string
	Watch       bool
	Interval    time.Duration
	MaxAttempts int

	// Tokens overrides the run token generator (for testing).
	Tokens journal.TokenGenerator
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <suites-dir>",
		Short: "Seek every suite toward its goal state",
		Long: `Seek every suite in the directory toward its goal state.

Each suite is sought once: every check is observed, tested, and corrected at
most once. With --watch the seek repeats until convergence or the attempt
budget runs out. With --db every run is journaled for later tracing.

Example:
  converge run ./suites
  converge run ./suites --db ./converge.db --input env=prod
  converge run ./suites --watch --interval 30s --max-attempts 10`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuites(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the journal database (omit to skip recording)")
	cmd.Flags().StringArrayVar(&opts.Inputs, "input", nil, "run-time input as key=value (repeatable; values parse as JSON when possible)")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "reseek until every suite converges")
	cmd.Flags().DurationVar(&opts.Interval, "interval", 10*time.Second, "pause between watch attempts")
	cmd.Flags().IntVar(&opts.MaxAttempts, "max-attempts", 0, "watch attempt budget per suite (0 = unbounded)")

	return cmd
}

func runSuites(opts *RunOptions, suitesDir string, cmd *cobra.Command) error {
	inputs, err := parseInputs(opts.Inputs)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --input", err)
	}

	suites, errs := suite.LoadDir(suitesDir, suite.LoadModeFailFast)
	if len(errs) > 0 {
		return WrapExitError(ExitCommandError, "failed to load suites", errs[0])
	}

	var j *journal.Journal
	if opts.Database != "" {
		j, err = journal.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer j.Close()
	}

	r := &runner.Runner{
		Journal: j,
		Tokens:  opts.Tokens,
		Inputs:  inputs,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var results []runner.Result
	if opts.Watch {
		watchOpts := runner.WatchOptions{Interval: opts.Interval, MaxAttempts: opts.MaxAttempts}
		for _, s := range suites {
			res, err := r.Watch(ctx, s, watchOpts)
			results = append(results, res)
			if err != nil {
				return seekError(s.Name, err)
			}
		}
	} else {
		results, err = r.RunAll(ctx, suites)
		if err != nil {
			return seekError("", err)
		}
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if err := out.Success(runReport(results)); err != nil {
		return err
	}

	for _, res := range results {
		if !res.Converged {
			return NewExitError(ExitNotConverged, fmt.Sprintf("suite %q did not converge", res.Suite))
		}
	}
	return nil
}

func seekError(suiteName string, err error) error {
	msg := "seek failed"
	if suiteName != "" {
		msg = fmt.Sprintf("seek of suite %q failed", suiteName)
	}
	return WrapExitError(ExitNotConverged, msg, err)
}

// runReport renders per-suite results for both output formats.
type runReport []runner.Result

func (r runReport) String() string {
	var b strings.Builder
	for _, res := range r {
		verdict := "converged"
		if !res.Converged {
			verdict = "not converged"
		}
		fmt.Fprintf(&b, "suite %s: %s", res.Suite, verdict)
		if res.Attempts > 1 {
			fmt.Fprintf(&b, " after %d attempts", res.Attempts)
		}
		if res.Token != "" {
			fmt.Fprintf(&b, " (run %s)", res.Token)
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r runReport) MarshalJSON() ([]byte, error) {
	type entry struct {
		Suite     string `json:"suite"`
		Token     string `json:"run_token,omitempty"`
		Hash      string `json:"suite_hash,omitempty"`
		Converged bool   `json:"converged"`
		Attempts  int    `json:"attempts"`
	}
	entries := make([]entry, len(r))
	for i, res := range r {
		entries[i] = entry{
			Suite:     res.Suite,
			Token:     res.Token,
			Hash:      res.Hash,
			Converged: res.Converged,
			Attempts:  res.Attempts,
		}
	}
	return json.Marshal(entries)
}

// parseInputs converts key=value pairs into run-time inputs. Values that
// parse as JSON keep their type; everything else stays a string.
func parseInputs(pairs []string) (checks.Inputs, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	inputs := make(checks.Inputs, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		var parsed any
		if err := json.Unmarshal([]byte(value), &parsed); err != nil {
			parsed = value
		}
		inputs[key] = parsed
	}
	return inputs, nil
}
