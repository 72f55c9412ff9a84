package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/converge/internal/journal"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace [run-token]",
		Short: "Inspect recorded runs",
		Long: `Inspect runs recorded in the journal.

Without a run token, lists every recorded run. With a token, prints the
run's full trace: every observation, corrective action, and verdict in
seek order.

Example:
  converge trace --db ./converge.db
  converge trace --db ./converge.db 01924f4a-89ab-7def-8123-456789abcdef`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listRuns(opts, cmd)
			}
			return showTrace(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the journal database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func listRuns(opts *TraceOptions, cmd *cobra.Command) error {
	j, err := journal.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer j.Close()

	runs, err := j.ListRuns(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	return out.Success(runList(runs))
}

func showTrace(opts *TraceOptions, token string, cmd *cobra.Command) error {
	j, err := journal.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer j.Close()

	run, err := j.ReadRun(cmd.Context(), token)
	if err != nil {
		if journal.IsNotFound(err) {
			return WrapExitError(ExitCommandError, fmt.Sprintf("run %s not found", token), err)
		}
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}
	events, err := j.ReadTrace(cmd.Context(), token)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read trace", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	return out.Success(traceView{Run: run, Events: events})
}

// runList renders the run index for both output formats.
type runList []journal.Run

func (l runList) String() string {
	if len(l) == 0 {
		return "no recorded runs"
	}
	var b strings.Builder
	for _, run := range l {
		fmt.Fprintf(&b, "%s  suite=%s  %s", run.Token, run.SuiteName, verdictWord(run.Converged))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (l runList) MarshalJSON() ([]byte, error) {
	return marshalRuns([]journal.Run(l))
}

// traceView renders one run and its events.
type traceView struct {
	Run    journal.Run
	Events []journal.Event
}

func (v traceView) MarshalJSON() ([]byte, error) {
	type eventEntry struct {
		Seq    int64  `json:"seq"`
		Phase  string `json:"phase"`
		Check  string `json:"check,omitempty"`
		Detail string `json:"detail,omitempty"`
		Met    *bool  `json:"met,omitempty"`
	}
	events := make([]eventEntry, len(v.Events))
	for i, ev := range v.Events {
		events[i] = eventEntry{
			Seq:    ev.Seq,
			Phase:  string(ev.Phase),
			Check:  ev.Check,
			Detail: ev.Detail,
			Met:    ev.Met,
		}
	}
	return json.Marshal(struct {
		Token     string       `json:"token"`
		Suite     string       `json:"suite"`
		Hash      string       `json:"hash"`
		Converged *bool        `json:"converged"`
		Events    []eventEntry `json:"events"`
	}{
		Token:     v.Run.Token,
		Suite:     v.Run.SuiteName,
		Hash:      v.Run.SuiteHash,
		Converged: v.Run.Converged,
		Events:    events,
	})
}

func (v traceView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s  suite=%s  hash=%s  %s\n",
		v.Run.Token, v.Run.SuiteName, v.Run.SuiteHash, verdictWord(v.Run.Converged))
	for _, ev := range v.Events {
		fmt.Fprintf(&b, "  %4d  %-7s", ev.Seq, ev.Phase)
		if ev.Check != "" {
			fmt.Fprintf(&b, "  check=%s", ev.Check)
		}
		if ev.Met != nil {
			fmt.Fprintf(&b, "  met=%v", *ev.Met)
		}
		if ev.Detail != "" {
			fmt.Fprintf(&b, "  %s", ev.Detail)
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func verdictWord(converged *bool) string {
	switch {
	case converged == nil:
		return "unfinished"
	case *converged:
		return "converged"
	default:
		return "not converged"
	}
}

func marshalRuns(runs []journal.Run) ([]byte, error) {
	type entry struct {
		Token     string `json:"token"`
		Suite     string `json:"suite"`
		Hash      string `json:"hash"`
		Converged *bool  `json:"converged"`
	}
	entries := make([]entry, len(runs))
	for i, run := range runs {
		entries[i] = entry{
			Token:     run.Token,
			Suite:     run.SuiteName,
			Hash:      run.SuiteHash,
			Converged: run.Converged,
		}
	}
	return json.Marshal(entries)
}
