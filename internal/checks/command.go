package checks

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/roach88/converge/goal"
)

// CommandParams configures a probe-command check.
type CommandParams struct {
	// Probe is the command (argv) whose exit status observes the condition.
	// Required, at least one element.
	Probe []string

	// Fix is an optional corrective command to run when the probe fails.
	Fix []string

	// Dir is the working directory for both commands; empty means inherit.
	Dir string
}

// CommandState is the observed result of running the probe command.
type CommandState struct {
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout,omitempty"`
}

// CommandSpec builds the goal spec for a probe-command check. A probe binary
// that cannot be found yields the failure signal: the condition cannot be
// observed at all, which is distinct from the probe running and failing.
func CommandSpec(p CommandParams) goal.Spec[Inputs, CommandState] {
	spec := goal.Spec[Inputs, CommandState]{
		Read: func(ctx context.Context, _ Inputs) (CommandState, error) {
			cmd := exec.CommandContext(ctx, p.Probe[0], p.Probe[1:]...)
			cmd.Dir = p.Dir
			out, err := cmd.Output()

			var exitErr *exec.ExitError
			switch {
			case err == nil:
				return CommandState{Stdout: strings.TrimSpace(string(out))}, nil
			case errors.As(err, &exitErr):
				return CommandState{
					ExitCode: exitErr.ExitCode(),
					Stdout:   strings.TrimSpace(string(out)),
				}, nil
			case errors.Is(err, exec.ErrNotFound):
				return CommandState{}, goal.Indeterminatef("probe %s not found", p.Probe[0])
			default:
				return CommandState{}, fmt.Errorf("run probe %s: %w", p.Probe[0], err)
			}
		},
		Test: func(_ Inputs, s CommandState) bool {
			return s.ExitCode == 0
		},
	}

	if len(p.Fix) > 0 {
		spec.Action = func(ctx context.Context, _ Inputs) error {
			cmd := exec.CommandContext(ctx, p.Fix[0], p.Fix[1:]...)
			cmd.Dir = p.Dir
			if out, err := cmd.CombinedOutput(); err != nil {
				return fmt.Errorf("run fix %s: %w (output: %s)", p.Fix[0], err, strings.TrimSpace(string(out)))
			}
			return nil
		}
	}

	return spec
}

// Command builds a probe-command goal with the default exit-status-zero test.
func Command(p CommandParams) *goal.Goal[Inputs, CommandState] {
	return goal.New(CommandSpec(p))
}
