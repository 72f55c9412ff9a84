package suite

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/roach88/converge/goal"
	"github.com/roach88/converge/internal/checks"
	"github.com/roach88/converge/internal/journal"
)

// Build compiles a suite into one seekable goal over the run-time inputs.
//
// Each check becomes a goal of its kind; a check's test expression, when
// present, replaces the kind's default test; before/after check lists attach
// as prerequisite/postcondition goals (grouped with the exhaustive AND when
// there is more than one). The suite strategy combines the top-level check
// outcomes.
//
// rec may be nil; when set, every read, corrective action, and per-check
// outcome is journaled as the seek progresses.
func Build(s Suite, rec *journal.Recorder) (goal.Seeker[checks.Inputs], error) {
	members := make([]goal.Seeker[checks.Inputs], 0, len(s.Checks))
	for i, c := range s.Checks {
		g, err := buildCheck(c, rec)
		if err != nil {
			return nil, fmt.Errorf("checks[%d] (%s): %w", i, c.Name, err)
		}
		members = append(members, g)
	}

	switch s.Strategy {
	case StrategyAnd:
		return goal.And(members...), nil
	case StrategyOr:
		return goal.Or(members...), nil
	case StrategyAny:
		return goal.Any(members...), nil
	case StrategyAll, "":
		return goal.All(members...), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", s.Strategy)
	}
}

func buildCheck(c Check, rec *journal.Recorder) (goal.Seeker[checks.Inputs], error) {
	switch c.Kind {
	case "file":
		if c.File == nil {
			return nil, fmt.Errorf("missing file settings")
		}
		return sealCheck(c, checks.FileSpec(checks.FileParams{
			Path:    c.File.Path,
			Content: c.File.Content,
			MinSize: c.File.MinSize,
		}), c.File, rec)
	case "command":
		if c.Command == nil {
			return nil, fmt.Errorf("missing command settings")
		}
		return sealCheck(c, checks.CommandSpec(checks.CommandParams{
			Probe: c.Command.Probe,
			Fix:   c.Command.Fix,
			Dir:   c.Command.Dir,
		}), c.Command, rec)
	case "http":
		if c.HTTP == nil {
			return nil, fmt.Errorf("missing http settings")
		}
		return sealCheck(c, checks.HTTPSpec(checks.HTTPParams{
			URL:          c.HTTP.URL,
			ExpectStatus: c.HTTP.ExpectStatus,
		}), c.HTTP, rec)
	default:
		return nil, fmt.Errorf("unknown kind %q", c.Kind)
	}
}

// sealCheck applies the test override, journal instrumentation, and
// before/after attachments, then wraps the goal to journal its outcome.
func sealCheck[S any](c Check, spec goal.Spec[checks.Inputs, S], settings any, rec *journal.Recorder) (goal.Seeker[checks.Inputs], error) {
	if c.Test != "" {
		params, err := toPlainMap(settings)
		if err != nil {
			return nil, fmt.Errorf("encode settings: %w", err)
		}
		pred, err := NewPredicate(c.Test, params)
		if err != nil {
			return nil, err
		}
		name := c.Name
		spec.Test = func(in checks.Inputs, state S) bool {
			ok, err := pred.Eval(map[string]any(in), state)
			if err != nil {
				slog.Warn("test expression failed, treating as unmet", "check", name, "error", err)
				return false
			}
			return ok
		}
	}

	spec = instrument(c.Name, spec, rec)
	g := goal.New(spec)

	if len(c.Before) > 0 {
		before, err := buildGroup(c.Before, rec)
		if err != nil {
			return nil, fmt.Errorf("before: %w", err)
		}
		g = g.WithBefore(before)
	}
	if len(c.After) > 0 {
		after, err := buildGroup(c.After, rec)
		if err != nil {
			return nil, fmt.Errorf("after: %w", err)
		}
		g = g.WithAfter(after)
	}

	name := c.Name
	return goal.SeekFunc[checks.Inputs](func(ctx context.Context, in checks.Inputs) (bool, error) {
		met, err := g.Seek(ctx, in)
		if err != nil {
			return met, err
		}
		if recErr := rec.Outcome(ctx, name, met); recErr != nil {
			return met, recErr
		}
		return met, nil
	}), nil
}

// buildGroup compiles a nested check list; more than one check groups under
// the exhaustive AND.
func buildGroup(cs []Check, rec *journal.Recorder) (goal.Seeker[checks.Inputs], error) {
	if len(cs) == 1 {
		return buildCheck(cs[0], rec)
	}
	members := make([]goal.Seeker[checks.Inputs], 0, len(cs))
	for i, c := range cs {
		g, err := buildCheck(c, rec)
		if err != nil {
			return nil, fmt.Errorf("[%d] (%s): %w", i, c.Name, err)
		}
		members = append(members, g)
	}
	return goal.All(members...), nil
}

// instrument wraps a spec's read and action with journal recording. Journal
// write failures are defects, except while another error is already
// propagating; then they are logged so the original defect survives.
func instrument[S any](name string, spec goal.Spec[checks.Inputs, S], rec *journal.Recorder) goal.Spec[checks.Inputs, S] {
	read := spec.Read
	spec.Read = func(ctx context.Context, in checks.Inputs) (S, error) {
		state, err := read(ctx, in)
		detail := stateDetail(state, err)
		if recErr := rec.Read(ctx, name, detail); recErr != nil {
			if err == nil {
				return state, recErr
			}
			slog.Warn("journal write failed", "check", name, "error", recErr)
		}
		return state, err
	}

	if spec.Action != nil {
		action := spec.Action
		spec.Action = func(ctx context.Context, in checks.Inputs) error {
			err := action(ctx, in)
			detail := ""
			if err != nil {
				detail = errorDetail(err)
			}
			if recErr := rec.Action(ctx, name, detail); recErr != nil {
				if err == nil {
					return recErr
				}
				slog.Warn("journal write failed", "check", name, "error", recErr)
			}
			return err
		}
	}
	return spec
}

func stateDetail(state any, err error) string {
	if err != nil {
		return errorDetail(err)
	}
	data, merr := json.Marshal(state)
	if merr != nil {
		return ""
	}
	return string(data)
}

func errorDetail(err error) string {
	data, merr := json.Marshal(map[string]string{"error": err.Error()})
	if merr != nil {
		return ""
	}
	return string(data)
}

// toPlainMap converts a typed settings struct to a map via its JSON form.
func toPlainMap(v any) (map[string]any, error) {
	plain, err := toPlain(v)
	if err != nil {
		return nil, err
	}
	m, ok := plain.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("settings did not encode to an object")
	}
	return m, nil
}
