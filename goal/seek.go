package goal

import "context"

// Seek evaluates the goal against c, following the contract documented on
// the package: read+test, gate on before, one action attempt, re-check,
// then after on the corrected branch only.
//
// The failure signal from a read or the action yields an unmet outcome at
// the point it occurs; any other error aborts the seek and propagates.
func (g *Goal[C, S]) Seek(ctx context.Context, c C) (bool, error) {
	met, err := g.check(ctx, c)
	if err != nil {
		return false, err
	}
	if met {
		// Already satisfied on first observation. The after goal is not
		// sought on this branch: it guards corrections, not steady state.
		return true, nil
	}

	if g.before != nil {
		ok, err := g.before.Seek(ctx, c)
		if err != nil || !ok {
			return false, err
		}
	}

	if g.action == nil {
		return false, nil
	}
	if err := g.action(ctx, c); err != nil {
		if IsIndeterminate(err) {
			return false, nil
		}
		return false, err
	}

	// One correction attempt per seek: re-observe and decide. Callers that
	// want repeated attempts seek again from outside.
	met, err = g.check(ctx, c)
	if err != nil || !met {
		return false, err
	}
	if g.after != nil {
		return g.after.Seek(ctx, c)
	}
	return true, nil
}

// check answers "is the condition met right now". For a primitive goal that
// is read+test, with the failure signal counting as unmet. For a composite
// it is a full seek of every part, exhaustively, ANDed; a part is never
// skipped because an earlier part failed, and a part's own action runs as
// part of its seek.
func (g *Goal[C, S]) check(ctx context.Context, c C) (bool, error) {
	if g.parts != nil {
		met := true
		for _, p := range g.parts {
			ok, err := p.Seek(ctx, c)
			if err != nil {
				return false, err
			}
			met = met && ok
		}
		return met, nil
	}

	state, err := g.read(ctx, c)
	if err != nil {
		if IsIndeterminate(err) {
			return false, nil
		}
		return false, err
	}
	return g.test(c, state), nil
}
