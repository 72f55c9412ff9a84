package goal

import "context"

// And combines goals by seeking each strictly in order, stopping at the
// first unmet outcome. A member is fully sought, nested before/after/action
// work included, before the next one starts, and members after
// the deciding one are never started. And of no goals is satisfied.
func And[C any](goals ...Seeker[C]) Seeker[C] {
	members := cloneSeekers(goals)
	return SeekFunc[C](func(ctx context.Context, c C) (bool, error) {
		for _, g := range members {
			ok, err := g.Seek(ctx, c)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	})
}

// Or combines goals by seeking each strictly in order, stopping at the
// first met outcome. Or of no goals is unmet.
func Or[C any](goals ...Seeker[C]) Seeker[C] {
	members := cloneSeekers(goals)
	return SeekFunc[C](func(ctx context.Context, c C) (bool, error) {
		for _, g := range members {
			ok, err := g.Seek(ctx, c)
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	})
}

// All seeks every goal regardless of earlier outcomes and returns the AND of
// the results. No short-circuit: a later member's corrective work still runs
// after an earlier failure. A defect still aborts immediately. All of no
// goals is satisfied.
func All[C any](goals ...Seeker[C]) Seeker[C] {
	members := cloneSeekers(goals)
	return SeekFunc[C](func(ctx context.Context, c C) (bool, error) {
		met := true
		for _, g := range members {
			ok, err := g.Seek(ctx, c)
			if err != nil {
				return false, err
			}
			met = met && ok
		}
		return met, nil
	})
}

// Any seeks every goal regardless of earlier outcomes and returns the OR of
// the results. Any of no goals is unmet.
func Any[C any](goals ...Seeker[C]) Seeker[C] {
	members := cloneSeekers(goals)
	return SeekFunc[C](func(ctx context.Context, c C) (bool, error) {
		met := false
		for _, g := range members {
			ok, err := g.Seek(ctx, c)
			if err != nil {
				return false, err
			}
			met = met || ok
		}
		return met, nil
	})
}

// cloneSeekers snapshots the member list so a caller mutating its argument
// slice cannot change an already-built combinator.
func cloneSeekers[C any](goals []Seeker[C]) []Seeker[C] {
	members := make([]Seeker[C], len(goals))
	copy(members, goals)
	return members
}
