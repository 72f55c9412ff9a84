package goal

import "context"

// WithAction returns a copy of g with its corrective action replaced.
// Satisfaction semantics are untouched, so this attaches corrective behavior
// to goals that have none, including Always and Never.
func (g *Goal[C, S]) WithAction(action ActionFunc[C]) *Goal[C, S] {
	out := *g
	out.action = action
	return &out
}

// WithBefore returns a copy of g whose prerequisite is set to before,
// overwriting any previous one. The prerequisite must itself converge before
// g's action may be attempted; it is evaluated only inside Seek.
func (g *Goal[C, S]) WithBefore(before Seeker[C]) *Goal[C, S] {
	out := *g
	out.before = before
	return &out
}

// WithAfter returns a copy of g whose postcondition is set to after,
// overwriting any previous one. The postcondition is sought only when g's
// test was just satisfied by running the action, never when g was already
// satisfied on the first read.
func (g *Goal[C, S]) WithAfter(after Seeker[C]) *Goal[C, S] {
	out := *g
	out.after = after
	return &out
}

// MapContext re-points g at a different context type: the returned goal
// applies the pure function f to its incoming context before delegating
// read, test, action, and any before/after goals to g. The transformation
// itself does no work; f runs during later seeks, once per delegated call.
func MapContext[A, C, S any](g *Goal[C, S], f func(A) C) *Goal[A, S] {
	out := &Goal[A, S]{
		read: func(ctx context.Context, a A) (S, error) { return g.read(ctx, f(a)) },
		test: func(a A, state S) bool { return g.test(f(a), state) },
	}
	if g.action != nil {
		action := g.action
		out.action = func(ctx context.Context, a A) error { return action(ctx, f(a)) }
	}
	if g.before != nil {
		out.before = MapSeeker(g.before, f)
	}
	if g.after != nil {
		out.after = MapSeeker(g.after, f)
	}
	if g.parts != nil {
		out.parts = make([]Seeker[A], len(g.parts))
		for i, p := range g.parts {
			out.parts[i] = MapSeeker(p, f)
		}
	}
	return out
}

// MapSeeker is MapContext for an opaque Seeker, used when only the boolean
// seek outcome matters (combinator results, before/after attachments).
func MapSeeker[A, C any](s Seeker[C], f func(A) C) Seeker[A] {
	return SeekFunc[A](func(ctx context.Context, a A) (bool, error) {
		return s.Seek(ctx, f(a))
	})
}
