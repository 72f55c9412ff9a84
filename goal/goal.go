package goal

import "context"

// ReadFunc observes the current state of the world relevant to one goal.
// It may fail with the failure signal (see ErrIndeterminate) when the
// condition cannot be determined yet; any other error is a defect.
type ReadFunc[C, S any] func(ctx context.Context, c C) (S, error)

// TestFunc decides whether an observed state satisfies the context's
// requirement. Implementations must be pure, synchronous, and free of side
// effects: the engine may call them any number of times.
type TestFunc[C, S any] func(c C, state S) bool

// ActionFunc attempts to change the external world toward satisfying a
// goal's test. The engine always re-reads and re-tests after running it, so
// an action can never short-circuit evaluation by itself.
type ActionFunc[C any] func(ctx context.Context, c C) error

// Seeker is the evaluation entry point shared by every goal variant:
// primitive goals, composites, and the boolean combinators all converge
// through this one method.
type Seeker[C any] interface {
	// Seek evaluates the goal against c, attempting at most one correction
	// if the condition is unmet, and reports whether it now holds.
	Seek(ctx context.Context, c C) (bool, error)
}

// SeekFunc adapts a plain function to the Seeker interface.
type SeekFunc[C any] func(ctx context.Context, c C) (bool, error)

// Seek implements Seeker.
func (f SeekFunc[C]) Seek(ctx context.Context, c C) (bool, error) {
	return f(ctx, c)
}

// Spec describes a primitive goal for New.
//
// Read is required. Test may be omitted only when S is bool, in which case
// the observed state itself is the verdict. Action, Before, and After are
// optional; see Goal for their roles during a seek.
type Spec[C, S any] struct {
	Read   ReadFunc[C, S]
	Test   TestFunc[C, S]
	Action ActionFunc[C]
	Before Seeker[C]
	After  Seeker[C]
}

// Goal is an immutable description of a single desired condition, parametric
// over the caller's context type C (what "satisfied" means, e.g. a
// threshold) and the observed state type S.
//
// A Goal is a stateless recipe: all effectful state lives in whatever its
// read and action close over, so the same value may be sought repeatedly, by
// different contexts, with different outcomes each time. Combinators return
// new goals and never mutate an existing one.
type Goal[C, S any] struct {
	read   ReadFunc[C, S]
	test   TestFunc[C, S]
	action ActionFunc[C]
	before Seeker[C]
	after  Seeker[C]

	// parts is non-nil for composites built by FromSequence/FromRecord.
	// Seeking a composite seeks every part exhaustively and ANDs the
	// outcomes in place of the read+test step.
	parts []Seeker[C]
}

// New builds a primitive goal from spec.
//
// Panics if spec.Read is nil, or if spec.Test is nil while S is not bool;
// both are construction-time programming errors, not runtime conditions.
func New[C, S any](spec Spec[C, S]) *Goal[C, S] {
	if spec.Read == nil {
		panic("goal: Spec.Read is required")
	}
	test := spec.Test
	if test == nil {
		var zero S
		if _, ok := any(zero).(bool); !ok {
			panic("goal: Spec.Test is required unless the state type is bool")
		}
		test = func(_ C, state S) bool { return any(state).(bool) }
	}
	return &Goal[C, S]{
		read:   spec.Read,
		test:   test,
		action: spec.Action,
		before: spec.Before,
		after:  spec.After,
	}
}

// Condition builds a boolean goal whose verdict is the read result itself.
func Condition[C any](read ReadFunc[C, bool]) *Goal[C, bool] {
	return New(Spec[C, bool]{Read: read})
}

// Always returns a goal satisfied for every context. An action attached to
// it via WithAction is never invoked.
func Always[C any]() *Goal[C, bool] {
	return &Goal[C, bool]{
		read: func(context.Context, C) (bool, error) { return true, nil },
		test: func(C, bool) bool { return true },
	}
}

// Never returns a goal that cannot be satisfied. An action attached to it
// via WithAction runs on every seek but can never change the outcome.
func Never[C any]() *Goal[C, bool] {
	return &Goal[C, bool]{
		read: func(context.Context, C) (bool, error) { return false, nil },
		test: func(C, bool) bool { return false },
	}
}

// Read observes the goal's current state without evaluating or correcting
// anything. For composites this reads every component in order.
func (g *Goal[C, S]) Read(ctx context.Context, c C) (S, error) {
	return g.read(ctx, c)
}

// Test applies the goal's predicate to an already-held state value, without
// a read. Pure and synchronous.
func (g *Goal[C, S]) Test(c C, state S) bool {
	return g.test(c, state)
}
