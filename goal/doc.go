// Package goal implements a declarative goal-seeking engine.
//
// A goal describes a desired condition over some external, mutable world:
// how to observe the relevant state (read), how to decide whether that state
// satisfies the caller's requirement (test), and optionally how to nudge the
// world toward satisfaction (action). Seeking a goal evaluates it against a
// caller-supplied context value, attempts at most one correction, and reports
// whether the condition now holds. It is the convergence primitive under a
// reconciliation loop: the engine decides WHEN to read, test, and correct,
// never what the observed state means.
//
// # Evaluation Contract
//
// Seek on a primitive goal:
//  1. Read the current state and apply the test. Satisfied: return true.
//  2. Unmet: seek the before prerequisite, if any. If it does not converge,
//     return false without attempting the action.
//  3. No action attached: return false.
//  4. Run the action once, then read and test again. Still unmet: return
//     false. There is no retry loop inside Seek; repeated convergence
//     attempts belong to the caller.
//  5. Met after correction: seek the after postcondition, if any, and return
//     its outcome. The after goal fires only on this corrected branch, never
//     when the test was already satisfied on the first read.
//
// # Error Taxonomy
//
// Two tiers. ErrIndeterminate marks "the current condition cannot be
// determined right now" (a resource that does not exist yet, for example);
// the engine converts it to an unmet outcome at the point it occurs and
// continues. Every other error is a defect and propagates out of the nearest
// enclosing Seek, aborting the whole composite evaluation. Retry and backoff
// policy for defects belongs to the caller, not this package.
//
// # Composition
//
// Goals are immutable values; every combinator returns a new goal and never
// mutates its input. MapContext re-points a goal at a different context type
// by pre-applying a pure function. FromSequence and FromRecord lift ordered
// or keyed collections of goals into one composite goal whose state is the
// collection of component states. And/Or seek members strictly in order and
// short-circuit on the deciding outcome; All/Any seek every member before
// combining. The engine introduces no parallelism of its own: member i+1 is
// never started before member i's full seek has completed.
package goal
