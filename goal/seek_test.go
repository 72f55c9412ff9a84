package goal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterWorld is a tiny mutable world for convergence tests.
type counterWorld struct {
	n       int
	reads   int
	actions int
}

type threshold struct {
	min int
}

// aboveGoal requires the counter to exceed the threshold; its action
// increments the counter once.
func aboveGoal(w *counterWorld) *Goal[threshold, int] {
	return New(Spec[threshold, int]{
		Read: func(context.Context, threshold) (int, error) {
			w.reads++
			return w.n, nil
		},
		Test: func(c threshold, n int) bool { return n > c.min },
		Action: func(context.Context, threshold) error {
			w.actions++
			w.n++
			return nil
		},
	})
}

func TestSeek_AlreadySatisfied_SkipsAction(t *testing.T) {
	w := &counterWorld{n: 10}
	g := aboveGoal(w)

	met, err := g.Seek(context.Background(), threshold{min: 5})
	require.NoError(t, err)
	assert.True(t, met)
	assert.Equal(t, 0, w.actions, "satisfied goal must not correct")
	assert.Equal(t, 1, w.reads)
}

// Counter at 5 with threshold 5: one correction brings it to 6 and the
// re-check passes within the same seek.
func TestSeek_OneCorrectionConverges(t *testing.T) {
	w := &counterWorld{n: 5}
	g := aboveGoal(w)

	met, err := g.Seek(context.Background(), threshold{min: 5})
	require.NoError(t, err)
	assert.True(t, met)
	assert.Equal(t, 1, w.actions)
	assert.Equal(t, 6, w.n)
	assert.Equal(t, 2, w.reads, "expected a read before and after the action")
}

// Counter at 0 with threshold 5: the single allowed correction observes 1,
// which still fails the test. No retry loop inside one seek call.
func TestSeek_OneCorrectionIsNotEnough(t *testing.T) {
	w := &counterWorld{n: 0}
	g := aboveGoal(w)

	met, err := g.Seek(context.Background(), threshold{min: 5})
	require.NoError(t, err)
	assert.False(t, met)
	assert.Equal(t, 1, w.actions)
	assert.Equal(t, 1, w.n)
}

func TestSeek_IndeterminateRead_NoAction(t *testing.T) {
	g := New(Spec[threshold, int]{
		Read: func(context.Context, threshold) (int, error) {
			return 0, Indeterminatef("resource missing")
		},
		Test: func(threshold, int) bool { return true },
	})

	met, err := g.Seek(context.Background(), threshold{})
	require.NoError(t, err, "failure signal must not propagate")
	assert.False(t, met)
}

func TestSeek_IndeterminateRead_WithAction(t *testing.T) {
	actions := 0
	g := New(Spec[threshold, int]{
		Read: func(context.Context, threshold) (int, error) {
			return 0, Indeterminatef("resource missing")
		},
		Test: func(threshold, int) bool { return true },
		Action: func(context.Context, threshold) error {
			actions++
			return nil
		},
	})

	met, err := g.Seek(context.Background(), threshold{})
	require.NoError(t, err)
	assert.False(t, met)
	assert.Equal(t, 1, actions, "action runs exactly once per seek")
}

func TestSeek_ReadDefectPropagates(t *testing.T) {
	boom := errors.New("disk on fire")
	actions := 0
	g := New(Spec[threshold, int]{
		Read: func(context.Context, threshold) (int, error) {
			return 0, boom
		},
		Test: func(threshold, int) bool { return true },
		Action: func(context.Context, threshold) error {
			actions++
			return nil
		},
	})

	met, err := g.Seek(context.Background(), threshold{})
	require.ErrorIs(t, err, boom)
	assert.False(t, met)
	assert.Equal(t, 0, actions, "defect aborts before the action")
}

func TestSeek_ActionDefectPropagates(t *testing.T) {
	boom := errors.New("correction failed")
	w := &counterWorld{n: 0}
	g := aboveGoal(w).WithAction(func(context.Context, threshold) error {
		return boom
	})

	met, err := g.Seek(context.Background(), threshold{min: 5})
	require.ErrorIs(t, err, boom)
	assert.False(t, met)
}

func TestSeek_ActionIndeterminateIsUnmet(t *testing.T) {
	w := &counterWorld{n: 0}
	g := aboveGoal(w).WithAction(func(context.Context, threshold) error {
		return Indeterminatef("cannot correct yet")
	})

	met, err := g.Seek(context.Background(), threshold{min: 5})
	require.NoError(t, err)
	assert.False(t, met)
	assert.Equal(t, 1, w.reads, "no re-check after an indeterminate action")
}

func TestSeek_BeforeUnmet_BlocksAction(t *testing.T) {
	w := &counterWorld{n: 0}
	g := aboveGoal(w).WithBefore(Never[threshold]())

	met, err := g.Seek(context.Background(), threshold{min: 5})
	require.NoError(t, err)
	assert.False(t, met)
	assert.Equal(t, 0, w.actions, "failed prerequisite must block the action")
}

func TestSeek_BeforeMet_AllowsAction(t *testing.T) {
	w := &counterWorld{n: 5}
	g := aboveGoal(w).WithBefore(Always[threshold]())

	met, err := g.Seek(context.Background(), threshold{min: 5})
	require.NoError(t, err)
	assert.True(t, met)
	assert.Equal(t, 1, w.actions)
}

func TestSeek_BeforeNotSoughtWhenSatisfied(t *testing.T) {
	beforeSeeks := 0
	before := SeekFunc[threshold](func(context.Context, threshold) (bool, error) {
		beforeSeeks++
		return true, nil
	})

	w := &counterWorld{n: 10}
	g := aboveGoal(w).WithBefore(before)

	met, err := g.Seek(context.Background(), threshold{min: 5})
	require.NoError(t, err)
	assert.True(t, met)
	assert.Equal(t, 0, beforeSeeks)
}

func TestSeek_BeforeDefectPropagates(t *testing.T) {
	boom := errors.New("prerequisite exploded")
	before := SeekFunc[threshold](func(context.Context, threshold) (bool, error) {
		return false, boom
	})

	w := &counterWorld{n: 0}
	g := aboveGoal(w).WithBefore(before)

	_, err := g.Seek(context.Background(), threshold{min: 5})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, w.actions)
}

func TestSeek_AfterOnlyOnCorrectedBranch(t *testing.T) {
	afterSeeks := 0
	after := SeekFunc[threshold](func(context.Context, threshold) (bool, error) {
		afterSeeks++
		return true, nil
	})

	// Already satisfied on first read: after must not fire.
	w := &counterWorld{n: 10}
	g := aboveGoal(w).WithAfter(after)
	met, err := g.Seek(context.Background(), threshold{min: 5})
	require.NoError(t, err)
	assert.True(t, met)
	assert.Equal(t, 0, afterSeeks)

	// Correction succeeds: after fires once.
	w = &counterWorld{n: 5}
	g = aboveGoal(w).WithAfter(after)
	met, err = g.Seek(context.Background(), threshold{min: 5})
	require.NoError(t, err)
	assert.True(t, met)
	assert.Equal(t, 1, afterSeeks)

	// Correction not enough: after must not fire.
	afterSeeks = 0
	w = &counterWorld{n: 0}
	g = aboveGoal(w).WithAfter(after)
	met, err = g.Seek(context.Background(), threshold{min: 5})
	require.NoError(t, err)
	assert.False(t, met)
	assert.Equal(t, 0, afterSeeks)
}

func TestSeek_AfterOutcomeDecidesResult(t *testing.T) {
	w := &counterWorld{n: 5}
	g := aboveGoal(w).WithAfter(Never[threshold]())

	met, err := g.Seek(context.Background(), threshold{min: 5})
	require.NoError(t, err)
	assert.False(t, met, "unmet postcondition makes the whole seek unmet")
	assert.Equal(t, 6, w.n, "the correction itself still happened")
}

func TestAlways_ActionNeverRuns(t *testing.T) {
	actions := 0
	g := Always[threshold]().WithAction(func(context.Context, threshold) error {
		actions++
		return nil
	})

	met, err := g.Seek(context.Background(), threshold{})
	require.NoError(t, err)
	assert.True(t, met)
	assert.Equal(t, 0, actions)
}

func TestNever_ActionRunsButCannotSucceed(t *testing.T) {
	actions := 0
	g := Never[threshold]().WithAction(func(context.Context, threshold) error {
		actions++
		return nil
	})

	for i := 0; i < 3; i++ {
		met, err := g.Seek(context.Background(), threshold{})
		require.NoError(t, err)
		assert.False(t, met)
	}
	assert.Equal(t, 3, actions, "the attached action runs once per seek")
}

func TestCondition_IdentityTest(t *testing.T) {
	ready := false
	g := Condition(func(context.Context, threshold) (bool, error) {
		return ready, nil
	})

	met, err := g.Seek(context.Background(), threshold{})
	require.NoError(t, err)
	assert.False(t, met)

	ready = true
	met, err = g.Seek(context.Background(), threshold{})
	require.NoError(t, err)
	assert.True(t, met)
}

func TestNew_PanicsWithoutRead(t *testing.T) {
	assert.Panics(t, func() {
		New(Spec[threshold, int]{
			Test: func(threshold, int) bool { return true },
		})
	})
}

func TestNew_PanicsWithoutTestForNonBoolState(t *testing.T) {
	assert.Panics(t, func() {
		New(Spec[threshold, int]{
			Read: func(context.Context, threshold) (int, error) { return 0, nil },
		})
	})
}

func TestNew_DefaultsIdentityTestForBoolState(t *testing.T) {
	g := New(Spec[threshold, bool]{
		Read: func(context.Context, threshold) (bool, error) { return true, nil },
	})

	met, err := g.Seek(context.Background(), threshold{})
	require.NoError(t, err)
	assert.True(t, met)
	assert.True(t, g.Test(threshold{}, true))
	assert.False(t, g.Test(threshold{}, false))
}
