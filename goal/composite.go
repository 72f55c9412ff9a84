package goal

import (
	"context"
	"sort"
)

// FromSequence lifts an ordered sequence of goals sharing context type C
// into one composite goal. Its state is the slice of each component's own
// state, in order; its test is the conjunction of each component's test
// applied to its own element. Seeking the composite seeks every component
// and ANDs the outcomes; no component is skipped because an earlier one
// failed.
func FromSequence[C, S any](goals ...*Goal[C, S]) *Goal[C, []S] {
	components := make([]*Goal[C, S], len(goals))
	copy(components, goals)

	parts := make([]Seeker[C], len(components))
	for i, g := range components {
		parts[i] = g
	}

	return &Goal[C, []S]{
		read: func(ctx context.Context, c C) ([]S, error) {
			states := make([]S, len(components))
			for i, g := range components {
				s, err := g.read(ctx, c)
				if err != nil {
					return nil, err
				}
				states[i] = s
			}
			return states, nil
		},
		test: func(c C, states []S) bool {
			if len(states) != len(components) {
				return false
			}
			for i, g := range components {
				if !g.test(c, states[i]) {
					return false
				}
			}
			return true
		},
		parts: parts,
	}
}

// FromRecord lifts a keyed collection of goals sharing context type C into
// one composite goal whose state maps each key to that component's state.
// Components are read and sought in sorted key order so that action side
// effects never depend on map iteration order.
func FromRecord[C, S any](goals map[string]*Goal[C, S]) *Goal[C, map[string]S] {
	keys := make([]string, 0, len(goals))
	for k := range goals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	components := make(map[string]*Goal[C, S], len(goals))
	for k, g := range goals {
		components[k] = g
	}

	parts := make([]Seeker[C], len(keys))
	for i, k := range keys {
		parts[i] = components[k]
	}

	return &Goal[C, map[string]S]{
		read: func(ctx context.Context, c C) (map[string]S, error) {
			states := make(map[string]S, len(keys))
			for _, k := range keys {
				s, err := components[k].read(ctx, c)
				if err != nil {
					return nil, err
				}
				states[k] = s
			}
			return states, nil
		},
		test: func(c C, states map[string]S) bool {
			for _, k := range keys {
				s, ok := states[k]
				if !ok {
					return false
				}
				if !components[k].test(c, s) {
					return false
				}
			}
			return true
		},
		parts: parts,
	}
}
