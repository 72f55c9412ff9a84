package goal

import (
	"errors"
	"fmt"
)

// ErrIndeterminate is the failure signal: the current condition could not be
// determined, and that is an anticipated possibility rather than a defect.
// Read and action functions report it (directly or wrapped) when the world is
// not observable yet, e.g. the underlying resource does not exist. The seek
// engine converts it to an unmet outcome; every other error propagates.
var ErrIndeterminate = errors.New("state indeterminate")

// Indeterminatef builds a failure-signal error with a reason attached.
// The result matches IsIndeterminate through any further %w wrapping.
func Indeterminatef(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrIndeterminate)
}

// IsIndeterminate reports whether err carries the failure signal.
// Uses errors.Is to handle wrapped errors.
func IsIndeterminate(err error) bool {
	return errors.Is(err, ErrIndeterminate)
}
