package journal

import (
	"errors"
	"fmt"
)

// NotFoundError indicates that a run token has no record in the journal.
type NotFoundError struct {
	Token string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("run %s not found", e.Token)
}

// IsNotFound reports whether err means a missing run.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
