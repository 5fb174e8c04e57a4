// path: engine/errors.go
package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the crime id did not resolve to a stored record.
	ErrNotFound = errors.New("crime not found")

	// ErrAlreadyVoted marks the idempotent no-op branch of Vote: the voter
	// had already voted in the requested direction. Callers still receive
	// the current record.
	ErrAlreadyVoted = errors.New("already voted in this direction")
)

// ValidationError reports a missing or unusable submission field. It is
// raised before any store write happens.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}
