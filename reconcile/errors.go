package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingPriorYear marks an actor whose cumulative chain has a hole:
	// the requested year is not the actor's first, but no record exists for
	// the year before it.
	ErrMissingPriorYear = errors.New("missing prior year cumulative record")

	// ErrInvariantViolation marks an actor whose history rows no longer form
	// a contiguous, non-overlapping partition of its observed years.
	ErrInvariantViolation = errors.New("history interval invariant violated")
)

// EntityError scopes a failure to a single actor so one bad chain never
// aborts the batch.
type EntityError struct {
	ActorID string
	Err     error
}

func (e EntityError) Error() string {
	return fmt.Sprintf("actor %s: %v", e.ActorID, e.Err)
}

func (e EntityError) Unwrap() error { return e.Err }
