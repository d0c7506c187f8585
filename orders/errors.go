package orders

import (
	"errors"
	"fmt"
)

// Error kinds returned by the order service. Handlers translate these to
// HTTP statuses with errors.Is; the service never reports a lost race or a
// missing row as a silent success.
var (
	// ErrNotFound — referenced order, code, dish or reservation does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation — malformed input: empty item list, non-positive
	// quantity, value outside a closed enumeration.
	ErrValidation = errors.New("validation failed")

	// ErrConflict — state-machine violation or lost race: transition out of
	// a terminal state, claiming an order held by another waiter, consuming
	// an already-used code.
	ErrConflict = errors.New("conflict")

	// ErrForbidden — caller lacks the role or ownership the operation needs.
	ErrForbidden = errors.New("forbidden")
)

func notFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

func forbiddenf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}
