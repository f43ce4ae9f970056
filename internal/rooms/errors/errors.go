package errors

import "errors"

var (
	ErrNotFound = errors.New("room not found")

	ErrInvalidID = errors.New("invalid room ID format")

	// ErrPreconditionFailed means a conditional write matched no document:
	// the room is either missing or not in the expected pre-state.
	ErrPreconditionFailed = errors.New("room state precondition failed")
)
