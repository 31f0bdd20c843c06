package state

import "errors"

// Validation errors. A mutation that returns one of these has not touched
// the tree and has not saved.
var (
	ErrEmptyName        = errors.New("exercise name must not be empty")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrEntryNotFound    = errors.New("entry not found")
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")
	ErrNegativeWeight   = errors.New("weight must be a non-negative finite number")
	ErrUnknownField     = errors.New("unknown entry field")
)
