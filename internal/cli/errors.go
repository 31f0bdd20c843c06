package cli

import (
	"errors"
	"fmt"

	"github.com/roach88/workoutdiary/internal/codec"
	"github.com/roach88/workoutdiary/internal/state"
)

// classify maps a domain error to an output code and exit code.
func classify(err error) (string, int) {
	switch {
	case errors.Is(err, state.ErrExerciseNotFound), errors.Is(err, state.ErrEntryNotFound):
		return ErrCodeNotFound, ExitFailure
	case errors.Is(err, state.ErrEmptyName),
		errors.Is(err, state.ErrUnknownCategory),
		errors.Is(err, state.ErrInvalidDate),
		errors.Is(err, state.ErrNegativeWeight),
		errors.Is(err, state.ErrUnknownField):
		return ErrCodeInvalidInput, ExitFailure
	case codec.IsMalformedSyntax(err):
		return ErrCodeMalformed, ExitFailure
	case codec.IsInvalidShape(err):
		return ErrCodeInvalidShape, ExitFailure
	default:
		return ErrCodeGeneric, ExitFailure
	}
}

// fail reports err through the formatter and returns it with an exit code.
func fail(f *OutputFormatter, message string, err error) error {
	code, exit := classify(err)
	_ = f.Error(code, fmt.Sprintf("%s: %v", message, err), nil)
	return WrapExitError(exit, message, err)
}

// usageError reports a malformed command-line argument.
func usageError(f *OutputFormatter, format string, args ...interface{}) error {
	message := fmt.Sprintf(format, args...)
	_ = f.Error(ErrCodeInvalidInput, message, nil)
	return NewExitError(ExitCommandError, message)
}
