package codec

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes import failures.
type ErrorKind string

const (
	// MalformedSyntax indicates the text is not parseable JSON.
	MalformedSyntax ErrorKind = "MALFORMED_SYNTAX"

	// InvalidShape indicates the JSON does not match the data model.
	InvalidShape ErrorKind = "INVALID_SHAPE"
)

// ImportError is returned when text cannot be accepted as a state tree.
// The caller's state is never touched when it is returned.
type ImportError struct {
	Kind ErrorKind
	Err  error
}

// Error implements the error interface.
func (e *ImportError) Error() string {
	if e.Kind == MalformedSyntax {
		return fmt.Sprintf("%s: not valid JSON: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *ImportError) Unwrap() error {
	return e.Err
}

// IsMalformedSyntax returns true if err is an ImportError of kind MalformedSyntax.
// Uses errors.As to handle wrapped errors.
func IsMalformedSyntax(err error) bool {
	var ie *ImportError
	if errors.As(err, &ie) {
		return ie.Kind == MalformedSyntax
	}
	return false
}

// IsInvalidShape returns true if err is an ImportError of kind InvalidShape.
// Uses errors.As to handle wrapped errors.
func IsInvalidShape(err error) bool {
	var ie *ImportError
	if errors.As(err, &ie) {
		return ie.Kind == InvalidShape
	}
	return false
}
