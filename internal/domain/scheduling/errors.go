package scheduling

import "errors"

var (
	// ErrForbidden is returned when the caller's role does not allow the
	// attempted access.
	ErrForbidden = errors.New("permission denied")

	// ErrNotFound is returned when the requested appointment or schedule
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned for bad input. Wrap it with a message
	// naming the offending field.
	ErrValidation = errors.New("validation failed")
)
