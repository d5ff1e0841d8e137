package users

import "errors"

var (
	// ErrInvalidCredentials is returned when a login attempt fails. The
	// same error covers unknown usernames and wrong passwords so the two
	// cases cannot be told apart from the outside.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound is returned when the requested user does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when registering a username that is
	// already in use.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrValidation is returned when input fails validation. Wrap it with
	// a message describing the offending field.
	ErrValidation = errors.New("validation failed")
)
