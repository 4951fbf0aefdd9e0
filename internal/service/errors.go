package service

import "errors"

var (
	// ErrValidation marks caller mistakes: missing or out-of-order search
	// bounds, missing required work fields, a nil id list for batch delete.
	ErrValidation = errors.New("validation")

	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserAlreadyExists is returned when registering an existing username.
	ErrUserAlreadyExists = errors.New("user already exists")
)
