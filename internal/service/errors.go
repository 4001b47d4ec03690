package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrValidationNoUserID       = errors.New("no user ID was given")
	ErrValidationUserIDMismatch = errors.New("document user ID differs from the addressed user")
)
