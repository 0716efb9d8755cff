package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Field-specific errors below wrap it so callers can match on either.
	ErrValidation = errors.New("validation failed")

	ErrEmptyUserID = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrEmptyName   = fmt.Errorf("%w: name cannot be empty", ErrValidation)
	ErrEmptyEmail  = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrInvalidAge  = fmt.Errorf("%w: age must be greater than zero", ErrValidation)
)
