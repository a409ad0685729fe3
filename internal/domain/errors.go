// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidLevel is returned when a skill level is not one of the
	// recognized values.
	ErrInvalidLevel = errors.New("invalid skill level")

	// ErrInvalidCategory is returned when a skill category is not one of
	// the recognized values.
	ErrInvalidCategory = errors.New("invalid skill category")

	// ErrInvalidPlan is returned when a subscription plan is not valid.
	ErrInvalidPlan = errors.New("invalid subscription plan")

	// ErrInvalidOption is returned when an option label is not A, B, C or D.
	ErrInvalidOption = errors.New("invalid option label")

	// ErrInvalidConfidence is returned when a confidence value is outside [0,100].
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 100")
)
