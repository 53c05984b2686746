package common

import "errors"

var (
	// ErrCancelled is returned by interactive prompts when input ends.
	ErrCancelled = errors.New("input cancelled")

	// ErrInvalidPlanID is returned when a plan id cannot be parsed.
	ErrInvalidPlanID = errors.New("invalid plan id")
)
