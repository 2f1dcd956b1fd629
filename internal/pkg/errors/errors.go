package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNoAttemptsRemaining signals the bounded-attempts gate rejected a submission.
	ErrNoAttemptsRemaining = errors.New("no attempts remaining")
	// ErrNoBadgeForCriterion signals no badge definition is registered under a criterion.
	ErrNoBadgeForCriterion = errors.New("no badge for criterion")
)
