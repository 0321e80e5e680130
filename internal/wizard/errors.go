package wizard

import "errors"

var (
	// ErrIdentityPending means the fiscal id has not been resolved yet;
	// the dependent operation must be deferred, not retried blindly.
	ErrIdentityPending = errors.New("fiscal id not resolved yet")

	// ErrMissingField means a required input or scraped page value is absent.
	ErrMissingField = errors.New("required field missing")

	// ErrInvalidInput means an input failed validation before any network call.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoSelection means a submission was attempted with nothing selected.
	ErrNoSelection = errors.New("no records selected")

	// ErrWrongStep means the operation is not valid in the session's
	// current step.
	ErrWrongStep = errors.New("operation not valid in current step")

	// ErrSupersededQuery means a newer search was issued while this one was
	// in flight; its results were discarded.
	ErrSupersededQuery = errors.New("query superseded by a newer one")

	// ErrSessionNotFound means the session id is unknown or already closed.
	ErrSessionNotFound = errors.New("session not found")
)
