package model

import "errors"

// Error taxonomy for the mission lifecycle. Every operation fails
// independently and leaves prior state untouched; these sentinels let
// callers map a failure to the right response without string matching.
var (
	// ErrValidation: a mandatory field is missing or empty. Raised
	// before any store call.
	ErrValidation = errors.New("validation error")

	// ErrNotAuthorized: the acting platoon may not task the chosen
	// target platoon. Raised before any store call.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrConflict: the operator id is already registered. The stored
	// user is left unmodified.
	ErrConflict = errors.New("operator id already exists")

	// ErrCredentials is deliberately the same for an unknown user and
	// a wrong password, so login failures do not leak which operator
	// ids exist.
	ErrCredentials = errors.New("invalid credentials")

	// ErrTransport: the store is unreachable or answered with a
	// non-success status. Never retried automatically.
	ErrTransport = errors.New("server unreachable")
)
