// Package apperr defines the error taxonomy shared by every layer.
//
// Repositories map store conditions (no rows, unique violations) onto these
// sentinels, services add context with fmt.Errorf("%w: ...") wrapping, and
// the HTTP boundary serializes them into the uniform {error} body.
package apperr

import "errors"

var (
	// ErrUnauthorized means no or invalid session on a protected route.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the caller is authenticated but not permitted.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means a token, team, or user does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a uniqueness probe exhausted or a write-time collision.
	ErrConflict = errors.New("conflict")
	// ErrInvalidOperation means the request is well-formed but the operation
	// is not allowed in the current state, e.g. removing the team leader.
	ErrInvalidOperation = errors.New("invalid operation")
)

// IsDomain reports whether err belongs to the taxonomy above. Errors outside
// the taxonomy are internal and must not leak their message to clients.
func IsDomain(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrInvalidOperation)
}
