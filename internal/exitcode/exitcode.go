// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"errors"

	"taskctl/internal/auth"
	"taskctl/internal/service"
	"taskctl/internal/session"
	"taskctl/internal/validate"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, failed validation).
	UserError = 1

	// AuthError indicates a missing session or an unusable session store.
	AuthError = 2

	// BackendError indicates a server or network error.
	BackendError = 3
)

// FromError maps an error to an exit code. Nil maps to Success; errors
// of unknown origin map to UserError.
func FromError(err error) int {
	if err == nil {
		return Success
	}

	var verr *validate.Error
	var apiErr *service.APIError
	var tErr *service.TransportError
	var storeErr *session.StoreError
	switch {
	case errors.As(err, &verr):
		return UserError
	case errors.Is(err, session.ErrLoginRequired), errors.Is(err, session.ErrCorrupt),
		errors.Is(err, auth.ErrNoToken), errors.As(err, &storeErr):
		return AuthError
	case errors.As(err, &apiErr), errors.As(err, &tErr):
		return BackendError
	}
	return UserError
}
