// Package apperr defines the error taxonomy shared by the API boundary,
// the auth service, and the storage layer. Client-facing wording lives here
// so that generic messages (invalid credentials, duplicate account) come
// from a single place regardless of the underlying cause.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation covers missing or malformed request input.
	ErrValidation = errors.New("email and password are required")

	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password. The two cases must stay indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountExists is the generic duplicate-signup error. The wording
	// must not confirm that the email is actually registered.
	ErrAccountExists = errors.New("an account with this email may already exist")

	// ErrAuthRequired signals a missing or invalid session.
	ErrAuthRequired = errors.New("authentication required")

	// ErrStoreCredentials signals missing object storage credentials.
	ErrStoreCredentials = errors.New("object storage credentials not configured")
)

// StoreError wraps a failure from the object store when the store itself was
// reachable but returned an error.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("object storage %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps a taxonomy error to the status code the boundary returns.
func HTTPStatus(err error) int {
	var storeErr *StoreError

	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrAuthRequired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAccountExists):
		return http.StatusConflict
	case errors.Is(err, ErrStoreCredentials), errors.As(err, &storeErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
