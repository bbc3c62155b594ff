// Package common defines the sentinel errors shared by the repositories,
// services and the HTTP layer. Callers match them with errors.Is; the
// transport maps each of them to exactly one status code.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrDuplicateName = errors.New("user name already exists")

	// Input rejected before it reaches a store.
	ErrValidation = errors.New("validation error")

	// Login with an unknown name or a wrong password.
	ErrAuthenticationFailed = errors.New("incorrect user name or password")

	// Bearer token missing, malformed, expired, badly signed or naming a
	// user that no longer exists.
	ErrInvalidCredentials = errors.New("could not validate credentials")

	// Authenticated, but acting on somebody else's resources.
	ErrForbidden = errors.New("forbidden")

	ErrorInternal = errors.New("internal error")
)
