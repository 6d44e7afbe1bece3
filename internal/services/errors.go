package services

import "errors"

var (
	// ErrInvalidCredentials is returned when a login attempt does not match
	// any account. Never retried; surfaced to the caller as an auth failure.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserAlreadyExists is returned when registration collides with an
	// existing username or email.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrWeakPassword is returned when a registration password fails the
	// strength policy.
	ErrWeakPassword = errors.New("password does not meet strength requirements")
)
