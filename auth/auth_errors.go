package auth

import "errors"

var (
	// ErrInvalidInput means client-supplied data failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The two are deliberately the same error kind, with the
	// same message, so responses never reveal whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountLocked means authentication is refused regardless of the
	// supplied password, pending an external unlock.
	ErrAccountLocked = errors.New("account is locked")
)
