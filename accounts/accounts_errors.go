package accounts

import "errors"

var (
	ErrWeakPassword   = errors.New("password must be at least 12 characters")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNotFound       = errors.New("account not found")
)
