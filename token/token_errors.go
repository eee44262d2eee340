package token

import "errors"

var (
	// ErrTokenExpired means the token verified structurally but its expiry
	// has passed. Callers typically respond with re-authenticate.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenMalformed means the token's structure or signature is
	// invalid. Callers typically reject outright.
	ErrTokenMalformed = errors.New("token malformed")
)
