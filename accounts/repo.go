package accounts

import "context"

// Store is one tenant's credential table. Implementations enforce email
// uniqueness at the storage layer: two concurrent Creates for the same
// email must not both succeed, even across processes sharing the store.
type Store interface {
	// Create normalizes the email, hashes the password and persists a new
	// unlocked account. Returns ErrDuplicateEmail if the email is already
	// present and ErrWeakPassword if the password is too short. Create is
	// all-or-nothing: no partial account state survives a failure.
	Create(ctx context.Context, email, password string) (*Account, error)

	// GetByEmail looks up an account by normalized email.
	// Returns ErrNotFound if no account matches.
	GetByEmail(ctx context.Context, email string) (*Account, error)

	// GetByID looks up an account by id.
	// Returns ErrNotFound if no account matches.
	GetByID(ctx context.Context, id string) (*Account, error)

	// SetLocked sets the lockout flag. Idempotent.
	// Returns ErrNotFound if no account matches.
	SetLocked(ctx context.Context, id string, locked bool) error
}
