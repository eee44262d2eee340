package accounts

import (
	"strings"
	"time"
)

// Account is one registered credential record within a tenant's store.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Hashed password - never serialize
	Locked       bool      `json:"locked"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the caller-facing view of an Account, without the password hash.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile returns the account view that is safe to hand back to callers.
func (a *Account) Profile() *Profile {
	return &Profile{
		ID:        a.ID,
		Email:     a.Email,
		Locked:    a.Locked,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// NormalizeEmail lowercases and trims an email address. Every store lookup
// and write uses the normalized form, so "A@Ex.com" and "a@ex.com" are the
// same key within a tenant.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
