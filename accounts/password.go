package accounts

import (
	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength is the minimum accepted plaintext password length.
	MinPasswordLength = 12

	// bcryptCost is tuned for roughly 100ms per hash on reference hardware.
	bcryptCost = 12
)

// HashPassword derives a salted one-way hash from a plaintext password.
// Two calls with the same plaintext produce different hashes; both verify.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrWeakPassword
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// CheckPasswordHash checks a plaintext password against a stored hash.
// The comparison does not leak timing correlated with a partial match.
// A malformed hash verifies false rather than erroring.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
