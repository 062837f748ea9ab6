// Package security provides password hashing and signed access tokens.
package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a one-way bcrypt hash of password with an
// embedded random salt. The output differs between calls for the same
// input; use VerifyPassword to compare.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches hash. A malformed
// hash is a verification failure, never a panic.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
