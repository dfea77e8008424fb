package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a salted bcrypt digest of password. bcrypt rejects
// passwords longer than 72 bytes.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(digest), nil
}

// VerifyPassword reports whether password matches digest. A malformed digest
// never matches.
func VerifyPassword(password, digest string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	return err == nil
}

// IsDigest reports whether s looks like a bcrypt digest.
func IsDigest(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
