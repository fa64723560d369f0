package auth

import (
	"golang.org/x/crypto/bcrypt"

	"tourhub/internal/errors"
)

const minPasswordLength = 8

// HashPassword bcrypt-hashes a password after basic length checks.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", errors.ValidationError("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hash), nil
}

// CheckPassword compares a candidate password with the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
