package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Admin password bounds. MaxPasswordLength is in bytes; bcrypt rejects
// anything longer.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

var (
	// ErrPasswordTooShort is returned by HashPassword for short passwords.
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	// ErrPasswordTooLong is returned by HashPassword for passwords over
	// MaxPasswordLength bytes.
	ErrPasswordTooLong = fmt.Errorf("password must be at most %d bytes", MaxPasswordLength)
)

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares password against a bcrypt hash in constant time.
func CheckPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("check password: %w", err)
	}
	return nil
}
