package auth

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the hashes already stored in production.
const bcryptCost = 12

// Password rule violations. Each rule answers its own message so the client
// can tell the user exactly what to fix.
var (
	ErrPasswordTooShort    = errors.New("Password must be at least 6 characters long")
	ErrPasswordNoUppercase = errors.New("Password must contain at least one uppercase letter")
	ErrPasswordNoDigit     = errors.New("Password must contain at least one digit")
)

func ValidatePassword(password string) error {
	if len(password) < 6 {
		return ErrPasswordTooShort
	}

	hasUpper := false
	hasDigit := false
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}

	if !hasUpper {
		return ErrPasswordNoUppercase
	}
	if !hasDigit {
		return ErrPasswordNoDigit
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
