package utils

import (
	"regexp"
	"strings"

	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) error {
	if email == "" {
		return apperrors.NewValidationError("Email is required")
	}

	if !emailPattern.MatchString(email) {
		return apperrors.NewValidationError("Invalid email format")
	}

	return nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return apperrors.NewValidationError("Password is required")
	}

	if len(password) < 6 {
		return apperrors.NewValidationError("Password must be at least 6 characters long")
	}

	return nil
}

func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.NewValidationError(fieldName + " is required")
	}
	return nil
}

// CreateHash hashes a plaintext secret (password) with bcrypt.
func CreateHash(secret []byte) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(secret, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ValidateHash compares a plaintext secret against its bcrypt hash.
func ValidateHash(secret []byte, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), secret)
}
