package auth

import (
	"errors"
	"fmt"

	"eventeditor/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the most bcrypt will hash.
const maxPasswordBytes = 72

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns the PasswordHasher behind EDITOR_PASSWORD_HASH.
// A cost of 0 uses bcrypt.DefaultCost.
func NewBcryptHasher(cost int) domain.PasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	switch {
	case password == "":
		return "", fmt.Errorf("password is empty")
	case len(password) > maxPasswordBytes:
		return "", fmt.Errorf("password is longer than %d bytes", maxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare returns domain.ErrInvalidCredentials on a mismatch and a wrapped
// error when hash is not a bcrypt hash.
func (h *bcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return domain.ErrInvalidCredentials
	default:
		return fmt.Errorf("invalid password hash: %w", err)
	}
}
