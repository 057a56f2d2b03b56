package domain

import (
	"errors"
	"time"
)

// ErrInvalidCredentials is returned when a password does not match its hash.
var ErrInvalidCredentials = errors.New("invalid credentials")

// PasswordHasher hashes and verifies the editor password.
type PasswordHasher interface {
	Hash(password string) (hash string, err error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) the editor presents to the events API.
type TokenIssuer interface {
	Issue(subject string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}
