package utils

import (
	"errors"
	"fmt"

	"github.com/prperemyshlev/contact-book/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts. The limit is in bytes,
// so multibyte passwords reach it with fewer characters.
const MaxPasswordBytes = 72

// PasswordFits reports whether bcrypt can hash password
func PasswordFits(password string) bool {
	return len(password) <= MaxPasswordBytes
}

// HashPassword returns the bcrypt digest of password. Costs outside bcrypt's
// range fall back to bcrypt.DefaultCost. Passwords over MaxPasswordBytes
// are rejected with domain.ErrInvalidInput.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password exceeds %d bytes", domain.ErrInvalidInput, MaxPasswordBytes)
		}
		return "", err
	}
	return string(digest), nil
}

// CheckPasswordHash reports whether password matches the stored digest.
// A malformed digest never matches.
func CheckPasswordHash(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
