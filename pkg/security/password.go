package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost used for every stored password.
const DefaultCost = 12

// ErrEmptyPassword is returned when hashing an empty password.
var ErrEmptyPassword = errors.New("password is empty")

// Hash returns the bcrypt hash of plain.
func Hash(plain string) (string, error) {
	return HashWithCost(plain, DefaultCost)
}

// HashWithCost is Hash with an explicit cost. Tests use bcrypt.MinCost.
func HashWithCost(plain string, cost int) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches hashed. A malformed hash never matches.
func Verify(plain, hashed string) bool {
	if plain == "" || hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// Hasher is the password primitive consumed by services.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) bool
}

// BcryptHasher implements Hasher with a fixed cost.
type BcryptHasher struct {
	Cost int
}

// Hash implements Hasher.
func (h BcryptHasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = DefaultCost
	}
	return HashWithCost(plain, cost)
}

// Verify implements Hasher.
func (h BcryptHasher) Verify(plain, hashed string) bool {
	return Verify(plain, hashed)
}
