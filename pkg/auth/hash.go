package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt silently truncates input past 72 bytes, so longer passwords are
// rejected instead of partially hashed.
const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

var ErrWeakPassword = errors.New("password must be at least 8 characters")

type HashServiceInterface interface {
	HashPassword(password string) (string, error)
	ComparePassword(hashedPassword, password string) bool
}

// HashService hashes account credentials with bcrypt.
type HashService struct {
	cost int
}

func NewHashService() *HashService {
	return &HashService{cost: bcrypt.DefaultCost}
}

func (h *HashService) HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrWeakPassword
	}
	if len(password) > maxPasswordLength {
		return "", errors.New("password is too long")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *HashService) ComparePassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
