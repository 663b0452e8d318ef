package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = bcrypt.DefaultCost

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword returns nil when the password matches the stored hash.
func ComparePassword(hash, password string) error {
	if hash == "" || password == "" {
		return errors.New("missing hash or password")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
