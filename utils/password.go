package utils

import (
	"crypto/rand"
)

const (
	// PasswordLength is the size of generated onboarding credentials
	PasswordLength = 16

	// PasswordCharset mixes upper/lowercase letters, digits and symbols
	PasswordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// GeneratePassword returns a random credential for gateway user creation.
// The value is transient: it is handed to the identity gateway and never
// stored or surfaced to the caller.
func GeneratePassword() (string, error) {
	bytes := make([]byte, PasswordLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	password := make([]byte, PasswordLength)
	for i, b := range bytes {
		password[i] = PasswordCharset[int(b)%len(PasswordCharset)]
	}

	return string(password), nil
}
