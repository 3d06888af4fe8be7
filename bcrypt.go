package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword will generate a password hash. bcrypt embeds a fresh random
// salt per call, so hashing the same password twice yields different strings.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost())
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext
// password matches the hashed password. Malformed hashes report a
// mismatch like any other failed comparison.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		// malformed hashes report the same mismatch as a wrong password
		return ErrMismatchedHashAndPassword
	}
	return nil
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// BcryptAuthenticator is the default PasswordAuthenticator
type BcryptAuthenticator struct{}

func (BcryptAuthenticator) HashPassword(password string) (string, error) {
	return HashPassword(password)
}

func (BcryptAuthenticator) ComparePasswordAndHash(password, hash string) error {
	return ComparePasswordAndHash(password, hash)
}

var _ PasswordAuthenticator = BcryptAuthenticator{}

// burnPasswordCompare runs a throwaway bcrypt comparison so code paths that
// reject before comparing (e.g. unknown email) take comparable time to a
// real mismatch.
func burnPasswordCompare(password string) {
	_ = ComparePasswordAndHash(password, dummyPasswordHash)
}

// bcrypt hash of a random value, used only to equalize timing.
const dummyPasswordHash = "$2a$14$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
