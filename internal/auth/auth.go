// Package auth hashes and verifies user secrets. The ledger core only ever
// sees boolean check results, never plaintext comparisons.
package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// DefaultRounds is the default PBKDF2 iteration count.
const DefaultRounds = 100_000

const (
	saltLen = 32
	keyLen  = 32
)

// Credentials holds the salted PBKDF2-HMAC-SHA256 digests of a user's
// password and PIN. One salt covers both secrets.
type Credentials struct {
	Salt         []byte
	PasswordHash []byte
	PINHash      []byte
	Rounds       int
}

// NewCredentials generates a fresh salt and hashes both secrets.
func NewCredentials(password, pin string, rounds int) (Credentials, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return Credentials{}, fmt.Errorf("generating salt: %w", err)
	}

	return Credentials{
		Salt:         salt,
		PasswordHash: derive(password, salt, rounds),
		PINHash:      derive(pin, salt, rounds),
		Rounds:       rounds,
	}, nil
}

// CheckPassword reports whether password matches the stored digest.
func (c Credentials) CheckPassword(password string) bool {
	return hmac.Equal(c.PasswordHash, derive(password, c.Salt, c.Rounds))
}

// CheckPIN reports whether pin matches the stored digest.
func (c Credentials) CheckPIN(pin string) bool {
	return hmac.Equal(c.PINHash, derive(pin, c.Salt, c.Rounds))
}

// SetPassword replaces the password digest, keeping the existing salt.
func (c *Credentials) SetPassword(password string) {
	c.PasswordHash = derive(password, c.Salt, c.Rounds)
}

// SetPIN replaces the PIN digest, keeping the existing salt.
func (c *Credentials) SetPIN(pin string) {
	c.PINHash = derive(pin, c.Salt, c.Rounds)
}

func derive(secret string, salt []byte, rounds int) []byte {
	return pbkdf2.Key([]byte(secret), salt, rounds, keyLen, sha256.New)
}
