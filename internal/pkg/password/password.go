package password

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// GeneratedLength is the length of system-generated initial passwords.
const GeneratedLength = 8

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Hash derives a salted bcrypt hash from the plaintext. bcrypt embeds a
// fresh random salt in every hash, so two hashes of the same plaintext differ.
func Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// Verify reports whether candidate matches the stored hash. Comparison is
// delegated to bcrypt; hashes are never compared with generic equality.
func Verify(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}

// Generate returns a random mixed-case alphanumeric initial password.
func Generate() (string, error) {
	b := make([]byte, GeneratedLength)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		b[i] = letters[idx.Int64()]
	}
	return string(b), nil
}
