package helpers

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"hash"

	"golang.org/x/crypto/pbkdf2"
)

// PasswordHasher derives and verifies salted PBKDF2 password hashes.
// The stored format is salt followed by the derived key; the salt occupies a
// fixed-length prefix so Verify can recover it by slicing. Algorithm,
// iteration count, and salt length are process-wide configuration, not
// per-call knobs.
type PasswordHasher struct {
	Algorithm  string
	Iterations int
	SaltLength int
}

func NewPasswordHasher(algorithm string, iterations, saltLength int) *PasswordHasher {
	return &PasswordHasher{Algorithm: algorithm, Iterations: iterations, SaltLength: saltLength}
}

func (h *PasswordHasher) hashFunc() func() hash.Hash {
	switch h.Algorithm {
	case "sha1":
		return sha1.New
	case "sha512":
		return sha512.New
	default:
		return sha256.New
	}
}

// GenerateSalt returns SaltLength cryptographically secure random bytes.
func (h *PasswordHasher) GenerateSalt() ([]byte, error) {
	salt := make([]byte, h.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// Hash derives a key from the password and salt. Deterministic for a given
// configuration.
func (h *PasswordHasher) Hash(password string, salt []byte) []byte {
	fn := h.hashFunc()
	return pbkdf2.Key([]byte(password), salt, h.Iterations, fn().Size(), fn)
}

// Seal generates a fresh salt and returns the storable salt-prefixed hash.
func (h *PasswordHasher) Seal(password string) ([]byte, error) {
	salt, err := h.GenerateSalt()
	if err != nil {
		return nil, err
	}
	return append(salt, h.Hash(password, salt)...), nil
}

// Verify recomputes the derived key from the stored salt prefix and compares
// it to the stored key in constant time.
func (h *PasswordHasher) Verify(password string, stored []byte) bool {
	if len(stored) <= h.SaltLength {
		return false
	}
	salt, expected := stored[:h.SaltLength], stored[h.SaltLength:]
	return subtle.ConstantTimeCompare(h.Hash(password, salt), expected) == 1
}
