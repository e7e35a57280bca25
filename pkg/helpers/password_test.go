package helpers

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHasher() *PasswordHasher {
	// low iteration count keeps the suite fast
	return NewPasswordHasher("sha256", 1000, 16)
}

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := newTestHasher()

	stored, err := h.Seal("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, h.Verify("correct horse battery staple", stored))
	assert.False(t, h.Verify("correct horse battery stable", stored))
	assert.False(t, h.Verify("", stored))
}

func TestPasswordHasher_StoredFormat(t *testing.T) {
	h := newTestHasher()

	stored, err := h.Seal("pw1")
	require.NoError(t, err)
	// salt prefix + sha256-sized derived key
	require.Len(t, stored, h.SaltLength+sha256.Size)

	salt := stored[:h.SaltLength]
	assert.Equal(t, h.Hash("pw1", salt), []byte(stored[h.SaltLength:]))
}

func TestPasswordHasher_HashDeterministic(t *testing.T) {
	h := newTestHasher()
	salt := []byte("0123456789abcdef")

	assert.Equal(t, h.Hash("pw", salt), h.Hash("pw", salt))
	assert.NotEqual(t, h.Hash("pw", salt), h.Hash("pw2", salt))
	assert.NotEqual(t, h.Hash("pw", salt), h.Hash("pw", []byte("fedcba9876543210")))
}

func TestPasswordHasher_SaltsDiffer(t *testing.T) {
	h := newTestHasher()

	a, err := h.GenerateSalt()
	require.NoError(t, err)
	b, err := h.GenerateSalt()
	require.NoError(t, err)

	require.Len(t, a, h.SaltLength)
	assert.NotEqual(t, a, b)
}

func TestPasswordHasher_VerifyTampered(t *testing.T) {
	h := newTestHasher()

	stored, err := h.Seal("pw1")
	require.NoError(t, err)

	tampered := append([]byte(nil), stored...)
	tampered[len(tampered)-1] ^= 0x01
	assert.False(t, h.Verify("pw1", tampered))
}

func TestPasswordHasher_VerifyShortInput(t *testing.T) {
	h := newTestHasher()

	assert.False(t, h.Verify("pw1", nil))
	assert.False(t, h.Verify("pw1", make([]byte, h.SaltLength)))
}
