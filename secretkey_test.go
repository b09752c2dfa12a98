package veil

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTime   = 1
	testMemory = 8 * 1024
)

func TestSecretKeyEncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()

	sk, err := NewSecretKey(rand.Reader)
	require.NoError(t, err)

	passphrase := []byte("a very good passphrase")
	ct, err := sk.Encrypt(rand.Reader, passphrase, testTime, testMemory)
	require.NoError(t, err)

	got, err := DecryptSecretKey(passphrase, ct)
	require.NoError(t, err)
	assert.Equal(t, sk.r, got.r)
}

func TestSecretKeyDecryptFailsWithWrongPassphrase(t *testing.T) {
	t.Parallel()

	sk, err := NewSecretKey(rand.Reader)
	require.NoError(t, err)

	ct, err := sk.Encrypt(rand.Reader, []byte("correct"), testTime, testMemory)
	require.NoError(t, err)

	_, err = DecryptSecretKey([]byte("wrong"), ct)
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestSecretKeyDerivesStablePrivateKey(t *testing.T) {
	t.Parallel()

	sk, err := NewSecretKey(rand.Reader)
	require.NoError(t, err)

	pk1 := sk.PrivateKey()
	pk2 := sk.PrivateKey()
	assert.True(t, pk1.PublicKey().q.Equal(pk2.PublicKey().q))
}

func TestSecretKeyZero(t *testing.T) {
	t.Parallel()

	sk, err := NewSecretKey(rand.Reader)
	require.NoError(t, err)

	sk.Zero()
	for _, b := range sk.r {
		assert.Zero(t, b)
	}
}
