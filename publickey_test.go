package veil

import (
	"crypto/rand"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicKeyStringParseRoundTrip(t *testing.T) {
	t.Parallel()

	root := newTestPrivateKey(t)
	pk := root.PublicKey()

	s := pk.String()
	got, err := ParsePublicKey(s)
	require.NoError(t, err)
	assert.True(t, pk.q.Equal(got.q))
}

func TestParsePublicKeyRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := ParsePublicKey("not-valid-base58-!!!")
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
}

func TestParsePublicKeyRejectsWrongLength(t *testing.T) {
	t.Parallel()

	short := make([]byte, 16)
	_, err := rand.Read(short)
	require.NoError(t, err)

	_, err = ParsePublicKey(base58.Encode(short))
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
}

func TestPublicKeyDeriveIsDeterministic(t *testing.T) {
	t.Parallel()

	root := newTestPrivateKey(t)
	a := root.PublicKey().Derive("/a/b")
	b := root.PublicKey().Derive("/a/b")
	assert.True(t, a.q.Equal(b.q))
}
