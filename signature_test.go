package veil

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureStringParseRoundTrip(t *testing.T) {
	t.Parallel()

	signer := newTestPrivateKey(t)
	msg := []byte("payload to sign")

	sig, err := signer.Sign(rand.Reader, bytes.NewReader(msg))
	require.NoError(t, err)

	got, err := ParseSignature(sig.String())
	require.NoError(t, err)
	assert.Equal(t, sig.Bytes(), got.Bytes())
	assert.True(t, signer.PublicKey().Verify(bytes.NewReader(msg), got))
}

func TestParseSignatureRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := ParseSignature("not a real signature")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}
