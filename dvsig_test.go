package veil

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesignatedSignatureRoundTrip(t *testing.T) {
	t.Parallel()

	signer := newTestPrivateKey(t)
	verifier := newTestPrivateKey(t)
	msg := []byte("only the designated verifier should trust this")

	sig, err := signer.SignDesignated(rand.Reader, verifier.PublicKey(), bytes.NewReader(msg))
	require.NoError(t, err)

	assert.True(t, verifier.VerifyDesignated(signer.PublicKey(), bytes.NewReader(msg), sig))
}

func TestDesignatedSignatureFailsForOtherVerifier(t *testing.T) {
	t.Parallel()

	signer := newTestPrivateKey(t)
	verifier := newTestPrivateKey(t)
	bystander := newTestPrivateKey(t)
	msg := []byte("message")

	sig, err := signer.SignDesignated(rand.Reader, verifier.PublicKey(), bytes.NewReader(msg))
	require.NoError(t, err)

	assert.False(t, bystander.VerifyDesignated(signer.PublicKey(), bytes.NewReader(msg), sig))
}

func TestDesignatedSignatureStringParseRoundTrip(t *testing.T) {
	t.Parallel()

	signer := newTestPrivateKey(t)
	verifier := newTestPrivateKey(t)
	msg := []byte("message")

	sig, err := signer.SignDesignated(rand.Reader, verifier.PublicKey(), bytes.NewReader(msg))
	require.NoError(t, err)

	got, err := ParseDesignatedSignature(sig.String())
	require.NoError(t, err)
	assert.True(t, verifier.VerifyDesignated(signer.PublicKey(), bytes.NewReader(msg), got))
}

func TestParseDesignatedSignatureRejectsWrongLength(t *testing.T) {
	t.Parallel()

	_, err := ParseDesignatedSignature("x")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}
