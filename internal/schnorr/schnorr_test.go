package schnorr

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veil-go/veil/internal/curve"
	"github.com/veil-go/veil/internal/duplex"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	d, err := curve.RandomScalar(rand.Reader)
	require.NoError(t, err)
	q := d.MulGenerator()

	msg := []byte("the message to be signed")
	sig, err := Sign(rand.Reader, d, q, bytes.NewReader(msg))
	require.NoError(t, err)
	assert.Len(t, sig, Len)

	assert.True(t, Verify(q, bytes.NewReader(msg), sig))
}

func TestVerifyFailsWithWrongKey(t *testing.T) {
	t.Parallel()

	d, err := curve.RandomScalar(rand.Reader)
	require.NoError(t, err)
	q := d.MulGenerator()

	other, err := curve.RandomScalar(rand.Reader)
	require.NoError(t, err)
	otherQ := other.MulGenerator()

	msg := []byte("the message to be signed")
	sig, err := Sign(rand.Reader, d, q, bytes.NewReader(msg))
	require.NoError(t, err)

	assert.False(t, Verify(otherQ, bytes.NewReader(msg), sig))
}

func TestVerifyFailsWithWrongMessage(t *testing.T) {
	t.Parallel()

	d, err := curve.RandomScalar(rand.Reader)
	require.NoError(t, err)
	q := d.MulGenerator()

	sig, err := Sign(rand.Reader, d, q, bytes.NewReader([]byte("original")))
	require.NoError(t, err)

	assert.False(t, Verify(q, bytes.NewReader([]byte("tampered")), sig))
}

func TestVerifyFailsOnBitFlip(t *testing.T) {
	t.Parallel()

	d, err := curve.RandomScalar(rand.Reader)
	require.NoError(t, err)
	q := d.MulGenerator()

	msg := []byte("message")
	sig, err := Sign(rand.Reader, d, q, bytes.NewReader(msg))
	require.NoError(t, err)

	sig[0] ^= 1
	assert.False(t, Verify(q, bytes.NewReader(msg), sig))
}

func TestVerifyRejectsWrongLength(t *testing.T) {
	t.Parallel()

	d, err := curve.RandomScalar(rand.Reader)
	require.NoError(t, err)
	q := d.MulGenerator()

	assert.False(t, Verify(q, bytes.NewReader([]byte("x")), make([]byte, Len-1)))
}

func TestSignKeyedOverSharedTranscript(t *testing.T) {
	t.Parallel()

	d, err := curve.RandomScalar(rand.Reader)
	require.NoError(t, err)
	q := d.MulGenerator()

	signerState := duplex.New("shared")
	signerState.Absorb([]byte("prior context"))
	sig, err := SignTranscript(signerState, rand.Reader, d)
	require.NoError(t, err)

	verifierState := duplex.New("shared")
	verifierState.Absorb([]byte("prior context"))
	assert.True(t, VerifyTranscript(verifierState, q, sig))
}
