package veil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDigestStringParseRoundTrip(t *testing.T) {
	t.Parallel()

	meta := [][]byte{[]byte("subject:invoice-42"), []byte("from:alice")}
	msg := []byte("invoice body text")

	d, err := ComputeDigest(meta, bytes.NewReader(msg))
	require.NoError(t, err)

	got, err := ParseDigest(d.String())
	require.NoError(t, err)
	assert.True(t, d.Equal(got))
}

func TestDigestEqualDetectsMismatch(t *testing.T) {
	t.Parallel()

	a, err := ComputeDigest([][]byte{[]byte("a")}, bytes.NewReader([]byte("msg")))
	require.NoError(t, err)
	b, err := ComputeDigest([][]byte{[]byte("b")}, bytes.NewReader([]byte("msg")))
	require.NoError(t, err)

	assert.False(t, a.Equal(b))
}

func TestParseDigestRejectsWrongLength(t *testing.T) {
	t.Parallel()

	_, err := ParseDigest("short")
	assert.ErrorIs(t, err, ErrInvalidDigest)
}
