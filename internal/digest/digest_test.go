package digest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDeterministic(t *testing.T) {
	t.Parallel()

	meta := [][]byte{[]byte("from:alice"), []byte("to:bob")}
	msg := []byte("hello")

	a, err := Compute(meta, bytes.NewReader(msg))
	require.NoError(t, err)
	b, err := Compute(meta, bytes.NewReader(msg))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestComputeSensitiveToMetadataOrder(t *testing.T) {
	t.Parallel()

	msg := []byte("hello")

	a, err := Compute([][]byte{[]byte("from:alice"), []byte("to:bob")}, bytes.NewReader(msg))
	require.NoError(t, err)
	b, err := Compute([][]byte{[]byte("to:bob"), []byte("from:alice")}, bytes.NewReader(msg))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestComputeSensitiveToMessage(t *testing.T) {
	t.Parallel()

	meta := [][]byte{[]byte("from:alice")}

	a, err := Compute(meta, bytes.NewReader([]byte("hello")))
	require.NoError(t, err)
	b, err := Compute(meta, bytes.NewReader([]byte("goodbye")))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
