package scaldf

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veil-go/veil/internal/curve"
)

func TestDeriveScalarPointSymmetry(t *testing.T) {
	t.Parallel()

	var r [64]byte
	_, err := rand.Read(r[:])
	require.NoError(t, err)

	d := DeriveRoot(r[:])
	q := d.MulGenerator()

	for _, id := range []string{"", "/", "a", "a/b/c", "/a/b/c/", "a//b"} {
		gotScalar := DeriveScalar(d, id).MulGenerator()
		gotPoint := DerivePoint(q, id)
		assert.True(t, gotScalar.Equal(gotPoint), "key id %q", id)
	}
}

func TestDeriveIsAdditiveAcrossLabelSplits(t *testing.T) {
	t.Parallel()

	s, err := curve.RandomScalar(rand.Reader)
	require.NoError(t, err)

	combined := DeriveScalar(s, "alpha/beta")
	chained := DeriveScalar(DeriveScalar(s, "alpha"), "beta")

	assert.Equal(t, combined.Bytes(), chained.Bytes())
}

func TestEmptyKeyIDIsIdentityDerivation(t *testing.T) {
	t.Parallel()

	s, err := curve.RandomScalar(rand.Reader)
	require.NoError(t, err)

	assert.Equal(t, s.Bytes(), DeriveScalar(s, "").Bytes())
	assert.Equal(t, s.Bytes(), DeriveScalar(s, "///").Bytes())
}

func TestDeriveRootIsDeterministic(t *testing.T) {
	t.Parallel()

	var r [64]byte
	_, err := rand.Read(r[:])
	require.NoError(t, err)

	assert.Equal(t, DeriveRoot(r[:]).Bytes(), DeriveRoot(r[:]).Bytes())
}
