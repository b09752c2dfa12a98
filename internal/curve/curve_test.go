package curve

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorConsistentWithScalarMultiply(t *testing.T) {
	t.Parallel()

	g := Generator()
	assert.False(t, g.IsZero())

	s, err := RandomScalar(rand.Reader)
	require.NoError(t, err)

	// s*G computed via MulGenerator must agree with s applied to the generator point directly.
	assert.True(t, s.MulGenerator().Equal(g.Multiply(s)))
}

func TestRandomScalarRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := RandomScalar(rand.Reader)
	require.NoError(t, err)
	assert.False(t, s.IsZero())

	decoded, ok := ScalarFromCanonicalBytes(s.Bytes())
	require.True(t, ok)
	assert.Equal(t, s.Bytes(), decoded.Bytes())
}

func TestScalarFromCanonicalBytesRejectsZero(t *testing.T) {
	t.Parallel()

	var zero [ScalarLen]byte
	_, ok := ScalarFromCanonicalBytes(zero[:])
	assert.False(t, ok)
}

func TestScalarFromCanonicalBytesRejectsWrongLength(t *testing.T) {
	t.Parallel()

	_, ok := ScalarFromCanonicalBytes(make([]byte, ScalarLen-1))
	assert.False(t, ok)
}

func TestPointFromCanonicalBytesRejectsIdentity(t *testing.T) {
	t.Parallel()

	s, err := RandomScalar(rand.Reader)
	require.NoError(t, err)

	identity := s.MulGenerator().Add(s.Negate().MulGenerator())
	_, ok := PointFromCanonicalBytes(identity.Bytes())
	assert.False(t, ok)
}

func TestScalarMulGeneratorMatchesAdd(t *testing.T) {
	t.Parallel()

	a, err := RandomScalar(rand.Reader)
	require.NoError(t, err)
	b, err := RandomScalar(rand.Reader)
	require.NoError(t, err)

	lhs := a.Add(b).MulGenerator()
	rhs := a.MulGenerator().Add(b.MulGenerator())
	assert.True(t, lhs.Equal(rhs))
}

func TestPointNegateCancels(t *testing.T) {
	t.Parallel()

	s, err := RandomScalar(rand.Reader)
	require.NoError(t, err)

	p := s.MulGenerator()
	sum := p.Add(p.Negate())
	_, ok := PointFromCanonicalBytes(sum.Bytes())
	assert.False(t, ok, "p + (-p) should be the identity, which is never a valid canonical point")
}
