// Package curve wraps the Ristretto255 prime-order group for veil's public-key operations.
//
// Every Scalar and Point is validated on decode: scalars reject the zero value and points reject
// the group identity, per the data model's invariant that secrets and public keys are always
// non-trivial group elements. Grounded on github.com/gtank/ristretto255's canonical
// encode/decode API, as used throughout the signcryption and HPKE schemes in the wider corpus.
package curve

import (
	"io"

	"github.com/gtank/ristretto255"

	"github.com/veil-go/veil/internal/entropy"
)

const (
	// ScalarLen is the length, in bytes, of a canonically encoded Scalar.
	ScalarLen = 32

	// PointLen is the length, in bytes, of a canonically encoded Point.
	PointLen = 32

	// UniformLen is the number of bytes needed to map uniformly to a Scalar without bias.
	UniformLen = 64
)

// Scalar is an element of the Ristretto255 scalar field.
type Scalar struct {
	inner *ristretto255.Scalar
}

// Point is an element of the Ristretto255 group.
type Point struct {
	inner *ristretto255.Element
}

// Generator returns the group's fixed base point G.
func Generator() Point {
	return Point{inner: ristretto255.NewIdentityElement().ScalarBaseMult(one())}
}

func one() *ristretto255.Scalar {
	var b [ScalarLen]byte
	b[0] = 1
	s, err := ristretto255.NewScalar().SetCanonicalBytes(b[:])
	if err != nil {
		panic("curve: failed to decode scalar one: " + err.Error())
	}
	return s
}

// RandomScalar returns a uniformly distributed, non-zero Scalar read from r.
func RandomScalar(r io.Reader) (Scalar, error) {
	var buf [UniformLen]byte
	for {
		if err := entropy.Read(r, buf[:]); err != nil {
			return Scalar{}, err
		}
		s, err := ristretto255.NewScalar().SetUniformBytes(buf[:])
		if err != nil {
			return Scalar{}, err
		}
		if s.Equal(ristretto255.NewScalar()) == 1 {
			continue // reject the vanishingly unlikely zero scalar
		}
		return Scalar{inner: s}, nil
	}
}

// ScalarFromUniformBytes maps 64 bytes of uniform randomness to a Scalar without rejecting zero.
// Used internally by the duplex, which loops until it observes a non-zero result.
func ScalarFromUniformBytes(b []byte) (Scalar, error) {
	s, err := ristretto255.NewScalar().SetUniformBytes(b)
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{inner: s}, nil
}

// MustScalarFromSqueeze maps 64 bytes of duplex squeeze output to a Scalar. It panics only on a
// length mismatch, which would be a caller bug, never attacker-controlled input: duplex squeeze
// output is always UniformLen bytes, and a zero result occurs with negligible probability.
func MustScalarFromSqueeze(b []byte) Scalar {
	s, err := ScalarFromUniformBytes(b)
	if err != nil {
		panic("curve: failed to widen squeeze to scalar: " + err.Error())
	}
	return s
}

// ScalarFromCanonicalBytes decodes a 32-byte canonical scalar encoding, rejecting the zero scalar.
func ScalarFromCanonicalBytes(b []byte) (Scalar, bool) {
	if len(b) != ScalarLen {
		return Scalar{}, false
	}
	s, err := ristretto255.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		return Scalar{}, false
	}
	if s.Equal(ristretto255.NewScalar()) == 1 {
		return Scalar{}, false
	}
	return Scalar{inner: s}, true
}

// IsZero reports whether s is the additive identity. Only meaningful for intermediate sums; a
// Scalar obtained via ScalarFromCanonicalBytes or RandomScalar is never zero.
func (s Scalar) IsZero() bool {
	return s.inner == nil || s.inner.Equal(ristretto255.NewScalar()) == 1
}

// Bytes returns the canonical 32-byte encoding of s.
func (s Scalar) Bytes() []byte {
	return s.inner.Bytes()
}

// Add returns s + o.
func (s Scalar) Add(o Scalar) Scalar {
	return Scalar{inner: ristretto255.NewScalar().Add(s.inner, o.inner)}
}

// Multiply returns s * o.
func (s Scalar) Multiply(o Scalar) Scalar {
	return Scalar{inner: ristretto255.NewScalar().Multiply(s.inner, o.inner)}
}

// Negate returns -s.
func (s Scalar) Negate() Scalar {
	return Scalar{inner: ristretto255.NewScalar().Negate(s.inner)}
}

// MulGenerator returns s * G.
func (s Scalar) MulGenerator() Point {
	return Point{inner: ristretto255.NewIdentityElement().ScalarBaseMult(s.inner)}
}

// PointFromCanonicalBytes decodes a 32-byte canonical point encoding, rejecting the identity.
func PointFromCanonicalBytes(b []byte) (Point, bool) {
	if len(b) != PointLen {
		return Point{}, false
	}
	p, err := ristretto255.NewIdentityElement().SetCanonicalBytes(b)
	if err != nil {
		return Point{}, false
	}
	if p.Equal(ristretto255.NewIdentityElement()) == 1 {
		return Point{}, false
	}
	return Point{inner: p}, true
}

// Bytes returns the canonical 32-byte encoding of p.
func (p Point) Bytes() []byte {
	return p.inner.Bytes()
}

// Add returns p + o.
func (p Point) Add(o Point) Point {
	return Point{inner: ristretto255.NewIdentityElement().Add(p.inner, o.inner)}
}

// Multiply returns s * p.
func (p Point) Multiply(s Scalar) Point {
	return Point{inner: ristretto255.NewIdentityElement().ScalarMult(s.inner, p.inner)}
}

// Negate returns -p.
func (p Point) Negate() Point {
	return Point{inner: ristretto255.NewIdentityElement().Negate(p.inner)}
}

// Equal reports whether p and o encode the same group element.
func (p Point) Equal(o Point) bool {
	if p.inner == nil || o.inner == nil {
		return p.inner == o.inner
	}
	return p.inner.Equal(o.inner) == 1
}

// IsZero reports whether p has not been initialized (the Point zero value).
func (p Point) IsZero() bool {
	return p.inner == nil
}
