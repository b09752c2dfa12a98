package veil

import (
	"io"

	"github.com/mr-tron/base58"

	"github.com/veil-go/veil/internal/curve"
	"github.com/veil-go/veil/internal/scaldf"
	"github.com/veil-go/veil/internal/schnorr"
)

// PublicKey is a non-identity point on the curve. It is an immutable value, safe to share and
// compare concurrently.
type PublicKey struct {
	q curve.Point
}

// Derive applies the same hierarchical derivation as PrivateKey.Derive to the public point.
func (k *PublicKey) Derive(keyID string) *PublicKey {
	return &PublicKey{q: scaldf.DerivePoint(k.q, keyID)}
}

// Verify checks sig against the bytes read from r as a stand-alone Schnorr signature by this key.
func (k *PublicKey) Verify(r io.Reader, sig *Signature) bool {
	return schnorr.Verify(k.q, r, sig.b[:])
}

// Bytes returns the canonical encoding of the public point.
func (k *PublicKey) Bytes() []byte {
	return k.q.Bytes()
}

// String returns the base58 encoding of the public point.
func (k *PublicKey) String() string {
	return base58.Encode(k.q.Bytes())
}

// ParsePublicKey decodes a base58-encoded public key. It returns ErrInvalidPublicKey if s does not
// decode to exactly PointLen bytes or the decoded bytes are not a canonical, non-identity point.
func ParsePublicKey(s string) (*PublicKey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return nil, ErrInvalidPublicKey
	}
	q, ok := curve.PointFromCanonicalBytes(b)
	if !ok {
		return nil, ErrInvalidPublicKey
	}
	return &PublicKey{q: q}, nil
}
