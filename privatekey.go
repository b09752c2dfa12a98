package veil

import (
	"io"

	"github.com/veil-go/veil/internal/curve"
	"github.com/veil-go/veil/internal/mres"
	"github.com/veil-go/veil/internal/scaldf"
	"github.com/veil-go/veil/internal/schnorr"
)

// PrivateKey pairs a derived private scalar with its public point. It is immutable after
// construction; Zero must be called once it is no longer needed.
type PrivateKey struct {
	d  curve.Scalar
	pk *PublicKey
}

func newPrivateKey(d curve.Scalar) *PrivateKey {
	return &PrivateKey{d: d, pk: &PublicKey{q: d.MulGenerator()}}
}

// PublicKey returns the public counterpart of this private key.
func (k *PrivateKey) PublicKey() *PublicKey {
	return k.pk
}

// Derive applies the hierarchical scalar derivation named by keyID, returning the labeled child
// key. PublicKey().Derive(keyID) on the corresponding public key yields the same point.
func (k *PrivateKey) Derive(keyID string) *PrivateKey {
	return newPrivateKey(scaldf.DeriveScalar(k.d, keyID))
}

// Encrypt reads plaintext from r and writes a multi-receiver ciphertext to w addressed to
// receivers. fakes additional random, indistinguishable-from-real receiver points are appended and
// the full list is shuffled before use, so an observer cannot learn the true receiver count from
// ciphertext structure alone. padding random bytes are inserted between the headers and the
// message body. It returns the number of bytes written to w.
func (k *PrivateKey) Encrypt(rng io.Reader, r io.Reader, w io.Writer, receivers []*PublicKey, fakes int, padding uint64) (int64, error) {
	pts := make([]curve.Point, 0, len(receivers)+fakes)
	for _, rk := range receivers {
		pts = append(pts, rk.q)
	}
	for i := 0; i < fakes; i++ {
		s, err := curve.RandomScalar(rng)
		if err != nil {
			return 0, err
		}
		pts = append(pts, s.MulGenerator())
	}
	if err := shuffle(rng, pts); err != nil {
		return 0, err
	}

	return mres.Encrypt(rng, r, w, k.d, k.pk.q, pts, padding)
}

// Decrypt reads a ciphertext produced by Encrypt from r, addressed from sender, and writes the
// recovered plaintext to w. It returns the number of plaintext bytes written. Any cryptographic
// failure returns ErrInvalidCiphertext; a partial, indeterminate prefix may already have been
// written to w and must be discarded by the caller.
func (k *PrivateKey) Decrypt(r io.Reader, w io.Writer, sender *PublicKey) (int64, error) {
	return mres.Decrypt(r, w, k.d, k.pk.q, sender.q)
}

// Sign produces a stand-alone Schnorr signature over the bytes read from r.
func (k *PrivateKey) Sign(rng io.Reader, r io.Reader) (*Signature, error) {
	b, err := schnorr.Sign(rng, k.d, k.pk.q, r)
	if err != nil {
		return nil, err
	}
	var sig Signature
	copy(sig.b[:], b)
	return &sig, nil
}

// Zero best-effort-clears the private scalar. The PrivateKey must not be used afterward.
func (k *PrivateKey) Zero() {
	k.d = curve.Scalar{}
}
