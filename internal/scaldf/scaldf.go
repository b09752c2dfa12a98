// Package scaldf implements veil's hierarchical scalar/key derivation scheme: a chain of string
// labels produces the same additive offset whether applied to a private scalar or its public point,
// so a private key and its corresponding public key can be derived down the same hierarchy
// independently, without ever exposing the private scalar to the public side.
//
// Grounded on the duplex-as-hash-and-KDF pattern from the signcryption/HPKE corpus: each derivation
// step is a fresh, domain-separated duplex squeeze, never a direct hash-to-scalar.
package scaldf

import (
	"strings"

	"github.com/veil-go/veil/internal/curve"
	"github.com/veil-go/veil/internal/duplex"
)

// DeriveRoot derives the root private scalar from a 64-byte secret r.
func DeriveRoot(r []byte) curve.Scalar {
	d := duplex.New("veil.scaldf.root")
	d.Absorb(r)
	return d.SqueezeScalar()
}

// DeriveScalar applies the additive offsets named by keyID to d, returning the derived private
// scalar. keyID is split on '/', with empty leading, trailing, and repeated-delimiter segments
// ignored; a key ID with no non-empty segments returns d unchanged.
func DeriveScalar(d curve.Scalar, keyID string) curve.Scalar {
	for _, label := range labels(keyID) {
		d = d.Add(labelOffset(label))
	}
	return d
}

// DerivePoint applies the same additive offsets named by keyID to q, the public counterpart of
// DeriveScalar. It holds that DerivePoint(d.MulGenerator(), id) equals DeriveScalar(d, id).MulGenerator().
func DerivePoint(q curve.Point, keyID string) curve.Point {
	for _, label := range labels(keyID) {
		q = q.Add(labelOffset(label).MulGenerator())
	}
	return q
}

func labelOffset(label string) curve.Scalar {
	d := duplex.New("veil.scaldf.label")
	d.Absorb([]byte(label))
	return d.SqueezeScalar()
}

func labels(keyID string) []string {
	parts := strings.Split(keyID, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
