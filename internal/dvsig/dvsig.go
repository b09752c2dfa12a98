// Package dvsig implements a designated-verifier signature: proof that the signer produced a
// message, convincing only to one chosen verifier and not transferable to anyone else, because the
// verifier could have forged an identical-looking proof themselves.
//
// This is one of the schemes present in the reference implementation this package's wider system
// was distilled from but dropped from the distilled feature set; it is grounded directly on that
// construction (a Chaum/Jakobsson-style designated-verifier signature over a transcript), adapted
// from Strobe-style absorb/squeeze/hedge operations onto internal/duplex's equivalent API.
package dvsig

import (
	"io"

	"github.com/veil-go/veil/internal/curve"
	"github.com/veil-go/veil/internal/duplex"
	"github.com/veil-go/veil/internal/entropy"
)

// Len is the fixed length, in bytes, of a designated-verifier signature: two canonically encoded
// points.
const Len = curve.PointLen * 2

// Sign produces a signature over the bytes read from message, by signer (dS, qS), designated to be
// checkable only by the holder of verifier's private scalar.
func Sign(rng io.Reader, dS curve.Scalar, qS curve.Point, qV curve.Point, message io.Reader) ([]byte, error) {
	p := duplex.New("veil.dvsig")
	p.Absorb(qS.Bytes())
	p.Absorb(qV.Bytes())

	if err := p.AbsorbReader(message); err != nil {
		return nil, err
	}

	if rng == nil {
		rng = entropy.Source
	}
	k, err := duplex.Hedge(p, rng, dS.Bytes(), func(clone *duplex.Unkeyed) curve.Scalar {
		return clone.SqueezeScalar()
	})
	if err != nil {
		return nil, err
	}
	u := k.MulGenerator()
	p.Absorb(u.Bytes())

	r := p.SqueezeScalar()
	s := k.Add(r.Multiply(dS))
	commitment := qV.Multiply(s)

	sig := make([]byte, 0, Len)
	sig = append(sig, u.Bytes()...)
	return append(sig, commitment.Bytes()...), nil
}

// Verify checks sig, produced by signer qS over the bytes read from message, using the designated
// verifier's own private scalar dV and public point qV.
func Verify(dV curve.Scalar, qV curve.Point, qS curve.Point, message io.Reader, sig []byte) bool {
	if len(sig) != Len {
		return false
	}
	u, ok := curve.PointFromCanonicalBytes(sig[:curve.PointLen])
	if !ok {
		return false
	}
	commitment, ok := curve.PointFromCanonicalBytes(sig[curve.PointLen:])
	if !ok {
		return false
	}

	p := duplex.New("veil.dvsig")
	p.Absorb(qS.Bytes())
	p.Absorb(qV.Bytes())

	if err := p.AbsorbReader(message); err != nil {
		return false
	}
	p.Absorb(u.Bytes())

	r := p.SqueezeScalar()
	candidate := u.Add(qS.Multiply(r)).Multiply(dV)

	return candidate.Equal(commitment)
}
