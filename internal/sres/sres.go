// Package sres implements single-receiver signcryption: a constant-overhead ciphertext that binds
// the sender's identity (via a static Diffie-Hellman key) and forward secrecy (via an ephemeral
// Diffie-Hellman key) into a single duplex transcript.
//
// Grounded on the signcryption scheme in the HPKE/signcrypt corpus (other_examples'
// codahale-thyrse signcrypt.go): absorb both static public keys and a nonce, key with the static
// shared secret, encrypt the ephemeral public key, re-key with the ephemeral shared secret, seal
// the message.
package sres

import (
	"github.com/veil-go/veil/internal/curve"
	"github.com/veil-go/veil/internal/duplex"
)

// NonceLen is the length, in bytes, of the caller-supplied nonce.
const NonceLen = 16

// Overhead is the fixed number of bytes a signcrypted message exceeds its plaintext by: one
// encrypted point (the ephemeral public key) plus one authentication tag.
const Overhead = curve.PointLen + duplex.TagLen

// Seal signcrypts plaintext from sender (dS, qS) via ephemeral (dE, qE) to receiver qR, using nonce
// to separate otherwise-identical transcripts produced under the same static key pair. dS and dE
// are the sender's and ephemeral private scalars; the corresponding public points must also be
// supplied since the duplex never derives qS or qE itself.
func Seal(dS curve.Scalar, qS curve.Point, dE curve.Scalar, qE curve.Point, qR curve.Point, nonce, plaintext []byte) []byte {
	d := newTranscript(qS, qR, nonce)

	staticShared := qR.Multiply(dS)
	d.Absorb(staticShared.Bytes())
	kd := d.IntoKeyed()

	encEphemeral := kd.Encrypt(qE.Bytes())

	ephemeralShared := qR.Multiply(dE)
	kd.Absorb(ephemeralShared.Bytes())

	sealed := kd.Seal(plaintext)

	out := make([]byte, 0, len(encEphemeral)+len(sealed))
	out = append(out, encEphemeral...)
	return append(out, sealed...)
}

// Open reverses Seal for receiver (dR, qR) against sender qS. On success it returns the sender's
// ephemeral public key and the recovered plaintext; on any failure (truncated input, a non-canonical
// decoded ephemeral point, or a tag mismatch) it returns ok = false with no other information, per
// veil's no-oracle error-handling rule.
func Open(dR curve.Scalar, qR curve.Point, qS curve.Point, nonce, ciphertext []byte) (qE curve.Point, plaintext []byte, ok bool) {
	if len(ciphertext) < Overhead {
		return curve.Point{}, nil, false
	}

	d := newTranscript(qS, qR, nonce)

	staticShared := qS.Multiply(dR)
	d.Absorb(staticShared.Bytes())
	kd := d.IntoKeyed()

	encEphemeral := ciphertext[:curve.PointLen]
	qEBytes := kd.Decrypt(encEphemeral)
	qE, valid := curve.PointFromCanonicalBytes(qEBytes)
	if !valid {
		return curve.Point{}, nil, false
	}

	ephemeralShared := qE.Multiply(dR)
	kd.Absorb(ephemeralShared.Bytes())

	pt, ok := kd.Unseal(ciphertext[curve.PointLen:])
	if !ok {
		return curve.Point{}, nil, false
	}
	return qE, pt, true
}

func newTranscript(qS, qR curve.Point, nonce []byte) *duplex.Unkeyed {
	d := duplex.New("veil.sres")
	d.Absorb(qS.Bytes())
	d.Absorb(qR.Bytes())
	d.Absorb(nonce)
	return d
}
