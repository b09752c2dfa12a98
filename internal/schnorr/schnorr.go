// Package schnorr implements veil's duplex-bound Schnorr signature: a signature whose challenge is
// derived from an arbitrary, already-in-progress duplex transcript rather than a hash of the message
// alone, so it can be layered onto the tail of another protocol (MRES uses it to sign the entire
// encryption transcript, after that transcript has already been promoted to a keyed duplex) or used
// stand-alone over a streamed message.
//
// Grounded on the newest reference construction (lockstitch/crrl based), which widens a 128-bit
// squeeze to a scalar for the challenge rather than squeezing a full-width scalar directly; both
// sides of veil must agree bit-for-bit, so every caller goes through the *Transcript or *Keyed
// entry points rather than reimplementing the sequence.
package schnorr

import (
	"io"

	"github.com/veil-go/veil/internal/curve"
	"github.com/veil-go/veil/internal/duplex"
	"github.com/veil-go/veil/internal/entropy"
)

// Len is the fixed length, in bytes, of a signature: one encrypted point plus one encrypted scalar.
const Len = curve.PointLen + curve.ScalarLen

// challengeLen is the width, in bytes, of the squeeze widened into a challenge scalar.
const challengeLen = 16

// SignTranscript signs against the live unkeyed protocol state p (which may already hold an
// arbitrary absorbed history) using signer private scalar d, promoting p to a keyed duplex in the
// process. rng supplies the fresh randomness mixed into the hedge that derives the per-signature
// commitment scalar.
func SignTranscript(p *duplex.Unkeyed, rng io.Reader, d curve.Scalar) ([]byte, error) {
	return SignKeyed(p.IntoKeyed(), rng, d)
}

// VerifyTranscript verifies sig against the live unkeyed protocol state p, which must have been
// built up identically to the state SignTranscript was called against, using signer public point q.
func VerifyTranscript(p *duplex.Unkeyed, q curve.Point, sig []byte) bool {
	return VerifyKeyed(p.IntoKeyed(), q, sig)
}

// SignKeyed signs against a protocol state that has already been promoted to a keyed duplex, as
// MRES does after sealing its message blocks. The signature binds everything absorbed or sealed
// through kd before this call.
func SignKeyed(kd *duplex.Keyed, rng io.Reader, d curve.Scalar) ([]byte, error) {
	if rng == nil {
		rng = entropy.Source
	}

	k, err := duplex.HedgeKeyed(kd, rng, d.Bytes(), func(clone *duplex.Keyed) curve.Scalar {
		return curve.MustScalarFromSqueeze(clone.Squeeze(curve.UniformLen))
	})
	if err != nil {
		return nil, err
	}

	commitment := k.MulGenerator()
	encCommitment := kd.Encrypt(commitment.Bytes())

	challenge := squeezeChallenge(kd)
	s := d.Multiply(challenge).Add(k)
	encS := kd.Encrypt(s.Bytes())

	sig := make([]byte, 0, Len)
	sig = append(sig, encCommitment...)
	return append(sig, encS...), nil
}

// VerifyKeyed verifies sig against a protocol state already promoted to a keyed duplex, mirroring
// SignKeyed.
func VerifyKeyed(kd *duplex.Keyed, q curve.Point, sig []byte) bool {
	if len(sig) != Len {
		return false
	}

	commitmentBytes := kd.Decrypt(sig[:curve.PointLen])

	challenge := squeezeChallenge(kd)

	s, ok := curve.ScalarFromCanonicalBytes(kd.Decrypt(sig[curve.PointLen:]))
	if !ok {
		return false
	}

	commitment, ok := curve.PointFromCanonicalBytes(commitmentBytes)
	if !ok {
		return false
	}

	recovered := s.MulGenerator().Add(q.Multiply(challenge).Negate())
	return recovered.Equal(commitment)
}

// Sign constructs a fresh "veil.schnorr" transcript, absorbing the signer's public key and then the
// streamed message, before signing.
func Sign(rng io.Reader, d curve.Scalar, q curve.Point, r io.Reader) ([]byte, error) {
	p := duplex.New("veil.schnorr")
	p.Absorb(q.Bytes())
	if err := p.AbsorbReader(r); err != nil {
		return nil, err
	}
	return SignTranscript(p, rng, d)
}

// Verify constructs a fresh "veil.schnorr" transcript matching Sign and verifies sig against it.
func Verify(q curve.Point, r io.Reader, sig []byte) bool {
	p := duplex.New("veil.schnorr")
	p.Absorb(q.Bytes())
	if err := p.AbsorbReader(r); err != nil {
		return false
	}
	return VerifyTranscript(p, q, sig)
}

// squeezeChallenge derives the 128-bit-widened challenge scalar from kd's transcript so far. This
// mutates kd's chain state exactly like any other finalizing duplex call, so sign and verify must
// invoke it at the identical point in their respective sequences.
func squeezeChallenge(kd *duplex.Keyed) curve.Scalar {
	wide := kd.Squeeze(challengeLen)

	var buf [curve.UniformLen]byte
	copy(buf[:challengeLen], wide)

	return curve.MustScalarFromSqueeze(buf[:])
}
