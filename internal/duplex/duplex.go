// Package duplex implements the cryptographic transcript primitive every veil protocol is built
// from: a sponge-like construction that interleaves absorb, squeeze, encrypt, and seal operations
// against one evolving state.
//
// The design follows the transcript-protocol pattern used by the wider signcryption/HPKE corpus
// (accumulate labeled frames, finalize with a domain-separated read, reseed the running state with
// a derived chain value so later operations depend on everything absorbed so far) built here on top
// of cSHAKE128 rather than a bespoke permutation. Every finalizing operation reads a chain value from
// the pre-finalization clone and reseeds the live state with it, so the live state is never read from
// directly — only clones are, which keeps the "write after read" restriction of the underlying XOF
// from ever being hit on the object the caller keeps mutating.
//
// There are two flavors: Unkeyed, for transcript hashing and key derivation, and Keyed, for
// confidential and authenticated operations. A Keyed duplex is produced by promoting an Unkeyed one;
// there is no way back. Both types offer Clone, Absorb, and Squeeze; the confidentiality and
// authentication operations (Encrypt, Decrypt, Seal, Unseal, Ratchet) exist only on Keyed, and the
// stream, scalar, and promotion operations (AbsorbReader, SqueezeScalar, IntoKeyed) only on Unkeyed.
package duplex

import (
	"crypto/subtle"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/sha3"

	"github.com/veil-go/veil/internal/curve"
	"github.com/veil-go/veil/internal/entropy"
)

// TagLen is the length, in bytes, of the authentication tag appended by Seal.
const TagLen = 16

// chainLen is the size, in bytes, of the chain value used to reseed the duplex after each
// finalizing operation. 64 bytes matches the width used to derive scalars without bias.
const chainLen = 64

// AbsorbBlockLen is the chunk size used by AbsorbReader to stream arbitrarily large inputs.
const AbsorbBlockLen = 32 * 1024

const (
	opAbsorb byte = iota
	opAbsorbStream
	opSqueeze
	opSqueezeScalar
	opIntoKeyed
	opEncrypt
	opSealKey
	opSealTag
	opRatchet
	opHedge
	opKeyedSqueeze
)

// Unkeyed is a duplex used for transcript hashing and deterministic key derivation. It has no
// confidentiality or authentication operations; those require promoting it via IntoKeyed.
type Unkeyed struct {
	xof sha3.ShakeHash
}

// New creates an Unkeyed duplex, absorbing domain as the customization string so that two duplexes
// constructed with different domains never produce comparable transcripts.
func New(domain string) *Unkeyed {
	return &Unkeyed{xof: sha3.NewCShake128(nil, []byte(domain))}
}

// Clone returns an independent copy of the duplex's state.
func (d *Unkeyed) Clone() *Unkeyed {
	return &Unkeyed{xof: d.xof.Clone()}
}

// Absorb appends data to the transcript.
func (d *Unkeyed) Absorb(data []byte) {
	writeFramed(d.xof, opAbsorb, data)
}

// AbsorbReader absorbs a byte stream in fixed-size blocks until EOF.
func (d *Unkeyed) AbsorbReader(r io.Reader) error {
	buf := make([]byte, AbsorbBlockLen)
	for {
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			writeFramed(d.xof, opAbsorbStream, buf[:n])
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Squeeze extracts n pseudorandom bytes that depend on the full absorbed history.
func (d *Unkeyed) Squeeze(n int) []byte {
	return d.finalize(opSqueeze, n)
}

// SqueezeInto fills out with pseudorandom bytes, as Squeeze.
func (d *Unkeyed) SqueezeInto(out []byte) {
	copy(out, d.finalize(opSqueeze, len(out)))
}

// SqueezeScalar repeatedly squeezes 64 bytes and reduces modulo the scalar field order, rejecting
// the zero scalar (which occurs with negligible probability).
func (d *Unkeyed) SqueezeScalar() curve.Scalar {
	for {
		b := d.finalize(opSqueezeScalar, curve.UniformLen)
		s, err := curve.ScalarFromUniformBytes(b)
		if err != nil {
			continue
		}
		if s.IsZero() {
			continue
		}
		return s
	}
}

// IntoKeyed squeezes a derived key and returns a Keyed duplex seeded with it. Like any squeeze, this
// reseeds the receiver's own state; callers that intend to discard the unkeyed form should not reuse
// it afterward, as the two resulting transcripts immediately diverge.
func (d *Unkeyed) IntoKeyed() *Keyed {
	key := d.finalize(opIntoKeyed, chainLen)
	x := sha3.NewCShake128(nil, []byte("veil.duplex.keyed"))
	x.Write(key)
	return &Keyed{xof: x}
}

// Hedge derives a value from a clone of the duplex's state, absorbing secret and 64 bytes read from
// rng before invoking f on the clone. The receiver's state is never mutated: this is the only way to
// draw randomized-but-deterministic nonces and ephemeral keys without advancing the caller's
// transcript. Safety holds even if rng is broken (secret still makes the output unique per message)
// or if secret leaks (rng still makes it unpredictable).
func Hedge[T any](d *Unkeyed, rng io.Reader, secret []byte, f func(*Unkeyed) T) (T, error) {
	clone := d.Clone()
	writeFramed(clone.xof, opHedge, secret)

	var r [curve.UniformLen]byte
	if err := entropy.Read(rng, r[:]); err != nil {
		var zero T
		return zero, err
	}
	writeFramed(clone.xof, opHedge, r[:])
	for i := range r {
		r[i] = 0
	}

	return f(clone), nil
}

// HedgeKeyed is Hedge's counterpart for a Keyed duplex, used where hedged derivation must happen
// after a duplex has already been promoted (duplex-bound Schnorr signing over a keyed MRES stream).
func HedgeKeyed[T any](d *Keyed, rng io.Reader, secret []byte, f func(*Keyed) T) (T, error) {
	clone := d.Clone()
	writeFramed(clone.xof, opHedge, secret)

	var r [curve.UniformLen]byte
	if err := entropy.Read(rng, r[:]); err != nil {
		var zero T
		return zero, err
	}
	writeFramed(clone.xof, opHedge, r[:])
	for i := range r {
		r[i] = 0
	}

	return f(clone), nil
}

// Clone returns an independent copy of the keyed duplex's state.
func (d *Keyed) Clone() *Keyed {
	return &Keyed{xof: d.xof.Clone()}
}

// finalize clones the live xof, reads outputLen bytes tagged with op as the result, reads a further
// chainLen bytes as the continuation chain value, and reseeds the live xof from that chain value. The
// live xof is never read from directly, so it remains writable for subsequent Absorb calls.
func (d *Unkeyed) finalize(op byte, outputLen int) []byte {
	clone := d.xof.Clone()
	clone.Write([]byte{op})

	var out []byte
	if outputLen > 0 {
		out = make([]byte, outputLen)
		_, _ = clone.Read(out)
	}

	cv := make([]byte, chainLen)
	_, _ = clone.Read(cv)

	d.xof = sha3.NewCShake128(nil, []byte("veil.duplex.chain"))
	d.xof.Write(cv)

	return out
}

func writeFramed(xof sha3.ShakeHash, op byte, data []byte) {
	var header [9]byte
	header[0] = op
	binary.BigEndian.PutUint64(header[1:], uint64(len(data)))
	xof.Write(header[:])
	xof.Write(data)
}

// Keyed is a duplex promoted from an Unkeyed one, exposing confidentiality and authentication
// operations. There is no operation to demote a Keyed duplex back to Unkeyed.
type Keyed struct {
	xof sha3.ShakeHash
}

// Absorb mixes additional secret or public material into a keyed duplex's running state, as
// Unkeyed.Absorb does for an unkeyed one. Protocols that derive more than one shared secret (such
// as single-receiver signcryption's static-then-ephemeral Diffie-Hellman keys) call this to fold a
// second key into an already-keyed transcript rather than starting over.
func (d *Keyed) Absorb(data []byte) {
	writeFramed(d.xof, opAbsorb, data)
}

// Squeeze extracts n pseudorandom bytes bound to the keyed transcript so far, mirroring
// Unkeyed.Squeeze. Used by duplex-bound Schnorr signing to derive the signature challenge without
// leaving the keyed state.
func (d *Keyed) Squeeze(n int) []byte {
	return d.finalize(opKeyedSqueeze, n)
}

// Encrypt encrypts plaintext as a stream cipher over the duplex's key stream, then folds the
// resulting ciphertext back into the live state, as Seal does before computing its tag. This
// provides no authentication on its own: a bit flip in the ciphertext produces a corresponding bit
// flip in the recovered plaintext with no detectable error. Callers needing authentication must use
// Seal. But because the ciphertext is absorbed, anything squeezed from the duplex afterward — a
// Schnorr challenge, a subsequent key — is bound to it; without this, later operations would commit
// to the pre-encrypt state only, and the encrypted value could be swapped for any other of the same
// length without being detected downstream.
func (d *Keyed) Encrypt(plaintext []byte) []byte {
	ks := d.finalize(opEncrypt, len(plaintext))
	ct := make([]byte, len(plaintext))
	for i := range plaintext {
		ct[i] = plaintext[i] ^ ks[i]
	}
	writeFramed(d.xof, opAbsorb, ct)
	return ct
}

// Decrypt inverts Encrypt, folding the same ciphertext bytes into the live state that Encrypt did,
// so the two sides of a transcript stay in agreement about what was bound in. It is no longer a
// trivial call to Encrypt: Encrypt absorbs the bytes it produces, Decrypt absorbs the bytes it was
// given, and both absorb the same ciphertext.
func (d *Keyed) Decrypt(ciphertext []byte) []byte {
	ks := d.finalize(opEncrypt, len(ciphertext))
	pt := make([]byte, len(ciphertext))
	for i := range ciphertext {
		pt[i] = ciphertext[i] ^ ks[i]
	}
	writeFramed(d.xof, opAbsorb, ciphertext)
	return pt
}

// Seal encrypts plaintext and appends a TagLen-byte authentication tag.
func (d *Keyed) Seal(plaintext []byte) []byte {
	ks := d.finalize(opSealKey, len(plaintext))
	ct := make([]byte, len(plaintext)+TagLen)
	for i := range plaintext {
		ct[i] = plaintext[i] ^ ks[i]
	}

	writeFramed(d.xof, opAbsorb, ct[:len(plaintext)])
	tag := d.finalize(opSealTag, TagLen)
	copy(ct[len(plaintext):], tag)
	return ct
}

// Unseal decrypts and authenticates data produced by Seal. On tag mismatch, returns false and a nil
// plaintext; the duplex state has still advanced, so mismatched Unseal calls must not be retried
// against the same duplex with a different guess.
func (d *Keyed) Unseal(sealed []byte) ([]byte, bool) {
	if len(sealed) < TagLen {
		return nil, false
	}
	ct := sealed[:len(sealed)-TagLen]
	tag := sealed[len(sealed)-TagLen:]

	ks := d.finalize(opSealKey, len(ct))
	pt := make([]byte, len(ct))
	for i := range ct {
		pt[i] = ct[i] ^ ks[i]
	}

	writeFramed(d.xof, opAbsorb, ct)
	expected := d.finalize(opSealTag, TagLen)

	if subtle.ConstantTimeCompare(tag, expected) != 1 {
		for i := range pt {
			pt[i] = 0
		}
		return nil, false
	}
	return pt, true
}

// Ratchet irreversibly evolves the duplex's state so that past state cannot be reconstructed from
// the current one, providing forward secrecy for any key material mixed in before the call.
func (d *Keyed) Ratchet() {
	d.finalize(opRatchet, 0)
}

// finalize mirrors Unkeyed.finalize for the Keyed variant.
func (d *Keyed) finalize(op byte, outputLen int) []byte {
	clone := d.xof.Clone()
	clone.Write([]byte{op})

	var out []byte
	if outputLen > 0 {
		out = make([]byte, outputLen)
		_, _ = clone.Read(out)
	}

	cv := make([]byte, chainLen)
	_, _ = clone.Read(cv)

	d.xof = sha3.NewCShake128(nil, []byte("veil.duplex.chain"))
	d.xof.Write(cv)

	return out
}
