// Package pbenc implements password-based encryption of veil's 64-byte root secret.
//
// A memory-hard KDF (Argon2id, grounded on the KDF usage in the wider example corpus) stretches
// the passphrase into a duplex key; the time/space parameters and a random salt travel in the
// output so decryption can reproduce the exact derivation. Grounded structurally on internal/duplex's
// Keyed.Seal/Unseal for the sealed payload.
package pbenc

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"

	"github.com/veil-go/veil/internal/duplex"
	"github.com/veil-go/veil/internal/entropy"
	"github.com/veil-go/veil/log"
)

var logger = log.DefaultLogger().Named("pbenc")

// SaltLen is the length, in bytes, of the random salt stored in the output.
const SaltLen = 16

// PlaintextLen is the length, in bytes, of the root secret this package seals.
const PlaintextLen = 64

// headerLen is the length of the t/m/salt prefix before the sealed payload.
const headerLen = 4 + 4 + SaltLen

// Overhead is the fixed number of bytes PBENC output exceeds PlaintextLen by.
const Overhead = headerLen + duplex.TagLen

// argon2Threads is fixed rather than parameterized: the output layout has no room for a third
// cost knob, and a fixed thread count keeps derivation reproducible across machines.
const argon2Threads = 4

// Encrypt seals plaintext (veil's 64-byte root secret) under passphrase, using time cost t and
// memory cost m (in KiB, per Argon2's convention) to derive the sealing key. rng supplies the
// random salt.
func Encrypt(rng io.Reader, passphrase []byte, t, m uint32, plaintext []byte) ([]byte, error) {
	if len(plaintext) != PlaintextLen {
		return nil, fmt.Errorf("pbenc: plaintext must be %d bytes", PlaintextLen)
	}

	var salt [SaltLen]byte
	if err := entropy.Read(rng, salt[:]); err != nil {
		return nil, err
	}

	out := make([]byte, headerLen, headerLen+len(plaintext)+duplex.TagLen)
	binary.LittleEndian.PutUint32(out[0:4], t)
	binary.LittleEndian.PutUint32(out[4:8], m)
	copy(out[8:8+SaltLen], salt[:])

	kd := deriveKey(passphrase, salt[:], t, m)
	sealed := kd.Seal(plaintext)
	return append(out, sealed...), nil
}

// Decrypt reverses Encrypt. Failure (wrong passphrase, truncated or tampered input) is reported
// as a single boolean with no further detail, matching veil's no-oracle error-handling rule; the
// caller is expected to translate a false return into its own InvalidPassword-shaped error.
func Decrypt(passphrase []byte, ciphertext []byte) ([]byte, bool) {
	if len(ciphertext) != headerLen+PlaintextLen+duplex.TagLen {
		return nil, false
	}

	t := binary.LittleEndian.Uint32(ciphertext[0:4])
	m := binary.LittleEndian.Uint32(ciphertext[4:8])
	if t < 1 {
		return nil, false
	}
	salt := ciphertext[8 : 8+SaltLen]
	sealed := ciphertext[headerLen:]

	kd := deriveKey(passphrase, salt, t, m)
	pt, ok := kd.Unseal(sealed)
	if !ok {
		logger.Debugw("unseal failed", "time", t, "memory", m)
	}
	return pt, ok
}

func deriveKey(passphrase, salt []byte, t, m uint32) *duplex.Keyed {
	key := argon2.IDKey(passphrase, salt, t, m, argon2Threads, uint32(duplex.TagLen)*2)

	d := duplex.New("veil.pbenc")
	d.Absorb(key)
	d.Absorb(salt)
	return d.IntoKeyed()
}
