// Package veil implements a hybrid public-key cryptosystem: hierarchical key derivation, a
// password-sealed root secret, single-receiver signcryption, duplex-bound Schnorr signatures, and
// multi-receiver streaming hybrid encryption, all built on one duplex transcript primitive over the
// Ristretto255 group.
//
// The package is entirely synchronous and holds no global state; a SecretKey or PrivateKey is not
// safe to share across concurrent writers, while a PublicKey is an immutable value safe to share
// freely. Every operation that touches a stream takes an io.Reader/io.Writer pair and propagates
// I/O errors unchanged; every cryptographic failure is reported as one of the sentinel errors in
// errors.go with no further diagnostic detail, except signature checks, which return false.
package veil

import (
	"encoding/binary"
	"io"

	"github.com/veil-go/veil/internal/curve"
	"github.com/veil-go/veil/internal/entropy"
)

func shuffle(rng io.Reader, pts []curve.Point) error {
	for i := len(pts) - 1; i > 0; i-- {
		j, err := randIntn(rng, i+1)
		if err != nil {
			return err
		}
		pts[i], pts[j] = pts[j], pts[i]
	}
	return nil
}

// randIntn returns a uniformly distributed int in [0, n) read from rng, using rejection sampling
// to avoid modulo bias.
func randIntn(rng io.Reader, n int) (int, error) {
	if n <= 1 {
		return 0, nil
	}
	limit := (uint32(1<<31) / uint32(n)) * uint32(n)
	for {
		var b [4]byte
		if err := entropy.Read(rng, b[:]); err != nil {
			return 0, err
		}
		v := binary.BigEndian.Uint32(b[:]) & 0x7fffffff
		if v < limit {
			return int(v % uint32(n)), nil
		}
	}
}
