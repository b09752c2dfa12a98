package veil

import (
	"io"

	"github.com/veil-go/veil/internal/config"
	"github.com/veil-go/veil/internal/entropy"
	"github.com/veil-go/veil/internal/pbenc"
	"github.com/veil-go/veil/internal/scaldf"
	"github.com/veil-go/veil/internal/zeroize"
)

// secretLen is the length, in bytes, of a SecretKey's root secret.
const secretLen = 64

// SecretKey is an opaque root secret. It is held in memory only; the sole supported form of
// persistence is a passphrase-sealed byte string produced by Encrypt. Zero must be called once a
// SecretKey is no longer needed.
type SecretKey struct {
	r [secretLen]byte
}

// NewSecretKey generates a fresh SecretKey using rng (nil selects the OS CSPRNG).
func NewSecretKey(rng io.Reader) (*SecretKey, error) {
	var r [secretLen]byte
	if err := entropy.Read(rng, r[:]); err != nil {
		return nil, err
	}
	return &SecretKey{r: r}, nil
}

// PrivateKey derives this secret's root PrivateKey via hierarchical scalar derivation.
func (k *SecretKey) PrivateKey() *PrivateKey {
	return newPrivateKey(scaldf.DeriveRoot(k.r[:]))
}

// Encrypt seals the root secret under passphrase, using time cost t and memory cost m (in Argon2's
// KiB convention) to control the cost of brute-forcing the passphrase. t and m are validated
// against config.MinTime/config.MinMemory before any key derivation is attempted.
func (k *SecretKey) Encrypt(rng io.Reader, passphrase []byte, t, m uint32) ([]byte, error) {
	if err := (config.PBENCParams{Time: t, Memory: m}).Validate(); err != nil {
		return nil, err
	}
	return pbenc.Encrypt(rng, passphrase, t, m, k.r[:])
}

// DecryptSecretKey reverses SecretKey.Encrypt. On any failure it returns ErrInvalidPassword; the
// time/space cost parameters are read back from ciphertext itself, not supplied by the caller.
func DecryptSecretKey(passphrase, ciphertext []byte) (*SecretKey, error) {
	pt, ok := pbenc.Decrypt(passphrase, ciphertext)
	if !ok {
		return nil, ErrInvalidPassword
	}
	defer zeroize.Bytes(pt)

	var r [secretLen]byte
	copy(r[:], pt)
	return &SecretKey{r: r}, nil
}

// Zero overwrites the root secret's bytes. The SecretKey must not be used afterward.
func (k *SecretKey) Zero() {
	zeroize.Bytes(k.r[:])
}
