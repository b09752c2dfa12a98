package veil

import "github.com/veil-go/veil/internal/apperr"

// Error kinds returned by this package. Cryptographic failures carry no detail beyond these
// sentinels: wrong keys, tampered bytes, and truncated input are all reported identically so a
// caller cannot use error detail as a decryption oracle.
var (
	// ErrInvalidCiphertext covers any decryption failure: wrong keys, a tampered or truncated
	// ciphertext, a header that never decrypts, a tag mismatch, or a signature that fails to verify.
	ErrInvalidCiphertext = apperr.ErrInvalidCiphertext

	// ErrInvalidSignature is returned when parsing a Signature or DesignatedSignature string fails.
	// PublicKey.Verify and PrivateKey.VerifyDesignated report a failed check as false and do not
	// return this error.
	ErrInvalidSignature = apperr.ErrInvalidSignature

	// ErrInvalidPassword is returned when a SecretKey fails to decrypt under a given passphrase.
	ErrInvalidPassword = apperr.ErrInvalidPassword

	// ErrInvalidPublicKey is returned when parsing a public key string fails.
	ErrInvalidPublicKey = apperr.ErrInvalidPublicKey

	// ErrInvalidDigest is returned when parsing a digest string fails.
	ErrInvalidDigest = apperr.ErrInvalidDigest
)
