// Package apperr holds the sentinel errors shared between veil's internal protocol packages and
// its public façade, so a failure raised deep in MRES or PBENC surfaces to callers as the same
// value the façade documents.
//
// None of these errors carry diagnostic detail beyond their fixed message: cryptographic failure
// modes are deliberately indistinguishable from one another to resist oracle attacks, per the
// package's error-handling rule.
package apperr

import "errors"

var (
	// ErrInvalidCiphertext covers any cryptographic failure during decryption: wrong keys,
	// tampered bytes, truncated input, a header that never decrypts, a tag mismatch, or a
	// trailing signature that fails to verify.
	ErrInvalidCiphertext = errors.New("veil: invalid ciphertext")

	// ErrInvalidSignature is returned when parsing a signature string fails. Signature
	// verification itself reports failure as a false result, not as this error.
	ErrInvalidSignature = errors.New("veil: invalid signature")

	// ErrInvalidPassword is returned when PBENC unsealing fails.
	ErrInvalidPassword = errors.New("veil: invalid password")

	// ErrInvalidPublicKey is returned when parsing a public key string fails.
	ErrInvalidPublicKey = errors.New("veil: invalid public key")

	// ErrInvalidDigest is returned when parsing a digest string fails.
	ErrInvalidDigest = errors.New("veil: invalid digest")
)
