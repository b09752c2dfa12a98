package veil

import (
	"github.com/mr-tron/base58"

	"github.com/veil-go/veil/internal/schnorr"
)

// Signature is a fixed-size opaque Schnorr signature.
type Signature struct {
	b [schnorr.Len]byte
}

// Bytes returns the canonical encoding of the signature.
func (s *Signature) Bytes() []byte {
	out := make([]byte, schnorr.Len)
	copy(out, s.b[:])
	return out
}

// String returns the base58 encoding of the signature.
func (s *Signature) String() string {
	return base58.Encode(s.b[:])
}

// ParseSignature decodes a base58-encoded signature. It returns ErrInvalidSignature if str does
// not decode to exactly schnorr.Len bytes.
func ParseSignature(str string) (*Signature, error) {
	b, err := base58.Decode(str)
	if err != nil || len(b) != schnorr.Len {
		return nil, ErrInvalidSignature
	}
	var sig Signature
	copy(sig.b[:], b)
	return &sig, nil
}
