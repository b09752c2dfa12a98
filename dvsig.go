package veil

import (
	"io"

	"github.com/mr-tron/base58"

	"github.com/veil-go/veil/internal/dvsig"
)

// DesignatedSignature is a signature checkable only by the verifier it was created for; unlike
// Signature, possessing it and the signer's public key is not sufficient to verify it.
type DesignatedSignature struct {
	b [dvsig.Len]byte
}

// SignDesignated signs the bytes read from message such that only verifier can check the result.
func (k *PrivateKey) SignDesignated(rng io.Reader, verifier *PublicKey, message io.Reader) (*DesignatedSignature, error) {
	b, err := dvsig.Sign(rng, k.d, k.pk.q, verifier.q, message)
	if err != nil {
		return nil, err
	}
	var sig DesignatedSignature
	copy(sig.b[:], b)
	return &sig, nil
}

// VerifyDesignated checks sig, claimed to be produced by signer over the bytes read from message,
// using this key as the designated verifier. Only the verifier named at signing time can call this
// successfully; any other key will reject every signature, including genuine ones.
func (k *PrivateKey) VerifyDesignated(signer *PublicKey, message io.Reader, sig *DesignatedSignature) bool {
	return dvsig.Verify(k.d, k.pk.q, signer.q, message, sig.b[:])
}

// Bytes returns the canonical encoding of the designated-verifier signature.
func (s *DesignatedSignature) Bytes() []byte {
	out := make([]byte, dvsig.Len)
	copy(out, s.b[:])
	return out
}

// String returns the base58 encoding of the designated-verifier signature.
func (s *DesignatedSignature) String() string {
	return base58.Encode(s.b[:])
}

// ParseDesignatedSignature decodes a base58-encoded designated-verifier signature.
func ParseDesignatedSignature(str string) (*DesignatedSignature, error) {
	b, err := base58.Decode(str)
	if err != nil || len(b) != dvsig.Len {
		return nil, ErrInvalidSignature
	}
	var sig DesignatedSignature
	copy(sig.b[:], b)
	return &sig, nil
}
