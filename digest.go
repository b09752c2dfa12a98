package veil

import (
	"crypto/subtle"
	"io"

	"github.com/mr-tron/base58"

	"github.com/veil-go/veil/internal/digest"
)

// Digest is a fixed 32-byte metadata-and-message hash.
type Digest struct {
	b [digest.Len]byte
}

// ComputeDigest absorbs each element of metadata in order, then the bytes read from message, and
// returns the resulting Digest. Metadata ordering is semantically significant: permuting metadata
// elements changes the result even though their bytes are unchanged.
func ComputeDigest(metadata [][]byte, message io.Reader) (*Digest, error) {
	b, err := digest.Compute(metadata, message)
	if err != nil {
		return nil, err
	}
	return &Digest{b: b}, nil
}

// Equal reports whether d and o are the same digest, in constant time.
func (d *Digest) Equal(o *Digest) bool {
	return subtle.ConstantTimeCompare(d.b[:], o.b[:]) == 1
}

// Bytes returns the canonical encoding of the digest.
func (d *Digest) Bytes() []byte {
	out := make([]byte, digest.Len)
	copy(out, d.b[:])
	return out
}

// String returns the base58 encoding of the digest.
func (d *Digest) String() string {
	return base58.Encode(d.b[:])
}

// ParseDigest decodes a base58-encoded digest. It returns ErrInvalidDigest if s does not decode to
// exactly digest.Len bytes.
func ParseDigest(s string) (*Digest, error) {
	b, err := base58.Decode(s)
	if err != nil || len(b) != digest.Len {
		return nil, ErrInvalidDigest
	}
	var d Digest
	copy(d.b[:], b)
	return &d, nil
}
