// Package digest implements veil's metadata-and-message hash: an unkeyed duplex transcript over a
// caller-supplied ordered sequence of metadata elements followed by the message stream, so that
// reordering metadata (e.g. swapping a "from" and "to" field) changes the digest even when every
// element's bytes are identical.
package digest

import (
	"io"

	"github.com/veil-go/veil/internal/duplex"
)

// Len is the fixed length, in bytes, of a digest.
const Len = 32

// Compute absorbs each element of metadata in order, then the bytes read from message, and
// squeezes Len bytes.
func Compute(metadata [][]byte, message io.Reader) ([Len]byte, error) {
	d := duplex.New("veil.digest")
	for _, m := range metadata {
		d.Absorb(m)
	}

	var out [Len]byte
	if err := d.AbsorbReader(message); err != nil {
		return out, err
	}

	d.SqueezeInto(out[:])
	return out, nil
}
