// Package mres implements veil's multi-receiver streaming hybrid encryption: a single ephemeral key
// and data-encryption key are signcrypted once per receiver into fixed-size headers, the message
// itself is streamed through a block-framed AEAD, and the whole transcript is closed with a
// duplex-bound Schnorr signature so tampering anywhere in the stream is caught at the end.
//
// Grounded structurally on the header-scan-then-stream pattern described for hybrid multi-receiver
// schemes in the wider corpus, and on internal/sres for per-receiver signcryption and
// internal/schnorr for the terminal signature.
package mres

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/veil-go/veil/internal/apperr"
	"github.com/veil-go/veil/internal/curve"
	"github.com/veil-go/veil/internal/duplex"
	"github.com/veil-go/veil/internal/entropy"
	"github.com/veil-go/veil/internal/schnorr"
	"github.com/veil-go/veil/internal/sres"
	"github.com/veil-go/veil/log"
)

var logger = log.DefaultLogger().Named("mres")

const (
	// BlockLen is the size, in bytes, of a plaintext block sealed independently within the stream.
	BlockLen = 32 * 1024

	// TagLen is the size, in bytes, of each block's authentication tag.
	TagLen = duplex.TagLen

	// EncBlockLen is the size, in bytes, of a sealed full block.
	EncBlockLen = BlockLen + TagLen

	// DekLen is the length, in bytes, of the data-encryption key carried in each header.
	DekLen = 32

	// HeaderLen is the length, in bytes, of a header's plaintext: DEK, receiver count, padding length.
	HeaderLen = DekLen + 8 + 8

	// EncHeaderLen is the length, in bytes, of a header once signcrypted.
	EncHeaderLen = HeaderLen + sres.Overhead

	// NonceLen is the length, in bytes, of the leading stream nonce and of each per-receiver nonce.
	NonceLen = sres.NonceLen

	// SignatureLen is the length, in bytes, of the trailing signature.
	SignatureLen = schnorr.Len
)

type header struct {
	dek           [DekLen]byte
	receiverCount uint64
	padding       uint64
}

func (h header) encode() []byte {
	out := make([]byte, 0, HeaderLen)
	out = append(out, h.dek[:]...)
	var counts [16]byte
	binary.LittleEndian.PutUint64(counts[:8], h.receiverCount)
	binary.LittleEndian.PutUint64(counts[8:], h.padding)
	return append(out, counts[:]...)
}

func decodeHeader(b []byte) (header, bool) {
	if len(b) != HeaderLen {
		return header{}, false
	}
	var h header
	copy(h.dek[:], b[:DekLen])
	h.receiverCount = binary.LittleEndian.Uint64(b[DekLen : DekLen+8])
	h.padding = binary.LittleEndian.Uint64(b[DekLen+8:])
	return h, true
}

type hedgedSecrets struct {
	ephemeralD curve.Scalar
	dek        [DekLen]byte
	nonce      [NonceLen]byte
}

// Encrypt reads plaintext from r, signcrypts a fresh data-encryption key to every point in
// receivers (callers wishing to hide the true receiver count or order append fakes and shuffle
// before calling), and writes the full ciphertext stream to w: leading nonce, one header per
// receiver, padding random bytes, block-sealed message, trailing signature. It returns the total
// number of bytes written to w.
func Encrypt(rng io.Reader, r io.Reader, w io.Writer, senderD curve.Scalar, senderQ curve.Point, receivers []curve.Point, padding uint64) (int64, error) {
	if rng == nil {
		rng = entropy.Source
	}

	logger.Debugw("encrypt", "receivers", len(receivers), "padding", padding)

	d := duplex.New("veil.mres")
	d.Absorb(senderQ.Bytes())

	hedged, err := duplex.Hedge(d, rng, senderD.Bytes(), func(clone *duplex.Unkeyed) hedgedSecrets {
		var hs hedgedSecrets
		hs.ephemeralD = clone.SqueezeScalar()
		clone.SqueezeInto(hs.dek[:])
		clone.SqueezeInto(hs.nonce[:])
		return hs
	})
	if err != nil {
		return 0, err
	}

	var written int64

	d.Absorb(hedged.nonce[:])
	n, err := w.Write(hedged.nonce[:])
	written += int64(n)
	if err != nil {
		return written, err
	}

	ephemeralQ := hedged.ephemeralD.MulGenerator()
	hdr := header{dek: hedged.dek, receiverCount: uint64(len(receivers)), padding: padding}
	hdrBytes := hdr.encode()

	for _, qR := range receivers {
		recvNonce := d.Squeeze(NonceLen)
		encHeader := sres.Seal(senderD, senderQ, hedged.ephemeralD, ephemeralQ, qR, recvNonce, hdrBytes)
		d.Absorb(encHeader)

		n, err := w.Write(encHeader)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}

	if padding > 0 {
		padBytes := make([]byte, padding)
		if err := entropy.Read(rng, padBytes); err != nil {
			return written, err
		}
		d.Absorb(padBytes)
		n, err := w.Write(padBytes)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}

	d.Absorb(hedged.dek[:])
	kd := d.IntoKeyed()

	// Every iteration seals exactly one chunk, including a final empty one if the plaintext
	// length is an exact multiple of BlockLen: the decoder has no length prefix and relies on
	// there always being exactly one terminal block, however short, before the signature.
	buf := make([]byte, BlockLen)
	for {
		n, readErr := io.ReadFull(r, buf)
		if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
			return written, readErr
		}

		sealed := kd.Seal(buf[:n])
		wn, werr := w.Write(sealed)
		written += int64(wn)
		if werr != nil {
			return written, werr
		}

		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF || n < BlockLen {
			break
		}
	}

	sig, err := schnorr.SignKeyed(kd, rng, hedged.ephemeralD)
	if err != nil {
		return written, err
	}
	n, err = w.Write(sig)
	written += int64(n)
	if err != nil {
		return written, err
	}

	return written, nil
}

// Decrypt reads a ciphertext stream produced by Encrypt from r, recovers the plaintext using
// receiver (receiverD, receiverQ) against sender senderQ, and writes it to w. It returns the total
// number of plaintext bytes written. Any cryptographic failure returns apperr.ErrInvalidCiphertext
// with no further detail, after writing an indeterminate (possibly partial) prefix of plaintext that
// the caller must discard.
func Decrypt(r io.Reader, w io.Writer, receiverD curve.Scalar, receiverQ curve.Point, senderQ curve.Point) (int64, error) {
	d := duplex.New("veil.mres")
	d.Absorb(senderQ.Bytes())

	var nonce [NonceLen]byte
	if _, err := io.ReadFull(r, nonce[:]); err != nil {
		return 0, wrapIOOrInvalid(err)
	}
	d.Absorb(nonce[:])

	var (
		found          bool
		foundEphemeral curve.Point
		foundHeader    header
	)

	bound := uint64(math.MaxUint64)
	for i := uint64(0); i < bound; i++ {
		encHeader := make([]byte, EncHeaderLen)
		if _, err := io.ReadFull(r, encHeader); err != nil {
			return 0, wrapIOOrInvalid(err)
		}

		recvNonce := d.Squeeze(NonceLen)
		d.Absorb(encHeader)

		if found {
			continue
		}

		qE, pt, ok := sres.Open(receiverD, receiverQ, senderQ, recvNonce, encHeader)
		if !ok {
			continue
		}
		hdr, ok := decodeHeader(pt)
		if !ok {
			continue
		}

		found = true
		foundEphemeral = qE
		foundHeader = hdr
		bound = hdr.receiverCount
	}

	if !found {
		logger.Warnw("no header decrypted for this receiver")
		return 0, apperr.ErrInvalidCiphertext
	}

	if foundHeader.padding > 0 {
		padBytes := make([]byte, foundHeader.padding)
		if _, err := io.ReadFull(r, padBytes); err != nil {
			return 0, wrapIOOrInvalid(err)
		}
		d.Absorb(padBytes)
	}

	d.Absorb(foundHeader.dek[:])
	kd := d.IntoKeyed()

	written, err := unsealStream(kd, r, w, foundEphemeral)
	if err != nil {
		return written, err
	}
	return written, nil
}

// unsealStream consumes the remainder of r, which consists of zero or more EncBlockLen-sized sealed
// blocks followed by a final short sealed block and a trailing SignatureLen-byte signature, with no
// length prefix to distinguish where the message ends and the signature begins. It maintains a
// sliding tail buffer of at least SignatureLen bytes so the last bytes read are never mistaken for
// message ciphertext.
func unsealStream(kd *duplex.Keyed, r io.Reader, w io.Writer, ephemeralQ curve.Point) (int64, error) {
	var written int64
	tail := make([]byte, 0, SignatureLen)
	chunk := make([]byte, EncBlockLen)

	fillTail := func() error {
		need := SignatureLen - len(tail)
		if need <= 0 {
			return nil
		}
		buf := make([]byte, need)
		n, err := io.ReadFull(r, buf)
		tail = append(tail, buf[:n]...)
		return err
	}

	if err := fillTail(); err != nil {
		return 0, wrapIOOrInvalid(err)
	}

	for {
		n, err := io.ReadFull(r, chunk)
		if n > 0 {
			combined := append(append([]byte{}, tail...), chunk[:n]...)
			toUnseal := combined[:len(combined)-SignatureLen]
			tail = combined[len(combined)-SignatureLen:]

			pt, ok := kd.Unseal(toUnseal)
			if !ok {
				return written, apperr.ErrInvalidCiphertext
			}
			wn, werr := w.Write(pt)
			written += int64(wn)
			if werr != nil {
				return written, werr
			}
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return written, wrapIOOrInvalid(err)
		}
	}

	if len(tail) != SignatureLen {
		return written, apperr.ErrInvalidCiphertext
	}

	if !schnorr.VerifyKeyed(kd, ephemeralQ, tail) {
		return written, apperr.ErrInvalidCiphertext
	}

	return written, nil
}

func wrapIOOrInvalid(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return apperr.ErrInvalidCiphertext
	}
	return err
}
