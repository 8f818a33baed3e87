/*
DESCRIPTION
  stream.go is the LZSS codec's narrow entry point: Decompress drives
  the Bit-Framer + Reference Codec + Ring-Buffer Dictionary to recover a
  fixed-size byte sequence; Compress drives the Matcher + Reference Codec
  + Bit-Framer in the other direction. Neither function knows anything
  about palettes or raster order — that framing lives in
  container/leaf256.
*/

package lzss

import (
	"bytes"

	"github.com/pkg/errors"
)

// Decompress runs the decode side of the codec over payload (still
// obfuscated) until n bytes have been produced, and returns them in
// compressed-stream order (bottom-up, per the caller's raster mapping).
// It returns ErrTruncatedStream if the payload is exhausted, or a
// zero-distance reference is encountered, before n bytes are produced.
func Decompress(payload []byte, n int) ([]byte, error) {
	ring := NewRing()
	fr := NewFramer(payload)
	out := make([]byte, 0, n)

	for len(out) < n {
		op, err := fr.NextOp()
		if err != nil {
			return out, err
		}
		switch op.Kind {
		case OpEnd:
			return out, ErrTruncatedStream
		case OpLiteral:
			ring.WriteLiteral(op.Lit)
			out = append(out, op.Lit)
		case OpReference:
			produced, err := ring.ApplyReference(op.Offset, op.Length)
			if err != nil {
				return out, ErrTruncatedStream
			}
			if len(out)+len(produced) > n {
				produced = produced[:n-len(out)]
			}
			out = append(out, produced...)
		}
	}
	return out, nil
}

// Compress runs the encode side of the codec over pixels (in
// compressed-stream order) using cfg, and returns the obfuscated
// compressed payload bytes.
func Compress(pixels []byte, cfg Config) ([]byte, error) {
	ring := NewRing()
	m := NewMatcher(cfg)

	var buf bytes.Buffer
	fw := NewFrameWriter(&buf)

	i := 0
	for i < len(pixels) {
		if !cfg.AllLiteral {
			if offset, length, found := m.Find(ring, pixels[i:]); found {
				if _, err := ring.ApplyReference(offset, length); err != nil {
					// The Matcher's safety predicate must never let this
					// happen; surfacing it as a panic marks it as the
					// programmer-contract violation spec.md §7 describes.
					panic(errors.Wrap(ErrSelfReferenceRejected, err.Error()))
				}
				if err := fw.PutReference(offset, length); err != nil {
					return nil, err
				}
				i += length
				continue
			}
		}
		ring.WriteLiteral(pixels[i])
		if err := fw.PutLiteral(pixels[i]); err != nil {
			return nil, err
		}
		i++
	}

	if err := fw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
