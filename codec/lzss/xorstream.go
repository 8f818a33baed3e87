/*
DESCRIPTION
  xorstream.go wraps an io.Reader/io.Writer so that every byte crossing
  it is XOR'd with the fixed obfuscation mask. No other file in this
  package touches Mask directly; all byte I/O for the compressed payload
  goes through these two adapters (spec.md §9's re-architecture note).
*/

package lzss

import "io"

// xorReader de-obfuscates a byte stream by XORing every byte read with
// Mask.
type xorReader struct {
	r io.Reader
}

func newXorReader(r io.Reader) *xorReader { return &xorReader{r: r} }

func (x *xorReader) Read(p []byte) (int, error) {
	n, err := x.r.Read(p)
	for i := 0; i < n; i++ {
		p[i] ^= Mask
	}
	return n, err
}

// xorWriter obfuscates a byte stream by XORing every byte with Mask
// before it reaches the underlying writer.
type xorWriter struct {
	w io.Writer
}

func newXorWriter(w io.Writer) *xorWriter { return &xorWriter{w: w} }

func (x *xorWriter) Write(p []byte) (int, error) {
	masked := make([]byte, len(p))
	for i, b := range p {
		masked[i] = b ^ Mask
	}
	n, err := x.w.Write(masked)
	if n > len(p) {
		n = len(p)
	}
	return n, err
}
