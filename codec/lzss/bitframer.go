/*
DESCRIPTION
  bitframer.go implements the Bit-Framer (spec.md §4.1): the obfuscated,
  8-operation flag-grouped transport that sits directly under the
  Reference Codec and Ring-Buffer Dictionary. All mask handling lives in
  xorstream.go; this file never XORs a byte itself.

  A group's 8 flag bits are written contiguously as one byte, then all of
  that group's op payloads follow, also byte-aligned (spec.md §4.1). So
  the reader cannot pull one flag bit per op off a single bitio cursor
  interleaved with that op's payload bytes — it has to load the whole
  flag byte once per group into a register, and only then walk its 8
  bits MSB-first, reading each op's payload as it goes, the same "load
  next byte as the flag register, consume its bits MSB-first, reload on
  exhaustion" state machine codec/h264/h264dec/bits.BitReader uses for
  Exp-Golomb fields, generalized here to 1-bit flags.
*/

package lzss

import (
	"bytes"
	"io"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// OpKind distinguishes the three outcomes of Framer.NextOp.
type OpKind int

const (
	OpLiteral OpKind = iota
	OpReference
	OpEnd
)

// Op is one decoded operation from the Bit-Framer.
type Op struct {
	Kind   OpKind
	Lit    byte
	Offset int
	Length int
}

// Framer reads the obfuscated, flag-grouped LZSS stream. It holds the
// current group's flag byte as a register and the count of bits already
// consumed from it (8 meaning exhausted: the next NextOp call must load
// a fresh flag byte before it can decide anything).
type Framer struct {
	bio     *bitio.Reader
	flags   byte
	flagIdx uint // bits of flags already consumed; 8 means reload needed
}

// NewFramer wraps a still-obfuscated compressed payload in a Framer.
func NewFramer(payload []byte) *Framer {
	return &Framer{bio: bitio.NewReader(newXorReader(bytes.NewReader(payload))), flagIdx: 8}
}

// NextOp returns the literal or reference selected by the next flag bit,
// or OpEnd if the underlying byte source is exhausted. Per spec.md §4.1,
// a truncated final group where the last flag byte still has unused
// bits is not itself an error: OpEnd simply means there is no more data,
// and it is the caller's job (tracking a pixel budget) to decide whether
// that is expected end-of-stream or TruncatedStream.
func (f *Framer) NextOp() (Op, error) {
	if f.flagIdx == 8 {
		b, err := f.bio.ReadByte()
		if err != nil {
			if err == io.EOF {
				return Op{Kind: OpEnd}, nil
			}
			return Op{}, errors.Wrap(err, "lzss: reading flag byte")
		}
		f.flags = b
		f.flagIdx = 0
	}
	isLiteral := f.flags&(1<<(7-f.flagIdx)) != 0
	f.flagIdx++

	if isLiteral {
		b, err := f.bio.ReadByte()
		if err != nil {
			if err == io.EOF {
				return Op{Kind: OpEnd}, nil
			}
			return Op{}, errors.Wrap(err, "lzss: reading literal byte")
		}
		return Op{Kind: OpLiteral, Lit: b}, nil
	}
	u, err := f.bio.ReadByte()
	if err != nil {
		if err == io.EOF {
			return Op{Kind: OpEnd}, nil
		}
		return Op{}, errors.Wrap(err, "lzss: reading reference high byte")
	}
	// A truncation with only the high byte present (EOF reading the low
	// byte) is the malformed-mid-reference case of §4.1: tolerated as
	// end-of-stream here, and turned into TruncatedStream by Decompress
	// only if the pixel budget was not yet met.
	l, err := f.bio.ReadByte()
	if err != nil {
		if err == io.EOF {
			return Op{Kind: OpEnd}, nil
		}
		return Op{}, errors.Wrap(err, "lzss: reading reference low byte")
	}
	offset, length := Unpack(u, l)
	return Op{Kind: OpReference, Offset: offset, Length: length}, nil
}

// FrameWriter buffers up to 8 ops per group, then emits the group's flag
// byte followed by its ops' payload bytes, matching the encode contract
// of spec.md §4.1: "a flag byte is reserved before its group's ops are
// emitted; once 8 ops have been placed..., the encoder back-patches the
// flag byte...then writes the op payloads...in order." Buffering the
// group in memory and writing the flag bits first at flush time achieves
// the same wire layout as an explicit back-patch.
type FrameWriter struct {
	bio   *bitio.Writer
	group []Op
}

// NewFrameWriter returns a FrameWriter that obfuscates and appends to dst.
func NewFrameWriter(dst *bytes.Buffer) *FrameWriter {
	return &FrameWriter{bio: bitio.NewWriter(newXorWriter(dst))}
}

// PutLiteral queues a literal byte as the next op.
func (w *FrameWriter) PutLiteral(b byte) error {
	return w.put(Op{Kind: OpLiteral, Lit: b})
}

// PutReference queues a reference as the next op.
func (w *FrameWriter) PutReference(offset, length int) error {
	return w.put(Op{Kind: OpReference, Offset: offset, Length: length})
}

func (w *FrameWriter) put(o Op) error {
	w.group = append(w.group, o)
	if len(w.group) == 8 {
		return w.flushGroup()
	}
	return nil
}

// Close flushes any partial trailing group and the underlying bit
// writer. It must be called exactly once, after the last Put call.
func (w *FrameWriter) Close() error {
	if len(w.group) > 0 {
		if err := w.flushGroup(); err != nil {
			return err
		}
	}
	return w.bio.Close()
}

func (w *FrameWriter) flushGroup() error {
	for k := 0; k < 8; k++ {
		// Padding slots beyond len(w.group) never correspond to a real
		// op: the decoder's pixel budget always runs out before it would
		// try to interpret them. They are marked literal so a decoder
		// that (incorrectly) kept reading would not attempt to consume
		// two more payload bytes it doesn't have.
		bit := true
		if k < len(w.group) {
			bit = w.group[k].Kind == OpLiteral
		}
		if err := w.bio.WriteBool(bit); err != nil {
			return errors.Wrap(err, "lzss: writing flag bit")
		}
	}
	for _, o := range w.group {
		if o.Kind == OpLiteral {
			if err := w.bio.WriteByte(o.Lit); err != nil {
				return errors.Wrap(err, "lzss: writing literal byte")
			}
			continue
		}
		u, l, err := Pack(o.Offset, o.Length)
		if err != nil {
			return errors.Wrap(err, "lzss: packing reference")
		}
		if err := w.bio.WriteByte(u); err != nil {
			return errors.Wrap(err, "lzss: writing reference high byte")
		}
		if err := w.bio.WriteByte(l); err != nil {
			return errors.Wrap(err, "lzss: writing reference low byte")
		}
	}
	w.group = w.group[:0]
	return nil
}
