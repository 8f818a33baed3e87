/*
DESCRIPTION
  refcodec.go is the single source of truth for the reference token's
  12-bit-offset / 4-bit-length wire format (spec.md §3, §4.2). Pack and
  Unpack are pure and side-effect free.
*/

package lzss

import "github.com/pkg/errors"

// Unpack decodes a 2-byte reference token (u, l), already de-obfuscated,
// into a dictionary offset and match length, per the canonical bit
// layout of spec.md §3: length occupies the low nibble of u, biased by
// WireMinMatch; the high nibble of u carries the low nibble of offset;
// l carries the high 8 bits of offset.
func Unpack(u, l byte) (offset, length int) {
	length = int(u&0x0F) + WireMinMatch
	offset = (int(u>>4) | int(l)<<4) & 0x0FFF
	return offset, length
}

// Pack encodes (offset, length) into the 2-byte wire form. length must be
// in [WireMinMatch, MaxMatch] and offset in [0, RingSize); otherwise Pack
// returns ErrEncodingRange.
func Pack(offset, length int) (u, l byte, err error) {
	if length < WireMinMatch || length > MaxMatch {
		return 0, 0, errors.Wrapf(ErrEncodingRange, "length %d outside [%d,%d]", length, WireMinMatch, MaxMatch)
	}
	if offset < 0 || offset >= RingSize {
		return 0, 0, errors.Wrapf(ErrEncodingRange, "offset %d outside [0,%d)", offset, RingSize)
	}
	u = byte(length-WireMinMatch) | byte(offset&0x0F)<<4
	l = byte(offset >> 4)
	return u, l, nil
}
