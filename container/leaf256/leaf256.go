/*
DESCRIPTION
  leaf256.go declares the LEAF256 container's wire layout and the
  decoded Image type (spec.md §3, §4.5), adapted from the teacher's
  container/flv package: a fixed-size header with explicit byte
  offsets and a little-endian field-by-field serializer, the same shape
  as flv.VideoTag/AudioTag, applied here to a palette-image header
  instead of an AV tag.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package leaf256 implements the LEAF256 container: magic, geometry,
// a small BGR palette, and an LZSS-compressed paletted bitmap stored
// bottom-up. See https://github.com/kako-jun/retro-decode for the
// format family this package preserves round-trip compatibility with.
package leaf256

import "github.com/pkg/errors"

// Magic is the 8-byte signature every LEAF256 file begins with: 7 ASCII
// bytes "LEAF256" followed by one NUL byte.
const Magic = "LEAF256\x00"

const (
	headerFixedSize = 0x18 // bytes before the palette begins.
	maxColorCount   = 256
)

// Sentinel errors, per the taxonomy of spec.md §7.
var (
	ErrBadMagic          = errors.New("leaf256: file does not begin with the LEAF256 magic")
	ErrShortHeader       = errors.New("leaf256: file shorter than the fixed header plus declared palette")
	ErrBadGeometry       = errors.New("leaf256: width or height is zero")
	ErrPaletteOutOfRange = errors.New("leaf256: a decoded pixel index exceeds the declared color count")
	ErrRoundTripMismatch = errors.New("leaf256: round-trip encode did not decode back to the source pixels")
)

// PaletteEntry is one palette color, stored on the wire in B,G,R order.
type PaletteEntry struct {
	B, G, R byte
}

// RGBA returns the color as it would be rendered, with A=0 if this entry
// is the image's transparent index, else A=255. Renderers are out of
// this package's scope (spec.md §1's Non-goals); this helper exists only
// to document the B,G,R-to-R,G,B,A mapping spec.md §4.5 specifies.
func (p PaletteEntry) RGBA(transparent bool) (r, g, b, a byte) {
	a = 255
	if transparent {
		a = 0
	}
	return p.R, p.G, p.B, a
}

// Image is the decoded form of a LEAF256 file (spec.md §3's Image
// entity). Pixels is stored row-major, top-down — i.e. already mapped
// out of the compressed stream's bottom-up order — so that callers
// never need to know about the wire's raster direction.
type Image struct {
	OriginX, OriginY  int
	Width, Height     int
	TransparentIndex  int
	ColorCount        int // 1..256
	Palette           []PaletteEntry
	Pixels            []byte // len == Width*Height, row-major top-down

	// Reserved fields preserved byte-exact across decode→encode, per
	// spec.md §4.5 ("Encoder must preserve all reserved bytes from a
	// decode..."). Exposed rather than discarded so the supplemented
	// reserved-byte fidelity of SPEC_FULL.md holds for any source file,
	// not only freshly constructed images.
	Reserved0               [2]byte // offset 0x10
	Reserved1               [3]byte // offset 0x13
	ReservedAfterColorCount byte    // offset 0x17
}

// at returns the pixel index at image coordinates (x, y).
func (img *Image) at(x, y int) byte {
	return img.Pixels[y*img.Width+x]
}

func (img *Image) set(x, y int, v byte) {
	img.Pixels[y*img.Width+x] = v
}
