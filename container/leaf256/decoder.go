/*
DESCRIPTION
  decoder.go parses a LEAF256 file: magic, geometry, palette, and the
  LZSS-compressed payload, then applies the bottom-up raster mapping of
  spec.md §3 to produce a top-down Image.
*/

package leaf256

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/kako-jun/retro-decode/codec/lzss"
)

// Decode parses b as a LEAF256 file and returns the decoded Image. No
// partial Image is ever returned alongside an error (spec.md §7's
// propagation policy).
func Decode(b []byte) (*Image, error) {
	if len(b) < len(Magic) || string(b[:len(Magic)]) != Magic {
		return nil, ErrBadMagic
	}
	if len(b) < headerFixedSize {
		return nil, ErrShortHeader
	}

	img := &Image{}
	img.OriginX = int(int16(binary.LittleEndian.Uint16(b[0x08:0x0A])))
	img.OriginY = int(int16(binary.LittleEndian.Uint16(b[0x0A:0x0C])))
	width := binary.LittleEndian.Uint16(b[0x0C:0x0E])
	height := binary.LittleEndian.Uint16(b[0x0E:0x10])
	copy(img.Reserved0[:], b[0x10:0x12])
	img.TransparentIndex = int(b[0x12])
	copy(img.Reserved1[:], b[0x13:0x16])
	colorCountByte := b[0x16]
	img.ReservedAfterColorCount = b[0x17]

	if width == 0 || height == 0 {
		return nil, ErrBadGeometry
	}
	img.Width = int(width)
	img.Height = int(height)

	colorCount := int(colorCountByte)
	if colorCount == 0 {
		// Locked-down Open Question decision (spec.md §9, DESIGN.md):
		// a wire byte of 0 means 256 colors, since the 1-byte field
		// cannot represent 256 directly.
		colorCount = maxColorCount
	}
	img.ColorCount = colorCount

	paletteBytes := 3 * colorCount
	if len(b) < headerFixedSize+paletteBytes {
		return nil, ErrShortHeader
	}
	img.Palette = make([]PaletteEntry, colorCount)
	po := headerFixedSize
	for i := 0; i < colorCount; i++ {
		img.Palette[i] = PaletteEntry{B: b[po], G: b[po+1], R: b[po+2]}
		po += 3
	}

	payload := b[po:]
	budget := img.Width * img.Height
	bottomUp, err := lzss.Decompress(payload, budget)
	if err != nil {
		return nil, err
	}

	img.Pixels = make([]byte, budget)
	for k, idx := range bottomUp {
		if int(idx) >= img.ColorCount {
			return nil, errors.Wrapf(ErrPaletteOutOfRange, "pixel %d has index %d, color count %d", k, idx, img.ColorCount)
		}
		x := k % img.Width
		yBottom := k / img.Width
		y := img.Height - 1 - yBottom
		img.set(x, y, idx)
	}

	return img, nil
}
