/*
DESCRIPTION
  encoder.go serializes an Image back into a LEAF256 file: header,
  palette, then the bottom-up-ordered LZSS-compressed payload. Adapted
  from the teacher's container/flv/encoder.go constructor shape.
*/

package leaf256

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/kako-jun/retro-decode/codec/lzss"
)

// Options controls the Matcher's behavior during Encode. The zero value
// is not the default: use DefaultOptions.
type Options struct {
	lzss.Config
}

// DefaultOptions returns spec.md §8 (P9)'s "baseline verify"
// configuration: literal_bias=0, min_match=3, search_cap=4096,
// safety_strict=true.
func DefaultOptions() Options {
	cfg := lzss.DefaultConfig()
	cfg.SafetyStrict = true
	return Options{Config: cfg}
}

// Encode serializes img as a complete LEAF256 file using opts to drive
// the Matcher.
func Encode(img *Image, opts Options) ([]byte, error) {
	if img.Width <= 0 || img.Height <= 0 {
		return nil, ErrBadGeometry
	}
	colorCount := img.ColorCount
	if colorCount <= 0 || colorCount > maxColorCount {
		return nil, errors.Errorf("leaf256: color count %d out of range [1,%d]", colorCount, maxColorCount)
	}
	if len(img.Palette) != colorCount {
		return nil, errors.Errorf("leaf256: palette has %d entries, want %d", len(img.Palette), colorCount)
	}
	if len(img.Pixels) != img.Width*img.Height {
		return nil, errors.Errorf("leaf256: pixel slice has %d entries, want %d", len(img.Pixels), img.Width*img.Height)
	}

	header := make([]byte, headerFixedSize)
	copy(header[0x00:0x08], Magic)
	binary.LittleEndian.PutUint16(header[0x08:0x0A], uint16(int16(img.OriginX)))
	binary.LittleEndian.PutUint16(header[0x0A:0x0C], uint16(int16(img.OriginY)))
	binary.LittleEndian.PutUint16(header[0x0C:0x0E], uint16(img.Width))
	binary.LittleEndian.PutUint16(header[0x0E:0x10], uint16(img.Height))
	copy(header[0x10:0x12], img.Reserved0[:])
	header[0x12] = byte(img.TransparentIndex)
	copy(header[0x13:0x16], img.Reserved1[:])
	header[0x16] = colorCountWireByte(colorCount)
	header[0x17] = img.ReservedAfterColorCount

	palette := make([]byte, 3*colorCount)
	for i, p := range img.Palette {
		palette[3*i] = p.B
		palette[3*i+1] = p.G
		palette[3*i+2] = p.R
	}

	bottomUp := make([]byte, img.Width*img.Height)
	for k := range bottomUp {
		x := k % img.Width
		yBottom := k / img.Width
		y := img.Height - 1 - yBottom
		idx := img.at(x, y)
		if int(idx) >= colorCount {
			return nil, errors.Wrapf(ErrPaletteOutOfRange, "pixel at (%d,%d) has index %d, color count %d", x, y, idx, colorCount)
		}
		bottomUp[k] = idx
	}

	payload, err := lzss.Compress(bottomUp, opts.Config)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(header)+len(palette)+len(payload))
	out = append(out, header...)
	out = append(out, palette...)
	out = append(out, payload...)
	return out, nil
}

// colorCountWireByte maps a logical color count back to the 1-byte wire
// field, where 256 is represented as 0 (spec.md §9's Open Question,
// locked down in DESIGN.md).
func colorCountWireByte(colorCount int) byte {
	if colorCount == maxColorCount {
		return 0
	}
	return byte(colorCount)
}
