/*
DESCRIPTION
  roundtrip.go re-exports the three entry points spec.md §6 names as the
  system's external interface, thinly wrapping container/leaf256 so that
  collaborators (the CLI, test harnesses) never need to import the
  container package directly.
*/

// Package roundtrip exposes the three external entry points of the
// LEAF256 decoder/encoder: Decode, Encode, and RoundTripCheck.
package roundtrip

import (
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/kako-jun/retro-decode/container/leaf256"
)

// Decode parses a LEAF256 file into an Image.
func Decode(b []byte) (*leaf256.Image, error) {
	return leaf256.Decode(b)
}

// Encode serializes an Image into a LEAF256 file using opts.
func Encode(img *leaf256.Image, opts leaf256.Options) ([]byte, error) {
	return leaf256.Encode(img, opts)
}

// RoundTripCheck decodes b, re-encodes the result with opts, decodes
// again, and reports whether the two decoded Images have identical
// pixels (spec.md §8 (P9)'s "baseline verify" property). It returns the
// first-pass decoded Image alongside the verdict so callers don't have
// to decode b twice themselves.
func RoundTripCheck(b []byte, opts leaf256.Options) (img *leaf256.Image, ok bool, err error) {
	img, err = leaf256.Decode(b)
	if err != nil {
		return nil, false, errors.Wrap(err, "roundtrip: initial decode")
	}

	reencoded, err := leaf256.Encode(img, opts)
	if err != nil {
		return img, false, errors.Wrap(err, "roundtrip: re-encode")
	}

	again, err := leaf256.Decode(reencoded)
	if err != nil {
		return img, false, errors.Wrap(err, "roundtrip: re-decode")
	}

	if !cmp.Equal(img.Pixels, again.Pixels) {
		return img, false, leaf256.ErrRoundTripMismatch
	}
	return img, true, nil
}
