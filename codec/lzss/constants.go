/*
DESCRIPTION
  constants.go names the LEAF256 LZSS wire contract as a single set of
  compile-time constants, per the re-architecture note in spec.md §9:
  the obfuscation mask, ring-buffer filler, and starting cursor must
  live in exactly one place, never as inline magic numerals.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package lzss implements the LEAF256 container's LZSS codec: an
// obfuscated, flag-grouped byte stream over a 4096-byte ring-buffer
// dictionary, with a greedy matcher that chooses between literal and
// reference emission under a self-reference safety constraint.
package lzss

// Wire-contract constants. These are the only place (M, F0, c0) and the
// match-length bounds are defined; no other file in this package inlines
// them.
const (
	// RingSize is the size of the dictionary: 4 KiB.
	RingSize = 4096

	// Mask is M: the fixed byte every transported byte of the compressed
	// payload is XOR'd with (flag bytes, literals, and both halves of a
	// reference token). Locked down per the Open Question in spec.md §9:
	// the source material identifies the ASCII space as the historical
	// ring-buffer filler, and this codec family reuses that same byte
	// value as the transport obfuscation mask.
	Mask = 0x20

	// Filler is F0: the byte the ring buffer is pre-initialized with.
	Filler = 0x20

	// StartCursor is c0: the write cursor's starting position, chosen 16
	// bytes from the end of the ring, consistent with a 16-byte
	// look-ahead window (spec.md §9).
	StartCursor = RingSize - 16

	// WireMinMatch and MaxMatch are Lmin and Lmax. The wire format can
	// only represent match lengths in this range: length is transported
	// biased by WireMinMatch in a 4-bit field.
	WireMinMatch = 3
	MaxMatch     = 18
)
